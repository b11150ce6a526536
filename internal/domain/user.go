package domain

// User is a registered identity holding the custodial ledger key material.
// SecretKey is sensitive; it never leaves the store except for the
// duration of a signing call.
type User struct {
	ID        uint
	Name      string
	LastName  string
	Email     string
	Password  string
	PublicKey string
	SecretKey string
	Role      string
	Wallets   []WalletAccount
	Contacts  []Contact
}

// WalletAccount is a secondary ledger address linked to a user.
type WalletAccount struct {
	ID        uint   `json:"id"`
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"-"`
	UserID    uint   `json:"userId"`
}

// Contact is a named counterparty address in a user's address book.
type Contact struct {
	ID        uint   `json:"id"`
	Alias     string `json:"alias"`
	UserID    uint   `json:"userId"`
	PublicKey string `json:"publicKey"`
}

// Profile is the outward view of a User, without credentials.
type Profile struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	PublicKey string          `json:"publicKey"`
	Wallets   []WalletAccount `json:"blockchainAccounts"`
	Contacts  []Contact       `json:"userContacts"`
}

// Profile strips credential material from a User.
func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Email:     u.Email,
		PublicKey: u.PublicKey,
		Wallets:   u.Wallets,
		Contacts:  u.Contacts,
	}
}

// LoggedUser is the login outcome handed back to the boundary.
type LoggedUser struct {
	Success   bool   `json:"success"`
	Token     string `json:"token,omitempty"`
	PublicKey string `json:"publicKey"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	// MaxLinkedWallets bounds the secondary addresses one user may hold.
	MaxLinkedWallets = 5
	// MaxContacts bounds one user's address book.
	MaxContacts = 10
)
