package domain

// NativeAsset is the ledger network's base currency. Payments and
// balances use this literal in place of a code/issuer pair.
const NativeAsset = "native"

// KeyPair is a freshly generated ledger signing pair.
type KeyPair struct {
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey"`
}

// Payment is one historical payment operation, sourced live from the
// ledger network and never persisted locally.
type Payment struct {
	ID            string `json:"id"`
	From          string `json:"from"`
	To            string `json:"to"`
	Amount        string `json:"amount"`
	Asset         string `json:"asset"`
	CreatedAt     string `json:"createdAt"`
	WasSuccessful bool   `json:"wasSuccessful"`
}

// Balance is one asset position of a ledger account.
type Balance struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
	Issuer string `json:"issuer"`
}
