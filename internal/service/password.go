package service

import "golang.org/x/crypto/bcrypt"

// BcryptHasher is the credential capability: an opaque encrypt/verify
// pair for stored passwords.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Encrypt(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Verify(plain string, encrypted string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(plain)) == nil
}
