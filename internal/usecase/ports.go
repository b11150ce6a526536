package usecase

import (
	"context"

	"github.com/openlumen/walletd/internal/domain"
)

// UserRepository is the identity store. Lookups return (nil, nil) when no
// record matches; a non-nil error means the store itself failed.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	AddWallet(ctx context.Context, wallet *domain.WalletAccount) error
}

// ContactRepository stores per-user address books.
type ContactRepository interface {
	GetByID(ctx context.Context, id uint) (*domain.Contact, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Contact, error)
	Create(ctx context.Context, contact *domain.Contact) error
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, id uint) error
}

// SendPaymentRequest carries everything the gateway needs to build, sign
// and submit one payment. SourceSecret is borrowed for the signing call
// only and must not be retained or logged.
type SendPaymentRequest struct {
	SourceSecret      string
	DestinationPublic string
	Amount            string
	AssetIssuer       string
	AssetCode         string
	Memo              string
}

// LedgerGateway wraps the external ledger network. Every network or
// account-resolution fault surfaces as an ExternalServiceError Result,
// never as a raw error.
type LedgerGateway interface {
	GenerateKeypair() domain.Result[domain.KeyPair]
	CreateAccount(userID uint) domain.Result[domain.WalletAccount]
	SendPayment(ctx context.Context, req SendPaymentRequest) domain.Result[bool]
	GetPayments(ctx context.Context, publicKey string) domain.Result[[]domain.Payment]
	GetTestFunds(ctx context.Context, publicKey string) domain.Result[bool]
	GetBalances(ctx context.Context, publicKey string) domain.Result[[]domain.Balance]
}

// TokenService issues and decodes bearer tokens.
type TokenService interface {
	Issue(email string, role string) domain.Result[string]
	Decode(token string) domain.Result[string]
}

// PasswordHasher is the opaque credential capability.
type PasswordHasher interface {
	Encrypt(plain string) (string, error)
	Verify(plain string, encrypted string) bool
}

// FaucetLimiter throttles test-fund requests per ledger address.
type FaucetLimiter interface {
	Allow(ctx context.Context, publicKey string) (bool, error)
}
