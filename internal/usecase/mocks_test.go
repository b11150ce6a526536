package usecase

import (
	"context"
	"fmt"

	"github.com/openlumen/walletd/internal/domain"
)

// --- shared mocks ---

type mockUserRepo struct {
	usersByEmail map[string]*domain.User
	usersByID    map[uint]*domain.User
	created      []*domain.User
	updated      []*domain.User
	deleted      []uint
	wallets      []*domain.WalletAccount
	failWith     error
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{
		usersByEmail: map[string]*domain.User{},
		usersByID:    map[uint]*domain.User{},
	}
	for _, u := range users {
		m.usersByEmail[u.Email] = u
		m.usersByID[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.usersByEmail[email], nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.usersByID[id], nil
}

func (m *mockUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	var all []domain.User
	for _, u := range m.usersByID {
		all = append(all, *u)
	}
	return all, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	m.updated = append(m.updated, user)
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockUserRepo) AddWallet(ctx context.Context, wallet *domain.WalletAccount) error {
	m.wallets = append(m.wallets, wallet)
	return nil
}

// mockTokens decodes any token of the form "token-for:<email>"; anything
// else fails like a malformed JWT.
type mockTokens struct {
	issueFails bool
}

func (m *mockTokens) Issue(email string, role string) domain.Result[string] {
	if m.issueFails {
		return domain.Fail[string](domain.InternalError("signing key is not configured"))
	}
	return domain.Ok("token-for:" + email)
}

func (m *mockTokens) Decode(token string) domain.Result[string] {
	const prefix = "token-for:"
	if len(token) > len(prefix) && token[:len(prefix)] == prefix {
		return domain.Ok(token[len(prefix):])
	}
	return domain.Fail[string](domain.InternalError("claim not found"))
}

func tokenFor(email string) string {
	return "token-for:" + email
}

type mockHasher struct{}

func (mockHasher) Encrypt(plain string) (string, error) {
	return "enc:" + plain, nil
}

func (mockHasher) Verify(plain string, encrypted string) bool {
	return "enc:"+plain == encrypted
}

type mockLedger struct {
	payments       []domain.Payment
	balances       []domain.Balance
	paymentReq     *SendPaymentRequest
	sendErr        *domain.Error
	paymentsErr    *domain.Error
	balancesErr    *domain.Error
	testFundsErr   *domain.Error
	keypairCounter int
}

func (m *mockLedger) GenerateKeypair() domain.Result[domain.KeyPair] {
	m.keypairCounter++
	return domain.Ok(domain.KeyPair{
		PublicKey: fmt.Sprintf("GTEST%d", m.keypairCounter),
		SecretKey: fmt.Sprintf("STEST%d", m.keypairCounter),
	})
}

func (m *mockLedger) CreateAccount(userID uint) domain.Result[domain.WalletAccount] {
	keypair := m.GenerateKeypair().Value()
	return domain.Ok(domain.WalletAccount{
		PublicKey: keypair.PublicKey,
		SecretKey: keypair.SecretKey,
		UserID:    userID,
	})
}

func (m *mockLedger) SendPayment(ctx context.Context, req SendPaymentRequest) domain.Result[bool] {
	m.paymentReq = &req
	if m.sendErr != nil {
		return domain.Fail[bool](m.sendErr)
	}
	return domain.Ok(true)
}

func (m *mockLedger) GetPayments(ctx context.Context, publicKey string) domain.Result[[]domain.Payment] {
	if m.paymentsErr != nil {
		return domain.Fail[[]domain.Payment](m.paymentsErr)
	}
	return domain.Ok(m.payments)
}

func (m *mockLedger) GetTestFunds(ctx context.Context, publicKey string) domain.Result[bool] {
	if m.testFundsErr != nil {
		return domain.Fail[bool](m.testFundsErr)
	}
	return domain.Ok(true)
}

func (m *mockLedger) GetBalances(ctx context.Context, publicKey string) domain.Result[[]domain.Balance] {
	if m.balancesErr != nil {
		return domain.Fail[[]domain.Balance](m.balancesErr)
	}
	return domain.Ok(m.balances)
}

type mockContactRepo struct {
	byID    map[uint]*domain.Contact
	byUser  map[uint][]domain.Contact
	created []*domain.Contact
	updated []*domain.Contact
	deleted []uint
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{
		byID:   map[uint]*domain.Contact{},
		byUser: map[uint][]domain.Contact{},
	}
}

func (m *mockContactRepo) GetByID(ctx context.Context, id uint) (*domain.Contact, error) {
	return m.byID[id], nil
}

func (m *mockContactRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Contact, error) {
	return m.byUser[userID], nil
}

func (m *mockContactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	m.created = append(m.created, contact)
	return nil
}

func (m *mockContactRepo) Update(ctx context.Context, contact *domain.Contact) error {
	m.updated = append(m.updated, contact)
	return nil
}

func (m *mockContactRepo) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockFaucetLimiter struct {
	allowed bool
	calls   int
}

func (m *mockFaucetLimiter) Allow(ctx context.Context, publicKey string) (bool, error) {
	m.calls++
	return m.allowed, nil
}

func testUser() *domain.User {
	return &domain.User{
		ID:        1,
		Name:      "John",
		LastName:  "Doe",
		Email:     "john.doe@mail.com",
		Password:  "enc:MyPassword123.",
		PublicKey: "GBXBDKPGYO74VVO64A7PBIHV7XN4QH4PJIRBSQT4OVE4U7JYY345PQMA",
		SecretKey: "SC6KTRKOT33RRH2KXK2BMGJWJ7TE5NQGRE5NIWTBGNMSPLKGQ2C63KDB",
		Role:      domain.RoleUser,
	}
}
