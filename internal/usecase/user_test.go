package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/openlumen/walletd/internal/domain"
)

func newUserUsecase(repo *mockUserRepo, ledger *mockLedger) *UserUsecase {
	tokens := &mockTokens{}
	auth := NewAuthUsecase(repo, tokens, mockHasher{})
	return NewUserUsecase(repo, auth, tokens, mockHasher{}, ledger)
}

func TestRegisterGeneratesKeypairOnce(t *testing.T) {
	repo := newMockUserRepo()
	ledger := &mockLedger{}
	uc := newUserUsecase(repo, ledger)

	result := uc.Register(context.Background(), RegisterInput{
		Name:     "John",
		LastName: "Doe",
		Email:    "john.doe@mail.com",
		Password: "MyPassword123.",
	})
	if !result.IsSuccess() {
		t.Fatalf("register failed: %+v", result.Err())
	}
	if ledger.keypairCounter != 1 {
		t.Fatalf("expected exactly one keypair generation, got %d", ledger.keypairCounter)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected user to be stored")
	}
	created := repo.created[0]
	if created.PublicKey == "" || created.SecretKey == "" {
		t.Fatalf("expected keypair stored on identity")
	}
	if created.Password != "enc:MyPassword123." {
		t.Fatalf("expected encrypted credential, got %q", created.Password)
	}
	if created.Role != domain.RoleUser {
		t.Fatalf("expected default role, got %q", created.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc := newUserUsecase(newMockUserRepo(testUser()), &mockLedger{})

	result := uc.Register(context.Background(), RegisterInput{Email: "john.doe@mail.com"})
	if result.IsSuccess() {
		t.Fatalf("expected conflict")
	}
	if result.Err().Kind != domain.KindConflict || result.Err().Message != "User already exists." {
		t.Fatalf("unexpected error %+v", result.Err())
	}
}

func TestGetByIDForbiddenForOtherIdentity(t *testing.T) {
	user := testUser()
	uc := newUserUsecase(newMockUserRepo(user), &mockLedger{})

	owned := uc.GetByID(context.Background(), user.ID, tokenFor(user.Email))
	if !owned.IsSuccess() {
		t.Fatalf("owner lookup failed: %+v", owned.Err())
	}

	foreign := uc.GetByID(context.Background(), user.ID, tokenFor("other@mail.com"))
	if foreign.IsSuccess() {
		t.Fatalf("expected forbidden")
	}
	if foreign.Err().Kind != domain.KindForbidden {
		t.Fatalf("expected forbidden, got %+v", foreign.Err())
	}

	missing := uc.GetByID(context.Background(), 99, tokenFor(user.Email))
	if missing.IsSuccess() || missing.Err().Kind != domain.KindNotFound {
		t.Fatalf("expected not found, got %+v", missing.Err())
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	user := testUser()
	repo := newMockUserRepo(user)
	uc := newUserUsecase(repo, &mockLedger{})

	denied := uc.Delete(context.Background(), user.ID, tokenFor("other@mail.com"))
	if denied.IsSuccess() {
		t.Fatalf("expected denial")
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("denied delete must not reach the store")
	}

	allowed := uc.Delete(context.Background(), user.ID, tokenFor(user.Email))
	if !allowed.IsSuccess() || !allowed.Value() {
		t.Fatalf("owner delete failed: %+v", allowed.Err())
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != user.ID {
		t.Fatalf("expected delete of user %d", user.ID)
	}
}

func TestAddWalletDuplicatePublicKey(t *testing.T) {
	user := testUser()
	user.Wallets = []domain.WalletAccount{{PublicKey: "GDUP", UserID: user.ID}}
	uc := newUserUsecase(newMockUserRepo(user), &mockLedger{})

	result := uc.AddWallet(context.Background(), AddWalletInput{PublicKey: "GDUP"}, tokenFor(user.Email))
	if result.IsSuccess() {
		t.Fatalf("expected conflict")
	}
	if result.Err().Message != "Wallet already exists." {
		t.Fatalf("unexpected error %+v", result.Err())
	}
}

func TestAddWalletCap(t *testing.T) {
	user := testUser()
	for i := 0; i < domain.MaxLinkedWallets; i++ {
		user.Wallets = append(user.Wallets, domain.WalletAccount{
			PublicKey: fmt.Sprintf("G%d", i),
			UserID:    user.ID,
		})
	}
	repo := newMockUserRepo(user)
	uc := newUserUsecase(repo, &mockLedger{})

	result := uc.AddWallet(context.Background(), AddWalletInput{PublicKey: "GNEW"}, tokenFor(user.Email))
	if result.IsSuccess() {
		t.Fatalf("expected conflict at the wallet cap")
	}
	if result.Err().Kind != domain.KindConflict || result.Err().Message != "User already has 5 wallets." {
		t.Fatalf("unexpected error %+v", result.Err())
	}
	if len(repo.wallets) != 0 {
		t.Fatalf("capped wallet must not be stored")
	}
}

func TestAddWalletStoresAccount(t *testing.T) {
	user := testUser()
	repo := newMockUserRepo(user)
	uc := newUserUsecase(repo, &mockLedger{})

	result := uc.AddWallet(context.Background(), AddWalletInput{
		PublicKey: "GNEW",
		SecretKey: "SNEW",
	}, tokenFor(user.Email))
	if !result.IsSuccess() || !result.Value() {
		t.Fatalf("add wallet failed: %+v", result.Err())
	}
	if len(repo.wallets) != 1 || repo.wallets[0].PublicKey != "GNEW" || repo.wallets[0].UserID != user.ID {
		t.Fatalf("unexpected stored wallet %+v", repo.wallets)
	}
}

func TestAddWalletUnauthorizedToken(t *testing.T) {
	uc := newUserUsecase(newMockUserRepo(testUser()), &mockLedger{})

	result := uc.AddWallet(context.Background(), AddWalletInput{PublicKey: "GNEW"}, "malformed")
	if result.IsSuccess() {
		t.Fatalf("expected failure")
	}
	if result.Err().Kind != domain.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %+v", result.Err())
	}
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	user := testUser()
	repo := newMockUserRepo(user)
	uc := newUserUsecase(repo, &mockLedger{})

	name := "Johnny"
	password := "NewPassword456."
	result := uc.Update(context.Background(), UpdateUserInput{
		ID:       user.ID,
		Name:     &name,
		Password: &password,
	}, tokenFor(user.Email))
	if !result.IsSuccess() {
		t.Fatalf("update failed: %+v", result.Err())
	}
	if len(repo.updated) != 1 {
		t.Fatalf("expected one update")
	}
	updated := repo.updated[0]
	if updated.Name != "Johnny" || updated.LastName != "Doe" {
		t.Fatalf("unexpected update %+v", updated)
	}
	if updated.Password != "enc:NewPassword456." {
		t.Fatalf("expected re-encrypted credential, got %q", updated.Password)
	}
}
