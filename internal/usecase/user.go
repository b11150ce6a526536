package usecase

import (
	"context"

	"github.com/openlumen/walletd/internal/domain"
)

// UserUsecase manages identity records and their linked wallet accounts.
type UserUsecase struct {
	users  UserRepository
	auth   *AuthUsecase
	tokens TokenService
	hasher PasswordHasher
	ledger LedgerGateway
}

func NewUserUsecase(
	users UserRepository,
	auth *AuthUsecase,
	tokens TokenService,
	hasher PasswordHasher,
	ledger LedgerGateway,
) *UserUsecase {
	return &UserUsecase{
		users:  users,
		auth:   auth,
		tokens: tokens,
		hasher: hasher,
		ledger: ledger,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserInput struct {
	ID       uint    `json:"id"`
	Name     *string `json:"name"`
	LastName *string `json:"lastName"`
	Password *string `json:"password"`
}

type AddWalletInput struct {
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey"`
}

func (uc *UserUsecase) GetAll(ctx context.Context) domain.Result[[]domain.Profile] {
	ctx, span := tracer.Start(ctx, "User.Usecase.GetAll")
	defer span.End()

	users, err := uc.users.GetAll(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[[]domain.Profile](domain.InternalError(err.Error()))
	}

	profiles := make([]domain.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return domain.Ok(profiles)
}

func (uc *UserUsecase) GetByID(ctx context.Context, id uint, token string) domain.Result[domain.Profile] {
	ctx, span := tracer.Start(ctx, "User.Usecase.GetByID")
	defer span.End()

	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[domain.Profile](domain.InternalError(err.Error()))
	}
	if user == nil {
		return domain.Fail[domain.Profile](domain.NotFound("User not found"))
	}

	if denied := uc.auth.requireOwner(token, user.Email, domain.Forbidden("")); denied != nil {
		return domain.Fail[domain.Profile](denied)
	}

	return domain.Ok(user.Profile())
}

// Register creates the identity and generates its ledger keypair. The
// keypair is generated exactly once and kept for the lifetime of the
// identity.
func (uc *UserUsecase) Register(ctx context.Context, input RegisterInput) domain.Result[domain.LoggedUser] {
	ctx, span := tracer.Start(ctx, "User.Usecase.Register")
	defer span.End()

	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[domain.LoggedUser](domain.InternalError(err.Error()))
	}
	if existing != nil {
		return domain.Fail[domain.LoggedUser](domain.Conflict("User already exists."))
	}

	encrypted, err := uc.hasher.Encrypt(input.Password)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[domain.LoggedUser](domain.InternalError(err.Error()))
	}

	keypair := uc.ledger.GenerateKeypair()
	if !keypair.IsSuccess() {
		return domain.Fail[domain.LoggedUser](keypair.Err())
	}

	user := domain.User{
		Name:      input.Name,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  encrypted,
		PublicKey: keypair.Value().PublicKey,
		SecretKey: keypair.Value().SecretKey,
		Role:      domain.RoleUser,
	}

	if err := uc.users.Create(ctx, &user); err != nil {
		span.RecordError(err)
		return domain.Fail[domain.LoggedUser](domain.InternalError(err.Error()))
	}

	return domain.Ok(domain.LoggedUser{Success: true, PublicKey: user.PublicKey})
}

func (uc *UserUsecase) Update(ctx context.Context, input UpdateUserInput, token string) domain.Result[bool] {
	ctx, span := tracer.Start(ctx, "User.Usecase.Update")
	defer span.End()

	user, err := uc.users.GetByID(ctx, input.ID)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}
	if user == nil {
		return domain.Fail[bool](domain.NotFound("User not found"))
	}

	if denied := uc.auth.requireOwner(token, user.Email, domain.Forbidden("")); denied != nil {
		return domain.Fail[bool](denied)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Password != nil {
		encrypted, err := uc.hasher.Encrypt(*input.Password)
		if err != nil {
			span.RecordError(err)
			return domain.Fail[bool](domain.InternalError(err.Error()))
		}
		user.Password = encrypted
	}

	if err := uc.users.Update(ctx, user); err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}

	return domain.Ok(true)
}

// Delete removes the identity and cascades to its wallets and contacts.
func (uc *UserUsecase) Delete(ctx context.Context, id uint, token string) domain.Result[bool] {
	ctx, span := tracer.Start(ctx, "User.Usecase.Delete")
	defer span.End()

	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}
	if user == nil {
		return domain.Fail[bool](domain.NotFound("User not found"))
	}

	if denied := uc.auth.requireOwner(token, user.Email, domain.Forbidden("")); denied != nil {
		return domain.Fail[bool](denied)
	}

	if err := uc.users.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}

	return domain.Ok(true)
}

// AddWallet links a secondary ledger address to the token's identity.
func (uc *UserUsecase) AddWallet(ctx context.Context, input AddWalletInput, token string) domain.Result[bool] {
	ctx, span := tracer.Start(ctx, "User.Usecase.AddWallet")
	defer span.End()

	decoded := uc.tokens.Decode(token)
	if !decoded.IsSuccess() {
		return domain.Fail[bool](domain.Unauthorized(""))
	}

	user, err := uc.users.GetByEmail(ctx, decoded.Value())
	if err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}
	if user == nil {
		return domain.Fail[bool](domain.NotFound("User not found"))
	}

	if denied := uc.auth.requireOwner(token, user.Email, domain.Forbidden("")); denied != nil {
		return domain.Fail[bool](denied)
	}

	for _, wallet := range user.Wallets {
		if wallet.PublicKey == input.PublicKey {
			return domain.Fail[bool](domain.Conflict("Wallet already exists."))
		}
	}
	if len(user.Wallets) >= domain.MaxLinkedWallets {
		return domain.Fail[bool](domain.Conflict("User already has 5 wallets."))
	}

	wallet := domain.WalletAccount{
		PublicKey: input.PublicKey,
		SecretKey: input.SecretKey,
		UserID:    user.ID,
	}
	if err := uc.users.AddWallet(ctx, &wallet); err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}

	return domain.Ok(true)
}
