package usecase

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/openlumen/walletd/internal/domain"
)

var tracer = otel.Tracer("usecase")

// AuthUsecase owns login and the authorization guard used by every
// identity-scoped operation.
type AuthUsecase struct {
	users  UserRepository
	tokens TokenService
	hasher PasswordHasher
}

func NewAuthUsecase(
	users UserRepository,
	tokens TokenService,
	hasher PasswordHasher,
) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// Login verifies credentials and mints a bearer token.
func (uc *AuthUsecase) Login(ctx context.Context, email string, password string) domain.Result[domain.LoggedUser] {
	ctx, span := tracer.Start(ctx, "Auth.Usecase.Login")
	defer span.End()

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[domain.LoggedUser](domain.InternalError(err.Error()))
	}
	if user == nil {
		return domain.Fail[domain.LoggedUser](domain.NotFound("User not found"))
	}

	if !uc.hasher.Verify(password, user.Password) {
		return domain.Fail[domain.LoggedUser](domain.Unauthorized(""))
	}

	issued := uc.tokens.Issue(user.Email, user.Role)
	if !issued.IsSuccess() {
		return domain.Fail[domain.LoggedUser](domain.InternalError(issued.Err().Message))
	}

	return domain.Ok(domain.LoggedUser{
		Success:   true,
		Token:     issued.Value(),
		PublicKey: user.PublicKey,
	})
}

// AuthorizeEmail checks whether the token's identity claim matches
// expectedEmail. A mismatch is a successful false, distinct from a
// decode failure.
func (uc *AuthUsecase) AuthorizeEmail(token string, expectedEmail string) domain.Result[bool] {
	decoded := uc.tokens.Decode(token)
	if !decoded.IsSuccess() {
		return domain.Fail[bool](domain.InternalError(decoded.Err().Message))
	}

	return domain.Ok(decoded.Value() == expectedEmail)
}

// AuthorizeToken reports whether the token decodes and its identity
// still exists in the store.
func (uc *AuthUsecase) AuthorizeToken(ctx context.Context, token string) domain.Result[bool] {
	ctx, span := tracer.Start(ctx, "Auth.Usecase.AuthorizeToken")
	defer span.End()

	decoded := uc.tokens.Decode(token)
	if !decoded.IsSuccess() {
		return domain.Fail[bool](domain.InternalError(decoded.Err().Message))
	}

	user, err := uc.users.GetByEmail(ctx, decoded.Value())
	if err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}

	return domain.Ok(user != nil)
}

// requireOwner resolves the token against expectedEmail and collapses
// the guard outcome: decode failures propagate, a mismatch becomes the
// given denial. Authorization failures always short-circuit.
func (uc *AuthUsecase) requireOwner(token string, expectedEmail string, denied *domain.Error) *domain.Error {
	authorized := uc.AuthorizeEmail(token, expectedEmail)
	if !authorized.IsSuccess() {
		return authorized.Err()
	}
	if !authorized.Value() {
		return denied
	}
	return nil
}
