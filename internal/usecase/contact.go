package usecase

import (
	"context"

	"github.com/openlumen/walletd/internal/domain"
)

// ContactUsecase manages per-user address books.
type ContactUsecase struct {
	contacts ContactRepository
	users    UserRepository
	auth     *AuthUsecase
	tokens   TokenService
}

func NewContactUsecase(
	contacts ContactRepository,
	users UserRepository,
	auth *AuthUsecase,
	tokens TokenService,
) *ContactUsecase {
	return &ContactUsecase{
		contacts: contacts,
		users:    users,
		auth:     auth,
		tokens:   tokens,
	}
}

type AddContactInput struct {
	Alias     string `json:"alias"`
	PublicKey string `json:"publicKey"`
}

type UpdateContactInput struct {
	ID    uint    `json:"id"`
	Alias *string `json:"alias"`
}

// Add stores a new contact for the token's identity, enforcing the
// per-user cap and alias uniqueness.
func (uc *ContactUsecase) Add(ctx context.Context, input AddContactInput, token string) domain.Result[bool] {
	ctx, span := tracer.Start(ctx, "Contact.Usecase.Add")
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
	if user == nil {
		return domain.Fail[bool](domain.NotFound("User not found"))
	}

	if denied := uc.auth.requireOwner(token, user.Email, domain.Unauthorized("")); denied != nil {
		return domain.Fail[bool](denied)
	}

	if len(user.Contacts) >= domain.MaxContacts {
		return domain.Fail[bool](domain.Conflict("User has reached the maximum number of contacts"))
	}
	for _, contact := range user.Contacts {
		if contact.Alias == input.Alias {
			return domain.Fail[bool](domain.Conflict("Contact already exists"))
		}
	}

	contact := domain.Contact{
		Alias:     input.Alias,
		UserID:    user.ID,
		PublicKey: input.PublicKey,
	}
	if err := uc.contacts.Create(ctx, &contact); err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}

	return domain.Ok(true)
}

func (uc *ContactUsecase) Delete(ctx context.Context, id uint) domain.Result[bool] {
	ctx, span := tracer.Start(ctx, "Contact.Usecase.Delete")
	defer span.End()

	contact, err := uc.contacts.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}
	if contact == nil {
		return domain.Fail[bool](domain.NotFound("Contact not found"))
	}

	if err := uc.contacts.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}

	return domain.Ok(true)
}

// GetAll lists the contacts of a user; only the owner may read them.
func (uc *ContactUsecase) GetAll(ctx context.Context, userID uint, token string) domain.Result[[]domain.Contact] {
	ctx, span := tracer.Start(ctx, "Contact.Usecase.GetAll")
	defer span.End()

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[[]domain.Contact](domain.InternalError(err.Error()))
	}
	if user == nil {
		return domain.Fail[[]domain.Contact](domain.NotFound("User not found"))
	}

	if denied := uc.auth.requireOwner(token, user.Email, domain.Unauthorized("")); denied != nil {
		return domain.Fail[[]domain.Contact](denied)
	}

	contacts, err := uc.contacts.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[[]domain.Contact](domain.InternalError(err.Error()))
	}

	return domain.Ok(contacts)
}

func (uc *ContactUsecase) Update(ctx context.Context, input UpdateContactInput) domain.Result[bool] {
	ctx, span := tracer.Start(ctx, "Contact.Usecase.Update")
	defer span.End()

	contact, err := uc.contacts.GetByID(ctx, input.ID)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}
	if contact == nil {
		return domain.Fail[bool](domain.NotFound("Contact not found"))
	}

	if input.Alias != nil {
		contact.Alias = *input.Alias
	}

	if err := uc.contacts.Update(ctx, contact); err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}

	return domain.Ok(true)
}
