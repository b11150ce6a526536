package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/openlumen/walletd/internal/domain"
	"github.com/openlumen/walletd/internal/infra/database/models"
	"github.com/openlumen/walletd/internal/usecase"
)

// UserRepository persists identities in postgres. Lookups return
// (nil, nil) for a missing record; errors are reserved for store faults.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var record models.User
	err := r.db.WithContext(ctx).
		Preload("Wallets").
		Preload("Contacts").
		Where("email = ?", email).
		Take(&record).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user by email")
	}
	user := toUser(record)
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var record models.User
	err := r.db.WithContext(ctx).
		Preload("Wallets").
		Preload("Contacts").
		Take(&record, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user")
	}
	user := toUser(record)
	return &user, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	var records []models.User
	err := r.db.WithContext(ctx).
		Preload("Wallets").
		Preload("Contacts").
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]domain.User, 0, len(records))
	for _, record := range records {
		users = append(users, toUser(record))
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	record := models.User{
		Name:      user.Name,
		LastName:  user.LastName,
		Email:     user.Email,
		Password:  user.Password,
		PublicKey: user.PublicKey,
		SecretKey: user.SecretKey,
		Role:      user.Role,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return errors.Wrap(err, "failed to create user")
	}
	user.ID = record.ID
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	updates := map[string]any{
		"name":      user.Name,
		"last_name": user.LastName,
		"email":     user.Email,
		"password":  user.Password,
	}
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(updates).Error
	if err != nil {
		return errors.Wrap(err, "failed to update user")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Select("Wallets", "Contacts").
		Delete(&models.User{ID: id}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	return nil
}

func (r *UserRepository) AddWallet(ctx context.Context, wallet *domain.WalletAccount) error {
	record := models.WalletAccount{
		UserID:    wallet.UserID,
		PublicKey: wallet.PublicKey,
		SecretKey: wallet.SecretKey,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return errors.Wrap(err, "failed to link wallet")
	}
	wallet.ID = record.ID
	return nil
}

func toUser(record models.User) domain.User {
	wallets := make([]domain.WalletAccount, 0, len(record.Wallets))
	for _, wallet := range record.Wallets {
		wallets = append(wallets, domain.WalletAccount{
			ID:        wallet.ID,
			PublicKey: wallet.PublicKey,
			SecretKey: wallet.SecretKey,
			UserID:    wallet.UserID,
		})
	}

	contacts := make([]domain.Contact, 0, len(record.Contacts))
	for _, contact := range record.Contacts {
		contacts = append(contacts, toContact(contact))
	}

	return domain.User{
		ID:        record.ID,
		Name:      record.Name,
		LastName:  record.LastName,
		Email:     record.Email,
		Password:  record.Password,
		PublicKey: record.PublicKey,
		SecretKey: record.SecretKey,
		Role:      record.Role,
		Wallets:   wallets,
		Contacts:  contacts,
	}
}

var _ usecase.UserRepository = (*UserRepository)(nil)
