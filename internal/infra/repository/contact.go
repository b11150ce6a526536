package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/openlumen/walletd/internal/domain"
	"github.com/openlumen/walletd/internal/infra/database/models"
	"github.com/openlumen/walletd/internal/usecase"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) GetByID(ctx context.Context, id uint) (*domain.Contact, error) {
	var record models.Contact
	err := r.db.WithContext(ctx).Take(&record, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load contact")
	}
	contact := toContact(record)
	return &contact, nil
}

func (r *ContactRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Contact, error) {
	var records []models.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	contacts := make([]domain.Contact, 0, len(records))
	for _, record := range records {
		contacts = append(contacts, toContact(record))
	}
	return contacts, nil
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	record := models.Contact{
		UserID:    contact.UserID,
		Alias:     contact.Alias,
		PublicKey: contact.PublicKey,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return errors.Wrap(err, "failed to create contact")
	}
	contact.ID = record.ID
	return nil
}

func (r *ContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	err := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("id = ?", contact.ID).
		Updates(map[string]any{
			"alias":      contact.Alias,
			"public_key": contact.PublicKey,
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed to update contact")
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.Contact{}, id).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete contact")
	}
	return nil
}

func toContact(record models.Contact) domain.Contact {
	return domain.Contact{
		ID:        record.ID,
		Alias:     record.Alias,
		UserID:    record.UserID,
		PublicKey: record.PublicKey,
	}
}

var _ usecase.ContactRepository = (*ContactRepository)(nil)
