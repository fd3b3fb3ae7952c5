package confirmation

import (
	"context"
	"delegasi-pay/internal/common/models"
	database "delegasi-pay/internal/pkg/db"
)

type IRepository interface {
	Create(ctx context.Context, confirmation *models.PaymentConfirmation) error
	FindByID(ctx context.Context, id string) (*models.PaymentConfirmation, error)
	FindByReference(ctx context.Context, referenceID string) ([]models.PaymentConfirmation, error)
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, confirmation *models.PaymentConfirmation) error {
	return r.db.WithContext(ctx).Create(confirmation).Error
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.PaymentConfirmation, error) {
	var confirmation models.PaymentConfirmation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&confirmation).Error
	if err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (r *Repository) FindByReference(ctx context.Context, referenceID string) ([]models.PaymentConfirmation, error) {
	var confirmations []models.PaymentConfirmation
	err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("confirmed_at desc").
		Find(&confirmations).Error
	if err != nil {
		return nil, err
	}
	return confirmations, nil
}
