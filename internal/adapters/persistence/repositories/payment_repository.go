package repositories

import (
	"context"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/core/guard"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new premium payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create records a collected premium
func (r *paymentRepository) Create(ctx context.Context, payment *models.PremiumPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByID gets a payment by ID with relations
func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.PremiumPayment, error) {
	var payment models.PremiumPayment
	err := r.db.WithContext(ctx).
		Preload("PolicyHolder").
		Preload("Collector").
		Where("id = ?", id).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// List lists payments within the actor's branch scope, optionally by holder
func (r *paymentRepository) List(ctx context.Context, scope guard.Scope, holderID uint, offset, limit int) ([]*models.PremiumPayment, int64, error) {
	var payments []*models.PremiumPayment
	var total int64

	countQuery := scope.Apply(r.db.WithContext(ctx).Model(&models.PremiumPayment{}))
	if holderID != 0 {
		countQuery = countQuery.Where("policy_holder_id = ?", holderID)
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := scope.Apply(r.db.WithContext(ctx))
	if holderID != 0 {
		listQuery = listQuery.Where("policy_holder_id = ?", holderID)
	}
	err := listQuery.
		Preload("PolicyHolder").
		Order("paid_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error

	return payments, total, err
}
