package repositories

import (
	"context"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/core/guard"
)

// claimRepository implements ClaimRepository interface
type claimRepository struct {
	db *gorm.DB
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

// Create creates a new claim
func (r *claimRepository) Create(ctx context.Context, claim *models.Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

// GetByID gets a claim by ID with relations
func (r *claimRepository) GetByID(ctx context.Context, id uint) (*models.Claim, error) {
	var claim models.Claim
	err := r.db.WithContext(ctx).
		Preload("PolicyHolder").
		Preload("Decider").
		Where("id = ?", id).
		First(&claim).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// Update updates a claim
func (r *claimRepository) Update(ctx context.Context, claim *models.Claim) error {
	return r.db.WithContext(ctx).Save(claim).Error
}

// List lists claims within the actor's branch scope, optionally by status
func (r *claimRepository) List(ctx context.Context, scope guard.Scope, status string, offset, limit int) ([]*models.Claim, int64, error) {
	var claims []*models.Claim
	var total int64

	countQuery := scope.Apply(r.db.WithContext(ctx).Model(&models.Claim{}))
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := scope.Apply(r.db.WithContext(ctx))
	if status != "" {
		listQuery = listQuery.Where("status = ?", status)
	}
	err := listQuery.
		Preload("PolicyHolder").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&claims).Error

	return claims, total, err
}

// CreateTransition records a claim status change
func (r *claimRepository) CreateTransition(ctx context.Context, transition *models.ClaimTransition) error {
	return r.db.WithContext(ctx).Create(transition).Error
}

// ListTransitions gets a claim's status history
func (r *claimRepository) ListTransitions(ctx context.Context, claimID uint) ([]*models.ClaimTransition, error) {
	var transitions []*models.ClaimTransition
	err := r.db.WithContext(ctx).
		Preload("Performer").
		Where("claim_id = ?", claimID).
		Order("created_at DESC").
		Find(&transitions).Error
	return transitions, err
}
