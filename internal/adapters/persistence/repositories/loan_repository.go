package repositories

import (
	"context"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/core/guard"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID with relations
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("PolicyHolder").
		Preload("Decider").
		Where("id = ?", id).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Update updates a loan
func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// List lists loans within the actor's branch scope with pagination
func (r *loanRepository) List(ctx context.Context, scope guard.Scope, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	if err := scope.Apply(r.db.WithContext(ctx).Model(&models.Loan{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := scope.Apply(r.db.WithContext(ctx)).
		Preload("PolicyHolder").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error

	return loans, total, err
}

// CreateRepayment records a repayment against a loan
func (r *loanRepository) CreateRepayment(ctx context.Context, repayment *models.LoanRepayment) error {
	return r.db.WithContext(ctx).Create(repayment).Error
}

// ListRepayments gets a loan's repayment history
func (r *loanRepository) ListRepayments(ctx context.Context, loanID uint) ([]*models.LoanRepayment, error) {
	var repayments []*models.LoanRepayment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("paid_at DESC").
		Find(&repayments).Error
	return repayments, err
}
