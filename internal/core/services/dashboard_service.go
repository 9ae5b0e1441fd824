package services

import (
	"context"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/core/domain"
	"silc-backoffice/internal/core/guard"
)

// DashboardService aggregates counts for the console landing page.
// Every count runs through the actor's branch scope, so a branch admin
// only ever sees its own branch's numbers.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardSummary represents the console landing page figures
type DashboardSummary struct {
	ActiveAgents     int64   `json:"active_agents"`
	PolicyHolders    int64   `json:"policy_holders"`
	PendingClaims    int64   `json:"pending_claims"`
	OpenLoans        int64   `json:"open_loans"`
	PendingKYC       int64   `json:"pending_kyc"`
	PremiumThisMonth float64 `json:"premium_this_month"`
}

// GetSummary computes the dashboard figures for the actor
func (s *DashboardService) GetSummary(ctx context.Context, actor *domain.Identity, periodMonth string) (*DashboardSummary, error) {
	scope := guard.ScopeFor(actor)
	summary := &DashboardSummary{}

	if err := scope.Apply(s.db.WithContext(ctx).Model(&models.Agent{})).
		Where("is_active = ?", true).
		Count(&summary.ActiveAgents).Error; err != nil {
		return nil, err
	}

	if err := scope.Apply(s.db.WithContext(ctx).Model(&models.PolicyHolder{})).
		Where("is_active = ?", true).
		Count(&summary.PolicyHolders).Error; err != nil {
		return nil, err
	}

	if err := scope.Apply(s.db.WithContext(ctx).Model(&models.Claim{})).
		Where("status IN ?", []string{domain.ClaimStatusFiled, domain.ClaimStatusUnderReview}).
		Count(&summary.PendingClaims).Error; err != nil {
		return nil, err
	}

	if err := scope.Apply(s.db.WithContext(ctx).Model(&models.Loan{})).
		Where("status IN ?", []string{domain.LoanStatusRequested, domain.LoanStatusApproved}).
		Count(&summary.OpenLoans).Error; err != nil {
		return nil, err
	}

	if err := scope.Apply(s.db.WithContext(ctx).Model(&models.KYCDocument{})).
		Where("status = ?", domain.KYCStatusPending).
		Count(&summary.PendingKYC).Error; err != nil {
		return nil, err
	}

	var premium *float64
	if err := scope.Apply(s.db.WithContext(ctx).Model(&models.PremiumPayment{})).
		Where("period_month = ?", periodMonth).
		Select("SUM(amount)").
		Scan(&premium).Error; err != nil {
		return nil, err
	}
	if premium != nil {
		summary.PremiumThisMonth = *premium
	}

	return summary, nil
}
