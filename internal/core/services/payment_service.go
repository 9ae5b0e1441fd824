package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/adapters/persistence/repositories"
	"silc-backoffice/internal/core/domain"
	"silc-backoffice/internal/core/guard"
)

// Payment errors
var (
	ErrPaymentNotFound = errors.New("premium payment not found")
	ErrInvalidAmount   = errors.New("payment amount must be positive")
)

// PaymentService handles premium collection
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	holderRepo  repositories.PolicyHolderRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	holderRepo repositories.PolicyHolderRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		holderRepo:  holderRepo,
	}
}

// CollectPremiumInput represents premium collection input
type CollectPremiumInput struct {
	PolicyHolderID uint    `json:"policy_holder_id"`
	Amount         float64 `json:"amount"`
	PeriodMonth    string  `json:"period_month"`
	Method         string  `json:"method"`
}

// CollectPremium records a premium payment. The payment inherits the
// holder's branch, and the holder must be inside the actor's scope.
func (s *PaymentService) CollectPremium(ctx context.Context, actor *domain.Identity, input *CollectPremiumInput) (*models.PremiumPayment, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	holder, err := s.holderRepo.GetByID(ctx, input.PolicyHolderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPolicyHolderNotFound
		}
		return nil, err
	}
	if !guard.ScopeFor(actor).AllowsRecord(holder.OwningBranch()) {
		return nil, ErrOutOfScope
	}

	method := input.Method
	if method == "" {
		method = "CASH"
	}

	payment := &models.PremiumPayment{
		ReceiptNo:      newRefNo("RCP"),
		PolicyHolderID: holder.ID,
		BranchID:       holder.BranchID,
		Amount:         input.Amount,
		PeriodMonth:    input.PeriodMonth,
		Method:         method,
		CollectedBy:    actor.ID,
		PaidAt:         time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	log.Printf("✅ Premium collected: %s (policy %s, %s)", payment.ReceiptNo, holder.PolicyNo, payment.PeriodMonth)
	return payment, nil
}

// ListPayments lists premium payments within the actor's branch scope.
// holderID of 0 lists across all holders in scope.
func (s *PaymentService) ListPayments(ctx context.Context, actor *domain.Identity, holderID uint, offset, limit int) ([]*models.PremiumPayment, int64, error) {
	return s.paymentRepo.List(ctx, guard.ScopeFor(actor), holderID, offset, limit)
}

// GetPayment gets a payment, enforcing the actor's branch scope
func (s *PaymentService) GetPayment(ctx context.Context, actor *domain.Identity, id uint) (*models.PremiumPayment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if !guard.ScopeFor(actor).AllowsRecord(payment.OwningBranch()) {
		return nil, ErrOutOfScope
	}

	return payment, nil
}
