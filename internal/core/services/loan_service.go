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

// Loan errors
var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrLoanNotRequested  = errors.New("loan has already been decided")
	ErrLoanNotApproved   = errors.New("loan is not in approved state")
	ErrRepaymentTooLarge = errors.New("repayment exceeds outstanding balance")
)

// LoanService handles policy-backed loans and their repayments
type LoanService struct {
	loanRepo   repositories.LoanRepository
	holderRepo repositories.PolicyHolderRepository
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	holderRepo repositories.PolicyHolderRepository,
) *LoanService {
	return &LoanService{
		loanRepo:   loanRepo,
		holderRepo: holderRepo,
	}
}

// RequestLoanInput represents loan request intake
type RequestLoanInput struct {
	PolicyHolderID uint    `json:"policy_holder_id"`
	Amount         float64 `json:"amount"`
	InterestRate   float64 `json:"interest_rate"`
}

// RepaymentInput represents a repayment entry
type RepaymentInput struct {
	Amount float64 `json:"amount"`
}

// RequestLoan records a loan request against a policy. The loan inherits
// the holder's branch, and the holder must be inside the actor's scope.
func (s *LoanService) RequestLoan(ctx context.Context, actor *domain.Identity, input *RequestLoanInput) (*models.Loan, error) {
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

	loan := &models.Loan{
		LoanNo:         newRefNo("LON"),
		PolicyHolderID: holder.ID,
		BranchID:       holder.BranchID,
		Amount:         input.Amount,
		InterestRate:   input.InterestRate,
		Status:         domain.LoanStatusRequested,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	log.Printf("✅ Loan requested: %s (policy %s)", loan.LoanNo, holder.PolicyNo)
	return loan, nil
}

// ListLoans lists loans within the actor's branch scope
func (s *LoanService) ListLoans(ctx context.Context, actor *domain.Identity, offset, limit int) ([]*models.Loan, int64, error) {
	return s.loanRepo.List(ctx, guard.ScopeFor(actor), offset, limit)
}

// GetLoan gets a loan, enforcing the actor's branch scope
func (s *LoanService) GetLoan(ctx context.Context, actor *domain.Identity, id uint) (*models.Loan, error) {
	return s.loadScoped(ctx, actor, id)
}

// Decide approves or rejects a requested loan
func (s *LoanService) Decide(ctx context.Context, actor *domain.Identity, id uint, approve bool, remark string) (*models.Loan, error) {
	loan, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if loan.Status != domain.LoanStatusRequested {
		return nil, ErrLoanNotRequested
	}

	now := time.Now()
	loan.DecidedBy = &actor.ID
	loan.DecidedAt = &now
	loan.Remark = remark
	if approve {
		loan.Status = domain.LoanStatusApproved
	} else {
		loan.Status = domain.LoanStatusRejected
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	log.Printf("✅ Loan %s decided: %s", loan.LoanNo, loan.Status)
	return loan, nil
}

// RecordRepayment records a repayment against an approved loan. When the
// outstanding balance reaches zero the loan is closed.
func (s *LoanService) RecordRepayment(ctx context.Context, actor *domain.Identity, id uint, input *RepaymentInput) (*models.Loan, error) {
	loan, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if loan.Status != domain.LoanStatusApproved {
		return nil, ErrLoanNotApproved
	}

	repayments, err := s.loanRepo.ListRepayments(ctx, loan.ID)
	if err != nil {
		return nil, err
	}

	var repaid float64
	for _, r := range repayments {
		repaid += r.Amount
	}
	outstanding := loan.Amount - repaid
	if input.Amount > outstanding {
		return nil, ErrRepaymentTooLarge
	}

	repayment := &models.LoanRepayment{
		LoanID:     loan.ID,
		Amount:     input.Amount,
		PaidAt:     time.Now(),
		RecordedBy: actor.ID,
	}
	if err := s.loanRepo.CreateRepayment(ctx, repayment); err != nil {
		return nil, err
	}

	if repaid+input.Amount >= loan.Amount {
		loan.Status = domain.LoanStatusClosed
		if err := s.loanRepo.Update(ctx, loan); err != nil {
			return nil, err
		}
		log.Printf("✅ Loan %s fully repaid and closed", loan.LoanNo)
	}

	return loan, nil
}

// ListRepayments returns the repayment history of a loan
func (s *LoanService) ListRepayments(ctx context.Context, actor *domain.Identity, id uint) ([]*models.LoanRepayment, error) {
	if _, err := s.loadScoped(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.loanRepo.ListRepayments(ctx, id)
}

func (s *LoanService) loadScoped(ctx context.Context, actor *domain.Identity, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	if !guard.ScopeFor(actor).AllowsRecord(loan.OwningBranch()) {
		return nil, ErrOutOfScope
	}

	return loan, nil
}
