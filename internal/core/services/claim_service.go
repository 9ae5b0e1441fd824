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

// Claim errors
var (
	ErrClaimNotFound          = errors.New("claim not found")
	ErrClaimInvalidTransition = errors.New("invalid claim status transition")
)

// claimTransitions defines the allowed status machine:
// FILED -> UNDER_REVIEW -> APPROVED | REJECTED, APPROVED -> SETTLED.
var claimTransitions = map[string][]string{
	domain.ClaimStatusFiled:       {domain.ClaimStatusUnderReview},
	domain.ClaimStatusUnderReview: {domain.ClaimStatusApproved, domain.ClaimStatusRejected},
	domain.ClaimStatusApproved:    {domain.ClaimStatusSettled},
}

// ClaimService handles the claim lifecycle. Every status change is
// recorded as a transition row for audit.
type ClaimService struct {
	claimRepo  repositories.ClaimRepository
	holderRepo repositories.PolicyHolderRepository
}

// NewClaimService creates a new claim service
func NewClaimService(
	claimRepo repositories.ClaimRepository,
	holderRepo repositories.PolicyHolderRepository,
) *ClaimService {
	return &ClaimService{
		claimRepo:  claimRepo,
		holderRepo: holderRepo,
	}
}

// FileClaimInput represents claim intake
type FileClaimInput struct {
	PolicyHolderID uint    `json:"policy_holder_id"`
	Amount         float64 `json:"amount"`
	Reason         string  `json:"reason"`
}

// FileClaim files a claim against a policy. The claim inherits the
// holder's branch, and the holder itself must be inside the actor's scope.
func (s *ClaimService) FileClaim(ctx context.Context, actor *domain.Identity, input *FileClaimInput) (*models.Claim, error) {
	// 1. Resolve the policy holder inside the actor's scope
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

	// 2. Create the claim in FILED state
	claim := &models.Claim{
		ClaimNo:        newRefNo("CLM"),
		PolicyHolderID: holder.ID,
		BranchID:       holder.BranchID,
		Amount:         input.Amount,
		Reason:         input.Reason,
		Status:         domain.ClaimStatusFiled,
		FiledAt:        time.Now(),
	}
	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	// 3. Record the initial transition
	_ = s.claimRepo.CreateTransition(ctx, &models.ClaimTransition{
		ClaimID:     claim.ID,
		ToStatus:    domain.ClaimStatusFiled,
		PerformedBy: actor.ID,
	})

	log.Printf("✅ Claim filed: %s (policy %s)", claim.ClaimNo, holder.PolicyNo)
	return claim, nil
}

// ListClaims lists claims within the actor's branch scope
func (s *ClaimService) ListClaims(ctx context.Context, actor *domain.Identity, status string, offset, limit int) ([]*models.Claim, int64, error) {
	return s.claimRepo.List(ctx, guard.ScopeFor(actor), status, offset, limit)
}

// GetClaim gets a claim, enforcing the actor's branch scope
func (s *ClaimService) GetClaim(ctx context.Context, actor *domain.Identity, id uint) (*models.Claim, error) {
	return s.loadScoped(ctx, actor, id)
}

// GetHistory returns the transition history of a claim
func (s *ClaimService) GetHistory(ctx context.Context, actor *domain.Identity, id uint) ([]*models.ClaimTransition, error) {
	if _, err := s.loadScoped(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.claimRepo.ListTransitions(ctx, id)
}

// StartReview moves a FILED claim into UNDER_REVIEW
func (s *ClaimService) StartReview(ctx context.Context, actor *domain.Identity, id uint) (*models.Claim, error) {
	return s.transition(ctx, actor, id, domain.ClaimStatusUnderReview, "", false)
}

// Approve approves a claim under review
func (s *ClaimService) Approve(ctx context.Context, actor *domain.Identity, id uint, remark string) (*models.Claim, error) {
	return s.transition(ctx, actor, id, domain.ClaimStatusApproved, remark, true)
}

// Reject rejects a claim under review
func (s *ClaimService) Reject(ctx context.Context, actor *domain.Identity, id uint, remark string) (*models.Claim, error) {
	return s.transition(ctx, actor, id, domain.ClaimStatusRejected, remark, true)
}

// Settle marks an approved claim as paid out
func (s *ClaimService) Settle(ctx context.Context, actor *domain.Identity, id uint) (*models.Claim, error) {
	claim, err := s.transition(ctx, actor, id, domain.ClaimStatusSettled, "", false)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	claim.SettledAt = &now
	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// transition applies one step of the status machine with the branch
// boundary re-checked on the loaded record.
func (s *ClaimService) transition(ctx context.Context, actor *domain.Identity, id uint, toStatus, remark string, decision bool) (*models.Claim, error) {
	claim, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(claim.Status, toStatus) {
		return nil, ErrClaimInvalidTransition
	}

	fromStatus := claim.Status
	claim.Status = toStatus
	if remark != "" {
		claim.Remark = remark
	}
	if decision {
		now := time.Now()
		claim.DecidedBy = &actor.ID
		claim.DecidedAt = &now
	}

	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}

	_ = s.claimRepo.CreateTransition(ctx, &models.ClaimTransition{
		ClaimID:     claim.ID,
		FromStatus:  fromStatus,
		ToStatus:    toStatus,
		PerformedBy: actor.ID,
		Remark:      remark,
	})

	log.Printf("✅ Claim %s: %s → %s", claim.ClaimNo, fromStatus, toStatus)
	return claim, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range claimTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *ClaimService) loadScoped(ctx context.Context, actor *domain.Identity, id uint) (*models.Claim, error) {
	claim, err := s.claimRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}

	if !guard.ScopeFor(actor).AllowsRecord(claim.OwningBranch()) {
		return nil, ErrOutOfScope
	}

	return claim, nil
}
