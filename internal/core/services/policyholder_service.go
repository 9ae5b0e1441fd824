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

// Policy holder errors
var (
	ErrPolicyHolderNotFound = errors.New("policy holder not found")
	ErrProductNotFound      = errors.New("insurance product not found")
	ErrDocumentNotFound     = errors.New("kyc document not found")
	ErrDocumentNotPending   = errors.New("kyc document has already been decided")
)

// PolicyHolderService handles policy holders and their KYC documents
type PolicyHolderService struct {
	holderRepo  repositories.PolicyHolderRepository
	productRepo repositories.ProductRepository
}

// NewPolicyHolderService creates a new policy holder service
func NewPolicyHolderService(
	holderRepo repositories.PolicyHolderRepository,
	productRepo repositories.ProductRepository,
) *PolicyHolderService {
	return &PolicyHolderService{
		holderRepo:  holderRepo,
		productRepo: productRepo,
	}
}

// CreateHolderInput represents policy holder enrollment input
type CreateHolderInput struct {
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	ProductID     uint    `json:"product_id"`
	SumAssured    float64 `json:"sum_assured"`
	PremiumAmount float64 `json:"premium_amount"`
	AgentID       *uint   `json:"agent_id"`
	BranchID      *uint   `json:"branch_id"`
}

// UpdateHolderInput represents policy holder update input
type UpdateHolderInput struct {
	FullName      *string  `json:"full_name"`
	Email         *string  `json:"email"`
	Phone         *string  `json:"phone"`
	Address       *string  `json:"address"`
	PremiumAmount *float64 `json:"premium_amount"`
	IsActive      *bool    `json:"is_active"`
}

// KYCDocumentInput represents KYC document intake
type KYCDocumentInput struct {
	DocType   string `json:"doc_type"`
	DocNumber string `json:"doc_number"`
}

// ListHolders lists policy holders within the actor's branch scope
func (s *PolicyHolderService) ListHolders(ctx context.Context, actor *domain.Identity, offset, limit int) ([]*models.PolicyHolder, int64, error) {
	return s.holderRepo.List(ctx, guard.ScopeFor(actor), offset, limit)
}

// GetHolder gets a policy holder, enforcing the actor's branch scope
func (s *PolicyHolderService) GetHolder(ctx context.Context, actor *domain.Identity, id uint) (*models.PolicyHolder, error) {
	return s.loadScoped(ctx, actor, id)
}

// CreateHolder enrolls a policy holder under an insurance product.
// Branch admins enroll into their own branch only.
func (s *PolicyHolderService) CreateHolder(ctx context.Context, actor *domain.Identity, input *CreateHolderInput) (*models.PolicyHolder, error) {
	branchID := input.BranchID
	if actor.IsBranchAdmin() {
		branchID = actor.BranchID
	}
	if branchID == nil {
		return nil, ErrBranchRequired
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	premium := input.PremiumAmount
	if premium == 0 {
		premium = product.BasePremium
	}

	holder := &models.PolicyHolder{
		PolicyNo:      newRefNo("POL"),
		FullName:      input.FullName,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		ProductID:     product.ID,
		SumAssured:    input.SumAssured,
		PremiumAmount: premium,
		AgentID:       input.AgentID,
		BranchID:      branchID,
		IsActive:      true,
	}

	if err := s.holderRepo.Create(ctx, holder); err != nil {
		return nil, err
	}

	log.Printf("✅ Policy holder enrolled: %s (%s)", holder.PolicyNo, product.Code)
	return holder, nil
}

// UpdateHolder updates a policy holder within the actor's branch scope
func (s *PolicyHolderService) UpdateHolder(ctx context.Context, actor *domain.Identity, id uint, input *UpdateHolderInput) (*models.PolicyHolder, error) {
	holder, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		holder.FullName = *input.FullName
	}
	if input.Email != nil {
		holder.Email = *input.Email
	}
	if input.Phone != nil {
		holder.Phone = *input.Phone
	}
	if input.Address != nil {
		holder.Address = *input.Address
	}
	if input.PremiumAmount != nil {
		holder.PremiumAmount = *input.PremiumAmount
	}
	if input.IsActive != nil {
		holder.IsActive = *input.IsActive
	}

	if err := s.holderRepo.Update(ctx, holder); err != nil {
		return nil, err
	}
	return holder, nil
}

// DeleteHolder soft deletes a policy holder within the actor's branch scope
func (s *PolicyHolderService) DeleteHolder(ctx context.Context, actor *domain.Identity, id uint) error {
	if _, err := s.loadScoped(ctx, actor, id); err != nil {
		return err
	}
	return s.holderRepo.Delete(ctx, id)
}

// AddDocument records a KYC document for a holder. The document inherits
// the holder's branch so the scope applies to it uniformly.
func (s *PolicyHolderService) AddDocument(ctx context.Context, actor *domain.Identity, holderID uint, input *KYCDocumentInput) (*models.KYCDocument, error) {
	holder, err := s.loadScoped(ctx, actor, holderID)
	if err != nil {
		return nil, err
	}

	doc := &models.KYCDocument{
		PolicyHolderID: holder.ID,
		BranchID:       holder.BranchID,
		DocType:        input.DocType,
		DocNumber:      input.DocNumber,
		Status:         domain.KYCStatusPending,
	}

	if err := s.holderRepo.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments lists a holder's KYC documents within the actor's scope
func (s *PolicyHolderService) ListDocuments(ctx context.Context, actor *domain.Identity, holderID uint) ([]*models.KYCDocument, error) {
	if _, err := s.loadScoped(ctx, actor, holderID); err != nil {
		return nil, err
	}
	return s.holderRepo.ListDocuments(ctx, guard.ScopeFor(actor), holderID)
}

// VerifyDocument marks a pending KYC document verified or rejected
func (s *PolicyHolderService) VerifyDocument(ctx context.Context, actor *domain.Identity, docID uint, verified bool, remark string) (*models.KYCDocument, error) {
	doc, err := s.holderRepo.GetDocumentByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	if !guard.ScopeFor(actor).AllowsRecord(doc.OwningBranch()) {
		return nil, ErrOutOfScope
	}

	if doc.Status != domain.KYCStatusPending {
		return nil, ErrDocumentNotPending
	}

	now := time.Now()
	doc.VerifiedBy = &actor.ID
	doc.VerifiedAt = &now
	doc.Remark = remark
	if verified {
		doc.Status = domain.KYCStatusVerified
	} else {
		doc.Status = domain.KYCStatusRejected
	}

	if err := s.holderRepo.UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *PolicyHolderService) loadScoped(ctx context.Context, actor *domain.Identity, id uint) (*models.PolicyHolder, error) {
	holder, err := s.holderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPolicyHolderNotFound
		}
		return nil, err
	}

	if !guard.ScopeFor(actor).AllowsRecord(holder.OwningBranch()) {
		return nil, ErrOutOfScope
	}

	return holder, nil
}
