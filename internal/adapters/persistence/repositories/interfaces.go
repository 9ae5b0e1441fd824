package repositories

import (
	"context"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/core/guard"
)

// UserRepository defines console user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, scope guard.Scope, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// SessionRepository defines session data access.
// A session row carries the identity snapshot and token hash together.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// BranchRepository defines branch master data access
type BranchRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id uint) (*models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id uint) error
	ListActive(ctx context.Context) ([]*models.Branch, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// ProductRepository defines insurance product master data access
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	ListActive(ctx context.Context) ([]*models.Product, error)
}

// AgentRepository defines agent and agent application data access
type AgentRepository interface {
	Create(ctx context.Context, agent *models.Agent) error
	GetByID(ctx context.Context, id uint) (*models.Agent, error)
	Update(ctx context.Context, agent *models.Agent) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, scope guard.Scope, offset, limit int) ([]*models.Agent, int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)

	CreateApplication(ctx context.Context, app *models.AgentApplication) error
	GetApplicationByID(ctx context.Context, id uint) (*models.AgentApplication, error)
	UpdateApplication(ctx context.Context, app *models.AgentApplication) error
	ListApplications(ctx context.Context, scope guard.Scope, status string, offset, limit int) ([]*models.AgentApplication, int64, error)
}

// PolicyHolderRepository defines policy holder and KYC document data access
type PolicyHolderRepository interface {
	Create(ctx context.Context, holder *models.PolicyHolder) error
	GetByID(ctx context.Context, id uint) (*models.PolicyHolder, error)
	Update(ctx context.Context, holder *models.PolicyHolder) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, scope guard.Scope, offset, limit int) ([]*models.PolicyHolder, int64, error)
	ExistsByPolicyNo(ctx context.Context, policyNo string) (bool, error)

	CreateDocument(ctx context.Context, doc *models.KYCDocument) error
	GetDocumentByID(ctx context.Context, id uint) (*models.KYCDocument, error)
	UpdateDocument(ctx context.Context, doc *models.KYCDocument) error
	ListDocuments(ctx context.Context, scope guard.Scope, holderID uint) ([]*models.KYCDocument, error)
}

// ClaimRepository defines claim data access
type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	GetByID(ctx context.Context, id uint) (*models.Claim, error)
	Update(ctx context.Context, claim *models.Claim) error
	List(ctx context.Context, scope guard.Scope, status string, offset, limit int) ([]*models.Claim, int64, error)

	CreateTransition(ctx context.Context, transition *models.ClaimTransition) error
	ListTransitions(ctx context.Context, claimID uint) ([]*models.ClaimTransition, error)
}

// LoanRepository defines loan data access
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	List(ctx context.Context, scope guard.Scope, offset, limit int) ([]*models.Loan, int64, error)

	CreateRepayment(ctx context.Context, repayment *models.LoanRepayment) error
	ListRepayments(ctx context.Context, loanID uint) ([]*models.LoanRepayment, error)
}

// PaymentRepository defines premium payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.PremiumPayment) error
	GetByID(ctx context.Context, id uint) (*models.PremiumPayment, error)
	List(ctx context.Context, scope guard.Scope, holderID uint, offset, limit int) ([]*models.PremiumPayment, int64, error)
}
