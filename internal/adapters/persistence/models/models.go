package models

import (
	"time"

	"gorm.io/gorm"

	"silc-backoffice/internal/core/domain"
)

// ============================================================
// Masters: Branches & Insurance Products
// ============================================================

// Branch represents branches table
type Branch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Address   string         `gorm:"type:text" json:"address"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Branch) TableName() string {
	return "branches"
}

// Product represents insurance products master
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	BasePremium float64        `gorm:"type:decimal(15,2);not null" json:"base_premium"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// ============================================================
// Auth: Users & Sessions
// ============================================================

// User represents console users. BranchID is null only for super admins.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email       string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	DisplayName string         `gorm:"size:100" json:"display_name"`
	Role        string         `gorm:"size:20;default:'BRANCH_ADMIN'" json:"role"`
	BranchID    *uint          `gorm:"index" json:"branch_id"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// OwningBranch implements guard.BranchOwned
func (u *User) OwningBranch() *uint {
	return u.BranchID
}

// ToIdentity builds the actor record from the stored user row.
// The display name falls back to the username; the branch name is
// filled when the Branch relation is loaded.
func (u *User) ToIdentity() *domain.Identity {
	identity := &domain.Identity{
		ID:          u.ID,
		Role:        domain.Role(u.Role),
		BranchID:    u.BranchID,
		DisplayName: u.DisplayName,
	}
	if identity.DisplayName == "" {
		identity.DisplayName = u.Username
	}
	if u.Branch != nil {
		identity.BranchName = u.Branch.Name
	} else if u.BranchID != nil {
		identity.BranchName = "Branch"
	}
	return identity
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	BranchID    *uint     `json:"branch_id"`
	BranchName  string    `json:"branch_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		BranchID:    u.BranchID,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
	if u.Branch != nil {
		resp.BranchName = u.Branch.Name
	}
	return resp
}

// Session represents sessions table. The identity snapshot and the token
// hash live in the same row so they are written and cleared atomically.
type Session struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	SessionID string     `gorm:"size:36;uniqueIndex;not null" json:"session_id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	Identity  string     `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// ============================================================
// Agents
// ============================================================

// Agent represents field agents attached to a branch
type Agent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	FullName  string         `gorm:"size:100;not null" json:"full_name"`
	Email     string         `gorm:"size:100" json:"email"`
	Phone     string         `gorm:"size:20" json:"phone"`
	BranchID  *uint          `gorm:"index" json:"branch_id"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Agent) TableName() string {
	return "agents"
}

func (a *Agent) OwningBranch() *uint {
	return a.BranchID
}

// AgentApplication represents a pending agent recruitment application
type AgentApplication struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ApplicantName string     `gorm:"size:100;not null" json:"applicant_name"`
	Email         string     `gorm:"size:100;not null" json:"email"`
	Phone         string     `gorm:"size:20" json:"phone"`
	BranchID      *uint      `gorm:"index" json:"branch_id"`
	Status        string     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	ReviewedBy    *uint      `json:"reviewed_by"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	Remark        string     `gorm:"type:text" json:"remark"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Branch   *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Reviewer *User   `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
}

func (AgentApplication) TableName() string {
	return "agent_applications"
}

func (a *AgentApplication) OwningBranch() *uint {
	return a.BranchID
}

// ============================================================
// Policy Holders & KYC
// ============================================================

// PolicyHolder represents an insured customer and their policy
type PolicyHolder struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PolicyNo      string         `gorm:"size:30;uniqueIndex;not null" json:"policy_no"`
	FullName      string         `gorm:"size:100;not null" json:"full_name"`
	Email         string         `gorm:"size:100" json:"email"`
	Phone         string         `gorm:"size:20" json:"phone"`
	Address       string         `gorm:"type:text" json:"address"`
	ProductID     uint           `gorm:"not null" json:"product_id"`
	SumAssured    float64        `gorm:"type:decimal(15,2);not null" json:"sum_assured"`
	PremiumAmount float64        `gorm:"type:decimal(15,2);not null" json:"premium_amount"`
	AgentID       *uint          `gorm:"index" json:"agent_id"`
	BranchID      *uint          `gorm:"index" json:"branch_id"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Agent   *Agent   `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	Branch  *Branch  `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (PolicyHolder) TableName() string {
	return "policy_holders"
}

func (p *PolicyHolder) OwningBranch() *uint {
	return p.BranchID
}

// KYCDocument represents an identity document submitted by a policy holder
type KYCDocument struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	PolicyHolderID uint       `gorm:"index;not null" json:"policy_holder_id"`
	BranchID       *uint      `gorm:"index" json:"branch_id"`
	DocType        string     `gorm:"size:30;not null" json:"doc_type"`
	DocNumber      string     `gorm:"size:50" json:"doc_number"`
	Status         string     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	VerifiedBy     *uint      `json:"verified_by"`
	VerifiedAt     *time.Time `json:"verified_at"`
	Remark         string     `gorm:"type:text" json:"remark"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	PolicyHolder *PolicyHolder `gorm:"foreignKey:PolicyHolderID" json:"policy_holder,omitempty"`
	Verifier     *User         `gorm:"foreignKey:VerifiedBy" json:"verifier,omitempty"`
}

func (KYCDocument) TableName() string {
	return "kyc_documents"
}

func (k *KYCDocument) OwningBranch() *uint {
	return k.BranchID
}

// ============================================================
// Claims
// ============================================================

// Claim represents a policy claim
type Claim struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ClaimNo        string     `gorm:"size:30;uniqueIndex;not null" json:"claim_no"`
	PolicyHolderID uint       `gorm:"index;not null" json:"policy_holder_id"`
	BranchID       *uint      `gorm:"index" json:"branch_id"`
	Amount         float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Reason         string     `gorm:"type:text" json:"reason"`
	Status         string     `gorm:"size:20;not null;default:'FILED'" json:"status"`
	FiledAt        time.Time  `gorm:"not null" json:"filed_at"`
	DecidedBy      *uint      `json:"decided_by"`
	DecidedAt      *time.Time `json:"decided_at"`
	SettledAt      *time.Time `json:"settled_at"`
	Remark         string     `gorm:"type:text" json:"remark"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	PolicyHolder *PolicyHolder `gorm:"foreignKey:PolicyHolderID" json:"policy_holder,omitempty"`
	Decider      *User         `gorm:"foreignKey:DecidedBy" json:"decider,omitempty"`
}

func (Claim) TableName() string {
	return "claims"
}

func (c *Claim) OwningBranch() *uint {
	return c.BranchID
}

// ClaimTransition records a claim status change (history)
type ClaimTransition struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClaimID     uint      `gorm:"index;not null" json:"claim_id"`
	FromStatus  string    `gorm:"size:20" json:"from_status"`
	ToStatus    string    `gorm:"size:20;not null" json:"to_status"`
	PerformedBy uint      `gorm:"not null" json:"performed_by"`
	Remark      string    `gorm:"type:text" json:"remark"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Claim     *Claim `gorm:"foreignKey:ClaimID" json:"claim,omitempty"`
	Performer *User  `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (ClaimTransition) TableName() string {
	return "claim_transitions"
}

// ============================================================
// Loans & Premium Payments
// ============================================================

// Loan represents a policy-backed loan
type Loan struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	LoanNo         string     `gorm:"size:30;uniqueIndex;not null" json:"loan_no"`
	PolicyHolderID uint       `gorm:"index;not null" json:"policy_holder_id"`
	BranchID       *uint      `gorm:"index" json:"branch_id"`
	Amount         float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	InterestRate   float64    `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	Status         string     `gorm:"size:20;not null;default:'REQUESTED'" json:"status"`
	DecidedBy      *uint      `json:"decided_by"`
	DecidedAt      *time.Time `json:"decided_at"`
	Remark         string     `gorm:"type:text" json:"remark"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	PolicyHolder *PolicyHolder `gorm:"foreignKey:PolicyHolderID" json:"policy_holder,omitempty"`
	Decider      *User         `gorm:"foreignKey:DecidedBy" json:"decider,omitempty"`
	Repayments   []LoanRepayment `gorm:"foreignKey:LoanID" json:"repayments,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) OwningBranch() *uint {
	return l.BranchID
}

// LoanRepayment records a repayment against a loan
type LoanRepayment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LoanID     uint      `gorm:"index;not null" json:"loan_id"`
	Amount     float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaidAt     time.Time `gorm:"not null" json:"paid_at"`
	RecordedBy uint      `gorm:"not null" json:"recorded_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Loan *Loan `gorm:"foreignKey:LoanID" json:"-"`
}

func (LoanRepayment) TableName() string {
	return "loan_repayments"
}

// PremiumPayment represents a collected premium
type PremiumPayment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ReceiptNo      string    `gorm:"size:30;uniqueIndex;not null" json:"receipt_no"`
	PolicyHolderID uint      `gorm:"index;not null" json:"policy_holder_id"`
	BranchID       *uint     `gorm:"index" json:"branch_id"`
	Amount         float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	PeriodMonth    string    `gorm:"size:7;not null" json:"period_month"`
	Method         string    `gorm:"size:20;not null;default:'CASH'" json:"method"`
	CollectedBy    uint      `gorm:"not null" json:"collected_by"`
	PaidAt         time.Time `gorm:"not null" json:"paid_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	PolicyHolder *PolicyHolder `gorm:"foreignKey:PolicyHolderID" json:"policy_holder,omitempty"`
	Collector    *User         `gorm:"foreignKey:CollectedBy" json:"collector,omitempty"`
}

func (PremiumPayment) TableName() string {
	return "premium_payments"
}

func (p *PremiumPayment) OwningBranch() *uint {
	return p.BranchID
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Branch{},
		&Product{},
		&User{},
		&Session{},
		&Agent{},
		&AgentApplication{},
		&PolicyHolder{},
		&KYCDocument{},
		&Claim{},
		&ClaimTransition{},
		&Loan{},
		&LoanRepayment{},
		&PremiumPayment{},
	)
}
