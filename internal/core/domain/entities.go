package domain

// Role represents an actor role in the console
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleBranchAdmin Role = "BRANCH_ADMIN"
	// Reserved roles - no console permissions are granted to them
	RoleAgent    Role = "AGENT"
	RoleCustomer Role = "CUSTOMER"
)

// IsValid checks if the role is part of the closed enumeration
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleBranchAdmin, RoleAgent, RoleCustomer:
		return true
	}
	return false
}

// Identity represents the authenticated actor.
// Claims come from this record (built at login), never from decoding the token.
type Identity struct {
	ID          uint   `json:"id"`
	Role        Role   `json:"role"`
	BranchID    *uint  `json:"branch_id"`
	DisplayName string `json:"display_name"`
	BranchName  string `json:"branch_name,omitempty"`
}

// IsSuperAdmin returns true if the actor is the super administrator
func (i *Identity) IsSuperAdmin() bool {
	return i != nil && i.Role == RoleSuperAdmin
}

// IsBranchAdmin returns true if the actor is a branch administrator
func (i *Identity) IsBranchAdmin() bool {
	return i != nil && i.Role == RoleBranchAdmin
}

// UserBranchID returns the branch the actor is confined to.
// Nil means unauthenticated or unscoped (super admin).
func (i *Identity) UserBranchID() *uint {
	if i == nil {
		return nil
	}
	return i.BranchID
}

// Claim statuses
const (
	ClaimStatusFiled       = "FILED"
	ClaimStatusUnderReview = "UNDER_REVIEW"
	ClaimStatusApproved    = "APPROVED"
	ClaimStatusRejected    = "REJECTED"
	ClaimStatusSettled     = "SETTLED"
)

// Loan statuses
const (
	LoanStatusRequested = "REQUESTED"
	LoanStatusApproved  = "APPROVED"
	LoanStatusRejected  = "REJECTED"
	LoanStatusClosed    = "CLOSED"
)

// Agent application statuses
const (
	ApplicationStatusPending  = "PENDING"
	ApplicationStatusApproved = "APPROVED"
	ApplicationStatusRejected = "REJECTED"
)

// KYC document statuses
const (
	KYCStatusPending  = "PENDING"
	KYCStatusVerified = "VERIFIED"
	KYCStatusRejected = "REJECTED"
)
