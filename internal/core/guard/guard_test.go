package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"silc-backoffice/internal/core/domain"
)

func identity(role domain.Role, branchID *uint) *domain.Identity {
	return &domain.Identity{ID: 1, Role: role, BranchID: branchID}
}

func uintPtr(v uint) *uint {
	return &v
}

func TestEvaluate_LoadingYieldsPending(t *testing.T) {
	// While the session is restoring, no terminal decision may be taken,
	// even when there is no identity yet.
	decision := Evaluate(Session{Loading: true}, Requirement{}, "/claims")

	assert.Equal(t, StatePending, decision.State)
	assert.Empty(t, decision.RedirectTo)
}

func TestEvaluate_LoadingWithRoleRestrictionStillPending(t *testing.T) {
	sess := Session{Loading: true, Identity: identity(domain.RoleBranchAdmin, uintPtr(1))}
	req := Requirement{Roles: []domain.Role{domain.RoleSuperAdmin}}

	decision := Evaluate(sess, req, "/admin/branches")

	assert.Equal(t, StatePending, decision.State)
}

func TestEvaluate_NoIdentityRedirectsToLoginWithPath(t *testing.T) {
	decision := Evaluate(Session{}, Requirement{}, "/claims/42")

	assert.Equal(t, StateRedirectLogin, decision.State)
	assert.Equal(t, "/claims/42", decision.RedirectTo)
}

func TestEvaluate_AuthenticatedAllowed(t *testing.T) {
	sess := Session{Identity: identity(domain.RoleBranchAdmin, uintPtr(1))}

	decision := Evaluate(sess, Requirement{}, "/dashboard")

	assert.Equal(t, StateAllowed, decision.State)
}

func TestEvaluate_RoleRestrictionEnforced(t *testing.T) {
	sess := Session{Identity: identity(domain.RoleBranchAdmin, uintPtr(1))}
	req := Requirement{Roles: []domain.Role{domain.RoleSuperAdmin}}

	decision := Evaluate(sess, req, "/admin/branches")

	assert.Equal(t, StateRedirectUnauthorized, decision.State)
}

func TestEvaluate_RoleRestrictionSatisfied(t *testing.T) {
	sess := Session{Identity: identity(domain.RoleSuperAdmin, nil)}
	req := Requirement{Roles: []domain.Role{domain.RoleSuperAdmin}}

	decision := Evaluate(sess, req, "/admin/branches")

	assert.Equal(t, StateAllowed, decision.State)
}

func TestEvaluate_InvalidRoleFailsClosed(t *testing.T) {
	sess := Session{Identity: identity(domain.Role("INTERN"), uintPtr(1))}

	decision := Evaluate(sess, Requirement{}, "/dashboard")

	assert.Equal(t, StateRedirectUnauthorized, decision.State)
}

func TestEvaluate_BranchAdminWithoutBranchFailsClosed(t *testing.T) {
	// A branch admin with no branch assignment is inconsistent state:
	// deny rather than guess a scope.
	sess := Session{Identity: identity(domain.RoleBranchAdmin, nil)}

	decision := Evaluate(sess, Requirement{}, "/policy-holders")

	assert.Equal(t, StateRedirectUnauthorized, decision.State)
}
