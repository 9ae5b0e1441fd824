package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func branchAdmin(branchID uint) *Identity {
	return &Identity{ID: 2, Role: RoleBranchAdmin, BranchID: &branchID}
}

func TestHasPermission_SuperAdminHoldsEveryPermission(t *testing.T) {
	super := &Identity{ID: 1, Role: RoleSuperAdmin}

	for _, key := range AllPermissions() {
		assert.True(t, HasPermission(super, key), "super admin should hold %s", key)
	}
}

func TestHasPermission_NilActorDenied(t *testing.T) {
	for _, key := range AllPermissions() {
		assert.False(t, HasPermission(nil, key))
	}
}

func TestHasPermission_UnknownRoleDenied(t *testing.T) {
	actor := &Identity{ID: 3, Role: Role("AUDITOR")}

	for _, key := range AllPermissions() {
		assert.False(t, HasPermission(actor, key))
	}
}

func TestHasPermission_UnknownKeyDenied(t *testing.T) {
	assert.False(t, HasPermission(branchAdmin(1), PermissionKey("manage_everything")))
}

func TestHasPermission_BranchAdminGrants(t *testing.T) {
	actor := branchAdmin(1)

	granted := []PermissionKey{
		PermViewAgents,
		PermManageAgents,
		PermViewPolicyHolders,
		PermManagePolicyHolders,
		PermCollectPremiums,
		PermViewClaims,
		PermProcessClaims,
		PermViewLoans,
		PermManageLoans,
		PermVerifyKYC,
		PermManageUsers,
		PermViewReports,
	}
	for _, key := range granted {
		assert.True(t, HasPermission(actor, key), "branch admin should hold %s", key)
	}

	denied := []PermissionKey{
		PermViewAllBranches,
		PermManageBranches,
		PermApproveAgents,
		PermApproveClaims,
		PermApproveLoans,
		PermManagePolicies,
		PermManageUnderwriting,
		PermManageConfiguration,
	}
	for _, key := range denied {
		assert.False(t, HasPermission(actor, key), "branch admin should not hold %s", key)
	}
}

func TestHasPermission_AgentAndCustomerDeniedConsoleCapabilities(t *testing.T) {
	branchID := uint(1)
	agent := &Identity{ID: 4, Role: RoleAgent, BranchID: &branchID}
	customer := &Identity{ID: 5, Role: RoleCustomer}

	for _, key := range AllPermissions() {
		assert.False(t, HasPermission(agent, key))
		assert.False(t, HasPermission(customer, key))
	}
}
