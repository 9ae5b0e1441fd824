package domain

// PermissionKey identifies a protected capability. The set is closed:
// adding a capability means adding a key here and a row to the matrix,
// never an ad hoc string check at a call site.
type PermissionKey string

const (
	// Branch
	PermViewAllBranches PermissionKey = "view_all_branches"
	PermManageBranches  PermissionKey = "manage_branches"

	// Agent
	PermViewAgents            PermissionKey = "view_agents"
	PermManageAgents          PermissionKey = "manage_agents"
	PermViewAgentApplications PermissionKey = "view_agent_applications"
	PermApproveAgents         PermissionKey = "approve_agents"

	// Customer
	PermViewPolicyHolders   PermissionKey = "view_policy_holders"
	PermManagePolicyHolders PermissionKey = "manage_policy_holders"

	// Policy
	PermViewPolicies   PermissionKey = "view_policies"
	PermManagePolicies PermissionKey = "manage_policies"

	// Premium
	PermViewPremiums    PermissionKey = "view_premiums"
	PermCollectPremiums PermissionKey = "collect_premiums"

	// Claim
	PermViewClaims    PermissionKey = "view_claims"
	PermProcessClaims PermissionKey = "process_claims"
	PermApproveClaims PermissionKey = "approve_claims"

	// Loan
	PermViewLoans    PermissionKey = "view_loans"
	PermManageLoans  PermissionKey = "manage_loans"
	PermApproveLoans PermissionKey = "approve_loans"

	// KYC
	PermViewKYC   PermissionKey = "view_kyc"
	PermVerifyKYC PermissionKey = "verify_kyc"

	// Underwriting
	PermViewUnderwriting   PermissionKey = "view_underwriting"
	PermManageUnderwriting PermissionKey = "manage_underwriting"

	// Configuration
	PermManageConfiguration PermissionKey = "manage_configuration"
	PermManageUsers         PermissionKey = "manage_users"
	PermViewReports         PermissionKey = "view_reports"
)

// AllPermissions lists every key in the closed set
func AllPermissions() []PermissionKey {
	return []PermissionKey{
		PermViewAllBranches,
		PermManageBranches,
		PermViewAgents,
		PermManageAgents,
		PermViewAgentApplications,
		PermApproveAgents,
		PermViewPolicyHolders,
		PermManagePolicyHolders,
		PermViewPolicies,
		PermManagePolicies,
		PermViewPremiums,
		PermCollectPremiums,
		PermViewClaims,
		PermProcessClaims,
		PermApproveClaims,
		PermViewLoans,
		PermManageLoans,
		PermApproveLoans,
		PermViewKYC,
		PermVerifyKYC,
		PermViewUnderwriting,
		PermManageUnderwriting,
		PermManageConfiguration,
		PermManageUsers,
		PermViewReports,
	}
}

// branchAdminGrants is the explicit permission set for BRANCH_ADMIN.
// Keys absent from this map are denied. Branch admins operate their own
// branch only; the branch boundary itself is enforced by the guard scope,
// not here.
var branchAdminGrants = map[PermissionKey]bool{
	PermViewAgents:            true,
	PermManageAgents:          true,
	PermViewAgentApplications: true,
	PermViewPolicyHolders:     true,
	PermManagePolicyHolders:   true,
	PermViewPolicies:          true,
	PermViewPremiums:          true,
	PermCollectPremiums:       true,
	PermViewClaims:            true,
	PermProcessClaims:         true,
	PermViewLoans:             true,
	PermManageLoans:           true,
	PermViewKYC:               true,
	PermVerifyKYC:             true,
	PermViewUnderwriting:      true,
	PermManageUsers:           true,
	PermViewReports:           true,
}

/// matrix maps each role to its explicit grants. SUPER_ADMIN is not listed:
// it short-circuits to true in HasPermission. AGENT and CUSTOMER have no
// rows, so every lookup for them falls through to deny.
var matrix = map[Role]map[PermissionKey]bool{
	RoleBranchAdmin: branchAdminGrants,
}

// HasPermission answers whether the actor may exercise the capability.
/// Default-deny: nil actor, unknown role and unknown key all return false.
func HasPermission(actor *Identity, key PermissionKey) bool {
	if actor == nil {
		return false
	}
	if actor.Role == RoleSuperAdmin {
		return true
	}
	grants, ok := matrix[actor.Role]
	if !ok {
		return false
	}
	return grants[key]
}
