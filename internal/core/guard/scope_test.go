package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"silc-backoffice/internal/core/domain"
)

type record struct {
	name     string
	branchID *uint
}

func (r record) OwningBranch() *uint {
	return r.branchID
}

func sampleRecords() []record {
	return []record{
		{name: "bangkok-a", branchID: uintPtr(1)},
		{name: "bangkok-b", branchID: uintPtr(1)},
		{name: "chiangmai", branchID: uintPtr(2)},
		{name: "orphan", branchID: nil},
	}
}

func TestScopeFor_SuperAdminSeesEverything(t *testing.T) {
	scope := ScopeFor(identity(domain.RoleSuperAdmin, nil))

	filtered := Filter(scope, sampleRecords())

	assert.Len(t, filtered, 4)
	assert.False(t, scope.IsDenyAll())
}

func TestScopeFor_BranchAdminSeesOwnBranchOnly(t *testing.T) {
	scope := ScopeFor(identity(domain.RoleBranchAdmin, uintPtr(1)))

	filtered := Filter(scope, sampleRecords())

	assert.Len(t, filtered, 2)
	for _, r := range filtered {
		assert.Equal(t, uint(1), *r.branchID)
	}
}

func TestScopeFor_RecordWithoutBranchHiddenFromBranchAdmin(t *testing.T) {
	// A record with no branch assignment never matches a branch scope.
	scope := ScopeFor(identity(domain.RoleBranchAdmin, uintPtr(2)))

	filtered := Filter(scope, sampleRecords())

	assert.Len(t, filtered, 1)
	assert.Equal(t, "chiangmai", filtered[0].name)
	assert.False(t, scope.AllowsRecord(nil))
}

func TestScopeFor_BranchAdminWithoutBranchDeniesAll(t *testing.T) {
	scope := ScopeFor(identity(domain.RoleBranchAdmin, nil))

	assert.True(t, scope.IsDenyAll())
	assert.Empty(t, Filter(scope, sampleRecords()))
	assert.False(t, scope.AllowsRecord(uintPtr(1)))
}

func TestScopeFor_NilActorDeniesAll(t *testing.T) {
	scope := ScopeFor(nil)

	assert.True(t, scope.IsDenyAll())
	assert.Empty(t, Filter(scope, sampleRecords()))
}

func TestScopeFor_OtherRolesDenyAll(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAgent, domain.RoleCustomer, domain.Role("GHOST")} {
		scope := ScopeFor(identity(role, uintPtr(1)))
		assert.True(t, scope.IsDenyAll(), "role %s should see nothing", role)
	}
}

func TestAllowsRecord_ForgedReferenceOutsideBranch(t *testing.T) {
	// A mutation must re-check the loaded record even when the id came
	// from the client: branch 1 admin, branch 2 record.
	scope := ScopeFor(identity(domain.RoleBranchAdmin, uintPtr(1)))

	assert.False(t, scope.AllowsRecord(uintPtr(2)))
	assert.True(t, scope.AllowsRecord(uintPtr(1)))
}
