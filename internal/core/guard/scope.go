package guard

import (
	"gorm.io/gorm"

	"silc-backoffice/internal/core/domain"
)

// BranchOwned is implemented by every record type whose visibility is
// scoped by a branch identifier.
type BranchOwned interface {
	OwningBranch() *uint
}

type scopeMode int

const (
	scopeAll scopeMode = iota
	scopeBranch
	scopeNone
)

// Scope is the branch-scoping predicate. This is the only place branch
// comparison logic exists; screens and repositories consume it instead
// of re-deriving the rule.
type Scope struct {
	mode     scopeMode
	branchID uint
}

// ScopeFor derives the actor's data scope:
// super admin sees everything, a branch admin sees its own branch,
// every other actor (including nil) sees nothing.
func ScopeFor(actor *domain.Identity) Scope {
	if actor == nil {
		return Scope{mode: scopeNone}
	}
	if actor.IsSuperAdmin() {
		return Scope{mode: scopeAll}
	}
	if actor.IsBranchAdmin() && actor.BranchID != nil {
		return Scope{mode: scopeBranch, branchID: *actor.BranchID}
	}
	return Scope{mode: scopeNone}
}

// IsDenyAll reports whether the scope admits no records at all
func (s Scope) IsDenyAll() bool {
	return s.mode == scopeNone
}

// AllowsRecord checks a single record's branch against the scope.
// A record without a branch is never visible to a branch admin.
// Mutations must call this even when the record came from a scoped
// read, to defend against stale or forged record references.
func (s Scope) AllowsRecord(branch *uint) bool {
	switch s.mode {
	case scopeAll:
		return true
	case scopeBranch:
		return branch != nil && *branch == s.branchID
	default:
		return false
	}
}

// Filter returns the subset of records the scope admits
func Filter[T BranchOwned](s Scope, records []T) []T {
	if s.mode == scopeAll {
		return records
	}
	filtered := make([]T, 0, len(records))
	if s.mode == scopeNone {
		return filtered
	}
	for _, record := range records {
		if s.AllowsRecord(record.OwningBranch()) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// Apply restricts a query to the scope. The branch form uses an
// equality match, so NULL branch rows are excluded, same as AllowsRecord.
func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	switch s.mode {
	case scopeAll:
		return db
	case scopeBranch:
		return db.Where("branch_id = ?", s.branchID)
	default:
		return db.Where("1 = 0")
	}
}
