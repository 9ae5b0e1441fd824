package guard

import (
	"silc-backoffice/internal/core/domain"
)

// State represents the outcome of a route-guard evaluation
type State string

const (
	// StatePending means the session is still being restored.
	// No terminal decision may be taken in this state.
	StatePending State = "PENDING"
	// StateAllowed means the actor may enter the screen
	StateAllowed State = "ALLOWED"
	// StateRedirectLogin means the actor is not authenticated
	StateRedirectLogin State = "REDIRECT_LOGIN"
	// StateRedirectUnauthorized means the actor is authenticated but lacks the required role
	StateRedirectUnauthorized State = "REDIRECT_UNAUTHORIZED"
)

// Session is the guard's view of the session store
type Session struct {
	Loading  bool
	Identity *domain.Identity
}

// Requirement is what a protected screen declares: authentication is
// always required, a role restriction is optional.
type Requirement struct {
	Roles []domain.Role
}

// Decision is the result of evaluating a requirement against a session.
// RedirectTo preserves the originally requested path so a later login
// can return the actor there.
type Decision struct {
	State      State
	RedirectTo string
}

// Evaluate runs the route-guard state machine. It fails closed: any
// ambiguity (invalid role, branch admin without a branch) denies access.
func Evaluate(sess Session, req Requirement, requestedPath string) Decision {
	if sess.Loading {
		return Decision{State: StatePending}
	}

	if sess.Identity == nil {
		return Decision{State: StateRedirectLogin, RedirectTo: requestedPath}
	}

	if !sess.Identity.Role.IsValid() {
		return Decision{State: StateRedirectUnauthorized}
	}

	// A branch admin without a branch is inconsistent state
	if sess.Identity.IsBranchAdmin() && sess.Identity.BranchID == nil {
		return Decision{State: StateRedirectUnauthorized}
	}

	if len(req.Roles) > 0 {
		allowed := false
		for _, role := range req.Roles {
			if sess.Identity.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return Decision{State: StateRedirectUnauthorized}
		}
	}

	return Decision{State: StateAllowed}
}
