package middleware

import (
	"strings"

	"silc-backoffice/internal/core/domain"
	"silc-backoffice/internal/core/guard"
	"silc-backoffice/internal/core/services"
	"silc-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalsIdentity = "identity"
	LocalsToken    = "sessionToken"
)

// ExtractToken reads the session token from the access_token cookie or
// the Authorization bearer header. These are the only two accepted
// carriers; a token anywhere else is ignored.
func ExtractToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// AuthMiddleware restores the session and runs the route guard.
// Unauthenticated requests get a 401 carrying the requested path so the
// login flow can return the actor there. Corrupt sessions have already
// been cleared by Restore and are treated as unauthenticated.
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Restore the identity from the session token
		var identity *domain.Identity
		if token := ExtractToken(c); token != "" {
			restored, err := authService.Restore(c.Context(), token)
			if err == nil {
				identity = restored
				c.Locals(LocalsToken, token)
			}
		}

		// 2. Run the guard. The session is fully restored at this point,
		// so it is never in the loading state here.
		decision := guard.Evaluate(
			guard.Session{Identity: identity},
			guard.Requirement{},
			c.OriginalURL(),
		)

		switch decision.State {
		case guard.StateAllowed:
			c.Locals(LocalsIdentity, identity)
			return c.Next()
		case guard.StateRedirectUnauthorized:
			return response.Forbidden(c, "You don't have permission to access this resource")
		default:
			return response.UnauthorizedRedirect(c, "Authentication required", decision.RedirectTo)
		}
	}
}

// RequireRoles restricts a route to the given roles. Must run after
// AuthMiddleware.
func RequireRoles(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)

		decision := guard.Evaluate(
			guard.Session{Identity: identity},
			guard.Requirement{Roles: roles},
			c.OriginalURL(),
		)

		switch decision.State {
		case guard.StateAllowed:
			return c.Next()
		case guard.StateRedirectLogin:
			return response.UnauthorizedRedirect(c, "Authentication required", decision.RedirectTo)
		default:
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
	}
}

// RequirePermission restricts a route to actors holding the given
// permission. Must run after AuthMiddleware.
func RequirePermission(key domain.PermissionKey) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if identity == nil {
			return response.UnauthorizedRedirect(c, "Authentication required", c.OriginalURL())
		}

		if !domain.HasPermission(identity, key) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// IdentityFromCtx returns the restored identity, or nil when the
// request is unauthenticated
func IdentityFromCtx(c *fiber.Ctx) *domain.Identity {
	identity, _ := c.Locals(LocalsIdentity).(*domain.Identity)
	return identity
}

// TokenFromCtx returns the raw session token carried by the request
func TokenFromCtx(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalsToken).(string)
	return token
}
