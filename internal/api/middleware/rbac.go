package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
)

// RequireRole enforces role-based access control on a route group.
//
// Anonymous requests are rejected as unauthenticated, authenticated requests
// with a different role as forbidden. Services re-check authorization per
// operation; this middleware only short-circuits the obvious cases.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := c.Get(IdentityKey).(*authz.Identity)
			if !ok {
				return domain.ErrNotAuthenticated
			}
			if id.Role != role {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
