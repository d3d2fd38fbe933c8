package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/api/middleware"
	"github.com/httptim/clientportal/internal/core/authz"
)

// identityFrom returns the identity resolved by the session middleware, or
// nil when the request is anonymous. Services treat a nil identity as
// unauthenticated, so handlers pass it through without checking.
func identityFrom(c echo.Context) *authz.Identity {
	id, _ := c.Get(middleware.IdentityKey).(*authz.Identity)
	return id
}

// sessionIDFrom returns the session id of the current request, or "" when
// the request is anonymous.
func sessionIDFrom(c echo.Context) string {
	sid, _ := c.Get(middleware.SessionIDKey).(string)
	return sid
}
