package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

const (
	// SessionCookie is the cookie carrying the signed session token.
	SessionCookie = "portal_session"

	// IdentityKey is the context key under which the resolved identity is stored.
	IdentityKey = "identity"

	// SessionIDKey is the context key for the session id of the current request.
	SessionIDKey = "session_id"
)

// Session resolves the caller's identity from the request credential, if any.
//
// The token is read from the Authorization header (Bearer scheme) or, failing
// that, from the session cookie. A token is only honoured when its signature
// verifies and its session id is still present in the session store. Any
// failure leaves the request anonymous rather than rejecting it; protected
// operations decide for themselves whether an identity is required.
func Session(secret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return next(c)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tkn.Valid {
				return next(c)
			}

			sid, _ := claims["sid"].(string)
			sub, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			if sid == "" || sub == "" {
				return next(c)
			}

			// A revoked session leaves a syntactically valid token behind;
			// the store is authoritative.
			ok, err := sessions.Exists(c.Request().Context(), sid)
			if err != nil || !ok {
				return next(c)
			}

			name, _ := claims["name"].(string)
			email, _ := claims["email"].(string)
			c.Set(IdentityKey, &authz.Identity{
				ID:    sub,
				Role:  domain.Role(role),
				Name:  name,
				Email: email,
			})
			c.Set(SessionIDKey, sid)

			return next(c)
		}
	}
}

// RequireSession rejects anonymous requests before they reach the handler.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(IdentityKey).(*authz.Identity); !ok {
				return domain.ErrNotAuthenticated
			}
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
