package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/api/metrics"
	"github.com/httptim/clientportal/internal/api/middleware"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookieTTL   int // seconds
}

func NewAuthHandler(authService ports.AuthService, cookieTTL int) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

// Login authenticates a user and issues a signed session token. The token is
// returned in the body and also set as an HTTP-only cookie for browser
// clients.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   h.cookieTTL,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	metrics.SessionsIssuedTotal.Inc()

	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: toUserView(result.User)})
}

// Logout revokes the current session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid := sessionIDFrom(c)
	if sid == "" {
		return domain.ErrNotAuthenticated
	}

	if err := h.authService.Logout(c.Request().Context(), sid); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.NoContent(http.StatusNoContent)
}

type meResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Me returns the identity bound to the current session.
//
// @Summary      Current session identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id := identityFrom(c)
	if id == nil {
		return domain.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, meResponse{
		ID:    id.ID,
		Name:  id.Name,
		Email: id.Email,
		Role:  wireEnum(id.Role),
	})
}
