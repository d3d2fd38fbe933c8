package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/api/metrics"
	"github.com/httptim/clientportal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "...", "details": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Validation errors carry safe field-level detail.
	if ve, ok := domain.AsValidation(err); ok {
		return http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: ve.Details}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		metrics.AuthzDenialsTotal.WithLabelValues("unauthenticated").Inc()
		return http.StatusUnauthorized, errorResponse{Error: "Not authenticated"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "Invalid credentials"}
	case errors.Is(err, domain.ErrForbidden):
		metrics.AuthzDenialsTotal.WithLabelValues("forbidden").Inc()
		return http.StatusForbidden, errorResponse{Error: "Not authorized"}
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, errorResponse{Error: "Client not found"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "User not found"}
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, errorResponse{Error: "Project not found"}
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, errorResponse{Error: "Task not found"}
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, errorResponse{Error: "Invoice not found"}
	case errors.Is(err, domain.ErrConversationNotFound):
		return http.StatusNotFound, errorResponse{Error: "Conversation not found"}
	case errors.Is(err, domain.ErrMessageNotFound):
		return http.StatusNotFound, errorResponse{Error: "Message not found"}
	case errors.Is(err, domain.ErrTestimonialNotFound):
		return http.StatusNotFound, errorResponse{Error: "Testimonial not found"}
	case errors.Is(err, domain.ErrPortfolioNotFound):
		return http.StatusNotFound, errorResponse{Error: "Portfolio project not found"}
	case errors.Is(err, domain.ErrSubmissionNotFound):
		return http.StatusNotFound, errorResponse{Error: "Submission not found"}
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, errorResponse{Error: "Email already in use"}
	case errors.Is(err, domain.ErrNumberTaken):
		return http.StatusConflict, errorResponse{Error: "Invoice number already in use"}
	case errors.Is(err, domain.ErrLastAdmin):
		return http.StatusBadRequest, errorResponse{Error: "Cannot delete the last admin account"}
	case errors.Is(err, domain.ErrSelfDelete):
		return http.StatusBadRequest, errorResponse{Error: "Cannot delete your own account"}
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, errorResponse{Error: "Payment provider unavailable"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "Internal server error"}
}
