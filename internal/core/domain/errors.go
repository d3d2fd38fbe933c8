package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across services. The API error handler maps each to
// its HTTP status; services never build HTTP responses themselves.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("not authorized")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound         = errors.New("user not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrTestimonialNotFound  = errors.New("testimonial not found")
	ErrPortfolioNotFound    = errors.New("portfolio project not found")
	ErrSubmissionNotFound   = errors.New("submission not found")

	ErrEmailTaken  = errors.New("email already in use")
	ErrNumberTaken = errors.New("invoice number already in use")

	ErrLastAdmin  = errors.New("cannot delete the last admin account")
	ErrSelfDelete = errors.New("cannot delete your own account")

	ErrUpstream = errors.New("upstream provider failure")
)

// ValidationError carries field-level detail for a 400 response. Details is
// safe to show to the client.
type ValidationError struct {
	Details string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Details
}

// NewValidationError builds a ValidationError from one or more detail parts.
func NewValidationError(details ...string) *ValidationError {
	return &ValidationError{Details: strings.Join(details, "; ")}
}

// MissingFields builds the canonical "missing required fields" error.
func MissingFields(fields ...string) *ValidationError {
	return &ValidationError{Details: fmt.Sprintf("missing required fields: %s", strings.Join(fields, ", "))}
}

// AsValidation reports whether err is (or wraps) a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
