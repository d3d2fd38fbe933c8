package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// TestimonialService manages customer testimonials. The public listing only
// ever sees active rows; visibility and writes are admin operations.
type TestimonialService struct {
	repo   ports.TestimonialRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTestimonialService(repo ports.TestimonialRepository, users ports.UserRepository, logger zerolog.Logger) *TestimonialService {
	return &TestimonialService{repo: repo, users: users, logger: logger}
}

func (s *TestimonialService) ListPublic(ctx context.Context, f ports.TestimonialFilter) (*ports.ListResult[*domain.Testimonial], error) {
	// Forced regardless of caller-supplied parameters.
	f.ActiveOnly = true
	return s.list(ctx, f)
}

func (s *TestimonialService) ListAll(ctx context.Context, id *authz.Identity, f ports.TestimonialFilter) (*ports.ListResult[*domain.Testimonial], error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}
	return s.list(ctx, f)
}

func (s *TestimonialService) list(ctx context.Context, f ports.TestimonialFilter) (*ports.ListResult[*domain.Testimonial], error) {
	page := authz.NormalizePage(f.Page, f.Limit, authz.LimitTestimonials)
	f.Page, f.Limit = page.Page, page.Limit

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*domain.Testimonial]{
		Items: items,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: authz.Pages(total, page.Limit),
	}, nil
}

func (s *TestimonialService) Create(ctx context.Context, id *authz.Identity, in ports.CreateTestimonialInput) (*domain.Testimonial, error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	var missing []string
	if in.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if in.Quote == "" {
		missing = append(missing, "quote")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.NewValidationError("rating must be between 1 and 5")
	}

	if _, err := s.users.FindByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}

	t := &domain.Testimonial{
		ID:       uuid.New().String(),
		ClientID: in.ClientID,
		Quote:    in.Quote,
		Rating:   in.Rating,
		IsActive: in.IsActive,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info().Str("testimonial_id", t.ID).Str("client_id", t.ClientID).Msg("testimonial created")
	return t, nil
}

func (s *TestimonialService) Update(ctx context.Context, id *authz.Identity, testimonialID string, in ports.UpdateTestimonialInput) (*domain.Testimonial, error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	if in.Quote == nil && in.Rating == nil && in.IsActive == nil {
		return nil, domain.NewValidationError("no valid fields provided")
	}

	t, err := s.repo.FindByID(ctx, testimonialID)
	if err != nil {
		return nil, err
	}

	if in.Quote != nil {
		t.Quote = *in.Quote
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, domain.NewValidationError("rating must be between 1 and 5")
		}
		t.Rating = *in.Rating
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestimonialService) Delete(ctx context.Context, id *authz.Identity, testimonialID string) error {
	if err := authz.RequireAdmin(id); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, testimonialID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, testimonialID)
}
