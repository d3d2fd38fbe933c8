package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// ContactService accepts public contact-form submissions and exposes them to
// the admin dashboard.
type ContactService struct {
	repo   ports.ContactRepository
	logger zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

// Submit is the only anonymous mutation in the system.
func (s *ContactService) Submit(ctx context.Context, in ports.SubmitContactInput) (*domain.ContactSubmission, error) {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	sub := &domain.ContactSubmission{
		ID:      uuid.New().String(),
		Name:    in.Name,
		Email:   in.Email,
		Company: in.Company,
		Message: in.Message,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info().Str("submission_id", sub.ID).Msg("contact submission received")
	return sub, nil
}

func (s *ContactService) List(ctx context.Context, id *authz.Identity, f ports.ContactFilter) (*ports.ListResult[*domain.ContactSubmission], error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	page := authz.NormalizePage(f.Page, f.Limit, authz.LimitContact)
	f.Page, f.Limit = page.Page, page.Limit

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*domain.ContactSubmission]{
		Items: items,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: authz.Pages(total, page.Limit),
	}, nil
}

func (s *ContactService) Delete(ctx context.Context, id *authz.Identity, submissionID string) error {
	if err := authz.RequireAdmin(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, submissionID)
}
