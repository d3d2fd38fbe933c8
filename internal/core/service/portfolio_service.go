package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

const categoryValues = "web, mobile, api, cli, other"

// PortfolioService manages the public catalog. Reads are anonymous; writes
// are admin-only.
type PortfolioService struct {
	repo   ports.PortfolioRepository
	logger zerolog.Logger
}

func NewPortfolioService(repo ports.PortfolioRepository, logger zerolog.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, logger: logger}
}

func (s *PortfolioService) List(ctx context.Context, f ports.PortfolioFilter) (*ports.ListResult[*domain.PortfolioProject], error) {
	page := authz.NormalizePage(f.Page, f.Limit, authz.LimitPortfolio)
	f.Page, f.Limit = page.Page, page.Limit

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*domain.PortfolioProject]{
		Items: items,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: authz.Pages(total, page.Limit),
	}, nil
}

func (s *PortfolioService) Get(ctx context.Context, portfolioID string) (*domain.PortfolioProject, error) {
	return s.repo.FindByID(ctx, portfolioID)
}

func (s *PortfolioService) Create(ctx context.Context, id *authz.Identity, in ports.CreatePortfolioInput) (*domain.PortfolioProject, error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	category, ok := domain.ValidCategory(in.Category)
	if !ok {
		return nil, domain.NewValidationError("category must be one of: " + categoryValues)
	}

	p := &domain.PortfolioProject{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Category:    category,
		Tags:        in.Tags,
		ImageURL:    in.ImageURL,
		LiveURL:     in.LiveURL,
		RepoURL:     in.RepoURL,
		Featured:    in.Featured,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("portfolio_id", p.ID).Str("category", string(p.Category)).Msg("portfolio project created")
	return p, nil
}

func (s *PortfolioService) Update(ctx context.Context, id *authz.Identity, portfolioID string, in ports.UpdatePortfolioInput) (*domain.PortfolioProject, error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	if in.Title == nil && in.Description == nil && in.Category == nil && in.Tags == nil &&
		in.ImageURL == nil && in.LiveURL == nil && in.RepoURL == nil && in.Featured == nil {
		return nil, domain.NewValidationError("no valid fields provided")
	}

	p, err := s.repo.FindByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	if in.Category != nil {
		category, ok := domain.ValidCategory(*in.Category)
		if !ok {
			return nil, domain.NewValidationError("category must be one of: " + categoryValues)
		}
		p.Category = category
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.LiveURL != nil {
		p.LiveURL = *in.LiveURL
	}
	if in.RepoURL != nil {
		p.RepoURL = *in.RepoURL
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PortfolioService) Delete(ctx context.Context, id *authz.Identity, portfolioID string) error {
	if err := authz.RequireAdmin(id); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, portfolioID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, portfolioID)
}
