package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// SiteConfigService reads and updates the singleton site configuration row.
type SiteConfigService struct {
	repo   ports.SiteConfigRepository
	logger zerolog.Logger
}

func NewSiteConfigService(repo ports.SiteConfigRepository, logger zerolog.Logger) *SiteConfigService {
	return &SiteConfigService{repo: repo, logger: logger}
}

func (s *SiteConfigService) Get(ctx context.Context) (*domain.SiteConfiguration, error) {
	return s.repo.Get(ctx)
}

func (s *SiteConfigService) Update(ctx context.Context, id *authz.Identity, in ports.UpdateSiteConfigInput) (*domain.SiteConfiguration, error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	if in.HeroTitle == nil && in.HeroSubtitle == nil && in.AboutText == nil &&
		in.ContactEmail == nil && in.GithubURL == nil && in.LinkedinURL == nil {
		return nil, domain.NewValidationError("no valid fields provided")
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if in.HeroTitle != nil {
		cfg.HeroTitle = *in.HeroTitle
	}
	if in.HeroSubtitle != nil {
		cfg.HeroSubtitle = *in.HeroSubtitle
	}
	if in.AboutText != nil {
		cfg.AboutText = *in.AboutText
	}
	if in.ContactEmail != nil {
		cfg.ContactEmail = *in.ContactEmail
	}
	if in.GithubURL != nil {
		cfg.GithubURL = *in.GithubURL
	}
	if in.LinkedinURL != nil {
		cfg.LinkedinURL = *in.LinkedinURL
	}

	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}

	s.logger.Info().Str("updated_by", id.ID).Msg("site configuration updated")
	return cfg, nil
}
