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

// ProjectService manages client projects. Every read is scoped through
// authz.OwnerScope; every single-row operation re-checks ownership against
// the fetched record, so a guessed id still yields not-found/forbidden.
type ProjectService struct {
	repo   ports.ProjectRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, users ports.UserRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, users: users, logger: logger}
}

func (s *ProjectService) List(ctx context.Context, id *authz.Identity, f ports.ProjectFilter) (*ports.ListResult[*domain.Project], error) {
	if err := authz.RequireAuth(id); err != nil {
		return nil, err
	}

	// Ownership is ANDed over whatever filters the client supplied and can
	// never be overridden by them.
	f.ClientID = authz.OwnerScope(id)

	page := authz.NormalizePage(f.Page, f.Limit, authz.LimitProjects)
	f.Page, f.Limit = page.Page, page.Limit

	projects, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*domain.Project]{
		Items: projects,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: authz.Pages(total, page.Limit),
	}, nil
}

func (s *ProjectService) Create(ctx context.Context, id *authz.Identity, in ports.CreateProjectInput) (*domain.Project, error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	var missing []string
	if in.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	if _, err := s.users.FindByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.ProjectPlanned
	}

	project := &domain.Project{
		ID:          uuid.New().String(),
		ClientID:    in.ClientID,
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Budget:      in.Budget,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", project.ID).Str("client_id", project.ClientID).Msg("project created")
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id *authz.Identity, projectID string) (*domain.Project, error) {
	if err := authz.RequireAuth(id); err != nil {
		return nil, err
	}

	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(id, project.ClientID); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id *authz.Identity, projectID string, in ports.UpdateProjectInput) (*domain.Project, error) {
	if err := authz.RequireAuth(id); err != nil {
		return nil, err
	}

	if in.Name == nil && in.Description == nil && in.Status == nil &&
		in.StartDate == nil && in.EndDate == nil && in.Budget == nil {
		return nil, domain.NewValidationError("no valid fields provided")
	}

	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(id, project.ClientID); err != nil {
		return nil, err
	}

	if in.Status != nil && !validProjectStatus(*in.Status) {
		return nil, domain.NewValidationError("status must be one of: PLANNED, IN_PROGRESS, ON_HOLD, COMPLETED")
	}

	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.StartDate != nil {
		project.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		project.EndDate = in.EndDate
	}
	if in.Budget != nil {
		project.Budget = *in.Budget
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id *authz.Identity, projectID string) error {
	if err := authz.RequireAdmin(id); err != nil {
		return err
	}

	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return err
	}

	if err := s.repo.DeleteCascade(ctx, projectID); err != nil {
		return err
	}

	s.logger.Info().Str("project_id", projectID).Msg("project deleted")
	return nil
}

func validProjectStatus(st domain.ProjectStatus) bool {
	for _, v := range domain.ProjectStatuses {
		if v == st {
			return true
		}
	}
	return false
}
