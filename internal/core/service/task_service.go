package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// TaskService manages tasks. Tasks carry no owner of their own; the ownership
// chain always resolves through the owning project's client.
type TaskService struct {
	repo     ports.TaskRepository
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, projects ports.ProjectRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, projects: projects, logger: logger}
}

func (s *TaskService) List(ctx context.Context, id *authz.Identity, f ports.TaskFilter) (*ports.ListResult[*domain.Task], error) {
	if err := authz.RequireAuth(id); err != nil {
		return nil, err
	}

	f.ClientID = authz.OwnerScope(id)

	page := authz.NormalizePage(f.Page, f.Limit, authz.LimitTasks)
	f.Page, f.Limit = page.Page, page.Limit

	tasks, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*domain.Task]{
		Items: tasks,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: authz.Pages(total, page.Limit),
	}, nil
}

func (s *TaskService) Create(ctx context.Context, id *authz.Identity, in ports.CreateTaskInput) (*domain.Task, error) {
	if err := authz.RequireAuth(id); err != nil {
		return nil, err
	}

	var missing []string
	if in.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(id, project.ClientID); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.TaskTodo
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !validTaskStatus(status) {
		return nil, domain.NewValidationError("status must be one of: TODO, IN_PROGRESS, DONE")
	}
	if !validTaskPriority(priority) {
		return nil, domain.NewValidationError("priority must be one of: LOW, MEDIUM, HIGH")
	}

	task := &domain.Task{
		ID:          uuid.New().String(),
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		Assignee:    in.Assignee,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("project_id", task.ProjectID).Msg("task created")
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id *authz.Identity, taskID string) (*domain.Task, error) {
	task, _, err := s.fetchScoped(ctx, id, taskID)
	return task, err
}

func (s *TaskService) Update(ctx context.Context, id *authz.Identity, taskID string, in ports.UpdateTaskInput) (*domain.Task, error) {
	if in.Title == nil && in.Description == nil && in.Status == nil &&
		in.Priority == nil && in.DueDate == nil && in.Assignee == nil {
		return nil, domain.NewValidationError("no valid fields provided")
	}

	task, _, err := s.fetchScoped(ctx, id, taskID)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && !validTaskStatus(*in.Status) {
		return nil, domain.NewValidationError("status must be one of: TODO, IN_PROGRESS, DONE")
	}
	if in.Priority != nil && !validTaskPriority(*in.Priority) {
		return nil, domain.NewValidationError("priority must be one of: LOW, MEDIUM, HIGH")
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.Assignee != nil {
		task.Assignee = *in.Assignee
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id *authz.Identity, taskID string) error {
	if _, _, err := s.fetchScoped(ctx, id, taskID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, taskID); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", taskID).Msg("task deleted")
	return nil
}

// fetchScoped loads a task and enforces the transitive ownership chain
// through its project.
func (s *TaskService) fetchScoped(ctx context.Context, id *authz.Identity, taskID string) (*domain.Task, *domain.Project, error) {
	if err := authz.RequireAuth(id); err != nil {
		return nil, nil, err
	}

	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	project := task.Project
	if project == nil {
		project, err = s.projects.FindByID(ctx, task.ProjectID)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := authz.RequireOwner(id, project.ClientID); err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

func validTaskStatus(st domain.TaskStatus) bool {
	for _, v := range domain.TaskStatuses {
		if v == st {
			return true
		}
	}
	return false
}

func validTaskPriority(p domain.TaskPriority) bool {
	for _, v := range domain.TaskPriorities {
		if v == p {
			return true
		}
	}
	return false
}
