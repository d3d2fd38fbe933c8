package gormdb

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).Preload("Project").First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List scopes transitively through the owning project when ClientID is set:
// the join makes the ownership predicate part of the statement itself.
func (r *TaskRepository) List(ctx context.Context, f ports.TaskFilter) ([]*domain.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Task{})

	if f.ClientID != "" {
		q = q.Joins("JOIN projects ON projects.id = tasks.project_id").
			Where("projects.client_id = ?", f.ClientID)
	}
	if f.ProjectID != "" {
		q = q.Where("tasks.project_id = ?", f.ProjectID)
	}
	if f.Status != "" {
		q = q.Where("tasks.status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("tasks.priority = ?", f.Priority)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(tasks.title) LIKE ? OR LOWER(tasks.description) LIKE ?", needle, needle)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []*domain.Task
	err := q.Preload("Project").
		Order("tasks.created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Omit("Project").Save(t).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
