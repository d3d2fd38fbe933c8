package gormdb

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Tasks").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List applies the ownership predicate (non-empty ClientID) as a mandatory
// conjunct before any caller-supplied filter.
func (r *ProjectRepository) List(ctx context.Context, f ports.ProjectFilter) ([]*domain.Project, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Project{})

	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []*domain.Project
	err := q.Preload("Client").
		Preload("Tasks").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Omit("Client", "Tasks").Save(p).Error
}

// DeleteCascade removes the project and its dependent rows (tasks, the
// conversation with its messages, and invoices with their payments and line
// items) in a single transaction, so no child ever outlives the project.
func (r *ProjectRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conv domain.Conversation
		err := tx.First(&conv, "project_id = ?", id).Error
		switch {
		case err == nil:
			if err := tx.Delete(&domain.Message{}, "conversation_id = ?", conv.ID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&conv).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		var invoiceIDs []string
		if err := tx.Model(&domain.Invoice{}).Where("project_id = ?", id).Pluck("id", &invoiceIDs).Error; err != nil {
			return err
		}
		if len(invoiceIDs) > 0 {
			if err := tx.Delete(&domain.Payment{}, "invoice_id IN ?", invoiceIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&domain.LineItem{}, "invoice_id IN ?", invoiceIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&domain.Invoice{}, "id IN ?", invoiceIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&domain.Task{}, "project_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&domain.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrProjectNotFound
		}
		return nil
	})
}
