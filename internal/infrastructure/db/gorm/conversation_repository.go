package gormdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// FindOrCreateByProject returns the project's thread, creating it lazily on
// first access.
func (r *ConversationRepository) FindOrCreateByProject(ctx context.Context, projectID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).First(&conv, "project_id = ?", projectID).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = domain.Conversation{
		ID:        uuid.New().String(),
		ProjectID: projectID,
	}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepository) FindConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := r.db.WithContext(ctx).First(&conv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepository) ListMessages(ctx context.Context, f ports.MessageFilter) ([]*domain.Message, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("conversation_id = ?", f.ConversationID)

	if f.Read != nil {
		q = q.Where("read = ?", *f.Read)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []*domain.Message
	err := q.Preload("Sender").
		Order("created_at ASC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *ConversationRepository) AddMessage(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ConversationRepository) FindMessage(ctx context.Context, id string) (*domain.Message, error) {
	var m domain.Message
	if err := r.db.WithContext(ctx).Preload("Sender").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *ConversationRepository) MarkMessageRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}
