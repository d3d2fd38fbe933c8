package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// MessageService manages the per-project message thread. Access to a
// conversation always resolves through the owning project's client.
type MessageService struct {
	repo     ports.ConversationRepository
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewMessageService(repo ports.ConversationRepository, projects ports.ProjectRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, projects: projects, logger: logger}
}

func (s *MessageService) ListMessages(ctx context.Context, id *authz.Identity, projectID string, f ports.MessageFilter) (*ports.ListResult[*domain.Message], error) {
	conv, err := s.conversationScoped(ctx, id, projectID)
	if err != nil {
		return nil, err
	}

	f.ConversationID = conv.ID

	page := authz.NormalizePage(f.Page, f.Limit, authz.LimitMessages)
	f.Page, f.Limit = page.Page, page.Limit

	messages, total, err := s.repo.ListMessages(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*domain.Message]{
		Items: messages,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: authz.Pages(total, page.Limit),
	}, nil
}

func (s *MessageService) Post(ctx context.Context, id *authz.Identity, projectID, body string) (*domain.Message, error) {
	if body == "" {
		return nil, domain.MissingFields("body")
	}

	conv, err := s.conversationScoped(ctx, id, projectID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		SenderID:       id.ID,
		Body:           body,
	}
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info().Str("message_id", msg.ID).Str("project_id", projectID).Msg("message posted")
	return msg, nil
}

// MarkRead flips the read flag on one message. A named operation rather than
// a body-field action switch, so the route itself documents the mutation.
// Marking an already-read message is a no-op.
func (s *MessageService) MarkRead(ctx context.Context, id *authz.Identity, messageID string) error {
	if err := authz.RequireAuth(id); err != nil {
		return err
	}

	msg, err := s.repo.FindMessage(ctx, messageID)
	if err != nil {
		return err
	}

	// Resolve the ownership chain: message → conversation → project → client.
	conv, err := s.repo.FindConversation(ctx, msg.ConversationID)
	if err != nil {
		return err
	}
	project, err := s.projects.FindByID(ctx, conv.ProjectID)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(id, project.ClientID); err != nil {
		return err
	}

	if msg.Read {
		return nil
	}
	return s.repo.MarkMessageRead(ctx, msg.ID)
}

// conversationScoped loads (or lazily creates) the project's conversation
// after enforcing the ownership chain.
func (s *MessageService) conversationScoped(ctx context.Context, id *authz.Identity, projectID string) (*domain.Conversation, error) {
	if err := authz.RequireAuth(id); err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(id, project.ClientID); err != nil {
		return nil, err
	}

	return s.repo.FindOrCreateByProject(ctx, project.ID)
}
