package ports

import (
	"context"
	"time"

	"github.com/httptim/clientportal/internal/core/domain"
)

// ListResult is the common pagination envelope produced by services.
type ListResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
	Pages int
}

// UserFilter carries query parameters for listing users.
// Search matches name, email or company, case-insensitively.
type UserFilter struct {
	Role   domain.Role // optional: restrict to one role
	Search string
	Page   int
	Limit  int
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, f UserFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	// Delete removes the user row. Returns domain.ErrUserNotFound when absent.
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	// CountOwned reports how many projects reference the user as client.
	CountOwned(ctx context.Context, id string) (int64, error)
}

// ProjectFilter carries query parameters for listing projects.
// ClientID is the ownership predicate: empty = no restriction (admin),
// non-empty = scoped to that customer. Always set by the service from the
// identity, never from client input.
type ProjectFilter struct {
	ClientID string
	Status   domain.ProjectStatus
	Search   string // matches name or description
	Page     int
	Limit    int
}

// ProjectRepository persists projects. Reads preload Client and Tasks so the
// normalizer can emit the owner and the progress aggregate.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, f ProjectFilter) ([]*domain.Project, int64, error)
	Update(ctx context.Context, p *domain.Project) error
	// DeleteCascade removes the project with its tasks, conversation and
	// messages in one transaction.
	DeleteCascade(ctx context.Context, id string) error
}

// TaskFilter carries query parameters for listing tasks. ClientID scopes
// transitively through the owning project.
type TaskFilter struct {
	ClientID  string
	ProjectID string
	Status    domain.TaskStatus
	Priority  domain.TaskPriority
	Search    string // matches title or description
	Page      int
	Limit     int
}

// TaskRepository persists tasks. FindByID preloads the owning project so the
// service can check the ownership chain.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, f TaskFilter) ([]*domain.Task, int64, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// InvoiceFilter carries query parameters for listing invoices.
type InvoiceFilter struct {
	ClientID  string
	ProjectID string
	Status    domain.InvoiceStatus
	Search    string // matches invoice number
	Page      int
	Limit     int
}

// InvoiceRepository persists invoices with their line items and payments.
type InvoiceRepository interface {
	// Create inserts the invoice and its line items in one transaction.
	Create(ctx context.Context, inv *domain.Invoice) error
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, f InvoiceFilter) ([]*domain.Invoice, int64, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	// DeleteCascade removes the invoice with its payments and line items in
	// one transaction; a failure rolls the whole delete back.
	DeleteCascade(ctx context.Context, id string) error
	// RecordPayment appends a payment and marks the invoice paid at paidAt,
	// atomically.
	RecordPayment(ctx context.Context, invoiceID string, p *domain.Payment, paidAt time.Time) error
}

// MessageFilter pages through a conversation.
type MessageFilter struct {
	ConversationID string
	Read           *bool // optional: filter by read flag
	Page           int
	Limit          int
}

// ConversationRepository persists project message threads.
type ConversationRepository interface {
	// FindOrCreateByProject returns the project's conversation, creating it
	// on first use.
	FindOrCreateByProject(ctx context.Context, projectID string) (*domain.Conversation, error)
	FindConversation(ctx context.Context, id string) (*domain.Conversation, error)
	ListMessages(ctx context.Context, f MessageFilter) ([]*domain.Message, int64, error)
	AddMessage(ctx context.Context, m *domain.Message) error
	FindMessage(ctx context.Context, id string) (*domain.Message, error)
	MarkMessageRead(ctx context.Context, id string) error
}

// TestimonialFilter carries query parameters for listing testimonials.
type TestimonialFilter struct {
	ClientID   string
	ActiveOnly bool
	Page       int
	Limit      int
}

// TestimonialRepository persists testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, t *domain.Testimonial) error
	FindByID(ctx context.Context, id string) (*domain.Testimonial, error)
	List(ctx context.Context, f TestimonialFilter) ([]*domain.Testimonial, int64, error)
	Update(ctx context.Context, t *domain.Testimonial) error
	Delete(ctx context.Context, id string) error
}

// PortfolioFilter carries query parameters for the public catalog.
type PortfolioFilter struct {
	Category domain.PortfolioCategory
	Search   string // matches title or tags
	Featured *bool
	Page     int
	Limit    int
}

// PortfolioRepository persists catalog entries.
type PortfolioRepository interface {
	Create(ctx context.Context, p *domain.PortfolioProject) error
	FindByID(ctx context.Context, id string) (*domain.PortfolioProject, error)
	List(ctx context.Context, f PortfolioFilter) ([]*domain.PortfolioProject, int64, error)
	Update(ctx context.Context, p *domain.PortfolioProject) error
	Delete(ctx context.Context, id string) error
}

// SiteConfigRepository persists the singleton configuration row.
type SiteConfigRepository interface {
	Get(ctx context.Context) (*domain.SiteConfiguration, error)
	Save(ctx context.Context, cfg *domain.SiteConfiguration) error
}

// ContactFilter pages through contact submissions.
type ContactFilter struct {
	Search string // matches name or email
	Page   int
	Limit  int
}

// ContactRepository persists contact-form submissions.
type ContactRepository interface {
	Create(ctx context.Context, s *domain.ContactSubmission) error
	List(ctx context.Context, f ContactFilter) ([]*domain.ContactSubmission, int64, error)
	Delete(ctx context.Context, id string) error
}
