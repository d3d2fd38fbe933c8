package ports

import (
	"context"
	"time"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
)

// AuthResult is returned on successful login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService issues and revokes signed session tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// CreateUserInput carries the fields for a new account.
type CreateUserInput struct {
	Name     string
	Email    string
	Company  string
	Phone    string
	Password string
	Role     domain.Role
}

// UpdateUserInput is a partial payload: nil fields are left untouched.
type UpdateUserInput struct {
	Name    *string
	Email   *string
	Company *string
	Phone   *string
}

// UserService manages accounts (admin only, except Get of oneself).
type UserService interface {
	List(ctx context.Context, id *authz.Identity, f UserFilter) (*ListResult[*domain.User], error)
	Create(ctx context.Context, id *authz.Identity, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id *authz.Identity, userID string) (*domain.User, error)
	Update(ctx context.Context, id *authz.Identity, userID string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id *authz.Identity, userID string) error
}

// CreateProjectInput carries the fields for a new project.
type CreateProjectInput struct {
	ClientID    string
	Name        string
	Description string
	Status      domain.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      float64
}

// UpdateProjectInput is a partial payload: nil fields are left untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
}

// ProjectService manages client projects under the ownership predicate.
type ProjectService interface {
	List(ctx context.Context, id *authz.Identity, f ProjectFilter) (*ListResult[*domain.Project], error)
	Create(ctx context.Context, id *authz.Identity, in CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id *authz.Identity, projectID string) (*domain.Project, error)
	Update(ctx context.Context, id *authz.Identity, projectID string, in UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id *authz.Identity, projectID string) error
}

// CreateTaskInput carries the fields for a new task.
type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
	Assignee    string
}

// UpdateTaskInput is a partial payload: nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
	Assignee    *string
}

// TaskService manages tasks, scoped through the owning project.
type TaskService interface {
	List(ctx context.Context, id *authz.Identity, f TaskFilter) (*ListResult[*domain.Task], error)
	Create(ctx context.Context, id *authz.Identity, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, id *authz.Identity, taskID string) (*domain.Task, error)
	Update(ctx context.Context, id *authz.Identity, taskID string, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id *authz.Identity, taskID string) error
}

// LineItemInput is one billed row on a new invoice.
type LineItemInput struct {
	Description string
	Quantity    int
	UnitPrice   float64
}

// CreateInvoiceInput carries the fields for a new invoice.
type CreateInvoiceInput struct {
	ProjectID string
	Number    string
	Amount    float64
	DueDate   *time.Time
	LineItems []LineItemInput
}

// UpdateInvoiceInput is a partial payload: nil fields are left untouched.
type UpdateInvoiceInput struct {
	Number  *string
	Amount  *float64
	DueDate *time.Time
}

// InvoiceService manages invoices, payments and the payment provider flow.
type InvoiceService interface {
	List(ctx context.Context, id *authz.Identity, f InvoiceFilter) (*ListResult[*domain.Invoice], error)
	Create(ctx context.Context, id *authz.Identity, in CreateInvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, id *authz.Identity, invoiceID string) (*domain.Invoice, error)
	Update(ctx context.Context, id *authz.Identity, invoiceID string, in UpdateInvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, id *authz.Identity, invoiceID string) error
	// MarkPaid records a manual payment. Accepts an already-paid invoice
	// without error and without writing a second transition.
	MarkPaid(ctx context.Context, id *authz.Identity, invoiceID string) (*domain.Invoice, error)
	CreatePaymentOrder(ctx context.Context, id *authz.Identity, invoiceID string) (*PaymentOrder, error)
	CapturePayment(ctx context.Context, id *authz.Identity, invoiceID, orderID string) (*domain.Invoice, error)
}

// MessageService manages project conversations.
type MessageService interface {
	ListMessages(ctx context.Context, id *authz.Identity, projectID string, f MessageFilter) (*ListResult[*domain.Message], error)
	Post(ctx context.Context, id *authz.Identity, projectID, body string) (*domain.Message, error)
	MarkRead(ctx context.Context, id *authz.Identity, messageID string) error
}

// CreateTestimonialInput carries the fields for a new testimonial.
type CreateTestimonialInput struct {
	ClientID string
	Quote    string
	Rating   int
	IsActive bool
}

// UpdateTestimonialInput is a partial payload: nil fields are left untouched.
type UpdateTestimonialInput struct {
	Quote    *string
	Rating   *int
	IsActive *bool
}

// TestimonialService manages testimonials; the public listing only ever sees
// active rows.
type TestimonialService interface {
	ListPublic(ctx context.Context, f TestimonialFilter) (*ListResult[*domain.Testimonial], error)
	ListAll(ctx context.Context, id *authz.Identity, f TestimonialFilter) (*ListResult[*domain.Testimonial], error)
	Create(ctx context.Context, id *authz.Identity, in CreateTestimonialInput) (*domain.Testimonial, error)
	Update(ctx context.Context, id *authz.Identity, testimonialID string, in UpdateTestimonialInput) (*domain.Testimonial, error)
	Delete(ctx context.Context, id *authz.Identity, testimonialID string) error
}

// CreatePortfolioInput carries the fields for a new catalog entry.
type CreatePortfolioInput struct {
	Title       string
	Description string
	Category    string // validated against the closed enumeration
	Tags        string
	ImageURL    string
	LiveURL     string
	RepoURL     string
	Featured    bool
}

// UpdatePortfolioInput is a partial payload: nil fields are left untouched.
type UpdatePortfolioInput struct {
	Title       *string
	Description *string
	Category    *string
	Tags        *string
	ImageURL    *string
	LiveURL     *string
	RepoURL     *string
	Featured    *bool
}

// PortfolioService manages the public catalog (admin-writable).
type PortfolioService interface {
	List(ctx context.Context, f PortfolioFilter) (*ListResult[*domain.PortfolioProject], error)
	Get(ctx context.Context, portfolioID string) (*domain.PortfolioProject, error)
	Create(ctx context.Context, id *authz.Identity, in CreatePortfolioInput) (*domain.PortfolioProject, error)
	Update(ctx context.Context, id *authz.Identity, portfolioID string, in UpdatePortfolioInput) (*domain.PortfolioProject, error)
	Delete(ctx context.Context, id *authz.Identity, portfolioID string) error
}

// UpdateSiteConfigInput is a partial payload: nil fields are left untouched.
type UpdateSiteConfigInput struct {
	HeroTitle    *string
	HeroSubtitle *string
	AboutText    *string
	ContactEmail *string
	GithubURL    *string
	LinkedinURL  *string
}

// SiteConfigService reads and updates the singleton site configuration.
type SiteConfigService interface {
	Get(ctx context.Context) (*domain.SiteConfiguration, error)
	Update(ctx context.Context, id *authz.Identity, in UpdateSiteConfigInput) (*domain.SiteConfiguration, error)
}

// SubmitContactInput is the public contact-form payload.
type SubmitContactInput struct {
	Name    string
	Email   string
	Company string
	Message string
}

// ContactService accepts public submissions and exposes them to the admin.
type ContactService interface {
	Submit(ctx context.Context, in SubmitContactInput) (*domain.ContactSubmission, error)
	List(ctx context.Context, id *authz.Identity, f ContactFilter) (*ListResult[*domain.ContactSubmission], error)
	Delete(ctx context.Context, id *authz.Identity, submissionID string) error
}
