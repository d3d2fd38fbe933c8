package handler

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/api/metrics"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// The mapper owns the response-normalization rules: timestamps go out as
// RFC 3339 UTC strings, enum values go out lowercase, and references that
// cannot be resolved are replaced by a stable placeholder instead of
// breaking the payload.

// placeholderClient is substituted when a project or testimonial references
// a customer that no longer resolves.
var placeholderClient = clientRef{ID: "unknown", Name: "Unknown Customer", Email: ""}

type paginationView struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

func toPagination[T any](r *ports.ListResult[T]) paginationView {
	return paginationView{Total: r.Total, Page: r.Page, Limit: r.Limit, Pages: r.Pages}
}

// wireTime renders a timestamp as RFC 3339 in UTC.
func wireTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func wireTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := wireTime(*t)
	return &s
}

// wireEnum lowercases a stored enum value for the response body.
func wireEnum[E ~string](v E) string {
	return strings.ToLower(string(v))
}

type clientRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// toClientRef resolves the owner reference, falling back to the placeholder
// when the record is gone.
func toClientRef(u *domain.User, log zerolog.Logger, ownerID string) clientRef {
	if u == nil {
		log.Warn().Str("client_id", ownerID).Msg("client reference unresolved, substituting placeholder")
		metrics.UnresolvedRefsTotal.WithLabelValues("client").Inc()
		return placeholderClient
	}
	return clientRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

type userView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Company:   u.Company,
		Phone:     u.Phone,
		Role:      wireEnum(u.Role),
		CreatedAt: wireTime(u.CreatedAt),
		UpdatedAt: wireTime(u.UpdatedAt),
	}
}

type projectView struct {
	ID          string    `json:"id"`
	Client      clientRef `json:"client"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	StartDate   *string   `json:"start_date,omitempty"`
	EndDate     *string   `json:"end_date,omitempty"`
	Budget      float64   `json:"budget"`
	Progress    int       `json:"progress"`
	TaskCount   int       `json:"task_count"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

func toProjectView(p *domain.Project, log zerolog.Logger) projectView {
	return projectView{
		ID:          p.ID,
		Client:      toClientRef(p.Client, log, p.ClientID),
		Name:        p.Name,
		Description: p.Description,
		Status:      wireEnum(p.Status),
		StartDate:   wireTimePtr(p.StartDate),
		EndDate:     wireTimePtr(p.EndDate),
		Budget:      p.Budget,
		Progress:    p.Progress(),
		TaskCount:   len(p.Tasks),
		CreatedAt:   wireTime(p.CreatedAt),
		UpdatedAt:   wireTime(p.UpdatedAt),
	}
}

type taskView struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"project_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date,omitempty"`
	Assignee    string  `json:"assignee,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toTaskView(t *domain.Task) taskView {
	return taskView{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      wireEnum(t.Status),
		Priority:    wireEnum(t.Priority),
		DueDate:     wireTimePtr(t.DueDate),
		Assignee:    t.Assignee,
		CreatedAt:   wireTime(t.CreatedAt),
		UpdatedAt:   wireTime(t.UpdatedAt),
	}
}

type lineItemView struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type paymentView struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference string  `json:"reference,omitempty"`
	PaidAt    string  `json:"paid_at"`
}

type invoiceView struct {
	ID        string         `json:"id"`
	ProjectID string         `json:"project_id"`
	ClientID  string         `json:"client_id"`
	Number    string         `json:"number"`
	Status    string         `json:"status"`
	Amount    float64        `json:"amount"`
	IssuedAt  string         `json:"issued_at"`
	DueDate   *string        `json:"due_date,omitempty"`
	PaidAt    *string        `json:"paid_at,omitempty"`
	LineItems []lineItemView `json:"line_items"`
	Payments  []paymentView  `json:"payments,omitempty"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

// toInvoiceView renders an invoice at time now so an unpaid invoice past its
// due date reads as overdue without ever being stored that way.
func toInvoiceView(inv *domain.Invoice, now time.Time) invoiceView {
	items := make([]lineItemView, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		items = append(items, lineItemView{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}
	payments := make([]paymentView, 0, len(inv.Payments))
	for _, p := range inv.Payments {
		payments = append(payments, paymentView{
			ID:        p.ID,
			Amount:    p.Amount,
			Method:    p.Method,
			Reference: p.Reference,
			PaidAt:    wireTime(p.PaidAt),
		})
	}
	return invoiceView{
		ID:        inv.ID,
		ProjectID: inv.ProjectID,
		ClientID:  inv.ClientID,
		Number:    inv.Number,
		Status:    wireEnum(inv.EffectiveStatus(now)),
		Amount:    inv.Amount,
		IssuedAt:  wireTime(inv.IssuedAt),
		DueDate:   wireTimePtr(inv.DueDate),
		PaidAt:    wireTimePtr(inv.PaidAt),
		LineItems: items,
		Payments:  payments,
		CreatedAt: wireTime(inv.CreatedAt),
		UpdatedAt: wireTime(inv.UpdatedAt),
	}
}

type messageView struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	SenderName     string `json:"sender_name,omitempty"`
	Body           string `json:"body"`
	Read           bool   `json:"read"`
	CreatedAt      string `json:"created_at"`
}

func toMessageView(m *domain.Message) messageView {
	v := messageView{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		Read:           m.Read,
		CreatedAt:      wireTime(m.CreatedAt),
	}
	if m.Sender != nil {
		v.SenderName = m.Sender.Name
	}
	return v
}

type testimonialView struct {
	ID        string    `json:"id"`
	Client    clientRef `json:"client"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	IsActive  bool      `json:"is_active"`
	CreatedAt string    `json:"created_at"`
}

func toTestimonialView(t *domain.Testimonial, log zerolog.Logger) testimonialView {
	return testimonialView{
		ID:        t.ID,
		Client:    toClientRef(t.Client, log, t.ClientID),
		Quote:     t.Quote,
		Rating:    t.Rating,
		IsActive:  t.IsActive,
		CreatedAt: wireTime(t.CreatedAt),
	}
}

type portfolioView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Tags        string `json:"tags,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	LiveURL     string `json:"live_url,omitempty"`
	RepoURL     string `json:"repo_url,omitempty"`
	Featured    bool   `json:"featured"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toPortfolioView(p *domain.PortfolioProject) portfolioView {
	return portfolioView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    wireEnum(p.Category),
		Tags:        p.Tags,
		ImageURL:    p.ImageURL,
		LiveURL:     p.LiveURL,
		RepoURL:     p.RepoURL,
		Featured:    p.Featured,
		CreatedAt:   wireTime(p.CreatedAt),
		UpdatedAt:   wireTime(p.UpdatedAt),
	}
}

type siteConfigView struct {
	HeroTitle    string `json:"hero_title"`
	HeroSubtitle string `json:"hero_subtitle"`
	AboutText    string `json:"about_text"`
	ContactEmail string `json:"contact_email"`
	GithubURL    string `json:"github_url,omitempty"`
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	UpdatedAt    string `json:"updated_at"`
}

func toSiteConfigView(cfg *domain.SiteConfiguration) siteConfigView {
	return siteConfigView{
		HeroTitle:    cfg.HeroTitle,
		HeroSubtitle: cfg.HeroSubtitle,
		AboutText:    cfg.AboutText,
		ContactEmail: cfg.ContactEmail,
		GithubURL:    cfg.GithubURL,
		LinkedinURL:  cfg.LinkedinURL,
		UpdatedAt:    wireTime(cfg.UpdatedAt),
	}
}

type contactView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func toContactView(s *domain.ContactSubmission) contactView {
	return contactView{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Company:   s.Company,
		Message:   s.Message,
		CreatedAt: wireTime(s.CreatedAt),
	}
}
