package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Shared fixtures
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var (
	adminID = &authz.Identity{ID: "admin_1", Role: domain.RoleAdmin, Name: "Admin", Email: "admin@example.com"}
	cust1   = &authz.Identity{ID: "cust_1", Role: domain.RoleCustomer, Name: "Alice", Email: "alice@example.com"}
	cust2   = &authz.Identity{ID: "cust_2", Role: domain.RoleCustomer, Name: "Bob", Email: "bob@example.com"}
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	updateErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.byID[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.byID {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(u.Name+u.Email+u.Company), strings.ToLower(f.Search)) {
			continue
		}
		clone := *u
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f.Page, f.Limit)
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type stubProjectRepo struct {
	byID       map[string]*domain.Project
	lastFilter ports.ProjectFilter
	cascaded   []string
}

func newStubProjectRepo(projects ...*domain.Project) *stubProjectRepo {
	r := &stubProjectRepo{byID: make(map[string]*domain.Project)}
	for _, p := range projects {
		clone := *p
		r.byID[p.ID] = &clone
	}
	return r
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

// List applies the same ownership predicate the real repository would.
func (r *stubProjectRepo) List(_ context.Context, f ports.ProjectFilter) ([]*domain.Project, int64, error) {
	r.lastFilter = f
	var matched []*domain.Project
	for _, p := range r.byID {
		if f.ClientID != "" && p.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name+p.Description), strings.ToLower(f.Search)) {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f.Page, f.Limit)
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) DeleteCascade(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.byID, id)
	r.cascaded = append(r.cascaded, id)
	return nil
}

// userRepoWithProjects adapts stubUserRepo's CountOwned to a project stub.
type userRepoWithProjects struct {
	*stubUserRepo
	projects *stubProjectRepo
}

func (r *userRepoWithProjects) CountOwned(_ context.Context, id string) (int64, error) {
	var n int64
	for _, p := range r.projects.byID {
		if p.ClientID == id {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) CountOwned(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

type stubTaskRepo struct {
	byID     map[string]*domain.Task
	projects *stubProjectRepo
}

func newStubTaskRepo(projects *stubProjectRepo, tasks ...*domain.Task) *stubTaskRepo {
	r := &stubTaskRepo{byID: make(map[string]*domain.Task), projects: projects}
	for _, t := range tasks {
		clone := *t
		r.byID[t.ID] = &clone
	}
	return r
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

// List joins through the project map to honor the transitive client scope,
// mirroring the SQL join in the real repository.
func (r *stubTaskRepo) List(_ context.Context, f ports.TaskFilter) ([]*domain.Task, int64, error) {
	var matched []*domain.Task
	for _, t := range r.byID {
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			continue
		}
		if f.ClientID != "" {
			p, ok := r.projects.byID[t.ProjectID]
			if !ok || p.ClientID != f.ClientID {
				continue
			}
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f.Page, f.Limit)
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubInvoiceRepo struct {
	byID     map[string]*domain.Invoice
	cascaded []string
}

func newStubInvoiceRepo(invoices ...*domain.Invoice) *stubInvoiceRepo {
	r := &stubInvoiceRepo{byID: make(map[string]*domain.Invoice)}
	for _, inv := range invoices {
		clone := *inv
		r.byID[inv.ID] = &clone
	}
	return r
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) error {
	clone := *inv
	r.byID[inv.ID] = &clone
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id string) (*domain.Invoice, error) {
	inv, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	clone := *inv
	return &clone, nil
}

func (r *stubInvoiceRepo) List(_ context.Context, f ports.InvoiceFilter) ([]*domain.Invoice, int64, error) {
	var matched []*domain.Invoice
	for _, inv := range r.byID {
		if f.ClientID != "" && inv.ClientID != f.ClientID {
			continue
		}
		if f.ProjectID != "" && inv.ProjectID != f.ProjectID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		clone := *inv
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f.Page, f.Limit)
}

func (r *stubInvoiceRepo) Update(_ context.Context, inv *domain.Invoice) error {
	clone := *inv
	r.byID[inv.ID] = &clone
	return nil
}

func (r *stubInvoiceRepo) DeleteCascade(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrInvoiceNotFound
	}
	delete(r.byID, id)
	r.cascaded = append(r.cascaded, id)
	return nil
}

func (r *stubInvoiceRepo) RecordPayment(_ context.Context, invoiceID string, p *domain.Payment, paidAt time.Time) error {
	inv, ok := r.byID[invoiceID]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	inv.Payments = append(inv.Payments, *p)
	inv.Status = domain.InvoicePaid
	inv.PaidAt = &paidAt
	return nil
}

type stubConversationRepo struct {
	byProject map[string]*domain.Conversation
	byID      map[string]*domain.Conversation
	messages  map[string]*domain.Message
	seq       int
}

func newStubConversationRepo() *stubConversationRepo {
	return &stubConversationRepo{
		byProject: make(map[string]*domain.Conversation),
		byID:      make(map[string]*domain.Conversation),
		messages:  make(map[string]*domain.Message),
	}
}

func (r *stubConversationRepo) FindOrCreateByProject(_ context.Context, projectID string) (*domain.Conversation, error) {
	if conv, ok := r.byProject[projectID]; ok {
		clone := *conv
		return &clone, nil
	}
	r.seq++
	conv := &domain.Conversation{ID: "conv_" + projectID, ProjectID: projectID}
	r.byProject[projectID] = conv
	r.byID[conv.ID] = conv
	clone := *conv
	return &clone, nil
}

func (r *stubConversationRepo) FindConversation(_ context.Context, id string) (*domain.Conversation, error) {
	conv, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	clone := *conv
	return &clone, nil
}

func (r *stubConversationRepo) ListMessages(_ context.Context, f ports.MessageFilter) ([]*domain.Message, int64, error) {
	var matched []*domain.Message
	for _, m := range r.messages {
		if m.ConversationID != f.ConversationID {
			continue
		}
		if f.Read != nil && m.Read != *f.Read {
			continue
		}
		clone := *m
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return paginate(matched, f.Page, f.Limit)
}

func (r *stubConversationRepo) AddMessage(_ context.Context, m *domain.Message) error {
	r.seq++
	clone := *m
	clone.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	r.messages[m.ID] = &clone
	return nil
}

func (r *stubConversationRepo) FindMessage(_ context.Context, id string) (*domain.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubConversationRepo) MarkMessageRead(_ context.Context, id string) error {
	m, ok := r.messages[id]
	if !ok {
		return domain.ErrMessageNotFound
	}
	m.Read = true
	return nil
}

type stubTestimonialRepo struct {
	byID map[string]*domain.Testimonial
}

func newStubTestimonialRepo(items ...*domain.Testimonial) *stubTestimonialRepo {
	r := &stubTestimonialRepo{byID: make(map[string]*domain.Testimonial)}
	for _, t := range items {
		clone := *t
		r.byID[t.ID] = &clone
	}
	return r
}

func (r *stubTestimonialRepo) Create(_ context.Context, t *domain.Testimonial) error {
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTestimonialRepo) FindByID(_ context.Context, id string) (*domain.Testimonial, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTestimonialNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTestimonialRepo) List(_ context.Context, f ports.TestimonialFilter) ([]*domain.Testimonial, int64, error) {
	var matched []*domain.Testimonial
	for _, t := range r.byID {
		if f.ActiveOnly && !t.IsActive {
			continue
		}
		if f.ClientID != "" && t.ClientID != f.ClientID {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f.Page, f.Limit)
}

func (r *stubTestimonialRepo) Update(_ context.Context, t *domain.Testimonial) error {
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTestimonialRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTestimonialNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubPortfolioRepo struct {
	byID map[string]*domain.PortfolioProject
}

func newStubPortfolioRepo(items ...*domain.PortfolioProject) *stubPortfolioRepo {
	r := &stubPortfolioRepo{byID: make(map[string]*domain.PortfolioProject)}
	for _, p := range items {
		clone := *p
		r.byID[p.ID] = &clone
	}
	return r
}

func (r *stubPortfolioRepo) Create(_ context.Context, p *domain.PortfolioProject) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPortfolioRepo) FindByID(_ context.Context, id string) (*domain.PortfolioProject, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPortfolioRepo) List(_ context.Context, f ports.PortfolioFilter) ([]*domain.PortfolioProject, int64, error) {
	var matched []*domain.PortfolioProject
	for _, p := range r.byID {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f.Page, f.Limit)
}

func (r *stubPortfolioRepo) Update(_ context.Context, p *domain.PortfolioProject) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPortfolioRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPortfolioNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubSiteConfigRepo struct {
	cfg *domain.SiteConfiguration
}

func (r *stubSiteConfigRepo) Get(_ context.Context) (*domain.SiteConfiguration, error) {
	if r.cfg == nil {
		r.cfg = &domain.SiteConfiguration{ID: domain.SiteConfigID}
	}
	clone := *r.cfg
	return &clone, nil
}

func (r *stubSiteConfigRepo) Save(_ context.Context, cfg *domain.SiteConfiguration) error {
	clone := *cfg
	r.cfg = &clone
	return nil
}

type stubContactRepo struct {
	byID map[string]*domain.ContactSubmission
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{byID: make(map[string]*domain.ContactSubmission)}
}

func (r *stubContactRepo) Create(_ context.Context, s *domain.ContactSubmission) error {
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *stubContactRepo) List(_ context.Context, f ports.ContactFilter) ([]*domain.ContactSubmission, int64, error) {
	var matched []*domain.ContactSubmission
	for _, s := range r.byID {
		if f.Search != "" && !strings.Contains(strings.ToLower(s.Name+s.Email), strings.ToLower(f.Search)) {
			continue
		}
		clone := *s
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f.Page, f.Limit)
}

func (r *stubContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSubmissionNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	live map[string]bool
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{live: make(map[string]bool)}
}

func (s *stubSessionStore) Put(_ context.Context, sid string, _ time.Duration) error {
	s.live[sid] = true
	return nil
}

func (s *stubSessionStore) Exists(_ context.Context, sid string) (bool, error) {
	return s.live[sid], nil
}

func (s *stubSessionStore) Delete(_ context.Context, sid string) error {
	delete(s.live, sid)
	return nil
}

type stubPaymentProvider struct {
	order         *ports.PaymentOrder
	createErr     error
	captureStatus string
	captureErr    error
	captured      []string
}

func (p *stubPaymentProvider) CreateOrder(_ context.Context, _ *domain.Invoice) (*ports.PaymentOrder, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	if p.order != nil {
		return p.order, nil
	}
	return &ports.PaymentOrder{OrderID: "ORDER-1", ApproveURL: "https://example.com/approve"}, nil
}

func (p *stubPaymentProvider) CaptureOrder(_ context.Context, orderID string) (*ports.CaptureResult, error) {
	if p.captureErr != nil {
		return nil, p.captureErr
	}
	p.captured = append(p.captured, orderID)
	status := p.captureStatus
	if status == "" {
		status = "COMPLETED"
	}
	return &ports.CaptureResult{Status: status}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func paginate[T any](items []T, page, limit int) ([]T, int64, error) {
	total := int64(len(items))
	if limit <= 0 {
		return items, total, nil
	}
	skip := (page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}, total, nil
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end], total, nil
}
