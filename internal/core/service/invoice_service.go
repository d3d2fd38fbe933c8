package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// InvoiceService manages invoices, their child rows and the payment-provider
// flow. Cascading deletes and payment recording run inside repository
// transactions; two concurrent mark-paid calls both succeed silently (no
// optimistic-concurrency check, accepted and covered in tests).
type InvoiceService struct {
	repo     ports.InvoiceRepository
	projects ports.ProjectRepository
	payments ports.PaymentProvider
	logger   zerolog.Logger
}

func NewInvoiceService(repo ports.InvoiceRepository, projects ports.ProjectRepository, payments ports.PaymentProvider, logger zerolog.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, projects: projects, payments: payments, logger: logger}
}

func (s *InvoiceService) List(ctx context.Context, id *authz.Identity, f ports.InvoiceFilter) (*ports.ListResult[*domain.Invoice], error) {
	if err := authz.RequireAuth(id); err != nil {
		return nil, err
	}

	f.ClientID = authz.OwnerScope(id)

	page := authz.NormalizePage(f.Page, f.Limit, authz.LimitInvoices)
	f.Page, f.Limit = page.Page, page.Limit

	invoices, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*domain.Invoice]{
		Items: invoices,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: authz.Pages(total, page.Limit),
	}, nil
}

func (s *InvoiceService) Create(ctx context.Context, id *authz.Identity, in ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	var missing []string
	if in.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	if in.Amount <= 0 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	number := in.Number
	if number == "" {
		number = generateInvoiceNumber()
	}

	invoice := &domain.Invoice{
		ID:        uuid.New().String(),
		ProjectID: project.ID,
		ClientID:  project.ClientID, // denormalized owner for the scoping predicate
		Number:    number,
		Status:    domain.InvoiceUnpaid,
		Amount:    in.Amount,
		IssuedAt:  time.Now().UTC(),
		DueDate:   in.DueDate,
	}
	for _, li := range in.LineItems {
		if li.Description == "" || li.Quantity <= 0 {
			return nil, domain.NewValidationError("line items require description and a positive quantity")
		}
		invoice.LineItems = append(invoice.LineItems, domain.LineItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoice.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info().Str("invoice_id", invoice.ID).Str("number", invoice.Number).Str("client_id", invoice.ClientID).Msg("invoice created")
	return invoice, nil
}

func (s *InvoiceService) Get(ctx context.Context, id *authz.Identity, invoiceID string) (*domain.Invoice, error) {
	return s.fetchScoped(ctx, id, invoiceID)
}

func (s *InvoiceService) Update(ctx context.Context, id *authz.Identity, invoiceID string, in ports.UpdateInvoiceInput) (*domain.Invoice, error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	if in.Number == nil && in.Amount == nil && in.DueDate == nil {
		return nil, domain.NewValidationError("no valid fields provided")
	}

	invoice, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if in.Number != nil {
		invoice.Number = *in.Number
	}
	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, domain.NewValidationError("amount must be greater than zero")
		}
		invoice.Amount = *in.Amount
	}
	if in.DueDate != nil {
		invoice.DueDate = in.DueDate
	}

	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id *authz.Identity, invoiceID string) error {
	if err := authz.RequireAdmin(id); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, invoiceID); err != nil {
		return err
	}
	if err := s.repo.DeleteCascade(ctx, invoiceID); err != nil {
		return err
	}
	s.logger.Info().Str("invoice_id", invoiceID).Msg("invoice deleted with children")
	return nil
}

// MarkPaid records a manual payment. Re-marking a PAID invoice is accepted
// and returns the invoice unchanged.
func (s *InvoiceService) MarkPaid(ctx context.Context, id *authz.Identity, invoiceID string) (*domain.Invoice, error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	invoice, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoicePaid {
		return invoice, nil
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:        uuid.New().String(),
		InvoiceID: invoice.ID,
		Amount:    invoice.Amount,
		Method:    "manual",
		PaidAt:    now,
	}
	if err := s.repo.RecordPayment(ctx, invoice.ID, payment, now); err != nil {
		return nil, err
	}

	s.logger.Info().Str("invoice_id", invoice.ID).Msg("invoice marked paid")
	return s.repo.FindByID(ctx, invoice.ID)
}

func (s *InvoiceService) CreatePaymentOrder(ctx context.Context, id *authz.Identity, invoiceID string) (*ports.PaymentOrder, error) {
	invoice, err := s.fetchScoped(ctx, id, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoicePaid {
		return nil, domain.NewValidationError("invoice is already paid")
	}

	order, err := s.payments.CreateOrder(ctx, invoice)
	if err != nil {
		s.logger.Error().Err(err).Str("invoice_id", invoice.ID).Msg("payment order creation failed")
		return nil, err
	}

	s.logger.Info().Str("invoice_id", invoice.ID).Str("order_id", order.OrderID).Msg("payment order created")
	return order, nil
}

func (s *InvoiceService) CapturePayment(ctx context.Context, id *authz.Identity, invoiceID, orderID string) (*domain.Invoice, error) {
	invoice, err := s.fetchScoped(ctx, id, invoiceID)
	if err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, domain.MissingFields("order_id")
	}

	result, err := s.payments.CaptureOrder(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("invoice_id", invoice.ID).Str("order_id", orderID).Msg("payment capture failed")
		return nil, err
	}
	if !result.Captured() {
		return nil, domain.NewValidationError("payment not completed: " + result.Status)
	}

	if invoice.Status != domain.InvoicePaid {
		now := time.Now().UTC()
		payment := &domain.Payment{
			ID:        uuid.New().String(),
			InvoiceID: invoice.ID,
			Amount:    invoice.Amount,
			Method:    "paypal",
			Reference: orderID,
			PaidAt:    now,
		}
		if err := s.repo.RecordPayment(ctx, invoice.ID, payment, now); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Str("invoice_id", invoice.ID).Str("order_id", orderID).Msg("payment captured")
	return s.repo.FindByID(ctx, invoice.ID)
}

// fetchScoped loads an invoice and enforces ownership through its
// denormalized client id.
func (s *InvoiceService) fetchScoped(ctx context.Context, id *authz.Identity, invoiceID string) (*domain.Invoice, error) {
	if err := authz.RequireAuth(id); err != nil {
		return nil, err
	}
	invoice, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(id, invoice.ClientID); err != nil {
		return nil, err
	}
	return invoice, nil
}

// generateInvoiceNumber returns a number in the format INV-YYYYMM-XXXXXX.
func generateInvoiceNumber() string {
	now := time.Now().UTC()
	suffix := uuid.New().String()[:6]
	return fmt.Sprintf("INV-%04d%02d-%s", now.Year(), int(now.Month()), suffix)
}
