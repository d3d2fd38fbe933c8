package gormdb

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts the invoice together with its line items in one transaction.
func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := inv.LineItems
		inv.LineItems = nil
		if err := tx.Create(inv).Error; err != nil {
			inv.LineItems = items
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
				return domain.ErrNumberTaken
			}
			return err
		}
		inv.LineItems = items
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Project.Client").
		Preload("LineItems").
		Preload("Payments").
		First(&inv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) List(ctx context.Context, f ports.InvoiceFilter) ([]*domain.Invoice, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Invoice{})

	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(number) LIKE ?", needle)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []*domain.Invoice
	err := q.Preload("Project").
		Preload("Project.Client").
		Preload("LineItems").
		Preload("Payments").
		Order("issued_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	err := r.db.WithContext(ctx).Omit("Project", "LineItems", "Payments").Save(inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
			return domain.ErrNumberTaken
		}
		return err
	}
	return nil
}

// DeleteCascade removes payments and line items before the invoice itself,
// all inside one transaction so a partial failure leaves no orphans.
func (r *InvoiceRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Payment{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.LineItem{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Invoice{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvoiceNotFound
		}
		return nil
	})
}

// RecordPayment appends the payment and flips the invoice to PAID atomically.
func (r *InvoiceRepository) RecordPayment(ctx context.Context, invoiceID string, p *domain.Payment, paidAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.Invoice{}).
			Where("id = ?", invoiceID).
			Updates(map[string]any{
				"status":  domain.InvoicePaid,
				"paid_at": paidAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvoiceNotFound
		}
		return nil
	})
}
