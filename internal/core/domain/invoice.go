package domain

import "time"

// InvoiceStatus is the payment state of an invoice.
//
// Only UNPAID → PAID is ever written. OVERDUE is derived at the response
// boundary (unpaid with a due date in the past) and never persisted; there is
// no scheduled job flipping invoices over.
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "UNPAID"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
)

// Invoice bills one project. ClientID denormalizes the project owner so the
// ownership predicate works without a join.
type Invoice struct {
	ID        string        `gorm:"primarykey;size:36" json:"id"`
	ProjectID string        `gorm:"size:36;not null;index" json:"project_id"`
	Project   *Project      `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	ClientID  string        `gorm:"size:36;not null;index" json:"client_id"`
	Number    string        `gorm:"size:40;not null;uniqueIndex" json:"number"`
	Status    InvoiceStatus `gorm:"type:varchar(20);not null" json:"status"`
	Amount    float64       `gorm:"not null" json:"amount"`
	IssuedAt  time.Time     `json:"issued_at"`
	DueDate   *time.Time    `json:"due_date,omitempty"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
	LineItems []LineItem    `gorm:"foreignKey:InvoiceID" json:"line_items,omitempty"`
	Payments  []Payment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// EffectiveStatus resolves the wire status at time now: an unpaid invoice past
// its due date reads as OVERDUE.
func (i *Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if i.Status == InvoiceUnpaid && i.DueDate != nil && i.DueDate.Before(now) {
		return InvoiceOverdue
	}
	return i.Status
}

// LineItem is one billed row on an invoice.
type LineItem struct {
	ID          string  `gorm:"primarykey;size:36" json:"id"`
	InvoiceID   string  `gorm:"size:36;not null;index" json:"invoice_id"`
	Description string  `gorm:"size:300;not null" json:"description"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
}

func (LineItem) TableName() string { return "invoice_line_items" }

// Payment records money received against an invoice. Reference holds the
// external order id when captured through the payment provider.
type Payment struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	InvoiceID string    `gorm:"size:36;not null;index" json:"invoice_id"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Method    string    `gorm:"size:40;not null" json:"method"`
	Reference string    `gorm:"size:120" json:"reference,omitempty"`
	PaidAt    time.Time `json:"paid_at"`
}

func (Payment) TableName() string { return "payments" }
