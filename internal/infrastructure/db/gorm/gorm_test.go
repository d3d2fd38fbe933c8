package gormdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return db
}

func TestUserRepository_EmailUniqueness(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	u := &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := &domain.User{ID: "u2", Name: "Other", Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("duplicate create = %v, want ErrEmailTaken", err)
	}
}

func TestUserRepository_FindAndDelete(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	u := &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil || got.ID != "u1" {
		t.Fatalf("find by email = %v, %v", got, err)
	}

	if err := repo.Delete(ctx, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("find after delete = %v, want ErrUserNotFound", err)
	}
	if err := repo.Delete(ctx, "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("second delete = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_CountByRole(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	seed := []*domain.User{
		{ID: "u1", Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: domain.RoleAdmin},
		{ID: "u2", Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleCustomer},
		{ID: "u3", Name: "Bob", Email: "bob@example.com", PasswordHash: "x", Role: domain.RoleCustomer},
	}
	for _, u := range seed {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("create %s: %v", u.ID, err)
		}
	}

	n, err := repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil || n != 1 {
		t.Errorf("admin count = %d, %v, want 1", n, err)
	}
	n, err = repo.CountByRole(ctx, domain.RoleCustomer)
	if err != nil || n != 2 {
		t.Errorf("customer count = %d, %v, want 2", n, err)
	}
}

func TestProjectRepository_DeleteCascade(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	projects := NewProjectRepository(db)
	tasks := NewTaskRepository(db)
	conversations := NewConversationRepository(db)
	invoices := NewInvoiceRepository(db)

	owner := &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := projects.Create(ctx, &domain.Project{ID: "p1", ClientID: "u1", Name: "Site", Status: domain.ProjectPlanned}); err != nil {
		t.Fatalf("create project: %v", err)
	}
	if err := tasks.Create(ctx, &domain.Task{ID: "t1", ProjectID: "p1", Title: "Design", Status: domain.TaskTodo, Priority: domain.PriorityMedium}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	conv, err := conversations.FindOrCreateByProject(ctx, "p1")
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	msg := &domain.Message{ID: "m1", ConversationID: conv.ID, SenderID: "u1", Body: "hello"}
	if err := conversations.AddMessage(ctx, msg); err != nil {
		t.Fatalf("add message: %v", err)
	}
	inv := &domain.Invoice{
		ID:        "inv1",
		ProjectID: "p1",
		ClientID:  "u1",
		Number:    "INV-202508-abc123",
		Status:    domain.InvoiceUnpaid,
		Amount:    100,
		IssuedAt:  time.Now().UTC(),
		LineItems: []domain.LineItem{{ID: "li1", InvoiceID: "inv1", Description: "Work", Quantity: 1, UnitPrice: 100}},
	}
	if err := invoices.Create(ctx, inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	now := time.Now().UTC()
	if err := invoices.RecordPayment(ctx, "inv1", &domain.Payment{ID: "pay1", InvoiceID: "inv1", Amount: 100, Method: "manual", PaidAt: now}, now); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	if err := projects.DeleteCascade(ctx, "p1"); err != nil {
		t.Fatalf("delete cascade: %v", err)
	}

	if _, err := projects.FindByID(ctx, "p1"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("project survives: %v", err)
	}
	if _, err := tasks.FindByID(ctx, "t1"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("task survives: %v", err)
	}
	if _, err := conversations.FindMessage(ctx, "m1"); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Errorf("message survives: %v", err)
	}
	if _, err := invoices.FindByID(ctx, "inv1"); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Errorf("invoice survives: %v", err)
	}
	for _, check := range []struct {
		name  string
		model any
		col   string
		key   string
	}{
		{"invoices", &domain.Invoice{}, "project_id", "p1"},
		{"line_items", &domain.LineItem{}, "invoice_id", "inv1"},
		{"payments", &domain.Payment{}, "invoice_id", "inv1"},
	} {
		var orphans int64
		if err := db.Model(check.model).Where(check.col+" = ?", check.key).Count(&orphans).Error; err != nil {
			t.Fatalf("count %s: %v", check.name, err)
		}
		if orphans != 0 {
			t.Errorf("orphaned %s = %d", check.name, orphans)
		}
	}
	if err := projects.DeleteCascade(ctx, "p1"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("second cascade = %v, want ErrProjectNotFound", err)
	}
}

func TestProjectRepository_ListFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	projects := NewProjectRepository(db)

	seed := []*domain.Project{
		{ID: "p1", ClientID: "u1", Name: "Site relaunch", Status: domain.ProjectInProgress},
		{ID: "p2", ClientID: "u1", Name: "Mobile app", Status: domain.ProjectPlanned},
		{ID: "p3", ClientID: "u2", Name: "API integration", Status: domain.ProjectInProgress},
	}
	for _, p := range seed {
		if err := projects.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}

	_, total, err := projects.List(ctx, ports.ProjectFilter{ClientID: "u1", Page: 1, Limit: 10})
	if err != nil || total != 2 {
		t.Errorf("client filter total = %d, %v, want 2", total, err)
	}
	_, total, err = projects.List(ctx, ports.ProjectFilter{Status: domain.ProjectInProgress, Page: 1, Limit: 10})
	if err != nil || total != 2 {
		t.Errorf("status filter total = %d, %v, want 2", total, err)
	}
	_, total, err = projects.List(ctx, ports.ProjectFilter{Search: "mobile", Page: 1, Limit: 10})
	if err != nil || total != 1 {
		t.Errorf("search total = %d, %v, want 1", total, err)
	}
}

func TestInvoiceRepository_RecordPayment(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	invoices := NewInvoiceRepository(db)

	inv := &domain.Invoice{
		ID:        "inv1",
		ProjectID: "p1",
		ClientID:  "u1",
		Number:    "INV-202508-abc123",
		Status:    domain.InvoiceUnpaid,
		Amount:    1200,
		IssuedAt:  time.Now().UTC(),
		LineItems: []domain.LineItem{
			{ID: "li1", InvoiceID: "inv1", Description: "Design", Quantity: 10, UnitPrice: 120},
		},
	}
	if err := invoices.Create(ctx, inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	now := time.Now().UTC()
	payment := &domain.Payment{ID: "pay1", InvoiceID: "inv1", Amount: 1200, Method: "manual", PaidAt: now}
	if err := invoices.RecordPayment(ctx, "inv1", payment, now); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	got, err := invoices.FindByID(ctx, "inv1")
	if err != nil {
		t.Fatalf("find invoice: %v", err)
	}
	if got.Status != domain.InvoicePaid {
		t.Errorf("status = %q, want PAID", got.Status)
	}
	if got.PaidAt == nil {
		t.Error("paid_at not set")
	}
	if len(got.Payments) != 1 || got.Payments[0].Method != "manual" {
		t.Errorf("payments = %+v", got.Payments)
	}
	if len(got.LineItems) != 1 {
		t.Errorf("line items = %+v", got.LineItems)
	}

	if err := invoices.RecordPayment(ctx, "ghost", payment, now); err == nil {
		t.Error("recording against a missing invoice must fail")
	}
}

func TestInvoiceRepository_NumberUniqueness(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	invoices := NewInvoiceRepository(db)

	seed := []*domain.Invoice{
		{ID: "inv1", ProjectID: "p1", ClientID: "u1", Number: "INV-202508-abc123", Status: domain.InvoiceUnpaid, Amount: 100, IssuedAt: time.Now().UTC()},
		{ID: "inv2", ProjectID: "p1", ClientID: "u1", Number: "INV-202508-def456", Status: domain.InvoiceUnpaid, Amount: 200, IssuedAt: time.Now().UTC()},
	}
	for _, inv := range seed {
		if err := invoices.Create(ctx, inv); err != nil {
			t.Fatalf("create %s: %v", inv.ID, err)
		}
	}

	dup := &domain.Invoice{ID: "inv3", ProjectID: "p1", ClientID: "u1", Number: "INV-202508-abc123", Status: domain.InvoiceUnpaid, Amount: 300, IssuedAt: time.Now().UTC()}
	if err := invoices.Create(ctx, dup); !errors.Is(err, domain.ErrNumberTaken) {
		t.Fatalf("duplicate create = %v, want ErrNumberTaken", err)
	}

	second, err := invoices.FindByID(ctx, "inv2")
	if err != nil {
		t.Fatalf("find invoice: %v", err)
	}
	second.Number = "INV-202508-abc123"
	if err := invoices.Update(ctx, second); !errors.Is(err, domain.ErrNumberTaken) {
		t.Errorf("duplicate update = %v, want ErrNumberTaken", err)
	}
}

func TestInvoiceRepository_DeleteCascade(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	invoices := NewInvoiceRepository(db)

	inv := &domain.Invoice{
		ID:        "inv1",
		ProjectID: "p1",
		ClientID:  "u1",
		Number:    "INV-202508-abc123",
		Status:    domain.InvoiceUnpaid,
		Amount:    100,
		IssuedAt:  time.Now().UTC(),
		LineItems: []domain.LineItem{{ID: "li1", InvoiceID: "inv1", Description: "Work", Quantity: 1, UnitPrice: 100}},
	}
	if err := invoices.Create(ctx, inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	if err := invoices.DeleteCascade(ctx, "inv1"); err != nil {
		t.Fatalf("delete cascade: %v", err)
	}
	if _, err := invoices.FindByID(ctx, "inv1"); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Errorf("invoice survives: %v", err)
	}

	var orphans int64
	if err := db.Model(&domain.LineItem{}).Where("invoice_id = ?", "inv1").Count(&orphans).Error; err != nil {
		t.Fatalf("count line items: %v", err)
	}
	if orphans != 0 {
		t.Errorf("orphaned line items = %d", orphans)
	}
}

func TestConversationRepository_FindOrCreateIsIdempotent(t *testing.T) {
	conversations := NewConversationRepository(openTestDB(t))
	ctx := context.Background()

	first, err := conversations.FindOrCreateByProject(ctx, "p1")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := conversations.FindOrCreateByProject(ctx, "p1")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("got two conversations for one project: %q vs %q", first.ID, second.ID)
	}
}

func TestConversationRepository_ListMessagesReadFilter(t *testing.T) {
	conversations := NewConversationRepository(openTestDB(t))
	ctx := context.Background()

	conv, err := conversations.FindOrCreateByProject(ctx, "p1")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	for _, id := range []string{"m1", "m2", "m3"} {
		if err := conversations.AddMessage(ctx, &domain.Message{ID: id, ConversationID: conv.ID, SenderID: "u1", Body: id}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	if err := conversations.MarkMessageRead(ctx, "m1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	read := true
	msgs, total, err := conversations.ListMessages(ctx, ports.MessageFilter{ConversationID: conv.ID, Read: &read, Page: 1, Limit: 50})
	if err != nil || total != 1 || msgs[0].ID != "m1" {
		t.Errorf("read filter = %d messages, %v", total, err)
	}

	read = false
	_, total, err = conversations.ListMessages(ctx, ports.MessageFilter{ConversationID: conv.ID, Read: &read, Page: 1, Limit: 50})
	if err != nil || total != 2 {
		t.Errorf("unread filter = %d messages, %v, want 2", total, err)
	}
}

func TestConversationRepository_MarkMessageRead(t *testing.T) {
	conversations := NewConversationRepository(openTestDB(t))
	ctx := context.Background()

	conv, err := conversations.FindOrCreateByProject(ctx, "p1")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	msg := &domain.Message{ID: "m1", ConversationID: conv.ID, SenderID: "u1", Body: "hello"}
	if err := conversations.AddMessage(ctx, msg); err != nil {
		t.Fatalf("add message: %v", err)
	}

	if err := conversations.MarkMessageRead(ctx, "m1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	got, err := conversations.FindMessage(ctx, "m1")
	if err != nil {
		t.Fatalf("find message: %v", err)
	}
	if !got.Read {
		t.Error("message not flagged read")
	}

	if err := conversations.MarkMessageRead(ctx, "missing"); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Errorf("missing message = %v, want ErrMessageNotFound", err)
	}
}
