package service

import (
	"context"
	"errors"
	"testing"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

func newTestimonialService(repo *stubTestimonialRepo) *TestimonialService {
	users := newStubUserRepo(
		&domain.User{ID: "cust_1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleCustomer},
	)
	return NewTestimonialService(repo, users, discardLogger)
}

func seedTestimonials() *stubTestimonialRepo {
	return newStubTestimonialRepo(
		&domain.Testimonial{ID: "ts1", ClientID: "cust_1", Quote: "Great work", Rating: 5, IsActive: true},
		&domain.Testimonial{ID: "ts2", ClientID: "cust_1", Quote: "Draft", Rating: 4, IsActive: false},
	)
}

func TestTestimonialService_ListPublic_OnlyActive(t *testing.T) {
	svc := newTestimonialService(seedTestimonials())

	// The handler cannot widen visibility through the filter.
	result, err := svc.ListPublic(context.Background(), ports.TestimonialFilter{ActiveOnly: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("total = %d, want 1", result.Total)
	}
	if len(result.Items) != 1 || result.Items[0].ID != "ts1" {
		t.Errorf("items = %+v", result.Items)
	}
}

func TestTestimonialService_ListAll_AdminOnly(t *testing.T) {
	svc := newTestimonialService(seedTestimonials())

	if _, err := svc.ListAll(context.Background(), cust1, ports.TestimonialFilter{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("customer list = %v, want ErrForbidden", err)
	}

	result, err := svc.ListAll(context.Background(), adminID, ports.TestimonialFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("total = %d, want 2", result.Total)
	}
}

func TestTestimonialService_Create(t *testing.T) {
	repo := newStubTestimonialRepo()
	svc := newTestimonialService(repo)

	ts, err := svc.Create(context.Background(), adminID, ports.CreateTestimonialInput{ClientID: "cust_1", Quote: "Solid", Rating: 4, IsActive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.byID[ts.ID]; !ok {
		t.Error("testimonial not persisted")
	}
}

func TestTestimonialService_Create_Validation(t *testing.T) {
	svc := newTestimonialService(newStubTestimonialRepo())

	_, err := svc.Create(context.Background(), adminID, ports.CreateTestimonialInput{})
	ve, ok := domain.AsValidation(err)
	if !ok {
		t.Fatalf("got %v, want validation error", err)
	}
	if ve.Details != "missing required fields: client_id, quote" {
		t.Errorf("details = %q", ve.Details)
	}

	for _, rating := range []int{0, 6} {
		_, err := svc.Create(context.Background(), adminID, ports.CreateTestimonialInput{ClientID: "cust_1", Quote: "x", Rating: rating})
		ve, ok := domain.AsValidation(err)
		if !ok {
			t.Fatalf("rating %d: got %v, want validation error", rating, err)
		}
		if ve.Details != "rating must be between 1 and 5" {
			t.Errorf("rating %d details = %q", rating, ve.Details)
		}
	}
}

func TestTestimonialService_Create_UnknownClient(t *testing.T) {
	svc := newTestimonialService(newStubTestimonialRepo())
	_, err := svc.Create(context.Background(), adminID, ports.CreateTestimonialInput{ClientID: "ghost", Quote: "x", Rating: 3})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("got %v, want ErrClientNotFound", err)
	}
}

func TestTestimonialService_Create_AdminOnly(t *testing.T) {
	svc := newTestimonialService(newStubTestimonialRepo())
	_, err := svc.Create(context.Background(), cust1, ports.CreateTestimonialInput{ClientID: "cust_1", Quote: "x", Rating: 3})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestTestimonialService_Update(t *testing.T) {
	svc := newTestimonialService(seedTestimonials())

	_, err := svc.Update(context.Background(), adminID, "ts1", ports.UpdateTestimonialInput{})
	if _, ok := domain.AsValidation(err); !ok {
		t.Fatalf("empty payload = %v, want validation error", err)
	}

	bad := 7
	_, err = svc.Update(context.Background(), adminID, "ts1", ports.UpdateTestimonialInput{Rating: &bad})
	if _, ok := domain.AsValidation(err); !ok {
		t.Fatalf("bad rating = %v, want validation error", err)
	}

	active := true
	ts, err := svc.Update(context.Background(), adminID, "ts2", ports.UpdateTestimonialInput{IsActive: &active})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ts.IsActive {
		t.Error("testimonial not activated")
	}
	// Untouched fields survive.
	if ts.Quote != "Draft" {
		t.Errorf("quote changed unexpectedly: %q", ts.Quote)
	}
}

func TestTestimonialService_Delete(t *testing.T) {
	repo := seedTestimonials()
	svc := newTestimonialService(repo)

	if err := svc.Delete(context.Background(), cust1, "ts1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("customer delete = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), adminID, "ts1"); err != nil {
		t.Fatalf("admin delete = %v, want nil", err)
	}
	if err := svc.Delete(context.Background(), adminID, "ts1"); !errors.Is(err, domain.ErrTestimonialNotFound) {
		t.Errorf("second delete = %v, want ErrTestimonialNotFound", err)
	}
}
