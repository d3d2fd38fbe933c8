package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/httptim/clientportal/internal/core/domain"
)

const testSecret = "test-secret"

func seedAuthUsers(t *testing.T) *stubUserRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return newStubUserRepo(
		&domain.User{ID: "cust_1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleCustomer, PasswordHash: string(hash)},
	)
}

func TestAuthService_Login_IssuesSessionAndToken(t *testing.T) {
	sessions := newStubSessionStore()
	svc := NewAuthService(seedAuthUsers(t), sessions, testSecret, time.Hour, discardLogger)

	result, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("empty token")
	}
	if result.User == nil || result.User.ID != "cust_1" {
		t.Fatalf("user = %+v", result.User)
	}
	if len(sessions.live) != 1 {
		t.Errorf("live sessions = %d, want 1", len(sessions.live))
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims["sub"] != "cust_1" {
		t.Errorf("sub = %v", claims["sub"])
	}
	if claims["role"] != "CUSTOMER" {
		t.Errorf("role = %v", claims["role"])
	}
	sid, _ := claims["sid"].(string)
	if !sessions.live[sid] {
		t.Errorf("token sid %q is not registered in the store", sid)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService(seedAuthUsers(t), newStubSessionStore(), testSecret, time.Hour, discardLogger)
	_, err := svc.Login(context.Background(), "alice@example.com", "nope")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	// An unknown account and a bad password are indistinguishable to callers.
	svc := NewAuthService(seedAuthUsers(t), newStubSessionStore(), testSecret, time.Hour, discardLogger)
	_, err := svc.Login(context.Background(), "ghost@example.com", "secret123")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc := NewAuthService(seedAuthUsers(t), newStubSessionStore(), testSecret, time.Hour, discardLogger)
	if _, err := svc.Login(context.Background(), "", "secret123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty email = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "alice@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	sessions := newStubSessionStore()
	svc := NewAuthService(seedAuthUsers(t), sessions, testSecret, time.Hour, discardLogger)

	result, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	sid, _ := claims["sid"].(string)

	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.live[sid] {
		t.Error("session still live after logout")
	}
}

func TestAuthService_Logout_EmptySessionID(t *testing.T) {
	svc := NewAuthService(seedAuthUsers(t), newStubSessionStore(), testSecret, time.Hour, discardLogger)
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}
