package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
)

const testSecret = "test-secret"

type stubSessionStore struct {
	live map[string]bool
}

func newStubSessionStore(sids ...string) *stubSessionStore {
	s := &stubSessionStore{live: make(map[string]bool)}
	for _, sid := range sids {
		s.live[sid] = true
	}
	return s
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

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sid":   "sid_1",
		"sub":   "cust_1",
		"role":  "CUSTOMER",
		"name":  "Alice",
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

// resolve runs the session middleware over a request and returns whatever
// identity it attached.
func resolve(t *testing.T, sessions *stubSessionStore, decorate func(*http.Request)) *authz.Identity {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if decorate != nil {
		decorate(req)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var got *authz.Identity
	h := Session(testSecret, sessions)(func(c echo.Context) error {
		got, _ = c.Get(IdentityKey).(*authz.Identity)
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return got
}

func TestSession_BearerToken(t *testing.T) {
	sessions := newStubSessionStore("sid_1")
	token := signToken(t, testSecret, validClaims())

	id := resolve(t, sessions, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	if id == nil {
		t.Fatal("identity not resolved")
	}
	if id.ID != "cust_1" || id.Role != domain.RoleCustomer {
		t.Errorf("identity = %+v", id)
	}
}

func TestSession_CookieToken(t *testing.T) {
	sessions := newStubSessionStore("sid_1")
	token := signToken(t, testSecret, validClaims())

	id := resolve(t, sessions, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	})
	if id == nil {
		t.Fatal("identity not resolved from cookie")
	}
}

func TestSession_HeaderWinsOverCookie(t *testing.T) {
	sessions := newStubSessionStore("sid_1")
	good := signToken(t, testSecret, validClaims())

	// A malformed Authorization header does not fall back to the cookie.
	id := resolve(t, sessions, func(r *http.Request) {
		r.Header.Set("Authorization", "Basic abc")
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: good})
	})
	if id != nil {
		t.Errorf("identity = %+v, want anonymous", id)
	}
}

func TestSession_BadSignature(t *testing.T) {
	sessions := newStubSessionStore("sid_1")
	token := signToken(t, "other-secret", validClaims())

	id := resolve(t, sessions, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	if id != nil {
		t.Errorf("identity = %+v, want anonymous", id)
	}
}

func TestSession_RevokedSession(t *testing.T) {
	// Store has no live sid, so the otherwise valid token is ignored.
	sessions := newStubSessionStore()
	token := signToken(t, testSecret, validClaims())

	id := resolve(t, sessions, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	if id != nil {
		t.Errorf("identity = %+v, want anonymous", id)
	}
}

func TestSession_MissingClaims(t *testing.T) {
	sessions := newStubSessionStore("sid_1")
	claims := validClaims()
	delete(claims, "sub")
	token := signToken(t, testSecret, claims)

	id := resolve(t, sessions, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	if id != nil {
		t.Errorf("identity = %+v, want anonymous", id)
	}
}

func TestSession_NoCredential(t *testing.T) {
	if id := resolve(t, newStubSessionStore(), nil); id != nil {
		t.Errorf("identity = %+v, want anonymous", id)
	}
}

func TestRequireSession(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return nil }

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if err := RequireSession()(next)(c); err != domain.ErrNotAuthenticated {
		t.Errorf("anonymous = %v, want ErrNotAuthenticated", err)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(IdentityKey, &authz.Identity{ID: "cust_1", Role: domain.RoleCustomer})
	if err := RequireSession()(next)(c); err != nil {
		t.Errorf("authenticated = %v, want nil", err)
	}
}
