package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-secret")

func testIdentity() Identity {
	return Identity{
		ID:    uuid.New(),
		Role:  RolePatient,
		Email: "jane@example.com",
		Name:  "Jane Doe",
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	id := testIdentity()
	token, err := IssueToken(id, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := VerifyToken(token, testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Errorf("identity round trip mismatch: got %+v, want %+v", got, id)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, _ := IssueToken(testIdentity(), testSecret, time.Hour)
	if _, err := VerifyToken(token, []byte("other-secret")); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	token, _ := IssueToken(testIdentity(), testSecret, -time.Minute)
	if _, err := VerifyToken(token, testSecret); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	id := testIdentity()
	token, _ := IssueToken(id, testSecret, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		got := IdentityFromContext(c.Request().Context())
		if got == nil {
			t.Fatal("expected identity on context")
		}
		if got.ID != id.ID || got.Role != id.Role {
			t.Errorf("unexpected identity: %+v", got)
		}
		return c.NoContent(http.StatusOK)
	}

	if err := Middleware(testSecret)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := Middleware(testSecret)(func(c echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddleware_GarbageToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	c := e.NewContext(req, httptest.NewRecorder())

	err := Middleware(testSecret)(func(c echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	doctor := Identity{ID: uuid.New(), Role: RoleDoctor}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), doctor))
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	handler := func(c echo.Context) error { called = true; return nil }
	if err := RequireRole(RoleDoctor)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected handler to run for doctor role")
	}
}

func TestRequireRole_WrongRole(t *testing.T) {
	e := echo.New()
	patient := Identity{ID: uuid.New(), Role: RolePatient}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), patient))
	c := e.NewContext(req, httptest.NewRecorder())

	err := RequireRole(RoleDoctor)(func(c echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestRequireRole_NoIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := RequireRole(RoleDoctor)(func(c echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret-password" {
		t.Error("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "s3cret-password") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected wrong password to fail")
	}
}
