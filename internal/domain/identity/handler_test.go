package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mediscan/mediscan/internal/platform/auth"
)

func newHandlerFixture() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	return NewHandler(svc), echo.New()
}

func TestHandler_Register(t *testing.T) {
	h, e := newHandlerFixture()

	body := `{"name":"Alice","email":"alice@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Message string `json:"message"`
		User    User   `json:"user"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.User.Email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %s", resp.User.Email)
	}
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Error("response must not expose the password hash")
	}
}

func TestHandler_Register_DuplicateEmail(t *testing.T) {
	h, e := newHandlerFixture()

	if _, err := h.svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("seed Register failed: %v", err)
	}

	body := `{"name":"Alice","email":"alice@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestHandler_Login(t *testing.T) {
	h, e := newHandlerFixture()

	if _, err := h.svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("seed Register failed: %v", err)
	}

	body := `{"email":"alice@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Token    string        `json:"token"`
		Identity auth.Identity `json:"identity"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
	if resp.Identity.Role != auth.RolePatient {
		t.Errorf("expected patient identity, got %q", resp.Identity.Role)
	}
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	h, e := newHandlerFixture()

	body := `{"email":"nobody@example.com","password":"whatever"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestHandler_ListDoctors_EmptyIsArray(t *testing.T) {
	h, e := newHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListDoctors(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected empty JSON array, got %s", got)
	}
}

func TestHandler_ListDoctors(t *testing.T) {
	h, e := newHandlerFixture()

	if _, err := h.svc.Register(context.Background(), RegisterInput{
		Name: "Dr. Bob", Email: "bob@example.com", Password: "p", Role: auth.RoleDoctor,
		Specialty: "Dermatology",
	}); err != nil {
		t.Fatalf("seed Register failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListDoctors(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doctors []*User
	json.Unmarshal(rec.Body.Bytes(), &doctors)
	if len(doctors) != 1 || doctors[0].Name != "Dr. Bob" {
		t.Fatalf("doctors = %+v, want only Dr. Bob", doctors)
	}
}
