package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/leadline/crm-system/internal/core/domain"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, email string) (string, *domain.User, error)
	registerFn func(ctx context.Context, name, email string) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email string) (string, *domain.User, error) {
	return s.loginFn(ctx, email)
}

func (s *stubAuthService) Register(ctx context.Context, name, email string) (*domain.User, error) {
	return s.registerFn(ctx, name, email)
}

// newJSONContext builds an Echo context with the validator installed and a
// JSON body, mirroring what the router configures globally.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asAuthenticated injects the claims the Auth middleware would set.
func asAuthenticated(c echo.Context, email, role string) {
	c.Set("user_id", "1")
	c.Set("email", email)
	c.Set("name", "Test Person")
	c.Set("role", role)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email string) (string, *domain.User, error) {
			if email != "admin@test.com" {
				t.Fatalf("unexpected email: %s", email)
			}
			return "signed-token", &domain.User{ID: "1", Name: "Admin User", Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/auth/login", `{"email":"admin@test.com"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "admin@test.com" || user["role"] != "Admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidEmailFormat(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodPost, "/auth/login", `{"email":"not-an-email"}`)
	err := handler.Login(c)
	if err == nil {
		t.Fatal("expected validation error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_Login_UnknownEmailPassesDomainError(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/auth/login", `{"email":"nobody@test.com"}`)
	err := handler.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("domain errors must reach the central handler untouched, got %v", err)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, name, email string) (*domain.User, error) {
			return &domain.User{ID: "3", Name: name, Email: email, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/auth/register", `{"name":"New Person","email":"new@test.com"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, hasToken := resp["token"]; hasToken {
		t.Fatal("register must not issue a token")
	}
	user := resp["user"].(map[string]any)
	if user["role"] != "User" {
		t.Fatalf("expected User role, got %v", user["role"])
	}
}

func TestAuthHandler_Register_MissingName(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodPost, "/auth/register", `{"email":"new@test.com"}`)
	err := handler.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}
