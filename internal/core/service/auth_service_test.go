package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leadline/crm-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	key := strings.ToLower(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return nil, domain.ErrUserExists
	}
	u.ID = strconv.Itoa(r.nextID)
	r.nextID++
	clone := u
	r.byEmail[key] = &clone
	return &u, nil
}

func seedUser(r *stubAuthRepo, name, email, role string) {
	r.byEmail[strings.ToLower(email)] = &domain.User{
		ID: strconv.Itoa(r.nextID), Name: name, Email: email, Role: role,
	}
	r.nextID++
}

const testSecret = "test-secret"

// ---------------------------------------------------------------------------
// Login tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	seedUser(repo, "Admin", "admin@test.com", domain.RoleAdmin)
	svc := NewAuthService(repo, testSecret, time.Hour)

	token, user, err := svc.Login(context.Background(), "admin@test.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
	if user.Role != domain.RoleAdmin {
		t.Errorf("role: expected Admin, got %q", user.Role)
	}
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	repo := newStubAuthRepo()
	seedUser(repo, "Regular", "user@test.com", domain.RoleUser)
	svc := NewAuthService(repo, testSecret, time.Hour)

	token, user, err := svc.Login(context.Background(), "user@test.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must verify with the signing secret: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["user_id"] != user.ID {
		t.Errorf("user_id claim: expected %q, got %v", user.ID, claims["user_id"])
	}
	if claims["email"] != "user@test.com" {
		t.Errorf("email claim: expected user@test.com, got %v", claims["email"])
	}
	if claims["role"] != domain.RoleUser {
		t.Errorf("role claim: expected User, got %v", claims["role"])
	}
	exp, ok := claims["exp"].(float64)
	if !ok || int64(exp) <= time.Now().Unix() {
		t.Errorf("exp claim must be in the future, got %v", claims["exp"])
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@test.com")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyEmail(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Register tests
// ---------------------------------------------------------------------------

func TestAuthService_Register_AssignsUserRole(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	created, err := svc.Register(context.Background(), "New Person", "new@test.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Role != domain.RoleUser {
		t.Errorf("new accounts must get the User role, got %q", created.Role)
	}
	if created.ID == "" {
		t.Error("expected assigned id")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubAuthRepo()
	seedUser(repo, "Existing", "taken@test.com", domain.RoleUser)
	svc := NewAuthService(repo, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Someone Else", "taken@test.com")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_ThenLogin(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "New Person", "new@test.com"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, _, err := svc.Login(context.Background(), "new@test.com")
	if err != nil {
		t.Fatalf("login after register must succeed: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
}
