package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

// AuthService implements registration and passwordless login.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login resolves the email to a registered user and issues a signed token.
// An unknown email is reported as domain.ErrInvalidCredentials so the
// response does not reveal whether the account exists.
func (s *AuthService) Login(ctx context.Context, email string) (string, *domain.User, error) {
	if email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Register creates an account with the User role. It does not auto-login.
func (s *AuthService) Register(ctx context.Context, name, email string) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	created, err := s.repo.Create(ctx, domain.User{
		Name:  name,
		Email: email,
		Role:  domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
