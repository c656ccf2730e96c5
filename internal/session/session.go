// Package session holds the authenticated user/token pair, persisted to a
// key-value store so a restart restores the signed-in session. It is
// deliberately independent of the application state store.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

// Persisted key layout. The theme preference lives alongside the session
// because it shares the same storage lifetime, not because it is part of
// authentication.
const (
	keyUser  = "user"  // JSON-serialized domain.User
	keyToken = "token" // opaque signed token
	keyTheme = "theme" // "light" or "dark"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// KV is the minimal key-value persistence the session needs. Get returns
// "" with a nil error for missing keys.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Store holds the current session and keeps it in sync with the KV.
type Store struct {
	mu    sync.RWMutex
	user  *domain.User
	token string

	auth   ports.AuthService
	kv     KV
	logger zerolog.Logger
}

func NewStore(auth ports.AuthService, kv KV, logger zerolog.Logger) *Store {
	return &Store{auth: auth, kv: kv, logger: logger}
}

// Restore loads a previously persisted session. Malformed persisted data is
// logged and treated as "no session" — never fatal.
func (s *Store) Restore(ctx context.Context) {
	token, err := s.kv.Get(ctx, keyToken)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session restore: token read failed")
		return
	}
	raw, err := s.kv.Get(ctx, keyUser)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session restore: user read failed")
		return
	}
	if token == "" || raw == "" {
		return
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn().Err(err).Msg("session restore: malformed persisted user, discarding session")
		_ = s.kv.Delete(ctx, keyUser, keyToken)
		return
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()
}

// Login authenticates the email and persists the resulting session.
func (s *Store) Login(ctx context.Context, email string) error {
	token, user, err := s.auth.Login(ctx, email)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, keyUser, string(raw)); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, keyToken, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
	return nil
}

// Register creates an account. It does not log the new account in.
func (s *Store) Register(ctx context.Context, name, email string) (*domain.User, error) {
	return s.auth.Register(ctx, name, email)
}

// Logout clears the in-memory session and the persisted copy.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	return s.kv.Delete(ctx, keyUser, keyToken)
}

// IsAuthenticated reports whether both a token and a user are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	clone := *s.user
	return &clone
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Theme returns the persisted theme preference, defaulting to light.
func (s *Store) Theme(ctx context.Context) string {
	theme, err := s.kv.Get(ctx, keyTheme)
	if err != nil || (theme != ThemeLight && theme != ThemeDark) {
		return ThemeLight
	}
	return theme
}

// SetTheme persists the theme preference. Unknown values are ignored.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return nil
	}
	return s.kv.Set(ctx, keyTheme, theme)
}
