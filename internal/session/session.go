// Package session keeps server-side admin sessions referenced by a signed cookie.
package session

import (
	"context" // Context for store operations
	"errors"  // Sentinel errors
	"fmt"     // Error wrapping
	"time"    // Session lifetime

	"catalog_shop/internal/utils" // Session token signing

	"github.com/google/uuid" // Session IDs
)

// ErrNotFound is returned for unknown or expired sessions
var ErrNotFound = errors.New("session not found")

// Session is the authenticated state of one client
type Session struct {
	ID        string    `json:"id"`         // Random session ID
	UserID    uint      `json:"user_id"`    // Authenticated user
	Username  string    `json:"username"`   // Display name of the user
	CreatedAt time.Time `json:"created_at"` // Login time
	ExpiresAt time.Time `json:"expires_at"` // Hard expiry
}

// Expired reports whether the session is past its expiry at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions until they expire
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager issues, resolves and destroys sessions
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
}

// NewManager creates a Manager signing cookies with secret
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: secret, ttl: ttl}
}

// TTL returns the session lifetime
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start creates a session for the user and returns the signed cookie value
func (m *Manager) Start(ctx context.Context, userID uint, username string) (string, *Session, error) {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}
	token, err := utils.GenerateSessionToken(s.ID, m.secret, m.ttl)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return token, s, nil
}

// Resolve returns the live session referenced by token
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := utils.ParseSessionToken(token, m.secret)
	if err != nil {
		return nil, ErrNotFound // Forged, malformed or expired cookie
	}
	s, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if s.Expired(time.Now()) {
		_ = m.store.Delete(ctx, s.ID)
		return nil, ErrNotFound
	}
	return s, nil
}

// Destroy deletes the session referenced by token, if any
func (m *Manager) Destroy(ctx context.Context, token string) error {
	claims, err := utils.ParseSessionToken(token, m.secret)
	if err != nil {
		return nil // Nothing to destroy
	}
	return m.store.Delete(ctx, claims.SessionID)
}
