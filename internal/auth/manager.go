// Package auth holds the client's session auth state: the current bearer
// token and the identity behind it. It is the single writer of that
// state; everything else reads it through the Manager.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hiten-shah0106/flashify/internal/domain"
)

// Status is the explicit three-state answer to "is the caller
// authenticated". Unknown is distinct from unauthenticated: it covers
// the startup window before the persisted credential has been examined,
// so callers can avoid a premature redirect to login.
type Status int

const (
	StatusUnknown Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Authenticator is the external auth collaborator. *api.Client satisfies
// it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Signup(ctx context.Context, email, password string) (*domain.AuthResult, error)
	GetUser(ctx context.Context, token string) (*domain.User, error)
}

// TokenStore is the persisted credential slot. *storage.Store satisfies
// it.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

// Manager owns the (token, identity) pair for the lifetime of the
// process. Mutations always replace or clear the pair as one unit under
// the lock; readers never observe a half-updated credential.
type Manager struct {
	api   Authenticator
	store TokenStore

	mu     sync.RWMutex
	status Status
	token  string
	user   *domain.User
}

// NewManager creates a manager in StatusUnknown. Call Initialize before
// trusting Status.
func NewManager(api Authenticator, store TokenStore) *Manager {
	return &Manager{api: api, store: store, status: StatusUnknown}
}

// Initialize rehydrates the credential from the persisted slot. With no
// stored token the manager becomes known-unauthenticated immediately.
// With a token it becomes authenticated and resolves the identity via
// the API; if that resolution fails the token is kept and the identity
// stays nil, which readers must tolerate.
func (m *Manager) Initialize(ctx context.Context) error {
	token, err := m.store.Token()
	if err != nil {
		m.set(StatusUnauthenticated, "", nil)
		return fmt.Errorf("failed to read persisted credential: %w", err)
	}
	if token == "" {
		m.set(StatusUnauthenticated, "", nil)
		return nil
	}

	user, err := m.api.GetUser(ctx, token)
	if err != nil {
		slog.Warn("could not resolve identity for stored token", "error", err)
		m.set(StatusAuthenticated, token, nil)
		return nil
	}
	m.set(StatusAuthenticated, token, user)
	return nil
}

// Login delegates the credential exchange to the API. State is mutated
// only when the reply carries a session token; the raw result is
// returned either way so the caller can render success or failure.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if token := res.Token(); token != "" {
		if err := m.store.SetToken(token); err != nil {
			return nil, fmt.Errorf("failed to persist credential: %w", err)
		}
		m.set(StatusAuthenticated, token, res.User)
	}
	return res, nil
}

// Signup delegates registration to the API and never touches local
// state: registration does not imply an authenticated session, since
// confirmation is an out-of-band step.
func (m *Manager) Signup(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	return m.api.Signup(ctx, email, password)
}

// Logout clears the persisted slot and the in-memory pair. It succeeds
// locally without any network call.
func (m *Manager) Logout() error {
	err := m.store.Clear()
	m.set(StatusUnauthenticated, "", nil)
	if err != nil {
		return fmt.Errorf("failed to clear persisted credential: %w", err)
	}
	return nil
}

// Status reports the current auth status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Token returns the current bearer token, or "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns the resolved identity. It may be nil even while a token
// is set, until resolution completes.
func (m *Manager) User() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Authenticated reports whether a bearer token is currently held.
func (m *Manager) Authenticated() bool {
	return m.Status() == StatusAuthenticated
}

func (m *Manager) set(status Status, token string, user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.token = token
	m.user = user
}
