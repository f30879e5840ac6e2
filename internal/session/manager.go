// Package session owns the authentication lifecycle: login validation,
// the single persisted session record, and logout.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dialpro/apiserver/internal/metrics"
	"github.com/dialpro/apiserver/types"
)

// ErrLoginInProgress is returned when a login attempt arrives while a
// previous one is still waiting on the simulated provider round trip.
// Pending attempts are rejected, not queued.
var ErrLoginInProgress = errors.New("session: login already in progress")

// Verifier validates credentials for a requested role.
type Verifier interface {
	Verify(email, password string, role types.Role) (types.User, error)
}

// Manager owns the single optional authenticated user. All consumers
// receive the Manager explicitly; there is no ambient session state.
type Manager struct {
	verifier Verifier
	store    Store
	delay    time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu      sync.Mutex
	current *types.User
	pending bool
}

// NewManager constructs a Manager. A nil logger falls back to the slog
// default; a nil now falls back to time.Now.
func NewManager(verifier Verifier, store Store, delay time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		verifier: verifier,
		store:    store,
		delay:    delay,
		now:      time.Now,
		logger:   logger,
	}
}

// Login validates the credentials for the requested role and, on
// success, establishes and persists the session. The artificial delay
// stands in for a future provider round trip and always elapses; it is
// not cancellable. A second Login while one is pending fails with
// ErrLoginInProgress.
func (m *Manager) Login(ctx context.Context, email, password string, role types.Role) (types.User, error) {
	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		metrics.LoginAttemptsTotal.WithLabelValues("in_progress").Inc()
		return types.User{}, ErrLoginInProgress
	}
	m.pending = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.pending = false
		m.mu.Unlock()
	}()

	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		<-timer.C
	}

	user, err := m.verifier.Verify(email, password, role)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		m.logger.InfoContext(ctx, "login rejected", "email", email, "role", role)
		return types.User{}, err
	}

	sess := types.Session{User: user, CreatedAt: m.now()}
	if err := m.store.Write(sess); err != nil {
		return types.User{}, err
	}

	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	m.logger.InfoContext(ctx, "login succeeded", "email", user.Email, "role", user.Role)
	return user, nil
}

// Restore attempts to re-establish the session from the persisted
// record. Absent or malformed records yield (zero, false); Restore never
// returns an error.
func (m *Manager) Restore() (types.User, bool) {
	sess, err := m.store.Read()
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			m.logger.Warn("discarding corrupt session record")
		}
		return types.User{}, false
	}

	m.mu.Lock()
	user := sess.User
	m.current = &user
	m.mu.Unlock()
	return sess.User, true
}

// Logout clears the in-memory user and deletes the persisted record.
// Calling it with no active session is a no-op.
func (m *Manager) Logout() {
	m.mu.Lock()
	hadSession := m.current != nil
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Delete(); err != nil {
		m.logger.Warn("failed to delete session record", "error", err)
	}
	if hadSession {
		m.logger.Info("logged out")
	}
}

// Current returns the active user, if any.
func (m *Manager) Current() (types.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return types.User{}, false
	}
	return *m.current, true
}
