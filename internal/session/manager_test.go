package session_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialpro/apiserver/config"
	"github.com/dialpro/apiserver/internal/auth"
	"github.com/dialpro/apiserver/internal/session"
	"github.com/dialpro/apiserver/types"
)

func newTestManager(t *testing.T, delay time.Duration) (*session.Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	verifier := auth.NewVerifier(config.AuthModeDemo)
	return session.NewManager(verifier, session.NewFileStore(path), delay, nil), path
}

func TestLoginSuccessEstablishesSession(t *testing.T) {
	manager, path := newTestManager(t, 0)

	user, err := manager.Login(context.Background(), "admin@company.com", "demo123", types.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, types.RoleAdmin, user.Role)
	assert.Equal(t, "Admin User", user.Name)

	current, ok := manager.Current()
	require.True(t, ok)
	assert.Equal(t, user, current)

	// The record is persisted for later restore.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoginInvalidCredentialsLeavesNoSession(t *testing.T) {
	manager, _ := newTestManager(t, 0)

	_, err := manager.Login(context.Background(), "not-an-email", "pw", types.RoleEmployee)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, ok := manager.Current()
	assert.False(t, ok)
}

func TestConcurrentLoginRejected(t *testing.T) {
	manager, _ := newTestManager(t, 100*time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := manager.Login(context.Background(), "admin@company.com", "demo123", types.RoleAdmin)
		assert.NoError(t, err)
	}()

	// Give the first attempt time to enter its delay window.
	time.Sleep(20 * time.Millisecond)
	_, err := manager.Login(context.Background(), "employee@company.com", "demo123", types.RoleEmployee)
	assert.ErrorIs(t, err, session.ErrLoginInProgress)

	wg.Wait()

	// The first attempt still won.
	current, ok := manager.Current()
	require.True(t, ok)
	assert.Equal(t, types.RoleAdmin, current.Role)
}

func TestRestoreRoundTrip(t *testing.T) {
	manager, path := newTestManager(t, 0)

	logged, err := manager.Login(context.Background(), "employee@company.com", "demo123", types.RoleEmployee)
	require.NoError(t, err)

	// A fresh manager over the same file picks the session back up.
	verifier := auth.NewVerifier(config.AuthModeDemo)
	fresh := session.NewManager(verifier, session.NewFileStore(path), 0, nil)

	restored, ok := fresh.Restore()
	require.True(t, ok)
	assert.Equal(t, logged, restored)
}

func TestRestoreNoRecord(t *testing.T) {
	manager, _ := newTestManager(t, 0)

	_, ok := manager.Restore()
	assert.False(t, ok)
}

func TestRestoreCorruptRecordMeansLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	verifier := auth.NewVerifier(config.AuthModeDemo)
	manager := session.NewManager(verifier, session.NewFileStore(path), 0, nil)

	_, ok := manager.Restore()
	assert.False(t, ok)
	_, ok = manager.Current()
	assert.False(t, ok)
}

func TestRestoreRejectsUnknownRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	record := `{"dialPro_user":{"user":{"email":"x@y.com","role":"superuser","name":"X"},"created_at":"2024-08-06T10:00:00Z"}}`
	require.NoError(t, os.WriteFile(path, []byte(record), 0o644))

	verifier := auth.NewVerifier(config.AuthModeDemo)
	manager := session.NewManager(verifier, session.NewFileStore(path), 0, nil)

	_, ok := manager.Restore()
	assert.False(t, ok)
}

func TestRecordPersistedUnderFixedKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path)

	err := store.Write(types.Session{
		User:      types.User{Email: "admin@company.com", Role: types.RoleAdmin, Name: "Admin User"},
		CreatedAt: time.Date(2024, time.August, 6, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Contains(t, entries, "dialPro_user")
}

func TestLogoutIsIdempotent(t *testing.T) {
	manager, path := newTestManager(t, 0)

	_, err := manager.Login(context.Background(), "admin@company.com", "demo123", types.RoleAdmin)
	require.NoError(t, err)

	manager.Logout()
	_, ok := manager.Current()
	assert.False(t, ok)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Logging out again with no session is a no-op.
	manager.Logout()
	_, ok = manager.Current()
	assert.False(t, ok)
}
