// Package records holds the canonical in-memory collection of call log
// entries. The store is the single source of truth for filtering and
// aggregation; entries are treated as immutable values.
package records

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dialpro/apiserver/internal/metrics"
	"github.com/dialpro/apiserver/types"
)

// ErrNotFound is returned when a call record does not exist in the
// store.
var ErrNotFound = errors.New("records: not found")

// Store holds call log entries in load order. Identity and type fields
// are never mutated after load; only the notes of an entry may be
// amended, and that produces a new value under the same ID.
type Store struct {
	mu      sync.RWMutex
	entries []types.CallLogEntry
	index   map[string]int
	logger  *slog.Logger
}

// New constructs an empty Store.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{index: make(map[string]int), logger: logger}
}

// Load replaces the store contents with the supplied entries, keeping
// their order. Malformed entries are rejected individually and counted;
// the load itself never fails.
func (s *Store) Load(entries []types.CallLogEntry) (accepted, rejected int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]types.CallLogEntry, 0, len(entries))
	s.index = make(map[string]int, len(entries))

	for _, entry := range entries {
		if reason := validate(entry); reason != "" {
			rejected++
			metrics.RecordsRejectedTotal.WithLabelValues(reason).Inc()
			s.logger.Warn("rejecting call record", "id", entry.ID, "reason", reason)
			continue
		}
		if _, exists := s.index[entry.ID]; exists {
			rejected++
			metrics.RecordsRejectedTotal.WithLabelValues("duplicate_id").Inc()
			s.logger.Warn("rejecting call record", "id", entry.ID, "reason", "duplicate_id")
			continue
		}
		s.index[entry.ID] = len(s.entries)
		s.entries = append(s.entries, entry)
		accepted++
	}

	metrics.RecordsLoaded.Set(float64(len(s.entries)))
	return accepted, rejected
}

// Snapshot returns the entries in load order. The returned slice is a
// copy; callers may not reach back into the store through it.
func (s *Store) Snapshot() []types.CallLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.CallLogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with the given ID.
func (s *Store) Get(id string) (types.CallLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.index[id]
	if !ok {
		return types.CallLogEntry{}, ErrNotFound
	}
	return s.entries[pos], nil
}

// Len reports the number of entries held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// AmendNote produces a new entry value with the given notes under the
// same ID and installs it in place of the old value. The previous value
// is untouched; holders of earlier snapshots keep seeing it.
func (s *Store) AmendNote(id, note string) (types.CallLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[id]
	if !ok {
		return types.CallLogEntry{}, fmt.Errorf("amend note for %q: %w", id, ErrNotFound)
	}
	amended := s.entries[pos]
	amended.Notes = note
	s.entries[pos] = amended
	return amended, nil
}

func validate(entry types.CallLogEntry) string {
	switch {
	case entry.ID == "":
		return "missing_id"
	case entry.EmployeeName == "":
		return "missing_employee"
	case entry.CustomerNumber == "":
		return "missing_number"
	case !entry.Type.Valid():
		return "invalid_type"
	case entry.OccurredAt.IsZero():
		return "missing_timestamp"
	}
	return ""
}
