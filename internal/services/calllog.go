package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dialpro/apiserver/internal/query"
	"github.com/dialpro/apiserver/internal/records"
	"github.com/dialpro/apiserver/types"
)

// ErrNoRecording is returned for recording intents against a call that
// has no recording.
var ErrNoRecording = errors.New("call has no recording")

// RecordSource supplies the canonical call log, either from Postgres or
// from the demo dataset.
type RecordSource interface {
	CallLog(ctx context.Context) ([]types.CallLogEntry, error)
}

// NotePatcher propagates note amendments back to durable storage.
type NotePatcher interface {
	PatchNotes(ctx context.Context, id, notes string) error
}

// CallLogService encapsulates call log use-cases: loading the record
// store, role-scoped querying, note amendments, and recording intents.
type CallLogService struct {
	store   *records.Store
	source  RecordSource
	patcher NotePatcher // nil when the provider has no durable backing
	intents *IntentPublisher
	logger  *slog.Logger
}

func NewCallLogService(store *records.Store, source RecordSource, patcher NotePatcher, intents *IntentPublisher, logger *slog.Logger) *CallLogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CallLogService{
		store:   store,
		source:  source,
		patcher: patcher,
		intents: intents,
		logger:  logger,
	}
}

// Load pulls the call log from the source into the record store.
// Individual malformed entries are dropped by the store; only a failure
// to reach the source aborts the load.
func (s *CallLogService) Load(ctx context.Context) error {
	entries, err := s.source.CallLog(ctx)
	if err != nil {
		return fmt.Errorf("load call log: %w", err)
	}
	accepted, rejected := s.store.Load(entries)
	s.logger.InfoContext(ctx, "call log loaded", "accepted", accepted, "rejected", rejected)
	return nil
}

// Query filters the call log for the requesting user. Employees are
// always scoped to their own records.
func (s *CallLogService) Query(user types.User, searchText, typeFilter, employeeFilter string) []types.CallLogEntry {
	return query.Filter(s.store.Snapshot(), query.Params{
		SearchText:     searchText,
		TypeFilter:     typeFilter,
		EmployeeFilter: employeeFilter,
		Role:           user.Role,
		Viewer:         user.Name,
	})
}

// Snapshot exposes the unfiltered record collection, for aggregation.
func (s *CallLogService) Snapshot() []types.CallLogEntry {
	return s.store.Snapshot()
}

// PlayRecording validates the call and emits a playback intent.
func (s *CallLogService) PlayRecording(ctx context.Context, user types.User, callID string) (string, error) {
	return s.recordingIntent(ctx, user, callID, IntentPlayRecording)
}

// DownloadRecording validates the call and emits a download intent.
func (s *CallLogService) DownloadRecording(ctx context.Context, user types.User, callID string) (string, error) {
	return s.recordingIntent(ctx, user, callID, IntentDownloadRecording)
}

func (s *CallLogService) recordingIntent(ctx context.Context, user types.User, callID string, kind IntentKind) (string, error) {
	entry, err := s.store.Get(callID)
	if err != nil {
		return "", err
	}
	if !entry.HasRecording {
		return "", ErrNoRecording
	}
	return s.intents.Publish(ctx, kind, callID, "", user.Email)
}

// AddNote amends the notes of an existing call. The store produces a
// new immutable entry value under the same ID; when a durable backing
// exists the amendment is patched through, and an intent event is
// emitted either way.
func (s *CallLogService) AddNote(ctx context.Context, user types.User, callID, note string) (types.CallLogEntry, error) {
	amended, err := s.store.AmendNote(callID, note)
	if err != nil {
		return types.CallLogEntry{}, err
	}

	if s.patcher != nil {
		if err := s.patcher.PatchNotes(ctx, callID, note); err != nil {
			return types.CallLogEntry{}, fmt.Errorf("persist note: %w", err)
		}
	}

	if _, err := s.intents.Publish(ctx, IntentAddNote, callID, note, user.Email); err != nil {
		return types.CallLogEntry{}, err
	}
	return amended, nil
}
