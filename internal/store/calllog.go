package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dialpro/apiserver/types"
)

// CallLogRepository handles persistence for call log entries. It backs
// the in-memory record store when Postgres is the configured provider.
type CallLogRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewCallLogRepository(db *sql.DB, logger *slog.Logger) *CallLogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CallLogRepository{db: db, logger: logger}
}

// CallLog returns all entries in insertion order. This feeds the record
// store at startup; filtering happens in memory.
func (r *CallLogRepository) CallLog(ctx context.Context) ([]types.CallLogEntry, error) {
	const query = `
		SELECT id, employee_name, customer_number, customer_name, type, duration_seconds, occurred_at, tags, has_recording, notes, status
		FROM call_logs
		ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []types.CallLogEntry
	for rows.Next() {
		var entry types.CallLogEntry
		var tagsJSON []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.EmployeeName,
			&entry.CustomerNumber,
			&entry.CustomerName,
			&entry.Type,
			&entry.DurationSeconds,
			&entry.OccurredAt,
			&tagsJSON,
			&entry.HasRecording,
			&entry.Notes,
			&entry.Status,
		); err != nil {
			return nil, err
		}
		entry.Tags = r.decodeTags(entry.ID, tagsJSON)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Insert stores an entry at the next position. Used by the seed command.
func (r *CallLogRepository) Insert(ctx context.Context, entry types.CallLogEntry) error {
	tagsJSON, err := json.Marshal(entry.Tags)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO call_logs (id, employee_name, customer_number, customer_name, type, duration_seconds, occurred_at, tags, has_recording, notes, status, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			COALESCE((SELECT MAX(position) + 1 FROM call_logs), 0), $12)`
	_, err = r.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.EmployeeName,
		entry.CustomerNumber,
		entry.CustomerName,
		entry.Type,
		entry.DurationSeconds,
		entry.OccurredAt,
		tagsJSON,
		entry.HasRecording,
		entry.Notes,
		entry.Status,
		time.Now(),
	)
	return err
}

// PatchNotes records a note amendment for an existing entry. Only the
// notes field is touched; identity and type fields stay as created.
func (r *CallLogRepository) PatchNotes(ctx context.Context, id, notes string) error {
	const query = `UPDATE call_logs SET notes = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, notes, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns a single entry by ID.
func (r *CallLogRepository) Get(ctx context.Context, id string) (types.CallLogEntry, error) {
	const query = `
		SELECT id, employee_name, customer_number, customer_name, type, duration_seconds, occurred_at, tags, has_recording, notes, status
		FROM call_logs
		WHERE id = $1`
	var entry types.CallLogEntry
	var tagsJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&entry.EmployeeName,
		&entry.CustomerNumber,
		&entry.CustomerName,
		&entry.Type,
		&entry.DurationSeconds,
		&entry.OccurredAt,
		&tagsJSON,
		&entry.HasRecording,
		&entry.Notes,
		&entry.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.CallLogEntry{}, ErrNotFound
		}
		return types.CallLogEntry{}, err
	}
	entry.Tags = r.decodeTags(entry.ID, tagsJSON)
	return entry, nil
}

// decodeTags parses the tags column. A corrupt value is logged and the
// row kept with no tags rather than dropped.
func (r *CallLogRepository) decodeTags(id string, raw []byte) []string {
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		r.logger.Warn("discarding corrupt tags column", "id", id, "error", err)
		return nil
	}
	return tags
}
