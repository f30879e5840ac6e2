// Package export renders call log entries to CSV and uploads the
// artifact to object storage.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dialpro/apiserver/internal/metrics"
	"github.com/dialpro/apiserver/internal/storage"
	"github.com/dialpro/apiserver/types"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned when no export storage backend is set.
var ErrNotConfigured = errors.New("export: storage not configured")

var csvHeader = []string{
	"id",
	"employee_name",
	"customer_number",
	"customer_name",
	"type",
	"duration_seconds",
	"occurred_at",
	"tags",
	"has_recording",
	"notes",
	"status",
}

// Exporter writes CSV exports of the call log to object storage.
type Exporter struct {
	storage *storage.Storage
	now     func() time.Time
}

// NewExporter constructs an Exporter. storage may be nil, in which case
// every upload fails with ErrNotConfigured.
func NewExporter(st *storage.Storage) *Exporter {
	return &Exporter{storage: st, now: time.Now}
}

// Render produces the CSV representation of the entries, in order.
func Render(entries []types.CallLogEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		record := []string{
			entry.ID,
			entry.EmployeeName,
			entry.CustomerNumber,
			entry.CustomerName,
			string(entry.Type),
			strconv.Itoa(entry.DurationSeconds),
			entry.OccurredAt.UTC().Format(time.RFC3339),
			strings.Join(entry.Tags, ";"),
			strconv.FormatBool(entry.HasRecording),
			entry.Notes,
			string(entry.Status),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Upload renders the entries and stores the artifact, returning its
// object key.
func (e *Exporter) Upload(ctx context.Context, entries []types.CallLogEntry) (string, error) {
	if e.storage == nil {
		metrics.ExportsTotal.WithLabelValues("not_configured").Inc()
		return "", ErrNotConfigured
	}

	data, err := Render(entries)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("failure").Inc()
		return "", err
	}

	key := fmt.Sprintf("exports/call-logs-%s-%s.csv", e.now().UTC().Format("20060102"), uuid.NewString())
	if err := e.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "text/csv"); err != nil {
		metrics.ExportsTotal.WithLabelValues("failure").Inc()
		return "", err
	}

	metrics.ExportsTotal.WithLabelValues("success").Inc()
	return key, nil
}
