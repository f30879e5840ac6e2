package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dialpro/apiserver/internal/export"
	"github.com/dialpro/apiserver/internal/records"
	"github.com/dialpro/apiserver/internal/services"
	"github.com/dialpro/apiserver/types"
)

// CallsHandler provides HTTP handlers for the call log.
type CallsHandler struct {
	calls    *services.CallLogService
	exporter *export.Exporter
}

// NewCallsHandler constructs a handler with the provided dependencies.
func NewCallsHandler(calls *services.CallLogService, exporter *export.Exporter) *CallsHandler {
	return &CallsHandler{calls: calls, exporter: exporter}
}

// CallsRouter registers call log routes on the given router. All routes
// require authentication.
func CallsRouter(r chi.Router, calls *services.CallLogService, exporter *export.Exporter, authMiddleware func(http.Handler) http.Handler) {
	handler := NewCallsHandler(calls, exporter)

	r.Use(authMiddleware)
	r.Get("/", handler.ListCalls)
	r.With(RequireAdmin).Post("/export", handler.ExportCalls)
	r.Route("/{callID}", func(r chi.Router) {
		r.Post("/recording/play", handler.PlayRecording)
		r.Post("/recording/download", handler.DownloadRecording)
		r.Post("/notes", handler.AddNote)
	})
}

// ListCalls returns the role-scoped, filtered call log. Employees only
// ever see their own records regardless of the employee filter.
func (h *CallsHandler) ListCalls(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	items := h.calls.Query(user, q.Get("search"), q.Get("type"), q.Get("employee"))

	writeJSON(w, http.StatusOK, CallListResponse{Items: items, Total: len(items)})
}

// PlayRecording emits a playback intent for the call's recording.
func (h *CallsHandler) PlayRecording(w http.ResponseWriter, r *http.Request) {
	h.recordingIntent(w, r, h.calls.PlayRecording)
}

// DownloadRecording emits a download intent for the call's recording.
func (h *CallsHandler) DownloadRecording(w http.ResponseWriter, r *http.Request) {
	h.recordingIntent(w, r, h.calls.DownloadRecording)
}

func (h *CallsHandler) recordingIntent(
	w http.ResponseWriter,
	r *http.Request,
	emit func(ctx context.Context, user types.User, callID string) (string, error),
) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	callID := chi.URLParam(r, "callID")
	eventID, err := emit(r.Context(), user, callID)
	if err != nil {
		switch {
		case errors.Is(err, records.ErrNotFound):
			writeError(w, http.StatusNotFound, "call not found")
		case errors.Is(err, services.ErrNoRecording):
			writeError(w, http.StatusConflict, "call has no recording")
		default:
			writeError(w, http.StatusInternalServerError, "failed to emit intent")
		}
		return
	}

	writeJSON(w, http.StatusAccepted, IntentResponse{EventID: eventID})
}

// AddNote amends the notes of an existing call and emits the matching
// intent event.
func (h *CallsHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	callID := chi.URLParam(r, "callID")
	var req AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	req.Note = strings.TrimSpace(req.Note)
	if req.Note == "" {
		writeError(w, http.StatusBadRequest, "note is required")
		return
	}

	amended, err := h.calls.AddNote(r.Context(), user, callID, req.Note)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			writeError(w, http.StatusNotFound, "call not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add note")
		return
	}

	writeJSON(w, http.StatusOK, amended)
}

// ExportCalls renders the admin's current filtered view to CSV and
// uploads it to object storage.
func (h *CallsHandler) ExportCalls(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	items := h.calls.Query(user, q.Get("search"), q.Get("type"), q.Get("employee"))

	key, err := h.exporter.Upload(r.Context(), items)
	if err != nil {
		if errors.Is(err, export.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "export storage not configured")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to export calls")
		return
	}

	writeJSON(w, http.StatusCreated, ExportResponse{ObjectKey: key})
}

type CallListResponse struct {
	Items []types.CallLogEntry `json:"items"`
	Total int                  `json:"total"`
}

type AddNoteRequest struct {
	Note string `json:"note"`
}

type IntentResponse struct {
	EventID string `json:"event_id"`
}

type ExportResponse struct {
	ObjectKey string `json:"object_key"`
}
