package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dialpro/apiserver/internal/services"
	"github.com/dialpro/apiserver/types"
)

// StatsHandler provides HTTP handlers for dashboard metrics.
type StatsHandler struct {
	stats *services.StatsService
}

// StatsRouter registers stats routes on the given router. All routes
// require authentication.
func StatsRouter(r chi.Router, stats *services.StatsService, authMiddleware func(http.Handler) http.Handler) {
	handler := &StatsHandler{stats: stats}

	r.Use(authMiddleware)
	r.Get("/", handler.Summarize)
	r.Post("/baseline", handler.CaptureBaseline)
}

// Summarize returns the role-scoped metric list. Missing baselines are
// not an error: every trend simply reports neutral.
func (h *StatsHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{Items: h.stats.Summarize(user)})
}

// CaptureBaseline snapshots the current aggregates as the baseline for
// the requester's scope.
func (h *StatsHandler) CaptureBaseline(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.stats.CaptureBaseline(user)
	w.WriteHeader(http.StatusNoContent)
}

type StatsResponse struct {
	Items []types.StatMetric `json:"items"`
}
