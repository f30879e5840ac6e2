package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dialpro/apiserver/internal/services"
	"github.com/dialpro/apiserver/types"
)

// FollowUpsHandler serves the read-only follow-up schedule for the
// employee views.
type FollowUpsHandler struct {
	followUps *services.FollowUpService
}

// FollowUpsRouter registers follow-up routes on the given router.
func FollowUpsRouter(r chi.Router, followUps *services.FollowUpService, authMiddleware func(http.Handler) http.Handler) {
	handler := &FollowUpsHandler{followUps: followUps}

	r.Use(authMiddleware)
	r.With(RequireEmployee).Get("/", handler.List)
}

// List returns the follow-up schedule in due-time order.
func (h *FollowUpsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.followUps.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list follow-ups")
		return
	}
	writeJSON(w, http.StatusOK, FollowUpListResponse{Items: items})
}

type FollowUpListResponse struct {
	Items []types.FollowUp `json:"items"`
}
