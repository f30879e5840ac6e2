package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dialpro/apiserver/internal/views"
	"github.com/dialpro/apiserver/types"
)

// ViewsHandler resolves the navigation menu and routes for the
// authenticated role.
type ViewsHandler struct{}

// ViewsRouter registers view routes on the given router. All routes
// require authentication.
func ViewsRouter(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	handler := &ViewsHandler{}

	r.Use(authMiddleware)
	r.Get("/menu", handler.Menu)
	r.Get("/resolve", handler.Resolve)
}

// Menu returns the ordered navigation entries for the requester's role.
func (h *ViewsHandler) Menu(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, MenuResponse{Items: views.Menu(user.Role)})
}

// Resolve maps a route to the view the requester's role may reach.
// Unknown routes resolve to the fallback view rather than an error.
func (h *ViewsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	routeID := r.URL.Query().Get("route")
	writeJSON(w, http.StatusOK, ResolveResponse{
		RouteID: routeID,
		View:    views.Resolve(user.Role, routeID),
	})
}

type MenuResponse struct {
	Items []types.MenuItem `json:"items"`
}

type ResolveResponse struct {
	RouteID string         `json:"route_id"`
	View    types.ViewKind `json:"view"`
}
