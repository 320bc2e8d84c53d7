// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/go-chi/chi/v5"

	"github.com/openngo/fieldpunch/internal/app/system/auth"
)

// Routes returns the subrouter mounted under /api/v1/organizations.
// Everything here is admin-only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireAdmin)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Post("/{id}/members", h.HandleAddMember)

	return r
}
