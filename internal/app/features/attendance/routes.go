// internal/app/features/attendance/routes.go
package attendance

import (
	"github.com/go-chi/chi/v5"

	"github.com/openngo/fieldpunch/internal/app/system/auth"
)

// Routes returns the subrouter mounted under /api/v1/attendance.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/", h.ServeRecords)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/organizations/{id}", h.ServeOrgDay)
		r.Post("/sweep", h.HandleSweep)
	})

	return r
}
