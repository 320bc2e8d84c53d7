// internal/app/features/photos/routes.go
package photos

import (
	"github.com/go-chi/chi/v5"

	"github.com/openngo/fieldpunch/internal/app/system/auth"
)

// Routes returns the subrouter mounted under /api/v1/photos.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireUser)

	r.Post("/", h.HandleUpload)
	r.Get("/", h.ServeList)

	return r
}
