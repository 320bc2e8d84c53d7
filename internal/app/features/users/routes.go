// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/openngo/fieldpunch/internal/app/system/auth"
)

// Routes returns the subrouter mounted under /api/v1/users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/me", h.ServeMe)
		r.Post("/change-password", h.HandleChangePassword)
		r.Post("/verify-device", h.HandleVerifyDevice)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/", h.HandleRegister)
		r.Get("/{id}", h.ServeUser)
	})

	return r
}
