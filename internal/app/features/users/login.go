// internal/app/features/users/login.go
package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/auth"
	"github.com/openngo/fieldpunch/internal/app/system/status"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
	"github.com/openngo/fieldpunch/internal/domain/models"
)

type loginRequest struct {
	MobileNo string `json:"mobile_no"`
	Password string `json:"password"`
}

type loginResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// HandleLogin authenticates by mobile number and password and issues a
// bearer token.
// POST /api/v1/users/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode login request failed", err, "Invalid request body.")
		return
	}
	if req.MobileNo == "" || req.Password == "" {
		h.ErrLog.LogBadRequest(w, r, "login request missing fields", nil, "All fields are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByMobileNo(ctx, req.MobileNo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Same message as a bad password so probes learn nothing.
			h.ErrLog.Unauthorized(w, "Invalid user credentials.")
			return
		}
		h.ErrLog.LogServerError(w, r, "login lookup failed", err, "Database error while logging in.")
		return
	}
	if u.Status == status.Disabled {
		h.ErrLog.Unauthorized(w, "Account is disabled.")
		return
	}
	if !h.Users.CheckPassword(u, req.Password) {
		h.ErrLog.Unauthorized(w, "Invalid user credentials.")
		return
	}

	token, err := h.Tokens.IssueToken(auth.TokenUser{
		ID:   u.ID.Hex(),
		Name: u.FullName,
		Role: u.Role,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "issue token failed", err, "Failed to log in.")
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, loginResponse{User: u, AccessToken: token}, "User logged in successfully")
}

// chiURLParam is a local alias so handlers outside routes.go don't import chi
// just for parameter access.
func chiURLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
