// internal/app/features/organizations/members.go
package organizations

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
)

type addMemberRequest struct {
	UserID string `json:"user_id"`
}

// HandleAddMember moves an existing user into the organization. A user
// belongs to at most one organization, so this also removes them from any
// previous one.
// Authorization: RequireAdmin middleware in routes.go.
// POST /api/v1/organizations/{id}/members
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad organization id", err, "Invalid organization ID.")
		return
	}

	var req addMemberRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode add member failed", err, "Invalid request body.")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "add member bad user id", err, "Invalid user ID.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Orgs.GetByID(ctx, orgID); err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.NotFound(w, "Organization not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "get organization failed", err, "Database error while adding member.")
		return
	}

	if err := h.Users.AssignOrganization(ctx, userID, orgID); err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.NotFound(w, "User not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "assign organization failed", err, "Database error while adding member.")
		return
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reload user failed", err, "Database error while adding member.")
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, u, "Member added successfully")
}
