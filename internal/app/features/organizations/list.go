// internal/app/features/organizations/list.go
package organizations

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
	"github.com/openngo/fieldpunch/internal/domain/models"
)

// ServeList returns every organization, name order.
// Authorization: RequireAdmin middleware in routes.go.
// GET /api/v1/organizations
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	orgs, err := h.Orgs.All(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list organizations failed", err, "Database error while listing organizations.")
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, orgs, "Organizations fetched successfully")
}

type viewResponse struct {
	Organization models.Organization `json:"organization"`
	Members      []models.User       `json:"members"`
}

// ServeView returns one organization along with its active members.
// Authorization: RequireAdmin middleware in routes.go.
// GET /api/v1/organizations/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad organization id", err, "Invalid organization ID.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.NotFound(w, "Organization not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "get organization failed", err, "Database error while fetching organization.")
		return
	}

	members, err := h.Users.MembersByOrganization(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list organization members failed", err, "Database error while fetching organization.")
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, viewResponse{Organization: org, Members: members}, "Organization fetched successfully")
}
