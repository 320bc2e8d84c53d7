// internal/app/features/organizations/delete.go
package organizations

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
)

// HandleDelete removes an organization. Members keep their accounts but lose
// their organization link, so they no longer appear in any absentee sweep.
// Authorization: RequireAdmin middleware in routes.go.
// DELETE /api/v1/organizations/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad organization id", err, "Invalid organization ID.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Orgs.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete organization failed", err, "Database error while deleting organization.")
		return
	}
	if n == 0 {
		h.ErrLog.NotFound(w, "Organization not found.")
		return
	}

	if err := h.Users.UnassignOrganization(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "unassign organization members failed", err, "Database error while deleting organization.")
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, nil, "Organization deleted successfully")
}
