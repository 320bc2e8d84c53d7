// internal/app/features/organizations/update.go
package organizations

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	organizationstore "github.com/openngo/fieldpunch/internal/app/store/organizations"
	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/attendance"
	"github.com/openngo/fieldpunch/internal/app/system/normalize"
	"github.com/openngo/fieldpunch/internal/app/system/status"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
)

type updateRequest struct {
	Name             string   `json:"name"`
	Description      *string  `json:"description"`
	Logo             string   `json:"logo"`
	MorningDeadline  string   `json:"morning_attendance_deadline"`
	EveningStartTime string   `json:"evening_attendance_start_time"`
	WorkingDays      []string `json:"working_days"`
	Holidays         []string `json:"holidays"`
	Status           string   `json:"status"`
}

// HandleUpdate modifies an organization's mutable fields. Omitted fields are
// left untouched.
// Authorization: RequireAdmin middleware in routes.go.
// PATCH /api/v1/organizations/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad organization id", err, "Invalid organization ID.")
		return
	}

	var req updateRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode update organization failed", err, "Invalid request body.")
		return
	}
	if req.MorningDeadline != "" && !attendance.ValidHHMM(req.MorningDeadline) {
		h.ErrLog.LogBadRequest(w, r, "update organization bad deadline", nil, "Morning deadline must be HH:MM.")
		return
	}
	if req.EveningStartTime != "" && !attendance.ValidHHMM(req.EveningStartTime) {
		h.ErrLog.LogBadRequest(w, r, "update organization bad evening start", nil, "Evening start time must be HH:MM.")
		return
	}
	if req.Status != "" && !status.IsValid(normalize.Status(req.Status)) {
		h.ErrLog.LogBadRequest(w, r, "update organization bad status", nil, "Status must be active or disabled.")
		return
	}
	holidays, err := parseHolidays(req.Holidays)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "update organization bad holiday", err, "Holidays must be YYYY-MM-DD dates.")
		return
	}
	var desc *string
	if req.Description != nil {
		clean := h.Sanitize.Sanitize(*req.Description)
		desc = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Confirm the target exists so a bad ID reads as 404, not a no-op 200.
	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.NotFound(w, "Organization not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "get organization failed", err, "Database error while updating organization.")
		return
	}

	err = h.Orgs.Update(ctx, org.ID, organizationstore.Update{
		Name:             strings.TrimSpace(req.Name),
		Description:      desc,
		Logo:             req.Logo,
		MorningDeadline:  req.MorningDeadline,
		EveningStartTime: req.EveningStartTime,
		WorkingDays:      req.WorkingDays,
		Holidays:         holidays,
		Status:           normalize.Status(req.Status),
	})
	if err != nil {
		if err == organizationstore.ErrDuplicateOrganization {
			h.ErrLog.Conflict(w, "An organization with this name already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "update organization failed", err, "Database error while updating organization.")
		return
	}

	updated, err := h.Orgs.GetByID(ctx, org.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reload organization failed", err, "Database error while updating organization.")
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, updated, "Organization updated successfully")
}
