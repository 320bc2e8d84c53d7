// internal/app/features/organizations/create.go
package organizations

import (
	"context"
	"net/http"
	"strings"
	"time"

	organizationstore "github.com/openngo/fieldpunch/internal/app/store/organizations"
	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/attendance"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
	"github.com/openngo/fieldpunch/internal/domain/models"
)

type createRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Logo             string   `json:"logo"`
	MorningDeadline  string   `json:"morning_attendance_deadline"`
	EveningStartTime string   `json:"evening_attendance_start_time"`
	WorkingDays      []string `json:"working_days"`
	Holidays         []string `json:"holidays"`
}

// HandleCreate creates an organization.
// Authorization: RequireAdmin middleware in routes.go.
// POST /api/v1/organizations
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode create organization failed", err, "Invalid request body.")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		h.ErrLog.LogBadRequest(w, r, "create organization missing name", nil, "Organization name is required.")
		return
	}
	if req.MorningDeadline != "" && !attendance.ValidHHMM(req.MorningDeadline) {
		h.ErrLog.LogBadRequest(w, r, "create organization bad deadline", nil, "Morning deadline must be HH:MM.")
		return
	}
	if req.EveningStartTime != "" && !attendance.ValidHHMM(req.EveningStartTime) {
		h.ErrLog.LogBadRequest(w, r, "create organization bad evening start", nil, "Evening start time must be HH:MM.")
		return
	}
	holidays, err := parseHolidays(req.Holidays)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "create organization bad holiday", err, "Holidays must be YYYY-MM-DD dates.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.Create(ctx, models.Organization{
		Name:             name,
		Description:      h.Sanitize.Sanitize(req.Description),
		Logo:             req.Logo,
		MorningDeadline:  req.MorningDeadline,
		EveningStartTime: req.EveningStartTime,
		WorkingDays:      req.WorkingDays,
		Holidays:         holidays,
	})
	if err != nil {
		if err == organizationstore.ErrDuplicateOrganization {
			h.ErrLog.Conflict(w, "An organization with this name already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "create organization failed", err, "Database error while creating organization.")
		return
	}

	apiutil.WriteJSON(w, http.StatusCreated, org, "Organization created successfully")
}

// parseHolidays converts YYYY-MM-DD strings into midnight-UTC times.
func parseHolidays(in []string) ([]time.Time, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]time.Time, 0, len(in))
	for _, s := range in {
		t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
