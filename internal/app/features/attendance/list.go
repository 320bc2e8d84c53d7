// internal/app/features/attendance/list.go
package attendance

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/auth"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
)

// ServeRecords returns attendance records for one user. ?date=YYYY-MM-DD
// fetches a single day; ?from=YYYY-MM-DD&to=YYYY-MM-DD fetches an inclusive
// range. Members can only query themselves; admins may pass ?user_id.
// GET /api/v1/attendance
func (h *Handler) ServeRecords(w http.ResponseWriter, r *http.Request) {
	tu, _ := auth.CurrentUser(r)

	targetHex := tu.ID
	if q := r.URL.Query().Get("user_id"); q != "" && q != tu.ID {
		if tu.Role != "admin" {
			h.ErrLog.Unauthorized(w, "Not allowed to view other users' attendance.")
			return
		}
		targetHex = q
	}
	userID, err := primitive.ObjectIDFromHex(targetHex)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad user id", err, "Invalid user ID.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if q := r.URL.Query().Get("date"); q != "" {
		date, err := h.parseDay(q)
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "bad date", err, "date must be YYYY-MM-DD.")
			return
		}
		rec, err := h.Ledger.GetByUserAndDate(ctx, userID, date)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				h.ErrLog.NotFound(w, "No attendance record for that day.")
				return
			}
			h.ErrLog.LogServerError(w, r, "get attendance record failed", err, "Database error while fetching attendance.")
			return
		}
		apiutil.WriteJSON(w, http.StatusOK, rec, "Attendance fetched successfully")
		return
	}

	from, err := h.parseDay(r.URL.Query().Get("from"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad from date", err, "from must be YYYY-MM-DD.")
		return
	}
	to, err := h.parseDay(r.URL.Query().Get("to"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad to date", err, "to must be YYYY-MM-DD.")
		return
	}
	if to.Before(from) {
		h.ErrLog.LogBadRequest(w, r, "inverted date range", nil, "to must not be before from.")
		return
	}

	recs, err := h.Ledger.FindByUserInRange(ctx, userID, from, to)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list attendance records failed", err, "Database error while fetching attendance.")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, recs, "Attendance fetched successfully")
}

// ServeOrgDay returns an organization's full ledger for one day, the view an
// admin dashboard renders after the morning sweep.
// Authorization: RequireAdmin middleware in routes.go.
// GET /api/v1/attendance/organizations/{id}?date=YYYY-MM-DD
func (h *Handler) ServeOrgDay(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad organization id", err, "Invalid organization ID.")
		return
	}
	date, err := h.parseDay(r.URL.Query().Get("date"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad date", err, "date must be YYYY-MM-DD.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	recs, err := h.Ledger.FindByOrgAndDate(ctx, orgID, date)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list organization attendance failed", err, "Database error while fetching attendance.")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, recs, "Attendance fetched successfully")
}

// parseDay reads a YYYY-MM-DD query value as midnight in the reference zone,
// the form day keys are stored in.
func (h *Handler) parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, h.Loc)
}
