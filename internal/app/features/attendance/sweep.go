// internal/app/features/attendance/sweep.go
package attendance

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
)

// HandleSweep runs the absentee sweep for today on demand. The daily worker
// drives the same RunOnce, so a manual trigger after a missed or partial run
// is safe to repeat.
// Authorization: RequireAdmin middleware in routes.go.
// POST /api/v1/attendance/sweep
func (h *Handler) HandleSweep(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	res, err := h.Sweeper.RunOnce(ctx, time.Now())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "manual absentee sweep failed", err, "Sweep failed.")
		return
	}

	h.Log.Info("manual absentee sweep finished",
		zap.Int("organizations", res.Organizations),
		zap.Int("inserted", res.Inserted),
		zap.Int("failed_organizations", res.Failed))

	apiutil.WriteJSON(w, http.StatusOK, res, "Absentee sweep completed")
}
