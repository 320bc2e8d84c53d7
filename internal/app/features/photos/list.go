// internal/app/features/photos/list.go
package photos

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/auth"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
	"github.com/openngo/fieldpunch/internal/domain/models"
)

const defaultPageSize = 50

type listItem struct {
	models.Photo
	URL string `json:"url"`
}

// ServeList returns the caller's photos newest-first. ?before=<RFC 3339>
// pages older captures, ?limit caps the page (default 50, max 200). Admins
// may pass ?user_id to view another user's photos.
// GET /api/v1/photos
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	tu, _ := auth.CurrentUser(r)

	targetHex := tu.ID
	if q := r.URL.Query().Get("user_id"); q != "" && q != tu.ID {
		if tu.Role != "admin" {
			h.ErrLog.Unauthorized(w, "Not allowed to view other users' photos.")
			return
		}
		targetHex = q
	}
	userID, err := primitive.ObjectIDFromHex(targetHex)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad user id", err, "Invalid user ID.")
		return
	}

	var before time.Time
	if q := r.URL.Query().Get("before"); q != "" {
		before, err = time.Parse(time.RFC3339, q)
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "bad before cutoff", err, "before must be RFC 3339.")
			return
		}
	}
	limit := int64(defaultPageSize)
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.ParseInt(q, 10, 64)
		if err != nil || n < 1 || n > 200 {
			h.ErrLog.LogBadRequest(w, r, "bad limit", err, "limit must be between 1 and 200.")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	photos, err := h.Photos.ListByUser(ctx, userID, before, limit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list photos failed", err, "Database error while listing photos.")
		return
	}

	items := make([]listItem, 0, len(photos))
	for _, p := range photos {
		items = append(items, listItem{Photo: p, URL: h.Blobs.URL(p.Image)})
	}

	apiutil.WriteJSON(w, http.StatusOK, items, "Photos fetched successfully")
}
