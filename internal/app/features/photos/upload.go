// internal/app/features/photos/upload.go
package photos

import (
	"context"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/attendance"
	"github.com/openngo/fieldpunch/internal/app/system/auth"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
	"github.com/openngo/fieldpunch/internal/domain/models"
)

// maxUploadBytes caps a single photo upload.
const maxUploadBytes = 10 << 20

// HandleUpload accepts a multipart photo capture: the image file plus
// photo_type, timestamp (RFC 3339), latitude and longitude fields. The blob
// is written to storage first; only after it is durable does the metadata
// document go to Mongo, and only then does a punch photo touch the
// attendance ledger. Derivation failures are logged and discarded, never
// surfaced to the uploader.
// POST /api/v1/photos
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	tu, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(tu.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "token carries bad user id", err, "Invalid user ID.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse multipart form failed", err, "Invalid or oversized upload.")
		return
	}

	photoType := r.FormValue("photo_type")
	if !models.ValidPhotoType(photoType) {
		h.ErrLog.LogBadRequest(w, r, "bad photo type", nil, "photo_type must be Punch In, Punch Out or Duty.")
		return
	}
	ts, err := time.Parse(time.RFC3339, r.FormValue("timestamp"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad timestamp", err, "timestamp must be RFC 3339.")
		return
	}
	lat, err := strconv.ParseFloat(r.FormValue("latitude"), 64)
	if err != nil || lat < -90 || lat > 90 {
		h.ErrLog.LogBadRequest(w, r, "bad latitude", err, "latitude must be between -90 and 90.")
		return
	}
	lng, err := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if err != nil || lng < -180 || lng > 180 {
		h.ErrLog.LogBadRequest(w, r, "bad longitude", err, "longitude must be between -180 and 180.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "missing photo file", err, "A photo file is required.")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ref, err := h.Blobs.Save(ctx, file, filepath.Ext(header.Filename))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "save photo blob failed", err, "Failed to store photo.")
		return
	}

	photo, err := h.Photos.Create(ctx, models.Photo{
		Image:     ref,
		Latitude:  lat,
		Longitude: lng,
		Timestamp: ts,
		PhotoType: photoType,
		UserID:    userID,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create photo document failed", err, "Database error while storing photo.")
		return
	}

	// Punch photos drive the ledger. The upload already succeeded; a
	// derivation failure is this side's problem, not the uploader's.
	ev := attendance.CheckInEvent{Timestamp: ts, PhotoRef: ref, Latitude: lat, Longitude: lng}
	switch photoType {
	case models.PhotoPunchIn:
		if err := h.Deriver.RecordCheckIn(ctx, userID, ev); err != nil {
			h.Log.Error("attendance check-in derivation failed",
				zap.String("user_id", userID.Hex()),
				zap.String("photo_id", photo.ID.Hex()),
				zap.Error(err))
		}
	case models.PhotoPunchOut:
		if err := h.Deriver.RecordCheckOut(ctx, userID, ev); err != nil {
			h.Log.Error("attendance check-out derivation failed",
				zap.String("user_id", userID.Hex()),
				zap.String("photo_id", photo.ID.Hex()),
				zap.Error(err))
		}
	}

	apiutil.WriteJSON(w, http.StatusCreated, uploadResponse{Photo: photo, URL: h.Blobs.URL(ref)}, "Photo uploaded successfully")
}

type uploadResponse struct {
	Photo models.Photo `json:"photo"`
	URL   string       `json:"url"`
}
