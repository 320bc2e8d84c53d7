// internal/app/features/users/account.go
package users

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/auth"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
	"github.com/openngo/fieldpunch/internal/domain/models"
)

// ServeMe returns the authenticated user's own record.
// GET /api/v1/users/me
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	cu, _ := auth.CurrentUser(r)
	id, err := primitive.ObjectIDFromHex(cu.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "token carries bad user id", err, "Invalid token.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.NotFound(w, "User not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "get current user failed", err, "Database error while fetching user.")
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, u, "User fetched successfully")
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// HandleChangePassword verifies the old password before storing a new one.
// POST /api/v1/users/change-password
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	cu, _ := auth.CurrentUser(r)
	id, err := primitive.ObjectIDFromHex(cu.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "token carries bad user id", err, "Invalid token.")
		return
	}

	var req changePasswordRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode change-password request failed", err, "Invalid request body.")
		return
	}
	if len(req.NewPassword) < 8 {
		h.ErrLog.LogBadRequest(w, r, "new password too short", nil, "Password must be at least 8 characters.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "change-password lookup failed", err, "Database error while changing password.")
		return
	}
	if !h.Users.CheckPassword(u, req.OldPassword) {
		h.ErrLog.LogBadRequest(w, r, "change-password old password mismatch", nil, "Invalid old password.")
		return
	}
	if err := h.Users.SetPassword(ctx, id, req.NewPassword); err != nil {
		h.ErrLog.LogServerError(w, r, "set password failed", err, "Database error while changing password.")
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, nil, "Password changed successfully")
}

type verifyDeviceRequest struct {
	DeviceModel        string `json:"device_model"`
	DeviceManufacturer string `json:"device_manufacturer"`
}

// HandleVerifyDevice records the handset the user will punch in from.
// POST /api/v1/users/verify-device
func (h *Handler) HandleVerifyDevice(w http.ResponseWriter, r *http.Request) {
	cu, _ := auth.CurrentUser(r)
	id, err := primitive.ObjectIDFromHex(cu.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "token carries bad user id", err, "Invalid token.")
		return
	}

	var req verifyDeviceRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode verify-device request failed", err, "Invalid request body.")
		return
	}
	if req.DeviceModel == "" || req.DeviceManufacturer == "" {
		h.ErrLog.LogBadRequest(w, r, "verify-device missing fields", nil, "All fields are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.VerifyDevice(ctx, id, models.DeviceInfo{
		Model:        req.DeviceModel,
		Manufacturer: req.DeviceManufacturer,
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.NotFound(w, "User not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "verify device failed", err, "Database error while verifying device.")
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, u, "Device verified successfully")
}
