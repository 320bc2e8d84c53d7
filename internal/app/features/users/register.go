// internal/app/features/users/register.go
package users

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	userstore "github.com/openngo/fieldpunch/internal/app/store/users"
	"github.com/openngo/fieldpunch/internal/app/system/apiutil"
	"github.com/openngo/fieldpunch/internal/app/system/normalize"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
	"github.com/openngo/fieldpunch/internal/domain/models"
)

type registerRequest struct {
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	MobileNo           string `json:"mobile_no"`
	Password           string `json:"password"`
	Designation        string `json:"designation"`
	OrganizationID     string `json:"organization_id"`
	DeviceModel        string `json:"device_model"`
	DeviceManufacturer string `json:"device_manufacturer"`
}

// HandleRegister creates a field member in an organization.
// Authorization: RequireAdmin middleware in routes.go.
// POST /api/v1/users
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode register request failed", err, "Invalid request body.")
		return
	}
	if normalize.Name(req.FullName) == "" || normalize.Email(req.Email) == "" ||
		normalize.MobileNo(req.MobileNo) == "" || req.Password == "" {
		h.ErrLog.LogBadRequest(w, r, "register request missing fields", nil, "All fields are required.")
		return
	}
	if len(req.Password) < 8 {
		h.ErrLog.LogBadRequest(w, r, "register password too short", nil, "Password must be at least 8 characters.")
		return
	}
	orgID, err := primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "register bad organization id", err, "Invalid organization ID.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// The organization must exist before members are placed in it.
	if _, err := h.Orgs.GetByID(ctx, orgID); err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.NotFound(w, "Organization not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "resolve organization failed", err, "Database error while registering user.")
		return
	}

	var dev *models.DeviceInfo
	if req.DeviceModel != "" || req.DeviceManufacturer != "" {
		dev = &models.DeviceInfo{Model: req.DeviceModel, Manufacturer: req.DeviceManufacturer}
	}

	created, err := h.Users.Create(ctx, models.User{
		FullName:       req.FullName,
		Email:          req.Email,
		MobileNo:       req.MobileNo,
		Role:           "member",
		Designation:    req.Designation,
		OrganizationID: &orgID,
		DeviceInfo:     dev,
	}, req.Password)
	if err != nil {
		if err == userstore.ErrDuplicateUser {
			h.ErrLog.Conflict(w, "User with email or mobile already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "create user failed", err, "Database error while registering user.")
		return
	}

	apiutil.WriteJSON(w, http.StatusCreated, created, "User registered successfully")
}

// ServeUser returns one user by ID.
// Authorization: RequireAdmin middleware in routes.go.
// GET /api/v1/users/{id}
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chiURLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad user id", err, "Invalid user ID.")
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
		h.ErrLog.LogServerError(w, r, "get user failed", err, "Database error while fetching user.")
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, u, "User fetched successfully")
}
