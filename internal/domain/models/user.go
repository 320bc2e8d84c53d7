// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeviceInfo describes the handset a field worker punches in from.
type DeviceInfo struct {
	Model        string `bson:"model,omitempty" json:"model,omitempty"`
	Manufacturer string `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
}

// User represents admins and field members.
//
// Members belong to exactly one organization via OrganizationID; the absentee
// sweep and attendance queries discover membership through that field, never
// through an embedded list on the organization.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	MobileNo   string             `bson:"mobile_no" json:"mobile_no"`

	PasswordHash string `bson:"password_hash" json:"-"`

	Role        string `bson:"role" json:"role"` // admin | member
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`
	Avatar      string `bson:"avatar,omitempty" json:"avatar,omitempty"`

	DeviceInfo     *DeviceInfo `bson:"device_info,omitempty" json:"device_info,omitempty"`
	DeviceVerified bool        `bson:"device_verified" json:"device_verified"`

	Status         string              `bson:"status,omitempty" json:"status,omitempty"`
	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
