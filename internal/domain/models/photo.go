// internal/domain/models/photo.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photo categories captured by the mobile app. Only punch-in photos feed the
// attendance deriver; punch-out photos update check-out fields, duty photos
// are evidence only.
const (
	PhotoPunchIn  = "Punch In"
	PhotoPunchOut = "Punch Out"
	PhotoDuty     = "Duty"
)

// Photo is a geotagged capture uploaded from the field.
type Photo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Image     string             `bson:"img" json:"img"` // storage reference
	Latitude  float64            `bson:"latitude" json:"latitude"`
	Longitude float64            `bson:"longitude" json:"longitude"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"` // capture time, not upload time
	PhotoType string             `bson:"photo_type" json:"photo_type"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidPhotoType reports whether t is one of the three capture categories.
func ValidPhotoType(t string) bool {
	switch t {
	case PhotoPunchIn, PhotoPunchOut, PhotoDuty:
		return true
	}
	return false
}
