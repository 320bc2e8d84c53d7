// internal/domain/models/attendance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance statuses. PRESENT and LATE are derived from a punch-in photo's
// timestamp against the organization's morning deadline; ABSENT is either
// derived (punch-in after the grace window) or backfilled by the daily sweep.
const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
)

// GeoPoint is a latitude/longitude pair captured with a photo.
type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// AttendanceRecord is one user's attendance for one calendar day.
//
// The (user_id, date) pair is the natural key, enforced by a unique index;
// Date is always normalized to midnight in the reference time zone. There is
// exactly one record per user per day regardless of which writer (check-in
// upsert or absentee sweep) created it.
type AttendanceRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date           time.Time          `bson:"date" json:"date"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`

	CheckInTime      *time.Time `bson:"check_in_time,omitempty" json:"check_in_time,omitempty"`
	CheckOutTime     *time.Time `bson:"check_out_time,omitempty" json:"check_out_time,omitempty"`
	CheckInPhoto     string     `bson:"check_in_photo,omitempty" json:"check_in_photo,omitempty"`
	CheckOutPhoto    string     `bson:"check_out_photo,omitempty" json:"check_out_photo,omitempty"`
	CheckInLocation  *GeoPoint  `bson:"check_in_location,omitempty" json:"check_in_location,omitempty"`
	CheckOutLocation *GeoPoint  `bson:"check_out_location,omitempty" json:"check_out_location,omitempty"`

	Status string `bson:"status" json:"status"` // PRESENT | LATE | ABSENT

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidStatus reports whether s is one of the three attendance statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent:
		return true
	}
	return false
}
