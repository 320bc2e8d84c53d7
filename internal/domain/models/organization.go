// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization includes a case/diacritic-insensitive name for search and the
// attendance schedule its members are evaluated against.
type Organization struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"` // always stored
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Logo        string             `bson:"logo,omitempty" json:"logo,omitempty"`

	// MorningDeadline is the "HH:MM" cutoff for PRESENT; punch-ins within
	// the 15-minute grace window after it are LATE, later ones ABSENT.
	MorningDeadline  string `bson:"morning_attendance_deadline" json:"morning_attendance_deadline"`
	EveningStartTime string `bson:"evening_attendance_start_time,omitempty" json:"evening_attendance_start_time,omitempty"`

	WorkingDays []string    `bson:"working_days,omitempty" json:"working_days,omitempty"`
	Holidays    []time.Time `bson:"holidays,omitempty" json:"holidays,omitempty"`

	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Default schedule values applied when an organization is created without them.
const (
	DefaultMorningDeadline  = "09:30"
	DefaultEveningStartTime = "17:00"
)
