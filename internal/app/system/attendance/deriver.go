// internal/app/system/attendance/deriver.go
package attendance

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	attendancestore "github.com/openngo/fieldpunch/internal/app/store/attendance"
	organizationstore "github.com/openngo/fieldpunch/internal/app/store/organizations"
	userstore "github.com/openngo/fieldpunch/internal/app/store/users"
	"github.com/openngo/fieldpunch/internal/domain/models"
)

// Deriver turns a punch-in photo into the day's attendance record. It runs
// inline in the photo-upload path, strictly best-effort: the caller logs and
// discards any error so attendance derivation can never fail an upload.
type Deriver struct {
	users  *userstore.Store
	orgs   *organizationstore.Store
	ledger *attendancestore.Store
	loc    *time.Location
	log    *zap.Logger
}

// NewDeriver builds a Deriver over the given database. loc is the reference
// time zone used for day boundaries and deadline construction.
func NewDeriver(db *mongo.Database, loc *time.Location, logger *zap.Logger) *Deriver {
	return &Deriver{
		users:  userstore.New(db),
		orgs:   organizationstore.New(db),
		ledger: attendancestore.New(db),
		loc:    loc,
		log:    logger,
	}
}

// CheckInEvent carries what the photo-upload handler knows after durably
// saving a punch-in photo.
type CheckInEvent struct {
	Timestamp time.Time // capture instant from the device
	PhotoRef  string    // storage reference of the saved image
	Latitude  float64
	Longitude float64
}

// RecordCheckIn resolves the user's organization deadline, classifies the
// punch-in, and upserts the ledger record keyed (user, day). Repeated
// punch-ins the same day overwrite the check-in fields and recompute status,
// last-write-wins.
func (d *Deriver) RecordCheckIn(ctx context.Context, userID primitive.ObjectID, ev CheckInEvent) error {
	u, err := d.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve user %s: %w", userID.Hex(), err)
	}
	if u.OrganizationID == nil {
		return fmt.Errorf("user %s has no organization", userID.Hex())
	}
	org, err := d.orgs.GetByID(ctx, *u.OrganizationID)
	if err != nil {
		return fmt.Errorf("resolve organization %s: %w", u.OrganizationID.Hex(), err)
	}

	day := DayOf(ev.Timestamp, d.loc)
	deadline, err := DeadlineFor(day, org.MorningDeadline)
	if err != nil {
		return fmt.Errorf("organization %s: %w", org.ID.Hex(), err)
	}
	status := Classify(ev.Timestamp, deadline)

	err = d.ledger.UpsertCheckIn(ctx, attendancestore.CheckIn{
		UserID:         u.ID,
		OrganizationID: org.ID,
		Date:           day,
		Time:           ev.Timestamp,
		Photo:          ev.PhotoRef,
		Location:       models.GeoPoint{Latitude: ev.Latitude, Longitude: ev.Longitude},
		Status:         status,
	})
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}

	d.log.Info("attendance derived",
		zap.String("user_id", u.ID.Hex()),
		zap.String("organization_id", org.ID.Hex()),
		zap.Time("date", day),
		zap.String("status", status))
	return nil
}

// RecordCheckOut attaches punch-out fields to the day's existing record. A
// punch-out with no record that day reports attendancestore.ErrNoRecord; like
// check-in derivation this is best-effort and never fails the upload.
func (d *Deriver) RecordCheckOut(ctx context.Context, userID primitive.ObjectID, ev CheckInEvent) error {
	day := DayOf(ev.Timestamp, d.loc)
	err := d.ledger.SetCheckOut(ctx, userID, day, ev.Timestamp, ev.PhotoRef,
		models.GeoPoint{Latitude: ev.Latitude, Longitude: ev.Longitude})
	if err != nil {
		return fmt.Errorf("set check-out: %w", err)
	}
	return nil
}
