// internal/app/store/attendance/attendancestore.go
package attendancestore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openngo/fieldpunch/internal/domain/models"
)

// Store is the attendance ledger: one document per (user, date), written by
// the check-in deriver and the absentee sweep. Both writers rely on the
// unique (user_id, date) index rather than a read-then-write uniqueness check.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("attendance")}
}

// CheckIn carries the fields a punch-in writes onto the day's record.
type CheckIn struct {
	UserID         primitive.ObjectID
	OrganizationID primitive.ObjectID
	Date           time.Time // normalized day boundary
	Time           time.Time // photo capture instant
	Photo          string
	Location       models.GeoPoint
	Status         string
}

// UpsertCheckIn creates or replaces the check-in side of the record keyed by
// (user_id, date). Repeated punch-ins on the same day are last-write-wins;
// an ABSENT record backfilled by the sweep is overwritten the same way.
func (s *Store) UpsertCheckIn(ctx context.Context, ci CheckIn) error {
	now := time.Now().UTC()
	filter := bson.M{"user_id": ci.UserID, "date": ci.Date}
	update := bson.M{
		"$set": bson.M{
			"organization_id":   ci.OrganizationID,
			"check_in_time":     ci.Time,
			"check_in_photo":    ci.Photo,
			"check_in_location": ci.Location,
			"status":            ci.Status,
			"updated_at":        now,
		},
		"$setOnInsert": bson.M{
			"user_id":    ci.UserID,
			"date":       ci.Date,
			"created_at": now,
		},
	}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// SetCheckOut records the punch-out side of an existing record. It is a plain
// update, not an upsert: a punch-out without a punch-in or sweep record that
// day has nothing to attach to and reports ErrNoRecord.
var ErrNoRecord = errors.New("no attendance record for that user and date")

func (s *Store) SetCheckOut(ctx context.Context, userID primitive.ObjectID, date, t time.Time, photo string, loc models.GeoPoint) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "date": date},
		bson.M{"$set": bson.M{
			"check_out_time":     t,
			"check_out_photo":    photo,
			"check_out_location": loc,
			"updated_at":         time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

// DistinctAttendedUsers returns the IDs of users with any record (any status)
// for the given day in the given organization.
func (s *Store) DistinctAttendedUsers(ctx context.Context, date time.Time, orgID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := s.c.Distinct(ctx, "user_id", bson.M{"date": date, "organization_id": orgID})
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// InsertAbsentees bulk-inserts ABSENT records, unordered so one duplicate-key
// failure (a user who punched in between the sweep's read and this write)
// does not abort the rest. Duplicate-key write errors are swallowed — first
// writer wins; any other write error is returned. The count of documents
// actually inserted is returned either way.
func (s *Store) InsertAbsentees(ctx context.Context, recs []models.AttendanceRecord) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(recs))
	for i := range recs {
		recs[i].ID = primitive.NewObjectID()
		recs[i].Status = models.StatusAbsent
		recs[i].CreatedAt = now
		recs[i].UpdatedAt = now
		docs[i] = recs[i]
	}

	res, err := s.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) {
			for _, we := range bulkErr.WriteErrors {
				if we.Code != 11000 {
					return inserted, err
				}
			}
			// All failures were duplicate keys: the deriver got there first.
			return inserted, nil
		}
		return inserted, err
	}
	return inserted, nil
}

// GetByUserAndDate loads the single record for a (user, day) pair.
// Returns mongo.ErrNoDocuments if none exists.
func (s *Store) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "date": date}).Decode(&rec)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	return rec, nil
}

// FindByOrgAndDate lists an organization's records for one day, newest
// check-in first.
func (s *Store) FindByOrgAndDate(ctx context.Context, orgID primitive.ObjectID, date time.Time) ([]models.AttendanceRecord, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"organization_id": orgID, "date": date},
		options.Find().SetSort(bson.D{{Key: "check_in_time", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var recs []models.AttendanceRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// FindByUserInRange lists one user's records with from <= date <= to,
// oldest first.
func (s *Store) FindByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]models.AttendanceRecord, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"user_id": userID, "date": bson.M{"$gte": from, "$lte": to}},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var recs []models.AttendanceRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// CountByOrgAndDate returns the number of records for an (org, day) pair.
func (s *Store) CountByOrgAndDate(ctx context.Context, orgID primitive.ObjectID, date time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"organization_id": orgID, "date": date})
}
