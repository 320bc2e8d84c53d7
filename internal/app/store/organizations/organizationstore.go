// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openngo/fieldpunch/internal/app/system/status"
	"github.com/openngo/fieldpunch/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateOrganization = errors.New("an organization with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.NameCI = text.Fold(org.Name)
	if org.Status == "" {
		org.Status = status.Active
	}
	if org.MorningDeadline == "" {
		org.MorningDeadline = models.DefaultMorningDeadline
	}
	if org.EveningStartTime == "" {
		org.EveningStartTime = models.DefaultEveningStartTime
	}
	org.CreatedAt = now
	org.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, org)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, ErrDuplicateOrganization
		}
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// Update holds an organization's mutable fields. Empty strings and nil
// slices leave the stored value untouched.
type Update struct {
	Name             string
	Description      *string
	Logo             string
	MorningDeadline  string
	EveningStartTime string
	WorkingDays      []string
	Holidays         []time.Time
	Status           string
}

// Update modifies an organization's mutable fields and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if upd.Name != "" {
		set["name"] = upd.Name
		set["name_ci"] = text.Fold(upd.Name)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Logo != "" {
		set["logo"] = upd.Logo
	}
	if upd.MorningDeadline != "" {
		set["morning_attendance_deadline"] = upd.MorningDeadline
	}
	if upd.EveningStartTime != "" {
		set["evening_attendance_start_time"] = upd.EveningStartTime
	}
	if upd.WorkingDays != nil {
		set["working_days"] = upd.WorkingDays
	}
	if upd.Holidays != nil {
		set["holidays"] = upd.Holidays
	}
	if upd.Status != "" {
		set["status"] = upd.Status
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateOrganization
		}
		return err
	}
	return nil
}

// Delete removes an organization by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ExistsByNameCI checks if an organization with the given case-insensitive name exists.
func (s *Store) ExistsByNameCI(ctx context.Context, nameCI string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"name_ci": nameCI}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// All returns every organization, name order. The absentee sweep iterates
// this list; organization counts are small enough that no paging is needed.
func (s *Store) All(ctx context.Context) ([]models.Organization, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Count returns the number of organizations matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
