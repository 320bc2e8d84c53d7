// internal/app/store/photos/photostore.go
package photostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openngo/fieldpunch/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("photos")}
}

// Create inserts a photo document. The image itself has already been written
// to blob storage; Image carries the storage reference.
func (s *Store) Create(ctx context.Context, p models.Photo) (models.Photo, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Photo{}, err
	}
	return p, nil
}

// GetByID loads a photo by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Photo, error) {
	var p models.Photo
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Photo{}, err
	}
	return p, nil
}

// ListByUser returns a user's photos newest-first, capped at limit.
// A before cutoff (exclusive, on capture timestamp) pages older photos.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID, before time.Time, limit int64) ([]models.Photo, error) {
	filter := bson.M{"user_id": userID}
	if !before.IsZero() {
		filter["timestamp"] = bson.M{"$lt": before}
	}
	cur, err := s.c.Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
			SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var photos []models.Photo
	if err := cur.All(ctx, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// CountByUserAndType counts a user's photos of one capture category.
func (s *Store) CountByUserAndType(ctx context.Context, userID primitive.ObjectID, photoType string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID, "photo_type": photoType})
}
