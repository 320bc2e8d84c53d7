package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openngo/fieldpunch/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the default schedule.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()
	return f.CreateOrganizationWithDeadline(ctx, name, models.DefaultMorningDeadline)
}

// CreateOrganizationWithDeadline creates a test organization with the given
// "HH:MM" morning deadline.
func (f *Fixtures) CreateOrganizationWithDeadline(ctx context.Context, name, deadline string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:               primitive.NewObjectID(),
		Name:             name,
		NameCI:           text.Fold(name),
		MorningDeadline:  deadline,
		EveningStartTime: models.DefaultEveningStartTime,
		Status:           "active",
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateMember creates an active member of the given organization.
func (f *Fixtures) CreateMember(ctx context.Context, fullName string, orgID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.createUser(ctx, fullName, "member", &orgID)
}

// CreateAdmin creates an active admin with no organization.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName string) models.User {
	f.t.Helper()
	return f.createUser(ctx, fullName, "admin", nil)
}

func (f *Fixtures) createUser(ctx context.Context, fullName, role string, orgID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	id := primitive.NewObjectID()
	u := models.User{
		ID:         id,
		Username:   "u" + id.Hex()[:8],
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      fmt.Sprintf("%s@test.com", id.Hex()[:12]),
		MobileNo:   "+1" + id.Hex()[14:24],
		// bcrypt hash of "password123", precomputed so fixtures stay fast.
		PasswordHash:   "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Role:           role,
		Status:         "active",
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateAttendanceRecord inserts a ledger record for the given user and day.
func (f *Fixtures) CreateAttendanceRecord(ctx context.Context, userID, orgID primitive.ObjectID, date time.Time, status string) models.AttendanceRecord {
	f.t.Helper()

	now := time.Now().UTC()
	rec := models.AttendanceRecord{
		ID:             primitive.NewObjectID(),
		Date:           date,
		UserID:         userID,
		OrganizationID: orgID,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("attendance").InsertOne(ctx, rec); err != nil {
		f.t.Fatalf("failed to create test attendance record: %v", err)
	}
	return rec
}

// CreatePhoto inserts a photo document for the given user.
func (f *Fixtures) CreatePhoto(ctx context.Context, userID primitive.ObjectID, photoType string, ts time.Time) models.Photo {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Photo{
		ID:        primitive.NewObjectID(),
		Image:     primitive.NewObjectID().Hex() + ".jpg",
		Latitude:  23.8103,
		Longitude: 90.4125,
		Timestamp: ts,
		PhotoType: photoType,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("photos").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test photo: %v", err)
	}
	return p
}
