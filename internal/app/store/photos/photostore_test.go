package photostore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	photostore "github.com/openngo/fieldpunch/internal/app/store/photos"
	"github.com/openngo/fieldpunch/internal/domain/models"
	"github.com/openngo/fieldpunch/internal/testutil"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := photostore.New(db)
	userID := primitive.NewObjectID()
	ts := time.Date(2026, 3, 9, 9, 15, 0, 0, time.UTC)

	created, err := store.Create(ctx, models.Photo{
		Image:     "abc123.jpg",
		Latitude:  23.8103,
		Longitude: 90.4125,
		Timestamp: ts,
		PhotoType: models.PhotoPunchIn,
		UserID:    userID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("expected generated ID")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Image != "abc123.jpg" || got.PhotoType != models.PhotoPunchIn || !got.Timestamp.Equal(ts) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestListByUser_NewestFirstWithPaging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := photostore.New(db)
	fixtures := testutil.NewFixtures(t, db)

	userID := primitive.NewObjectID()
	base := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		fixtures.CreatePhoto(ctx, userID, models.PhotoDuty, base.Add(time.Duration(i)*time.Hour))
	}
	// Another user's photo must not appear.
	fixtures.CreatePhoto(ctx, primitive.NewObjectID(), models.PhotoDuty, base)

	page, err := store.ListByUser(ctx, userID, time.Time{}, 3)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("expected 3 photos, got %d", len(page))
	}
	if !page[0].Timestamp.After(page[1].Timestamp) || !page[1].Timestamp.After(page[2].Timestamp) {
		t.Error("expected newest-first order")
	}

	// Page older captures with the last timestamp as cutoff.
	rest, err := store.ListByUser(ctx, userID, page[2].Timestamp, 10)
	if err != nil {
		t.Fatalf("ListByUser with cutoff failed: %v", err)
	}
	if len(rest) != 2 {
		t.Fatalf("expected 2 older photos, got %d", len(rest))
	}
	for _, p := range rest {
		if !p.Timestamp.Before(page[2].Timestamp) {
			t.Errorf("photo %v not older than cutoff %v", p.Timestamp, page[2].Timestamp)
		}
	}
}

func TestCountByUserAndType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := photostore.New(db)
	fixtures := testutil.NewFixtures(t, db)

	userID := primitive.NewObjectID()
	now := time.Now().UTC()
	fixtures.CreatePhoto(ctx, userID, models.PhotoPunchIn, now)
	fixtures.CreatePhoto(ctx, userID, models.PhotoDuty, now)
	fixtures.CreatePhoto(ctx, userID, models.PhotoDuty, now)

	n, err := store.CountByUserAndType(ctx, userID, models.PhotoDuty)
	if err != nil {
		t.Fatalf("CountByUserAndType failed: %v", err)
	}
	if n != 2 {
		t.Errorf("duty count = %d, want 2", n)
	}
}
