package sweeper_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	attendancestore "github.com/openngo/fieldpunch/internal/app/store/attendance"
	"github.com/openngo/fieldpunch/internal/app/system/sweeper"
	"github.com/openngo/fieldpunch/internal/domain/models"
	"github.com/openngo/fieldpunch/internal/testutil"
)

func sweepDay() time.Time {
	return time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
}

// sweepNow is an instant inside sweepDay, the wall-clock moment the worker
// would fire.
func sweepNow() time.Time {
	return sweepDay().Add(9*time.Hour + 50*time.Minute)
}

func TestRunOnce_BackfillsAbsentees(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	punched := fixtures.CreateMember(ctx, "Punched In", org.ID)
	missed1 := fixtures.CreateMember(ctx, "Missed One", org.ID)
	missed2 := fixtures.CreateMember(ctx, "Missed Two", org.ID)

	fixtures.CreateAttendanceRecord(ctx, punched.ID, org.ID, sweepDay(), models.StatusPresent)

	sw := sweeper.New(db, time.UTC, zap.NewNop())
	res, err := sw.RunOnce(ctx, sweepNow())
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if res.Organizations != 1 || res.Inserted != 2 || res.Failed != 0 {
		t.Errorf("result = %+v, want 1 org, 2 inserted, 0 failed", res)
	}

	ledger := attendancestore.New(db)
	for _, id := range []primitive.ObjectID{missed1.ID, missed2.ID} {
		rec, err := ledger.GetByUserAndDate(ctx, id, sweepDay())
		if err != nil {
			t.Fatalf("GetByUserAndDate(%s) failed: %v", id.Hex(), err)
		}
		if rec.Status != models.StatusAbsent {
			t.Errorf("expected ABSENT for %s, got %q", id.Hex(), rec.Status)
		}
		if rec.CheckInTime != nil {
			t.Errorf("swept record for %s must have no check-in time", id.Hex())
		}
	}

	// The member who punched in keeps their record.
	rec, err := ledger.GetByUserAndDate(ctx, punched.ID, sweepDay())
	if err != nil {
		t.Fatalf("GetByUserAndDate failed: %v", err)
	}
	if rec.Status != models.StatusPresent {
		t.Errorf("expected PRESENT to survive sweep, got %q", rec.Status)
	}
}

func TestRunOnce_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	fixtures.CreateMember(ctx, "Missed One", org.ID)
	fixtures.CreateMember(ctx, "Missed Two", org.ID)

	sw := sweeper.New(db, time.UTC, zap.NewNop())

	res, err := sw.RunOnce(ctx, sweepNow())
	if err != nil {
		t.Fatalf("first RunOnce failed: %v", err)
	}
	if res.Inserted != 2 {
		t.Fatalf("first run inserted = %d, want 2", res.Inserted)
	}

	res, err = sw.RunOnce(ctx, sweepNow())
	if err != nil {
		t.Fatalf("second RunOnce failed: %v", err)
	}
	if res.Inserted != 0 {
		t.Errorf("second run inserted = %d, want 0", res.Inserted)
	}

	ledger := attendancestore.New(db)
	count, err := ledger.CountByOrgAndDate(ctx, org.ID, sweepDay())
	if err != nil {
		t.Fatalf("CountByOrgAndDate failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 records after double sweep, got %d", count)
	}
}

func TestRunOnce_SkipsAnyExistingStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	present := fixtures.CreateMember(ctx, "Present", org.ID)
	late := fixtures.CreateMember(ctx, "Late", org.ID)
	absent := fixtures.CreateMember(ctx, "Already Absent", org.ID)

	fixtures.CreateAttendanceRecord(ctx, present.ID, org.ID, sweepDay(), models.StatusPresent)
	fixtures.CreateAttendanceRecord(ctx, late.ID, org.ID, sweepDay(), models.StatusLate)
	fixtures.CreateAttendanceRecord(ctx, absent.ID, org.ID, sweepDay(), models.StatusAbsent)

	sw := sweeper.New(db, time.UTC, zap.NewNop())
	res, err := sw.RunOnce(ctx, sweepNow())
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if res.Inserted != 0 {
		t.Errorf("inserted = %d, want 0 when every member already has a record", res.Inserted)
	}
}

func TestRunOnce_MultipleOrganizations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	fixtures.CreateMember(ctx, "A Member", orgA.ID)
	fixtures.CreateMember(ctx, "B Member One", orgB.ID)
	fixtures.CreateMember(ctx, "B Member Two", orgB.ID)

	sw := sweeper.New(db, time.UTC, zap.NewNop())
	res, err := sw.RunOnce(ctx, sweepNow())
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if res.Organizations != 2 {
		t.Errorf("organizations = %d, want 2", res.Organizations)
	}
	if res.Inserted != 3 {
		t.Errorf("inserted = %d, want 3", res.Inserted)
	}
}

func TestRunOnce_IgnoresAdminsAndDisabledMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	member := fixtures.CreateMember(ctx, "Active Member", org.ID)
	disabled := fixtures.CreateMember(ctx, "Disabled Member", org.ID)
	fixtures.CreateAdmin(ctx, "The Admin")

	if _, err := db.Collection("users").UpdateByID(ctx, disabled.ID,
		bson.M{"$set": bson.M{"status": "disabled"}}); err != nil {
		t.Fatalf("disable member failed: %v", err)
	}

	sw := sweeper.New(db, time.UTC, zap.NewNop())
	res, err := sw.RunOnce(ctx, sweepNow())
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if res.Inserted != 1 {
		t.Errorf("inserted = %d, want 1 (only the active member)", res.Inserted)
	}

	ledger := attendancestore.New(db)
	if _, err := ledger.GetByUserAndDate(ctx, member.ID, sweepDay()); err != nil {
		t.Errorf("expected swept record for active member: %v", err)
	}
}
