package attendance_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	attendancefeature "github.com/openngo/fieldpunch/internal/app/features/attendance"
	uierrors "github.com/openngo/fieldpunch/internal/app/features/errors"
	"github.com/openngo/fieldpunch/internal/app/system/sweeper"
	"github.com/openngo/fieldpunch/internal/domain/models"
	"github.com/openngo/fieldpunch/internal/testutil"
)

func newTestHandler(t *testing.T) (*attendancefeature.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sw := sweeper.New(db, time.UTC, logger)
	handler := attendancefeature.NewHandler(db, sw, time.UTC, uierrors.NewErrorLogger(logger), logger)
	return handler, testutil.NewFixtures(t, db)
}

func TestServeRecords_OwnDay(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	member := fixtures.CreateMember(ctx, "Asha Rahman", org.ID)
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	fixtures.CreateAttendanceRecord(ctx, member.ID, org.ID, day, models.StatusPresent)

	req := testutil.AsMember(httptest.NewRequest("GET", "/api/v1/attendance?date=2026-03-09", nil), member.ID)
	rec := httptest.NewRecorder()
	handler.ServeRecords(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), models.StatusPresent) {
		t.Error("response does not contain the day's record")
	}
}

func TestServeRecords_NoRecordForDay(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	member := fixtures.CreateMember(ctx, "Asha Rahman", org.ID)

	req := testutil.AsMember(httptest.NewRequest("GET", "/api/v1/attendance?date=2026-03-09", nil), member.ID)
	rec := httptest.NewRecorder()
	handler.ServeRecords(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServeRecords_Range(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	member := fixtures.CreateMember(ctx, "Asha Rahman", org.ID)
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		fixtures.CreateAttendanceRecord(ctx, member.ID, org.ID, day.AddDate(0, 0, -i), models.StatusPresent)
	}

	req := testutil.AsMember(httptest.NewRequest("GET", "/api/v1/attendance?from=2026-03-07&to=2026-03-09", nil), member.ID)
	rec := httptest.NewRecorder()
	handler.ServeRecords(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if got := strings.Count(rec.Body.String(), `"user_id"`); got != 3 {
		t.Errorf("expected 3 records in range, got %d", got)
	}
}

func TestServeRecords_MemberCannotQueryOthers(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	member := fixtures.CreateMember(ctx, "Asha Rahman", org.ID)
	other := fixtures.CreateMember(ctx, "Other Member", org.ID)

	req := testutil.AsMember(httptest.NewRequest("GET", "/api/v1/attendance?date=2026-03-09&user_id="+other.ID.Hex(), nil), member.ID)
	rec := httptest.NewRecorder()
	handler.ServeRecords(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestServeRecords_AdminQueriesAnyUser(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	member := fixtures.CreateMember(ctx, "Asha Rahman", org.ID)
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	fixtures.CreateAttendanceRecord(ctx, member.ID, org.ID, day, models.StatusLate)

	req := testutil.AsAdmin(httptest.NewRequest("GET", "/api/v1/attendance?date=2026-03-09&user_id="+member.ID.Hex(), nil))
	rec := httptest.NewRecorder()
	handler.ServeRecords(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), models.StatusLate) {
		t.Error("response does not contain the member's record")
	}
}

func TestServeOrgDay(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	m1 := fixtures.CreateMember(ctx, "One", org.ID)
	m2 := fixtures.CreateMember(ctx, "Two", org.ID)
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	fixtures.CreateAttendanceRecord(ctx, m1.ID, org.ID, day, models.StatusPresent)
	fixtures.CreateAttendanceRecord(ctx, m2.ID, org.ID, day, models.StatusAbsent)

	req := testutil.AsAdmin(httptest.NewRequest("GET", "/api/v1/attendance/organizations/"+org.ID.Hex()+"?date=2026-03-09", nil))
	req = testutil.WithChiURLParam(req, "id", org.ID.Hex())
	rec := httptest.NewRecorder()
	handler.ServeOrgDay(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if got := strings.Count(rec.Body.String(), `"user_id"`); got != 2 {
		t.Errorf("expected 2 records for the organization, got %d", got)
	}
}

func TestHandleSweep(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	missed := fixtures.CreateMember(ctx, "Missed Today", org.ID)

	req := testutil.AsAdmin(httptest.NewRequest("POST", "/api/v1/attendance/sweep", nil))
	rec := httptest.NewRecorder()
	handler.HandleSweep(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"inserted":1`) {
		t.Errorf("expected 1 inserted, body: %s", rec.Body.String())
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	recs, err := handler.Ledger.FindByOrgAndDate(ctx, org.ID, today)
	if err != nil {
		t.Fatalf("FindByOrgAndDate failed: %v", err)
	}
	if len(recs) != 1 || recs[0].UserID != missed.ID || recs[0].Status != models.StatusAbsent {
		t.Errorf("unexpected swept records: %+v", recs)
	}
}
