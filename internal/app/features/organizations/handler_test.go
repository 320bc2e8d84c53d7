package organizations_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	uierrors "github.com/openngo/fieldpunch/internal/app/features/errors"
	"github.com/openngo/fieldpunch/internal/app/features/organizations"
	"github.com/openngo/fieldpunch/internal/testutil"
)

func newTestHandler(t *testing.T) (*organizations.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	handler := organizations.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
	return handler, testutil.NewFixtures(t, db)
}

func TestHandleCreate_Success(t *testing.T) {
	handler, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	body := `{
		"name": "Hope Foundation",
		"description": "Field programs in Dhaka",
		"morning_attendance_deadline": "09:00",
		"working_days": ["Sun", "Mon", "Tue", "Wed", "Thu"],
		"holidays": ["2026-03-26"]
	}`
	req := testutil.AsAdmin(httptest.NewRequest("POST", "/api/v1/organizations", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	org, err := handler.Orgs.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(org) != 1 || org[0].MorningDeadline != "09:00" {
		t.Errorf("unexpected organizations: %+v", org)
	}
	if len(org[0].Holidays) != 1 {
		t.Errorf("expected 1 holiday, got %d", len(org[0].Holidays))
	}
}

func TestHandleCreate_SanitizesDescription(t *testing.T) {
	handler, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	body := `{"name": "Hope Foundation", "description": "<script>alert(1)</script>Field work"}`
	req := testutil.AsAdmin(httptest.NewRequest("POST", "/api/v1/organizations", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	orgs, err := handler.Orgs.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if strings.Contains(orgs[0].Description, "<script>") {
		t.Errorf("description not sanitized: %q", orgs[0].Description)
	}
}

func TestHandleCreate_BadDeadline(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{"name": "Hope Foundation", "morning_attendance_deadline": "25:99"}`
	req := testutil.AsAdmin(httptest.NewRequest("POST", "/api/v1/organizations", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCreate_DuplicateName(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateOrganization(ctx, "Hope Foundation")

	body := `{"name": "hope foundation"}`
	req := testutil.AsAdmin(httptest.NewRequest("POST", "/api/v1/organizations", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestServeView_IncludesMembers(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	member := fixtures.CreateMember(ctx, "Asha Rahman", org.ID)

	req := testutil.AsAdmin(httptest.NewRequest("GET", "/api/v1/organizations/"+org.ID.Hex(), nil))
	req = testutil.WithChiURLParam(req, "id", org.ID.Hex())
	rec := httptest.NewRecorder()
	handler.ServeView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), member.ID.Hex()) {
		t.Error("response does not include the organization's members")
	}
}

func TestServeView_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	id := primitive.NewObjectID().Hex()
	req := testutil.AsAdmin(httptest.NewRequest("GET", "/api/v1/organizations/"+id, nil))
	req = testutil.WithChiURLParam(req, "id", id)
	rec := httptest.NewRecorder()
	handler.ServeView(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleUpdate_ChangesDeadline(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Hope Foundation")

	body := `{"morning_attendance_deadline": "10:15"}`
	req := testutil.AsAdmin(httptest.NewRequest("PATCH", "/api/v1/organizations/"+org.ID.Hex(), strings.NewReader(body)))
	req = testutil.WithChiURLParam(req, "id", org.ID.Hex())
	rec := httptest.NewRecorder()
	handler.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	got, err := handler.Orgs.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.MorningDeadline != "10:15" {
		t.Errorf("deadline = %q, want 10:15", got.MorningDeadline)
	}
	if got.Name != "Hope Foundation" {
		t.Errorf("name changed unexpectedly: %q", got.Name)
	}
}

func TestHandleDelete_UnassignsMembers(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Hope Foundation")
	member := fixtures.CreateMember(ctx, "Asha Rahman", org.ID)

	req := testutil.AsAdmin(httptest.NewRequest("DELETE", "/api/v1/organizations/"+org.ID.Hex(), nil))
	req = testutil.WithChiURLParam(req, "id", org.ID.Hex())
	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	u, err := handler.Users.GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if u.OrganizationID != nil {
		t.Errorf("expected member unassigned, still in %v", u.OrganizationID)
	}
}

func TestHandleAddMember(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	member := fixtures.CreateMember(ctx, "Asha Rahman", orgA.ID)

	body := `{"user_id": "` + member.ID.Hex() + `"}`
	req := testutil.AsAdmin(httptest.NewRequest("POST", "/api/v1/organizations/"+orgB.ID.Hex()+"/members", strings.NewReader(body)))
	req = testutil.WithChiURLParam(req, "id", orgB.ID.Hex())
	rec := httptest.NewRecorder()
	handler.HandleAddMember(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	u, err := handler.Users.GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if u.OrganizationID == nil || *u.OrganizationID != orgB.ID {
		t.Errorf("expected member moved to %s, got %v", orgB.ID.Hex(), u.OrganizationID)
	}
}
