package auditlog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/features/auditlog"
	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
	"github.com/mejbaurrahman/JHF/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type listBody struct {
	Items []struct {
		EventType  string `json:"eventType"`
		ActorName  string `json:"actorName"`
		TargetName string `json:"targetName"`
	} `json:"items"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Total      int64 `json:"total"`
}

func newTestHandler(t *testing.T) (*auditlog.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return auditlog.NewHandler(db, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func list(t *testing.T, h *auditlog.Handler, url string) (int, listBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.HandleList(rec, testutil.NewAuthenticatedRequest("GET", url, testutil.AdminUser()))
	var body listBody
	if rec.Code == http.StatusOK {
		testutil.DecodeJSON(t, rec, &body)
	}
	return rec.Code, body
}

func TestList_FiltersAndNames(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateUser(ctx, "Admin", "01700000040", "admin", "secret123")
	member := fx.CreateUser(ctx, "Member", "01700000041", "user", "secret123")

	events := []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &member.ID, Success: true},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedWrongPassword, UserID: &member.ID},
		{Category: audit.CategoryAdmin, EventType: audit.EventUserRoleChanged, ActorID: &admin.ID, UserID: &member.ID, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventExpenseCreated, ActorID: &admin.ID, Success: true,
			Timestamp: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, e := range events {
		if err := h.Audit.Log(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	code, body := list(t, h, "/audit")
	if code != http.StatusOK || body.Total != 4 || body.Page != 1 || body.TotalPages != 1 {
		t.Fatalf("all: %d %+v", code, body)
	}

	_, body = list(t, h, "/audit?category=admin&eventType=user_role_changed")
	if len(body.Items) != 1 {
		t.Fatalf("role changes = %d", len(body.Items))
	}
	if body.Items[0].ActorName != "Admin" || body.Items[0].TargetName != "Member" {
		t.Errorf("names = %+v", body.Items[0])
	}

	if _, body = list(t, h, "/audit?userId="+member.ID.Hex()); body.Total != 3 {
		t.Errorf("by user = %d", body.Total)
	}
	if _, body = list(t, h, "/audit?to=2020-01-01"); body.Total != 1 {
		t.Errorf("to 2020-01-01 = %d", body.Total)
	}
	if _, body = list(t, h, "/audit?from=2021-01-01"); body.Total != 3 {
		t.Errorf("from 2021 = %d", body.Total)
	}
}

func TestList_BadFilters(t *testing.T) {
	h := auditlog.NewHandler(testutil.OfflineDB(t), uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	for _, url := range []string{
		"/audit?category=security",
		"/audit?category=auth&eventType=fee_recorded",
		"/audit?userId=nope",
		"/audit?page=0",
		"/audit?from=yesterday",
	} {
		if code, _ := list(t, h, url); code != http.StatusBadRequest {
			t.Errorf("%s: %d", url, code)
		}
	}
}

func TestFailedLogins(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	h.Audit.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedUserNotFound})
	h.Audit.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedWrongPassword, UserID: &uid})
	h.Audit.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &uid, Success: true})
	h.Audit.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedRateLimit,
		Timestamp: time.Now().Add(-72 * time.Hour)})

	rec := httptest.NewRecorder()
	h.HandleFailedLogins(rec, testutil.NewAuthenticatedRequest("GET", "/audit/failed-logins", testutil.AdminUser()))
	var items []map[string]any
	testutil.DecodeJSON(t, rec, &items)
	if len(items) != 2 {
		t.Fatalf("last 24h = %d", len(items))
	}
	if items[0]["targetName"] != uid.Hex() && items[1]["targetName"] != uid.Hex() {
		t.Errorf("unknown user not rendered as hex: %+v", items)
	}

	rec = httptest.NewRecorder()
	h.HandleFailedLogins(rec, testutil.NewAuthenticatedRequest("GET", "/audit/failed-logins?hours=96", testutil.AdminUser()))
	testutil.DecodeJSON(t, rec, &items)
	if len(items) != 3 {
		t.Errorf("last 96h = %d", len(items))
	}
}
