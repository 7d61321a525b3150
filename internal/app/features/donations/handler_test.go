package donations_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/features/donations"
	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	"github.com/mejbaurrahman/JHF/internal/app/system/notify"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"github.com/mejbaurrahman/JHF/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*donations.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := donations.NewHandler(db, notify.New(db, logger), nil, uierrors.NewErrorLogger(logger), logger)
	return h, testutil.NewFixtures(t, db)
}

func TestCreate_Guest(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.NewJSONRequest("POST", "/donations", map[string]any{
		"donorName": "Guest Donor", "amount": 500, "paymentMethod": "bkash", "transactionId": "TX1",
		"status": "confirmed",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("%d %s", rec.Code, rec.Body.String())
	}
	var d models.Donation
	testutil.DecodeJSON(t, rec, &d)
	if d.Status != status.DonationPending {
		t.Errorf("status = %q, want pending regardless of request", d.Status)
	}
	if d.UserID != nil {
		t.Error("guest donation attributed to a user")
	}
}

func TestCreate_AttributesCaller(t *testing.T) {
	h, _ := newTestHandler(t)
	member := testutil.MemberUser()
	req := testutil.WithUser(testutil.NewJSONRequest("POST", "/donations", map[string]any{
		"amount": 100, "paymentMethod": "cash",
	}), member)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("%d %s", rec.Code, rec.Body.String())
	}
	var d models.Donation
	testutil.DecodeJSON(t, rec, &d)
	if d.UserID == nil || *d.UserID != member.ID || d.DonorName != member.Name {
		t.Errorf("donation = %+v", d)
	}
}

func TestCreate_Validation(t *testing.T) {
	h := donations.NewHandler(testutil.OfflineDB(t), nil, nil, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	tests := []struct {
		name string
		body map[string]any
	}{
		{"no amount", map[string]any{"donorName": "A", "paymentMethod": "cash"}},
		{"negative amount", map[string]any{"donorName": "A", "amount": -1, "paymentMethod": "cash"}},
		{"bad method", map[string]any{"donorName": "A", "amount": 10, "paymentMethod": "paypal"}},
		{"no donor", map[string]any{"amount": 10, "paymentMethod": "cash"}},
		{"bad event", map[string]any{"donorName": "A", "amount": 10, "paymentMethod": "cash", "eventId": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleCreate(rec, testutil.NewJSONRequest("POST", "/donations", tt.body))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreate_UnknownEvent(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.NewJSONRequest("POST", "/donations", map[string]any{
		"donorName": "A", "amount": 10, "paymentMethod": "cash", "eventId": primitive.NewObjectID().Hex(),
	}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListFiltersAndPopulates(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Donor", "01700000001", "user", "secret123")
	ev := fx.CreateEvent(ctx, "Iftar", "iftar", status.EventUpcoming, time.Now())
	fx.CreateDonation(ctx, "Donor", 100, status.DonationPending, &u.ID, &ev.ID)
	fx.CreateDonation(ctx, "Guest", 50, status.DonationConfirmed, nil, nil)

	list := func(url string) []map[string]any {
		t.Helper()
		rec := httptest.NewRecorder()
		h.HandleList(rec, testutil.WithUser(httptest.NewRequest("GET", url, nil), testutil.AdminUser()))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: %d %s", url, rec.Code, rec.Body.String())
		}
		var out []map[string]any
		testutil.DecodeJSON(t, rec, &out)
		return out
	}

	if got := list("/donations"); len(got) != 2 {
		t.Errorf("all = %d", len(got))
	}
	if got := list("/donations?status=all"); len(got) != 2 {
		t.Errorf("status=all = %d", len(got))
	}
	got := list("/donations?eventId=" + ev.ID.Hex())
	if len(got) != 1 {
		t.Fatalf("by event = %d", len(got))
	}
	event, _ := got[0]["event"].(map[string]any)
	user, _ := got[0]["user"].(map[string]any)
	if event["title"] != "Iftar" || user["name"] != "Donor" {
		t.Errorf("population = %+v", got[0])
	}
	if got := list("/donations?status=confirmed"); len(got) != 1 {
		t.Errorf("confirmed = %d", len(got))
	}
	if got := list("/donations?to=2000-01-01"); len(got) != 0 {
		t.Errorf("to past = %d", len(got))
	}

	rec := httptest.NewRecorder()
	h.HandleList(rec, testutil.WithUser(httptest.NewRequest("GET", "/donations?userId=bad", nil), testutil.AdminUser()))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad userId = %d", rec.Code)
	}
}

func TestMine(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := testutil.MemberUser()
	fx.CreateDonation(ctx, "Me", 10, status.DonationPending, &me.ID, nil)
	other := primitive.NewObjectID()
	fx.CreateDonation(ctx, "Other", 20, status.DonationPending, &other, nil)

	rec := httptest.NewRecorder()
	h.HandleMine(rec, testutil.NewAuthenticatedRequest("GET", "/donations/my", me))
	var out []models.Donation
	testutil.DecodeJSON(t, rec, &out)
	if len(out) != 1 || out[0].DonorName != "Me" {
		t.Errorf("mine = %+v", out)
	}
}

func TestStatus_StateMachine(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	donor := primitive.NewObjectID()
	d := fx.CreateDonation(ctx, "Donor", 250, status.DonationPending, &donor, nil)

	set := func(st string) *httptest.ResponseRecorder {
		req := testutil.WithChiURLParam(testutil.NewJSONRequest("PUT", "/donations/x/status", map[string]string{"status": st}), "id", d.ID.Hex())
		rec := httptest.NewRecorder()
		h.HandleStatus(rec, testutil.WithUser(req, testutil.AdminUser()))
		return rec
	}

	if rec := set("pending"); rec.Code != http.StatusBadRequest {
		t.Errorf("pending -> pending: %d", rec.Code)
	}
	if rec := set("Confirmed"); rec.Code != http.StatusOK {
		t.Fatalf("pending -> confirmed: %d %s", rec.Code, rec.Body.String())
	}
	for _, st := range []string{"failed", "pending", "confirmed"} {
		rec := set(st)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("confirmed -> %s: %d", st, rec.Code)
		}
		var body respond.MessageBody
		testutil.DecodeJSON(t, rec, &body)
		if body.Message != "Donation has already been processed" {
			t.Errorf("message = %q", body.Message)
		}
	}

	var n models.Notification
	if err := fx.DB().Collection("notifications").FindOne(ctx, bson.M{"user_id": donor}).Decode(&n); err != nil {
		t.Fatalf("donor not notified: %v", err)
	}
	if n.Type != models.NotificationSuccess {
		t.Errorf("notification type = %q", n.Type)
	}

	req := testutil.WithChiURLParam(testutil.NewJSONRequest("PUT", "/donations/x/status", map[string]string{"status": "failed"}), "id", primitive.NewObjectID().Hex())
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, testutil.WithUser(req, testutil.AdminUser()))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing donation: %d", rec.Code)
	}
}
