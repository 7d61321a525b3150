package audit_test

import (
	"testing"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
	"github.com/mejbaurrahman/JHF/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Log_FillsIDAndTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := time.Now().Add(-time.Second)
	userID := primitive.NewObjectID()
	err := store.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		IP:        "192.168.1.1",
		Success:   true,
		Details:   map[string]string{"phone": "01700000000"},
	})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.Query(ctx, audit.QueryFilter{UserID: &userID})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.ID.IsZero() {
		t.Error("expected ID to be generated")
	}
	if e.Timestamp.Before(before) {
		t.Errorf("timestamp %v not set", e.Timestamp)
	}
	if e.Details["phone"] != "01700000000" {
		t.Errorf("details: %v", e.Details)
	}
}

func TestStore_Query_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := primitive.NewObjectID()
	member := primitive.NewObjectID()
	old := time.Now().Add(-48 * time.Hour)
	for _, e := range []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &member, Success: true},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedWrongPassword, UserID: &member},
		{Category: audit.CategoryAdmin, EventType: audit.EventUserRoleChanged, UserID: &member, ActorID: &admin, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventExpenseCreated, ActorID: &admin, Success: true, Timestamp: old},
	} {
		if err := store.Log(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	since := time.Now().Add(-time.Hour)
	tests := []struct {
		name string
		f    audit.QueryFilter
		want int
	}{
		{"all", audit.QueryFilter{}, 4},
		{"category", audit.QueryFilter{Category: audit.CategoryAdmin}, 2},
		{"type", audit.QueryFilter{EventType: audit.EventLoginSuccess}, 1},
		{"user", audit.QueryFilter{UserID: &member}, 3},
		{"since", audit.QueryFilter{StartTime: &since}, 3},
		{"limit", audit.QueryFilter{Limit: 2}, 2},
		{"offset", audit.QueryFilter{Offset: 3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, tt.f)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d, want %d", len(got), tt.want)
			}
		})
	}

	n, err := store.Count(ctx, audit.QueryFilter{Category: audit.CategoryAuth, Limit: 1})
	if err != nil || n != 2 {
		t.Errorf("count: %d %v", n, err)
	}

	failed, err := store.FailedLogins(ctx, since, 10)
	if err != nil || len(failed) != 1 {
		t.Errorf("failed logins: %d %v", len(failed), err)
	}

	newest, _ := store.Query(ctx, audit.QueryFilter{Limit: 1})
	if newest[0].EventType == audit.EventExpenseCreated {
		t.Error("backdated event sorted first")
	}
}
