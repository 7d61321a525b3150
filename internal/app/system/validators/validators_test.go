package validators_test

import (
	"testing"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/system/validators"
	"github.com/mejbaurrahman/JHF/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func setup(t *testing.T) *mongo.Database {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return db
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatal(err)
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{
		"users", "events", "donations", "fees", "expenses",
		"committee_members", "gallery_items", "site_content",
		"notifications", "audit_events",
	} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestValidators(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	now := time.Now()

	tests := []struct {
		name    string
		coll    string
		doc     bson.M
		wantErr bool
	}{
		{"user missing phone", "users", bson.M{"name": "A", "password_hash": "x", "role": "user"}, true},
		{"user bad role", "users", bson.M{"name": "A", "phone": "1", "password_hash": "x", "role": "superadmin"}, true},
		{"user ok", "users", bson.M{"name": "A", "phone": "1", "password_hash": "x", "role": "advisor", "is_active": true, "membership_status": "active"}, false},
		{"event bad slug", "events", bson.M{"title": "T", "slug": "Bad Slug", "type": "mahfil"}, true},
		{"event bad type", "events", bson.M{"title": "T", "slug": "t", "type": "concert"}, true},
		{"event ok", "events", bson.M{"title": "T", "slug": "eid-mahfil-2", "type": "mahfil", "status": "upcoming", "estimated_budget": 0.0}, false},
		{"donation negative", "donations", bson.M{"donor_name": "D", "amount": -5.0, "payment_method": "cash", "status": "pending"}, true},
		{"donation bad method", "donations", bson.M{"donor_name": "D", "amount": 5.0, "payment_method": "card", "status": "pending"}, true},
		{"donation ok", "donations", bson.M{"donor_name": "D", "amount": 5.0, "payment_method": "bank", "status": "confirmed", "user_id": uid}, false},
		{"fee bad month", "fees", bson.M{"user_id": uid, "amount": 100.0, "month": 13, "year": 2024, "payment_method": "cash", "status": "paid"}, true},
		{"fee bank not allowed", "fees", bson.M{"user_id": uid, "amount": 100.0, "month": 1, "year": 2024, "payment_method": "bank", "status": "paid"}, true},
		{"fee ok", "fees", bson.M{"user_id": uid, "amount": 100.0, "month": 1, "year": 2024, "payment_method": "nagad", "status": "pending"}, false},
		{"expense missing category", "expenses", bson.M{"title": "Rent", "amount": 10.0}, true},
		{"expense ok", "expenses", bson.M{"title": "Rent", "amount": 10.0, "category": "Other", "date": now}, false},
		{"site content without data", "site_content", bson.M{"section": "hero"}, true},
		{"site content ok", "site_content", bson.M{"section": "hero", "data": bson.M{"title": "x"}}, false},
		{"notification bad type", "notifications", bson.M{"user_id": uid, "message": "m", "type": "alert", "is_read": false}, true},
		{"notification ok", "notifications", bson.M{"user_id": uid, "message": "m", "type": "info", "is_read": false}, false},
		{"audit accepts anything", "audit_events", bson.M{"anything": 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
