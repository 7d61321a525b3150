package feestore_test

import (
	"errors"
	"testing"

	feestore "github.com/mejbaurrahman/JHF/internal/app/store/fees"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"github.com/mejbaurrahman/JHF/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := feestore.New(db)

	f, err := store.Create(ctx, models.Fee{UserID: primitive.NewObjectID(), Amount: 100, Month: 3, Year: 2024, PaymentMethod: "cash"})
	if err != nil {
		t.Fatal(err)
	}
	if f.Status != status.FeePaid || f.PaidAt.IsZero() {
		t.Errorf("defaults: status=%q paidAt=%v", f.Status, f.PaidAt)
	}
}

func TestStore_ListByUser_SortedByPeriod(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	store := feestore.New(db)

	user := primitive.NewObjectID()
	fx.CreateFee(ctx, user, 100, 12, 2023, "paid")
	fx.CreateFee(ctx, user, 100, 2, 2024, "paid")
	fx.CreateFee(ctx, user, 100, 1, 2024, "paid")
	fx.CreateFee(ctx, primitive.NewObjectID(), 100, 5, 2024, "paid")

	got, err := store.ListByUser(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d fees, want 3", len(got))
	}
	want := [][2]int{{2024, 2}, {2024, 1}, {2023, 12}}
	for i, w := range want {
		if got[i].Year != w[0] || got[i].Month != w[1] {
			t.Errorf("fee %d: got %d/%d, want %d/%d", i, got[i].Year, got[i].Month, w[0], w[1])
		}
	}
}

func TestStore_ListFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	store := feestore.New(db)

	u := primitive.NewObjectID()
	fx.CreateFee(ctx, u, 100, 1, 2024, "paid")
	fx.CreateFee(ctx, u, 100, 2, 2024, "pending")
	fx.CreateFee(ctx, primitive.NewObjectID(), 100, 1, 2023, "paid")

	got, _ := store.List(ctx, feestore.Filter{Year: 2024})
	if len(got) != 2 {
		t.Errorf("year: got %d", len(got))
	}
	got, _ = store.List(ctx, feestore.Filter{Month: 1, Status: "paid"})
	if len(got) != 2 {
		t.Errorf("month+status: got %d", len(got))
	}
	got, _ = store.List(ctx, feestore.Filter{UserID: &u, Status: "pending"})
	if len(got) != 1 {
		t.Errorf("user+status: got %d", len(got))
	}
}

func TestStore_Transition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	store := feestore.New(db)

	f := fx.CreateFee(ctx, primitive.NewObjectID(), 100, 1, 2024, "pending")
	got, err := store.Transition(ctx, f.ID, "paid")
	if err != nil || got.Status != "paid" {
		t.Fatalf("pending->paid: %v %q", err, got.Status)
	}
	if _, err := store.Transition(ctx, f.ID, "failed"); !errors.Is(err, status.ErrTerminal) {
		t.Errorf("paid->failed: got %v", err)
	}
}
