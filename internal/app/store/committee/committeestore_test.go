package committeestore_test

import (
	"errors"
	"testing"

	committeestore "github.com/mejbaurrahman/JHF/internal/app/store/committee"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"github.com/mejbaurrahman/JHF/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_ListByOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := committeestore.New(db)

	for _, m := range []models.CommitteeMember{
		{Name: "Secretary", RoleKey: "secretary", Order: 2},
		{Name: "President", RoleKey: "president", Order: 0},
		{Name: "Treasurer", RoleKey: "treasurer", Order: 1},
	} {
		if _, err := store.Create(ctx, m); err != nil {
			t.Fatal(err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"president", "treasurer", "secretary"} {
		if list[i].RoleKey != want {
			t.Errorf("position %d: got %q, want %q", i, list[i].RoleKey, want)
		}
	}

	order := 5
	updated, err := store.Update(ctx, list[0].ID, committeestore.Update{Order: &order})
	if err != nil || updated.Order != 5 {
		t.Fatalf("update: %v %d", err, updated.Order)
	}

	if err := store.Delete(ctx, list[0].ID); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, list[0].ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("second delete: got %v", err)
	}
}
