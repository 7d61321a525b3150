package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/indexes"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
	"github.com/mejbaurrahman/JHF/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newStore(t *testing.T) (*userstore.Store, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatal(err)
	}
	return userstore.New(db), db
}

func TestStore_CreateNormalizes(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		Name:         "  Abdul   Karim ",
		Email:        " Karim@Example.COM ",
		Phone:        "017 0000 0000",
		PasswordHash: "hash",
		IsActive:     true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.Name != "Abdul Karim" || u.Email != "karim@example.com" || u.Phone != "01700000000" {
		t.Errorf("not normalized: %q %q %q", u.Name, u.Email, u.Phone)
	}
	if u.Role != role.User || u.MembershipStatus != models.MembershipPending {
		t.Errorf("defaults: role=%q membership=%q", u.Role, u.MembershipStatus)
	}

	got, err := store.GetByPhone(ctx, "01700000000")
	if err != nil || got.ID != u.ID {
		t.Fatalf("GetByPhone: %v", err)
	}
}

func TestStore_CreateDuplicate(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{Name: "A", Phone: "1", Email: "a@x.com", PasswordHash: "h"}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, models.User{Name: "B", Phone: "1", PasswordHash: "h"}); !errors.Is(err, userstore.ErrDuplicate) {
		t.Errorf("duplicate phone: got %v", err)
	}
	if _, err := store.Create(ctx, models.User{Name: "C", Phone: "2", Email: "A@X.com", PasswordHash: "h"}); !errors.Is(err, userstore.ErrDuplicate) {
		t.Errorf("duplicate email: got %v", err)
	}
	// No email on either side is fine.
	if _, err := store.Create(ctx, models.User{Name: "D", Phone: "3", PasswordHash: "h"}); err != nil {
		t.Errorf("second user without email: %v", err)
	}

	taken, err := store.ExistsByPhoneOrEmail(ctx, "9", "a@x.com")
	if err != nil || !taken {
		t.Errorf("exists by email: %v %v", taken, err)
	}
	taken, _ = store.ExistsByPhoneOrEmail(ctx, "9", "")
	if taken {
		t.Error("unused phone reported taken")
	}
}

func TestStore_CreateRejectsUnknownRole(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{Name: "A", Phone: "1", PasswordHash: "h", Role: "superadmin"}); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestStore_ListSortedByName(t *testing.T) {
	store, db := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	fx.CreateUser(ctx, "zakir", "1", "user", "pw")
	fx.CreateUser(ctx, "Amina", "2", "user", "pw")
	fx.CreateUser(ctx, "habib", "3", "user", "pw")

	list, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"Amina", "habib", "zakir"} {
		if list[i].Name != want {
			t.Errorf("position %d: got %q, want %q", i, list[i].Name, want)
		}
	}
}

func TestStore_UpdateRoleAndStatus(t *testing.T) {
	store, db := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	u := fx.CreateUser(ctx, "A", "1", "user", "pw")

	got, err := store.UpdateRole(ctx, u.ID, role.NewCustom("Treasurer"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Role != role.Other || got.CustomRole != "Treasurer" {
		t.Errorf("custom role: %q %q", got.Role, got.CustomRole)
	}
	if !got.RoleValue().IsCustom() {
		t.Error("RoleValue should be custom")
	}

	got, err = store.UpdateRole(ctx, u.ID, role.NewAdvisor())
	if err != nil || got.Role != role.Advisor || got.CustomRole != "" {
		t.Errorf("advisor: %v %q %q", err, got.Role, got.CustomRole)
	}

	inactive := false
	got, err = store.SetStatus(ctx, u.ID, &inactive, models.MembershipRejected)
	if err != nil || got.IsActive || got.MembershipStatus != models.MembershipRejected {
		t.Errorf("status: %v %+v", err, got)
	}

	if _, err := store.UpdateRole(ctx, primitive.NewObjectID(), role.NewAdmin()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing user: got %v", err)
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	store, db := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	u := fx.CreateUser(ctx, "A", "1", "user", "pw")
	fx.CreateUser(ctx, "B", "2", "user", "pw")

	bio := "Volunteer"
	name := "  Abdullah "
	got, err := store.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{Name: &name, Bio: &bio})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Abdullah" || got.Bio != "Volunteer" || got.Phone != "1" {
		t.Errorf("profile: %+v", got)
	}

	taken := "2"
	if _, err := store.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{Phone: &taken}); !errors.Is(err, userstore.ErrDuplicate) {
		t.Errorf("phone clash: got %v", err)
	}
}

func TestStore_SummariesAndFilterExisting(t *testing.T) {
	store, db := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	a := fx.CreateUser(ctx, "A", "1", "user", "pw")
	b := fx.CreateUser(ctx, "B", "2", "user", "pw")
	ghost := primitive.NewObjectID()

	sums, err := store.Summaries(ctx, []primitive.ObjectID{a.ID, ghost})
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 1 || sums[a.ID].Name != "A" {
		t.Errorf("summaries: %v", sums)
	}

	ids, err := store.FilterExisting(ctx, []primitive.ObjectID{b.ID, ghost, a.ID, b.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != b.ID || ids[1] != a.ID {
		t.Errorf("filter existing: %v", ids)
	}
}

func TestStore_EnsureAdmin(t *testing.T) {
	store, db := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	created, err := store.EnsureAdmin(ctx, "01900000000", "Admin", "hash")
	if err != nil || !created {
		t.Fatalf("first seed: %v %v", created, err)
	}
	created, err = store.EnsureAdmin(ctx, "01900000000", "Admin", "other-hash")
	if err != nil || created {
		t.Fatalf("second seed: %v %v", created, err)
	}
	u, err := store.GetByPhone(ctx, "01900000000")
	if err != nil {
		t.Fatal(err)
	}
	if u.PasswordHash != "hash" {
		t.Error("reseeding overwrote the password")
	}

	member := fx.CreateUser(ctx, "M", "01800000000", "user", "pw")
	if _, err := store.EnsureAdmin(ctx, member.Phone, "M", "x"); err != nil {
		t.Fatal(err)
	}
	promoted, _ := store.GetByID(ctx, member.ID)
	if promoted.Role != role.Admin {
		t.Errorf("existing user not promoted: %q", promoted.Role)
	}
}

func TestStore_PromoteToAdmin(t *testing.T) {
	store, db := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	if ok, err := store.PromoteToAdmin(ctx, "01911111111"); err != nil || ok {
		t.Fatalf("unknown phone: %v %v", ok, err)
	}
	member := fx.CreateUser(ctx, "M", "01811111111", "advisor", "pw")
	if ok, err := store.PromoteToAdmin(ctx, member.Phone); err != nil || !ok {
		t.Fatalf("promote: %v %v", ok, err)
	}
	u, _ := store.GetByID(ctx, member.ID)
	if u.Role != role.Admin || !u.IsActive {
		t.Errorf("got role %q active %v", u.Role, u.IsActive)
	}
}

func TestFetcher(t *testing.T) {
	_, db := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	fetcher := userstore.NewFetcher(db)

	u := fx.CreateUser(ctx, "Advisor", "1", "advisor", "pw")
	id, err := fetcher.FetchUser(ctx, u.ID.Hex())
	if err != nil || id == nil {
		t.Fatalf("fetch: %v %v", id, err)
	}
	if id.Role.Kind() != role.KindAdvisor {
		t.Errorf("role: %v", id.Role)
	}

	if id, err := fetcher.FetchUser(ctx, "not-an-id"); id != nil || err != nil {
		t.Errorf("bad id: %v %v", id, err)
	}
	if id, err := fetcher.FetchUser(ctx, primitive.NewObjectID().Hex()); id != nil || err != nil {
		t.Errorf("missing: %v %v", id, err)
	}

	inactive := false
	if _, err := userstore.New(db).SetStatus(ctx, u.ID, &inactive, ""); err != nil {
		t.Fatal(err)
	}
	if id, err := fetcher.FetchUser(ctx, u.ID.Hex()); id != nil || err != nil {
		t.Errorf("inactive: %v %v", id, err)
	}
}
