package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert into %s: %v", coll, err)
	}
}

// CreateUser inserts an active user whose password is password.
func (f *Fixtures) CreateUser(ctx context.Context, name, phone, role, password string) models.User {
	f.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	u := models.User{
		ID:               primitive.NewObjectID(),
		Name:             name,
		NameCI:           text.Fold(name),
		Phone:            phone,
		PasswordHash:     string(hash),
		Role:             role,
		IsActive:         true,
		MembershipStatus: models.MembershipActive,
		JoinDate:         now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateEvent inserts a public event with the given slug and status.
func (f *Fixtures) CreateEvent(ctx context.Context, title, slug, status string, start time.Time) models.Event {
	f.t.Helper()
	now := time.Now().UTC()
	e := models.Event{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Slug:       slug,
		Type:       "other",
		Status:     status,
		StartDate:  &start,
		IsPublic:   true,
		ManagerIDs: []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "events", e)
	return e
}

// CreateDonation inserts a donation with the given amount and status.
func (f *Fixtures) CreateDonation(ctx context.Context, donor string, amount float64, status string, userID, eventID *primitive.ObjectID) models.Donation {
	f.t.Helper()
	now := time.Now().UTC()
	d := models.Donation{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		EventID:       eventID,
		DonorName:     donor,
		Amount:        amount,
		PaymentMethod: "cash",
		Status:        status,
		DonationDate:  now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.insert(ctx, "donations", d)
	return d
}

// CreateFee inserts a fee for userID.
func (f *Fixtures) CreateFee(ctx context.Context, userID primitive.ObjectID, amount float64, month, year int, status string) models.Fee {
	f.t.Helper()
	now := time.Now().UTC()
	fee := models.Fee{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		Amount:        amount,
		Month:         month,
		Year:          year,
		PaymentMethod: "cash",
		Status:        status,
		PaidAt:        now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.insert(ctx, "fees", fee)
	return fee
}

// CreateExpense inserts an expense.
func (f *Fixtures) CreateExpense(ctx context.Context, title string, amount float64) models.Expense {
	f.t.Helper()
	now := time.Now().UTC()
	e := models.Expense{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Amount:    amount,
		Date:      now,
		Category:  models.DefaultExpenseCategory,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "expenses", e)
	return e
}

// CreateNotification inserts an unread notification for userID.
func (f *Fixtures) CreateNotification(ctx context.Context, userID primitive.ObjectID, msg string) models.Notification {
	f.t.Helper()
	n := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Message:   msg,
		Type:      models.NotificationInfo,
		CreatedAt: time.Now().UTC(),
	}
	f.insert(ctx, "notifications", n)
	return n
}
