// internal/app/store/donations/donationstore.go
package donationstore

import (
	"context"
	"errors"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the donations collection name.
const Collection = "donations"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts d. Status defaults to pending and the donation date to now.
func (s *Store) Create(ctx context.Context, d models.Donation) (models.Donation, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	if d.Status == "" {
		d.Status = status.DonationPending
	}
	if d.DonationDate.IsZero() {
		d.DonationDate = now
	}
	d.CreatedAt = now
	d.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Donation{}, err
	}
	return d, nil
}

// GetByID loads a donation by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	var d models.Donation
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	return d, err
}

// Filter narrows List. Zero fields apply no constraint.
type Filter struct {
	EventID *primitive.ObjectID
	UserID  *primitive.ObjectID
	Status  string
	From    *time.Time
	To      *time.Time
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.EventID != nil {
		q["event_id"] = *f.EventID
	}
	if f.UserID != nil {
		q["user_id"] = *f.UserID
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.From != nil || f.To != nil {
		rng := bson.M{}
		if f.From != nil {
			rng["$gte"] = f.From.UTC()
		}
		if f.To != nil {
			rng["$lte"] = f.To.UTC()
		}
		q["donation_date"] = rng
	}
	return q
}

// List returns matching donations, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Donation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "donation_date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, f.query(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Donation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns the donations attributed to userID, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Donation, error) {
	return s.List(ctx, Filter{UserID: &userID})
}

// Transition moves a pending donation to confirmed or failed. The update
// filter pins status to pending, so two concurrent transitions cannot both
// succeed; the loser sees status.ErrTerminal.
func (s *Store) Transition(ctx context.Context, id primitive.ObjectID, to string) (models.Donation, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Donation{}, err
	}
	if err := status.CanTransitionDonation(cur.Status, to); err != nil {
		return models.Donation{}, err
	}

	var d models.Donation
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": status.DonationPending},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Donation{}, status.ErrTerminal
	}
	if err != nil {
		return models.Donation{}, err
	}
	return d, nil
}
