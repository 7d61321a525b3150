// internal/app/store/fees/feestore.go
package feestore

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

// Collection is the fees collection name.
const Collection = "fees"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create records a fee. Status defaults to paid and PaidAt to now.
func (s *Store) Create(ctx context.Context, f models.Fee) (models.Fee, error) {
	now := time.Now().UTC()
	f.ID = primitive.NewObjectID()
	if f.Status == "" {
		f.Status = status.FeePaid
	}
	if f.PaidAt.IsZero() {
		f.PaidAt = now
	}
	f.CreatedAt = now
	f.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.Fee{}, err
	}
	return f, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Fee, error) {
	var f models.Fee
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	return f, err
}

// Filter narrows List. Zero fields apply no constraint.
type Filter struct {
	UserID *primitive.ObjectID
	Month  int
	Year   int
	Status string
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.UserID != nil {
		q["user_id"] = *f.UserID
	}
	if f.Month != 0 {
		q["month"] = f.Month
	}
	if f.Year != 0 {
		q["year"] = f.Year
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}

func (s *Store) find(ctx context.Context, q bson.M, sort bson.D) ([]models.Fee, error) {
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Fee{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns matching fees, most recently recorded first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Fee, error) {
	return s.find(ctx, f.query(), bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
}

// ListByUser returns a member's fees by period, latest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Fee, error) {
	return s.find(ctx, bson.M{"user_id": userID},
		bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}, {Key: "_id", Value: -1}})
}

// Transition moves a pending fee to paid or failed, atomically.
func (s *Store) Transition(ctx context.Context, id primitive.ObjectID, to string) (models.Fee, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Fee{}, err
	}
	if err := status.CanTransitionFee(cur.Status, to); err != nil {
		return models.Fee{}, err
	}

	now := time.Now().UTC()
	set := bson.M{"status": to, "updated_at": now}
	if to == status.FeePaid {
		set["paid_at"] = now
	}
	var f models.Fee
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": status.FeePending},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Fee{}, status.ErrTerminal
	}
	if err != nil {
		return models.Fee{}, err
	}
	return f, nil
}
