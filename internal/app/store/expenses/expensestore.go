// internal/app/store/expenses/expensestore.go
package expensestore

import (
	"context"
	"time"

	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the expenses collection name.
const Collection = "expenses"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create records an expense. Category defaults to "Other", date to now.
func (s *Store) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	if e.Category == "" {
		e.Category = models.DefaultExpenseCategory
	}
	if e.Date.IsZero() {
		e.Date = now
	}
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

// List returns every expense, latest date first.
func (s *Store) List(ctx context.Context) ([]models.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Expense{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update carries edits. Nil fields are left alone.
type Update struct {
	Title       *string
	Amount      *float64
	Date        *time.Time
	Category    *string
	Description *string
	EventID     *primitive.ObjectID
}

// Update applies upd. Returns mongo.ErrNoDocuments if id is unknown.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (models.Expense, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Amount != nil {
		set["amount"] = *upd.Amount
	}
	if upd.Date != nil {
		set["date"] = upd.Date.UTC()
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.EventID != nil {
		set["event_id"] = *upd.EventID
	}

	var e models.Expense
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&e)
	return e, err
}

// Delete removes an expense. Returns mongo.ErrNoDocuments if nothing matched.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
