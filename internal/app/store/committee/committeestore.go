// internal/app/store/committee/committeestore.go
package committeestore

import (
	"context"
	"time"

	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "committee_members"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) Create(ctx context.Context, m models.CommitteeMember) (models.CommitteeMember, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.CommitteeMember{}, err
	}
	return m, nil
}

// List returns members by display order.
func (s *Store) List(ctx context.Context) ([]models.CommitteeMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.CommitteeMember{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type Update struct {
	Name     *string
	RoleKey  *string
	ImageURL *string
	Phone    *string
	Order    *int
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (models.CommitteeMember, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.RoleKey != nil {
		set["role_key"] = *upd.RoleKey
	}
	if upd.ImageURL != nil {
		set["image_url"] = *upd.ImageURL
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Order != nil {
		set["order"] = *upd.Order
	}

	var m models.CommitteeMember
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&m)
	return m, err
}

// Delete returns mongo.ErrNoDocuments if nothing matched.
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
