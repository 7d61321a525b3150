// internal/app/store/gallery/gallerystore.go
package gallerystore

import (
	"context"
	"time"

	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "gallery_items"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts a gallery item. Category defaults to "General", date to now.
func (s *Store) Create(ctx context.Context, g models.GalleryItem) (models.GalleryItem, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	if g.Category == "" {
		g.Category = models.DefaultGalleryCategory
	}
	if g.Date.IsZero() {
		g.Date = now
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.GalleryItem{}, err
	}
	return g, nil
}

// List returns items newest first.
func (s *Store) List(ctx context.Context) ([]models.GalleryItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.GalleryItem{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an item and returns it so the caller can drop the stored
// image. Returns mongo.ErrNoDocuments if nothing matched.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.GalleryItem, error) {
	var g models.GalleryItem
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&g)
	return g, err
}
