// internal/app/store/sitecontent/sitecontentstore.go
package sitecontentstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "site_content"

// ErrBadKey is returned for data keys Mongo cannot store as field names.
var ErrBadKey = errors.New(`content keys must be non-empty and may not contain "." or start with "$"`)

type Store struct {
	c *mongo.Collection
}

// New decodes nested documents as maps so data round-trips to JSON as
// objects rather than key/value arrays.
func New(db *mongo.Database) *Store {
	opts := options.Collection().SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	return &Store{c: db.Collection(Collection, opts)}
}

func checkKeys(data map[string]any) error {
	for k := range data {
		if k == "" || strings.Contains(k, ".") || strings.HasPrefix(k, "$") {
			return ErrBadKey
		}
	}
	return nil
}

// Get returns the section's data, or an empty map when the section has
// never been written.
func (s *Store) Get(ctx context.Context, section string) (map[string]any, error) {
	var sc models.SiteContent
	err := s.c.FindOne(ctx, bson.M{"section": section}).Decode(&sc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	if sc.Data == nil {
		sc.Data = map[string]any{}
	}
	return sc.Data, nil
}

func (s *Store) upsert(ctx context.Context, section string, set, onInsert bson.M) (models.SiteContent, error) {
	now := time.Now().UTC()
	set["updated_at"] = now
	onInsert["_id"] = primitive.NewObjectID()
	onInsert["section"] = section
	onInsert["created_at"] = now

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var sc models.SiteContent
	err := s.c.FindOneAndUpdate(ctx, bson.M{"section": section},
		bson.M{"$set": set, "$setOnInsert": onInsert}, opts).Decode(&sc)
	if err != nil {
		return models.SiteContent{}, err
	}
	if sc.Data == nil {
		sc.Data = map[string]any{}
	}
	return sc, nil
}

// Patch merges data into the section: keys present in data overwrite,
// other stored keys survive. The section is created if missing.
func (s *Store) Patch(ctx context.Context, section string, data map[string]any) (models.SiteContent, error) {
	if err := checkKeys(data); err != nil {
		return models.SiteContent{}, err
	}
	set := bson.M{}
	for k, v := range data {
		set["data."+k] = v
	}
	onInsert := bson.M{}
	if len(data) == 0 {
		onInsert["data"] = bson.M{}
	}
	return s.upsert(ctx, section, set, onInsert)
}

// Replace overwrites the section's data with data.
func (s *Store) Replace(ctx context.Context, section string, data map[string]any) (models.SiteContent, error) {
	if err := checkKeys(data); err != nil {
		return models.SiteContent{}, err
	}
	if data == nil {
		data = map[string]any{}
	}
	return s.upsert(ctx, section, bson.M{"data": data}, bson.M{})
}
