// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/mejbaurrahman/JHF/internal/app/system/slug"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the events collection name.
const Collection = "events"

// createAttempts bounds regeneration after a concurrent slug collision.
const createAttempts = 3

// ErrDuplicateSlug is returned when another event already holds the slug.
var ErrDuplicateSlug = errors.New("Slug already in use")

type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection), now: time.Now}
}

// SlugExists reports whether slug is taken by an event other than exclude.
func (s *Store) SlugExists(ctx context.Context, sl string, exclude *primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": sl}
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}
	n, err := s.c.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

func applyDefaults(e *models.Event) {
	if e.Type == "" {
		e.Type = status.TypeOther
	}
	if e.Status == "" {
		e.Status = status.EventUpcoming
	}
	if e.ManagerIDs == nil {
		e.ManagerIDs = []primitive.ObjectID{}
	}
}

// Create inserts e with the given slug. A taken slug yields ErrDuplicateSlug.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	applyDefaults(&e)
	now := s.now().UTC()
	e.ID = primitive.NewObjectID()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Event{}, ErrDuplicateSlug
		}
		return models.Event{}, err
	}
	return e, nil
}

// CreateUnique derives a free slug from base (already normalized) and
// inserts e under it. A unique-index collision from a concurrent create
// regenerates the slug, up to createAttempts times.
func (s *Store) CreateUnique(ctx context.Context, e models.Event, base string) (models.Event, error) {
	exists := func(ctx context.Context, candidate string) (bool, error) {
		return s.SlugExists(ctx, candidate, nil)
	}
	var lastErr error
	for i := 0; i < createAttempts; i++ {
		sl, err := slug.Unique(ctx, base, exists, s.now)
		if err != nil {
			return models.Event{}, err
		}
		e.Slug = sl
		created, err := s.Create(ctx, e)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, ErrDuplicateSlug) {
			return models.Event{}, err
		}
		lastErr = err
	}
	return models.Event{}, lastErr
}

// GetByID loads an event by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var e models.Event
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	return e, err
}

// GetBySlug loads an event by slug.
func (s *Store) GetBySlug(ctx context.Context, sl string) (models.Event, error) {
	var e models.Event
	err := s.c.FindOne(ctx, bson.M{"slug": sl}).Decode(&e)
	return e, err
}

// Find resolves a path parameter: slug first, then ObjectID when the
// parameter is 24 hex characters.
func (s *Store) Find(ctx context.Context, slugOrID string) (models.Event, error) {
	e, err := s.GetBySlug(ctx, slugOrID)
	if err == nil || !errors.Is(err, mongo.ErrNoDocuments) {
		return e, err
	}
	oid, idErr := primitive.ObjectIDFromHex(slugOrID)
	if idErr != nil {
		return models.Event{}, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, oid)
}

var byStart = options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}})

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, filter, byStart)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Event{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPublic returns public events sorted by start date. An empty st
// applies no status filter.
func (s *Store) ListPublic(ctx context.Context, st string) ([]models.Event, error) {
	filter := bson.M{"is_public": true}
	if st != "" {
		filter["status"] = st
	}
	return s.find(ctx, filter)
}

// Upcoming returns public events that are upcoming or ongoing.
func (s *Store) Upcoming(ctx context.Context) ([]models.Event, error) {
	return s.find(ctx, bson.M{
		"is_public": true,
		"status":    bson.M{"$in": status.ActiveEventStatuses},
	})
}

// Update carries admin edits. Nil fields are left alone.
type Update struct {
	Title           *string
	Slug            *string
	Type            *string
	Description     *string
	Location        *string
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	EstimatedBudget *float64
	BannerURL       *string
	IsPublic        *bool
	ManagerIDs      []primitive.ObjectID
}

func (u Update) set() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Slug != nil {
		set["slug"] = *u.Slug
	}
	if u.Type != nil {
		set["type"] = *u.Type
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.StartDate != nil {
		set["start_date"] = u.StartDate.UTC()
	}
	if u.EndDate != nil {
		set["end_date"] = u.EndDate.UTC()
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.EstimatedBudget != nil {
		set["estimated_budget"] = *u.EstimatedBudget
	}
	if u.BannerURL != nil {
		set["banner_url"] = *u.BannerURL
	}
	if u.IsPublic != nil {
		set["is_public"] = *u.IsPublic
	}
	if u.ManagerIDs != nil {
		set["manager_ids"] = u.ManagerIDs
	}
	return set
}

// Update applies upd and returns the updated event. A slug held by another
// event yields ErrDuplicateSlug.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (models.Event, error) {
	if upd.Slug != nil {
		taken, err := s.SlugExists(ctx, *upd.Slug, &id)
		if err != nil {
			return models.Event{}, err
		}
		if taken {
			return models.Event{}, ErrDuplicateSlug
		}
	}
	set := upd.set()
	set["updated_at"] = s.now().UTC()

	var e models.Event
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&e)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Event{}, ErrDuplicateSlug
		}
		return models.Event{}, err
	}
	return e, nil
}

// SetStatus sets any valid status regardless of the current one.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, st string) (models.Event, error) {
	return s.Update(ctx, id, Update{Status: &st})
}

// Delete removes an event. Returns mongo.ErrNoDocuments if nothing matched.
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

// Summaries returns id -> summary for the given event ids.
func (s *Store) Summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.EventSummary, error) {
	out := make(map[primitive.ObjectID]models.EventSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1, "title": 1, "slug": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var es models.EventSummary
		if err := cur.Decode(&es); err != nil {
			return nil, err
		}
		out[es.ID] = es
	}
	return out, cur.Err()
}
