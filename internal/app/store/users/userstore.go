package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/mejbaurrahman/JHF/internal/app/system/normalize"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the users collection name.
const Collection = "users"

var (
	// ErrDuplicate is returned when the phone or email is already registered.
	ErrDuplicate = errors.New("User with this phone or email already exists")
	errBadRole   = errors.New(`role must be "admin"|"user"|"advisor"|"other"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByPhone looks up the login phone. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"phone": normalize.Phone(phone)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistsByPhoneOrEmail reports whether either identifier is taken.
// An empty email only checks the phone.
func (s *Store) ExistsByPhoneOrEmail(ctx context.Context, phone, email string) (bool, error) {
	or := bson.A{bson.M{"phone": normalize.Phone(phone)}}
	if e := normalize.Email(email); e != "" {
		or = append(or, bson.M{"email": e})
	}
	n, err := s.c.CountDocuments(ctx, bson.M{"$or": or}, options.Count().SetLimit(1))
	return n > 0, err
}

// Create normalizes and inserts u. Role defaults to user, membership to
// pending, IsActive must be set by the caller.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	u.Phone = normalize.Phone(u.Phone)
	u.Role = normalize.Role(u.Role)
	if u.Role == "" {
		u.Role = role.User
	}
	if !role.IsValidStored(u.Role) {
		return models.User{}, errBadRole
	}
	if u.Role != role.Other {
		u.CustomRole = ""
	}
	if u.MembershipStatus == "" {
		u.MembershipStatus = models.MembershipPending
	}

	now := time.Now().UTC()
	if u.JoinDate.IsZero() {
		u.JoinDate = now
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// List returns every user sorted by name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a user. Returns mongo.ErrNoDocuments if nothing matched.
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

// Count returns the number of users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

func (s *Store) updateReturning(ctx context.Context, id primitive.ObjectID, set, unset bson.M) (models.User, error) {
	set["updated_at"] = time.Now().UTC()
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateRole sets the stored role and custom label.
func (s *Store) UpdateRole(ctx context.Context, id primitive.ObjectID, r role.Role) (models.User, error) {
	return s.updateReturning(ctx, id, bson.M{"role": r.Stored(), "custom_role": r.Label()}, nil)
}

// ProfileUpdate carries self-service changes. Nil fields are left alone.
type ProfileUpdate struct {
	Name         *string
	Email        *string
	Phone        *string
	PasswordHash *string
	ProfileImage *string
	Address      *string
	Occupation   *string
	Bio          *string
}

// UpdateProfile applies the non-nil fields of upd.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (models.User, error) {
	set, unset := bson.M{}, bson.M{}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Email != nil {
		// The unique email index is sparse; an empty string would collide.
		if e := normalize.Email(*upd.Email); e != "" {
			set["email"] = e
		} else {
			unset["email"] = ""
		}
	}
	if upd.Phone != nil {
		set["phone"] = normalize.Phone(*upd.Phone)
	}
	if upd.PasswordHash != nil {
		set["password_hash"] = *upd.PasswordHash
	}
	if upd.ProfileImage != nil {
		set["profile_image"] = *upd.ProfileImage
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Occupation != nil {
		set["occupation"] = *upd.Occupation
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	return s.updateReturning(ctx, id, set, unset)
}

// SetStatus updates the activation flag and/or membership status.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, isActive *bool, membership string) (models.User, error) {
	set := bson.M{}
	if isActive != nil {
		set["is_active"] = *isActive
	}
	if membership != "" {
		set["membership_status"] = membership
	}
	return s.updateReturning(ctx, id, set, nil)
}

var summaryProjection = bson.M{"_id": 1, "name": 1, "email": 1, "phone": 1}

// Summaries returns name/email/phone for the given ids, keyed by id.
// Missing ids are absent from the map.
func (s *Store) Summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(summaryProjection))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var us models.UserSummary
		if err := cur.Decode(&us); err != nil {
			return nil, err
		}
		out[us.ID] = us
	}
	return out, cur.Err()
}

// FilterExisting returns the subset of ids that belong to existing users,
// preserving input order and dropping duplicates.
func (s *Store) FilterExisting(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	found, err := s.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]primitive.ObjectID, 0, len(found))
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if _, ok := found[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

// EnsureAdmin creates an active admin with phone if no user holds it, or
// promotes the existing holder to admin. It reports whether a new user was
// inserted.
func (s *Store) EnsureAdmin(ctx context.Context, phone, name, passwordHash string) (bool, error) {
	phone = normalize.Phone(phone)
	name = normalize.Name(name)
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"phone": phone},
		bson.M{
			"$set": bson.M{
				"role":        role.Admin,
				"custom_role": "",
				"is_active":   true,
				"updated_at":  now,
			},
			"$setOnInsert": bson.M{
				"_id":               primitive.NewObjectID(),
				"name":              name,
				"name_ci":           text.Fold(name),
				"phone":             phone,
				"password_hash":     passwordHash,
				"membership_status": models.MembershipActive,
				"join_date":         now,
				"created_at":        now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// PromoteToAdmin makes the existing holder of phone an active admin. It
// reports false when no user has that phone.
func (s *Store) PromoteToAdmin(ctx context.Context, phone string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"phone": normalize.Phone(phone)},
		bson.M{"$set": bson.M{
			"role":        role.Admin,
			"custom_role": "",
			"is_active":   true,
			"updated_at":  time.Now().UTC(),
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
