// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/mejbaurrahman/JHF/internal/app/system/status"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. Servers without collMod support log and skip.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("events", eventsSchema())
	ensure("donations", donationsSchema())
	ensure("fees", feesSchema())
	ensure("expenses", expensesSchema())
	ensure("committee_members", committeeSchema())
	ensure("gallery_items", gallerySchema())
	ensure("site_content", siteContentSchema())
	ensure("notifications", notificationsSchema())

	// Written only by the audit logger; no validator.
	ensure("audit_events", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

var money = bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0}

func enum(vals []string) bson.M {
	a := make(bson.A, 0, len(vals))
	for _, v := range vals {
		a = append(a, v)
	}
	return bson.M{"enum": a}
}

func object(required bson.A, props bson.M) bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   required,
			"properties": props,
		},
	}
}

func usersSchema() bson.M {
	return object(bson.A{"name", "phone", "password_hash", "role"}, bson.M{
		"name":              nonBlank,
		"name_ci":           bson.M{"bsonType": "string"},
		"phone":             nonBlank,
		"email":             bson.M{"bsonType": "string"},
		"password_hash":     nonBlank,
		"role":              bson.M{"enum": bson.A{"admin", "user", "advisor", "other"}},
		"is_active":         bson.M{"bsonType": "bool"},
		"membership_status": bson.M{"enum": bson.A{"pending", "active", "rejected"}},
	})
}

func eventsSchema() bson.M {
	return object(bson.A{"title", "slug", "type"}, bson.M{
		"title":            nonBlank,
		"slug":             bson.M{"bsonType": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"},
		"type":             enum(status.EventTypes),
		"status":           enum(status.EventStatuses),
		"estimated_budget": money,
		"is_public":        bson.M{"bsonType": "bool"},
		"manager_ids":      bson.M{"bsonType": "array", "items": bson.M{"bsonType": "objectId"}},
	})
}

func donationsSchema() bson.M {
	return object(bson.A{"donor_name", "amount", "payment_method", "status"}, bson.M{
		"donor_name":     nonBlank,
		"amount":         money,
		"payment_method": enum(status.DonationMethods),
		"status":         enum(status.DonationStatuses),
		"user_id":        bson.M{"bsonType": "objectId"},
		"event_id":       bson.M{"bsonType": "objectId"},
	})
}

func feesSchema() bson.M {
	return object(bson.A{"user_id", "amount", "month", "year", "payment_method", "status"}, bson.M{
		"user_id":        bson.M{"bsonType": "objectId"},
		"amount":         money,
		"month":          bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1, "maximum": 12},
		"year":           bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 2000},
		"payment_method": enum(status.FeeMethods),
		"status":         enum(status.FeeStatuses),
	})
}

func expensesSchema() bson.M {
	return object(bson.A{"title", "amount", "category"}, bson.M{
		"title":    nonBlank,
		"amount":   money,
		"category": nonBlank,
		"date":     bson.M{"bsonType": "date"},
	})
}

func committeeSchema() bson.M {
	return object(bson.A{"name", "role_key"}, bson.M{
		"name":     nonBlank,
		"role_key": nonBlank,
		"order":    bson.M{"bsonType": bson.A{"int", "long"}},
	})
}

func gallerySchema() bson.M {
	return object(bson.A{"title", "image_url"}, bson.M{
		"title":     nonBlank,
		"image_url": nonBlank,
		"category":  bson.M{"bsonType": "string"},
	})
}

func siteContentSchema() bson.M {
	return object(bson.A{"section", "data"}, bson.M{
		"section": nonBlank,
		"data":    bson.M{"bsonType": "object"},
	})
}

func notificationsSchema() bson.M {
	return object(bson.A{"user_id", "message", "type", "is_read"}, bson.M{
		"user_id": bson.M{"bsonType": "objectId"},
		"message": nonBlank,
		"type":    bson.M{"enum": bson.A{"info", "success", "warning", "error"}},
		"is_read": bson.M{"bsonType": "bool"},
	})
}
