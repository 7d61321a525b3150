// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each collection's index set is reconciled
idempotently; problems are aggregated so every failure is visible at once.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, spec := range specs() {
		if err := ensureIndexSet(ctx, db.Collection(spec.coll), spec.models); err != nil {
			problems = append(problems, spec.coll+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type collectionSpec struct {
	coll   string
	models []mongo.IndexModel
}

func idx(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

func unique(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name).SetUnique(true)}
}

func specs() []collectionSpec {
	return []collectionSpec{
		{"users", []mongo.IndexModel{
			unique("uniq_users_phone", bson.D{{Key: "phone", Value: 1}}),
			// email is optional; sparse keeps users without one out of the index
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("uniq_users_email").SetUnique(true).SetSparse(true)},
			idx("idx_users_name_ci", bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}),
		}},
		{"events", []mongo.IndexModel{
			unique("uniq_events_slug", bson.D{{Key: "slug", Value: 1}}),
			idx("idx_events_public_start", bson.D{{Key: "is_public", Value: 1}, {Key: "start_date", Value: 1}}),
			idx("idx_events_status", bson.D{{Key: "status", Value: 1}}),
		}},
		{"donations", []mongo.IndexModel{
			idx("idx_donations_date", bson.D{{Key: "donation_date", Value: -1}}),
			idx("idx_donations_user_date", bson.D{{Key: "user_id", Value: 1}, {Key: "donation_date", Value: -1}}),
			idx("idx_donations_event_date", bson.D{{Key: "event_id", Value: 1}, {Key: "donation_date", Value: -1}}),
			idx("idx_donations_status", bson.D{{Key: "status", Value: 1}}),
		}},
		{"fees", []mongo.IndexModel{
			idx("idx_fees_user_period", bson.D{{Key: "user_id", Value: 1}, {Key: "year", Value: -1}, {Key: "month", Value: -1}}),
			idx("idx_fees_created", bson.D{{Key: "created_at", Value: -1}}),
			idx("idx_fees_status", bson.D{{Key: "status", Value: 1}}),
		}},
		{"expenses", []mongo.IndexModel{
			idx("idx_expenses_date", bson.D{{Key: "date", Value: -1}}),
		}},
		{"committee_members", []mongo.IndexModel{
			idx("idx_committee_order", bson.D{{Key: "order", Value: 1}}),
		}},
		{"gallery_items", []mongo.IndexModel{
			idx("idx_gallery_date", bson.D{{Key: "date", Value: -1}}),
		}},
		{"site_content", []mongo.IndexModel{
			unique("uniq_site_content_section", bson.D{{Key: "section", Value: 1}}),
		}},
		{"notifications", []mongo.IndexModel{
			idx("idx_notifications_user_created", bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}),
			idx("idx_notifications_read_at", bson.D{{Key: "is_read", Value: 1}, {Key: "read_at", Value: 1}}),
		}},
		{"audit_events", []mongo.IndexModel{
			idx("idx_audit_timestamp", bson.D{{Key: "timestamp", Value: -1}}),
			idx("idx_audit_user_timestamp", bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}),
			idx("idx_audit_type_timestamp", bson.D{{Key: "category", Value: 1}, {Key: "event_type", Value: 1}, {Key: "timestamp", Value: -1}}),
		}},
	}
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
	Sparse *bool  `bson:"sparse,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func flag(b *bool) bool { return b != nil && *b }

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var ix existingIndex
		if err := cur.Decode(&ix); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(ix.Key)] = ix
	}
	return out, cur.Err()
}

// ensureIndexSet creates missing indexes, reuses matching ones, and drops
// and recreates an index whose name or unique/sparse options drifted.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes to compare.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		name := *m.Options.Name
		wantUnique := flag(m.Options.Unique)
		wantSparse := flag(m.Options.Sparse)
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", wantUnique))

		if ex, ok := existing[sig]; ok {
			if ex.Name == name && flag(ex.Unique) == wantUnique && flag(ex.Sparse) == wantSparse {
				log.Debug("reusing existing index")
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				log.Warn("drop drifted index failed", zap.String("existing", ex.Name), zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s: drop %s failed: %v", name, ex.Name, err))
				continue
			}
			log.Info("dropped drifted index", zap.String("existing", ex.Name))
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && wantUnique {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index on %s (duplicates present)", name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			log.Warn("index ensure failed", zap.Error(err))
			continue
		}
		log.Info("index ensured", zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}
