// Package financequeries reads the association's financial figures from
// MongoDB. It implements finance.Source.
package financequeries

import (
	"context"

	"github.com/mejbaurrahman/JHF/internal/app/system/finance"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Source runs one aggregation or count per figure.
type Source struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Source {
	return &Source{db: db}
}

var _ finance.Source = (*Source)(nil)

// aggregateOne runs pipeline and decodes its single output row into out.
// An empty collection yields no row and leaves out untouched.
func (s *Source) aggregateOne(ctx context.Context, coll string, pipeline []bson.M, out any) error {
	cur, err := s.db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		return cur.Decode(out)
	}
	return cur.Err()
}

func sumAmount(match bson.M) []bson.M {
	return []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	}
}

func whenStatus(st string, then any) bson.M {
	return bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", st}}, then, 0}}
}

// Donations sums every donation, the confirmed ones, and counts pending ones
// in a single pass.
func (s *Source) Donations(ctx context.Context) (finance.DonationTotals, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": "$amount"},
			"confirmed": bson.M{"$sum": whenStatus(status.DonationConfirmed, "$amount")},
			"pending":   bson.M{"$sum": whenStatus(status.DonationPending, 1)},
		}},
	}
	var row struct {
		Total     float64 `bson:"total"`
		Confirmed float64 `bson:"confirmed"`
		Pending   int64   `bson:"pending"`
	}
	if err := s.aggregateOne(ctx, "donations", pipeline, &row); err != nil {
		return finance.DonationTotals{}, err
	}
	return finance.DonationTotals{Total: row.Total, Confirmed: row.Confirmed, PendingCount: row.Pending}, nil
}

func (s *Source) sum(ctx context.Context, coll string, match bson.M) (float64, error) {
	var row struct {
		Total float64 `bson:"total"`
	}
	err := s.aggregateOne(ctx, coll, sumAmount(match), &row)
	return row.Total, err
}

// PaidFees sums fees with status paid.
func (s *Source) PaidFees(ctx context.Context) (float64, error) {
	return s.sum(ctx, "fees", bson.M{"status": status.FeePaid})
}

// Expenses sums every expense.
func (s *Source) Expenses(ctx context.Context) (float64, error) {
	return s.sum(ctx, "expenses", bson.M{})
}

func (s *Source) Users(ctx context.Context) (int64, error) {
	return s.db.Collection("users").CountDocuments(ctx, bson.M{})
}

// ActiveEvents counts upcoming and ongoing events.
func (s *Source) ActiveEvents(ctx context.Context) (int64, error) {
	return s.db.Collection("events").CountDocuments(ctx,
		bson.M{"status": bson.M{"$in": status.ActiveEventStatuses}})
}
