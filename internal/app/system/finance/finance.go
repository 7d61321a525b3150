// Package finance computes the association's financial summary.
package finance

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Summary is the dashboard finance snapshot. JSON names are part of the
// public API.
type Summary struct {
	TotalDonations          float64 `json:"totalDonations"`
	TotalConfirmedDonations float64 `json:"totalConfirmedDonations"`
	TotalFees               float64 `json:"totalFees"`
	TotalExpenses           float64 `json:"totalExpenses"`
	NetBalance              float64 `json:"netBalance"`
	UserCount               int64   `json:"userCount"`
	EventCount              int64   `json:"eventCount"`
	PendingDonationCount    int64   `json:"pendingDonationCount"`
}

// DonationTotals groups the donation figures that one pass over the
// donations collection yields.
type DonationTotals struct {
	Total        float64
	Confirmed    float64
	PendingCount int64
}

// Source supplies the raw figures.
type Source interface {
	// Donations sums all amounts, confirmed amounts, and counts pending.
	Donations(ctx context.Context) (DonationTotals, error)
	// PaidFees sums fee amounts with status "paid".
	PaidFees(ctx context.Context) (float64, error)
	// Expenses sums all expense amounts.
	Expenses(ctx context.Context) (float64, error)
	// Users counts all users.
	Users(ctx context.Context) (int64, error)
	// ActiveEvents counts events with status upcoming or ongoing.
	ActiveEvents(ctx context.Context) (int64, error)
}

// Net returns confirmed donations plus paid fees minus expenses.
func Net(confirmed, paidFees, expenses float64) float64 {
	return confirmed + paidFees - expenses
}

// Summarize reads every figure from src concurrently and assembles the
// Summary. The reads are not a consistent snapshot across collections.
// The first failing read cancels the rest and its error is returned.
func Summarize(ctx context.Context, src Source) (Summary, error) {
	var (
		don      DonationTotals
		fees     float64
		expenses float64
		users    int64
		events   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { don, err = src.Donations(gctx); return })
	g.Go(func() (err error) { fees, err = src.PaidFees(gctx); return })
	g.Go(func() (err error) { expenses, err = src.Expenses(gctx); return })
	g.Go(func() (err error) { users, err = src.Users(gctx); return })
	g.Go(func() (err error) { events, err = src.ActiveEvents(gctx); return })
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return Summary{
		TotalDonations:          don.Total,
		TotalConfirmedDonations: don.Confirmed,
		TotalFees:               fees,
		TotalExpenses:           expenses,
		NetBalance:              Net(don.Confirmed, fees, expenses),
		UserCount:               users,
		EventCount:              events,
		PendingDonationCount:    don.PendingCount,
	}, nil
}
