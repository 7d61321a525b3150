package client

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Widget names used as keys in Dashboard.Errors.
const (
	WidgetUpcoming      = "upcoming"
	WidgetDonations     = "donations"
	WidgetFees          = "fees"
	WidgetNotifications = "notifications"
	WidgetFinance       = "finance"
)

// Dashboard is the signed-in landing page. A widget that failed to load is
// left empty and its error recorded; the others still render.
type Dashboard struct {
	Source        string
	User          *User
	Upcoming      []Event
	Donations     []Donation
	Fees          []Fee
	Notifications []Notification
	Unread        int
	Finance       *FinanceSummary // admins only
	Errors        map[string]error
}

// LoadDashboard fetches every widget concurrently. The finance widget is
// only requested for admins.
func LoadDashboard(ctx context.Context, ds DataSource, user *User) *Dashboard {
	d := &Dashboard{Source: ds.Name(), User: user, Errors: map[string]error{}}
	var mu sync.Mutex
	fail := func(widget string, err error) {
		mu.Lock()
		d.Errors[widget] = err
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		v, err := ds.UpcomingEvents(ctx)
		if err != nil {
			fail(WidgetUpcoming, err)
			return nil
		}
		d.Upcoming = v
		return nil
	})
	g.Go(func() error {
		v, err := ds.MyDonations(ctx)
		if err != nil {
			fail(WidgetDonations, err)
			return nil
		}
		d.Donations = v
		return nil
	})
	g.Go(func() error {
		v, err := ds.MyFees(ctx)
		if err != nil {
			fail(WidgetFees, err)
			return nil
		}
		d.Fees = v
		return nil
	})
	g.Go(func() error {
		v, err := ds.Notifications(ctx)
		if err != nil {
			fail(WidgetNotifications, err)
			return nil
		}
		d.Notifications = v
		for _, n := range v {
			if !n.IsRead {
				d.Unread++
			}
		}
		return nil
	})
	if user.IsAdmin() {
		g.Go(func() error {
			v, err := ds.FinanceSummary(ctx)
			if err != nil {
				fail(WidgetFinance, err)
				return nil
			}
			d.Finance = v
			return nil
		})
	}
	_ = g.Wait()
	return d
}
