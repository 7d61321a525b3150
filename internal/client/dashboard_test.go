package client

import (
	"context"
	"errors"
	"testing"
)

// flakySource fails selected widgets.
type flakySource struct {
	*FixtureSource
	failFees bool
}

var errBoom = errors.New("boom")

func (f flakySource) MyFees(ctx context.Context) ([]Fee, error) {
	if f.failFees {
		return nil, errBoom
	}
	return f.FixtureSource.MyFees(ctx)
}

func TestLoadDashboard_PartialFailure(t *testing.T) {
	fs, _ := newFixtures(t)
	ctx := context.Background()
	admin, err := fs.Login(ctx, "01700000000", "")
	if err != nil {
		t.Fatal(err)
	}

	d := LoadDashboard(ctx, flakySource{FixtureSource: fs, failFees: true}, admin)
	if d.Source != "fixtures" {
		t.Errorf("source = %q", d.Source)
	}
	if !errors.Is(d.Errors[WidgetFees], errBoom) || len(d.Errors) != 1 {
		t.Errorf("errors = %v", d.Errors)
	}
	if len(d.Upcoming) != 2 || len(d.Donations) != 2 || d.Unread != 1 {
		t.Errorf("widgets: upcoming %d donations %d unread %d", len(d.Upcoming), len(d.Donations), d.Unread)
	}
	if d.Finance == nil || d.Finance.NetBalance != 2100 {
		t.Errorf("finance = %+v", d.Finance)
	}
}

func TestLoadDashboard_MemberSkipsFinance(t *testing.T) {
	fs, _ := newFixtures(t)
	ctx := context.Background()
	member, err := fs.Login(ctx, "01800000000", "")
	if err != nil {
		t.Fatal(err)
	}
	d := LoadDashboard(ctx, fs, member)
	if d.Finance != nil || d.Errors[WidgetFinance] != nil {
		t.Errorf("member finance = %+v %v", d.Finance, d.Errors[WidgetFinance])
	}
	if len(d.Fees) != 2 {
		t.Errorf("fees = %d", len(d.Fees))
	}
}
