package client

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/system/finance"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
)

//go:embed fixtures.json
var fixtureJSON []byte

type fixtureData struct {
	Users         []User                    `json:"users"`
	Events        []Event                   `json:"events"`
	Donations     []Donation                `json:"donations"`
	Fees          []Fee                     `json:"fees"`
	Expenses      []Expense                 `json:"expenses"`
	Notifications []Notification            `json:"notifications"`
	Committee     []CommitteeMember         `json:"committee"`
	Gallery       []GalleryItem             `json:"gallery"`
	Site          map[string]map[string]any `json:"site"`
}

// FixtureSource serves the bundled demo data so a front end stays usable
// without an API. Logins mint offline tokens; writes fail with ErrOffline.
type FixtureSource struct {
	data    fixtureData
	session *Session
	now     func() time.Time
}

// NewFixtureSource parses the embedded fixtures.
func NewFixtureSource(session *Session) (*FixtureSource, error) {
	var d fixtureData
	if err := json.Unmarshal(fixtureJSON, &d); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if session == nil {
		session = &Session{}
	}
	return &FixtureSource{data: d, session: session, now: time.Now}, nil
}

func (f *FixtureSource) Name() string { return "fixtures" }

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Login accepts any password for a fixture user's phone.
func (f *FixtureSource) Login(_ context.Context, phone, _ string) (*User, error) {
	want := digits(phone)
	for _, u := range f.data.Users {
		if want != "" && digits(u.Phone) == want {
			u := u
			token := OfflineTokenPrefix + strconv.FormatInt(f.now().UnixMilli(), 10)
			f.session.Set(token, &u)
			if err := f.session.Save(); err != nil {
				return &u, fmt.Errorf("save session: %w", err)
			}
			return &u, nil
		}
	}
	return nil, &APIError{Status: http.StatusUnauthorized, Message: "Invalid mobile number or password"}
}

func (f *FixtureSource) Me(context.Context) (*User, error) {
	if u := f.session.User(); u != nil && f.session.LoggedIn() {
		return u, nil
	}
	return nil, &APIError{Status: http.StatusUnauthorized, Message: "Not authorized, no token"}
}

func (f *FixtureSource) requireUser() error {
	_, err := f.Me(context.Background())
	return err
}

func (f *FixtureSource) Events(context.Context) ([]Event, error) {
	return append([]Event(nil), f.data.Events...), nil
}

// UpcomingEvents returns upcoming events, soonest first.
func (f *FixtureSource) UpcomingEvents(context.Context) ([]Event, error) {
	var out []Event
	for _, e := range f.data.Events {
		if e.Status == status.EventUpcoming {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].StartDate, out[j].StartDate
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.Before(*b)
	})
	return out, nil
}

func (f *FixtureSource) Event(_ context.Context, slug string) (*Event, error) {
	for _, e := range f.data.Events {
		if e.Slug == slug {
			e := e
			return &e, nil
		}
	}
	return nil, &APIError{Status: http.StatusNotFound, Message: "Event not found"}
}

func (f *FixtureSource) MyDonations(context.Context) ([]Donation, error) {
	if err := f.requireUser(); err != nil {
		return nil, err
	}
	return append([]Donation(nil), f.data.Donations...), nil
}

func (f *FixtureSource) Donate(context.Context, DonationInput) (*Donation, error) {
	return nil, ErrOffline
}

// MyFees returns the fees recorded for the logged-in fixture user.
func (f *FixtureSource) MyFees(ctx context.Context) ([]Fee, error) {
	u, err := f.Me(ctx)
	if err != nil {
		return nil, err
	}
	var out []Fee
	for _, fee := range f.data.Fees {
		if fee.UserID == u.ID {
			out = append(out, fee)
		}
	}
	return out, nil
}

func (f *FixtureSource) Notifications(context.Context) ([]Notification, error) {
	if err := f.requireUser(); err != nil {
		return nil, err
	}
	return append([]Notification(nil), f.data.Notifications...), nil
}

func (f *FixtureSource) MarkRead(context.Context, string) error {
	return ErrOffline
}

func (f *FixtureSource) Committee(context.Context) ([]CommitteeMember, error) {
	out := append([]CommitteeMember(nil), f.data.Committee...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *FixtureSource) Gallery(context.Context) ([]GalleryItem, error) {
	return append([]GalleryItem(nil), f.data.Gallery...), nil
}

// Site returns an empty section for names without fixture data, as the
// server does for sections never written.
func (f *FixtureSource) Site(_ context.Context, section string) (*SiteSection, error) {
	data := f.data.Site[section]
	if data == nil {
		data = map[string]any{}
	}
	return &SiteSection{Section: section, Data: data}, nil
}

// FinanceSummary aggregates the fixtures with the same rules the server
// applies. Admins only.
func (f *FixtureSource) FinanceSummary(ctx context.Context) (*FinanceSummary, error) {
	u, err := f.Me(ctx)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, &APIError{Status: http.StatusForbidden,
			Message: `User role "` + u.Role + `" is not authorized to access this route. Required roles: admin`}
	}
	sum, err := finance.Summarize(ctx, fixtureFinance{&f.data})
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

// fixtureFinance adapts the fixtures to finance.Source.
type fixtureFinance struct{ d *fixtureData }

func (s fixtureFinance) Donations(context.Context) (finance.DonationTotals, error) {
	var t finance.DonationTotals
	for _, d := range s.d.Donations {
		t.Total += d.Amount
		switch d.Status {
		case status.DonationConfirmed:
			t.Confirmed += d.Amount
		case status.DonationPending:
			t.PendingCount++
		}
	}
	return t, nil
}

func (s fixtureFinance) PaidFees(context.Context) (float64, error) {
	var sum float64
	for _, f := range s.d.Fees {
		if f.Status == status.FeePaid {
			sum += f.Amount
		}
	}
	return sum, nil
}

func (s fixtureFinance) Expenses(context.Context) (float64, error) {
	var sum float64
	for _, e := range s.d.Expenses {
		sum += e.Amount
	}
	return sum, nil
}

func (s fixtureFinance) Users(context.Context) (int64, error) {
	return int64(len(s.d.Users)), nil
}

func (s fixtureFinance) ActiveEvents(context.Context) (int64, error) {
	var n int64
	for _, e := range s.d.Events {
		if status.In(e.Status, status.ActiveEventStatuses) {
			n++
		}
	}
	return n, nil
}
