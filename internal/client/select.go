package client

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultProbeTimeout bounds the startup health probe.
const DefaultProbeTimeout = 3 * time.Second

// Options configures Select.
type Options struct {
	BaseURL      string // API root including /api
	Session      *Session
	HTTPClient   *http.Client
	ProbeTimeout time.Duration
	Logger       *zap.Logger
}

// Select probes GET {BaseURL}/health once. A 200 yields the remote source,
// whose reads fall back to fixtures per call when the API becomes
// unreachable later. Anything else yields the fixture source.
func Select(ctx context.Context, opts Options) (DataSource, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	fixtures, err := NewFixtureSource(opts.Session)
	if err != nil {
		return nil, err
	}
	remote := NewRemoteSource(opts.BaseURL, opts.Session, opts.HTTPClient, log)

	if !probe(ctx, remote, opts.ProbeTimeout) {
		log.Warn("API unavailable; using offline fixtures", zap.String("base_url", remote.baseURL))
		return fixtures, nil
	}
	return &fallbackSource{remote: remote, fixtures: fixtures, log: log}, nil
}

func probe(ctx context.Context, remote *RemoteSource, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remote.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := remote.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// fallbackSource sends everything to remote. Reads that fail with
// ErrNetwork are answered from fixtures; writes and HTTP errors are not.
type fallbackSource struct {
	remote   *RemoteSource
	fixtures *FixtureSource
	log      *zap.Logger
}

func read[T any](f *fallbackSource, op string, remote, fixture func() (T, error)) (T, error) {
	v, err := remote()
	if err == nil || !IsNetwork(err) {
		return v, err
	}
	f.log.Info("serving fixtures after network error", zap.String("op", op))
	return fixture()
}

func (f *fallbackSource) Name() string { return f.remote.Name() }

// Login falls back like a read so the demo accounts keep working offline.
// The resulting offline token is never sent to the server.
func (f *fallbackSource) Login(ctx context.Context, phone, password string) (*User, error) {
	return read(f, "login",
		func() (*User, error) { return f.remote.Login(ctx, phone, password) },
		func() (*User, error) { return f.fixtures.Login(ctx, phone, password) })
}

func (f *fallbackSource) Me(ctx context.Context) (*User, error) {
	return read(f, "me",
		func() (*User, error) { return f.remote.Me(ctx) },
		func() (*User, error) { return f.fixtures.Me(ctx) })
}

func (f *fallbackSource) Events(ctx context.Context) ([]Event, error) {
	return read(f, "events",
		func() ([]Event, error) { return f.remote.Events(ctx) },
		func() ([]Event, error) { return f.fixtures.Events(ctx) })
}

func (f *fallbackSource) UpcomingEvents(ctx context.Context) ([]Event, error) {
	return read(f, "upcoming events",
		func() ([]Event, error) { return f.remote.UpcomingEvents(ctx) },
		func() ([]Event, error) { return f.fixtures.UpcomingEvents(ctx) })
}

func (f *fallbackSource) Event(ctx context.Context, slug string) (*Event, error) {
	return read(f, "event",
		func() (*Event, error) { return f.remote.Event(ctx, slug) },
		func() (*Event, error) { return f.fixtures.Event(ctx, slug) })
}

func (f *fallbackSource) MyDonations(ctx context.Context) ([]Donation, error) {
	return read(f, "my donations",
		func() ([]Donation, error) { return f.remote.MyDonations(ctx) },
		func() ([]Donation, error) { return f.fixtures.MyDonations(ctx) })
}

func (f *fallbackSource) Donate(ctx context.Context, in DonationInput) (*Donation, error) {
	return f.remote.Donate(ctx, in)
}

func (f *fallbackSource) MyFees(ctx context.Context) ([]Fee, error) {
	return read(f, "my fees",
		func() ([]Fee, error) { return f.remote.MyFees(ctx) },
		func() ([]Fee, error) { return f.fixtures.MyFees(ctx) })
}

func (f *fallbackSource) Notifications(ctx context.Context) ([]Notification, error) {
	return read(f, "notifications",
		func() ([]Notification, error) { return f.remote.Notifications(ctx) },
		func() ([]Notification, error) { return f.fixtures.Notifications(ctx) })
}

func (f *fallbackSource) MarkRead(ctx context.Context, id string) error {
	return f.remote.MarkRead(ctx, id)
}

func (f *fallbackSource) Committee(ctx context.Context) ([]CommitteeMember, error) {
	return read(f, "committee",
		func() ([]CommitteeMember, error) { return f.remote.Committee(ctx) },
		func() ([]CommitteeMember, error) { return f.fixtures.Committee(ctx) })
}

func (f *fallbackSource) Gallery(ctx context.Context) ([]GalleryItem, error) {
	return read(f, "gallery",
		func() ([]GalleryItem, error) { return f.remote.Gallery(ctx) },
		func() ([]GalleryItem, error) { return f.fixtures.Gallery(ctx) })
}

func (f *fallbackSource) Site(ctx context.Context, section string) (*SiteSection, error) {
	return read(f, "site",
		func() (*SiteSection, error) { return f.remote.Site(ctx, section) },
		func() (*SiteSection, error) { return f.fixtures.Site(ctx, section) })
}

func (f *fallbackSource) FinanceSummary(ctx context.Context) (*FinanceSummary, error) {
	return read(f, "finance summary",
		func() (*FinanceSummary, error) { return f.remote.FinanceSummary(ctx) },
		func() (*FinanceSummary, error) { return f.fixtures.FinanceSummary(ctx) })
}
