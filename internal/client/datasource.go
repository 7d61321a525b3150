package client

import "context"

// DataSource is everything a front end reads or writes. RemoteSource talks
// to the API; FixtureSource serves bundled demo data. Select picks one.
type DataSource interface {
	// Name is "remote" or "fixtures".
	Name() string

	// Login authenticates and stores the token in the session.
	Login(ctx context.Context, phone, password string) (*User, error)
	Me(ctx context.Context) (*User, error)

	Events(ctx context.Context) ([]Event, error)
	UpcomingEvents(ctx context.Context) ([]Event, error)
	Event(ctx context.Context, slug string) (*Event, error)

	MyDonations(ctx context.Context) ([]Donation, error)
	Donate(ctx context.Context, in DonationInput) (*Donation, error)
	MyFees(ctx context.Context) ([]Fee, error)

	Notifications(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error

	Committee(ctx context.Context) ([]CommitteeMember, error)
	Gallery(ctx context.Context) ([]GalleryItem, error)
	Site(ctx context.Context, section string) (*SiteSection, error)

	FinanceSummary(ctx context.Context) (*FinanceSummary, error)
}
