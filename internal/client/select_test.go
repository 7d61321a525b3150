package client

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSelect(t *testing.T) {
	ctx := context.Background()

	healthy, _ := newFakeServer(t, true)
	ds, err := Select(ctx, Options{BaseURL: healthy.URL + "/api", Session: &Session{}, HTTPClient: healthy.Client()})
	if err != nil || ds.Name() != "remote" {
		t.Errorf("healthy: %v %v", ds, err)
	}

	degraded, _ := newFakeServer(t, false)
	ds, err = Select(ctx, Options{BaseURL: degraded.URL + "/api", Session: &Session{}, HTTPClient: degraded.Client()})
	if err != nil || ds.Name() != "fixtures" {
		t.Errorf("503: %v %v", ds, err)
	}

	gone, _ := newFakeServer(t, true)
	gone.Close()
	ds, err = Select(ctx, Options{BaseURL: gone.URL + "/api", ProbeTimeout: time.Second})
	if err != nil || ds.Name() != "fixtures" {
		t.Errorf("unreachable: %v %v", ds, err)
	}
}

func TestFallback_ReadsOnlyOnNetworkError(t *testing.T) {
	ctx := context.Background()
	srv, _ := newFakeServer(t, true)
	sess := &Session{}
	ds, err := Select(ctx, Options{BaseURL: srv.URL + "/api", Session: sess, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatal(err)
	}

	// Live: remote data and remote errors pass through untouched.
	events, err := ds.Events(ctx)
	if err != nil || len(events) != 1 || events[0].Slug != "live" {
		t.Fatalf("live events = %+v, %v", events, err)
	}
	if _, err := ds.Event(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("404 was not passed through: %v", err)
	}

	srv.Close()

	events, err = ds.Events(ctx)
	if err != nil || len(events) != 3 {
		t.Fatalf("fallback events = %d, %v", len(events), err)
	}
	if _, err := ds.Donate(ctx, DonationInput{Amount: 10, PaymentMethod: "cash"}); !IsNetwork(err) {
		t.Errorf("write fell back: %v", err)
	}
	if err := ds.MarkRead(ctx, "n1"); !IsNetwork(err) {
		t.Errorf("mark read fell back: %v", err)
	}

	u, err := ds.Login(ctx, "01800000000", "anything")
	if err != nil || u.Name != "Normal Member" {
		t.Fatalf("offline login = %+v, %v", u, err)
	}
	if !sess.Offline() {
		t.Error("offline login did not mint an offline token")
	}
}
