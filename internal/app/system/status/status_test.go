package status

import (
	"errors"
	"testing"
)

func TestCanTransitionDonation(t *testing.T) {
	tests := []struct {
		from, to string
		want     error
	}{
		{DonationPending, DonationConfirmed, nil},
		{DonationPending, DonationFailed, nil},
		{DonationPending, DonationPending, ErrBadTransition},
		{DonationConfirmed, DonationFailed, ErrTerminal},
		{DonationConfirmed, DonationPending, ErrTerminal},
		{DonationFailed, DonationConfirmed, ErrTerminal},
		{DonationPending, "refunded", ErrBadTransition},
		{" PENDING ", "Confirmed", nil},
	}
	for _, tt := range tests {
		if got := CanTransitionDonation(tt.from, tt.to); !errors.Is(got, tt.want) {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionFee(t *testing.T) {
	if err := CanTransitionFee(FeePending, FeePaid); err != nil {
		t.Errorf("pending -> paid: %v", err)
	}
	if err := CanTransitionFee(FeePaid, FeeFailed); !errors.Is(err, ErrTerminal) {
		t.Errorf("paid -> failed: got %v", err)
	}
}

func TestEnums(t *testing.T) {
	if !IsEventStatus("Ongoing") || IsEventStatus("archived") {
		t.Error("event status membership wrong")
	}
	if !IsEventType("quran_class") || IsEventType("quran class") {
		t.Error("event type membership wrong")
	}
	if !In("bank", DonationMethods) || In("bank", FeeMethods) {
		t.Error("bank is a donation method only")
	}
}
