// Package status holds the enumerations for event, donation and fee
// lifecycles and the transition rules that apply to them.
package status

import (
	"errors"
	"strings"
)

// Event statuses. Any value may be set at any time.
const (
	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

// Event types.
const (
	TypeTafseer    = "tafseer"
	TypeMahfil     = "mahfil"
	TypeQuranClass = "quran_class"
	TypeCharity    = "charity"
	TypeOther      = "other"
)

// Donation statuses.
const (
	DonationPending   = "pending"
	DonationConfirmed = "confirmed"
	DonationFailed    = "failed"
)

// Fee statuses.
const (
	FeePending = "pending"
	FeePaid    = "paid"
	FeeFailed  = "failed"
)

var (
	// ErrTerminal is returned when a record has already left pending.
	ErrTerminal = errors.New("status is final and cannot be changed")
	// ErrBadTransition is returned for a target that is not a legal next state.
	ErrBadTransition = errors.New("invalid status transition")
)

// ActiveEventStatuses are counted as live events.
var ActiveEventStatuses = []string{EventUpcoming, EventOngoing}

// EventStatuses lists every event status.
var EventStatuses = []string{EventUpcoming, EventOngoing, EventCompleted, EventCancelled}

// EventTypes lists every event type.
var EventTypes = []string{TypeTafseer, TypeMahfil, TypeQuranClass, TypeCharity, TypeOther}

// DonationStatuses lists every donation status.
var DonationStatuses = []string{DonationPending, DonationConfirmed, DonationFailed}

// FeeStatuses lists every fee status.
var FeeStatuses = []string{FeePending, FeePaid, FeeFailed}

// Payment methods.
var (
	DonationMethods = []string{"bkash", "nagad", "cash", "bank"}
	FeeMethods      = []string{"bkash", "nagad", "cash"}
)

// In reports whether s (trimmed, lowercased) is one of set.
func In(s string, set []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func IsEventStatus(s string) bool { return In(s, EventStatuses) }
func IsEventType(s string) bool   { return In(s, EventTypes) }

// CanTransitionDonation checks pending -> confirmed | failed. Confirmed and
// failed are terminal.
func CanTransitionDonation(from, to string) error {
	return checkPendingOnly(from, to, DonationStatuses, DonationConfirmed, DonationFailed)
}

// CanTransitionFee checks pending -> paid | failed. Paid and failed are
// terminal.
func CanTransitionFee(from, to string) error {
	return checkPendingOnly(from, to, FeeStatuses, FeePaid, FeeFailed)
}

func checkPendingOnly(from, to string, all []string, targets ...string) error {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	if !In(to, all) {
		return ErrBadTransition
	}
	if from != "pending" {
		return ErrTerminal
	}
	for _, t := range targets {
		if to == t {
			return nil
		}
	}
	return ErrBadTransition
}
