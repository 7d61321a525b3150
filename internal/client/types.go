// Package client talks to the JHF API on behalf of a front end or the
// jhfctl CLI. It owns the persisted login session and the DataSource
// abstraction that switches to bundled fixtures when the API is down.
package client

import (
	"strings"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/system/finance"
)

// IDs are kept as strings so fixture records need not be ObjectIDs.

type User struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	CustomRole string `json:"customRole,omitempty"`
	Token      string `json:"token,omitempty"`
}

// IsAdmin compares case-insensitively, as the server does.
func (u *User) IsAdmin() bool {
	return u != nil && strings.EqualFold(strings.TrimSpace(u.Role), "admin")
}

type Person struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type EventRef struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Slug  string `json:"slug,omitempty"`
}

type Event struct {
	ID              string     `json:"_id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Type            string     `json:"type"`
	Description     string     `json:"description,omitempty"`
	Location        string     `json:"location,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          string     `json:"status"`
	EstimatedBudget float64    `json:"estimatedBudget"`
	BannerURL       string     `json:"bannerUrl,omitempty"`
	IsPublic        bool       `json:"isPublic"`
	Managers        []Person   `json:"managers,omitempty"`
}

type Donation struct {
	ID            string    `json:"_id"`
	DonorName     string    `json:"donorName"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	TransactionID string    `json:"transactionId,omitempty"`
	IsAnonymous   bool      `json:"isAnonymous"`
	Status        string    `json:"status"`
	DonationDate  time.Time `json:"donationDate"`
	Event         *EventRef `json:"event,omitempty"`
}

// DonationInput is the body of POST /donations.
type DonationInput struct {
	DonorName     string  `json:"donorName,omitempty"`
	DonorPhone    string  `json:"donorPhone,omitempty"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	TransactionID string  `json:"transactionId,omitempty"`
	IsAnonymous   bool    `json:"isAnonymous"`
	EventID       string  `json:"eventId,omitempty"`
}

type Fee struct {
	ID            string    `json:"_id"`
	UserID        string    `json:"userId"`
	Amount        float64   `json:"amount"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	PaymentMethod string    `json:"paymentMethod"`
	TransactionID string    `json:"transactionId,omitempty"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paidAt"`
}

type Expense struct {
	ID     string    `json:"_id"`
	Title  string    `json:"title"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

type Notification struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommitteeMember struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	RoleKey  string `json:"roleKey"`
	ImageURL string `json:"imageUrl,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Order    int    `json:"order"`
}

type GalleryItem struct {
	ID       string    `json:"_id"`
	Title    string    `json:"title"`
	ImageURL string    `json:"imageUrl"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

// SiteSection is one CMS section.
type SiteSection struct {
	Section string         `json:"section"`
	Data    map[string]any `json:"data"`
}

// FinanceSummary has the same JSON shape the server produces.
type FinanceSummary = finance.Summary
