// internal/domain/models/donation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation is a contribution recorded by a donor, optionally attributed to
// a signed-in user and optionally earmarked for an event.
type Donation struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID        *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
	EventID       *primitive.ObjectID `bson:"event_id,omitempty" json:"eventId,omitempty"`
	DonorName     string              `bson:"donor_name" json:"donorName"`
	DonorPhone    string              `bson:"donor_phone,omitempty" json:"donorPhone,omitempty"`
	Amount        float64             `bson:"amount" json:"amount"`
	PaymentMethod string              `bson:"payment_method" json:"paymentMethod"`
	TransactionID string              `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	IsAnonymous   bool                `bson:"is_anonymous" json:"isAnonymous"`
	Status        string              `bson:"status" json:"status"`
	DonationDate  time.Time           `bson:"donation_date" json:"donationDate"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
