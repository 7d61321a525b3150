// internal/domain/models/fee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fee is a monthly membership payment.
type Fee struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"userId"`
	Amount        float64            `bson:"amount" json:"amount"`
	Month         int                `bson:"month" json:"month"` // 1..12
	Year          int                `bson:"year" json:"year"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	TransactionID string             `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	Status        string             `bson:"status" json:"status"`
	PaidAt        time.Time          `bson:"paid_at" json:"paidAt"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
