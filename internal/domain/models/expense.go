// internal/domain/models/expense.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultExpenseCategory is applied when an expense is recorded without one.
const DefaultExpenseCategory = "Other"

type Expense struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Title       string              `bson:"title" json:"title"`
	Amount      float64             `bson:"amount" json:"amount"`
	Date        time.Time           `bson:"date" json:"date"`
	Category    string              `bson:"category" json:"category"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	EventID     *primitive.ObjectID `bson:"event_id,omitempty" json:"eventId,omitempty"`
	CreatedBy   *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
