// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Notification is a message addressed to a single user.
type Notification struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"userId"`
	Message string             `bson:"message" json:"message"`
	Type    string             `bson:"type" json:"type"`
	IsRead  bool               `bson:"is_read" json:"isRead"`
	ReadAt  *time.Time         `bson:"read_at,omitempty" json:"readAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
