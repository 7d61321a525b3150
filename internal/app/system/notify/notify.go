// Package notify sends in-app notifications to members as a side effect of
// admin actions. A failed send is logged and never fails the action.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"time"

	notificationstore "github.com/mejbaurrahman/JHF/internal/app/store/notifications"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Notifier writes notifications. A nil *Notifier sends nothing.
type Notifier struct {
	store *notificationstore.Store
	log   *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{store: notificationstore.New(db), log: logger}
}

// Send stores msg for userID.
func (n *Notifier) Send(ctx context.Context, userID primitive.ObjectID, msg, typ string) {
	if n == nil || userID.IsZero() {
		return
	}
	if _, err := n.store.Create(ctx, models.Notification{UserID: userID, Message: msg, Type: typ}); err != nil {
		n.log.Warn("notification not sent",
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
	}
}

// Amount renders a money value without trailing zeros ("500", "12.5").
func Amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " BDT"
}

// DonationStatus builds the message and type for a donation that left pending.
func DonationStatus(amount float64, to string) (msg, typ string) {
	if to == status.DonationConfirmed {
		return fmt.Sprintf("Your donation of %s has been confirmed. Thank you!", Amount(amount)), models.NotificationSuccess
	}
	return fmt.Sprintf("Your donation of %s could not be verified. Please contact the committee.", Amount(amount)), models.NotificationError
}

// FeeRecorded builds the message and type for a recorded fee.
func FeeRecorded(amount float64, month, year int, st string) (msg, typ string) {
	period := time.Month(month).String() + " " + strconv.Itoa(year)
	switch st {
	case status.FeePaid:
		return fmt.Sprintf("Your membership fee of %s for %s has been received.", Amount(amount), period), models.NotificationSuccess
	case status.FeeFailed:
		return fmt.Sprintf("Your membership fee payment for %s failed. Please try again.", period), models.NotificationError
	default:
		return fmt.Sprintf("A membership fee of %s for %s is pending.", Amount(amount), period), models.NotificationInfo
	}
}
