package donations

import (
	"context"

	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createRequest struct {
	DonorName     string  `json:"donorName" validate:"max=100"`
	DonorPhone    string  `json:"donorPhone" validate:"omitempty,phone"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=bkash nagad cash bank"`
	TransactionID string  `json:"transactionId" validate:"max=100"`
	IsAnonymous   bool    `json:"isAnonymous"`
	EventID       string  `json:"eventId"`
	DonationDate  string  `json:"donationDate"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// donationView is a donation with its event and donor populated.
type donationView struct {
	models.Donation
	Event *models.EventSummary `json:"event,omitempty"`
	User  *models.UserSummary  `json:"user,omitempty"`
}

// populate attaches event and donor summaries with one query each.
func (h *Handler) populate(ctx context.Context, list []models.Donation, withUsers bool) ([]donationView, error) {
	var eventIDs, userIDs []primitive.ObjectID
	for _, d := range list {
		if d.EventID != nil {
			eventIDs = append(eventIDs, *d.EventID)
		}
		if d.UserID != nil {
			userIDs = append(userIDs, *d.UserID)
		}
	}
	evs, err := h.Events.Summaries(ctx, eventIDs)
	if err != nil {
		return nil, err
	}
	users := map[primitive.ObjectID]models.UserSummary{}
	if withUsers {
		if users, err = h.Users.Summaries(ctx, userIDs); err != nil {
			return nil, err
		}
	}

	out := make([]donationView, 0, len(list))
	for _, d := range list {
		v := donationView{Donation: d}
		if d.EventID != nil {
			if es, ok := evs[*d.EventID]; ok {
				v.Event = &es
			}
		}
		if d.UserID != nil {
			if us, ok := users[*d.UserID]; ok {
				v.User = &us
			}
		}
		out = append(out, v)
	}
	return out, nil
}
