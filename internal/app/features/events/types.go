package events

import (
	"github.com/mejbaurrahman/JHF/internal/domain/models"
)

// eventRequest is shared by create and update. On update, absent (nil)
// fields are left alone.
type eventRequest struct {
	Title           *string   `json:"title" validate:"omitempty,max=200"`
	Slug            *string   `json:"slug" validate:"omitempty,max=200"`
	Type            *string   `json:"type" validate:"omitempty,eventtype"`
	Description     *string   `json:"description" validate:"omitempty,max=20000"`
	Location        *string   `json:"location" validate:"omitempty,max=300"`
	StartDate       *string   `json:"startDate"`
	EndDate         *string   `json:"endDate"`
	Status          *string   `json:"status" validate:"omitempty,eventstatus"`
	EstimatedBudget *float64  `json:"estimatedBudget" validate:"omitempty,gte=0"`
	BannerURL       *string   `json:"bannerUrl" validate:"omitempty,max=2048"`
	IsPublic        *bool     `json:"isPublic"`
	ManagerIDs      *[]string `json:"managers"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,eventstatus"`
}

// eventDetail is an event with its managers and creator populated.
type eventDetail struct {
	models.Event
	Managers []models.UserSummary `json:"managers"`
	Creator  *models.UserSummary  `json:"creator,omitempty"`
}
