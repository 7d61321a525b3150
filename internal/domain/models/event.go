// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a community programme (tafseer, mahfil, Quran class, charity drive).
// Slug is globally unique and URL-safe.
type Event struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title           string               `bson:"title" json:"title"`
	Slug            string               `bson:"slug" json:"slug"`
	Type            string               `bson:"type" json:"type"`
	Description     string               `bson:"description,omitempty" json:"description,omitempty"`
	Location        string               `bson:"location,omitempty" json:"location,omitempty"`
	StartDate       *time.Time           `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate         *time.Time           `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Status          string               `bson:"status" json:"status"`
	EstimatedBudget float64              `bson:"estimated_budget" json:"estimatedBudget"`
	BannerURL       string               `bson:"banner_url,omitempty" json:"bannerUrl,omitempty"`
	IsPublic        bool                 `bson:"is_public" json:"isPublic"`
	ManagerIDs      []primitive.ObjectID `bson:"manager_ids" json:"managerIds"`
	CreatedBy       *primitive.ObjectID  `bson:"created_by,omitempty" json:"createdBy,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// EventSummary is the reduced event shape embedded in donation listings.
type EventSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Title string             `bson:"title" json:"title"`
	Slug  string             `bson:"slug,omitempty" json:"slug,omitempty"`
}
