// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultGalleryCategory is applied when a gallery item has no category.
const DefaultGalleryCategory = "General"

// CommitteeMember is a row on the public committee page, ordered by Order.
type CommitteeMember struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	RoleKey  string             `bson:"role_key" json:"roleKey"`
	ImageURL string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Order    int                `bson:"order" json:"order"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type GalleryItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title    string             `bson:"title" json:"title"`
	ImageURL string             `bson:"image_url" json:"imageUrl"`
	Category string             `bson:"category" json:"category"`
	Date     time.Time          `bson:"date" json:"date"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// SiteContent holds the editable key/value data for one page section
// (hero, about, contact, ...). Section is unique.
type SiteContent struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Section string             `bson:"section" json:"section"`
	Data    map[string]any     `bson:"data" json:"data"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
