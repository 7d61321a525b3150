// internal/domain/models/user.go
package models

import (
	"time"

	"github.com/mejbaurrahman/JHF/internal/domain/role"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership status values.
const (
	MembershipPending  = "pending"
	MembershipActive   = "active"
	MembershipRejected = "rejected"
)

// User is a portal account: a regular member, an admin, an advisor, or a
// member holding a custom committee title.
//
// Phone is the login identifier. Email is optional and stored lowercased.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name             string             `bson:"name" json:"name"`
	NameCI           string             `bson:"name_ci" json:"-"` // folded, for sorting
	Email            string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone            string             `bson:"phone" json:"phone"`
	PasswordHash     string             `bson:"password_hash" json:"-"`
	Role             string             `bson:"role" json:"role"` // admin | user | advisor | other
	CustomRole       string             `bson:"custom_role,omitempty" json:"customRole,omitempty"`
	ProfileImage     string             `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	Address          string             `bson:"address,omitempty" json:"address,omitempty"`
	Occupation       string             `bson:"occupation,omitempty" json:"occupation,omitempty"`
	Bio              string             `bson:"bio,omitempty" json:"bio,omitempty"`
	IsActive         bool               `bson:"is_active" json:"isActive"`
	MembershipStatus string             `bson:"membership_status" json:"membershipStatus"`
	JoinDate         time.Time          `bson:"join_date" json:"joinDate"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// RoleValue returns the user's role as a tagged union.
func (u User) RoleValue() role.Role {
	return role.Parse(u.Role, u.CustomRole)
}

// UserSummary is the reduced user shape embedded in populated responses.
type UserSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone string             `bson:"phone,omitempty" json:"phone,omitempty"`
}
