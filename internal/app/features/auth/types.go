package auth

import (
	"time"

	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type registerRequest struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"notblank,phone"`
	Password string `json:"password" validate:"notblank,min=6"`
}

type loginRequest struct {
	Phone    string `json:"phone" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// Blank fields keep their stored values.
type profileRequest struct {
	Name         string `json:"name" validate:"max=100"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"omitempty,phone"`
	Password     string `json:"password" validate:"omitempty,min=6"`
	ProfileImage string `json:"profileImage"`
	Address      string `json:"address" validate:"max=300"`
	Occupation   string `json:"occupation" validate:"max=100"`
	Bio          string `json:"bio" validate:"max=1000"`
}

type createUserRequest struct {
	Name       string `json:"name" validate:"notblank,max=100"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"notblank,phone"`
	Password   string `json:"password" validate:"notblank,min=6"`
	Role       string `json:"role"`
	CustomRole string `json:"customRole" validate:"max=60"`
}

type roleRequest struct {
	Role       string `json:"role" validate:"notblank"`
	CustomRole string `json:"customRole" validate:"max=60"`
}

type statusRequest struct {
	IsActive         *bool  `json:"isActive"`
	MembershipStatus string `json:"membershipStatus" validate:"omitempty,oneof=pending active rejected"`
}

// authResponse answers register and login.
type authResponse struct {
	ID         primitive.ObjectID `json:"_id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Role       string             `json:"role"`
	CustomRole string             `json:"customRole,omitempty"`
	Token      string             `json:"token,omitempty"`
}

func newAuthResponse(u models.User, token string) authResponse {
	return authResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		CustomRole: u.CustomRole,
		Token:      token,
	}
}

type roleResponse struct {
	ID         primitive.ObjectID `json:"_id"`
	Name       string             `json:"name"`
	Role       string             `json:"role"`
	CustomRole string             `json:"customRole,omitempty"`
}

// profileResponse answers /me and profile updates.
type profileResponse struct {
	ID               primitive.ObjectID `json:"id"`
	Name             string             `json:"name"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	Role             string             `json:"role"`
	CustomRole       string             `json:"customRole,omitempty"`
	JoinDate         time.Time          `json:"joinDate"`
	ProfileImage     string             `json:"profileImage"`
	Address          string             `json:"address"`
	Occupation       string             `json:"occupation"`
	Bio              string             `json:"bio"`
	IsActive         bool               `json:"isActive"`
	MembershipStatus string             `json:"membershipStatus"`
	Token            string             `json:"token,omitempty"`
}

func newProfileResponse(u models.User, token string) profileResponse {
	return profileResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		Role:             u.Role,
		CustomRole:       u.CustomRole,
		JoinDate:         u.JoinDate,
		ProfileImage:     u.ProfileImage,
		Address:          u.Address,
		Occupation:       u.Occupation,
		Bio:              u.Bio,
		IsActive:         u.IsActive,
		MembershipStatus: u.MembershipStatus,
		Token:            token,
	}
}
