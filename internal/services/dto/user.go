package dto

import (
	"time"

	"hirepro_backend/internal/models"
)

// UserResponse is the public projection of a user account.
type UserResponse struct {
	ID                string          `json:"id"`
	Username          string          `json:"username"`
	Email             string          `json:"email"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	UserType          models.UserType `json:"user_type"`
	Phone             string          `json:"phone,omitempty"`
	IsProfileComplete bool            `json:"is_profile_complete"`
	CreatedAt         time.Time       `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		UserType:          u.UserType,
		Phone:             u.Phone,
		IsProfileComplete: u.IsProfileComplete,
		CreatedAt:         u.CreatedAt,
	}
}

// UpdateProfileRequest applies a partial update: nil fields are left untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}
