package dto

import "hirepro_backend/internal/models"

type InviteUserRequest struct {
	Email string                `json:"email" validate:"required,email"`
	Role  models.MembershipRole `json:"role" validate:"required,oneof=company_admin hr_manager hr_recruiter interviewer csr"`
}

// InviteResponse reports what the invite produced. Token and DashboardURL
// are echoed back so an admin can re-send the link out of band.
type InviteResponse struct {
	UserID       string                  `json:"user_id"`
	Email        string                  `json:"email"`
	Role         models.MembershipRole   `json:"role"`
	Status       models.MembershipStatus `json:"status"`
	CreatedUser  bool                    `json:"created_user"`
	UpgradedRole bool                    `json:"upgraded_role"`
	Token        string                  `json:"token"`
	DashboardURL string                  `json:"dashboard_url"`
}

type ValidateSetupTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type SetupTokenResponse struct {
	Valid         bool             `json:"valid"`
	RequiresSetup bool             `json:"requires_setup"`
	User          *UserResponse    `json:"user,omitempty"`
	Company       *CompanyResponse `json:"company,omitempty"`
}

type CompleteSetupRequest struct {
	Token     string `json:"token" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone,omitempty"`
}
