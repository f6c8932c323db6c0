package dto

// CompanyAdminSignupRequest registers a new company together with its first admin.
type CompanyAdminSignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone,omitempty"`

	CompanyName  string `json:"company_name" validate:"required"`
	Subdomain    string `json:"subdomain" validate:"required,hostname_rfc1123,min=3,max=63"`
	Website      string `json:"website,omitempty" validate:"omitempty,url"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// CandidateSignupRequest registers a job seeker account.
type CandidateSignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the opaque API token plus the authenticated user.
type AuthResponse struct {
	Token   string           `json:"token"`
	User    UserResponse     `json:"user"`
	Company *CompanyResponse `json:"company,omitempty"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
