package dto

import (
	"time"

	"hirepro_backend/internal/models"
)

type MembershipResponse struct {
	ID          string                  `json:"id"`
	UserID      string                  `json:"user_id"`
	CompanyID   string                  `json:"company_id"`
	Email       string                  `json:"email"`
	FullName    string                  `json:"full_name,omitempty"`
	Role        models.MembershipRole   `json:"role"`
	Status      models.MembershipStatus `json:"status"`
	InvitedByID string                  `json:"invited_by,omitempty"`
	InvitedAt   time.Time               `json:"invited_at"`
	ActivatedAt *time.Time              `json:"activated_at,omitempty"`
}

// NewMembershipResponse expects m.User to be preloaded.
func NewMembershipResponse(m *models.CompanyUser) MembershipResponse {
	resp := MembershipResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		CompanyID:   m.CompanyID,
		Role:        m.Role,
		Status:      m.Status,
		InvitedAt:   m.InvitedAt,
		ActivatedAt: m.ActivatedAt,
	}
	if m.InvitedByID != nil {
		resp.InvitedByID = *m.InvitedByID
	}
	if m.User != nil {
		resp.Email = m.User.Email
		resp.FullName = m.User.FullName()
	}
	return resp
}

// UpdateMembershipRequest is a partial update of a member's role or status.
type UpdateMembershipRequest struct {
	Role   *models.MembershipRole   `json:"role,omitempty" validate:"omitempty,oneof=company_admin hr_manager hr_recruiter interviewer csr"`
	Status *models.MembershipStatus `json:"status,omitempty" validate:"omitempty,oneof=pending_setup active inactive"`
}
