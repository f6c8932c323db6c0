package services

import (
	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"
)

// AuthzService answers membership questions for tenant-scoped requests.
// Predicates hit the database every time; a role or status change is
// visible on the very next request.
type AuthzService interface {
	IsMember(userID, companyID string) (bool, error)
	IsAdmin(userID, companyID string) (bool, error)
	// RequireAdmin is the guard used by company-management handlers.
	// system_admin users pass for any company.
	RequireAdmin(user *models.User, companyID string) error
	RequireMember(user *models.User, companyID string) error
}

type AuthzServiceImpl struct {
	memberRepo repositories.MembershipRepository
}

func NewAuthzService(memberRepo repositories.MembershipRepository) AuthzService {
	return &AuthzServiceImpl{memberRepo: memberRepo}
}

func (s *AuthzServiceImpl) IsMember(userID, companyID string) (bool, error) {
	return s.memberRepo.Exists(repositories.MembershipFilter{
		UserID:    userID,
		CompanyID: companyID,
		Status:    models.MembershipStatusActive,
	})
}

func (s *AuthzServiceImpl) IsAdmin(userID, companyID string) (bool, error) {
	return s.memberRepo.Exists(repositories.MembershipFilter{
		UserID:    userID,
		CompanyID: companyID,
		Role:      models.RoleCompanyAdmin,
		Status:    models.MembershipStatusActive,
	})
}

func (s *AuthzServiceImpl) RequireAdmin(user *models.User, companyID string) error {
	if user.UserType == models.UserTypeSystemAdmin {
		return nil
	}
	ok, err := s.IsAdmin(user.ID, companyID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if !ok {
		return appErrors.ErrForbidden
	}
	return nil
}

func (s *AuthzServiceImpl) RequireMember(user *models.User, companyID string) error {
	if user.UserType == models.UserTypeSystemAdmin {
		return nil
	}
	ok, err := s.IsMember(user.ID, companyID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if !ok {
		return appErrors.ErrForbidden
	}
	return nil
}
