package services

import (
	"errors"
	"time"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"
	"hirepro_backend/internal/services/dto"

	"gorm.io/gorm"
)

type MembershipService interface {
	Get(userID, companyID string) (*models.CompanyUser, error)
	ListByCompany(companyID string) ([]models.CompanyUser, error)
	Update(companyID, targetUserID string, req *dto.UpdateMembershipRequest) (*models.CompanyUser, error)
	// Remove deletes the membership. Fails with ErrLastAdmin when the
	// company would be left without an active company_admin.
	Remove(companyID, targetUserID string) error
}

type MembershipServiceImpl struct {
	db         *gorm.DB
	memberRepo repositories.MembershipRepository
}

func NewMembershipService(db *gorm.DB, memberRepo repositories.MembershipRepository) MembershipService {
	return &MembershipServiceImpl{db: db, memberRepo: memberRepo}
}

func (s *MembershipServiceImpl) Get(userID, companyID string) (*models.CompanyUser, error) {
	membership, err := s.memberRepo.Find(userID, companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return nil, appErrors.ErrMembershipNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return membership, nil
}

func (s *MembershipServiceImpl) ListByCompany(companyID string) ([]models.CompanyUser, error) {
	members, err := s.memberRepo.List(repositories.MembershipFilter{
		CompanyID: companyID,
		StatusAny: true,
	})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return members, nil
}

func (s *MembershipServiceImpl) Update(companyID, targetUserID string, req *dto.UpdateMembershipRequest) (*models.CompanyUser, error) {
	var updated *models.CompanyUser

	err := s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repositories.NewMembershipRepository(tx)

		membership, err := memberRepo.Find(targetUserID, companyID)
		if err != nil {
			if errors.Is(err, repositories.ErrMembershipNotFound) {
				return appErrors.ErrMembershipNotFound
			}
			return appErrors.InternalError(err)
		}

		fields := map[string]interface{}{}
		losesAdmin := false

		if req.Role != nil && *req.Role != membership.Role {
			if !models.ValidMembershipRole(*req.Role) {
				return appErrors.ErrInvalidRole
			}
			fields["role"] = *req.Role
			if membership.Role == models.RoleCompanyAdmin {
				losesAdmin = true
			}
		}
		if req.Status != nil && *req.Status != membership.Status {
			if !models.ValidMembershipStatus(*req.Status) {
				return appErrors.ErrInvalidStatus
			}
			fields["status"] = *req.Status
			if *req.Status == models.MembershipStatusActive && membership.ActivatedAt == nil {
				fields["activated_at"] = time.Now()
			}
			if membership.Role == models.RoleCompanyAdmin &&
				membership.Status == models.MembershipStatusActive &&
				*req.Status != models.MembershipStatusActive {
				losesAdmin = true
			}
		}

		if len(fields) == 0 {
			updated = membership
			return nil
		}

		if losesAdmin {
			admins, err := memberRepo.CountActiveAdmins(companyID, targetUserID)
			if err != nil {
				return appErrors.InternalError(err)
			}
			if admins == 0 {
				return appErrors.ErrLastAdmin
			}
		}

		updated, err = memberRepo.Update(membership.ID, fields)
		if err != nil {
			return appErrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *MembershipServiceImpl) Remove(companyID, targetUserID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repositories.NewMembershipRepository(tx)

		membership, err := memberRepo.Find(targetUserID, companyID)
		if err != nil {
			if errors.Is(err, repositories.ErrMembershipNotFound) {
				return appErrors.ErrMembershipNotFound
			}
			return appErrors.InternalError(err)
		}

		if membership.Role == models.RoleCompanyAdmin {
			admins, err := memberRepo.CountActiveAdmins(companyID, targetUserID)
			if err != nil {
				return appErrors.InternalError(err)
			}
			if admins == 0 {
				return appErrors.ErrLastAdmin
			}
		}

		if err := memberRepo.Delete(targetUserID, companyID); err != nil {
			if errors.Is(err, repositories.ErrMembershipNotFound) {
				return appErrors.ErrMembershipNotFound
			}
			return appErrors.InternalError(err)
		}
		return nil
	})
}

// shouldUpgradeRole decides whether a repeat invite may change an
// existing member's role. An admin is never demoted by an invite; any
// other member can be raised, and anyone can be raised to admin.
func shouldUpgradeRole(existing, requested models.MembershipRole) bool {
	if requested == models.RoleCompanyAdmin {
		return true
	}
	return existing != models.RoleCompanyAdmin
}
