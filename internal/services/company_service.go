package services

import (
	"errors"
	"strings"
	"time"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"
	"hirepro_backend/internal/services/dto"

	"gorm.io/gorm"
)

type CompanyService interface {
	// Create registers a tenant in pending status and makes the acting
	// user its first active company_admin.
	Create(actingUserID string, req *dto.CreateCompanyRequest) (*models.Company, error)
	Get(companyID string) (*models.Company, error)
	GetBySubdomain(subdomain string) (*models.Company, error)
	ListForUser(userID string) ([]models.Company, error)
	Update(companyID string, req *dto.UpdateCompanyRequest) (*models.Company, error)
	SetStatus(companyID string, status models.CompanyStatus) error
}

type CompanyServiceImpl struct {
	db          *gorm.DB
	companyRepo repositories.CompanyRepository
	memberRepo  repositories.MembershipRepository
}

func NewCompanyService(db *gorm.DB, companyRepo repositories.CompanyRepository, memberRepo repositories.MembershipRepository) CompanyService {
	return &CompanyServiceImpl{db: db, companyRepo: companyRepo, memberRepo: memberRepo}
}

func (s *CompanyServiceImpl) Create(actingUserID string, req *dto.CreateCompanyRequest) (*models.Company, error) {
	company := &models.Company{
		Name:         req.Name,
		Subdomain:    normalizeSubdomain(req.Subdomain),
		Description:  req.Description,
		Website:      req.Website,
		Status:       models.CompanyStatusPending,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		companyRepo := repositories.NewCompanyRepository(tx)
		memberRepo := repositories.NewMembershipRepository(tx)

		if err := companyRepo.Create(company); err != nil {
			if errors.Is(err, repositories.ErrSubdomainTaken) {
				return appErrors.ErrSubdomainTaken
			}
			return appErrors.InternalError(err)
		}

		now := time.Now()
		membership := &models.CompanyUser{
			UserID:      actingUserID,
			CompanyID:   company.ID,
			Role:        models.RoleCompanyAdmin,
			Status:      models.MembershipStatusActive,
			InvitedAt:   now,
			ActivatedAt: &now,
		}
		if err := memberRepo.Create(membership); err != nil {
			return appErrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyServiceImpl) Get(companyID string) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, appErrors.ErrCompanyNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return company, nil
}

func (s *CompanyServiceImpl) GetBySubdomain(subdomain string) (*models.Company, error) {
	company, err := s.companyRepo.FindBySubdomain(normalizeSubdomain(subdomain))
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, appErrors.ErrCompanyNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return company, nil
}

func (s *CompanyServiceImpl) ListForUser(userID string) ([]models.Company, error) {
	memberships, err := s.memberRepo.List(repositories.MembershipFilter{UserID: userID})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.CompanyID)
	}
	if len(ids) == 0 {
		return []models.Company{}, nil
	}

	companies, err := s.companyRepo.FindByIDs(ids)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return companies, nil
}

func (s *CompanyServiceImpl) Update(companyID string, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Website != nil {
		fields["website"] = *req.Website
	}
	if req.ContactEmail != nil {
		fields["contact_email"] = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		fields["contact_phone"] = *req.ContactPhone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}

	company, err := s.companyRepo.Update(companyID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, appErrors.ErrCompanyNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return company, nil
}

func (s *CompanyServiceImpl) SetStatus(companyID string, status models.CompanyStatus) error {
	if !models.ValidCompanyStatus(status) {
		return appErrors.ErrInvalidStatus
	}
	if err := s.companyRepo.UpdateStatus(companyID, status); err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return appErrors.ErrCompanyNotFound
		}
		return appErrors.InternalError(err)
	}
	return nil
}

func normalizeSubdomain(subdomain string) string {
	return strings.ToLower(strings.TrimSpace(subdomain))
}
