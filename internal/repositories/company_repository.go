package repositories

import (
	"errors"
	"time"

	"hirepro_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrSubdomainTaken  = errors.New("subdomain already taken")
)

type CompanyRepository interface {
	FindByID(id string) (*models.Company, error)
	FindBySubdomain(subdomain string) (*models.Company, error)
	FindByIDs(ids []string) ([]models.Company, error)
	Create(company *models.Company) error
	// Update applies an allow-listed partial merge. The subdomain is
	// immutable after creation and is not accepted here.
	Update(companyID string, fields map[string]interface{}) (*models.Company, error)
	UpdateStatus(companyID string, status models.CompanyStatus) error
}

type CompanyRepositoryImpl struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &CompanyRepositoryImpl{db: db}
}

func (r *CompanyRepositoryImpl) FindByID(id string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindBySubdomain(subdomain string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "subdomain = ?", subdomain).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindByIDs(ids []string) ([]models.Company, error) {
	var companies []models.Company
	if len(ids) == 0 {
		return companies, nil
	}
	err := r.db.Where("id IN ?", ids).Order("created_at DESC").Find(&companies).Error
	return companies, err
}

func (r *CompanyRepositoryImpl) Create(company *models.Company) error {
	var existing models.Company
	if err := r.db.Where("subdomain = ?", company.Subdomain).First(&existing).Error; err == nil {
		return ErrSubdomainTaken
	}

	if err := r.db.Create(company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSubdomainTaken
		}
		return err
	}
	return nil
}

var companyUpdatableFields = map[string]bool{
	"name":          true,
	"description":   true,
	"website":       true,
	"contact_email": true,
	"contact_phone": true,
	"address":       true,
}

func (r *CompanyRepositoryImpl) Update(companyID string, fields map[string]interface{}) (*models.Company, error) {
	updates := make(map[string]interface{})
	for key, value := range fields {
		if companyUpdatableFields[key] {
			updates[key] = value
		}
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		result := r.db.Model(&models.Company{}).Where("id = ?", companyID).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrCompanyNotFound
		}
	}

	return r.FindByID(companyID)
}

func (r *CompanyRepositoryImpl) UpdateStatus(companyID string, status models.CompanyStatus) error {
	result := r.db.Model(&models.Company{}).Where("id = ?", companyID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
