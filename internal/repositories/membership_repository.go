package repositories

import (
	"errors"
	"time"

	"hirepro_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrMembershipExists   = errors.New("membership already exists")
)

// MembershipFilter narrows List. Status defaults to active when left
// empty; pass StatusAny to list every row.
type MembershipFilter struct {
	UserID    string
	CompanyID string
	Role      models.MembershipRole
	Status    models.MembershipStatus
	StatusAny bool
}

type MembershipRepository interface {
	Find(userID, companyID string) (*models.CompanyUser, error)
	List(filter MembershipFilter) ([]models.CompanyUser, error)
	Create(membership *models.CompanyUser) error
	Update(membershipID string, fields map[string]interface{}) (*models.CompanyUser, error)
	Delete(userID, companyID string) error
	// CountActiveAdmins counts active company_admin rows for a company,
	// excluding excludeUserID when non-empty. The last-admin invariant
	// is enforced on this count.
	CountActiveAdmins(companyID, excludeUserID string) (int64, error)
	Exists(filter MembershipFilter) (bool, error)
}

type MembershipRepositoryImpl struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &MembershipRepositoryImpl{db: db}
}

func (r *MembershipRepositoryImpl) Find(userID, companyID string) (*models.CompanyUser, error) {
	var membership models.CompanyUser
	err := r.db.Preload("User").
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	return &membership, nil
}

func (r *MembershipRepositoryImpl) List(filter MembershipFilter) ([]models.CompanyUser, error) {
	var memberships []models.CompanyUser
	err := r.applyFilter(filter).Preload("User").Order("invited_at ASC").Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepositoryImpl) Create(membership *models.CompanyUser) error {
	if err := r.db.Create(membership).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrMembershipExists
		}
		return err
	}
	return nil
}

var membershipUpdatableFields = map[string]bool{
	"role":         true,
	"status":       true,
	"permissions":  true,
	"activated_at": true,
}

func (r *MembershipRepositoryImpl) Update(membershipID string, fields map[string]interface{}) (*models.CompanyUser, error) {
	updates := make(map[string]interface{})
	for key, value := range fields {
		if membershipUpdatableFields[key] {
			updates[key] = value
		}
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		result := r.db.Model(&models.CompanyUser{}).Where("id = ?", membershipID).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrMembershipNotFound
		}
	}

	var membership models.CompanyUser
	if err := r.db.Preload("User").First(&membership, "id = ?", membershipID).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *MembershipRepositoryImpl) Delete(userID, companyID string) error {
	result := r.db.Where("user_id = ? AND company_id = ?", userID, companyID).
		Delete(&models.CompanyUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

func (r *MembershipRepositoryImpl) CountActiveAdmins(companyID, excludeUserID string) (int64, error) {
	query := r.db.Model(&models.CompanyUser{}).
		Where("company_id = ? AND role = ? AND status = ?",
			companyID, models.RoleCompanyAdmin, models.MembershipStatusActive)
	if excludeUserID != "" {
		query = query.Where("user_id != ?", excludeUserID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *MembershipRepositoryImpl) Exists(filter MembershipFilter) (bool, error) {
	var count int64
	err := r.applyFilter(filter).Count(&count).Error
	return count > 0, err
}

func (r *MembershipRepositoryImpl) applyFilter(filter MembershipFilter) *gorm.DB {
	query := r.db.Model(&models.CompanyUser{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	if !filter.StatusAny {
		status := filter.Status
		if status == "" {
			status = models.MembershipStatusActive
		}
		query = query.Where("status = ?", status)
	}

	return query
}
