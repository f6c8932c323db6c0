package repositories

import (
	"errors"
	"time"

	"hirepro_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	FindByID(id string) (*models.Job, error)
	ListByCompanies(companyIDs []string, limit, offset int) ([]models.Job, error)
	Create(job *models.Job) error
	Update(jobID string, fields map[string]interface{}) (*models.Job, error)
	Delete(jobID string) error

	AddInterviewer(interviewer *models.JobInterviewer) error
	ListInterviewers(jobID string) ([]models.JobInterviewer, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) ListByCompanies(companyIDs []string, limit, offset int) ([]models.Job, error) {
	var jobs []models.Job
	if len(companyIDs) == 0 {
		return jobs, nil
	}
	err := r.db.Where("company_id IN ?", companyIDs).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

var jobUpdatableFields = map[string]bool{
	"title":                true,
	"description":          true,
	"requirements":         true,
	"location":             true,
	"employment_type":      true,
	"experience_level":     true,
	"salary_min":           true,
	"salary_max":           true,
	"salary_currency":      true,
	"application_deadline": true,
	"interview_type":       true,
	"ai_interview_config":  true,
	"status":               true,
	"visibility":           true,
	"published_at":         true,
}

func (r *JobRepositoryImpl) Update(jobID string, fields map[string]interface{}) (*models.Job, error) {
	updates := make(map[string]interface{})
	for key, value := range fields {
		if jobUpdatableFields[key] {
			updates[key] = value
		}
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		result := r.db.Model(&models.Job{}).Where("id = ?", jobID).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrJobNotFound
		}
	}

	return r.FindByID(jobID)
}

func (r *JobRepositoryImpl) Delete(jobID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", jobID).Delete(&models.JobInterviewer{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", jobID).Delete(&models.Job{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
}

func (r *JobRepositoryImpl) AddInterviewer(interviewer *models.JobInterviewer) error {
	if err := r.db.Create(interviewer).Error; err != nil {
		// One row per (job, interviewer); re-adding is a no-op.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

func (r *JobRepositoryImpl) ListInterviewers(jobID string) ([]models.JobInterviewer, error) {
	var interviewers []models.JobInterviewer
	err := r.db.Preload("Interviewer").Where("job_id = ?", jobID).Find(&interviewers).Error
	return interviewers, err
}
