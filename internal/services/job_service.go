package services

import (
	"errors"
	"time"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"
	"hirepro_backend/internal/services/dto"
)

type JobService interface {
	Create(companyID, createdByID string, req *dto.CreateJobRequest) (*models.Job, error)
	Get(jobID string) (*models.Job, error)
	ListForCompanies(companyIDs []string, limit, offset int) ([]models.Job, error)
	Update(jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	Publish(jobID string) (*models.Job, error)
	Delete(jobID string) error
	ListInterviewers(jobID string) ([]models.JobInterviewer, error)
	AddInterviewer(jobID, interviewerID, addedByID string) error
}

type JobServiceImpl struct {
	jobRepo repositories.JobRepository
}

func NewJobService(jobRepo repositories.JobRepository) JobService {
	return &JobServiceImpl{jobRepo: jobRepo}
}

func (s *JobServiceImpl) Create(companyID, createdByID string, req *dto.CreateJobRequest) (*models.Job, error) {
	job := &models.Job{
		CompanyID:           companyID,
		CreatedByID:         &createdByID,
		Title:               req.Title,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Location:            req.Location,
		EmploymentType:      req.EmploymentType,
		ExperienceLevel:     req.ExperienceLevel,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		ApplicationDeadline: req.ApplicationDeadline,
		AIInterviewConfig:   req.AIInterviewConfig,
		Status:              models.JobStatusDraft,
	}
	if req.SalaryCurrency != "" {
		job.SalaryCurrency = req.SalaryCurrency
	}
	if req.InterviewType != "" {
		job.InterviewType = req.InterviewType
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Get(jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) ListForCompanies(companyIDs []string, limit, offset int) ([]models.Job, error) {
	if len(companyIDs) == 0 {
		return []models.Job{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	jobs, err := s.jobRepo.ListByCompanies(companyIDs, limit, offset)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return jobs, nil
}

func (s *JobServiceImpl) Update(jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Requirements != nil {
		fields["requirements"] = *req.Requirements
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.EmploymentType != nil {
		fields["employment_type"] = *req.EmploymentType
	}
	if req.ExperienceLevel != nil {
		fields["experience_level"] = *req.ExperienceLevel
	}
	if req.SalaryMin != nil {
		fields["salary_min"] = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		fields["salary_max"] = *req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		fields["salary_currency"] = *req.SalaryCurrency
	}
	if req.ApplicationDeadline != nil {
		fields["application_deadline"] = *req.ApplicationDeadline
	}
	if req.InterviewType != nil {
		fields["interview_type"] = *req.InterviewType
	}
	if req.AIInterviewConfig != nil {
		fields["ai_interview_config"] = req.AIInterviewConfig
	}
	if req.Visibility != nil {
		fields["visibility"] = *req.Visibility
	}

	job, err := s.jobRepo.Update(jobID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Publish(jobID string) (*models.Job, error) {
	job, err := s.jobRepo.Update(jobID, map[string]interface{}{
		"status":       models.JobStatusPublished,
		"published_at": time.Now(),
	})
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Delete(jobID string) error {
	if err := s.jobRepo.Delete(jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return appErrors.ErrJobNotFound
		}
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) ListInterviewers(jobID string) ([]models.JobInterviewer, error) {
	interviewers, err := s.jobRepo.ListInterviewers(jobID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return interviewers, nil
}

func (s *JobServiceImpl) AddInterviewer(jobID, interviewerID, addedByID string) error {
	link := &models.JobInterviewer{
		JobID:         jobID,
		InterviewerID: interviewerID,
		AddedByID:     &addedByID,
		Status:        models.InterviewerStatusActive,
	}
	if err := s.jobRepo.AddInterviewer(link); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}
