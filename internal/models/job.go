package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	CompanyID   string  `gorm:"not null;index" json:"company_id"`
	CreatedByID *string `json:"created_by"`

	Title        string `gorm:"not null" json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location"`

	EmploymentType  string `gorm:"type:varchar(20)" json:"employment_type"`
	ExperienceLevel string `gorm:"type:varchar(20)" json:"experience_level"`

	SalaryMin      *float64 `json:"salary_min"`
	SalaryMax      *float64 `json:"salary_max"`
	SalaryCurrency string   `gorm:"type:varchar(3);default:'USD'" json:"salary_currency"`

	ApplicationDeadline *time.Time     `json:"application_deadline"`
	InterviewType       string         `gorm:"type:varchar(20);default:'NONE'" json:"interview_type"`
	AIInterviewConfig   datatypes.JSON `json:"ai_interview_config"`

	Status      JobStatus  `gorm:"type:varchar(20);default:'DRAFT'" json:"status"`
	Visibility  string     `gorm:"type:varchar(20);default:'PUBLIC'" json:"visibility"`
	PublishedAt *time.Time `json:"published_at"`

	Company      *Company         `gorm:"foreignKey:CompanyID" json:"-"`
	CreatedBy    *User            `gorm:"foreignKey:CreatedByID" json:"-"`
	Interviewers []JobInterviewer `gorm:"foreignKey:JobID" json:"-"`
}

// JobInterviewer links a user to a job as an interviewer. One row per
// (job, interviewer) pair.
type JobInterviewer struct {
	BaseModel
	JobID         string            `gorm:"uniqueIndex:idx_job_interviewers_job_user;not null" json:"job_id"`
	InterviewerID string            `gorm:"uniqueIndex:idx_job_interviewers_job_user;not null" json:"interviewer_id"`
	AddedByID     *string           `json:"added_by"`
	Status        InterviewerStatus `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`

	Job         *Job  `gorm:"foreignKey:JobID" json:"-"`
	Interviewer *User `gorm:"foreignKey:InterviewerID" json:"-"`
	AddedBy     *User `gorm:"foreignKey:AddedByID" json:"-"`
}
