package dto

import (
	"time"

	"gorm.io/datatypes"
)

type CreateJobRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Location     string `json:"location,omitempty"`

	EmploymentType  string `json:"employment_type,omitempty" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	ExperienceLevel string `json:"experience_level,omitempty" validate:"omitempty,oneof=ENTRY MID SENIOR LEAD"`

	SalaryMin      *float64 `json:"salary_min,omitempty"`
	SalaryMax      *float64 `json:"salary_max,omitempty" validate:"omitempty,gtefield=SalaryMin"`
	SalaryCurrency string   `json:"salary_currency,omitempty" validate:"omitempty,len=3"`

	ApplicationDeadline *time.Time     `json:"application_deadline,omitempty"`
	InterviewType       string         `json:"interview_type,omitempty" validate:"omitempty,oneof=NONE AI HUMAN HYBRID"`
	AIInterviewConfig   datatypes.JSON `json:"ai_interview_config,omitempty"`
}

type UpdateJobRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Requirements *string `json:"requirements,omitempty"`
	Location     *string `json:"location,omitempty"`

	EmploymentType  *string `json:"employment_type,omitempty" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	ExperienceLevel *string `json:"experience_level,omitempty" validate:"omitempty,oneof=ENTRY MID SENIOR LEAD"`

	SalaryMin      *float64 `json:"salary_min,omitempty"`
	SalaryMax      *float64 `json:"salary_max,omitempty"`
	SalaryCurrency *string  `json:"salary_currency,omitempty" validate:"omitempty,len=3"`

	ApplicationDeadline *time.Time     `json:"application_deadline,omitempty"`
	InterviewType       *string        `json:"interview_type,omitempty" validate:"omitempty,oneof=NONE AI HUMAN HYBRID"`
	AIInterviewConfig   datatypes.JSON `json:"ai_interview_config,omitempty"`
	Visibility          *string        `json:"visibility,omitempty" validate:"omitempty,oneof=PUBLIC INTERNAL"`
}

type AddInterviewerRequest struct {
	InterviewerID string `json:"interviewer_id" validate:"required"`
}
