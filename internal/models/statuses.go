package models

type UserType string
type CompanyStatus string
type MembershipRole string
type MembershipStatus string
type TokenType string
type JobStatus string
type InterviewerStatus string

const (
	UserTypeCandidate    UserType = "candidate"
	UserTypeCompanyAdmin UserType = "company_admin"
	UserTypeHRManager    UserType = "hr_manager"
	UserTypeHRRecruiter  UserType = "hr_recruiter"
	UserTypeInterviewer  UserType = "interviewer"
	UserTypeCSR          UserType = "csr"
	UserTypeSystemAdmin  UserType = "system_admin"

	CompanyStatusPending   CompanyStatus = "pending"
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusSuspended CompanyStatus = "suspended"
	CompanyStatusRejected  CompanyStatus = "rejected"

	RoleCompanyAdmin MembershipRole = "company_admin"
	RoleHRManager    MembershipRole = "hr_manager"
	RoleHRRecruiter  MembershipRole = "hr_recruiter"
	RoleInterviewer  MembershipRole = "interviewer"
	RoleCSR          MembershipRole = "csr"

	MembershipStatusPendingSetup MembershipStatus = "pending_setup"
	MembershipStatusActive       MembershipStatus = "active"
	MembershipStatusInactive     MembershipStatus = "inactive"

	TokenTypeUserInvite        TokenType = "user_invite"
	TokenTypePasswordReset     TokenType = "password_reset"
	TokenTypeCompanySetup      TokenType = "company_setup"
	TokenTypeInterviewerInvite TokenType = "interviewer_invite"

	JobStatusDraft     JobStatus = "DRAFT"
	JobStatusPublished JobStatus = "PUBLISHED"
	JobStatusClosed    JobStatus = "CLOSED"
	JobStatusArchived  JobStatus = "ARCHIVED"

	InterviewerStatusActive   InterviewerStatus = "ACTIVE"
	InterviewerStatusInactive InterviewerStatus = "INACTIVE"
)

// ValidMembershipRole reports whether the role is one of the recognized
// company roles. Invitation and membership updates refuse anything else.
func ValidMembershipRole(role MembershipRole) bool {
	switch role {
	case RoleCompanyAdmin, RoleHRManager, RoleHRRecruiter, RoleInterviewer, RoleCSR:
		return true
	}
	return false
}

// ValidMembershipStatus reports whether status is a known membership status.
func ValidMembershipStatus(status MembershipStatus) bool {
	switch status {
	case MembershipStatusPendingSetup, MembershipStatusActive, MembershipStatusInactive:
		return true
	}
	return false
}

// ValidCompanyStatus reports whether status is a known company status.
func ValidCompanyStatus(status CompanyStatus) bool {
	switch status {
	case CompanyStatusPending, CompanyStatusActive, CompanyStatusSuspended, CompanyStatusRejected:
		return true
	}
	return false
}
