package appErrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidRole      ErrorCode = "INVALID_ROLE"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	// Resources
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeCompanyNotFound    ErrorCode = "COMPANY_NOT_FOUND"
	CodeMembershipNotFound ErrorCode = "MEMBERSHIP_NOT_FOUND"
	CodeJobNotFound        ErrorCode = "JOB_NOT_FOUND"

	// Business logic
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeSubdomainTaken     ErrorCode = "SUBDOMAIN_TAKEN"
	CodeMembershipExists   ErrorCode = "MEMBERSHIP_EXISTS"
	CodeLastAdmin          ErrorCode = "LAST_ADMIN"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
