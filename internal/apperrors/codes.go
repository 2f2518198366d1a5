package apperrors

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
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Resources
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeJobNotFound         ErrorCode = "JOB_NOT_FOUND"
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"

	// Business logic
	CodeEmailAlreadyExists       ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeEmployerNotApproved      ErrorCode = "EMPLOYER_NOT_APPROVED"
	CodeEmployerRejected         ErrorCode = "EMPLOYER_REJECTED"
	CodeNotJobOwner              ErrorCode = "NOT_JOB_OWNER"
	CodeNotApplicationOwner      ErrorCode = "NOT_APPLICATION_OWNER"
	CodeApplicationAlreadyExists ErrorCode = "APPLICATION_ALREADY_EXISTS"
	CodeApplicationStatusLocked  ErrorCode = "APPLICATION_STATUS_LOCKED"
	CodeInvalidStatusChange      ErrorCode = "INVALID_STATUS_CHANGE"
	CodeInvalidVerifyAction      ErrorCode = "INVALID_VERIFY_ACTION"

	// System errors
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
