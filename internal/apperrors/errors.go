package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class across the API.
type ErrorCode string

// AppError is the application error carried from services up to the
// HTTP layer, where HTTPCode picks the response status.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	copied := *e
	copied.Details = details
	return &copied
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predeclared errors
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users
	ErrUserNotFound        = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists  = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrWeakPassword        = New(CodeWeakPassword, "Password must be at least 6 characters", http.StatusBadRequest)
	ErrInvalidUserRole     = New(CodeInvalidUserRole, "Invalid user role", http.StatusBadRequest)
	ErrEmployerNotApproved = New(CodeEmployerNotApproved, "Employer account is awaiting approval", http.StatusForbidden)
	ErrEmployerRejected    = New(CodeEmployerRejected, "Employer account was rejected", http.StatusForbidden)
	ErrInvalidVerifyAction = New(CodeInvalidVerifyAction, "Action must be 'approve' or 'reject'", http.StatusBadRequest)

	// Jobs
	ErrJobNotFound = New(CodeJobNotFound, "Job not found", http.StatusNotFound)
	ErrNotJobOwner = New(CodeNotJobOwner, "Only the owning employer may modify this job", http.StatusForbidden)

	// Applications
	ErrApplicationNotFound      = New(CodeApplicationNotFound, "Application not found", http.StatusNotFound)
	ErrNotApplicationOwner      = New(CodeNotApplicationOwner, "Only the owning candidate may withdraw this application", http.StatusForbidden)
	ErrApplicationAlreadyExists = New(CodeApplicationAlreadyExists, "You have already applied for this job", http.StatusConflict)
	ErrApplicationStatusLocked  = New(CodeApplicationStatusLocked, "Application status is final and can no longer change", http.StatusConflict)
	ErrInvalidStatusChange      = New(CodeInvalidStatusChange, "Invalid application status change", http.StatusBadRequest)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// Helpers for errors with details
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}
