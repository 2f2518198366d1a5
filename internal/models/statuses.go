package models

type UserRole string
type UserStatus string
type ApplicationStatus string

const (
	UserRoleCandidate UserRole = "candidate"
	UserRoleEmployer  UserRole = "employer"
	UserRoleAdmin     UserRole = "admin"

	// Employers start as pending until an admin approves them.
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusRejected UserStatus = "rejected"

	ApplicationStatusReceived    ApplicationStatus = "received"
	ApplicationStatusUnderReview ApplicationStatus = "under review"
	ApplicationStatusInterview   ApplicationStatus = "interview"
	ApplicationStatusHired       ApplicationStatus = "hired"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn   ApplicationStatus = "withdrawn"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleCandidate, UserRoleEmployer, UserRoleAdmin:
		return true
	}
	return false
}

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusReceived, ApplicationStatusUnderReview,
		ApplicationStatusInterview, ApplicationStatusHired,
		ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}
