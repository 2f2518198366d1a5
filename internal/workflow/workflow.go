// Package workflow holds the application lifecycle rules shared by the
// server services and the CLI: which statuses an employer may set, when
// the change-status action is locked, and when a candidate may withdraw.
package workflow

import "jobportal_backend/internal/models"

// EmployerStatuses are the statuses an employer can set on an
// application. Withdrawn is deliberately absent: it is reachable only
// through candidate withdrawal.
var EmployerStatuses = []models.ApplicationStatus{
	models.ApplicationStatusReceived,
	models.ApplicationStatusUnderReview,
	models.ApplicationStatusInterview,
	models.ApplicationStatusHired,
	models.ApplicationStatusRejected,
}

// IsTerminal reports whether status accepts no further employer
// transitions. Hired and rejected are terminal; withdrawn ends the
// lifecycle too since the record has left the active view.
func IsTerminal(status models.ApplicationStatus) bool {
	switch status {
	case models.ApplicationStatusHired, models.ApplicationStatusRejected,
		models.ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// CanChange reports whether an employer may move an application from
// one status to another. Any non-terminal status may move to any of the
// employer statuses; once terminal, the action is locked.
func CanChange(from, to models.ApplicationStatus) bool {
	if IsTerminal(from) {
		return false
	}
	for _, s := range EmployerStatuses {
		if s == to {
			return to != from
		}
	}
	return false
}

// CanWithdraw reports whether the owning candidate may withdraw an
// application in the given status.
func CanWithdraw(status models.ApplicationStatus) bool {
	return !IsTerminal(status)
}
