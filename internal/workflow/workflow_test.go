package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobportal_backend/internal/models"
)

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status models.ApplicationStatus
		want   bool
	}{
		{models.ApplicationStatusReceived, false},
		{models.ApplicationStatusUnderReview, false},
		{models.ApplicationStatusInterview, false},
		{models.ApplicationStatusHired, true},
		{models.ApplicationStatusRejected, true},
		{models.ApplicationStatusWithdrawn, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsTerminal(tt.status), "IsTerminal(%q)", tt.status)
	}
}

func TestCanChange_FromActiveStatuses(t *testing.T) {
	active := []models.ApplicationStatus{
		models.ApplicationStatusReceived,
		models.ApplicationStatusUnderReview,
		models.ApplicationStatusInterview,
	}

	for _, from := range active {
		for _, to := range EmployerStatuses {
			if to == from {
				assert.False(t, CanChange(from, to), "no-op change %q -> %q must be rejected", from, to)
				continue
			}
			assert.True(t, CanChange(from, to), "change %q -> %q should be allowed", from, to)
		}
	}
}

func TestCanChange_TerminalStatusesAreLocked(t *testing.T) {
	for _, from := range []models.ApplicationStatus{
		models.ApplicationStatusHired,
		models.ApplicationStatusRejected,
		models.ApplicationStatusWithdrawn,
	} {
		for _, to := range EmployerStatuses {
			assert.False(t, CanChange(from, to), "change %q -> %q must be blocked", from, to)
		}
	}
}

func TestCanChange_WithdrawnNotReachableByEmployer(t *testing.T) {
	assert.False(t, CanChange(models.ApplicationStatusReceived, models.ApplicationStatusWithdrawn))
	assert.False(t, CanChange(models.ApplicationStatusInterview, models.ApplicationStatusWithdrawn))
}

func TestCanWithdraw(t *testing.T) {
	assert.True(t, CanWithdraw(models.ApplicationStatusReceived))
	assert.True(t, CanWithdraw(models.ApplicationStatusUnderReview))
	assert.True(t, CanWithdraw(models.ApplicationStatusInterview))
	assert.False(t, CanWithdraw(models.ApplicationStatusHired))
	assert.False(t, CanWithdraw(models.ApplicationStatusRejected))
	assert.False(t, CanWithdraw(models.ApplicationStatusWithdrawn))
}
