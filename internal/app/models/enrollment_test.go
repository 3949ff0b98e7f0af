package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsys/aims/internal/pkg/apperrors"
)

func TestNextStatus_LegalTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current EnrollmentStatus
		actor   RoleType
		approve bool
		want    EnrollmentStatus
	}{
		{"instructor approve", EnrollmentPendingInstructor, RoleInstructor, true, EnrollmentPendingAdvisor},
		{"instructor reject", EnrollmentPendingInstructor, RoleInstructor, false, EnrollmentRejectedInstructor},
		{"advisor approve", EnrollmentPendingAdvisor, RoleAdvisor, true, EnrollmentApproved},
		{"advisor reject", EnrollmentPendingAdvisor, RoleAdvisor, false, EnrollmentRejectedAdvisor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(tt.current, tt.actor, tt.approve)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextStatus_IllegalCombinations(t *testing.T) {
	tests := []struct {
		name    string
		current EnrollmentStatus
		actor   RoleType
	}{
		{"advisor too early", EnrollmentPendingInstructor, RoleAdvisor},
		{"instructor too late", EnrollmentPendingAdvisor, RoleInstructor},
		{"instructor on approved", EnrollmentApproved, RoleInstructor},
		{"advisor on approved", EnrollmentApproved, RoleAdvisor},
		{"instructor on rejected", EnrollmentRejectedInstructor, RoleInstructor},
		{"student cannot decide", EnrollmentPendingInstructor, RoleStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NextStatus(tt.current, tt.actor, true)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrNotPermitted))

			// The failure names the record's current status.
			details := apperrors.Details(err)
			require.NotNil(t, details)
			assert.Equal(t, string(tt.current), details["currentStatus"])
		})
	}
}

func TestNextStatus_SecondApproveFails(t *testing.T) {
	first, err := NextStatus(EnrollmentPendingInstructor, RoleInstructor, true)
	require.NoError(t, err)
	assert.Equal(t, EnrollmentPendingAdvisor, first)

	// Repeating the instructor approval against the advanced state fails
	// and leaves the effective status reflecting only the first call.
	_, err = NextStatus(first, RoleInstructor, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotPermitted))
}

func TestEnrollmentStatus_Active(t *testing.T) {
	assert.True(t, EnrollmentPendingInstructor.Active())
	assert.True(t, EnrollmentPendingAdvisor.Active())
	assert.True(t, EnrollmentApproved.Active())
	assert.False(t, EnrollmentRejectedInstructor.Active())
	assert.False(t, EnrollmentRejectedAdvisor.Active())
	assert.False(t, EnrollmentWithdrawn.Active())
}

func TestEnrollmentStatus_IsValid(t *testing.T) {
	assert.True(t, EnrollmentApproved.IsValid())
	assert.False(t, EnrollmentStatus("Pending_Advisor").IsValid())
	assert.False(t, EnrollmentStatus("").IsValid())
}
