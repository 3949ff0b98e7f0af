package eligibility

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsys/aims/internal/pkg/apperrors"
)

func slot(id int64) *int64 {
	return &id
}

func TestCheck_SlotClash(t *testing.T) {
	existing := []ActiveEnrollment{
		{CourseCode: "CS201", SlotID: slot(3), SlotLabel: "3", Credits: 4},
	}
	cand := Candidate{CourseCode: "MA202", SlotID: slot(3), SlotLabel: "3", Credits: 4}

	err := Check(existing, cand, 24)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrScheduleConflict))

	details := apperrors.Details(err)
	require.NotNil(t, details)
	assert.Equal(t, "CS201", details["clashingCourse"])
	assert.Equal(t, "3", details["slot"])
	assert.Contains(t, err.Error(), "CS201")
}

func TestCheck_SlotClashRegardlessOfOrder(t *testing.T) {
	a := ActiveEnrollment{CourseCode: "CS201", SlotID: slot(3), SlotLabel: "3", Credits: 4}
	b := ActiveEnrollment{CourseCode: "EE203", SlotID: slot(5), SlotLabel: "5", Credits: 3}
	cand := Candidate{CourseCode: "MA202", SlotID: slot(3), SlotLabel: "3", Credits: 4}

	for _, existing := range [][]ActiveEnrollment{{a, b}, {b, a}} {
		err := Check(existing, cand, 24)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrScheduleConflict))
	}
}

func TestCheck_TBANeverClashes(t *testing.T) {
	existing := []ActiveEnrollment{
		{CourseCode: "CS201", SlotID: nil, Credits: 4},
	}

	// Candidate without a slot against an enrolled course without a slot.
	err := Check(existing, Candidate{CourseCode: "MA202", SlotID: nil, Credits: 4}, 24)
	assert.NoError(t, err)

	// Candidate with a slot against a TBA enrollment.
	err = Check(existing, Candidate{CourseCode: "MA202", SlotID: slot(3), SlotLabel: "3", Credits: 4}, 24)
	assert.NoError(t, err)
}

func TestCheck_CreditCeiling(t *testing.T) {
	existing := []ActiveEnrollment{
		{CourseCode: "CS201", SlotID: slot(3), SlotLabel: "3", Credits: 4},
	}

	// 4 + 21 = 25 > 24 fails.
	err := Check(existing, Candidate{CourseCode: "HS101", SlotID: slot(5), SlotLabel: "5", Credits: 21}, 24)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCreditLimitExceeded))

	details := apperrors.Details(err)
	require.NotNil(t, details)
	assert.Equal(t, 4.0, details["currentCredits"])
	assert.Equal(t, 25.0, details["attemptedCredits"])
	assert.Equal(t, 24.0, details["creditCeiling"])

	// 4 + 20 = 24 lands exactly at the ceiling and passes.
	err = Check(existing, Candidate{CourseCode: "HS102", SlotID: slot(5), SlotLabel: "5", Credits: 20}, 24)
	assert.NoError(t, err)
}

func TestCheck_SlotClashCheckedBeforeCeiling(t *testing.T) {
	existing := []ActiveEnrollment{
		{CourseCode: "CS201", SlotID: slot(3), SlotLabel: "3", Credits: 20},
	}

	// Both rules would fail; the clash is reported.
	err := Check(existing, Candidate{CourseCode: "MA202", SlotID: slot(3), SlotLabel: "3", Credits: 20}, 24)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrScheduleConflict))
}

func TestCheck_NoExistingEnrollments(t *testing.T) {
	err := Check(nil, Candidate{CourseCode: "CS201", SlotID: slot(3), SlotLabel: "3", Credits: 24}, 24)
	assert.NoError(t, err)

	err = Check(nil, Candidate{CourseCode: "CS201", SlotID: slot(3), SlotLabel: "3", Credits: 25}, 24)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCreditLimitExceeded))
}
