package termcode

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		code string
		year int
		seq  int
	}{
		{"2025-I", 2025, 1},
		{"2025-II", 2025, 2},
		{"2026-I", 2026, 1},
		{"2023-24 Autumn", 2023, 3},
		{"2024 Spring", 2024, 1},
		{"2024-Summer", 2024, 2},
	}

	for _, tt := range tests {
		key := Parse(tt.code)
		assert.Equal(t, tt.year, key.Year, tt.code)
		assert.Equal(t, tt.seq, key.Seq, tt.code)
	}
}

// Chronological order must hold even where lexical order disagrees:
// sorted as strings, "2025-II" would come before "2025-I" is false, but
// "2025-II" also sorts before "2025-X" style codes inconsistently. The
// key must pin I < II within a year and years ascending across.
func TestLessChronological(t *testing.T) {
	codes := []string{"2026-I", "2025-I", "2025-II"}
	sort.Slice(codes, func(i, j int) bool { return Less(codes[i], codes[j]) })
	assert.Equal(t, []string{"2025-I", "2025-II", "2026-I"}, codes)
}

func TestLessMixedFormats(t *testing.T) {
	assert.True(t, Less("2023-24 Autumn", "2024 Spring"))
	assert.True(t, Less("2024 Spring", "2024-Summer"))
	assert.True(t, Less("2024-Summer", "2025-I"))
}

func TestLessStableForUnknown(t *testing.T) {
	// Unrecognized designators still produce a deterministic order.
	assert.Equal(t, Less("2025-Q1", "2025-Q2"), !Less("2025-Q2", "2025-Q1"))
}
