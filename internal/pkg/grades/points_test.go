package grades

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		letter    string
		points    float64
		countable bool
	}{
		{"A+", 10.0, true},
		{"A", 10.0, true},
		{"A-", 9.0, true},
		{"B+", 8.0, true},
		{"B", 7.0, true},
		{"B-", 6.0, true},
		{"C+", 5.0, true},
		{"C", 4.0, true},
		{"D", 3.0, true},
		{"F", 0.0, true},
		{"S", 10.0, true},
		{"X", 0.0, true},
		{"I", 0.0, false},
		{"W", 0.0, false},
		{"NP", 0.0, false},
		{"", 0.0, false},
		{"Z", 0.0, false},
	}

	for _, tt := range tests {
		points, ok := Points(tt.letter)
		assert.Equal(t, tt.countable, ok, "letter %q countable", tt.letter)
		if tt.countable {
			assert.Equal(t, tt.points, points, "letter %q points", tt.letter)
		}
	}
}

func TestPointsCaseAndWhitespace(t *testing.T) {
	points, ok := Points("  a+ ")
	assert.True(t, ok)
	assert.Equal(t, 10.0, points)

	points, ok = Points("b")
	assert.True(t, ok)
	assert.Equal(t, 7.0, points)
}

// Points is a pure function: repeated application yields identical results.
func TestPointsDeterministic(t *testing.T) {
	for _, letter := range []string{"A+", "B", "C", "F", "I", "W"} {
		p1, ok1 := Points(letter)
		p2, ok2 := Points(letter)
		assert.Equal(t, p1, p2, letter)
		assert.Equal(t, ok1, ok2, letter)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("A"))
	assert.True(t, Valid("I"))
	assert.True(t, Valid("w"))
	assert.False(t, Valid("Q"))
	assert.False(t, Valid(""))
}

func TestFailing(t *testing.T) {
	assert.True(t, Failing("F"))
	assert.True(t, Failing("x"))
	assert.False(t, Failing("D"))
	assert.False(t, Failing("W"))
}
