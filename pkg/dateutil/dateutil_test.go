package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAgeCalculation tests the age calculation function with various scenarios
func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
	}{
		{
			name:        "Same month and day",
			birthDate:   time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedAge: 40,
		},
		{
			name:        "Day before birthday",
			birthDate:   time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			expectedAge: 39,
		},
		{
			name:        "Month after birthday",
			birthDate:   time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			expectedAge: 40,
		},
		{
			name:        "Month before birthday",
			birthDate:   time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
			expectedAge: 39,
		},
		{
			name:        "Leap year birth, non-leap year check",
			birthDate:   time.Date(1964, 2, 29, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
			expectedAge: 60,
		},
		{
			name:        "Leap year birth, leap year check",
			birthDate:   time.Date(1964, 2, 29, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			expectedAge: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, Age(tt.birthDate, tt.atDate))
		})
	}
}

func TestOrToday(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, OrToday(fixed))

	today := OrToday(time.Time{})
	assert.False(t, today.IsZero())
	assert.Equal(t, 0, today.Hour())
}

func TestDateForAge(t *testing.T) {
	birth := time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2050, 6, 15, 0, 0, 0, 0, time.UTC), DateForAge(birth, 65))
	assert.Equal(t, 65, Age(birth, DateForAge(birth, 65)))
}
