package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorklogDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"45m", 45 * 60},
		{"1h", 3600},
		{"1h 30m", 5400},
		{"1h30m", 5400},
		{"1.5h", 5400},
		{"2d", 2 * 8 * 3600},
		{"1w", 5 * 8 * 3600},
		{"1w 2d 3h 4m", 5*8*3600 + 2*8*3600 + 3*3600 + 4*60},
		{"30", 30 * 60},
		{" 2H ", 7200},
		{"0.5d", 4 * 3600},
		{"1.25", 75},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWorklogDuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWorklogDuration_Invalid(t *testing.T) {
	for _, input := range []string{
		"", "   ", "0m", "abc", "3x", "h", "-1h", "1hh",
		"1_0m", "1e9", "1e9m", "+5h", "+5", "inf", "1e300", ".5h", "1.h", "0x10m",
		"99999999999999999999w",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseWorklogDuration(input)
			assert.ErrorIs(t, err, ErrInvalidDuration)
		})
	}
}

func TestFormatWorklogDuration(t *testing.T) {
	assert.Equal(t, "1h 30m", FormatWorklogDuration(5400))
	assert.Equal(t, "1w 1d", FormatWorklogDuration(6*8*3600))
	assert.Equal(t, "1m", FormatWorklogDuration(20))
	assert.Equal(t, "0m", FormatWorklogDuration(0))
}

func TestParseWorklogStarted(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-03-09 09:15", time.Date(2026, 3, 9, 9, 15, 0, 0, time.Local)},
		{"2026-03-09T09:15", time.Date(2026, 3, 9, 9, 15, 0, 0, time.Local)},
		{" 2026-03-09 ", time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWorklogStarted(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}

	_, err := ParseWorklogStarted("yesterday")
	assert.ErrorContains(t, err, "expected YYYY-MM-DD HH:MM")
}
