package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOrderNumber(t *testing.T) {
	day := time.Date(2024, 1, 1, 15, 30, 0, 0, time.Local)

	assert.Equal(t, "20240101-1", FormatOrderNumber(day, 1))
	assert.Equal(t, "20240101-4", FormatOrderNumber(day, 4))
	assert.Equal(t, "20241231-120", FormatOrderNumber(time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local), 120))
}

func TestParseOrderNumber(t *testing.T) {
	day, seq, err := ParseOrderNumber("20240101-4")
	require.NoError(t, err)
	assert.Equal(t, 2024, day.Year())
	assert.Equal(t, time.January, day.Month())
	assert.Equal(t, 1, day.Day())
	assert.Equal(t, int64(4), seq)

	for _, bad := range []string{
		"",
		"20240101",
		"20240101-0",
		"20240101--1",
		"2024010-4",
		"20241301-4",
		"ORD-20231224183000-0042",
	} {
		_, _, err := ParseOrderNumber(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestOrderSequenceDate(t *testing.T) {
	assert.Equal(t, "20240101", OrderSequenceDate(time.Date(2024, 1, 1, 23, 59, 0, 0, time.Local)))
}

func TestIsLegacyOrderNumber(t *testing.T) {
	assert.True(t, IsLegacyOrderNumber("ORD-20231224183000-0042"))
	assert.False(t, IsLegacyOrderNumber("20240101-4"))
	assert.False(t, IsLegacyOrderNumber("ORD-2023-0042"))
}
