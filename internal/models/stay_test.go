package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), d)

	// The calendar date is taken in the offset the client sent.
	d, err = ParseDate("2024-01-05T01:30:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("05/01/2024")
	assert.Error(t, err)
}

func TestStay_Valid(t *testing.T) {
	jan := func(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }

	assert.True(t, NewStay(jan(1), jan(5)).Valid())
	assert.False(t, NewStay(jan(5), jan(5)).Valid())
	assert.False(t, NewStay(jan(6), jan(5)).Valid())

	// Same day, different hours: still a zero-night stay.
	assert.False(t, NewStay(jan(5), jan(5).Add(20*time.Hour)).Valid())
}

func TestStay_Nights(t *testing.T) {
	s := NewStay(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 4, s.Nights())
}
