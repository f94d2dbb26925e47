package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_ingest/internal/scheduler"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *got)

	got, err = ParseDate("2024-03-01T10:00:00-03:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)))

	_, err = ParseDate("01/03/2024")
	assert.Error(t, err)
}

func TestParseRange(t *testing.T) {
	from, to, err := ParseRange("2024-03-01", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *to)

	from, to, err = ParseRange("", "2024-03-05")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.NotNil(t, to)

	_, _, err = ParseRange("2024-03-05", "2024-03-01")
	assert.ErrorIs(t, err, scheduler.ErrInvertedRange)

	_, _, err = ParseRange("2024-03-01", "tomorrow")
	assert.Error(t, err)
}

func TestDays(t *testing.T) {
	assert.Equal(t, 7, Days(7, []string{"14"}, 30))
	assert.Equal(t, 14, Days(0, []string{"x", "14"}, 30))
	assert.Equal(t, 30, Days(0, []string{"-3", "abc"}, 30))
	assert.Equal(t, 30, Days(0, nil, 30))
}

func TestMode(t *testing.T) {
	assert.Equal(t, scheduler.ModeRecent, Mode(false, false))
	assert.Equal(t, scheduler.ModeBackfill, Mode(false, true))
	assert.Equal(t, scheduler.ModeRescan, Mode(true, true))
}
