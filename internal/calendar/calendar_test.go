package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dee126/DSAR-sub009/internal/calendar"
	"github.com/Dee126/DSAR-sub009/internal/domain"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

func TestAddDurationCalendarDays(t *testing.T) {
	t.Parallel()

	// Wednesday with a weekend inside the window: calendar policy ignores it.
	start := time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

	got, err := calendar.AddDuration(start, 30, domain.PolicyCalendar, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 9, 30, 0, 0, time.UTC), got)

	got, err = calendar.AddDuration(start, 0, domain.PolicyCalendar, nil)
	require.NoError(t, err)
	assert.Equal(t, start, got)
}

func TestAddDurationBusinessDaysSkipsWeekends(t *testing.T) {
	t.Parallel()

	// Friday + 1 business day lands on Monday.
	friday := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	got, err := calendar.AddDuration(friday, 1, domain.PolicyBusinessDays, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC), got)

	// 5 business days from a Monday is the next Monday.
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	got, err = calendar.AddDuration(monday, 5, domain.PolicyBusinessDays, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), got)
}

func TestAddDurationBusinessDaysSkipsHolidays(t *testing.T) {
	t.Parallel()

	holidays := calendar.NewHolidaySet([]time.Time{
		time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), // Tuesday
	})

	monday := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	got, err := calendar.AddDuration(monday, 1, domain.PolicyBusinessDays, holidays)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 8, 8, 0, 0, 0, time.UTC), got)
}

func TestAddDurationBusinessDaysNeverLandsOnNonWorkingDay(t *testing.T) {
	t.Parallel()

	holidays := calendar.NewHolidaySet([]time.Time{
		time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC),
	})

	start := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	for days := 1; days <= 25; days++ {
		got, err := calendar.AddDuration(start, days, domain.PolicyBusinessDays, holidays)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, got.Weekday(), "days=%d", days)
		assert.NotEqual(t, time.Sunday, got.Weekday(), "days=%d", days)
		assert.False(t, holidays.Contains(got), "days=%d landed on holiday %s", days, got)
	}
}

func TestAddDurationRejectsNegativeDays(t *testing.T) {
	t.Parallel()

	_, err := calendar.AddDuration(time.Now(), -1, domain.PolicyCalendar, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"))
}

func TestAddDurationRejectsUnknownPolicy(t *testing.T) {
	t.Parallel()

	_, err := calendar.AddDuration(time.Now(), 3, domain.CalendarPolicy("LUNAR"), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"))
}

func TestHolidaySetNormalizesToUTCDay(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+5", 5*3600)
	set := calendar.NewHolidaySet([]time.Time{
		time.Date(2025, 3, 10, 3, 0, 0, 0, loc), // 2025-03-09 22:00 UTC
	})

	assert.True(t, set.Contains(time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)))
	assert.False(t, set.Contains(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)))
}
