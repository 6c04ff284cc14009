// Package calendar provides pure date arithmetic for SLA deadline
// computation. Nothing in here holds state; every function is safe for
// concurrent use.
package calendar

import (
	"time"

	"github.com/Dee126/DSAR-sub009/internal/domain"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

const dayLayout = "2006-01-02"

// HolidaySet is an immutable lookup of non-working dates. Keys are UTC
// calendar days; callers build one per tenant and share it freely.
type HolidaySet map[string]struct{}

// NewHolidaySet normalizes the given instants to UTC calendar days.
func NewHolidaySet(days []time.Time) HolidaySet {
	set := make(HolidaySet, len(days))
	for _, d := range days {
		set[d.UTC().Format(dayLayout)] = struct{}{}
	}
	return set
}

// Contains reports whether the instant falls on a holiday.
func (h HolidaySet) Contains(t time.Time) bool {
	if h == nil {
		return false
	}
	_, ok := h[t.UTC().Format(dayLayout)]
	return ok
}

// AddDuration returns start advanced by days under the given policy.
//
// CALENDAR adds plain calendar days. BUSINESS_DAYS advances one day at a
// time, skipping Saturdays, Sundays and any date in holidays, until days
// business days have been consumed; zero days returns start unchanged.
// Negative days are rejected with INVALID_ARGUMENT. The holiday set is never
// mutated.
func AddDuration(start time.Time, days int, policy domain.CalendarPolicy, holidays HolidaySet) (time.Time, error) {
	if days < 0 {
		return time.Time{}, apperrors.NewInvalidArgument("duration days must be >= 0", map[string]any{"days": days})
	}
	switch policy {
	case domain.PolicyCalendar:
		return start.AddDate(0, 0, days), nil
	case domain.PolicyBusinessDays:
		current := start
		for consumed := 0; consumed < days; {
			current = current.AddDate(0, 0, 1)
			if isWorkingDay(current, holidays) {
				consumed++
			}
		}
		return current, nil
	default:
		return time.Time{}, apperrors.NewInvalidArgument("unknown calendar policy", map[string]any{"policy": string(policy)})
	}
}

func isWorkingDay(t time.Time, holidays HolidaySet) bool {
	switch t.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !holidays.Contains(t)
}
