package domain

// CalendarPolicy selects how SLA durations map onto the calendar.
type CalendarPolicy string

const (
	// PolicyCalendar counts plain calendar days; weekends and holidays consume
	// SLA time.
	PolicyCalendar CalendarPolicy = "CALENDAR"
	// PolicyBusinessDays skips Saturdays, Sundays and tenant holidays when
	// consuming SLA days.
	PolicyBusinessDays CalendarPolicy = "BUSINESS_DAYS"
)

// Valid reports whether the policy is one of the known values.
func (p CalendarPolicy) Valid() bool {
	return p == PolicyCalendar || p == PolicyBusinessDays
}

// TenantSlaConfig is the per-tenant SLA configuration, owned by configuration
// management and read-only input to the deadline engine.
type TenantSlaConfig struct {
	TenantID             string
	BaseSlaDays          int
	DueSoonThresholdDays int
	CalendarPolicy       CalendarPolicy
}
