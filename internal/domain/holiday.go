package domain

import "time"

// Holiday is a tenant-scoped non-working day, consulted only when the tenant
// runs the business-day calendar policy. (tenant, day) is unique.
type Holiday struct {
	ID        string
	TenantID  string
	Day       time.Time
	Name      string
	Locale    string
	CreatedAt time.Time
}
