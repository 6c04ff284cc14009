package domain

import "time"

// RiskLevel bands how close a case is to breaching its SLA.
type RiskLevel string

const (
	RiskGreen  RiskLevel = "GREEN"
	RiskYellow RiskLevel = "YELLOW"
	RiskRed    RiskLevel = "RED"
)

// Deadline tracks the SLA clock for a case, one-to-one with Case.
//
// EffectiveDueAt, CurrentRisk and DaysRemaining are derived values: they are
// recomputed from {ReceivedAt, baseSlaDays, ExtensionDays, TotalPausedDays,
// now, dueSoonThresholdDays} on every mutation and never hand-edited. PausedAt
// is non-nil exactly while a clarification pause window is open.
type Deadline struct {
	CaseID          string
	BaseDueAt       time.Time
	ExtensionDays   int
	TotalPausedDays int
	PausedAt        *time.Time
	EffectiveDueAt  time.Time
	CurrentRisk     RiskLevel
	DaysRemaining   int
	UpdatedAt       time.Time
}

// Paused reports whether a pause window is currently open.
func (d *Deadline) Paused() bool {
	return d != nil && d.PausedAt != nil
}
