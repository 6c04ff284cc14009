// Package reporting builds tenant-wide summaries and export rows from stored
// case and deadline records. Risk and days-remaining are recomputed from
// stored inputs through the same calculator the per-case path uses, so every
// surface reports identical classifications for the same now.
package reporting

import (
	"math"
	"time"

	"github.com/Dee126/DSAR-sub009/internal/calendar"
	"github.com/Dee126/DSAR-sub009/internal/deadline"
	"github.com/Dee126/DSAR-sub009/internal/domain"
)

// Summary is the fleet-wide rollup consumed by dashboard tiles.
type Summary struct {
	TotalCases       int                      `json:"total_cases"`
	TotalOpen        int                      `json:"total_open"`
	Overdue          int                      `json:"overdue"`
	DueIn7           int                      `json:"due_in_7"`
	DueIn14          int                      `json:"due_in_14"`
	DueIn30          int                      `json:"due_in_30"`
	AvgDaysToClose   int                      `json:"avg_days_to_close"`
	ExtensionRate    int                      `json:"extension_rate"`
	RiskDistribution map[domain.RiskLevel]int `json:"risk_distribution"`
}

// Row is one case in the CSV/JSON export.
type Row struct {
	CaseNumber      string              `json:"case_number"`
	Type            domain.CaseType     `json:"type"`
	Priority        domain.CasePriority `json:"priority"`
	Status          domain.CaseStatus   `json:"status"`
	ReceivedAt      time.Time           `json:"received_at"`
	EffectiveDueAt  *time.Time          `json:"effective_due_at,omitempty"`
	ExtensionDays   int                 `json:"extension_days"`
	TotalPausedDays int                 `json:"total_paused_days"`
	DaysRemaining   *int                `json:"days_remaining,omitempty"`
	CurrentRisk     domain.RiskLevel    `json:"current_risk"`
}

// rowState is the recomputed classification for one case.
type rowState struct {
	hasDeadline    bool
	effectiveDueAt time.Time
	daysRemaining  int
	risk           domain.RiskLevel
}

// Summarize computes the tenant rollup for the supplied pairs at now. It is a
// pure, side-effect-free read: re-querying with an unchanged now yields the
// same summary.
func Summarize(pairs []domain.CaseWithDeadline, now time.Time, cfg domain.TenantSlaConfig, holidays calendar.HolidaySet) Summary {
	summary := Summary{
		TotalCases: len(pairs),
		RiskDistribution: map[domain.RiskLevel]int{
			domain.RiskGreen:  0,
			domain.RiskYellow: 0,
			domain.RiskRed:    0,
		},
	}

	var closedCount int
	var closedDaysTotal float64
	var extendedCount int

	for _, pair := range pairs {
		cs := pair.Case
		if pair.Deadline != nil && pair.Deadline.ExtensionDays > 0 {
			extendedCount++
		}
		if cs.Status == domain.CaseStatusClosed {
			closedCount++
			closedDaysTotal += cs.UpdatedAt.Sub(cs.ReceivedAt).Hours() / 24
		}
		if !cs.Status.IsOpen() {
			continue
		}
		summary.TotalOpen++

		state := classify(pair, now, cfg, holidays)
		summary.RiskDistribution[state.risk]++
		if !state.hasDeadline {
			continue
		}
		if state.effectiveDueAt.Before(now) {
			summary.Overdue++
		}
		if state.daysRemaining >= 0 {
			if state.daysRemaining <= 7 {
				summary.DueIn7++
			}
			if state.daysRemaining <= 14 {
				summary.DueIn14++
			}
			if state.daysRemaining <= 30 {
				summary.DueIn30++
			}
		}
	}

	if closedCount > 0 {
		summary.AvgDaysToClose = int(math.Round(closedDaysTotal / float64(closedCount)))
	}
	if len(pairs) > 0 {
		summary.ExtensionRate = int(math.Round(100 * float64(extendedCount) / float64(len(pairs))))
	}
	return summary
}

// Rows produces one export row per case using the same classification rules
// as Summarize.
func Rows(pairs []domain.CaseWithDeadline, now time.Time, cfg domain.TenantSlaConfig, holidays calendar.HolidaySet) []Row {
	rows := make([]Row, 0, len(pairs))
	for _, pair := range pairs {
		cs := pair.Case
		row := Row{
			CaseNumber:  cs.CaseNumber,
			Type:        cs.Type,
			Priority:    cs.Priority,
			Status:      cs.Status,
			ReceivedAt:  cs.ReceivedAt,
			CurrentRisk: domain.RiskGreen,
		}
		if pair.Deadline != nil {
			row.ExtensionDays = pair.Deadline.ExtensionDays
			row.TotalPausedDays = pair.Deadline.TotalPausedDays
		}
		state := classify(pair, now, cfg, holidays)
		if state.hasDeadline {
			due := state.effectiveDueAt
			remaining := state.daysRemaining
			row.EffectiveDueAt = &due
			row.DaysRemaining = &remaining
			row.CurrentRisk = state.risk
		}
		rows = append(rows, row)
	}
	return rows
}

// classify recomputes the deadline state for one case. Cases without a
// deadline record, or whose stored inputs no longer compute, default to GREEN
// and not-overdue: a single malformed row must not abort the tenant report.
func classify(pair domain.CaseWithDeadline, now time.Time, cfg domain.TenantSlaConfig, holidays calendar.HolidaySet) rowState {
	if pair.Deadline == nil {
		return rowState{risk: domain.RiskGreen}
	}
	result, err := deadline.Compute(deadline.Inputs{
		ReceivedAt:           pair.Case.ReceivedAt,
		BaseSlaDays:          cfg.BaseSlaDays,
		ExtensionDays:        pair.Deadline.ExtensionDays,
		TotalPausedDays:      pair.Deadline.TotalPausedDays,
		Now:                  now,
		DueSoonThresholdDays: cfg.DueSoonThresholdDays,
		Policy:               cfg.CalendarPolicy,
		Holidays:             holidays,
	})
	if err != nil {
		return rowState{risk: domain.RiskGreen}
	}
	return rowState{
		hasDeadline:    true,
		effectiveDueAt: result.EffectiveDueAt,
		daysRemaining:  result.DaysRemaining,
		risk:           result.CurrentRisk,
	}
}
