// Package deadline computes the effective due date, days remaining and risk
// band for a case. Compute is a pure function of its inputs: identical inputs
// always yield identical outputs, which is what keeps the per-case view,
// exports and dashboard tiles in agreement.
package deadline

import (
	"math"
	"time"

	"github.com/Dee126/DSAR-sub009/internal/calendar"
	"github.com/Dee126/DSAR-sub009/internal/domain"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

// Inputs carries everything the calculator needs. Now is caller-supplied;
// the calculator never reads a clock.
type Inputs struct {
	ReceivedAt           time.Time
	BaseSlaDays          int
	ExtensionDays        int
	TotalPausedDays      int
	Now                  time.Time
	DueSoonThresholdDays int
	Policy               domain.CalendarPolicy
	Holidays             calendar.HolidaySet
}

// Result is the derived deadline state.
type Result struct {
	BaseDueAt      time.Time
	EffectiveDueAt time.Time
	DaysRemaining  int
	CurrentRisk    domain.RiskLevel
}

// Compute folds the base SLA, statutory extension and accumulated paused
// duration into a concrete due date and risk band. Extension units are folded
// cumulatively; limiting statutory extension to a single use is a business
// rule owned by the caller.
func Compute(in Inputs) (Result, error) {
	if in.ExtensionDays < 0 {
		return Result{}, apperrors.NewInvalidArgument("extension days must be >= 0", map[string]any{"extension_days": in.ExtensionDays})
	}
	if in.TotalPausedDays < 0 {
		return Result{}, apperrors.NewInvalidArgument("paused days must be >= 0", map[string]any{"total_paused_days": in.TotalPausedDays})
	}

	baseDueAt, err := calendar.AddDuration(in.ReceivedAt, in.BaseSlaDays, in.Policy, in.Holidays)
	if err != nil {
		return Result{}, err
	}
	effectiveDueAt, err := calendar.AddDuration(baseDueAt, in.ExtensionDays+in.TotalPausedDays, in.Policy, in.Holidays)
	if err != nil {
		return Result{}, err
	}

	remaining := DaysUntil(effectiveDueAt, in.Now)
	return Result{
		BaseDueAt:      baseDueAt,
		EffectiveDueAt: effectiveDueAt,
		DaysRemaining:  remaining,
		CurrentRisk:    Classify(remaining, in.DueSoonThresholdDays),
	}, nil
}

// DaysUntil returns floor((due - now) in days), signed; negative means
// overdue.
func DaysUntil(due, now time.Time) int {
	return int(math.Floor(due.Sub(now).Hours() / 24))
}

// Classify partitions daysRemaining into the three risk bands. The boundary
// daysRemaining == threshold is YELLOW; daysRemaining == -1 is RED.
func Classify(daysRemaining, dueSoonThresholdDays int) domain.RiskLevel {
	switch {
	case daysRemaining < 0:
		return domain.RiskRed
	case daysRemaining <= dueSoonThresholdDays:
		return domain.RiskYellow
	default:
		return domain.RiskGreen
	}
}
