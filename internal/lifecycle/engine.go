// Package lifecycle validates case status transitions and produces
// persisted-ready mutations. The engine is pure: it never touches storage or
// a clock, so atomicity of the status/deadline/ledger triple is owned by the
// repository transaction that applies a Mutation.
package lifecycle

import (
	"math"
	"time"

	"github.com/Dee126/DSAR-sub009/internal/calendar"
	"github.com/Dee126/DSAR-sub009/internal/deadline"
	"github.com/Dee126/DSAR-sub009/internal/domain"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

// Env carries the per-call inputs the engine needs: the caller-supplied now
// and the tenant's SLA configuration and holiday set.
type Env struct {
	Now      time.Time
	Config   domain.TenantSlaConfig
	Holidays calendar.HolidaySet
}

// TransitionCommand describes a requested status change.
type TransitionCommand struct {
	To      domain.CaseStatus
	ActorID string
	Reason  *string
}

// ChangeEvent describes a successful change for audit-log and webhook
// forwarding by the caller.
type ChangeEvent struct {
	CaseID     string
	CaseNumber string
	FromStatus domain.CaseStatus
	ToStatus   domain.CaseStatus
}

// Mutation is the persisted-ready result of a transition or deadline edit.
// Record is nil for deadline edits; the ledger holds status changes only.
type Mutation struct {
	Case     domain.Case
	Deadline domain.Deadline
	Record   *domain.StateTransition
	Change   ChangeEvent
}

// Transition validates and applies a status change, managing the pause window
// and recomputing the deadline. On any validation failure the inputs are left
// untouched and no mutation is produced.
func Transition(cs domain.Case, dl domain.Deadline, cmd TransitionCommand, env Env) (*Mutation, error) {
	if !KnownStatus(cmd.To) {
		return nil, apperrors.NewInvalidArgument("unknown target status", map[string]any{"to": string(cmd.To)})
	}
	if !IsValidTransition(cs.Status, cmd.To) {
		return nil, apperrors.NewInvalidTransition(string(cs.Status), string(cmd.To))
	}

	if cmd.To == domain.CaseStatusPendingClarification {
		// Overlapping pause windows are forbidden.
		if dl.Paused() {
			return nil, apperrors.NewInvalidTransition(string(cs.Status), string(cmd.To))
		}
		pausedAt := env.Now
		dl.PausedAt = &pausedAt
	} else if dl.Paused() {
		// Leaving PENDING_CLARIFICATION by any edge closes the window.
		dl.TotalPausedDays += elapsedWholeDays(*dl.PausedAt, env.Now)
		dl.PausedAt = nil
	}

	from := cs.Status
	cs.Status = cmd.To
	cs.UpdatedAt = env.Now

	if err := recompute(&cs, &dl, env); err != nil {
		return nil, err
	}

	record := &domain.StateTransition{
		CaseID:     cs.ID,
		FromStatus: from,
		ToStatus:   cmd.To,
		ChangedBy:  cmd.ActorID,
		Reason:     cmd.Reason,
		ChangedAt:  env.Now,
	}
	return &Mutation{
		Case:     cs,
		Deadline: dl,
		Record:   record,
		Change: ChangeEvent{
			CaseID:     cs.ID,
			CaseNumber: cs.CaseNumber,
			FromStatus: from,
			ToStatus:   cmd.To,
		},
	}, nil
}

// Extend applies a statutory extension of the given whole days and recomputes
// the deadline. Repeated extensions fold cumulatively here; single-use
// enforcement is a caller-side business rule. No ledger record is produced
// since the status does not change.
func Extend(cs domain.Case, dl domain.Deadline, days int, env Env) (*Mutation, error) {
	if days <= 0 {
		return nil, apperrors.NewInvalidArgument("extension days must be > 0", map[string]any{"days": days})
	}
	if cs.Status.IsTerminal() {
		return nil, apperrors.NewInvalidTransition(string(cs.Status), string(cs.Status))
	}

	dl.ExtensionDays += days
	cs.UpdatedAt = env.Now
	if err := recompute(&cs, &dl, env); err != nil {
		return nil, err
	}
	return &Mutation{
		Case:     cs,
		Deadline: dl,
		Change: ChangeEvent{
			CaseID:     cs.ID,
			CaseNumber: cs.CaseNumber,
			FromStatus: cs.Status,
			ToStatus:   cs.Status,
		},
	}, nil
}

// Refresh recomputes the derived deadline fields against a new now without
// changing status, extension or paused bookkeeping. Used by read paths that
// persist eagerly recomputed values.
func Refresh(cs domain.Case, dl domain.Deadline, env Env) (domain.Deadline, error) {
	if err := recompute(&cs, &dl, env); err != nil {
		return domain.Deadline{}, err
	}
	return dl, nil
}

func recompute(cs *domain.Case, dl *domain.Deadline, env Env) error {
	result, err := deadline.Compute(deadline.Inputs{
		ReceivedAt:           cs.ReceivedAt,
		BaseSlaDays:          env.Config.BaseSlaDays,
		ExtensionDays:        dl.ExtensionDays,
		TotalPausedDays:      dl.TotalPausedDays,
		Now:                  env.Now,
		DueSoonThresholdDays: env.Config.DueSoonThresholdDays,
		Policy:               env.Config.CalendarPolicy,
		Holidays:             env.Holidays,
	})
	if err != nil {
		return err
	}
	dl.BaseDueAt = result.BaseDueAt
	dl.EffectiveDueAt = result.EffectiveDueAt
	dl.DaysRemaining = result.DaysRemaining
	dl.CurrentRisk = result.CurrentRisk
	dl.UpdatedAt = env.Now
	return nil
}

// elapsedWholeDays returns ceil(resume - pauseStart) in days, never negative.
func elapsedWholeDays(pausedAt, now time.Time) int {
	hours := now.Sub(pausedAt).Hours()
	if hours <= 0 {
		return 0
	}
	return int(math.Ceil(hours / 24))
}
