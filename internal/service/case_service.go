package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dee126/DSAR-sub009/internal/calendar"
	"github.com/Dee126/DSAR-sub009/internal/deadline"
	"github.com/Dee126/DSAR-sub009/internal/domain"
	"github.com/Dee126/DSAR-sub009/internal/events"
	"github.com/Dee126/DSAR-sub009/internal/lifecycle"
	"github.com/Dee126/DSAR-sub009/internal/repository"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

// CaseService orchestrates case intake, transitions and deadline edits. It
// resolves tenant configuration, invokes the pure lifecycle engine and
// persists the resulting mutation as one atomic unit.
type CaseService struct {
	cases       repository.CaseRepository
	transitions repository.TransitionRepository
	holidays    repository.HolidayRepository
	tenantCfg   repository.TenantConfigRepository
	dispatcher  events.Dispatcher
}

// CaseDependencies bundles repositories for the case service.
type CaseDependencies struct {
	CaseRepo       repository.CaseRepository
	TransitionRepo repository.TransitionRepository
	HolidayRepo    repository.HolidayRepository
	TenantCfgRepo  repository.TenantConfigRepository
	Dispatcher     events.Dispatcher
}

// CaseCreateInput describes intake payload.
type CaseCreateInput struct {
	Type       domain.CaseType
	Priority   domain.CasePriority
	SubjectRef string
	ReceivedAt *time.Time
}

// CaseDetail is a case with its recomputed deadline and transition history.
type CaseDetail struct {
	Case     domain.Case
	Deadline domain.Deadline
	History  []domain.StateTransition
}

// NewCaseService constructs the service.
func NewCaseService(deps CaseDependencies) *CaseService {
	return &CaseService{
		cases:       deps.CaseRepo,
		transitions: deps.TransitionRepo,
		holidays:    deps.HolidayRepo,
		tenantCfg:   deps.TenantCfgRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// CreateCase performs intake: the case starts in NEW with a deadline computed
// from the tenant's base SLA.
func (s *CaseService) CreateCase(ctx context.Context, tenantID, actorID string, input CaseCreateInput) (*domain.Case, *domain.Deadline, error) {
	if input.Type == "" {
		return nil, nil, apperrors.NewValidationError("case type required", nil)
	}
	now := time.Now().UTC()
	receivedAt := now
	if input.ReceivedAt != nil {
		receivedAt = input.ReceivedAt.UTC()
	}

	env, err := s.resolveEnv(ctx, tenantID, now)
	if err != nil {
		return nil, nil, err
	}

	result, err := deadline.Compute(deadline.Inputs{
		ReceivedAt:           receivedAt,
		BaseSlaDays:          env.Config.BaseSlaDays,
		Now:                  now,
		DueSoonThresholdDays: env.Config.DueSoonThresholdDays,
		Policy:               env.Config.CalendarPolicy,
		Holidays:             env.Holidays,
	})
	if err != nil {
		return nil, nil, err
	}

	cs := &domain.Case{
		TenantID:   tenantID,
		CaseNumber: generateCaseNumber(receivedAt.Year()),
		Type:       input.Type,
		Priority:   input.Priority,
		Status:     domain.CaseStatusNew,
		SubjectRef: strings.TrimSpace(input.SubjectRef),
		ReceivedAt: receivedAt,
	}
	if cs.Priority == "" {
		cs.Priority = domain.CasePriorityMedium
	}
	dl := &domain.Deadline{
		BaseDueAt:      result.BaseDueAt,
		EffectiveDueAt: result.EffectiveDueAt,
		CurrentRisk:    result.CurrentRisk,
		DaysRemaining:  result.DaysRemaining,
		UpdatedAt:      now,
	}

	if err := s.cases.Create(ctx, cs, dl); err != nil {
		return nil, nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventCaseCreated,
		TenantID: tenantID,
		CaseID:   cs.ID,
		ActorID:  actorID,
		Payload: events.CaseCreatedPayload{
			CaseNumber:     cs.CaseNumber,
			Type:           cs.Type,
			Priority:       cs.Priority,
			ReceivedAt:     cs.ReceivedAt,
			EffectiveDueAt: dl.EffectiveDueAt,
		},
	})
	return cs, dl, nil
}

// GetCase returns the case with deadline fields recomputed against now and
// its full transition history.
func (s *CaseService) GetCase(ctx context.Context, tenantID, caseID string, now time.Time) (*CaseDetail, error) {
	cs, dl, err := s.cases.GetWithDeadline(ctx, tenantID, caseID)
	if err != nil {
		return nil, err
	}
	env, err := s.resolveEnv(ctx, tenantID, now)
	if err != nil {
		return nil, err
	}
	refreshed, err := lifecycle.Refresh(*cs, *dl, env)
	if err != nil {
		return nil, err
	}
	history, err := s.transitions.ListByCase(ctx, cs.ID)
	if err != nil {
		return nil, err
	}
	return &CaseDetail{Case: *cs, Deadline: refreshed, History: history}, nil
}

// ListCases returns the tenant's cases with deadline fields recomputed
// against now, so listings classify exactly like the per-case view.
func (s *CaseService) ListCases(ctx context.Context, tenantID string, filter repository.CaseFilter, now time.Time) ([]domain.CaseWithDeadline, error) {
	pairs, err := s.cases.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	env, err := s.resolveEnv(ctx, tenantID, now)
	if err != nil {
		return nil, err
	}
	for i := range pairs {
		if pairs[i].Deadline == nil {
			continue
		}
		refreshed, err := lifecycle.Refresh(pairs[i].Case, *pairs[i].Deadline, env)
		if err != nil {
			continue
		}
		pairs[i].Deadline = &refreshed
	}
	return pairs, nil
}

// Transition applies a status change through the lifecycle engine and
// persists status, deadline and ledger entry atomically. A concurrent writer
// losing the version check surfaces CONCURRENT_MODIFICATION unchanged.
func (s *CaseService) Transition(ctx context.Context, tenantID, caseID, actorID string, to domain.CaseStatus, reason *string, now time.Time) (*CaseDetail, error) {
	cs, dl, err := s.cases.GetWithDeadline(ctx, tenantID, caseID)
	if err != nil {
		return nil, err
	}
	env, err := s.resolveEnv(ctx, tenantID, now)
	if err != nil {
		return nil, err
	}

	mutation, err := lifecycle.Transition(*cs, *dl, lifecycle.TransitionCommand{
		To:      to,
		ActorID: actorID,
		Reason:  reason,
	}, env)
	if err != nil {
		return nil, err
	}

	if err := s.cases.ApplyMutation(ctx, &mutation.Case, &mutation.Deadline, mutation.Record); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventCaseTransitioned,
		TenantID: tenantID,
		CaseID:   mutation.Case.ID,
		ActorID:  actorID,
		Payload: events.CaseTransitionedPayload{
			CaseNumber: mutation.Change.CaseNumber,
			FromStatus: mutation.Change.FromStatus,
			ToStatus:   mutation.Change.ToStatus,
			Reason:     reason,
		},
	})

	history, err := s.transitions.ListByCase(ctx, mutation.Case.ID)
	if err != nil {
		return nil, err
	}
	return &CaseDetail{Case: mutation.Case, Deadline: mutation.Deadline, History: history}, nil
}

// Extend applies the statutory deadline extension. The calculator folds
// extensions cumulatively; this service enforces the single-use business rule
// so a second extension is rejected with CONFLICT.
func (s *CaseService) Extend(ctx context.Context, tenantID, caseID, actorID string, days int, now time.Time) (*CaseDetail, error) {
	cs, dl, err := s.cases.GetWithDeadline(ctx, tenantID, caseID)
	if err != nil {
		return nil, err
	}
	if dl.ExtensionDays > 0 {
		return nil, apperrors.NewConflict("statutory extension already applied", map[string]any{"extension_days": dl.ExtensionDays})
	}
	env, err := s.resolveEnv(ctx, tenantID, now)
	if err != nil {
		return nil, err
	}

	mutation, err := lifecycle.Extend(*cs, *dl, days, env)
	if err != nil {
		return nil, err
	}
	if err := s.cases.ApplyMutation(ctx, &mutation.Case, &mutation.Deadline, mutation.Record); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventDeadlineExtended,
		TenantID: tenantID,
		CaseID:   mutation.Case.ID,
		ActorID:  actorID,
		Payload: events.DeadlineExtendedPayload{
			CaseNumber:     mutation.Case.CaseNumber,
			ExtensionDays:  mutation.Deadline.ExtensionDays,
			EffectiveDueAt: mutation.Deadline.EffectiveDueAt,
		},
	})

	history, err := s.transitions.ListByCase(ctx, mutation.Case.ID)
	if err != nil {
		return nil, err
	}
	return &CaseDetail{Case: mutation.Case, Deadline: mutation.Deadline, History: history}, nil
}

// resolveEnv loads tenant SLA configuration and, for business-day tenants,
// the holiday set, into an explicit engine environment.
func (s *CaseService) resolveEnv(ctx context.Context, tenantID string, now time.Time) (lifecycle.Env, error) {
	cfg, err := s.tenantCfg.Get(ctx, tenantID)
	if err != nil {
		return lifecycle.Env{}, err
	}
	if cfg.BaseSlaDays <= 0 {
		return lifecycle.Env{}, apperrors.NewInvalidArgument("tenant base SLA days not configured", map[string]any{"tenant_id": tenantID})
	}
	if !cfg.CalendarPolicy.Valid() {
		return lifecycle.Env{}, apperrors.NewInvalidArgument("tenant calendar policy not configured", map[string]any{"tenant_id": tenantID})
	}

	env := lifecycle.Env{Now: now, Config: *cfg}
	if cfg.CalendarPolicy == domain.PolicyBusinessDays {
		holidays, err := s.holidays.ListByTenant(ctx, tenantID)
		if err != nil {
			return lifecycle.Env{}, err
		}
		days := make([]time.Time, 0, len(holidays))
		for _, h := range holidays {
			days = append(days, h.Day)
		}
		env.Holidays = calendar.NewHolidaySet(days)
	}
	return env, nil
}

func (s *CaseService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

const caseNumberAlphabetSize = 36

// generateCaseNumber returns DSAR-<year>-<6 random base36 chars>.
func generateCaseNumber(year int) string {
	u := uuid.New()
	n := new(big.Int).SetBytes(u[:])
	var chars [6]byte
	const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	mod := new(big.Int)
	for i := range chars {
		n.DivMod(n, big.NewInt(caseNumberAlphabetSize), mod)
		chars[i] = digits[mod.Int64()]
	}
	return fmt.Sprintf("DSAR-%d-%s", year, string(chars[:]))
}
