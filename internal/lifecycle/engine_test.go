package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dee126/DSAR-sub009/internal/domain"
	"github.com/Dee126/DSAR-sub009/internal/lifecycle"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

var receivedAt = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func testEnv(now time.Time) lifecycle.Env {
	return lifecycle.Env{
		Now: now,
		Config: domain.TenantSlaConfig{
			TenantID:             "t1",
			BaseSlaDays:          30,
			DueSoonThresholdDays: 7,
			CalendarPolicy:       domain.PolicyCalendar,
		},
	}
}

func testCase(status domain.CaseStatus) (domain.Case, domain.Deadline) {
	cs := domain.Case{
		ID:         "c1",
		TenantID:   "t1",
		CaseNumber: "DSAR-2025-000001",
		Type:       domain.CaseTypeAccess,
		Priority:   domain.CasePriorityMedium,
		Status:     status,
		ReceivedAt: receivedAt,
		CreatedAt:  receivedAt,
		UpdatedAt:  receivedAt,
		Version:    1,
	}
	dl := domain.Deadline{
		CaseID:         "c1",
		BaseDueAt:      receivedAt.AddDate(0, 0, 30),
		EffectiveDueAt: receivedAt.AddDate(0, 0, 30),
		CurrentRisk:    domain.RiskGreen,
		DaysRemaining:  30,
		UpdatedAt:      receivedAt,
	}
	return cs, dl
}

func TestTransitionRecordsLedgerEntry(t *testing.T) {
	t.Parallel()

	cs, dl := testCase(domain.CaseStatusNew)
	now := receivedAt.Add(2 * time.Hour)
	reason := "document upload received"

	mut, err := lifecycle.Transition(cs, dl, lifecycle.TransitionCommand{
		To:      domain.CaseStatusIdentityVerification,
		ActorID: "a1",
		Reason:  &reason,
	}, testEnv(now))
	require.NoError(t, err)

	assert.Equal(t, domain.CaseStatusIdentityVerification, mut.Case.Status)
	assert.Equal(t, now, mut.Case.UpdatedAt)

	require.NotNil(t, mut.Record)
	assert.Equal(t, "c1", mut.Record.CaseID)
	assert.Equal(t, domain.CaseStatusNew, mut.Record.FromStatus)
	assert.Equal(t, domain.CaseStatusIdentityVerification, mut.Record.ToStatus)
	assert.Equal(t, "a1", mut.Record.ChangedBy)
	require.NotNil(t, mut.Record.Reason)
	assert.Equal(t, reason, *mut.Record.Reason)
	assert.Equal(t, now, mut.Record.ChangedAt)

	assert.Equal(t, domain.CaseStatusNew, mut.Change.FromStatus)
	assert.Equal(t, domain.CaseStatusIdentityVerification, mut.Change.ToStatus)
}

func TestTransitionInvalidLeavesInputsUntouched(t *testing.T) {
	t.Parallel()

	cs, dl := testCase(domain.CaseStatusNew)
	mut, err := lifecycle.Transition(cs, dl, lifecycle.TransitionCommand{
		To:      domain.CaseStatusClosed,
		ActorID: "a1",
	}, testEnv(receivedAt))

	require.Error(t, err)
	assert.Nil(t, mut)
	assert.True(t, apperrors.IsCode(err, "INVALID_TRANSITION"))
	assert.Equal(t, domain.CaseStatusNew, cs.Status)
	assert.Nil(t, dl.PausedAt)
}

func TestTransitionRejectsUnknownTarget(t *testing.T) {
	t.Parallel()

	cs, dl := testCase(domain.CaseStatusNew)
	_, err := lifecycle.Transition(cs, dl, lifecycle.TransitionCommand{
		To:      domain.CaseStatus("ARCHIVED"),
		ActorID: "a1",
	}, testEnv(receivedAt))

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"))
}

func TestPauseOpensWindow(t *testing.T) {
	t.Parallel()

	cs, dl := testCase(domain.CaseStatusInProgress)
	now := receivedAt.AddDate(0, 0, 10)

	mut, err := lifecycle.Transition(cs, dl, lifecycle.TransitionCommand{
		To:      domain.CaseStatusPendingClarification,
		ActorID: "a1",
	}, testEnv(now))
	require.NoError(t, err)

	require.NotNil(t, mut.Deadline.PausedAt)
	assert.Equal(t, now, *mut.Deadline.PausedAt)
	assert.Equal(t, 0, mut.Deadline.TotalPausedDays)
	// Pausing does not move the due date until the window closes.
	assert.Equal(t, receivedAt.AddDate(0, 0, 30), mut.Deadline.EffectiveDueAt)
}

func TestResumeFoldsPausedDaysAndFreezesRemaining(t *testing.T) {
	t.Parallel()

	cs, dl := testCase(domain.CaseStatusInProgress)
	pauseAt := receivedAt.AddDate(0, 0, 10)

	paused, err := lifecycle.Transition(cs, dl, lifecycle.TransitionCommand{
		To:      domain.CaseStatusPendingClarification,
		ActorID: "a1",
	}, testEnv(pauseAt))
	require.NoError(t, err)
	remainingAtPause := paused.Deadline.DaysRemaining

	resumeAt := pauseAt.AddDate(0, 0, 6)
	resumed, err := lifecycle.Transition(paused.Case, paused.Deadline, lifecycle.TransitionCommand{
		To:      domain.CaseStatusInProgress,
		ActorID: "a1",
	}, testEnv(resumeAt))
	require.NoError(t, err)

	assert.Nil(t, resumed.Deadline.PausedAt)
	assert.Equal(t, 6, resumed.Deadline.TotalPausedDays)
	assert.Equal(t, receivedAt.AddDate(0, 0, 36), resumed.Deadline.EffectiveDueAt)
	// The clock was stopped for exactly the paused span, so daysRemaining
	// picks up where it left off.
	assert.Equal(t, remainingAtPause, resumed.Deadline.DaysRemaining)
}

func TestPausedDaysRoundUpToWholeDays(t *testing.T) {
	t.Parallel()

	cs, dl := testCase(domain.CaseStatusInProgress)
	pauseAt := receivedAt.AddDate(0, 0, 5)

	paused, err := lifecycle.Transition(cs, dl, lifecycle.TransitionCommand{
		To:      domain.CaseStatusPendingClarification,
		ActorID: "a1",
	}, testEnv(pauseAt))
	require.NoError(t, err)

	// 36 hours paused counts as 2 whole days.
	resumed, err := lifecycle.Transition(paused.Case, paused.Deadline, lifecycle.TransitionCommand{
		To:      domain.CaseStatusInProgress,
		ActorID: "a1",
	}, testEnv(pauseAt.Add(36*time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, 2, resumed.Deadline.TotalPausedDays)
}

func TestDoublePauseRejected(t *testing.T) {
	t.Parallel()

	cs, dl := testCase(domain.CaseStatusInProgress)
	pausedAt := receivedAt.AddDate(0, 0, 3)
	dl.PausedAt = &pausedAt

	_, err := lifecycle.Transition(cs, dl, lifecycle.TransitionCommand{
		To:      domain.CaseStatusPendingClarification,
		ActorID: "a1",
	}, testEnv(pausedAt.AddDate(0, 0, 1)))

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_TRANSITION"))
}

func TestRejectClosesOpenPauseWindow(t *testing.T) {
	t.Parallel()

	cs, dl := testCase(domain.CaseStatusPendingClarification)
	pausedAt := receivedAt.AddDate(0, 0, 8)
	dl.PausedAt = &pausedAt

	mut, err := lifecycle.Transition(cs, dl, lifecycle.TransitionCommand{
		To:      domain.CaseStatusRejected,
		ActorID: "a1",
	}, testEnv(pausedAt.AddDate(0, 0, 4)))
	require.NoError(t, err)

	assert.Nil(t, mut.Deadline.PausedAt)
	assert.Equal(t, 4, mut.Deadline.TotalPausedDays)
	assert.Equal(t, domain.CaseStatusRejected, mut.Case.Status)
}

func TestExtendShiftsDeadline(t *testing.T) {
	t.Parallel()

	cs, dl := testCase(domain.CaseStatusInProgress)
	now := receivedAt.AddDate(0, 0, 25)

	mut, err := lifecycle.Extend(cs, dl, 14, testEnv(now))
	require.NoError(t, err)

	assert.Equal(t, 14, mut.Deadline.ExtensionDays)
	assert.Equal(t, receivedAt.AddDate(0, 0, 44), mut.Deadline.EffectiveDueAt)
	assert.Equal(t, domain.RiskGreen, mut.Deadline.CurrentRisk)
	// Extensions are not status changes; the ledger gets no entry.
	assert.Nil(t, mut.Record)
	assert.Equal(t, domain.CaseStatusInProgress, mut.Case.Status)
}

func TestExtendRejectsNonPositiveDays(t *testing.T) {
	t.Parallel()

	cs, dl := testCase(domain.CaseStatusInProgress)
	for _, days := range []int{0, -5} {
		_, err := lifecycle.Extend(cs, dl, days, testEnv(receivedAt))
		require.Error(t, err, "days=%d", days)
		assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"))
	}
}

func TestExtendRejectsTerminalCase(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.CaseStatus{domain.CaseStatusClosed, domain.CaseStatusRejected} {
		cs, dl := testCase(status)
		_, err := lifecycle.Extend(cs, dl, 14, testEnv(receivedAt))
		require.Error(t, err, string(status))
		assert.True(t, apperrors.IsCode(err, "INVALID_TRANSITION"))
	}
}

func TestRefreshRecomputesDerivedFieldsOnly(t *testing.T) {
	t.Parallel()

	cs, dl := testCase(domain.CaseStatusInProgress)
	now := receivedAt.AddDate(0, 0, 31)

	got, err := lifecycle.Refresh(cs, dl, testEnv(now))
	require.NoError(t, err)

	assert.Equal(t, -1, got.DaysRemaining)
	assert.Equal(t, domain.RiskRed, got.CurrentRisk)
	assert.Equal(t, dl.ExtensionDays, got.ExtensionDays)
	assert.Equal(t, dl.TotalPausedDays, got.TotalPausedDays)
	assert.Equal(t, dl.PausedAt, got.PausedAt)
}
