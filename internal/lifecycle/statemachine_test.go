package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dee126/DSAR-sub009/internal/domain"
	"github.com/Dee126/DSAR-sub009/internal/lifecycle"
)

var allStatuses = []domain.CaseStatus{
	domain.CaseStatusNew,
	domain.CaseStatusIdentityVerification,
	domain.CaseStatusIntakeTriage,
	domain.CaseStatusInProgress,
	domain.CaseStatusPendingClarification,
	domain.CaseStatusReadyToClose,
	domain.CaseStatusClosed,
	domain.CaseStatusRejected,
}

var validEdges = map[domain.CaseStatus][]domain.CaseStatus{
	domain.CaseStatusNew:                  {domain.CaseStatusIdentityVerification, domain.CaseStatusRejected},
	domain.CaseStatusIdentityVerification: {domain.CaseStatusIntakeTriage, domain.CaseStatusRejected},
	domain.CaseStatusIntakeTriage:         {domain.CaseStatusInProgress, domain.CaseStatusRejected},
	domain.CaseStatusInProgress:           {domain.CaseStatusPendingClarification, domain.CaseStatusReadyToClose, domain.CaseStatusRejected},
	domain.CaseStatusPendingClarification: {domain.CaseStatusInProgress, domain.CaseStatusRejected},
	domain.CaseStatusReadyToClose:         {domain.CaseStatusClosed, domain.CaseStatusInProgress, domain.CaseStatusRejected},
}

func TestIsValidTransitionTable(t *testing.T) {
	t.Parallel()

	allowed := func(from, to domain.CaseStatus) bool {
		for _, candidate := range validEdges[from] {
			if candidate == to {
				return true
			}
		}
		return false
	}

	// Exhaustive sweep: every pair agrees with the expected edge set, which
	// also covers self-loops and terminal states being dead ends.
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, allowed(from, to), lifecycle.IsValidTransition(from, to),
				"%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	t.Parallel()

	for _, to := range allStatuses {
		assert.False(t, lifecycle.IsValidTransition(domain.CaseStatusClosed, to))
		assert.False(t, lifecycle.IsValidTransition(domain.CaseStatusRejected, to))
	}
}

func TestReopenBranch(t *testing.T) {
	t.Parallel()

	assert.True(t, lifecycle.IsValidTransition(domain.CaseStatusReadyToClose, domain.CaseStatusInProgress))
	assert.False(t, lifecycle.IsValidTransition(domain.CaseStatusClosed, domain.CaseStatusInProgress))
}

func TestValidNextStatesReturnsCopy(t *testing.T) {
	t.Parallel()

	first := lifecycle.ValidNextStates(domain.CaseStatusInProgress)
	assert.Len(t, first, 3)
	first[0] = domain.CaseStatusClosed

	second := lifecycle.ValidNextStates(domain.CaseStatusInProgress)
	assert.Equal(t, domain.CaseStatusPendingClarification, second[0])
}

func TestKnownStatus(t *testing.T) {
	t.Parallel()

	for _, s := range allStatuses {
		assert.True(t, lifecycle.KnownStatus(s), string(s))
	}
	assert.False(t, lifecycle.KnownStatus(domain.CaseStatus("ARCHIVED")))
	assert.False(t, lifecycle.KnownStatus(domain.CaseStatus("")))
}
