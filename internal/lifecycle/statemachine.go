package lifecycle

import "github.com/Dee126/DSAR-sub009/internal/domain"

// transitions is the fixed adjacency table governing case status changes.
// Any (from, to) pair not listed is invalid; self-loops are never listed.
// REJECTED is reachable from every non-terminal state, and
// READY_TO_CLOSE -> IN_PROGRESS is the re-open branch.
var transitions = map[domain.CaseStatus][]domain.CaseStatus{
	domain.CaseStatusNew: {
		domain.CaseStatusIdentityVerification,
		domain.CaseStatusRejected,
	},
	domain.CaseStatusIdentityVerification: {
		domain.CaseStatusIntakeTriage,
		domain.CaseStatusRejected,
	},
	domain.CaseStatusIntakeTriage: {
		domain.CaseStatusInProgress,
		domain.CaseStatusRejected,
	},
	domain.CaseStatusInProgress: {
		domain.CaseStatusPendingClarification,
		domain.CaseStatusReadyToClose,
		domain.CaseStatusRejected,
	},
	domain.CaseStatusPendingClarification: {
		domain.CaseStatusInProgress,
		domain.CaseStatusRejected,
	},
	domain.CaseStatusReadyToClose: {
		domain.CaseStatusClosed,
		domain.CaseStatusInProgress,
		domain.CaseStatusRejected,
	},
	domain.CaseStatusClosed:   {},
	domain.CaseStatusRejected: {},
}

// IsValidTransition consults the adjacency table.
func IsValidTransition(from, to domain.CaseStatus) bool {
	for _, candidate := range transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// ValidNextStates returns the allowed targets from the given status.
func ValidNextStates(from domain.CaseStatus) []domain.CaseStatus {
	next := transitions[from]
	out := make([]domain.CaseStatus, len(next))
	copy(out, next)
	return out
}

// KnownStatus reports whether the status is a member of the valid-state set.
func KnownStatus(s domain.CaseStatus) bool {
	_, ok := transitions[s]
	return ok
}
