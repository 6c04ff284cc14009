package domain

import "time"

// StateTransition is an immutable append-only ledger entry recording one
// successful status change. Entries are never mutated or deleted by the core.
type StateTransition struct {
	ID         string
	CaseID     string
	FromStatus CaseStatus
	ToStatus   CaseStatus
	ChangedBy  string
	Reason     *string
	ChangedAt  time.Time
}
