package domain

import "time"

// CaseStatus enumerates lifecycle states for data subject request cases.
type CaseStatus string

const (
	CaseStatusNew                  CaseStatus = "NEW"
	CaseStatusIdentityVerification CaseStatus = "IDENTITY_VERIFICATION"
	CaseStatusIntakeTriage         CaseStatus = "INTAKE_TRIAGE"
	CaseStatusInProgress           CaseStatus = "IN_PROGRESS"
	CaseStatusPendingClarification CaseStatus = "PENDING_CLARIFICATION"
	CaseStatusReadyToClose         CaseStatus = "READY_TO_CLOSE"
	CaseStatusClosed               CaseStatus = "CLOSED"
	CaseStatusRejected             CaseStatus = "REJECTED"
)

// IsTerminal reports whether no further transitions leave the status.
func (s CaseStatus) IsTerminal() bool {
	return s == CaseStatusClosed || s == CaseStatusRejected
}

// IsOpen reports whether the case still counts against the SLA clock.
func (s CaseStatus) IsOpen() bool {
	return !s.IsTerminal()
}

// CaseType enumerates the data subject right being exercised.
type CaseType string

const (
	CaseTypeAccess        CaseType = "ACCESS"
	CaseTypeRectification CaseType = "RECTIFICATION"
	CaseTypeErasure       CaseType = "ERASURE"
	CaseTypePortability   CaseType = "PORTABILITY"
	CaseTypeObjection     CaseType = "OBJECTION"
	CaseTypeRestriction   CaseType = "RESTRICTION"
)

// CasePriority enumerates handling urgency.
type CasePriority string

const (
	CasePriorityLow    CasePriority = "LOW"
	CasePriorityMedium CasePriority = "MEDIUM"
	CasePriorityHigh   CasePriority = "HIGH"
	CasePriorityUrgent CasePriority = "URGENT"
)

// Case is the aggregate for a data subject request. CaseNumber is immutable
// after creation; Version guards against concurrent writers.
type Case struct {
	ID         string
	TenantID   string
	CaseNumber string
	Type       CaseType
	Priority   CasePriority
	Status     CaseStatus
	SubjectRef string
	ReceivedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
}

// CaseWithDeadline pairs a case with its deadline record for reporting scans.
// Deadline may be nil when the row is missing or malformed; reporting treats
// such cases as GREEN rather than failing the whole tenant summary.
type CaseWithDeadline struct {
	Case     Case
	Deadline *Deadline
}
