package dto

import (
	"time"

	"github.com/Dee126/DSAR-sub009/internal/domain"
)

// CreateCaseRequest payload.
type CreateCaseRequest struct {
	Type       domain.CaseType     `json:"type"`
	Priority   domain.CasePriority `json:"priority"`
	SubjectRef string              `json:"subject_ref"`
	ReceivedAt *time.Time          `json:"received_at"`
}

// TransitionRequest payload.
type TransitionRequest struct {
	To     domain.CaseStatus `json:"to"`
	Reason *string           `json:"reason"`
}

// ExtendRequest payload.
type ExtendRequest struct {
	Days   int     `json:"days"`
	Reason *string `json:"reason"`
}

// DeadlineResponse carries the derived deadline state for a case.
type DeadlineResponse struct {
	BaseDueAt       time.Time        `json:"base_due_at"`
	ExtensionDays   int              `json:"extension_days"`
	TotalPausedDays int              `json:"total_paused_days"`
	Paused          bool             `json:"paused"`
	EffectiveDueAt  time.Time        `json:"effective_due_at"`
	CurrentRisk     domain.RiskLevel `json:"current_risk"`
	DaysRemaining   int              `json:"days_remaining"`
}

// CaseSummary response.
type CaseSummary struct {
	ID         string              `json:"id"`
	CaseNumber string              `json:"case_number"`
	Type       domain.CaseType     `json:"type"`
	Priority   domain.CasePriority `json:"priority"`
	Status     domain.CaseStatus   `json:"status"`
	ReceivedAt time.Time           `json:"received_at"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	Deadline   *DeadlineResponse   `json:"deadline,omitempty"`
}

// TransitionRecordResponse is one ledger entry.
type TransitionRecordResponse struct {
	ID         string            `json:"id"`
	FromStatus domain.CaseStatus `json:"from_status"`
	ToStatus   domain.CaseStatus `json:"to_status"`
	ChangedBy  string            `json:"changed_by"`
	Reason     *string           `json:"reason,omitempty"`
	ChangedAt  time.Time         `json:"changed_at"`
}

// CaseDetailResponse provides full case info.
type CaseDetailResponse struct {
	ID         string                     `json:"id"`
	CaseNumber string                     `json:"case_number"`
	Type       domain.CaseType            `json:"type"`
	Priority   domain.CasePriority        `json:"priority"`
	Status     domain.CaseStatus          `json:"status"`
	SubjectRef string                     `json:"subject_ref"`
	ReceivedAt time.Time                  `json:"received_at"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
	Deadline   DeadlineResponse           `json:"deadline"`
	History    []TransitionRecordResponse `json:"history"`
	NextStates []domain.CaseStatus        `json:"next_states"`
}
