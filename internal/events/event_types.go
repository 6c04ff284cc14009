package events

import (
	"time"

	"github.com/Dee126/DSAR-sub009/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCaseCreated       EventType = "case_created"
	EventCaseTransitioned  EventType = "case_transitioned"
	EventDeadlineExtended  EventType = "deadline_extended"
	EventHolidayCalendared EventType = "holiday_calendared"
)

// Event represents a domain event emitted after a successful mutation. The
// service only describes the change; forwarding to audit logs or webhook
// endpoints is a subscriber concern.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TenantID  string      `json:"tenant_id"`
	CaseID    string      `json:"case_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CaseCreatedPayload payload.
type CaseCreatedPayload struct {
	CaseNumber     string              `json:"case_number"`
	Type           domain.CaseType     `json:"case_type"`
	Priority       domain.CasePriority `json:"priority"`
	ReceivedAt     time.Time           `json:"received_at"`
	EffectiveDueAt time.Time           `json:"effective_due_at"`
}

// CaseTransitionedPayload payload.
type CaseTransitionedPayload struct {
	CaseNumber string            `json:"case_number"`
	FromStatus domain.CaseStatus `json:"from_status"`
	ToStatus   domain.CaseStatus `json:"to_status"`
	Reason     *string           `json:"reason,omitempty"`
}

// DeadlineExtendedPayload payload.
type DeadlineExtendedPayload struct {
	CaseNumber     string    `json:"case_number"`
	ExtensionDays  int       `json:"extension_days"`
	EffectiveDueAt time.Time `json:"effective_due_at"`
}

// HolidayCalendaredPayload payload.
type HolidayCalendaredPayload struct {
	Day    time.Time `json:"day"`
	Name   string    `json:"name"`
	Locale string    `json:"locale"`
}
