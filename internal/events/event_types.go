package events

import (
	"time"

	"github.com/fixlane/repair-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated      EventType = "ticket_created"
	EventTicketStageUpdated EventType = "ticket_stage_updated"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type    domain.SubjectType `json:"type"`
	StaffID *string            `json:"staff_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string            `json:"ticket_number"`
	DeviceType   domain.DeviceType `json:"device_type"`
	IssueType    domain.IssueType  `json:"issue_type"`
	Urgency      domain.Urgency    `json:"urgency"`
	Total        int64             `json:"total"`
	PromiseDate  time.Time         `json:"promise_date"`
}

// TicketStageUpdatedPayload payload.
type TicketStageUpdatedPayload struct {
	TicketNumber string        `json:"ticket_number"`
	OldStage     *domain.Stage `json:"old_stage,omitempty"`
	NewStage     domain.Stage  `json:"new_stage"`
}
