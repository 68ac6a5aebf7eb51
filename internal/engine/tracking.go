package engine

import (
	"time"

	"github.com/fixlane/repair-service/internal/domain"
)

// Tracker resolves live ticket status from the planned timeline and optional
// staff override. It holds no mutable state and is safe for concurrent use.
type Tracker struct {
	catalog Catalog
}

// NewTracker constructs a tracker over the given catalog.
func NewTracker(catalog Catalog) *Tracker {
	return &Tracker{catalog: catalog}
}

// Snapshot computes the ticket's current stage, progress ratio and displayed
// ETA. A valid staff-set stage is authoritative and stops time inference; an
// unknown stored stage is treated as absent and falls through to inference.
func (t *Tracker) Snapshot(ticket domain.Ticket, now time.Time) domain.TrackingSnapshot {
	if ticket.CurrentStage != nil && ticket.CurrentStage.Valid() {
		return t.overrideSnapshot(ticket, *ticket.CurrentStage)
	}
	return t.inferredSnapshot(ticket, now)
}

// IsReady reports whether the ticket's resolved stage is terminal. Ready
// tickets stop counting toward the open backlog used by pricing.
func (t *Tracker) IsReady(ticket domain.Ticket, now time.Time) bool {
	return t.Snapshot(ticket, now).Stage == domain.StageReady
}

func (t *Tracker) overrideSnapshot(ticket domain.Ticket, stage domain.Stage) domain.TrackingSnapshot {
	return domain.TrackingSnapshot{
		Stage:      stage,
		StageLabel: t.catalog.StageLabel(stage),
		Progress:   float64(stage.Index()) / float64(len(domain.StageOrder)-1),
		EtaDate:    etaDate(ticket),
	}
}

func (t *Tracker) inferredSnapshot(ticket domain.Ticket, now time.Time) domain.TrackingSnapshot {
	eta := etaDate(ticket)

	// Guard against malformed persisted data: a missing or zero-span
	// timeline still yields a bounded progress ratio.
	totalMs := eta.Sub(ticket.CreatedAt).Milliseconds()
	if totalMs < 1 {
		totalMs = 1
	}
	elapsedMs := now.Sub(ticket.CreatedAt).Milliseconds()
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	if elapsedMs > totalMs {
		elapsedMs = totalMs
	}

	stage := domain.StageAccepted
	label := t.catalog.StageLabel(stage)
	for _, step := range ticket.Timeline {
		if !step.PlannedAt.After(now) {
			stage = step.Stage
			label = step.Label
		}
	}

	return domain.TrackingSnapshot{
		Stage:      stage,
		StageLabel: label,
		Progress:   float64(elapsedMs) / float64(totalMs),
		EtaDate:    eta,
	}
}

// etaDate is always the final planned checkpoint, regardless of resolution
// mode; tickets without a timeline fall back to their creation time.
func etaDate(ticket domain.Ticket) time.Time {
	if len(ticket.Timeline) == 0 {
		return ticket.CreatedAt
	}
	return ticket.Timeline[len(ticket.Timeline)-1].PlannedAt
}
