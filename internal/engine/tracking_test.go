package engine

import (
	"testing"
	"time"

	"github.com/fixlane/repair-service/internal/domain"
)

func newTrackedTicket(t *testing.T, createdAt time.Time, leadHours int) domain.Ticket {
	t.Helper()
	est := newTestEstimator()
	req := baseRequest()
	ticket, err := est.NewTicket(req, 3, createdAt)
	if err != nil {
		t.Fatalf("new ticket: %v", err)
	}
	if leadHours >= 0 {
		timeline, err := BuildTimeline(est.Catalog(), createdAt, leadHours)
		if err != nil {
			t.Fatalf("build timeline: %v", err)
		}
		ticket.Timeline = timeline
		ticket.Estimate.LeadHours = leadHours
	}
	return ticket
}

func TestSnapshotOverridePrecedence(t *testing.T) {
	tracker := NewTracker(DefaultCatalog())
	createdAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	ticket := newTrackedTicket(t, createdAt, 40)

	for _, stage := range domain.StageOrder {
		override := stage
		ticket.CurrentStage = &override

		for _, now := range []time.Time{createdAt, createdAt.Add(20 * time.Hour), createdAt.Add(500 * time.Hour)} {
			snap := tracker.Snapshot(ticket, now)
			if snap.Stage != stage {
				t.Fatalf("override %s ignored at %v: got %s", stage, now, snap.Stage)
			}
			wantProgress := float64(stage.Index()) / 5
			if snap.Progress != wantProgress {
				t.Fatalf("override %s: progress %v, want %v", stage, snap.Progress, wantProgress)
			}
			if !snap.EtaDate.Equal(ticket.Timeline[5].PlannedAt) {
				t.Fatalf("override %s: eta %v not final step", stage, snap.EtaDate)
			}
		}
	}
}

func TestSnapshotInvalidOverrideFallsThrough(t *testing.T) {
	tracker := NewTracker(DefaultCatalog())
	createdAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	ticket := newTrackedTicket(t, createdAt, 40)

	bogus := domain.Stage("shipped")
	ticket.CurrentStage = &bogus

	snap := tracker.Snapshot(ticket, createdAt.Add(100*time.Hour))
	if snap.Stage != domain.StageReady {
		t.Fatalf("invalid override should defer to inference, got %s", snap.Stage)
	}
}

func TestSnapshotInferredRoundTrip(t *testing.T) {
	tracker := NewTracker(DefaultCatalog())
	createdAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	ticket := newTrackedTicket(t, createdAt, 43)

	now := createdAt.Add(43*time.Hour + time.Minute)
	snap := tracker.Snapshot(ticket, now)
	if snap.Stage != domain.StageReady {
		t.Fatalf("expected ready after lead window, got %s", snap.Stage)
	}
	if snap.Progress != 1 {
		t.Fatalf("expected clamped progress 1, got %v", snap.Progress)
	}
	if !tracker.IsReady(ticket, now) {
		t.Fatalf("IsReady disagrees with snapshot")
	}
}

func TestSnapshotBeforeFirstStep(t *testing.T) {
	tracker := NewTracker(DefaultCatalog())
	createdAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	ticket := newTrackedTicket(t, createdAt, 40)

	snap := tracker.Snapshot(ticket, createdAt.Add(-time.Hour))
	if snap.Stage != domain.StageAccepted {
		t.Fatalf("expected first stage before creation, got %s", snap.Stage)
	}
	if snap.Progress != 0 {
		t.Fatalf("expected zero progress, got %v", snap.Progress)
	}
}

func TestSnapshotMidTimeline(t *testing.T) {
	tracker := NewTracker(DefaultCatalog())
	createdAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	ticket := newTrackedTicket(t, createdAt, 100)

	// Fractions put diagnostics at 12h and approval at 30h of a 100h lead.
	snap := tracker.Snapshot(ticket, createdAt.Add(20*time.Hour))
	if snap.Stage != domain.StageDiagnostics {
		t.Fatalf("expected diagnostics at 20h, got %s", snap.Stage)
	}
	if snap.Progress <= 0 || snap.Progress >= 1 {
		t.Fatalf("expected mid-range progress, got %v", snap.Progress)
	}
	if snap.StageLabel == "" {
		t.Fatalf("expected stage label")
	}
}

func TestSnapshotEmptyTimelineGuard(t *testing.T) {
	tracker := NewTracker(DefaultCatalog())
	createdAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	ticket := newTrackedTicket(t, createdAt, 40)
	ticket.Timeline = nil

	snap := tracker.Snapshot(ticket, createdAt.Add(time.Hour))
	if snap.Stage != domain.StageAccepted {
		t.Fatalf("expected first stage for empty timeline, got %s", snap.Stage)
	}
	if snap.Progress < 0 || snap.Progress > 1 {
		t.Fatalf("progress %v out of bounds for empty timeline", snap.Progress)
	}
	if !snap.EtaDate.Equal(createdAt) {
		t.Fatalf("expected creation-time eta for empty timeline, got %v", snap.EtaDate)
	}
}
