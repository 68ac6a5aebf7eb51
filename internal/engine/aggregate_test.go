package engine

import (
	"testing"
	"time"

	"github.com/fixlane/repair-service/internal/domain"
)

func TestSummarizeEmpty(t *testing.T) {
	tracker := NewTracker(DefaultCatalog())
	summary := tracker.Summarize(nil, time.Now())

	if summary.Total != 0 || summary.Active != 0 || summary.Ready != 0 || summary.Express != 0 {
		t.Fatalf("expected zero counts, got %+v", summary)
	}
	if summary.TotalAmount != 0 {
		t.Fatalf("expected zero amount, got %d", summary.TotalAmount)
	}
	for _, stage := range domain.StageOrder {
		if summary.StageCounts[stage] != 0 {
			t.Fatalf("expected zero count for %s", stage)
		}
	}
}

func TestSummarizeCountsAndOrderInvariance(t *testing.T) {
	tracker := NewTracker(DefaultCatalog())
	createdAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	now := createdAt.Add(time.Hour)

	fresh := newTrackedTicket(t, createdAt, 40)

	done := newTrackedTicket(t, createdAt, 40)
	ready := domain.StageReady
	done.CurrentStage = &ready

	express := newTrackedTicket(t, createdAt, 40)
	express.Request.Urgency = domain.UrgencyExpress
	inRepair := domain.StageRepair
	express.CurrentStage = &inRepair

	tickets := []domain.Ticket{fresh, done, express}
	summary := tracker.Summarize(tickets, now)

	if summary.Total != 3 || summary.Ready != 1 || summary.Active != 2 || summary.Express != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	wantAmount := fresh.Estimate.Pricing.Total + done.Estimate.Pricing.Total + express.Estimate.Pricing.Total
	if summary.TotalAmount != wantAmount {
		t.Fatalf("expected amount %d, got %d", wantAmount, summary.TotalAmount)
	}
	if summary.StageCounts[domain.StageRepair] != 1 || summary.StageCounts[domain.StageReady] != 1 {
		t.Fatalf("unexpected stage counts: %+v", summary.StageCounts)
	}

	reversed := []domain.Ticket{express, done, fresh}
	again := tracker.Summarize(reversed, now)
	if again.Total != summary.Total || again.TotalAmount != summary.TotalAmount ||
		again.Ready != summary.Ready || again.Express != summary.Express {
		t.Fatalf("summary not order-invariant: %+v vs %+v", summary, again)
	}
}

func TestCountOpenExcludesReady(t *testing.T) {
	tracker := NewTracker(DefaultCatalog())
	createdAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	open := newTrackedTicket(t, createdAt, 40)
	done := newTrackedTicket(t, createdAt, 40)
	ready := domain.StageReady
	done.CurrentStage = &ready

	if got := tracker.CountOpen([]domain.Ticket{open, done}, createdAt.Add(time.Hour)); got != 1 {
		t.Fatalf("expected one open ticket, got %d", got)
	}
}
