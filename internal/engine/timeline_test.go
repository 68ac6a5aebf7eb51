package engine

import (
	"testing"
	"time"

	"github.com/fixlane/repair-service/internal/domain"
)

func TestBuildTimelineOrdering(t *testing.T) {
	catalog := DefaultCatalog()
	createdAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	for _, leadHours := range []int{0, 1, 7, 43, 160} {
		steps, err := BuildTimeline(catalog, createdAt, leadHours)
		if err != nil {
			t.Fatalf("lead %d: unexpected error: %v", leadHours, err)
		}
		if len(steps) != len(domain.StageOrder) {
			t.Fatalf("lead %d: expected %d steps, got %d", leadHours, len(domain.StageOrder), len(steps))
		}
		for i, step := range steps {
			if step.Stage != domain.StageOrder[i] {
				t.Fatalf("lead %d: step %d stage %s out of order", leadHours, i, step.Stage)
			}
			if step.Label != catalog.StageLabel(step.Stage) {
				t.Fatalf("lead %d: step %d missing label", leadHours, i)
			}
			if i > 0 && step.PlannedAt.Before(steps[i-1].PlannedAt) {
				t.Fatalf("lead %d: planned times not non-decreasing at step %d", leadHours, i)
			}
		}
		if !steps[0].PlannedAt.Equal(createdAt) {
			t.Fatalf("lead %d: first step %v not at creation", leadHours, steps[0].PlannedAt)
		}
		last := steps[len(steps)-1].PlannedAt
		if !last.Equal(createdAt.Add(time.Duration(leadHours) * time.Hour)) {
			t.Fatalf("lead %d: last step %v not at createdAt+leadHours", leadHours, last)
		}
	}
}

func TestBuildTimelineNegativeLeadFails(t *testing.T) {
	if _, err := BuildTimeline(DefaultCatalog(), time.Now(), -1); err == nil {
		t.Fatalf("expected error for negative lead hours")
	}
}
