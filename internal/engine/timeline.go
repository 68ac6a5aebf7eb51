package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/fixlane/repair-service/internal/domain"
)

// stageFractions positions each stage checkpoint within the lead window.
var stageFractions = []float64{0, 0.12, 0.3, 0.76, 0.9, 1}

// BuildTimeline derives the six planned checkpoints for a ticket. Planned
// times are non-decreasing and the final step lands on createdAt+leadHours.
// A negative lead time is malformed input and fails fast.
func BuildTimeline(catalog Catalog, createdAt time.Time, leadHours int) ([]domain.TimelineStep, error) {
	if leadHours < 0 {
		return nil, fmt.Errorf("build timeline: negative lead hours %d", leadHours)
	}

	steps := make([]domain.TimelineStep, 0, len(domain.StageOrder))
	for i, stage := range domain.StageOrder {
		offset := int(math.Ceil(float64(leadHours) * stageFractions[i]))
		steps = append(steps, domain.TimelineStep{
			Stage:     stage,
			Label:     catalog.StageLabel(stage),
			PlannedAt: createdAt.Add(time.Duration(offset) * time.Hour),
		})
	}
	return steps, nil
}
