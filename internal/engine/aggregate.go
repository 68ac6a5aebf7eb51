package engine

import (
	"time"

	"github.com/fixlane/repair-service/internal/domain"
)

// Summarize folds a ticket collection into dashboard counts. The fold is
// order-invariant: reordering the input never changes the result.
func (t *Tracker) Summarize(tickets []domain.Ticket, now time.Time) domain.TicketSummary {
	summary := domain.TicketSummary{
		StageCounts: make(map[domain.Stage]int, len(domain.StageOrder)),
	}
	for _, stage := range domain.StageOrder {
		summary.StageCounts[stage] = 0
	}

	for _, ticket := range tickets {
		snapshot := t.Snapshot(ticket, now)
		summary.StageCounts[snapshot.Stage]++
		summary.TotalAmount += ticket.Estimate.Pricing.Total
		if ticket.Request.Urgency == domain.UrgencyExpress {
			summary.Express++
		}
	}

	summary.Total = len(tickets)
	summary.Ready = summary.StageCounts[domain.StageReady]
	summary.Active = summary.Total - summary.Ready
	return summary
}

// CountOpen returns the number of tickets whose resolved stage is not yet
// terminal; this backlog figure feeds the queue-delay heuristic.
func (t *Tracker) CountOpen(tickets []domain.Ticket, now time.Time) int {
	open := 0
	for _, ticket := range tickets {
		if !t.IsReady(ticket, now) {
			open++
		}
	}
	return open
}
