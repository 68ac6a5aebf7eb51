package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/fixlane/repair-service/internal/domain"
)

// NewTicket assembles a complete ticket from an intake request: estimate,
// six-step timeline, identity pair and advisory notes. The request is
// embedded as-is and never mutated afterwards.
func (e *Estimator) NewTicket(request domain.ServiceRequest, openTickets int, now time.Time) (domain.Ticket, error) {
	estimate := e.Estimate(request, openTickets, now)
	timeline, err := BuildTimeline(e.catalog, now, estimate.LeadHours)
	if err != nil {
		return domain.Ticket{}, err
	}

	return domain.Ticket{
		ID:           uuid.NewString(),
		TicketNumber: GenerateTicketNumber(now),
		AccessCode:   GenerateAccessCode(request.Phone),
		CreatedAt:    now,
		Request:      request,
		Estimate:     estimate,
		Timeline:     timeline,
		Notes:        buildNotes(request),
	}, nil
}

func buildNotes(request domain.ServiceRequest) []string {
	notes := []string{}
	if request.HasWarranty {
		notes = append(notes, "Warranty coverage is confirmed after diagnostics and a document check.")
	}
	if request.Urgency == domain.UrgencyExpress {
		notes = append(notes, "Express lane enabled: diagnostics starts outside the standard queue.")
	}
	if request.IssueType == domain.IssueWater {
		notes = append(notes, "Liquid damage estimates can change after teardown and corrosion inspection.")
	}
	return notes
}
