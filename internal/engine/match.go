package engine

import "github.com/fixlane/repair-service/internal/domain"

// MatchTicket reports whether a self-service lookup matches the ticket. Both
// the ticket number and access code must match exactly after normalization;
// there is no partial matching.
func MatchTicket(ticket domain.Ticket, ticketNumber, accessCode string) bool {
	return ticket.TicketNumber == SanitizeTicketNumber(ticketNumber) &&
		ticket.AccessCode == SanitizeAccessCode(accessCode)
}
