package engine

import (
	"testing"
	"time"

	"github.com/fixlane/repair-service/internal/domain"
)

func TestMatchTicketRequiresBothFields(t *testing.T) {
	ticket := domain.Ticket{
		TicketNumber: "FXL-250307-1234",
		AccessCode:   "5678",
		CreatedAt:    time.Now(),
	}

	cases := []struct {
		name   string
		number string
		code   string
		want   bool
	}{
		{"exact", "FXL-250307-1234", "5678", true},
		{"lowercase number", "fxl-250307-1234", "5678", true},
		{"noisy input", " fxl-250307-1234 ", " 56-78 ", true},
		{"wrong number", "FXL-250307-9999", "5678", false},
		{"wrong code", "FXL-250307-1234", "0000", false},
		{"both wrong", "FXL-000000-0000", "0000", false},
		{"empty code", "FXL-250307-1234", "", false},
		{"empty number", "", "5678", false},
	}

	for _, tc := range cases {
		if got := MatchTicket(ticket, tc.number, tc.code); got != tc.want {
			t.Fatalf("%s: MatchTicket(%q, %q) = %v, want %v", tc.name, tc.number, tc.code, got, tc.want)
		}
	}
}
