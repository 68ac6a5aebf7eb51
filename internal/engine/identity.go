package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// ticketNumberPrefix brands generated ticket numbers.
const ticketNumberPrefix = "FXL"

// GenerateTicketNumber produces a human-readable number of the form
// FXL-YYMMDD-NNNN. The serial is random; uniqueness is best effort at the
// workshop's scale, the persistence layer may retry on collision.
func GenerateTicketNumber(now time.Time) string {
	serial := 1000 + rand.Intn(9000)
	return fmt.Sprintf("%s-%s-%04d", ticketNumberPrefix, now.Format("060102"), serial)
}

// GenerateAccessCode derives a short numeric code from the last four digits
// of the customer's phone, falling back to a random serial when the phone
// carries fewer than four digits.
func GenerateAccessCode(phone string) string {
	digits := keepDigits(phone)
	code := digits
	if len(digits) > 4 {
		code = digits[len(digits)-4:]
	}
	if code == "" {
		code = fmt.Sprintf("%04d", 1000+rand.Intn(9000))
	}
	for len(code) < 4 {
		code = "0" + code
	}
	return code
}

// SanitizeTicketNumber uppercases the input and strips everything outside
// A-Z, 0-9 and hyphen. Idempotent and total.
func SanitizeTicketNumber(raw string) string {
	upper := strings.ToUpper(raw)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeAccessCode strips non-digits and truncates to six characters.
// Idempotent and total.
func SanitizeAccessCode(raw string) string {
	digits := keepDigits(raw)
	if len(digits) > 6 {
		digits = digits[:6]
	}
	return digits
}

func keepDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
