package engine

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateTicketNumberFormat(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^FXL-250307-[1-9][0-9]{3}$`)

	for i := 0; i < 50; i++ {
		number := GenerateTicketNumber(now)
		if !pattern.MatchString(number) {
			t.Fatalf("unexpected ticket number %q", number)
		}
		if SanitizeTicketNumber(number) != number {
			t.Fatalf("generated number %q not sanitize-stable", number)
		}
	}
}

func TestGenerateAccessCodeFromPhone(t *testing.T) {
	code := GenerateAccessCode("+7 (701) 555-12-34")
	if code != "1234" {
		t.Fatalf("expected last four phone digits, got %q", code)
	}
}

func TestGenerateAccessCodeShortPhoneFallsBack(t *testing.T) {
	code := GenerateAccessCode("ab")
	if len(code) != 4 {
		t.Fatalf("expected 4-digit fallback code, got %q", code)
	}
	if SanitizeAccessCode(code) != code {
		t.Fatalf("fallback code %q not all digits", code)
	}
}

func TestGenerateAccessCodePadsShortDigits(t *testing.T) {
	code := GenerateAccessCode("42")
	if code != "0042" {
		t.Fatalf("expected left-padded code 0042, got %q", code)
	}
}

func TestSanitizeTicketNumberIdempotent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"fxl-250307-1234", "FXL-250307-1234"},
		{"  FXL 250307 #1234  ", "FXL2503071234"},
		{"", ""},
		{"абв-123", "-123"},
	}

	for _, tc := range cases {
		got := SanitizeTicketNumber(tc.in)
		if got != tc.want {
			t.Fatalf("SanitizeTicketNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if SanitizeTicketNumber(got) != got {
			t.Fatalf("SanitizeTicketNumber not idempotent for %q", tc.in)
		}
	}
}

func TestSanitizeAccessCodeIdempotent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{" 12-34 ", "1234"},
		{"123456789", "123456"},
		{"no digits", ""},
	}

	for _, tc := range cases {
		got := SanitizeAccessCode(tc.in)
		if got != tc.want {
			t.Fatalf("SanitizeAccessCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if SanitizeAccessCode(got) != got {
			t.Fatalf("SanitizeAccessCode not idempotent for %q", tc.in)
		}
	}
}
