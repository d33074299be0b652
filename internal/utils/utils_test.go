package utils

import (
	"testing"
	"time"
)

func TestFormatFare(t *testing.T) {
	cases := map[float64]string{
		0:          "Rs 0.00",
		450:        "Rs 450.00",
		1250.5:     "Rs 1,250.50",
		1234567.99: "Rs 1,234,567.99",
		-20:        "-Rs 20.00",
	}
	for in, want := range cases {
		if got := FormatFare(in); got != want {
			t.Fatalf("FormatFare(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("Rs 1,250.50")
	if err != nil || got != 1250.5 {
		t.Fatalf("ParseAmount: got %v, %v", got, err)
	}
	if _, err := ParseAmount(" "); err == nil {
		t.Fatalf("expected error for blank amount")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-01")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.March || d.Day() != 1 {
		t.Fatalf("unexpected date %v", d)
	}
	if FormatDate(d) != "2025-03-01" {
		t.Fatalf("FormatDate round trip: %q", FormatDate(d))
	}
	z, err := ParseDate("")
	if err != nil || !z.IsZero() {
		t.Fatalf("blank date should be zero, got %v %v", z, err)
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2025-03-01T08:30:00Z")
	if err != nil || ts.Hour() != 8 {
		t.Fatalf("RFC3339: %v %v", ts, err)
	}
	ts, err = ParseTimestamp("2025-03-01 17:45:00")
	if err != nil || ts.Hour() != 17 {
		t.Fatalf("datetime: %v %v", ts, err)
	}
}

func TestParsePositiveInt(t *testing.T) {
	if ParsePositiveInt("12") != 12 || ParsePositiveInt("-1") != 0 || ParsePositiveInt("x") != 0 {
		t.Fatalf("unexpected ParsePositiveInt behaviour")
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := SafeFilenamePart("A 1/../b"); got != "A1b" {
		t.Fatalf("got %q", got)
	}
	if got := SafeFilenamePart("///"); got != "x" {
		t.Fatalf("got %q", got)
	}
}
