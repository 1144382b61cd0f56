package timezone_test

import (
	"hotel/shared/timezone"
	"testing"
	"time"
)

func TestTimezoneInit(t *testing.T) {
	if timezone.Now().IsZero() {
		t.Error("Now() returned zero time")
	}

	if timezone.GetLocation() == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestDateOf(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	late := time.Date(2024, 1, 10, 23, 30, 0, 0, jakarta)

	got := timezone.DateOf(late)
	want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseAndFormatDate(t *testing.T) {
	parsed, err := timezone.ParseDate("2024-01-12")
	if err != nil {
		t.Fatalf("ParseDate() failed: %v", err)
	}

	if got := timezone.FormatDate(parsed); got != "2024-01-12" {
		t.Errorf("expected 2024-01-12, got %s", got)
	}

	if _, err := timezone.ParseDate("12/01/2024"); err == nil {
		t.Error("expected an error for a non ISO date")
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{name: "two nights", start: "2024-01-10", end: "2024-01-12", expected: 2},
		{name: "same day", start: "2024-01-10", end: "2024-01-10", expected: 0},
		{name: "across month", start: "2024-01-31", end: "2024-02-02", expected: 2},
		{name: "leap day", start: "2024-02-28", end: "2024-03-01", expected: 2},
		{name: "reversed", start: "2024-01-12", end: "2024-01-10", expected: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := timezone.ParseDate(tt.start)
			end, _ := timezone.ParseDate(tt.end)

			if got := timezone.DaysBetween(start, end); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestMonthStart(t *testing.T) {
	got := timezone.MonthStart(time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC))

	if got.Format(time.DateOnly) != "2024-03-01" {
		t.Errorf("expected 2024-03-01, got %s", got.Format(time.DateOnly))
	}
}
