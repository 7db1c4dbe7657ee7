package ics

import (
	"strings"
	"testing"
	"time"
)

func TestCalendar(t *testing.T) {
	start := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	out := Calendar("KuroTask", []Event{
		{
			UID:         "a@kurotask",
			Summary:     "Plan, review; ship",
			Description: "Line one\nLine two",
			Start:       start,
			End:         start.Add(time.Hour),
		},
		{
			UID:     "b@kurotask",
			Summary: "All day",
			Start:   start,
			AllDay:  true,
		},
	})

	for _, want := range []string{
		"BEGIN:VCALENDAR\r\n",
		"VERSION:2.0\r\n",
		"X-WR-CALNAME:KuroTask\r\n",
		"SUMMARY:Plan\\, review\\; ship\r\n",
		"DESCRIPTION:Line one\\nLine two\r\n",
		"DTSTART:20250615T090000Z\r\n",
		"DTEND:20250615T100000Z\r\n",
		"DTSTART;VALUE=DATE:20250615\r\n",
		"DTEND;VALUE=DATE:20250616\r\n",
		"END:VCALENDAR\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(strings.ReplaceAll(out, "\r\n", ""), "\n") {
		t.Fatal("every line must be CRLF terminated")
	}
}

func TestCalendarEmpty(t *testing.T) {
	out := Calendar("Empty", nil)
	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Fatalf("unexpected empty calendar:\n%s", out)
	}
	if strings.Contains(out, "VEVENT") {
		t.Fatal("no events expected")
	}
}
