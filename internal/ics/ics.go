// Package ics renders a minimal iCalendar feed of planned tasks.
package ics

import (
	"strings"
	"time"
)

// Event is one calendar entry.
type Event struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

// Calendar renders events as an iCalendar document. Lines are CRLF
// separated per RFC 5545.
func Calendar(name string, events []Event) string {
	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//KuroTask//EN")
	writeLine("X-WR-CALNAME:" + escape(name))

	for _, ev := range events {
		writeLine("BEGIN:VEVENT")
		writeLine("UID:" + escape(ev.UID))
		if ev.AllDay {
			writeLine("DTSTART;VALUE=DATE:" + ev.Start.Format("20060102"))
			writeLine("DTEND;VALUE=DATE:" + ev.Start.AddDate(0, 0, 1).Format("20060102"))
		} else {
			writeLine("DTSTART:" + ev.Start.UTC().Format("20060102T150405Z"))
			writeLine("DTEND:" + ev.End.UTC().Format("20060102T150405Z"))
		}
		writeLine("SUMMARY:" + escape(ev.Summary))
		if ev.Description != "" {
			writeLine("DESCRIPTION:" + escape(ev.Description))
		}
		writeLine("END:VEVENT")
	}

	writeLine("END:VCALENDAR")
	return b.String()
}

func escape(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
