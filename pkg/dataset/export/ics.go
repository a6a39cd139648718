package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pyconferences/conftool/pkg/dataset/schema"
)

const (
	// DefaultProdID identifies the generator in the calendar header.
	DefaultProdID = "-//Python Conferences//EN"

	untitled = "Untitled Conference"

	dateLayout  = "2006-01-02"
	icsDate     = "20060102"
	icsDateTime = "20060102T150405Z"

	// maxLineOctets is the longest content line before folding.
	maxLineOctets = 75
)

// descriptionExcluded lists fields that have their own property or are shown
// first in DESCRIPTION.
var descriptionExcluded = map[string]bool{
	schema.FieldSubject:    true,
	schema.FieldStartDate:  true,
	schema.FieldEndDate:    true,
	schema.FieldVenue:      true,
	schema.FieldWebsiteURL: true,
	schema.FieldLocation:   true,
	schema.FieldCountry:    true,
	FieldYear:              true,
}

// Calendar renders conferences as an iCalendar (RFC 5545) document with one
// all-day event per conference.
type Calendar struct {
	// ProdID is the PRODID property. Defaults to DefaultProdID.
	ProdID string

	// Now stamps every event. Defaults to time.Now.
	Now func() time.Time
}

// Write renders confs to w and returns the number of events written. Conferences
// without a valid Start Date produce no event.
func (c *Calendar) Write(w io.Writer, confs []Conference) (int, error) {
	prodID := c.ProdID
	if prodID == "" {
		prodID = DefaultProdID
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	stamp := now().UTC().Format(icsDateTime)

	bw := bufio.NewWriter(w)
	cw := &contentWriter{w: bw}

	cw.line("BEGIN:VCALENDAR")
	cw.line("VERSION:2.0")
	cw.line("PRODID:" + prodID)

	events := 0
	for _, conf := range confs {
		if writeEvent(cw, conf, stamp) {
			events++
		}
	}

	cw.line("END:VCALENDAR")
	if cw.err != nil {
		return events, fmt.Errorf("failed to write calendar: %w", cw.err)
	}
	if err := bw.Flush(); err != nil {
		return events, fmt.Errorf("failed to write calendar: %w", err)
	}
	return events, nil
}

func writeEvent(cw *contentWriter, conf Conference, stamp string) bool {
	start, ok := parseDate(conf.Get(schema.FieldStartDate))
	if !ok {
		return false
	}
	end, ok := parseDate(conf.Get(schema.FieldEndDate))
	if !ok {
		end = start
	}
	// DTEND is exclusive for all-day events.
	dtstart := start.Format(icsDate)
	dtend := end.AddDate(0, 0, 1).Format(icsDate)

	subject := conf.Get(schema.FieldSubject)
	if subject == "" {
		subject = untitled
	}

	cw.line("BEGIN:VEVENT")
	cw.line("UID:" + escapeText(subject) + "-" + dtstart)
	cw.line("DTSTAMP:" + stamp)
	cw.line("DTSTART;VALUE=DATE:" + dtstart)
	cw.line("DTEND;VALUE=DATE:" + dtend)
	cw.line("SUMMARY:" + escapeText(subject))

	if desc := description(conf); len(desc) > 0 {
		escaped := make([]string, len(desc))
		for i, part := range desc {
			escaped[i] = escapeText(part)
		}
		cw.line("DESCRIPTION:" + strings.Join(escaped, `\n`))
	}
	if loc := conf.Get(schema.FieldLocation); loc != "" {
		cw.line("LOCATION:" + escapeText(loc))
	}

	cw.line("END:VEVENT")
	return true
}

// description lists Venue and Website first, then every other non-empty field
// without a property of its own, in field order.
func description(conf Conference) []string {
	var parts []string
	if v := conf.Get(schema.FieldVenue); v != "" {
		parts = append(parts, "Venue: "+v)
	}
	if v := conf.Get(schema.FieldWebsiteURL); v != "" {
		parts = append(parts, "Website: "+v)
	}
	for _, f := range conf.Fields {
		if descriptionExcluded[f.Name] || f.Value == "" {
			continue
		}
		parts = append(parts, f.Name+": "+f.Value)
	}
	return parts
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`,`, `\,`,
	`;`, `\;`,
	"\n", `\n`,
)

// escapeText escapes a TEXT property value.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// contentWriter writes CRLF-terminated content lines, folding those longer than
// 75 octets. The first error is kept and later writes are skipped.
type contentWriter struct {
	w   *bufio.Writer
	err error
}

func (cw *contentWriter) line(s string) {
	if cw.err != nil {
		return
	}
	_, cw.err = cw.w.WriteString(fold(s) + "\r\n")
}

// fold splits s into lines of at most maxLineOctets octets, continuation lines
// starting with a single space. Multi-byte characters are never split.
func fold(s string) string {
	if len(s) <= maxLineOctets {
		return s
	}

	var sb strings.Builder
	limit := maxLineOctets
	n := 0
	for _, r := range s {
		size := utf8.RuneLen(r)
		if size < 0 {
			size = len(string(utf8.RuneError))
		}
		if n+size > limit {
			sb.WriteString("\r\n ")
			// The leading space counts towards the continuation line.
			limit = maxLineOctets - 1
			n = 0
		}
		sb.WriteRune(r)
		n += size
	}
	return sb.String()
}
