package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

const fullHeader = "Subject,Start Date,End Date,Location,Country,Venue,Tutorial Deadline,Talk Deadline,Website URL,Proposal URL,Sponsorship URL\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.FixedZone("CET", 3600))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	y2024 := writeFile(t, dir, "2024.csv", fullHeader+
		" PyCon US ,2024-05-15,2024-05-23,Pittsburgh,USA,,,,,,\n"+
		",,,,,,,,,,\n"+
		",,,Nowhere,,,,,,,\n"+
		"DjangoCon EU,2024-06-05,2024-06-09,Vigo,ESP,,,,,,\n")
	y2023 := writeFile(t, dir, "2023.csv", "Subject,Start Date,End Date\nPyCon AU,2023-08-16,2023-08-20\n")
	other := writeFile(t, dir, "conferences.csv", "Subject,Start Date,End Date\nPyCon AU,2023-08-16,2023-08-20\n")

	confs, err := Load([]string{y2024, other, y2023})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(confs) != 4 {
		t.Fatalf("expected 4 conferences, got %d", len(confs))
	}

	// Sorted by start date, then subject; ties keep file order.
	var got []string
	for _, c := range confs {
		got = append(got, c.Get("Subject")+"|"+c.Get("year"))
	}
	want := []string{"PyCon AU|2023", "PyCon AU|", "PyCon US|2024", "DjangoCon EU|2024"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("conferences = %v, want %v", got, want)
	}

	us := confs[2]
	if us.Fields[0].Name != "Subject" || us.Fields[0].Value != "PyCon US" {
		t.Errorf("first field = %+v, want trimmed Subject", us.Fields[0])
	}
	if last := us.Fields[len(us.Fields)-1]; last.Name != FieldYear || last.Value != "2024" {
		t.Errorf("last field = %+v, want year", last)
	}
}

func TestWriteJSON(t *testing.T) {
	confs := []Conference{
		{Fields: []Field{
			{"Subject", "PyCon Español"},
			{"Start Date", "2024-10-04"},
			{"Website URL", "https://2024.es.pycon.org/?a=1&b=2"},
			{"year", "2024"},
		}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, confs); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	want := `[
  {
    "Subject": "PyCon Español",
    "Start Date": "2024-10-04",
    "Website URL": "https://2024.es.pycon.org/?a=1&b=2",
    "year": "2024"
  }
]
`
	if buf.String() != want {
		t.Errorf("JSON =\n%s\nwant\n%s", buf.String(), want)
	}

	var decoded []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("JSON = %q, want an empty array", buf.String())
	}
}

func TestCalendarWrite(t *testing.T) {
	confs := []Conference{
		{Fields: []Field{
			{"Subject", "PyCon US, 2024"},
			{"Start Date", "2024-05-15"},
			{"End Date", "2024-05-23"},
			{"Location", "Pittsburgh; PA"},
			{"Country", "USA"},
			{"Venue", "Convention Center"},
			{"Talk Deadline", "2023-12-18"},
			{"Website URL", "https://us.pycon.org/2024/"},
			{"Proposal URL", ""},
			{"year", "2024"},
		}},
		{Fields: []Field{
			{"Subject", "No Date"},
			{"Start Date", "TBD"},
		}},
		{Fields: []Field{
			{"Subject", ""},
			{"Start Date", "2024-12-31"},
		}},
	}

	cal := &Calendar{Now: fixedClock}
	var buf bytes.Buffer
	n, err := cal.Write(&buf, confs)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 2 {
		t.Errorf("events = %d, want 2", n)
	}

	want := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Python Conferences//EN",
		"BEGIN:VEVENT",
		`UID:PyCon US\, 2024-20240515`,
		"DTSTAMP:20240301T113045Z",
		"DTSTART;VALUE=DATE:20240515",
		"DTEND;VALUE=DATE:20240524",
		`SUMMARY:PyCon US\, 2024`,
		`DESCRIPTION:Venue: Convention Center\nWebsite: https://us.pycon.org/2024/\n`,
		" Talk Deadline: 2023-12-18",
		`LOCATION:Pittsburgh\; PA`,
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:Untitled Conference-20241231",
		"DTSTAMP:20240301T113045Z",
		"DTSTART;VALUE=DATE:20241231",
		"DTEND;VALUE=DATE:20250101",
		"SUMMARY:Untitled Conference",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n") + "\r\n"

	if buf.String() != want {
		t.Errorf("calendar =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestCalendarProdID(t *testing.T) {
	cal := &Calendar{ProdID: "-//Example//EN", Now: fixedClock}
	var buf bytes.Buffer
	if _, err := cal.Write(&buf, nil); err != nil {
		t.Fatal(err)
	}
	want := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//Example//EN\r\nEND:VCALENDAR\r\n"
	if buf.String() != want {
		t.Errorf("calendar = %q, want %q", buf.String(), want)
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`back\slash`, `back\\slash`},
		{"a,b;c", `a\,b\;c`},
		{"two\nlines", `two\nlines`},
		{`\,`, `\\\,`},
	}
	for _, tt := range tests {
		if got := escapeText(tt.in); got != tt.want {
			t.Errorf("escapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDTEndCrossesBoundaries(t *testing.T) {
	tests := []struct {
		start, end string
		want       string
	}{
		{"2024-01-30", "2024-01-31", "DTEND;VALUE=DATE:20240201"},
		{"2024-02-28", "2024-02-29", "DTEND;VALUE=DATE:20240301"},
		{"2023-02-27", "2023-02-28", "DTEND;VALUE=DATE:20230301"},
		{"2024-12-30", "2024-12-31", "DTEND;VALUE=DATE:20250101"},
		{"2024-06-01", "", "DTEND;VALUE=DATE:20240602"},
		{"2024-06-01", "2024-02-30", "DTEND;VALUE=DATE:20240602"},
	}
	for _, tt := range tests {
		conf := Conference{Fields: []Field{
			{"Subject", "X"},
			{"Start Date", tt.start},
			{"End Date", tt.end},
		}}
		var buf bytes.Buffer
		if _, err := (&Calendar{Now: fixedClock}).Write(&buf, []Conference{conf}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), tt.want+"\r\n") {
			t.Errorf("start %s end %q: missing %s in\n%s", tt.start, tt.end, tt.want, buf.String())
		}
	}
}

func TestFold(t *testing.T) {
	short := strings.Repeat("a", 75)
	if got := fold(short); got != short {
		t.Errorf("75-octet line was folded")
	}

	long := strings.Repeat("a", 160)
	folded := fold(long)
	lines := strings.Split(folded, "\r\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), folded)
	}
	if len(lines[0]) != 75 || len(lines[1]) != 75 || !strings.HasPrefix(lines[1], " ") {
		t.Errorf("unexpected folding: %q", lines)
	}
	if strings.ReplaceAll(folded, "\r\n ", "") != long {
		t.Error("unfolding does not restore the line")
	}

	// Multi-byte characters stay whole.
	accents := strings.Repeat("é", 50)
	for _, l := range strings.Split(fold(accents), "\r\n") {
		if len(l) > 75 || !utf8.ValidString(l) {
			t.Errorf("bad folded line %q", l)
		}
	}
}

func TestYearFromFileName(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"2024.csv", "2024", true},
		{"data/1999.csv", "1999", true},
		{"conferences.csv", "", false},
		{"20245.csv", "", false},
		{"202a.csv", "", false},
	}
	for _, tt := range tests {
		got, ok := yearFromFileName(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("yearFromFileName(%q) = %q, %v", tt.path, got, ok)
		}
	}
}
