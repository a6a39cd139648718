package format

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	dserrors "github.com/pyconferences/conftool/pkg/dataset/errors"
)

const header = "Subject,Start Date,End Date,Country\n"

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "2024.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        string
		wantDropped int
		wantChanged bool
	}{
		{
			name:    "already formatted",
			content: header + "A,2024-01-01,2024-01-02,USA\nB,2024-02-01,2024-02-02,FRA\n",
			want:    header + "A,2024-01-01,2024-01-02,USA\nB,2024-02-01,2024-02-02,FRA\n",
		},
		{
			name:        "trims values",
			content:     header + " A ,2024-01-01 , 2024-01-02,USA\t\n",
			want:        header + "A,2024-01-01,2024-01-02,USA\n",
			wantChanged: true,
		},
		{
			name: "sorts by start, end, subject",
			content: header +
				"C,2024-03-01,2024-03-02,USA\n" +
				"B,2024-01-01,2024-01-05,USA\n" +
				"Z,2024-01-01,2024-01-02,USA\n" +
				"A,2024-01-01,2024-01-02,USA\n",
			want: header +
				"A,2024-01-01,2024-01-02,USA\n" +
				"Z,2024-01-01,2024-01-02,USA\n" +
				"B,2024-01-01,2024-01-05,USA\n" +
				"C,2024-03-01,2024-03-02,USA\n",
			wantChanged: true,
		},
		{
			name:        "drops rows without subject",
			content:     header + "  ,2024-01-01,2024-01-02,USA\nA,2024-01-01,2024-01-02,USA\n",
			want:        header + "A,2024-01-01,2024-01-02,USA\n",
			wantDropped: 1,
			wantChanged: true,
		},
		{
			name:        "minimal quoting",
			content:     header + "\"PyCon\",2024-01-01,2024-01-02,USA\n\"Py, Con\",2024-02-01,2024-02-02,USA\n",
			want:        header + "PyCon,2024-01-01,2024-01-02,USA\n\"Py, Con\",2024-02-01,2024-02-02,USA\n",
			wantChanged: true,
		},
		{
			name:        "CRLF line endings",
			content:     "Subject,Start Date,End Date,Country\r\nA,2024-01-01,2024-01-02,USA\r\n",
			want:        header + "A,2024-01-01,2024-01-02,USA\n",
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)

			res, err := File(path, false)
			if err != nil {
				t.Fatalf("File() error = %v", err)
			}
			if res.Changed != tt.wantChanged {
				t.Errorf("Changed = %v, want %v", res.Changed, tt.wantChanged)
			}
			if res.Dropped != tt.wantDropped {
				t.Errorf("Dropped = %d, want %d", res.Dropped, tt.wantDropped)
			}
			if got := readFile(t, path); got != tt.want {
				t.Errorf("formatted file =\n%q\nwant\n%q", got, tt.want)
			}

			again, err := File(path, false)
			if err != nil {
				t.Fatalf("second File() error = %v", err)
			}
			if again.Changed {
				t.Error("formatting a formatted file changed it")
			}
		})
	}
}

func TestFileCheckDoesNotWrite(t *testing.T) {
	content := header + "B,2024-02-01,2024-02-02,USA\nA,2024-01-01,2024-01-02,USA\n"
	path := writeFile(t, content)

	res, err := File(path, true)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if !res.Changed {
		t.Error("expected check to report a change")
	}
	if got := readFile(t, path); got != content {
		t.Errorf("check mode modified the file:\n%q", got)
	}
}

func TestFileRejectsBadShape(t *testing.T) {
	content := header + "A,2024-01-01,2024-01-02,USA,extra\n"
	path := writeFile(t, content)

	_, err := File(path, false)
	var dsErr *dserrors.Error
	if !errors.As(err, &dsErr) || dsErr.Kind != dserrors.KindRowShape {
		t.Fatalf("expected a row shape error, got %v", err)
	}
	if dsErr.Location.Line != 2 {
		t.Errorf("Line = %d, want 2", dsErr.Location.Line)
	}
	if got := readFile(t, path); got != content {
		t.Error("file was modified despite the error")
	}
}

func TestFileRequiresSortColumns(t *testing.T) {
	path := writeFile(t, "Subject,Start date,End Date\nA,2024-01-01,2024-01-02\n")

	_, err := File(path, false)
	var dsErr *dserrors.Error
	if !errors.As(err, &dsErr) || dsErr.Kind != dserrors.KindMalformed {
		t.Fatalf("expected a malformed error, got %v", err)
	}
	if dsErr.Suggestion != "Did you mean 'Start date'?" {
		t.Errorf("Suggestion = %q", dsErr.Suggestion)
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "nope.csv"), false); err == nil {
		t.Error("expected error for missing file")
	}
}
