package errors

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ExtractContext reads the data file and returns the lines surrounding location,
// numbered and with the offending line marked.
func ExtractContext(location Location, contextLines int) string {
	if !location.IsValid() {
		return ""
	}

	file, err := os.Open(location.File)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lines := make([]string, 0)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return ""
	}

	errorLine := location.Line - 1
	if errorLine >= len(lines) {
		return ""
	}
	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i+1, lines[i]))
	}

	return sb.String()
}

// WithContext fills err.Context from the source file and returns err.
func WithContext(err *Error, contextLines int) *Error {
	if err.Location.IsValid() && contextLines >= 0 {
		err.Context = ExtractContext(err.Location, contextLines)
	}
	return err
}
