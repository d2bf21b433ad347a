package console

import (
	"strings"

	"src.pyweb.sh/pkg/strutil"
)

// Probe reports whether a single line is a syntactically complete statement.
type Probe func(line string) Completeness

// IsReady reports whether the buffered lines should be executed now.
//
// A buffer whose last physical line is blank is always ready; it is how the
// user asks to run multi-line input. A single-line buffer is ready when the
// probe says it is complete. Anything else waits for more input.
func IsReady(lines []string, probe Probe) bool {
	if len(lines) == 0 {
		return false
	}
	if strings.TrimSpace(strutil.LastLine(lines[len(lines)-1])) == "" {
		return true
	}
	if len(lines) == 1 {
		return probe(lines[0]) == Complete
	}
	return false
}

// Indent returns the whitespace to insert at the start of the line following
// line: the indentation of line, plus one unit of width unit when line opens
// a block with a trailing colon. An empty or blank line never gets the extra
// unit.
func Indent(line string, unit int) string {
	n := strutil.IndentWidth(line)
	if trimmed := strings.TrimSpace(line); trimmed != "" && strings.HasSuffix(trimmed, ":") {
		n += unit
	}
	return strings.Repeat(" ", n)
}
