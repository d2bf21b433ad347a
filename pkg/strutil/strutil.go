// Package strutil provides string utilities.
package strutil

import (
	"strings"
	"unicode"
)

// ChopLineEnding removes a line ending ("\r\n" or "\n") from the end of s. It
// returns s if it doesn't end with a line ending.
func ChopLineEnding(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}

// IndentWidth returns the number of bytes of leading whitespace in s.
func IndentWidth(s string) int {
	return len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
}

// ExpandLeadingTabs replaces each tab within the leading whitespace of s with
// width spaces. Tabs after the first non-blank character are kept.
func ExpandLeadingTabs(s string, width int) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if !strings.Contains(s[:i], "\t") {
		return s
	}
	return strings.ReplaceAll(s[:i], "\t", strings.Repeat(" ", width)) + s[i:]
}

// LastLine returns the part of s after the last '\n'.
func LastLine(s string) string {
	return s[strings.LastIndex(s, "\n")+1:]
}
