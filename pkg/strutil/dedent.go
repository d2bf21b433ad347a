package strutil

import (
	"regexp"
	"strings"
)

var (
	whitespaceOnly    = regexp.MustCompile("(?m)^[ \t]+$")
	leadingWhitespace = regexp.MustCompile("(?m)(^[ \t]*)(?:[^ \t\n])")
)

// Dedent removes any common leading whitespace from every line in text.
//
// Lines consisting solely of whitespace are normalized to empty lines and do
// not take part in computing the margin. Unlike the dedent helper commonly
// used for test fixtures, a leading newline is preserved, so that the number
// of lines never changes; this matters for pasted text.
func Dedent(text string) string {
	text = whitespaceOnly.ReplaceAllString(text, "")
	margin := commonMargin(text)
	if margin == "" {
		return text
	}
	return regexp.MustCompile("(?m)^"+regexp.QuoteMeta(margin)).ReplaceAllString(text, "")
}

// Looks for the longest leading string of spaces and tabs common to all
// non-blank lines.
func commonMargin(text string) string {
	var margin string
	for i, indent := range leadingWhitespace.FindAllStringSubmatch(text, -1) {
		switch {
		case i == 0:
			margin = indent[1]
		case strings.HasPrefix(indent[1], margin):
			// Deeper than the current margin.
		case strings.HasPrefix(margin, indent[1]):
			margin = indent[1]
		default:
			return ""
		}
	}
	return margin
}
