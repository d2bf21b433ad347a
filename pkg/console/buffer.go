package console

// LineBuffer holds the source lines typed or pasted since the last execution
// or cancellation, in typing order.
//
// A LineBuffer is not safe for concurrent use; the Session owning it
// serializes access.
type LineBuffer struct {
	lines []string
}

// Append adds a line. Any string is accepted, including the empty string.
func (b *LineBuffer) Append(line string) { b.lines = append(b.lines, line) }

// PopLast removes and returns the last line. It returns false and leaves the
// buffer untouched when the buffer is empty.
func (b *LineBuffer) PopLast() (string, bool) {
	if len(b.lines) == 0 {
		return "", false
	}
	last := b.lines[len(b.lines)-1]
	b.lines = b.lines[:len(b.lines)-1]
	return last, true
}

// Clear removes all lines.
func (b *LineBuffer) Clear() { b.lines = nil }

// Len returns the number of lines.
func (b *LineBuffer) Len() int { return len(b.lines) }

// Get returns the i-th line. It panics if i is out of range.
func (b *LineBuffer) Get(i int) string { return b.lines[i] }

// Lines returns a copy of all lines.
func (b *LineBuffer) Lines() []string {
	return append([]string(nil), b.lines...)
}
