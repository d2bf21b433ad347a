package console

import (
	"strings"
	"unicode/utf8"

	"src.pyweb.sh/pkg/strutil"
)

// Appends line to the buffer and runs the buffer if autoRun is set and it is
// ready. Otherwise prepares a continuation line.
func (s *Session) push(line string, autoRun bool) {
	if line != "" && s.opts.TabToSpace {
		line = strutil.ExpandLeadingTabs(line, s.opts.IndentSize)
	}
	s.buffer.Append(line)
	if autoRun && IsReady(s.buffer.Lines(), s.engine.CompileCheck) {
		s.execute(s.buffer.Lines(), true, true)
		return
	}
	s.term.SetPrompt(ContinuationPrompt)
	s.term.InsertAtCursor(Indent(line, s.opts.IndentSize))
}

func (s *Session) submit(line string) bool {
	s.push(line, true)
	return true
}

// Submits the current line without ever running it.
func (s *Session) continueLine(string) bool {
	if !s.accept() {
		return true
	}
	line := s.term.CurrentLine()
	s.term.SetCurrentLine("")
	s.term.History().Append(line)
	s.term.Echo(s.term.Prompt() + line)
	s.push(line, false)
	return true
}

// Backspace on an empty line moves back into the previous buffered line.
func (s *Session) backspace(string) bool {
	if s.term.CurrentLine() != "" {
		return false
	}
	if s.buffer.Len() == 0 {
		return true
	}
	s.term.RemoveLine(-1)
	line, _ := s.buffer.PopLast()
	s.term.SetCurrentLine(line)
	if s.buffer.Len() == 0 {
		s.term.SetPrompt(PrimaryPrompt)
	}
	return true
}

// Abandons the pending input, keeping a record of it in the transcript.
func (s *Session) cancel(string) bool {
	typed := s.term.CurrentLine()
	prompt := s.term.Prompt()
	s.term.InsertAtCursor("^C")
	shown := s.term.CurrentLine()
	if strings.TrimSpace(typed) != "" {
		s.term.History().Append(typed)
	}
	s.buffer.Clear()
	s.term.SetCurrentLine("")
	s.term.Echo(prompt)
	// The cancelled line is shown with the prompt of the fresh input.
	s.term.SetPrompt(PrimaryPrompt)
	s.term.UpdateLine(-1, PrimaryPrompt+shown)
	return true
}

// Inserts pasted text; every line but the last becomes a continuation line.
func (s *Session) paste(text string) bool {
	if !s.accept() {
		return true
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if s.opts.DedentOnPaste {
		text = strutil.Dedent(text)
	}
	left := s.term.TextBeforeCursor()
	right := s.term.CurrentLine()[len(left):]
	s.term.SetCurrentLine("")
	s.term.InsertAtCursor(left)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		s.term.InsertAtCursor(line)
		if i < len(lines)-1 {
			s.continueLine("")
			// Drop the auto-indent; pasted lines carry their own.
			s.term.SetCurrentLine("")
		}
	}

	s.term.InsertAtCursor(right)
	for range utf8.RuneCountInString(right) {
		s.term.InvokeKeyAction(KeyBackwardChar)
	}
	return true
}
