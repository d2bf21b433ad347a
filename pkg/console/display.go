package console

// Removes the rendered buffered lines, unless an outer call already did.
func (s *Session) hideBuffered() {
	if s.hidden == 0 {
		for range s.buffer.Len() {
			s.term.RemoveLine(-1)
		}
	}
	s.hidden--
}

// Undoes one hideBuffered; the outermost call renders the buffered lines
// again.
func (s *Session) restoreBuffered() {
	s.hidden++
	if s.hidden != 0 {
		return
	}
	prompt := PrimaryPrompt
	for _, line := range s.buffer.Lines() {
		s.term.Echo(prompt + line)
		prompt = ContinuationPrompt
	}
	if s.buffer.Len() > 0 {
		s.term.SetPrompt(ContinuationPrompt)
	}
}

// HideBuffered removes buffered but unexecuted lines from the transcript.
// Calls nest; each must be matched by RestoreBuffered.
func (s *Session) HideBuffered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hideBuffered()
}

// RestoreBuffered undoes one HideBuffered.
func (s *Session) RestoreBuffered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreBuffered()
}

// Emit calls f with pending input hidden, so that whatever f writes to the
// terminal appears before the pending input.
func (s *Session) Emit(f func(Terminal)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emit(f)
}

func (s *Session) emit(f func(Terminal)) {
	s.hideBuffered()
	defer s.restoreBuffered()
	f(s.term)
}

// Echo writes an out-of-band message before any pending input.
func (s *Session) Echo(text string) {
	s.Emit(func(t Terminal) { t.Echo(text) })
}

// Error writes an out-of-band error before any pending input.
func (s *Session) Error(text string) {
	s.Emit(func(t Terminal) { t.Error(text) })
}
