package console

import (
	"context"
	"strings"

	"src.pyweb.sh/pkg/strutil"
)

// RunOptions controls RunCode.
type RunOptions struct {
	// Remove common indentation from the code first.
	DedentCode bool
	// Echo the code as if it were typed.
	DisplayInput bool
	// Echo what the code prints.
	DisplayOutput bool
	// Add each line of echoed code to the history.
	PushToHistory bool
}

// RunOption modifies RunOptions.
type RunOption func(*RunOptions)

func DedentCode(b bool) RunOption    { return func(o *RunOptions) { o.DedentCode = b } }
func DisplayInput(b bool) RunOption  { return func(o *RunOptions) { o.DisplayInput = b } }
func DisplayOutput(b bool) RunOption { return func(o *RunOptions) { o.DisplayOutput = b } }
func PushToHistory(b bool) RunOption { return func(o *RunOptions) { o.PushToHistory = b } }

// RunCode runs code as one unit, as though it were typed at the console,
// without disturbing any pending input. All options default to true.
func (s *Session) RunCode(code string, opts ...RunOption) ExecutionResult {
	o := RunOptions{DedentCode: true, DisplayInput: true, DisplayOutput: true, PushToHistory: true}
	for _, opt := range opts {
		opt(&o)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runCode(code, o)
}

func (s *Session) runCode(code string, o RunOptions) ExecutionResult {
	if o.DedentCode {
		code = strutil.Dedent(code)
	}
	lines := strings.Split(code, "\n")

	s.hideBuffered()
	defer s.restoreBuffered()
	if o.DisplayInput {
		prompt := PrimaryPrompt
		for _, line := range lines {
			s.term.Echo(prompt + line)
			if o.PushToHistory {
				s.term.History().Append(line)
			}
			prompt = ContinuationPrompt
		}
	}
	return s.execute(lines, false, o.DisplayOutput)
}

// Clear wipes the transcript, the current line and the buffer.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term.Clear()
	s.term.SetCurrentLine("")
	s.buffer.Clear()
	s.term.SetPrompt(PrimaryPrompt)
}

// SubmitLine submits line as if it were typed and entered. It waits for the
// gate before submitting and again afterwards, since the evaluation may have
// started a blocking operation.
func (s *Session) SubmitLine(ctx context.Context, line string) error {
	if err := s.gate.Wait(ctx); err != nil {
		return err
	}
	s.term.Exec(line)
	return s.gate.Wait(ctx)
}

// LoadResource loads resources with the session's Loader. The console is
// locked until loading finishes and the final message is shown; progress
// and error messages are shown before any pending input. The returned channel
// receives the result and is then closed.
func (s *Session) LoadResource(ctx context.Context, names ...string) <-chan error {
	done := make(chan error, 1)
	if s.loader == nil {
		// May be called during an evaluation, which holds the session.
		go func() {
			s.Error(ErrNoLoader.Error())
			done <- ErrNoLoader
			close(done)
		}()
		return done
	}
	s.gate.Lock()
	logger.Debug("loading resources", "names", names)
	go func() {
		defer close(done)
		final, err := s.loader.Load(ctx, names, s.Echo, s.Error)
		if err != nil {
			logger.Warn("loading resources failed", "names", names, "err", err)
			s.Error(err.Error())
		} else if final != "" {
			s.Echo(final)
		}
		// Unlock after the final message, so that input accepted next
		// appears after it.
		s.gate.Unlock()
		done <- err
	}()
	return done
}
