// Package console implements an interactive read-eval-print console on top
// of an Engine that evaluates code and a Terminal that displays it.
//
// The console buffers submitted lines until they form an executable unit,
// reproduces indentation on continuation lines, lets backspace cross line
// boundaries, turns pasted text into continuation lines, and keeps pending
// input at the bottom of the transcript when unrelated output arrives.
package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"src.pyweb.sh/pkg/logutil"
)

var logger = logutil.GetLogger("console")

// Prompts.
const (
	PrimaryPrompt      = ">>> "
	ContinuationPrompt = "... "
)

const lockedMessage = "Terminal is locked and can not be used."

// Shown by Start when Options.Greeting is set.
const greetingMessage = "Welcome to the pyweb console."

// ErrLocked is returned when input is rejected because the console is
// locked.
var ErrLocked = errors.New("console is locked")

// ErrNoLoader is returned by LoadResource on a session without a Loader.
var ErrNoLoader = errors.New("no resource loader configured")

// Spec specifies the collaborators of a Session.
type Spec struct {
	Terminal Terminal
	Engine   Engine
	// Optional.
	Loader Loader
}

// Session is one console. It owns the line buffer, the gate and the hidden
// lines depth.
//
// All event handlers, asynchronous completions and exported methods are
// serialized by an internal mutex, so evaluation blocks everything else.
type Session struct {
	term   Terminal
	engine Engine
	loader Loader
	opts   Options

	gate Gate

	mu      sync.Mutex
	buffer  LineBuffer
	out     capture
	started bool
	// Depth of nested hideBuffered calls, as a non-positive number. Buffered
	// lines are on screen iff it is 0.
	hidden int
}

// New creates a Session and binds its handlers on the terminal. The session
// starts locked; call Start to initialize the engine and unlock it.
func New(spec Spec, opts ...Option) *Session {
	s := &Session{
		term:   spec.Terminal,
		engine: spec.Engine,
		loader: spec.Loader,
		opts:   NewOptions(opts...),
	}
	s.out.mirror = s.opts.MirrorOutput
	s.gate.Lock()
	if t, ok := s.term.(interface{ SetOutputLimit(int) }); ok {
		t.SetOutputLimit(s.opts.OutputLines)
	}
	s.term.SetPrompt(PrimaryPrompt)
	s.bind()
	return s
}

// Options returns the options of the session.
func (s *Session) Options() Options { return s.opts }

// Gate returns the gate of the session.
func (s *Session) Gate() *Gate { return &s.gate }

// Buffer returns a copy of the buffered lines.
func (s *Session) Buffer() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.Lines()
}

// Start initializes the engine, prints the startup messages and unlocks the
// session. If the engine fails to initialize, the session stays locked.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("session already started")
	}
	if s.opts.Greeting {
		s.term.Echo(greetingMessage)
		s.term.Echo("")
	}
	if s.opts.LoadingMessage {
		s.term.Echo("Loading runtime...")
	}
	if e, ok := s.engine.(Initializer); ok {
		if err := e.Init(ctx); err != nil {
			s.term.Echo("Loading runtime failed.")
			logger.Error("runtime initialization failed", "err", err)
			return fmt.Errorf("initialize runtime: %w", err)
		}
	}
	if s.opts.LoadingMessage {
		s.term.Echo("Runtime loaded.")
		s.term.Echo("")
	}
	if b, ok := s.engine.(Bannerer); ok {
		s.runCode(b.BannerCode(), RunOptions{DisplayOutput: true})
	}
	s.started = true
	s.gate.Unlock()
	logger.Debug("session started")
	return nil
}

// Reports whether new input is accepted, signalling a rejection as
// configured.
func (s *Session) accept() bool {
	if !s.gate.Locked() {
		return true
	}
	if s.opts.LockedConsoleLog {
		logger.Warn(lockedMessage)
	}
	if s.opts.LockedTerminalError {
		s.term.Error(lockedMessage)
	}
	return false
}

func (s *Session) bind() {
	s.term.Bind(EventBeforeSubmit, s.locked(func(string) bool { return s.accept() }))
	s.term.Bind(EventSubmit, s.locked(s.submit))
	s.term.Bind(EventContinue, s.locked(s.continueLine))
	s.term.Bind(EventBackspace, s.locked(s.backspace))
	s.term.Bind(EventCancel, s.locked(s.cancel))
	s.term.Bind(EventPaste, s.locked(s.paste))
}

func (s *Session) locked(h Handler) Handler {
	return func(arg string) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return h(arg)
	}
}
