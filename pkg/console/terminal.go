package console

// Event identifies an input event that a Terminal dispatches to a bound
// Handler.
type Event int

const (
	// EventBeforeSubmit is dispatched before a line is echoed and submitted.
	// A handler returning false rejects the line.
	EventBeforeSubmit Event = iota
	// EventSubmit is dispatched after a line has been echoed with the
	// current prompt. The argument is the line.
	EventSubmit
	// EventContinue is a submission that must never execute, bound to
	// Shift+Enter and its fallbacks.
	EventContinue
	// EventBackspace is dispatched for the backspace key. A handler returning
	// false lets the terminal delete a character as usual.
	EventBackspace
	// EventCancel is the interrupt key.
	EventCancel
	// EventPaste carries pasted text as its argument. The terminal does not
	// insert the text itself when a handler is bound.
	EventPaste
)

// Handler handles an Event. The meaning of arg and of the return value
// depend on the event.
type Handler func(arg string) bool

// History is the list of lines the user can recall.
type History interface {
	Append(line string)
	Clear()
}

// Name of the key action that moves the cursor one character left.
const KeyBackwardChar = "CTRL+B"

// Terminal is the terminal widget a Session drives.
//
// Line indices may be negative, in which case they count from the end of the
// transcript: -1 is the last line.
type Terminal interface {
	// Echo appends text to the transcript. Text containing newlines spans
	// several lines.
	Echo(text string)
	// Error appends text to the transcript, rendered as an error.
	Error(text string)
	RemoveLine(index int)
	UpdateLine(index int, text string)
	// Clear removes the whole transcript.
	Clear()

	SetPrompt(prompt string)
	Prompt() string

	// InsertAtCursor inserts text into the current line at the cursor and
	// moves the cursor past it.
	InsertAtCursor(text string)
	// SetCurrentLine replaces the current line and moves the cursor to its
	// end.
	SetCurrentLine(text string)
	CurrentLine() string
	TextBeforeCursor() string
	InvokeKeyAction(name string)

	History() History

	Bind(ev Event, h Handler)
	// Exec submits line as if the user typed it and pressed Enter: it is
	// checked with the EventBeforeSubmit handler, echoed after the prompt,
	// and passed to the EventSubmit handler.
	Exec(line string)
}
