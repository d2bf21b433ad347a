package console

// Options configures a Session. The zero value is not useful; start from
// DefaultOptions or pass Option values to New.
type Options struct {
	// Width of one indentation unit, also used when expanding tabs.
	IndentSize int
	// Expand tabs in the leading whitespace of submitted lines.
	TabToSpace bool
	// Remove common indentation from pasted text.
	DedentOnPaste bool
	// Log everything evaluated code prints.
	MirrorOutput bool
	// Maximum number of transcript lines the terminal keeps.
	OutputLines int
	// Log input submitted while the console is locked.
	LockedConsoleLog bool
	// Show an error in the terminal for input submitted while the console
	// is locked.
	LockedTerminalError bool
	// Show the welcome message on Start.
	Greeting bool
	// Show messages while the runtime initializes on Start.
	LoadingMessage bool
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		IndentSize:          4,
		TabToSpace:          true,
		DedentOnPaste:       true,
		MirrorOutput:        true,
		OutputLines:         10000,
		LockedConsoleLog:    false,
		LockedTerminalError: true,
		Greeting:            true,
		LoadingMessage:      true,
	}
}

// Option modifies Options.
type Option func(*Options)

// NewOptions applies opts to the defaults.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithOptions replaces all options.
func WithOptions(o Options) Option { return func(p *Options) { *p = o } }

// WithIndentSize sets the indentation width. Values below 1 are ignored.
func WithIndentSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.IndentSize = n
		}
	}
}

func WithTabToSpace(b bool) Option          { return func(o *Options) { o.TabToSpace = b } }
func WithDedentOnPaste(b bool) Option       { return func(o *Options) { o.DedentOnPaste = b } }
func WithMirrorOutput(b bool) Option        { return func(o *Options) { o.MirrorOutput = b } }
func WithLockedConsoleLog(b bool) Option    { return func(o *Options) { o.LockedConsoleLog = b } }
func WithLockedTerminalError(b bool) Option { return func(o *Options) { o.LockedTerminalError = b } }
func WithGreeting(b bool) Option            { return func(o *Options) { o.Greeting = b } }
func WithLoadingMessage(b bool) Option      { return func(o *Options) { o.LoadingMessage = b } }

// WithOutputLines sets the transcript retention limit. Values below 1 are
// ignored.
func WithOutputLines(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.OutputLines = n
		}
	}
}
