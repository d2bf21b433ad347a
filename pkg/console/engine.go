package console

import (
	"context"
	"io"
)

// Completeness is the outcome of probing a single line with
// Engine.CompileCheck.
type Completeness int

const (
	// Complete means the line is a complete statement and can run.
	Complete Completeness = iota
	// Incomplete means more input could complete the line.
	Incomplete
	// Malformed means the line has an error that more input cannot fix.
	Malformed
)

func (c Completeness) String() string {
	switch c {
	case Complete:
		return "complete"
	case Incomplete:
		return "incomplete"
	case Malformed:
		return "malformed"
	default:
		return "?"
	}
}

// Outcome is what an Engine reports about one evaluation.
type Outcome struct {
	// Value produced by the last expression statement, or nil when there is
	// none or it is the language's null value.
	Value any
	// Failed is true when evaluation raised an error.
	Failed bool
	// FailureDetail holds the error message and trace when Failed is true.
	FailureDetail string
}

// Engine evaluates source code. Definitions made in one call to Evaluate are
// visible to later calls.
type Engine interface {
	// Evaluate runs src, writing everything the code prints to stdout.
	Evaluate(src string, stdout io.Writer) Outcome
	// CompileCheck probes a single line without running it.
	CompileCheck(line string) Completeness
	// Repr returns the display form of a value returned in an Outcome,
	// including nil.
	Repr(v any) string
}

// Initializer is implemented by engines that need initialization before the
// first evaluation.
type Initializer interface {
	Init(ctx context.Context) error
}

// Bannerer is implemented by engines that can print a version banner. The
// returned code is run at startup with input display turned off.
type Bannerer interface {
	BannerCode() string
}

// Loader loads named resources, such as packages, for an engine.
//
// Load reports progress messages to progress and non-fatal errors to failure,
// and returns a final message (which may be empty) or an error.
type Loader interface {
	Load(ctx context.Context, names []string, progress, failure func(string)) (string, error)
}
