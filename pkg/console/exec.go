package console

import (
	"io"
	"strings"

	"src.pyweb.sh/pkg/logutil"
)

var outputLogger = logutil.GetLogger("output")

// ExecutionResult describes one executed unit of code.
type ExecutionResult struct {
	// Source is the code that was executed.
	Source string
	// Output is what the code printed. When the output was displayed, it
	// also contains the failure detail, or the representation of the value
	// of a single-line unit.
	Output string
	// Value produced by the last expression statement, or nil.
	Value any
	// ValueRepr is the display form of Value.
	ValueRepr string
	Failed    bool
	// FailureDetail is the error message and trace, or "" on success.
	FailureDetail string
}

// Accumulates what evaluated code prints.
type capture struct {
	buf    strings.Builder
	mirror bool
}

func (c *capture) Write(p []byte) (int, error) {
	c.buf.Write(p)
	if c.mirror {
		outputLogger.Info("output", "text", string(p))
	}
	return len(p), nil
}

// Executes lines as one unit. When live is true, lines are the contents of
// the line buffer, which is cleared before evaluation starts.
func (s *Session) execute(lines []string, live, display bool) ExecutionResult {
	s.out.buf.Reset()
	src := strings.Join(lines, "\n")
	singleLine := len(lines) == 1
	if live {
		s.buffer.Clear()
	}
	s.term.SetPrompt(PrimaryPrompt)

	outcome := s.engine.Evaluate(src, &s.out)
	res := ExecutionResult{
		Source:        src,
		Value:         outcome.Value,
		ValueRepr:     s.engine.Repr(outcome.Value),
		Failed:        outcome.Failed,
		FailureDetail: outcome.FailureDetail,
	}
	if outcome.Failed {
		logger.Debug("evaluation failed", "detail", outcome.FailureDetail)
		if display {
			io.WriteString(&s.out, outcome.FailureDetail)
		}
	} else if singleLine && display && outcome.Value != nil {
		io.WriteString(&s.out, res.ValueRepr)
	}
	res.Output = s.out.buf.String()
	if display && res.Output != "" {
		s.term.Echo(strings.TrimSuffix(res.Output, "\n"))
	}
	return res
}
