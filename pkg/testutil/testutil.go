// Package testutil contains common test utilities.
package testutil

import (
	"os"
	"strconv"
	"strings"
	"time"

	"src.pyweb.sh/pkg/env"
	"src.pyweb.sh/pkg/strutil"
)

// Cleanuper wraps the Cleanup method. It is a subset of [testing.TB], thus
// satisfied by [*testing.T] and [*testing.B].
type Cleanuper interface {
	Cleanup(func())
}

// Set sets *p to v for the duration of a test.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}

// Dedent removes common leading whitespace from every line in text. An initial
// newline is removed, so that raw strings can start on the line after the
// opening backtick.
func Dedent(text string) string {
	return strutil.Dedent(strings.TrimPrefix(text, "\n"))
}

// Scaled returns d scaled by $PYWEB_TEST_TIME_SCALE. If the environment
// variable does not exist or contains an invalid value, the scale defaults to
// 1.
func Scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) * testTimeScale())
}

func testTimeScale() float64 {
	s, err := strconv.ParseFloat(os.Getenv(env.PYWEB_TEST_TIME_SCALE), 64)
	if err != nil || s <= 0 {
		return 1
	}
	return s
}
