// Package env keeps names of environment variables with special significance to
// pyweb.
package env

// Environment variables with special significance to pyweb.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	HOME                  = "HOME"
	PYWEB_TEST_TIME_SCALE = "PYWEB_TEST_TIME_SCALE"
	TERM                  = "TERM"
	XDG_CONFIG_HOME       = "XDG_CONFIG_HOME"
	XDG_STATE_HOME        = "XDG_STATE_HOME"
)

// Prefix of environment variables overriding configuration keys, such as
// PYWEB_CONSOLE_INDENT_SIZE.
const PYWEB_PREFIX = "PYWEB"
