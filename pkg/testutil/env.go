package testutil

import (
	"os"
	"path/filepath"

	"src.pyweb.sh/pkg/env"
)

// Setenv sets the value of an environment variable for the duration of a test.
// It returns value.
func Setenv(c Cleanuper, name, value string) string {
	SaveEnv(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv unsets an environment variable for the duration of a test.
func Unsetenv(c Cleanuper, name string) {
	SaveEnv(c, name)
	os.Unsetenv(name)
}

// SaveEnv saves the current value of an environment variable so that it will be
// restored after a test has finished.
func SaveEnv(c Cleanuper, name string) {
	oldValue, existed := os.LookupEnv(name)
	if existed {
		c.Cleanup(func() { os.Setenv(name, oldValue) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
}

// InTempHome points $HOME to a new temporary directory for the duration of a
// test, and unsets the XDG directory variables, so that the config and state
// directories are derived from it. It returns the directory.
func InTempHome(c TempDirer) string {
	home := TempDir(c)
	Setenv(c, env.HOME, home)
	Unsetenv(c, env.XDG_CONFIG_HOME)
	Unsetenv(c, env.XDG_STATE_HOME)
	return home
}

// ConfigDir returns the pyweb config directory under a home set up by
// InTempHome.
func ConfigDir(home string) string { return filepath.Join(home, ".config", "pyweb") }
