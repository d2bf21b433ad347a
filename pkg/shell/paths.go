package shell

import (
	"src.pyweb.sh/pkg/config"
	"src.pyweb.sh/pkg/prog"
)

// Paths keeps the paths used by the shell. An empty path disables what it is
// for.
type Paths struct {
	// The rc file, run at the start of the interactive mode.
	RC string
	// The history database.
	DB string
	// The directory packages are loaded from.
	LibDir string
}

// MakePaths returns the paths in cfg, overridden by command-line flags.
func MakePaths(cfg config.Config, f *prog.Flags) Paths {
	p := Paths{RC: cfg.RC, DB: cfg.History.DB, LibDir: cfg.Packages.Dir}
	if f.RC != "" {
		p.RC = f.RC
	}
	if f.NoRc {
		p.RC = ""
	}
	if f.DB != "" {
		p.DB = f.DB
	}
	if f.LibDir != "" {
		p.LibDir = f.LibDir
	}
	return p
}
