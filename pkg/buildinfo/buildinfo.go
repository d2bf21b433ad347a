// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.pyweb.sh/pkg/buildinfo.Var=value" to "go build" or
// "go install".
package buildinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"src.pyweb.sh/pkg/prog"
)

// VersionBase identifies the version of pyweb. On development commits, it
// identifies the next release.
const VersionBase = "0.3.0"

// VCSOverride may be set during compilation to "time-commit" (e.g.
// "20220401235958-123456789012") to override the VCS information read from
// the binary.
var VCSOverride string

// Reproducible identifies whether the build is reproducible. This can be
// overridden when building pyweb.
var Reproducible = "false"

// Type contains all the build information fields.
type Type struct {
	Version      string `json:"version"`
	Reproducible bool   `json:"reproducible"`
	GoVersion    string `json:"goversion"`
}

// Value contains all the build information.
var Value = Type{
	Version:      devVersion(VersionBase, VCSOverride, debug.ReadBuildInfo),
	Reproducible: Reproducible == "true",
	GoVersion:    runtime.Version(),
}

// FullVersion returns the full version string, as shown by --version.
func FullVersion() string { return Value.Version }

func devVersion(next, vcsOverride string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if vcsOverride != "" {
		return next + "-dev.0." + vcsOverride
	}
	fallback := next + "-dev.unknown"
	bi, ok := readBuildInfo()
	if !ok {
		return fallback
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return strings.TrimPrefix(v, "v")
	}
	var revision, vcsTime string
	modified := false
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) < 12 {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, vcsTime)
	if err != nil {
		return fallback
	}
	version := fmt.Sprintf("%s-dev.0.%s-%s", next, t.UTC().Format("20060102150405"), revision[:12])
	if modified {
		version += "-dirty"
	}
	return version
}

// Program is the buildinfo subprogram.
type Program struct{}

func (Program) Run(_ context.Context, fds [3]*os.File, f *prog.Flags, _ []string) error {
	switch {
	case f.BuildInfo:
		if f.JSON {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
			if Value.Reproducible {
				fmt.Fprintln(fds[1], "Reproducible build: true")
			}
		}
	case f.Version:
		if f.JSON {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNotSuitable
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
