package eval

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.starlark.net/starlark"

	"src.pyweb.sh/pkg/console"
)

// Extension of package files.
const packageExt = ".star"

// ErrLoadFailed is returned by Loader.Load when some packages could not be
// loaded.
var ErrLoadFailed = errors.New("loading packages failed")

// Loader loads Starlark packages into an Engine. A package is a file with the
// .star extension; its name is its path without the extension, relative to
// the root of the file system.
type Loader struct {
	fsys   fs.FS
	engine *Engine
}

var _ console.Loader = (*Loader)(nil)

// NewLoader creates a Loader reading packages from fsys.
func NewLoader(fsys fs.FS, engine *Engine) *Loader {
	return &Loader{fsys, engine}
}

// Available returns the names of all packages, sorted.
func (l *Loader) Available() ([]string, error) {
	paths, err := doublestar.Glob(l.fsys, "**/*"+packageExt)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = strings.TrimSuffix(p, packageExt)
	}
	slices.Sort(names)
	return names, nil
}

// Load loads the packages whose names match any of the given patterns, which
// use doublestar syntax. Packages already loaded are skipped. What packages
// print while loading is passed to progress.
func (l *Loader) Load(ctx context.Context, patterns []string, progress, failure func(string)) (string, error) {
	available, err := l.Available()
	if err != nil {
		return "", fmt.Errorf("list packages: %w", err)
	}

	var selected, failed []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			failure(fmt.Sprintf("Invalid package pattern '%s'", pattern))
			failed = append(failed, pattern)
			continue
		}
		matched := false
		for _, name := range available {
			if ok, _ := doublestar.Match(pattern, name); ok {
				matched = true
				if !slices.Contains(selected, name) && !l.engine.Loaded(name) {
					selected = append(selected, name)
				}
			}
		}
		if !matched {
			failure(fmt.Sprintf("No known package with name '%s'", pattern))
			failed = append(failed, pattern)
		}
	}

	var loaded []string
	if len(selected) > 0 {
		progress("Loading " + strings.Join(selected, ", "))
		for _, name := range selected {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			if l.engine.Loaded(name) {
				// Loaded as a dependency of an earlier package.
				loaded = append(loaded, name)
				continue
			}
			if _, err := l.loadPackage(name, map[string]bool{}, progress); err != nil {
				logger.Warn("cannot load package", "name", name, "err", err)
				failure(errorDetail(err))
				failed = append(failed, name)
				continue
			}
			loaded = append(loaded, name)
		}
	}

	if len(failed) > 0 {
		return "", fmt.Errorf("%w: %s", ErrLoadFailed, strings.Join(failed, ", "))
	}
	if len(loaded) == 0 {
		return "No new packages to load", nil
	}
	return "Loaded " + strings.Join(loaded, ", "), nil
}

// Loads a package and, through its load statements, its dependencies.
func (l *Loader) loadPackage(name string, inProgress map[string]bool, progress func(string)) (starlark.StringDict, error) {
	if g, ok := l.engine.module(name); ok {
		return g, nil
	}
	if inProgress[name] {
		return nil, fmt.Errorf("cycle in load graph at %s", name)
	}
	inProgress[name] = true
	defer delete(inProgress, name)

	filename := name + packageExt
	src, err := fs.ReadFile(l.fsys, filename)
	if err != nil {
		return nil, err
	}
	thread := &starlark.Thread{
		Name:  "load " + name,
		Print: func(_ *starlark.Thread, msg string) { progress(msg) },
		Load: func(_ *starlark.Thread, dep string) (starlark.StringDict, error) {
			return l.loadPackage(dep, inProgress, progress)
		},
	}
	globals, err := starlark.ExecFileOptions(l.engine.opts, thread, filename, src, l.engine.predeclaredCopy())
	if err != nil {
		return nil, err
	}
	globals.Freeze()
	l.engine.addModule(name, globals)
	logger.Debug("loaded package", "name", name)
	return globals, nil
}
