package eval

import (
	"fmt"

	"go.starlark.net/starlark"
)

// NewLoadPackage returns the load_package builtin. Calling it passes the
// package patterns to start. In a console session, start must not wait for
// the packages to load: loading only proceeds after the calling evaluation
// finishes.
func NewLoadPackage(start func(patterns ...string)) *starlark.Builtin {
	return starlark.NewBuiltin("load_package", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("%s: missing package name", b.Name())
		}
		patterns := make([]string, len(args))
		for i, arg := range args {
			s, ok := starlark.AsString(arg)
			if !ok {
				return nil, fmt.Errorf("%s: for parameter %d: got %s, want string", b.Name(), i+1, arg.Type())
			}
			patterns[i] = s
		}
		start(patterns...)
		return starlark.None, nil
	})
}
