// Package tt supports table-driven tests with little boilerplate.
//
// A test is a function under test plus a Table of cases:
//
//	tt.Test(t, tt.Fn("IsReady", IsReady), tt.Table{
//		tt.Args([]string{"2 + 1"}, probe).Rets(true),
//	})
//
// Return values are compared with go-cmp; a mismatch is reported as a diff.
package tt

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Table is a list of test cases.
type Table []*Case

// Case is one invocation of the function under test together with the
// expected return values.
type Case struct {
	args []any
	rets []any
	opts []cmp.Option
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case { return &Case{args: args} }

// Rets sets the wanted return values and returns the receiver. A wanted value
// implementing Matcher is matched by calling its Match method instead of
// being compared.
func (c *Case) Rets(rets ...any) *Case {
	c.rets = rets
	return c
}

// CmpOpts adds go-cmp options used when comparing return values.
func (c *Case) CmpOpts(opts ...cmp.Option) *Case {
	c.opts = append(c.opts, opts...)
	return c
}

// FnToTest describes a function to test.
type FnToTest struct {
	name    string
	body    any
	argsFmt string
}

// Fn makes a new FnToTest with the given function name and body.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name: name, body: body}
}

// ArgsFmt sets the format used for arguments in failure messages and returns
// fn itself.
func (fn *FnToTest) ArgsFmt(s string) *FnToTest {
	fn.argsFmt = s
	return fn
}

// T is the subset of testing.T used by Test.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Matcher matches a return value without comparing it for equality.
type Matcher interface {
	Match(ret any) bool
}

// Any matches any return value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(any) bool { return true }

// Test calls fn with the arguments of every case and reports the cases whose
// return values do not match.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		if len(rets) != len(test.rets) {
			t.Errorf("%s(%s) returns %d values, want %d",
				fn.name, fn.formatArgs(test.args), len(rets), len(test.rets))
			continue
		}
		want := make([]any, len(rets))
		for i, r := range test.rets {
			if m, ok := r.(Matcher); ok {
				if !m.Match(rets[i]) {
					t.Errorf("%s(%s) return value #%d = %v, not matched",
						fn.name, fn.formatArgs(test.args), i, rets[i])
				}
				want[i] = rets[i]
			} else {
				want[i] = r
			}
		}
		if diff := cmp.Diff(want, rets, test.opts...); diff != "" {
			t.Errorf("%s(%s) returns (-Wanted +Actual):\n%s",
				fn.name, fn.formatArgs(test.args), diff)
		}
	}
}

func (fn *FnToTest) formatArgs(args []any) string {
	if fn.argsFmt != "" {
		return fmt.Sprintf(fn.argsFmt, args...)
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprintf("%#v", arg)
	}
	return strings.Join(parts, ", ")
}

func call(fn any, args []any) []any {
	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			// Use a typed zero for untyped nil arguments.
			var paramType reflect.Type
			if fnType.IsVariadic() && i >= fnType.NumIn()-1 {
				paramType = fnType.In(fnType.NumIn() - 1).Elem()
			} else {
				paramType = fnType.In(i)
			}
			in[i] = reflect.Zero(paramType)
		} else {
			in[i] = reflect.ValueOf(arg)
		}
	}
	out := fnValue.Call(in)
	rets := make([]any, len(out))
	for i, v := range out {
		rets[i] = v.Interface()
	}
	return rets
}
