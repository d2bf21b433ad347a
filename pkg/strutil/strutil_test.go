package strutil

import (
	"testing"

	"src.pyweb.sh/pkg/tt"
)

func TestDedent(t *testing.T) {
	tt.Test(t, tt.Fn("Dedent", Dedent), tt.Table{
		tt.Args("    a\n    b").Rets("a\nb"),
		tt.Args("    someone    \n          else\n       blah").
			Rets("someone    \n      else\n   blah"),
		// Blank lines do not count towards the margin.
		tt.Args("  a\n\n    b\n").Rets("a\n\n  b\n"),
		tt.Args("  a\n   \n  b").Rets("a\n\nb"),
		// A leading newline is kept.
		tt.Args("\n\tx\n\ty").Rets("\nx\ny"),
		// No common margin.
		tt.Args("\ta\n  b").Rets("\ta\n  b"),
		tt.Args("no indent").Rets("no indent"),
		tt.Args("").Rets(""),
	})
}

func TestChopLineEnding(t *testing.T) {
	tt.Test(t, tt.Fn("ChopLineEnding", ChopLineEnding), tt.Table{
		tt.Args("").Rets(""),
		tt.Args("abc").Rets("abc"),
		tt.Args("abc\n").Rets("abc"),
		tt.Args("abc\r\n").Rets("abc"),
		tt.Args("abc\n\n").Rets("abc\n"),
	})
}

func TestIndentWidth(t *testing.T) {
	tt.Test(t, tt.Fn("IndentWidth", IndentWidth), tt.Table{
		tt.Args("").Rets(0),
		tt.Args("x").Rets(0),
		tt.Args("    x").Rets(4),
		tt.Args("  \tx  ").Rets(3),
		tt.Args("   ").Rets(3),
	})
}

func TestExpandLeadingTabs(t *testing.T) {
	tt.Test(t, tt.Fn("ExpandLeadingTabs", ExpandLeadingTabs), tt.Table{
		tt.Args("\tx", 4).Rets("    x"),
		tt.Args(" \tx\ty", 2).Rets("   x\ty"),
		tt.Args("x\t", 4).Rets("x\t"),
		tt.Args("\t\t", 3).Rets("      "),
	})
}

func TestLastLine(t *testing.T) {
	tt.Test(t, tt.Fn("LastLine", LastLine), tt.Table{
		tt.Args("a").Rets("a"),
		tt.Args("a\nb").Rets("b"),
		tt.Args("a\n").Rets(""),
	})
}
