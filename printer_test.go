// printer_test.go
package lang

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Printer_FormatValue(t *testing.T) {
	require.Equal(t, "<nil>", FormatValue(Nil))
	require.Equal(t, "<integer>: 42", FormatValue(IntVal(42)))
	require.Equal(t, "<integer>: -7", FormatValue(IntVal(-7)))
	require.Equal(t, "<integer>: 0", FormatValue(IntVal(0)))
}

func Test_Printer_FormatError(t *testing.T) {
	require.Equal(t, "invalid syntax at :3",
		FormatError(&LexError{Offset: 3, Msg: "invalid syntax"}))
	require.Equal(t, "expected expression at :0",
		FormatError(&ParseError{Offset: 0, Msg: "expected expression"}))
	require.Equal(t, "division by zero at :2",
		FormatError(&RuntimeError{Offset: 2, Msg: "division by zero"}))

	// Errors without a position render verbatim.
	require.Equal(t, "plain", FormatError(errors.New("plain")))
	require.Equal(t, "INTERNAL ERROR: boom", FormatError(&InternalError{Msg: "boom"}))
}

func Test_Printer_FormatTree(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"-x++", "-(++(x))"},
		{"--x", "--(x)"},
		{"f(1, 2 + 3)", "f(1, (2 + 3))"},
		{"f()", "f()"},
		{"x = 1 + 2", "(x = (1 + 2))"},
		{"7", "7"},
		{"hello", "hello"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatTree(mustParse(t, tc.in)), "input %q", tc.in)
	}
}

// The shell loop is FormatValue on success and FormatError on failure; this
// pins the exact strings a session produces.
func Test_Printer_ShellSurface(t *testing.T) {
	ip := NewRuntime()
	surface := func(src string) string {
		v, err := ip.EvalPersistentSource(src)
		if err != nil {
			return FormatError(err)
		}
		return FormatValue(v)
	}

	require.Equal(t, "<nil>", surface("x = 5"))
	require.Equal(t, "<integer>: 7", surface("x + 2"))
	require.Equal(t, "expected expression at :2", surface("1+"))
	require.Equal(t, "division by zero at :2", surface("x / 0"))
	require.Equal(t, "undefined variable: q at :0", surface("q"))
	require.Equal(t, "<integer>: 6", surface("x++"))
}
