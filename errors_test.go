package lang

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s", sub, s)
	}
}

func Test_Error_Strings(t *testing.T) {
	require.Equal(t, "LEXICAL ERROR at :4: invalid syntax",
		(&LexError{Offset: 4, Msg: "invalid syntax"}).Error())
	require.Equal(t, "PARSE ERROR at :0: expected expression",
		(&ParseError{Offset: 0, Msg: "expected expression"}).Error())
	require.Equal(t, "RUNTIME ERROR at :2: division by zero",
		(&RuntimeError{Offset: 2, Msg: "division by zero"}).Error())
	require.Equal(t, "INTERNAL ERROR: operand stack underflow",
		(&InternalError{Msg: "operand stack underflow"}).Error())
}

func Test_Error_Offset(t *testing.T) {
	cases := []struct {
		err    error
		offset int
		ok     bool
	}{
		{&LexError{Offset: 7, Msg: "x"}, 7, true},
		{&ParseError{Offset: 3, Msg: "x"}, 3, true},
		{&RuntimeError{Offset: 11, Msg: "x"}, 11, true},
		{&InternalError{Msg: "x"}, 0, false},
		{errors.New("plain"), 0, false},
	}
	for _, tc := range cases {
		off, ok := ErrorOffset(tc.err)
		require.Equal(t, tc.ok, ok, "error %v", tc.err)
		require.Equal(t, tc.offset, off, "error %v", tc.err)
	}
}

func Test_Annotate_Lex_ShowsCaret(t *testing.T) {
	src := "1 + (2 *"
	_, err := ParseString(src)
	require.Error(t, err)

	var le *LexError
	require.ErrorAs(t, err, &le)
	require.Equal(t, 8, le.Offset)

	msg := AnnotateError(err, src).Error()
	mustContain(t, msg, "LEXICAL ERROR at :8: expected expression")
	mustContain(t, msg, "  | 1 + (2 *\n")
	mustContain(t, msg, "  |         ^")
}

func Test_Annotate_Runtime_ShowsCaret(t *testing.T) {
	ip := NewRuntime()
	src := "10 / 0"
	_, err := ip.EvalPersistentSource(src)
	require.Error(t, err)

	msg := AnnotateError(err, src).Error()
	mustContain(t, msg, "RUNTIME ERROR at :3: division by zero")
	mustContain(t, msg, "  | 10 / 0\n")
	mustContain(t, msg, "  |    ^")
}

func Test_Annotate_WithName(t *testing.T) {
	src := "nope(1)"
	ip := NewRuntime()
	_, err := ip.EvalPersistentSource(src)
	require.Error(t, err)

	msg := AnnotateErrorWithName(err, "session.calc:3", src).Error()
	mustContain(t, msg, "RUNTIME ERROR in session.calc:3 at :0: undefined function: nope")
	mustContain(t, msg, "  | nope(1)")
}

func Test_Annotate_PassesThroughUnpositioned(t *testing.T) {
	plain := errors.New("plain")
	require.Same(t, plain, AnnotateError(plain, "whatever"))

	internal := &InternalError{Msg: "boom"}
	require.Same(t, error(internal), AnnotateError(internal, "whatever"))
}

func Test_Annotate_TrimsAtNewline(t *testing.T) {
	// Offsets are per line; anything after a newline belongs to another
	// evaluation and must not leak into the snippet.
	err := &ParseError{Offset: 2, Msg: "expected expression"}
	msg := AnnotateError(err, "1 +\n2 + 3").Error()
	mustContain(t, msg, "  | 1 +\n")
	require.NotContains(t, msg, "2 + 3")
}

func Test_Annotate_ClampsOffset(t *testing.T) {
	err := &RuntimeError{Offset: 99, Msg: "division by zero"}
	msg := AnnotateError(err, "1/0").Error()
	mustContain(t, msg, "  | 1/0\n")
	mustContain(t, msg, "  |    ^")
}
