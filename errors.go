// errors.go
//
// Error types for every stage of the pipeline, plus caret-snippet rendering.
//
// Every user-facing failure carries a byte offset into the evaluated line:
//
//   - LexError      malformed input discovered while scanning
//   - ParseError    a token sequence that does not form an expression
//   - RuntimeError  evaluation failure (undefined variable, bad assignment
//     target, division by zero, builtin misuse)
//
// InternalError is different: it means the lexer/parser contract was broken
// (a well-formed token sequence always parses), so it signals a defect in
// this package rather than in user input.
//
// `AnnotateError` turns a positioned error into a multi-line message with a
// caret under the offending column:
//
//	PARSE ERROR at :5: expected expression
//
//	  | 1 + (2 *
//	  |      ^
//
// Errors without a position are passed through unchanged.
package lang

import (
	"fmt"
	"strings"
)

// LexError reports malformed input discovered while scanning. Offset is the
// byte position the message refers to; grouping errors point back at the "("
// that opened the group, not at the cursor where scanning stopped.
type LexError struct {
	Offset int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at :%d: %s", e.Offset, e.Msg)
}

// ParseError reports a token sequence that does not reduce to a single
// expression.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at :%d: %s", e.Offset, e.Msg)
}

// RuntimeError reports an evaluation failure. Offset points at the node that
// failed, following the same convention as the syntax tree (operators carry
// their own offset, invocations the identifier's).
type RuntimeError struct {
	Offset int
	Msg    string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at :%d: %s", e.Offset, e.Msg)
}

// InternalError reports a broken invariant inside this package. User input
// can never trigger one through the public entry points.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "INTERNAL ERROR: " + e.Msg
}

// ErrorOffset extracts the byte offset carried by a positioned error. ok is
// false for every other error kind, including InternalError.
func ErrorOffset(err error) (offset int, ok bool) {
	switch e := err.(type) {
	case *LexError:
		return e.Offset, true
	case *ParseError:
		return e.Offset, true
	case *RuntimeError:
		return e.Offset, true
	}
	return 0, false
}

/* ===========================
   PUBLIC API
   =========================== */

// AnnotateError returns an error whose message is a caret-annotated snippet
// of the offending input. Errors without a position are returned unchanged.
func AnnotateError(err error, src string) error {
	return AnnotateErrorWithName(err, "", src)
}

// AnnotateErrorWithName is AnnotateError with a source label (file name,
// "file:line", ...) included in the header.
func AnnotateErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", caretSnippet(src, "LEXICAL ERROR", srcName, e.Offset, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", caretSnippet(src, "PARSE ERROR", srcName, e.Offset, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", caretSnippet(src, "RUNTIME ERROR", srcName, e.Offset, e.Msg))
	default:
		return err
	}
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: rendering
   =========================== */

// caretSnippet builds the annotated message. Offsets are clamped to the
// source bounds so a stale or out-of-range position cannot break rendering.
func caretSnippet(src, header, name string, offset int, msg string) string {
	// Evaluation is line-oriented; anything after a newline belongs to a
	// different evaluation and never shares an offset with this one.
	if i := strings.IndexByte(src, '\n'); i >= 0 {
		src = src[:i]
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at :%d: %s\n\n", header, name, offset, msg)
	} else {
		fmt.Fprintf(&b, "%s at :%d: %s\n\n", header, offset, msg)
	}
	fmt.Fprintf(&b, "  | %s\n", src)
	fmt.Fprintf(&b, "  | %s^\n", strings.Repeat(" ", offset))
	return b.String()
}
