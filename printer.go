package lang

import (
	"fmt"
	"strconv"
	"strings"
)

/* ---------- shell-surface formatting ---------- */

// FormatValue renders v the way the shell reports a result: "<nil>" for the
// absent value, otherwise "<integer>: {value}".
func FormatValue(v Value) string {
	if v.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("<integer>: %d", v.Int)
}

// FormatError renders err the way the shell reports a failure:
// "{message} at :{offset}". Errors without a position render as their plain
// Error() string.
func FormatError(err error) string {
	switch e := err.(type) {
	case *LexError:
		return fmt.Sprintf("%s at :%d", e.Msg, e.Offset)
	case *ParseError:
		return fmt.Sprintf("%s at :%d", e.Msg, e.Offset)
	case *RuntimeError:
		return fmt.Sprintf("%s at :%d", e.Msg, e.Offset)
	}
	return err.Error()
}

// FormatTree renders a syntax tree in canonical fully-parenthesized form,
// which makes grouping and associativity visible:
//
//	1 + 2 * 3   =>  (1 + (2 * 3))
//	1 - 2 - 3   =>  ((1 - 2) - 3)
//	-x++        =>  -(++(x))
//	f(1, 2+3)   =>  f(1, (2 + 3))
//
// Unary operators always render in application form regardless of how they
// were written; the tree does not record prefix/postfix spelling.
func FormatTree(n Node) string {
	switch n := n.(type) {
	case *IntegerLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *VariableRef:
		return n.Name
	case *UnaryOp:
		return n.Operator + "(" + FormatTree(n.Operand) + ")"
	case *BinaryOp:
		return "(" + FormatTree(n.Left) + " " + n.Operator + " " + FormatTree(n.Right) + ")"
	case *Invoke:
		parts := make([]string, len(n.Arguments))
		for i, a := range n.Arguments {
			parts[i] = FormatTree(a)
		}
		return n.Name + "(" + strings.Join(parts, ", ") + ")"
	}
	return fmt.Sprintf("<unknown %T>", n)
}
