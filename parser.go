// parser.go: operator-precedence parser producing the syntax tree.
//
// OVERVIEW
// --------
// The parser consumes the finished token sequence from lexer.go; it never
// re-reads source text. Tokens are processed strictly left to right in one
// pass over two explicit stacks:
//
//   - operand stack: completed subtrees
//   - operator stack: infix tokens awaiting their right-hand side, plus one
//     "(" sentinel per open group
//
// An arriving infix operator first pops every stacked operator of greater or
// equal precedence (equal is what makes the grammar left-associative), then
// pushes itself. "(" goes onto the operator stack as a sentinel; ")" pops
// and applies until it finds that sentinel. Popping an operator applies it:
// two operands come off (right first), one BinaryOp goes back on.
//
// Prefix and postfix operators never touch the operator stack. They bind
// tighter than any infix operator unconditionally, so they are attached the
// moment their value completes: postfix operators wrap it innermost,
// collected prefix operators wrap outside-in. Invocation arguments are each
// parsed as a fully independent run of the same machinery.
//
// The lexer only emits structurally valid sequences, so any shape violation
// found here (stack underflow, surplus operands, a stray token) is reported
// as an InternalError rather than a user-facing syntax error.
package lang

import (
	"fmt"
	"strconv"
)

// InfixPrecedence maps each infix operator to its binding rank; higher binds
// tighter. Symbols absent from the map rank 0, so the "(" sentinel can never
// trigger a premature pop.
var InfixPrecedence = map[string]int{
	"*": 20,
	"/": 20,
	"+": 10,
	"-": 10,
	"=": 5,
}

func precedence(op string) int { return InfixPrecedence[op] }

// Parse builds the syntax tree for a lexed token sequence. An empty sequence
// (the lexing of empty input) carries no expression and fails at offset 0.
func Parse(tokens []Token) (Node, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{Offset: 0, Msg: "expected expression"}
	}
	return parseRun(tokens)
}

// ParseString lexes and parses input in one step.
func ParseString(input string) (Node, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// exprRun is the state of one expression parse. Every call to parseRun gets
// a fresh run, so nothing is shared between parses, nested or sequential.
type exprRun struct {
	toks      []Token
	operands  []Node
	operators []Token   // infix tokens and "(" sentinels
	pending   []Token   // prefix tokens awaiting their value
	stash     [][]Token // pending lists saved while a group is open
}

func parseRun(toks []Token) (Node, error) {
	r := &exprRun{toks: toks}
	return r.run()
}

func (r *exprRun) run() (Node, error) {
	i := 0
	for i < len(r.toks) {
		t := r.toks[i]
		switch t.Category {
		case CategoryPrefix:
			r.pending = append(r.pending, t)
			i++

		case CategoryInteger:
			n, err := integerLeaf(t)
			if err != nil {
				return nil, err
			}
			r.operands = append(r.operands, n)
			i = r.finishValue(i + 1)

		case CategoryVariable:
			r.operands = append(r.operands, &VariableRef{Offset: t.Offset, Name: t.Text})
			i = r.finishValue(i + 1)

		case CategoryInvoke:
			n, next, err := parseInvoke(r.toks, i)
			if err != nil {
				return nil, err
			}
			r.operands = append(r.operands, n)
			i = r.finishValue(next)

		case CategoryOpen:
			r.operators = append(r.operators, t)
			// A prefix before "(" applies to the whole group, so the
			// collected prefixes are parked until the group closes.
			r.stash = append(r.stash, r.pending)
			r.pending = nil
			i++

		case CategoryClose:
			for {
				if len(r.operators) == 0 {
					return nil, internalf("unmatched close parenthesis at offset %d", t.Offset)
				}
				top := r.operators[len(r.operators)-1]
				r.operators = r.operators[:len(r.operators)-1]
				if top.Category == CategoryOpen {
					break
				}
				if err := r.applyInfix(top); err != nil {
					return nil, err
				}
			}
			r.pending = r.stash[len(r.stash)-1]
			r.stash = r.stash[:len(r.stash)-1]
			i = r.finishValue(i + 1)

		case CategoryInfix:
			for len(r.operators) > 0 {
				top := r.operators[len(r.operators)-1]
				if top.Category == CategoryOpen || precedence(top.Text) < precedence(t.Text) {
					break
				}
				r.operators = r.operators[:len(r.operators)-1]
				if err := r.applyInfix(top); err != nil {
					return nil, err
				}
			}
			r.operators = append(r.operators, t)
			i++

		default:
			return nil, internalf("unexpected %s token at offset %d", t.Category, t.Offset)
		}
	}

	for len(r.operators) > 0 {
		top := r.operators[len(r.operators)-1]
		r.operators = r.operators[:len(r.operators)-1]
		if top.Category == CategoryOpen {
			return nil, internalf("unmatched open parenthesis at offset %d", top.Offset)
		}
		if err := r.applyInfix(top); err != nil {
			return nil, err
		}
	}

	if len(r.operands) != 1 {
		return nil, internalf("operand stack holds %d values after parsing, want exactly 1", len(r.operands))
	}
	return r.operands[0], nil
}

// finishValue runs after a value lands on the operand stack: it absorbs the
// postfix operators following the value (wrapping innermost first), then
// wraps the result in the collected prefix operators, rightmost innermost,
// so `-x++` reads as `-(x++)`. Returns the index of the first token it did
// not consume.
func (r *exprRun) finishValue(i int) int {
	if len(r.operands) == 0 {
		// Malformed hand-built sequence; leave the tokens for the main loop
		// to report.
		return i
	}
	for i < len(r.toks) && r.toks[i].Category == CategoryPostfix {
		t := r.toks[i]
		top := r.operands[len(r.operands)-1]
		r.operands[len(r.operands)-1] = &UnaryOp{Offset: t.Offset, Operator: t.Text, Operand: top}
		i++
	}
	for k := len(r.pending) - 1; k >= 0; k-- {
		t := r.pending[k]
		top := r.operands[len(r.operands)-1]
		r.operands[len(r.operands)-1] = &UnaryOp{Offset: t.Offset, Operator: t.Text, Operand: top}
	}
	r.pending = nil
	return i
}

// applyInfix pops the two topmost operands (right first) and pushes the
// combined BinaryOp, stamped with the operator token's offset.
func (r *exprRun) applyInfix(op Token) error {
	if len(r.operands) < 2 {
		return internalf("operator %q at offset %d with too few operands", op.Text, op.Offset)
	}
	rhs := r.operands[len(r.operands)-1]
	lhs := r.operands[len(r.operands)-2]
	r.operands = r.operands[:len(r.operands)-2]
	r.operands = append(r.operands, &BinaryOp{Offset: op.Offset, Operator: op.Text, Left: lhs, Right: rhs})
	return nil
}

// parseInvoke builds an Invoke node from the invocation head at index i.
// The lexer guarantees the head is immediately followed by "(", and that the
// argument runs between top-level commas are nonempty; each run is handed to
// an independent parse. Returns the node and the index just past the
// matching ")".
func parseInvoke(toks []Token, i int) (Node, int, error) {
	head := toks[i]
	if i+1 >= len(toks) || toks[i+1].Category != CategoryOpen {
		return nil, 0, internalf("invocation %q at offset %d not followed by open parenthesis", head.Text, head.Offset)
	}

	var args []Node
	depth := 1
	argStart := i + 2
	for j := i + 2; j < len(toks); j++ {
		switch toks[j].Category {
		case CategoryOpen:
			depth++
		case CategoryClose:
			depth--
			if depth > 0 {
				continue
			}
			if j > argStart {
				n, err := parseRun(toks[argStart:j])
				if err != nil {
					return nil, 0, err
				}
				args = append(args, n)
			} else if len(args) > 0 {
				return nil, 0, internalf("empty final argument in invocation %q at offset %d", head.Text, head.Offset)
			}
			return &Invoke{Offset: head.Offset, Name: head.Text, Arguments: args}, j + 1, nil
		case CategoryComma:
			if depth != 1 {
				continue
			}
			if j == argStart {
				return nil, 0, internalf("empty argument in invocation %q at offset %d", head.Text, head.Offset)
			}
			n, err := parseRun(toks[argStart:j])
			if err != nil {
				return nil, 0, err
			}
			args = append(args, n)
			argStart = j + 1
		}
	}
	return nil, 0, internalf("unterminated invocation %q at offset %d", head.Text, head.Offset)
}

// integerLeaf converts an integer token into its leaf node. The lexer only
// checks the digit-run shape, so range is enforced here.
func integerLeaf(t Token) (Node, error) {
	v, err := strconv.ParseInt(t.Text, 10, 64)
	if err != nil {
		return nil, &ParseError{Offset: t.Offset, Msg: "integer literal out of range"}
	}
	return &IntegerLiteral{Offset: t.Offset, Value: v}, nil
}

func internalf(format string, args ...interface{}) error {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}
