// lexer.go
//
// Grammar-directed lexer for the calculator language:
//
//	<expression> ::= WS? <term> WS? (INFIX WS? <term> WS?)* ;
//
//	<term> ::= PREFIX* WS? <value> POSTFIX* ;
//
//	<value> ::= '(' <expression> ')'
//	         / INTEGER
//	         / IDENTIFIER WS? '(' <arguments>? ')'
//	         / IDENTIFIER
//	         ;
//
//	<arguments> ::= <expression> (',' <expression>)* ;
//
// INTEGER is a digit run, IDENTIFIER matches [_a-z0-9]+, and whitespace is
// spaces and tabs only. The lexer follows the grammar directly, so the token
// sequence it emits is already structurally valid; the parser never has to
// re-check shape, only build the tree.
//
// The one ambiguity is an identifier: `f` alone is a variable, `f(...)` is
// an invocation, and the lexer cannot tell which until after the identifier
// has been consumed. It resolves this by speculation: emit the identifier as
// an Invoke token, and if no argument list follows, discard everything the
// attempt emitted, rewind, and re-scan the identifier as a variable. Tokens
// already in the output before the attempt are never touched, and no token
// is ever re-tagged in place.
package lang

import (
	"fmt"
	"strings"
)

// Category classifies a token.
type Category int

const (
	// Values
	CategoryInteger  Category = iota // integer literal
	CategoryVariable                 // identifier used as a variable
	CategoryInvoke                   // identifier heading an argument list

	// Punctuation
	CategoryOpen  // "("
	CategoryClose // ")"
	CategoryComma // ","

	// Operators
	CategoryPrefix  // unary operator before a value
	CategoryInfix   // binary operator between terms
	CategoryPostfix // unary operator after a value
)

var categoryNames = [...]string{
	"Integer", "Variable", "Invoke",
	"Open", "Close", "Comma",
	"Prefix", "Infix", "Postfix",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Token is one classified, located lexical unit. Offset is the byte position
// of the first matched character.
type Token struct {
	Offset   int
	Category Category
	Text     string
}

// Operator inventory. The lexer tries alternatives in slice order, so a
// longer operator must precede any operator it starts with ("--" before "-").
var (
	PrefixOperators  = []string{"++", "--", "-"}
	InfixOperators   = []string{"+", "-", "*", "/", "="}
	PostfixOperators = []string{"++", "--"}
)

// Lex scans input into its token sequence. On success the entire input has
// been consumed; trailing input after a complete expression is an error at
// the first unconsumed character. Empty (or all-whitespace) input lexes to
// an empty sequence.
func Lex(input string) ([]Token, error) {
	l := &lexer{input: input}
	if _, err := l.expression(); err != nil {
		return nil, err
	}
	if l.hasMore() {
		return nil, l.errAt(l.cursor, "invalid syntax")
	}
	return l.output, nil
}

type lexer struct {
	input  string
	cursor int
	output []Token
}

func (l *lexer) hasMore() bool { return l.cursor < len(l.input) }

func (l *lexer) errAt(offset int, msg string) error {
	return &LexError{Offset: offset, Msg: msg}
}

// mark is a restore point: a cursor position plus the length of the token
// output at the moment it was taken.
type mark struct {
	cursor  int
	emitted int
}

func (l *lexer) backup() mark {
	return mark{cursor: l.cursor, emitted: len(l.output)}
}

// restore rewinds the cursor and discards every token emitted since the
// mark was taken.
func (l *lexer) restore(m mark) {
	l.cursor = m.cursor
	l.output = l.output[:m.emitted]
}

// match consumes the literal s and emits a token of the given category.
func (l *lexer) match(s string, cat Category) bool {
	if !strings.HasPrefix(l.input[l.cursor:], s) {
		return false
	}
	l.output = append(l.output, Token{Offset: l.cursor, Category: cat, Text: s})
	l.cursor += len(s)
	return true
}

// scan consumes the longest nonempty run of bytes satisfying class and emits
// a token of the given category.
func (l *lexer) scan(class func(byte) bool, cat Category) bool {
	start := l.cursor
	for l.cursor < len(l.input) && class(l.input[l.cursor]) {
		l.cursor++
	}
	if l.cursor == start {
		return false
	}
	l.output = append(l.output, Token{Offset: start, Category: cat, Text: l.input[start:l.cursor]})
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Identifiers are lowercase; digits and underscores are allowed anywhere,
// including the first character. A leading-digit identifier still never
// shadows an integer because the integer rule is tried first.
func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || isDigit(b)
}

// whitespace consumes spaces and tabs. No token is emitted.
func (l *lexer) whitespace() {
	for l.cursor < len(l.input) && (l.input[l.cursor] == ' ' || l.input[l.cursor] == '\t') {
		l.cursor++
	}
}

func (l *lexer) prefix() bool {
	for _, op := range PrefixOperators {
		if l.match(op, CategoryPrefix) {
			return true
		}
	}
	return false
}

func (l *lexer) infix() bool {
	for _, op := range InfixOperators {
		if l.match(op, CategoryInfix) {
			return true
		}
	}
	return false
}

func (l *lexer) postfix() bool {
	for _, op := range PostfixOperators {
		if l.match(op, CategoryPostfix) {
			return true
		}
	}
	return false
}

// expression lexes `WS? term WS? (INFIX WS? term WS?)*`. It returns false,
// having consumed nothing but leading whitespace, when no term starts here.
// A dangling infix operator with no right-hand term is an error at the
// cursor.
func (l *lexer) expression() (bool, error) {
	l.whitespace()

	ok, err := l.term()
	if err != nil || !ok {
		return ok, err
	}
	l.whitespace()

	for l.infix() {
		l.whitespace()
		ok, err := l.term()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, l.errAt(l.cursor, "expected expression")
		}
		l.whitespace()
	}
	return true, nil
}

// term lexes `PREFIX* WS? value POSTFIX*`. A failed term restores its mark
// so speculatively emitted prefix tokens are discarded along with the
// cursor movement.
func (l *lexer) term() (bool, error) {
	m := l.backup()

	for l.prefix() {
	}
	l.whitespace()

	ok, err := l.value()
	if err != nil {
		return false, err
	}
	if !ok {
		l.restore(m)
		return false, nil
	}

	for l.postfix() {
	}
	return true, nil
}

// value lexes a parenthesized group, an integer literal, an invocation, or a
// variable reference, in that order.
func (l *lexer) value() (bool, error) {
	m := l.backup()

	// rule: '(' <expression> ')'
	//
	// Both group errors point at the "(" that opened the group, not at the
	// cursor where scanning stopped.
	if l.match("(", CategoryOpen) {
		open := l.output[len(l.output)-1].Offset

		ok, err := l.expression()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, l.errAt(open, "expected expression")
		}

		if !l.match(")", CategoryClose) {
			return false, l.errAt(open, "missing closing parenthesis")
		}
		return true, nil
	}

	// rule: INTEGER
	if l.scan(isDigit, CategoryInteger) {
		return true, nil
	}

	// rule: IDENTIFIER WS? '(' <arguments>? ')'
	//
	// Speculative: the identifier is emitted as an Invoke token before it is
	// known whether an argument list follows. If "(" never appears the whole
	// attempt is discarded and the identifier is re-scanned as a variable.
	// Once the "(" has matched the invocation is committed, and a malformed
	// argument list is an error, not a reason to backtrack.
	if l.scan(isIdentByte, CategoryInvoke) {
		l.whitespace()

		if l.match("(", CategoryOpen) {
			open := l.output[len(l.output)-1].Offset

			if _, err := l.arguments(); err != nil {
				return false, err
			}

			if !l.match(")", CategoryClose) {
				return false, l.errAt(open, "missing closing parenthesis")
			}
			return true, nil
		}

		l.restore(m)
	}

	// rule: IDENTIFIER
	if l.scan(isIdentByte, CategoryVariable) {
		return true, nil
	}

	return false, nil
}

// arguments lexes `<expression> (',' <expression>)*`. A comma with no
// following expression is an error at the position after the comma, not an
// empty argument. An empty list is the caller's concern: arguments simply
// returns false with nothing consumed.
func (l *lexer) arguments() (bool, error) {
	ok, err := l.expression()
	if err != nil || !ok {
		return ok, err
	}

	for l.match(",", CategoryComma) {
		after := l.cursor
		ok, err := l.expression()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, l.errAt(after, "expected expression")
		}
	}
	return true, nil
}
