// ast.go
//
// Syntax tree for the calculator language. The variant set is closed: every
// grammar production maps to exactly one node type below, and every node
// records the byte offset of the token that introduced it, so later stages
// can report positions without re-scanning the input.
//
// Offset conventions:
//   - leaves (IntegerLiteral, VariableRef) carry their own token's offset
//   - UnaryOp and BinaryOp carry the operator token's offset
//   - Invoke carries the offset of the invoked identifier, not the "("
package lang

// Node is implemented by every syntax tree variant.
type Node interface {
	// Pos returns the byte offset of the node's defining token.
	Pos() int
	node()
}

// IntegerLiteral is a base-10 integer constant.
type IntegerLiteral struct {
	Offset int
	Value  int64
}

// VariableRef reads a variable by name.
type VariableRef struct {
	Offset int
	Name   string
}

// UnaryOp applies a prefix or postfix operator to a single operand. The
// operator text alone identifies it; "++" produced by the prefix rule and
// "++" produced by the postfix rule build the same node.
type UnaryOp struct {
	Offset   int
	Operator string
	Operand  Node
}

// BinaryOp applies an infix operator to two operands.
type BinaryOp struct {
	Offset   int
	Operator string
	Left     Node
	Right    Node
}

// Invoke calls a named function with zero or more argument expressions.
type Invoke struct {
	Offset    int
	Name      string
	Arguments []Node
}

func (n *IntegerLiteral) Pos() int { return n.Offset }
func (n *VariableRef) Pos() int    { return n.Offset }
func (n *UnaryOp) Pos() int        { return n.Offset }
func (n *BinaryOp) Pos() int       { return n.Offset }
func (n *Invoke) Pos() int         { return n.Offset }

func (*IntegerLiteral) node() {}
func (*VariableRef) node()    {}
func (*UnaryOp) node()        {}
func (*BinaryOp) node()       {}
func (*Invoke) node()         {}
