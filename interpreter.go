// interpreter.go: runtime values, environments, and the tree-walk evaluator.
//
// OVERVIEW
// --------
// Evaluation walks the syntax tree produced by parser.go. The value model is
// deliberately tiny: integers, and the absent value Nil that an assignment
// yields. Variables live in `*Env` frames chained through `parent`; builtin
// functions never live in an Env at all (see runtime.go), so invocation
// names and variable names are separate namespaces.
//
// The Interpreter exposes one well-known frame, `Global`, and two kinds of
// evaluation run that differ only in which environment they target:
//
//   - EvalSource evaluates in a fresh child of Global, so bindings made by
//     the expression are thrown away afterwards;
//   - EvalPersistentSource evaluates in Global itself, REPL-style, so
//     assignments update the persistent state.
//
// All failures come back as `*RuntimeError` carrying the offset of the node
// that failed. An unhandled node variant or operator is an InternalError:
// the tree was built from the fixed operator inventory, so seeing an unknown
// shape here means the inventory and the evaluator disagree.
package lang

import "fmt"

/* ===========================
   VALUES
   =========================== */

// ValueTag discriminates the runtime value kinds.
type ValueTag int

const (
	VTNil ValueTag = iota // absent value, the result of an assignment
	VTInt                 // 64-bit integer
)

// Value is a tagged runtime value. The zero Value is Nil.
type Value struct {
	Tag ValueTag
	Int int64
}

// Nil is the absent value.
var Nil = Value{Tag: VTNil}

// IntVal wraps an integer into a Value.
func IntVal(n int64) Value { return Value{Tag: VTInt, Int: n} }

// IsNil reports whether v is the absent value.
func (v Value) IsNil() bool { return v.Tag == VTNil }

// String renders a debug representation. The shell surface lives in
// printer.go; this is for logs and test failure messages.
func (v Value) String() string {
	if v.Tag == VTNil {
		return "nil"
	}
	return fmt.Sprintf("%d", v.Int)
}

/* ===========================
   ENVIRONMENTS
   =========================== */

// Env is a variable frame with a parent link. Lookups walk parent-ward. Use
// Define to bind in the current frame, Set to update an existing visible
// binding (nearest frame), and Get to retrieve.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name to v in the current frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Set updates the nearest existing binding of name to v. If no binding is
// visible, Set returns an error; it does not implicitly define.
func (e *Env) Set(name string, v Value) error {
	if _, ok := e.table[name]; ok {
		e.table[name] = v
		return nil
	}
	if e.parent != nil {
		return e.parent.Set(name, v)
	}
	return fmt.Errorf("undefined variable: %s", name)
}

// Get retrieves the nearest visible binding for name or returns an error.
func (e *Env) Get(name string) (Value, error) {
	if v, ok := e.table[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, fmt.Errorf("undefined variable: %s", name)
}

// Snapshot flattens every visible binding into one map, with nearer frames
// winning over outer ones.
func (e *Env) Snapshot() map[string]Value {
	out := map[string]Value{}
	var walk func(f *Env)
	walk = func(f *Env) {
		if f == nil {
			return
		}
		walk(f.parent)
		for name, v := range f.table {
			out[name] = v
		}
	}
	walk(e)
	return out
}

/* ===========================
   INTERPRETER
   =========================== */

// Interpreter is the evaluation engine. Construct one with NewInterpreter
// (bare) or NewRuntime (with the standard builtins registered).
type Interpreter struct {
	// Global is the persistent environment that REPL-style evaluation
	// mutates.
	Global *Env

	// native holds the builtin functions reachable through invocation
	// syntax. Names resolve here and never through the variable
	// environment, so a variable named like a builtin shadows nothing.
	native map[string]NativeFn
}

// NewInterpreter returns an interpreter with an empty Global environment and
// no builtins registered.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		Global: NewEnv(nil),
		native: map[string]NativeFn{},
	}
}

// Evaluate evaluates a parsed tree in Global. It is the persistent-state
// entry point the shell uses after lexing and parsing a line.
func (ip *Interpreter) Evaluate(tree Node) (Value, error) {
	return ip.eval(tree, ip.Global)
}

// EvalSource lexes, parses, and evaluates src in a fresh child of Global.
// Bindings made by the expression land in that throwaway child, so Global
// is unchanged.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	tree, err := ParseString(src)
	if err != nil {
		return Nil, err
	}
	return ip.eval(tree, NewEnv(ip.Global))
}

// EvalPersistentSource lexes, parses, and evaluates src in Global
// (REPL-style): assignments directly mutate the persistent state.
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	tree, err := ParseString(src)
	if err != nil {
		return Nil, err
	}
	return ip.eval(tree, ip.Global)
}

func (ip *Interpreter) rtErr(offset int, msg string) error {
	return &RuntimeError{Offset: offset, Msg: msg}
}

/* ===========================
   EVALUATION
   =========================== */

func (ip *Interpreter) eval(n Node, env *Env) (Value, error) {
	switch n := n.(type) {
	case *IntegerLiteral:
		return IntVal(n.Value), nil

	case *VariableRef:
		v, err := env.Get(n.Name)
		if err != nil {
			return Nil, ip.rtErr(n.Offset, err.Error())
		}
		return v, nil

	case *UnaryOp:
		return ip.evalUnary(n, env)

	case *BinaryOp:
		return ip.evalBinary(n, env)

	case *Invoke:
		return ip.evalInvoke(n, env)
	}
	return Nil, internalf("unhandled syntax node %T", n)
}

func (ip *Interpreter) evalUnary(n *UnaryOp, env *Env) (Value, error) {
	switch n.Operator {
	case "-":
		v, err := ip.eval(n.Operand, env)
		if err != nil {
			return Nil, err
		}
		if v.Tag != VTInt {
			return Nil, ip.rtErr(n.Offset, `operator "-" requires an integer operand`)
		}
		return IntVal(-v.Int), nil

	case "++", "--":
		return ip.evalStep(n, env)
	}
	return Nil, internalf("unhandled unary operator %q", n.Operator)
}

// evalStep handles "++" and "--". Applied to a variable it mutates the
// binding; applied to anything else it steps the computed value without
// binding anything. The tree does not record whether the operator was
// written before or after its operand, so both spellings yield the updated
// value.
func (ip *Interpreter) evalStep(n *UnaryOp, env *Env) (Value, error) {
	delta := int64(1)
	if n.Operator == "--" {
		delta = -1
	}

	if ref, ok := n.Operand.(*VariableRef); ok {
		cur, err := env.Get(ref.Name)
		if err != nil {
			return Nil, ip.rtErr(ref.Offset, err.Error())
		}
		if cur.Tag != VTInt {
			return Nil, ip.rtErr(n.Offset, fmt.Sprintf("operator %q requires an integer operand", n.Operator))
		}
		next := IntVal(cur.Int + delta)
		if err := env.Set(ref.Name, next); err != nil {
			return Nil, ip.rtErr(ref.Offset, err.Error())
		}
		return next, nil
	}

	v, err := ip.eval(n.Operand, env)
	if err != nil {
		return Nil, err
	}
	if v.Tag != VTInt {
		return Nil, ip.rtErr(n.Offset, fmt.Sprintf("operator %q requires an integer operand", n.Operator))
	}
	return IntVal(v.Int + delta), nil
}

func (ip *Interpreter) evalBinary(n *BinaryOp, env *Env) (Value, error) {
	if n.Operator == "=" {
		return ip.evalAssign(n, env)
	}

	lhs, err := ip.eval(n.Left, env)
	if err != nil {
		return Nil, err
	}
	rhs, err := ip.eval(n.Right, env)
	if err != nil {
		return Nil, err
	}
	if lhs.Tag != VTInt || rhs.Tag != VTInt {
		return Nil, ip.rtErr(n.Offset, fmt.Sprintf("operator %q requires integer operands", n.Operator))
	}

	switch n.Operator {
	case "+":
		return IntVal(lhs.Int + rhs.Int), nil
	case "-":
		return IntVal(lhs.Int - rhs.Int), nil
	case "*":
		return IntVal(lhs.Int * rhs.Int), nil
	case "/":
		if rhs.Int == 0 {
			return Nil, ip.rtErr(n.Offset, "division by zero")
		}
		return IntVal(lhs.Int / rhs.Int), nil
	}
	return Nil, internalf("unhandled infix operator %q", n.Operator)
}

// evalAssign binds the right-hand value to the left-hand variable in the
// current frame. Assignment is an expression but a deliberately quiet one:
// it yields Nil, which the shell prints as <nil>. Only a plain variable is
// assignable; in particular `x = y = 1` fails, because "=" is
// left-associative like every other infix operator and its left operand is
// then `(x = y)`.
func (ip *Interpreter) evalAssign(n *BinaryOp, env *Env) (Value, error) {
	ref, ok := n.Left.(*VariableRef)
	if !ok {
		return Nil, ip.rtErr(n.Offset, "invalid assignment target")
	}
	v, err := ip.eval(n.Right, env)
	if err != nil {
		return Nil, err
	}
	env.Define(ref.Name, v)
	return Nil, nil
}

func (ip *Interpreter) evalInvoke(n *Invoke, env *Env) (Value, error) {
	fn, ok := ip.native[n.Name]
	if !ok {
		return Nil, ip.rtErr(n.Offset, "undefined function: "+n.Name)
	}

	args := make([]Value, len(n.Arguments))
	for i, a := range n.Arguments {
		v, err := ip.eval(a, env)
		if err != nil {
			return Nil, err
		}
		args[i] = v
	}
	return fn(args, n.Offset)
}
