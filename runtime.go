// runtime.go
//
// Runtime assembly: native function registration against the engine surface
// defined in interpreter.go, and the NewRuntime constructor that wires up
// the standard builtins. Nothing here reaches into evaluation internals;
// builtins see only evaluated argument values and the invocation offset.
package lang

import "sort"

// NativeFn is the implementation signature for a registered builtin.
// Arguments arrive already evaluated, in writing order; offset is the
// invocation's, for stamping errors.
type NativeFn func(args []Value, offset int) (Value, error)

// RegisterNative makes fn invocable as name(...). Registering an existing
// name replaces it.
func (ip *Interpreter) RegisterNative(name string, fn NativeFn) {
	ip.native[name] = fn
}

// NativeNames lists the registered builtin names, sorted.
func (ip *Interpreter) NativeNames() []string {
	names := make([]string, 0, len(ip.native))
	for name := range ip.native {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewRuntime returns a fully-initialized interpreter with the standard
// builtins registered.
func NewRuntime() *Interpreter {
	ip := NewInterpreter()
	registerCoreBuiltins(ip)
	return ip
}
