package lang

import "fmt"

// ---- core built-ins ----------------------------------------------------

func registerCoreBuiltins(ip *Interpreter) {
	// abs(n) -> |n|
	ip.RegisterNative("abs", builtinAbs)

	// sign(n) -> -1, 0, or 1
	ip.RegisterNative("sign", builtinSign)

	// min(a, b) / max(a, b)
	ip.RegisterNative("min", builtinMin)
	ip.RegisterNative("max", builtinMax)

	// pow(base, exp) -> base**exp, exp must be non-negative
	ip.RegisterNative("pow", builtinPow)
}

// intArgs checks arity and that every argument is an integer, unwrapping
// them for the builtin body.
func intArgs(name string, want int, args []Value, offset int) ([]int64, error) {
	if len(args) != want {
		noun := "arguments"
		if want == 1 {
			noun = "argument"
		}
		return nil, &RuntimeError{Offset: offset, Msg: fmt.Sprintf("%s expects %d %s, got %d", name, want, noun, len(args))}
	}
	out := make([]int64, len(args))
	for i, a := range args {
		if a.Tag != VTInt {
			return nil, &RuntimeError{Offset: offset, Msg: fmt.Sprintf("%s expects integer arguments", name)}
		}
		out[i] = a.Int
	}
	return out, nil
}

func builtinAbs(args []Value, offset int) (Value, error) {
	a, err := intArgs("abs", 1, args, offset)
	if err != nil {
		return Nil, err
	}
	n := a[0]
	if n < 0 {
		n = -n
	}
	return IntVal(n), nil
}

func builtinSign(args []Value, offset int) (Value, error) {
	a, err := intArgs("sign", 1, args, offset)
	if err != nil {
		return Nil, err
	}
	switch {
	case a[0] < 0:
		return IntVal(-1), nil
	case a[0] > 0:
		return IntVal(1), nil
	}
	return IntVal(0), nil
}

func builtinMin(args []Value, offset int) (Value, error) {
	a, err := intArgs("min", 2, args, offset)
	if err != nil {
		return Nil, err
	}
	if a[0] < a[1] {
		return IntVal(a[0]), nil
	}
	return IntVal(a[1]), nil
}

func builtinMax(args []Value, offset int) (Value, error) {
	a, err := intArgs("max", 2, args, offset)
	if err != nil {
		return Nil, err
	}
	if a[0] > a[1] {
		return IntVal(a[0]), nil
	}
	return IntVal(a[1]), nil
}

func builtinPow(args []Value, offset int) (Value, error) {
	a, err := intArgs("pow", 2, args, offset)
	if err != nil {
		return Nil, err
	}
	base, exp := a[0], a[1]
	if exp < 0 {
		return Nil, &RuntimeError{Offset: offset, Msg: "pow expects a non-negative exponent"}
	}
	// Square-and-multiply; overflow wraps like every other arithmetic op.
	result := int64(1)
	for b, e := base, exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result *= b
		}
		b *= b
	}
	return IntVal(result), nil
}
