package lang

import "testing"

func Test_Builtin_Values(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"abs(7)", 7},
		{"abs(0 - 7)", 7},
		{"abs(0)", 0},
		{"sign(0 - 9)", -1},
		{"sign(0)", 0},
		{"sign(3)", 1},
		{"min(2, 5)", 2},
		{"min(5, 2)", 2},
		{"min(3, 3)", 3},
		{"max(2, 5)", 5},
		{"max(0 - 1, 0 - 8)", -1},
		{"pow(2, 10)", 1024},
		{"pow(5, 0)", 1},
		{"pow(0, 0)", 1},
		{"pow(0 - 2, 3)", -8},
		{"pow(10, 3)", 1000},
	}
	for _, tc := range cases {
		wantInt(t, evalSrc(t, tc.src), tc.want)
	}
}

func Test_Builtin_ComposesWithOperators(t *testing.T) {
	wantInt(t, evalSrc(t, "max(1 + 2, 2 * 2) - min(1, 2)"), 3)
	wantInt(t, evalSrc(t, "abs(min(0 - 3, 2))"), 3)
	wantInt(t, evalSrc(t, "-pow(2, 3)"), -8)
}

func Test_Builtin_ArityErrors(t *testing.T) {
	ip := NewRuntime()
	wantRtErr(t, ip, "abs(1, 2)", 0, "abs expects 1 argument, got 2")
	wantRtErr(t, ip, "abs()", 0, "abs expects 1 argument, got 0")
	wantRtErr(t, ip, "min(1)", 0, "min expects 2 arguments, got 1")
	wantRtErr(t, ip, "pow(2, 3, 4)", 0, "pow expects 2 arguments, got 3")
}

func Test_Builtin_ArityError_OffsetIsInvocation(t *testing.T) {
	// The error lands on the invocation identifier, not on an argument.
	ip := NewRuntime()
	wantRtErr(t, ip, "1 + min(1)", 4, "min expects 2 arguments")
}

func Test_Builtin_TypeErrors(t *testing.T) {
	// An assignment yields nil, which no builtin accepts.
	ip := NewRuntime()
	wantRtErr(t, ip, "min(1, x = 2)", 0, "min expects integer arguments")
	wantRtErr(t, ip, "abs(x = 1)", 0, "abs expects integer arguments")
}

func Test_Builtin_Pow_NegativeExponent(t *testing.T) {
	ip := NewRuntime()
	wantRtErr(t, ip, "pow(2, 0 - 1)", 0, "pow expects a non-negative exponent")
}

func Test_Builtin_UndefinedFunction(t *testing.T) {
	ip := NewRuntime()
	wantRtErr(t, ip, "nope(1)", 0, "undefined function: nope")
}
