package step

import (
	"math"
	"math/cmplx"
)

// Numeric is the element type a stepper operates over: a real or complex
// floating-point scalar. Every Stepper is generic over this type so that
// array-of-length-1 and truly-scalar callers share one code path.
type Numeric interface {
	float64 | complex128
}

func absVal[T Numeric](x T) float64 {
	switch v := any(x).(type) {
	case float64:
		return math.Abs(v)
	case complex128:
		return cmplx.Abs(v)
	}
	return 0
}

// fromFloat lifts a real scalar (a tableau weight, a dt, an error
// tolerance) into T. A plain T(x) conversion does not compile when T's
// type set includes complex128 — Go has no float64->complex128
// conversion — so every such lift goes through this type switch instead,
// the same pattern phi.fromRealImag uses for the same reason.
func fromFloat[T Numeric](x float64) T {
	var out any
	switch any(*new(T)).(type) {
	case float64:
		out = x
	case complex128:
		out = complex(x, 0)
	}
	return out.(T)
}
