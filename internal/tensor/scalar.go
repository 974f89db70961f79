package tensor

import "strconv"

// Scalar is a host operand promoted into a tensor expression. It holds either
// an int64 or a float64 and is never stored in a tensor as-is.
type Scalar struct {
	i       int64
	f       float64
	isFloat bool
}

// IntScalar wraps an int64 operand.
func IntScalar(v int64) Scalar {
	return Scalar{i: v, f: float64(v)}
}

// FloatScalar wraps a float64 operand.
func FloatScalar(v float64) Scalar {
	return Scalar{i: int64(v), f: v, isFloat: true}
}

// IsFloat reports whether the scalar was built from a float64.
func (s Scalar) IsFloat() bool {
	return s.isFloat
}

// Int returns the integer value (truncated for float scalars).
func (s Scalar) Int() int64 {
	return s.i
}

// Float returns the value as float64.
func (s Scalar) Float() float64 {
	return s.f
}

// Neg returns -s with the same representation.
func (s Scalar) Neg() Scalar {
	if s.isFloat {
		return FloatScalar(-s.f)
	}
	return IntScalar(-s.i)
}

// String formats the scalar the way it was supplied.
func (s Scalar) String() string {
	if s.isFloat {
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	}
	return strconv.FormatInt(s.i, 10)
}

// ResultType returns the kind of x ⊗ s under the engine's promotion rule:
// a float scalar promotes integer tensors to Float32, everything else keeps
// the tensor kind.
func (s Scalar) ResultType(x DataType) DataType {
	if s.isFloat && x.IsInteger() {
		return Float32
	}
	return x
}
