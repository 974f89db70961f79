// Package tensor provides the engine-side data model of the Born façade: element
// kinds, shapes, devices, reference-counted storage and the Backend primitive set.
package tensor

import (
	bfloat16 "github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"
)

// DataType is the element kind of a tensor.
type DataType int

// Supported element kinds.
const (
	Int8 DataType = iota
	Int16
	Int32
	Int64
	Uint8
	Float16
	BFloat16
	Float32
	Float64
	ComplexHalf
	Complex64
	Complex128
	Bool
)

// DataTypes lists every element kind in declaration order.
var DataTypes = []DataType{
	Int8, Int16, Int32, Int64, Uint8,
	Float16, BFloat16, Float32, Float64,
	ComplexHalf, Complex64, Complex128,
	Bool,
}

// Size returns the byte size of one element.
func (dt DataType) Size() int {
	switch dt {
	case Int8, Uint8, Bool:
		return 1
	case Int16, Float16, BFloat16:
		return 2
	case Int32, Float32, ComplexHalf:
		return 4
	case Int64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Float16:
		return "float16"
	case BFloat16:
		return "bfloat16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case ComplexHalf:
		return "complex32"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsInteger reports whether the kind holds integers (bool excluded).
func (dt DataType) IsInteger() bool {
	switch dt {
	case Int8, Int16, Int32, Int64, Uint8:
		return true
	}
	return false
}

// IsFloat reports whether the kind is a real floating-point kind.
func (dt DataType) IsFloat() bool {
	switch dt {
	case Float16, BFloat16, Float32, Float64:
		return true
	}
	return false
}

// IsComplex reports whether the kind is a complex kind.
func (dt DataType) IsComplex() bool {
	switch dt {
	case ComplexHalf, Complex64, Complex128:
		return true
	}
	return false
}

// ComputeType returns the kind kernels operate on. Half-width kinds have no Go
// arithmetic, so they are widened to Float32 or Complex64 and narrowed back.
func (dt DataType) ComputeType() DataType {
	switch dt {
	case Float16, BFloat16:
		return Float32
	case ComplexHalf:
		return Complex64
	default:
		return dt
	}
}

// Complex32 is the storage layout of a ComplexHalf element.
type Complex32 struct {
	Real, Imag float16.Float16
}

// Element is the constraint for Go types that map one-to-one onto a DataType
// storage layout.
type Element interface {
	int8 | int16 | int32 | int64 | uint8 |
		float32 | float64 | complex64 | complex128 | bool |
		float16.Float16 | bfloat16.BF16 | Complex32
}

// DataTypeOf returns the DataType whose storage layout is T.
func DataTypeOf[T Element]() DataType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case float16.Float16:
		return Float16
	case bfloat16.BF16:
		return BFloat16
	case float32:
		return Float32
	case float64:
		return Float64
	case Complex32:
		return ComplexHalf
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	case bool:
		return Bool
	default:
		panic("unsupported element type")
	}
}
