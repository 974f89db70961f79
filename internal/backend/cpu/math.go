package cpu

import (
	"math"
	"math/cmplx"

	"github.com/born-ml/facade/internal/parallel"
	"github.com/born-ml/facade/internal/tensor"
)

func negate[T number](cfg parallel.Config, out, x *tensor.RawTensor) {
	map1(cfg, tensor.Elements[T](out), tensor.Elements[T](x), func(v T) T { return -v })
}

// Neg computes element-wise negation: -x.
// Unsigned values wrap around.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	if x.DType() == tensor.Bool {
		return nil, tensor.Errorf("neg", tensor.ErrUnsupported, "negation of %s tensors", x.DType())
	}
	xw, err := cpu.widen("neg", x)
	if err != nil {
		return nil, err
	}
	out, err := cpu.alloc("neg", x.Shape(), xw.DType(), x.Device())
	if err != nil {
		return nil, err
	}

	switch xw.DType() {
	case tensor.Int8:
		negate[int8](cpu.par, out, xw)
	case tensor.Int16:
		negate[int16](cpu.par, out, xw)
	case tensor.Int32:
		negate[int32](cpu.par, out, xw)
	case tensor.Int64:
		negate[int64](cpu.par, out, xw)
	case tensor.Uint8:
		negate[uint8](cpu.par, out, xw)
	case tensor.Float32:
		negate[float32](cpu.par, out, xw)
	case tensor.Float64:
		negate[float64](cpu.par, out, xw)
	case tensor.Complex64:
		negate[complex64](cpu.par, out, xw)
	case tensor.Complex128:
		negate[complex128](cpu.par, out, xw)
	}
	return cpu.narrow("neg", out, x.DType())
}

// ipow computes base**exp for exp >= 0 by repeated squaring.
func ipow[T integer](base T, exp int64) T {
	result := T(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func powInt[T integer](cfg parallel.Config, out, x *tensor.RawTensor, exp int64) {
	map1(cfg, tensor.Elements[T](out), tensor.Elements[T](x), func(v T) T { return ipow(v, exp) })
}

// Pow raises every element to a scalar exponent.
//
// Integer tensors with an integer exponent stay integral and reject negative
// exponents; a float exponent promotes them to Float32.
func (cpu *CPUBackend) Pow(x *tensor.RawTensor, exponent tensor.Scalar) (*tensor.RawTensor, error) {
	dtype := exponent.ResultType(x.DType())
	switch {
	case dtype == tensor.Bool:
		return nil, tensor.Errorf("pow", tensor.ErrUnsupported, "power of %s tensors", dtype)
	case dtype.IsInteger() && exponent.Int() < 0:
		return nil, tensor.Errorf("pow", tensor.ErrUnsupported,
			"negative exponent %s for %s tensor", exponent, dtype)
	}

	src := x
	if dtype != x.DType() {
		cast, err := cpu.Cast(x, dtype)
		if err != nil {
			return nil, err
		}
		src = cast
	}
	xw, err := cpu.widen("pow", src)
	if err != nil {
		return nil, err
	}
	out, err := cpu.alloc("pow", x.Shape(), xw.DType(), x.Device())
	if err != nil {
		return nil, err
	}

	e := exponent.Float()
	switch xw.DType() {
	case tensor.Int8:
		powInt[int8](cpu.par, out, xw, exponent.Int())
	case tensor.Int16:
		powInt[int16](cpu.par, out, xw, exponent.Int())
	case tensor.Int32:
		powInt[int32](cpu.par, out, xw, exponent.Int())
	case tensor.Int64:
		powInt[int64](cpu.par, out, xw, exponent.Int())
	case tensor.Uint8:
		powInt[uint8](cpu.par, out, xw, exponent.Int())
	case tensor.Float32:
		map1(cpu.par, tensor.Elements[float32](out), tensor.Elements[float32](xw), func(v float32) float32 {
			return float32(math.Pow(float64(v), e))
		})
	case tensor.Float64:
		map1(cpu.par, tensor.Elements[float64](out), tensor.Elements[float64](xw), func(v float64) float64 {
			return math.Pow(v, e)
		})
	case tensor.Complex64:
		map1(cpu.par, tensor.Elements[complex64](out), tensor.Elements[complex64](xw), func(v complex64) complex64 {
			return complex64(cmplx.Pow(complex128(v), complex(e, 0)))
		})
	case tensor.Complex128:
		map1(cpu.par, tensor.Elements[complex128](out), tensor.Elements[complex128](xw), func(v complex128) complex128 {
			return cmplx.Pow(v, complex(e, 0))
		})
	}
	return cpu.narrow("pow", out, dtype)
}
