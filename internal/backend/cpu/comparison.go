package cpu

import (
	"github.com/born-ml/facade/internal/tensor"
)

func eq[T comparable](a, b T) bool {
	return a == b
}

// Equal returns a == b element-wise as a Bool tensor, with broadcasting.
// NaN is never equal to anything.
func (cpu *CPUBackend) Equal(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := tensor.CheckSameKind("eq", a, b); err != nil {
		return nil, err
	}
	if err := tensor.CheckSameDevice("eq", a, b); err != nil {
		return nil, err
	}
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, tensor.Errorf("eq", tensor.ErrShapeMismatch, "%v", err)
	}

	result, err := cpu.alloc("eq", outShape, tensor.Bool, a.Device())
	if err != nil {
		return nil, err
	}
	dst := tensor.Elements[bool](result)

	switch dtype := a.DType(); {
	case dtype.IsComplex():
		broadcast2(cpu.par, dst, loadComplex128(a), loadComplex128(b), a.Shape(), b.Shape(), outShape, eq[complex128])
	case isExactInt(dtype):
		broadcast2(cpu.par, dst, loadInt64(a), loadInt64(b), a.Shape(), b.Shape(), outShape, eq[int64])
	default:
		broadcast2(cpu.par, dst, loadFloat64(a), loadFloat64(b), a.Shape(), b.Shape(), outShape, eq[float64])
	}
	return result, nil
}
