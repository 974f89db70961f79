package cpu

import (
	"math"
	"math/cmplx"

	"github.com/born-ml/facade/internal/tensor"
)

// reduceDims splits shape around dim into outer * size * inner.
func reduceDims(shape tensor.Shape, dim int) (outer, size, inner int) {
	outer, inner = 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	return outer, shape[dim], inner
}

// argmaxDim reduces data along the middle axis of [outer, size, inner].
// NaN compares greater than every number; ties keep the first index.
func argmaxDim[T realNumber](data []T, result []int64, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*size*inner + in
			best := data[base]
			bestIdx := 0
			for k := 1; k < size; k++ {
				v := data[base+k*inner]
				if best != best { //nolint:gocritic // NaN check without float conversion
					break
				}
				if v != v || v > best { //nolint:gocritic // NaN check without float conversion
					best = v
					bestIdx = k
				}
			}
			result[o*inner+in] = int64(bestIdx)
		}
	}
}

// Argmax returns the Int64 index of the maximum value along dim.
// A rank-0 tensor is treated as having shape [1].
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor, dim int, keepDim bool) (*tensor.RawTensor, error) {
	if x.DType().IsComplex() {
		return nil, tensor.Errorf("argmax", tensor.ErrUnsupported, "argmax of %s tensors", x.DType())
	}

	shape := x.Shape()
	if len(shape) == 0 {
		shape = tensor.Shape{1}
	}
	d, err := shape.NormalizeDim(dim)
	if err != nil {
		return nil, tensor.Errorf("argmax", tensor.ErrInvalidArgument, "%v", err)
	}
	outer, size, inner := reduceDims(shape, d)
	if size == 0 {
		return nil, tensor.Errorf("argmax", tensor.ErrInvalidArgument, "dimension %d is empty", dim)
	}

	var outShape tensor.Shape
	if len(x.Shape()) > 0 {
		for i, n := range shape {
			switch {
			case i != d:
				outShape = append(outShape, n)
			case keepDim:
				outShape = append(outShape, 1)
			}
		}
	}

	result, err := cpu.alloc("argmax", outShape, tensor.Int64, x.Device())
	if err != nil {
		return nil, err
	}
	indices := tensor.Elements[int64](result)
	if isExactInt(x.DType()) {
		argmaxDim(loadInt64(x), indices, outer, size, inner)
	} else {
		argmaxDim(loadFloat64(x), indices, outer, size, inner)
	}
	return result, nil
}

// All returns a rank-0 Bool tensor that is true when every element is non-zero.
func (cpu *CPUBackend) All(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	result, err := cpu.alloc("all", tensor.Shape{}, tensor.Bool, x.Device())
	if err != nil {
		return nil, err
	}

	all := true
	switch {
	case x.DType().IsComplex():
		for _, v := range loadComplex128(x) {
			all = all && v != 0
		}
	case isExactInt(x.DType()):
		for _, v := range loadInt64(x) {
			all = all && v != 0
		}
	default:
		for _, v := range loadFloat64(x) {
			all = all && v != 0
		}
	}
	tensor.Elements[bool](result)[0] = all
	return result, nil
}

// Mean returns the rank-0 mean of all elements in x's kind.
// Only floating-point and complex kinds are supported; an empty tensor gives NaN.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	dtype := x.DType()
	if !dtype.IsFloat() && !dtype.IsComplex() {
		return nil, tensor.Errorf("mean", tensor.ErrUnsupported,
			"mean of %s tensors, cast to a floating-point kind first", dtype)
	}
	result, err := cpu.alloc("mean", tensor.Shape{}, dtype, x.Device())
	if err != nil {
		return nil, err
	}

	n := x.NumElements()
	if dtype.IsComplex() {
		var sum complex128
		for _, v := range loadComplex128(x) {
			sum += v
		}
		mean := cmplx.NaN()
		if n > 0 {
			mean = sum / complex(float64(n), 0)
		}
		storeComplex128(result, []complex128{mean})
		return result, nil
	}

	var sum float64
	for _, v := range loadFloat64(x) {
		sum += v
	}
	mean := math.NaN()
	if n > 0 {
		mean = sum / float64(n)
	}
	storeFloat64(result, []float64{mean})
	return result, nil
}
