package cpu

import (
	"github.com/born-ml/facade/internal/tensor"
)

// loadIndices reads an Int32 or Int64 index tensor and checks every entry
// against [0, size).
func loadIndices(op string, index *tensor.RawTensor, size int) ([]int64, error) {
	if index.DType() != tensor.Int32 && index.DType() != tensor.Int64 {
		return nil, tensor.Errorf(op, tensor.ErrKindMismatch, "index tensor must be int32 or int64, got %s", index.DType())
	}
	indices := loadInt64(index)
	for i, v := range indices {
		if v < 0 || v >= int64(size) {
			return nil, tensor.Errorf(op, tensor.ErrInvalidArgument,
				"index %d at position %d is out of range for dimension of size %d", v, i, size)
		}
	}
	return indices, nil
}

// IndexSelect picks slices of x along dim at the positions listed in a rank-0
// or rank-1 index tensor.
//
// Example:
//
//	x:     [4, 3]
//	index: [2] = {3, 0}
//	dim:   0
//	out:   [2, 3] = {x[3], x[0]}
func (cpu *CPUBackend) IndexSelect(x *tensor.RawTensor, dim int, index *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := tensor.CheckSameDevice("index_select", x, index); err != nil {
		return nil, err
	}
	if len(index.Shape()) > 1 {
		return nil, tensor.Errorf("index_select", tensor.ErrShapeMismatch,
			"index must be rank 0 or 1, got shape %v", index.Shape())
	}
	shape := x.Shape()
	d, err := shape.NormalizeDim(dim)
	if err != nil {
		return nil, tensor.Errorf("index_select", tensor.ErrInvalidArgument, "%v", err)
	}
	indices, err := loadIndices("index_select", index, shape[d])
	if err != nil {
		return nil, err
	}

	outShape := shape.Clone()
	outShape[d] = len(indices)
	result, err := cpu.alloc("index_select", outShape, x.DType(), x.Device())
	if err != nil {
		return nil, err
	}

	outer, size, inner := reduceDims(shape, d)
	rowBytes := inner * x.DType().Size()
	src, dst := x.Data(), result.Data()
	for o := 0; o < outer; o++ {
		for j, idx := range indices {
			from := (o*size + int(idx)) * rowBytes
			to := (o*len(indices) + j) * rowBytes
			copy(dst[to:to+rowBytes], src[from:from+rowBytes])
		}
	}
	return result, nil
}

// ScatterValue writes value into x at the positions given by index along dim:
//
//	x[i][index[i][j]] = value  // dim = 1, rank 2
//
// index has x's rank and no dimension larger than x's, except along dim.
// Everything is validated before the first write.
func (cpu *CPUBackend) ScatterValue(x *tensor.RawTensor, dim int, index *tensor.RawTensor, value tensor.Scalar) error {
	if err := tensor.CheckSameDevice("scatter", x, index); err != nil {
		return err
	}
	shape, indexShape := x.Shape(), index.Shape()
	if len(indexShape) != len(shape) {
		return tensor.Errorf("scatter", tensor.ErrShapeMismatch,
			"index rank %d does not match tensor rank %d", len(indexShape), len(shape))
	}
	if len(shape) == 0 {
		shape, indexShape = tensor.Shape{1}, tensor.Shape{1}
	}
	d, err := shape.NormalizeDim(dim)
	if err != nil {
		return tensor.Errorf("scatter", tensor.ErrInvalidArgument, "%v", err)
	}
	for i := range shape {
		if i != d && indexShape[i] > shape[i] {
			return tensor.Errorf("scatter", tensor.ErrShapeMismatch,
				"index shape %v exceeds tensor shape %v at dimension %d", index.Shape(), x.Shape(), i)
		}
	}
	indices, err := loadIndices("scatter", index, shape[d])
	if err != nil {
		return err
	}

	elem := scalarElement(value, x.DType())
	es := len(elem)
	xStrides := shape.ComputeStrides()
	idxStrides := indexShape.ComputeStrides()
	data := x.Data()
	for flat, idx := range indices {
		offset := 0
		rem := flat
		for axis := range indexShape {
			coord := rem / idxStrides[axis]
			rem %= idxStrides[axis]
			if axis == d {
				coord = int(idx)
			}
			offset += coord * xStrides[axis]
		}
		copy(data[offset*es:(offset+1)*es], elem)
	}
	return nil
}
