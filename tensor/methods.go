// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"runtime"

	"github.com/born-ml/facade/internal/tensor"
)

// TryArgmax returns Int64 indices of the maximum along dim.
func (t *Tensor) TryArgmax(dim int, keepDim bool) (*Tensor, error) {
	return t.unary(func(b Backend, x *RawTensor) (*RawTensor, error) {
		return b.Argmax(x, dim, keepDim)
	})
}

// Argmax returns Int64 indices of the maximum along dim. Panics on failure.
func (t *Tensor) Argmax(dim int, keepDim bool) *Tensor {
	return must(t.TryArgmax(dim, keepDim))
}

// TryEq compares t and o element-wise and returns a Bool tensor.
func (t *Tensor) TryEq(o *Tensor) (*Tensor, error) {
	return t.binary(o, Backend.Equal)
}

// Eq compares t and o element-wise. Panics on failure.
func (t *Tensor) Eq(o *Tensor) *Tensor {
	return must(t.TryEq(o))
}

// TryAll reduces t with logical AND into a rank-0 Bool tensor.
func (t *Tensor) TryAll() (*Tensor, error) {
	return t.unary(Backend.All)
}

// All reduces t with logical AND. Panics on failure.
func (t *Tensor) All() *Tensor {
	return must(t.TryAll())
}

// TryMean returns the rank-0 mean of all elements.
func (t *Tensor) TryMean() (*Tensor, error) {
	return t.unary(Backend.Mean)
}

// Mean returns the rank-0 mean of all elements. Panics on failure.
func (t *Tensor) Mean() *Tensor {
	return must(t.TryMean())
}

// TryIndexSelect gathers slices of t along dim at the positions in index.
func (t *Tensor) TryIndexSelect(dim int, index *Tensor) (*Tensor, error) {
	return t.binary(index, func(b Backend, x, idx *RawTensor) (*RawTensor, error) {
		return b.IndexSelect(x, dim, idx)
	})
}

// IndexSelect gathers slices of t along dim. Panics on failure.
func (t *Tensor) IndexSelect(dim int, index *Tensor) *Tensor {
	return must(t.TryIndexSelect(dim, index))
}

// TryScatterValue writes value into t along dim at the positions in index.
// The write is in place and visible to every alias of t.
func (t *Tensor) TryScatterValue(dim int, index *Tensor, value Scalar) error {
	defer runtime.KeepAlive(t)
	defer runtime.KeepAlive(index)
	return t.backend.ScatterValue(t.raw, dim, index.raw, value)
}

// ScatterValue writes value into t in place and returns t. Panics on failure.
func (t *Tensor) ScatterValue(dim int, index *Tensor, value Scalar) *Tensor {
	check(t.TryScatterValue(dim, index, value))
	return t
}

// TryToKind casts t to kind. Casting to t's own kind returns an alias.
func (t *Tensor) TryToKind(kind DataType) (*Tensor, error) {
	return t.unary(func(b Backend, x *RawTensor) (*RawTensor, error) {
		return b.Cast(x, kind)
	})
}

// ToKind casts t to kind. Panics on failure.
func (t *Tensor) ToKind(kind DataType) *Tensor {
	return must(t.TryToKind(kind))
}

// TryToDevice places t on device. Moving to t's own device returns an alias.
func (t *Tensor) TryToDevice(device Device) (*Tensor, error) {
	return t.unary(func(b Backend, x *RawTensor) (*RawTensor, error) {
		return b.To(x, device)
	})
}

// ToDevice places t on device. Panics on failure.
func (t *Tensor) ToDevice(device Device) *Tensor {
	return must(t.TryToDevice(device))
}

// TryReshape returns an alias of t with a new shape; one dimension may be -1.
func (t *Tensor) TryReshape(shape Shape) (*Tensor, error) {
	return t.unary(func(b Backend, x *RawTensor) (*RawTensor, error) {
		return b.Reshape(x, shape)
	})
}

// Reshape returns an alias of t with a new shape. Panics on failure.
func (t *Tensor) Reshape(shape Shape) *Tensor {
	return must(t.TryReshape(shape))
}

// TryUnsqueeze inserts a dimension of size 1 at dim. Negative dim counts
// from the end of the result shape, so -1 appends.
func (t *Tensor) TryUnsqueeze(dim int) (*Tensor, error) {
	shape := t.raw.Shape()
	rank := len(shape) + 1
	if dim < 0 {
		dim += rank
	}
	if dim < 0 || dim >= rank {
		return nil, tensor.Errorf("unsqueeze", ErrInvalidArgument,
			"dimension %d out of range for %dD result", dim, rank)
	}
	out := make(Shape, 0, rank)
	out = append(out, shape[:dim]...)
	out = append(out, 1)
	out = append(out, shape[dim:]...)
	return t.TryReshape(out)
}

// Unsqueeze inserts a dimension of size 1 at dim. Panics on failure.
func (t *Tensor) Unsqueeze(dim int) *Tensor {
	return must(t.TryUnsqueeze(dim))
}

// TryFlatView reshapes t to [d0, -1], keeping the leading (batch) dimension.
func (t *Tensor) TryFlatView() (*Tensor, error) {
	if t.Rank() == 0 {
		return nil, tensor.Errorf("flat_view", ErrInvalidArgument, "rank-0 tensor has no batch dimension")
	}
	return t.TryReshape(Shape{t.Dim(0), -1})
}

// FlatView reshapes t to [d0, -1]. Panics on failure.
func (t *Tensor) FlatView() *Tensor {
	return must(t.TryFlatView())
}

// TryLogSoftmax computes log(softmax(t)) along dim.
func (t *Tensor) TryLogSoftmax(dim int) (*Tensor, error) {
	return t.unary(func(b Backend, x *RawTensor) (*RawTensor, error) {
		return b.LogSoftmax(x, dim)
	})
}

// LogSoftmax computes log(softmax(t)) along dim. Panics on failure.
func (t *Tensor) LogSoftmax(dim int) *Tensor {
	return must(t.TryLogSoftmax(dim))
}

// IgnoreIndex is the target value NLLLoss skips.
const IgnoreIndex = -100

// TryNLLLoss returns the mean negative log-likelihood of Int64 targets under
// log-probabilities t. Targets equal to IgnoreIndex are skipped.
func (t *Tensor) TryNLLLoss(targets *Tensor) (*Tensor, error) {
	return t.binary(targets, func(b Backend, x, y *RawTensor) (*RawTensor, error) {
		return b.NLLLoss(x, y, IgnoreIndex)
	})
}

// NLLLoss returns the mean negative log-likelihood. Panics on failure.
func (t *Tensor) NLLLoss(targets *Tensor) *Tensor {
	return must(t.TryNLLLoss(targets))
}

// TryMaxPool2dDefault max-pools [N, C, H, W] input with a k x k window and stride k.
func (t *Tensor) TryMaxPool2dDefault(k int) (*Tensor, error) {
	return t.unary(func(b Backend, x *RawTensor) (*RawTensor, error) {
		return b.MaxPool2D(x, k, k)
	})
}

// MaxPool2dDefault max-pools with a k x k window and stride k. Panics on failure.
func (t *Tensor) MaxPool2dDefault(k int) *Tensor {
	return must(t.TryMaxPool2dDefault(k))
}

// TryAvgPool2dDefault average-pools [N, C, H, W] input with a k x k window and stride k.
func (t *Tensor) TryAvgPool2dDefault(k int) (*Tensor, error) {
	return t.unary(func(b Backend, x *RawTensor) (*RawTensor, error) {
		return b.AvgPool2D(x, k, k)
	})
}

// AvgPool2dDefault average-pools with a k x k window and stride k. Panics on failure.
func (t *Tensor) AvgPool2dDefault(k int) *Tensor {
	return must(t.TryAvgPool2dDefault(k))
}
