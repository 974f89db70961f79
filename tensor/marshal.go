// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"runtime"

	"github.com/born-ml/facade/internal/tensor"
)

// Element is the set of host types tensors convert to and from.
type Element interface {
	int8 | int16 | int32 | int64 | uint8 | float32 | float64 | complex64 | complex128 | bool
}

// KindOf returns the element kind whose storage layout is T.
func KindOf[T Element]() DataType {
	return tensor.DataTypeOf[T]()
}

// toFlat casts t to T's kind and copies every element into a new []T.
func toFlat[T Element](t *Tensor) ([]T, error) {
	defer runtime.KeepAlive(t)
	cast, err := t.backend.Cast(t.raw, KindOf[T]())
	if err != nil {
		return nil, err
	}
	defer cast.Release()

	out := make([]T, cast.NumElements())
	if err := t.backend.ToHost(cast, out); err != nil {
		return nil, err
	}
	return out, nil
}

func checkRank(op string, t *Tensor, rank int) error {
	if t.Rank() != rank {
		return tensor.Errorf(op, ErrShapeMismatch, "expected a %dD tensor, got shape %v", rank, t.raw.Shape())
	}
	return nil
}

// split folds flat into n equally sized consecutive groups.
func split[T any](flat []T, n int) [][]T {
	out := make([][]T, n)
	if n == 0 {
		return out
	}
	size := len(flat) / n
	for i := range out {
		out[i] = flat[i*size : (i+1)*size : (i+1)*size]
	}
	return out
}

// flatten concatenates rows after checking they are all length want.
func flatten[T any](op string, rows [][]T, want int) ([]T, error) {
	out := make([]T, 0, len(rows)*want)
	for i, row := range rows {
		if len(row) != want {
			return nil, tensor.Errorf(op, ErrShapeMismatch,
				"ragged input: row %d has %d elements, expected %d", i, len(row), want)
		}
		out = append(out, row...)
	}
	return out, nil
}

// TryToScalar extracts the single element of t as T, casting if needed.
func TryToScalar[T Element](t *Tensor) (T, error) {
	var zero T
	if n := t.NumElements(); n != 1 {
		return zero, tensor.Errorf("to_scalar", ErrShapeMismatch, "expected exactly one element, got %d", n)
	}
	flat, err := toFlat[T](t)
	if err != nil {
		return zero, err
	}
	return flat[0], nil
}

// ToScalar extracts the single element of t as T.
// Panics unless t has exactly one element.
//
// Example:
//
//	loss := logits.CrossEntropyForLogits(targets)
//	fmt.Println(tensor.ToScalar[float64](loss))
func ToScalar[T Element](t *Tensor) T {
	if n := t.NumElements(); n != 1 {
		panic(fmt.Sprintf("expected exactly one element, got %d", n))
	}
	return must(TryToScalar[T](t))
}

// TryToSlice copies every element of t, in row-major order, into a []T.
// Any rank is accepted.
func TryToSlice[T Element](t *Tensor) ([]T, error) {
	return toFlat[T](t)
}

// ToSlice copies every element of t into a []T. Panics on failure.
func ToSlice[T Element](t *Tensor) []T {
	return must(TryToSlice[T](t))
}

// TryToSlice2 copies a 2D tensor into nested rows.
func TryToSlice2[T Element](t *Tensor) ([][]T, error) {
	if err := checkRank("to_slice2", t, 2); err != nil {
		return nil, err
	}
	flat, err := toFlat[T](t)
	if err != nil {
		return nil, err
	}
	return split(flat, t.Dim(0)), nil
}

// ToSlice2 copies a 2D tensor into nested rows. Panics on failure.
func ToSlice2[T Element](t *Tensor) [][]T {
	return must(TryToSlice2[T](t))
}

// TryToSlice3 copies a 3D tensor into nested slices.
func TryToSlice3[T Element](t *Tensor) ([][][]T, error) {
	if err := checkRank("to_slice3", t, 3); err != nil {
		return nil, err
	}
	flat, err := toFlat[T](t)
	if err != nil {
		return nil, err
	}
	return split(split(flat, t.Dim(0)*t.Dim(1)), t.Dim(0)), nil
}

// ToSlice3 copies a 3D tensor into nested slices. Panics on failure.
func ToSlice3[T Element](t *Tensor) [][][]T {
	return must(TryToSlice3[T](t))
}

func fromFlat[T Element](flat []T, shape Shape, b Backend) (*Tensor, error) {
	raw, err := b.FromHost(flat, shape, b.Device())
	return wrapResult(raw, err, b)
}

// TryFromScalar creates a rank-0 tensor holding v.
func TryFromScalar[T Element](v T, b Backend) (*Tensor, error) {
	one, err := TryFromSlice([]T{v}, b)
	if err != nil {
		return nil, err
	}
	defer one.Release()
	return one.TryReshape(Shape{})
}

// FromScalar creates a rank-0 tensor holding v. Panics on failure.
func FromScalar[T Element](v T, b Backend) *Tensor {
	return must(TryFromScalar(v, b))
}

// TryFromSlice creates a 1D tensor from data on b's default device.
func TryFromSlice[T Element](data []T, b Backend) (*Tensor, error) {
	return fromFlat(data, Shape{len(data)}, b)
}

// FromSlice creates a 1D tensor from data. Panics on failure.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.FromSlice([]float32{1, 2, 3}, backend)
func FromSlice[T Element](data []T, b Backend) *Tensor {
	return must(TryFromSlice(data, b))
}

// TryFromSlice2 creates a 2D tensor from rectangular rows.
func TryFromSlice2[T Element](data [][]T, b Backend) (*Tensor, error) {
	cols := 0
	if len(data) > 0 {
		cols = len(data[0])
	}
	flat, err := flatten("from_slice2", data, cols)
	if err != nil {
		return nil, err
	}
	return fromFlat(flat, Shape{len(data), cols}, b)
}

// FromSlice2 creates a 2D tensor from rectangular rows. Panics on failure.
func FromSlice2[T Element](data [][]T, b Backend) *Tensor {
	return must(TryFromSlice2(data, b))
}

// TryFromSlice3 creates a 3D tensor from rectangular nested slices.
func TryFromSlice3[T Element](data [][][]T, b Backend) (*Tensor, error) {
	rows := 0
	if len(data) > 0 {
		rows = len(data[0])
	}
	planes, err := flatten("from_slice3", data, rows)
	if err != nil {
		return nil, err
	}
	cols := 0
	if len(planes) > 0 {
		cols = len(planes[0])
	}
	flat, err := flatten("from_slice3", planes, cols)
	if err != nil {
		return nil, err
	}
	return fromFlat(flat, Shape{len(data), rows, cols}, b)
}

// FromSlice3 creates a 3D tensor from rectangular nested slices. Panics on failure.
func FromSlice3[T Element](data [][][]T, b Backend) *Tensor {
	return must(TryFromSlice3(data, b))
}

// Float64 extracts the single element of t as a float64.
func (t *Tensor) Float64() float64 {
	return ToScalar[float64](t)
}

// Int64 extracts the single element of t as an int64.
func (t *Tensor) Int64() int64 {
	return ToScalar[int64](t)
}

// Float64s copies every element of t into a []float64.
func (t *Tensor) Float64s() []float64 {
	return ToSlice[float64](t)
}

// Int64s copies every element of t into a []int64.
func (t *Tensor) Int64s() []int64 {
	return ToSlice[int64](t)
}
