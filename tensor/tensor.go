// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"runtime"
	"sync"
)

// Tensor is a handle to an array resident in a compute engine.
//
// Handles are reference-counted aliases: ShallowClone shares storage, Copy
// allocates new storage. Shape, kind and device never change for a handle;
// reshape and cast return new handles. In-place operations (AddAssign and
// friends) mutate storage visible to every alias.
//
// A Tensor must not be used after Release. Handles that are never released
// are released by the garbage collector. Concurrent mutation of aliased
// storage is the caller's responsibility.
type Tensor struct {
	raw     *RawTensor
	backend Backend

	releaseOnce sync.Once
}

// wrap takes ownership of raw.
func wrap(raw *RawTensor, b Backend) *Tensor {
	t := &Tensor{raw: raw, backend: b}
	runtime.SetFinalizer(t, (*Tensor).Release)
	return t
}

// wrapResult adapts a fallible engine call to a fallible façade call.
func wrapResult(raw *RawTensor, err error, b Backend) (*Tensor, error) {
	if err != nil {
		return nil, err
	}
	return wrap(raw, b), nil
}

// unary runs an engine primitive on t.
func (t *Tensor) unary(f func(b Backend, x *RawTensor) (*RawTensor, error)) (*Tensor, error) {
	defer runtime.KeepAlive(t)
	raw, err := f(t.backend, t.raw)
	return wrapResult(raw, err, t.backend)
}

// binary runs an engine primitive on t and o using t's backend.
func (t *Tensor) binary(o *Tensor, f func(b Backend, x, y *RawTensor) (*RawTensor, error)) (*Tensor, error) {
	defer runtime.KeepAlive(o)
	return t.unary(func(b Backend, x *RawTensor) (*RawTensor, error) {
		return f(b, x, o.raw)
	})
}

// New wraps an engine array in a handle. The handle takes ownership of raw.
//
// This is a low-level function. Most users should use creation functions like
// Zeros or FromSlice instead.
func New(raw *RawTensor, b Backend) *Tensor {
	return wrap(raw, b)
}

// Raw returns the engine array behind t. The handle keeps ownership.
func (t *Tensor) Raw() *RawTensor {
	return t.raw
}

// Backend returns the engine that owns t.
func (t *Tensor) Backend() Backend {
	return t.backend
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.raw.Shape().Clone()
}

// Dim returns the size of dimension i. Negative i counts from the end.
func (t *Tensor) Dim(i int) int {
	shape := t.raw.Shape()
	if i < 0 {
		i += len(shape)
	}
	return shape[i]
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.raw.Shape())
}

// Kind returns the element kind.
func (t *Tensor) Kind() DataType {
	return t.raw.DType()
}

// Device returns the placement of the tensor's storage.
func (t *Tensor) Device() Device {
	return t.raw.Device()
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.raw.NumElements()
}

// ShallowClone returns a new handle to the same storage.
func (t *Tensor) ShallowClone() *Tensor {
	defer runtime.KeepAlive(t)
	return wrap(t.raw.Clone(), t.backend)
}

// Release drops this handle's reference to the storage. Storage is freed
// when the last alias is released. Calling Release twice is a no-op.
func (t *Tensor) Release() {
	t.releaseOnce.Do(func() {
		runtime.SetFinalizer(t, nil)
		t.raw.Release()
	})
}

// TryZeros allocates a zero-filled tensor.
func TryZeros(shape Shape, kind DataType, device Device, b Backend) (*Tensor, error) {
	raw, err := b.Zeros(shape, kind, device)
	return wrapResult(raw, err, b)
}

// Zeros allocates a zero-filled tensor.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32, tensor.Host, backend)
func Zeros(shape Shape, kind DataType, device Device, b Backend) *Tensor {
	return must(TryZeros(shape, kind, device, b))
}

// TryOnes allocates a tensor filled with ones.
func TryOnes(shape Shape, kind DataType, device Device, b Backend) (*Tensor, error) {
	raw, err := b.Ones(shape, kind, device)
	return wrapResult(raw, err, b)
}

// Ones allocates a tensor filled with ones.
func Ones(shape Shape, kind DataType, device Device, b Backend) *Tensor {
	return must(TryOnes(shape, kind, device, b))
}

// TryRandInt draws integers uniformly from [0, high).
func TryRandInt(high int64, shape Shape, kind DataType, device Device, b Backend) (*Tensor, error) {
	raw, err := b.RandInt(high, shape, kind, device)
	return wrapResult(raw, err, b)
}

// RandInt draws integers uniformly from [0, high).
func RandInt(high int64, shape Shape, kind DataType, device Device, b Backend) *Tensor {
	return must(TryRandInt(high, shape, kind, device, b))
}

// TryZerosLike allocates zeros with t's shape, kind and device.
func (t *Tensor) TryZerosLike() (*Tensor, error) {
	defer runtime.KeepAlive(t)
	return TryZeros(t.raw.Shape(), t.Kind(), t.Device(), t.backend)
}

// ZerosLike allocates zeros with t's shape, kind and device.
func (t *Tensor) ZerosLike() *Tensor {
	return must(t.TryZerosLike())
}

// TryCopy allocates a tensor with t's shape, kind and device and copies the
// elements of t into it. The result never aliases t.
func (t *Tensor) TryCopy() (*Tensor, error) {
	result, err := t.TryZerosLike()
	if err != nil {
		return nil, err
	}
	if err := result.TryCopyFrom(t); err != nil {
		result.Release()
		return nil, err
	}
	return result, nil
}

// Copy returns an independent copy of t.
func (t *Tensor) Copy() *Tensor {
	return must(t.TryCopy())
}

// TryCopyFrom overwrites t with src, cast to t's kind and broadcast to t's shape.
func (t *Tensor) TryCopyFrom(src *Tensor) error {
	defer runtime.KeepAlive(t)
	defer runtime.KeepAlive(src)
	return t.backend.CopyInplace(t.raw, src.raw)
}

// CopyFrom overwrites t with src. Panics on failure.
func (t *Tensor) CopyFrom(src *Tensor) {
	check(t.TryCopyFrom(src))
}
