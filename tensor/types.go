// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/facade/internal/tensor"
)

// Type aliases for public API

// DataType is the element kind of a tensor.
type DataType = tensor.DataType

// Element kinds.
const (
	Int8        DataType = tensor.Int8
	Int16       DataType = tensor.Int16
	Int32       DataType = tensor.Int32
	Int64       DataType = tensor.Int64
	Uint8       DataType = tensor.Uint8
	Float16     DataType = tensor.Float16
	BFloat16    DataType = tensor.BFloat16
	Float32     DataType = tensor.Float32
	Float64     DataType = tensor.Float64
	ComplexHalf DataType = tensor.ComplexHalf
	Complex64   DataType = tensor.Complex64
	Complex128  DataType = tensor.Complex128
	Bool        DataType = tensor.Bool
)

// DeviceType is the family of a compute device.
type DeviceType = tensor.DeviceType

// Device families.
const (
	CPU    DeviceType = tensor.CPU
	CUDA   DeviceType = tensor.CUDA
	Vulkan DeviceType = tensor.Vulkan
	Metal  DeviceType = tensor.Metal
	WebGPU DeviceType = tensor.WebGPU
)

// Device is an abstract placement: a device family plus an ordinal.
type Device = tensor.Device

// Host is the CPU device.
var Host = tensor.Host

// Accelerator returns the index-th device of family t.
//
// Example:
//
//	gpu := tensor.Accelerator(tensor.CUDA, 0)  // "cuda:0"
func Accelerator(t DeviceType, index int) Device {
	return tensor.Accelerator(t, index)
}

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the engine-resident array behind a Tensor handle.
//
// Most users should use the high-level Tensor type instead.
type RawTensor = tensor.RawTensor

// Backend is the primitive set a compute engine provides to the façade.
//
// Implementations:
//   - backend/cpu: reference engine on host memory
type Backend = tensor.Backend

// Scalar is an int64 or float64 operand of a tensor expression.
type Scalar = tensor.Scalar

// Int wraps an integer operand.
func Int(v int64) Scalar {
	return tensor.IntScalar(v)
}

// Float wraps a floating-point operand.
func Float(v float64) Scalar {
	return tensor.FloatScalar(v)
}

// ScalarOf wraps a Go number as a Scalar. Integers stay integral.
//
// Example:
//
//	y := x.MulScalar(tensor.ScalarOf(3))    // int64 operand
//	z := x.AddScalar(tensor.ScalarOf(0.5))  // float64 operand
func ScalarOf[N int | int64 | float64](v N) Scalar {
	switch n := any(v).(type) {
	case float64:
		return tensor.FloatScalar(n)
	case int64:
		return tensor.IntScalar(n)
	default:
		return tensor.IntScalar(int64(v))
	}
}
