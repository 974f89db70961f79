// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the user-facing tensor handle of the Born ML framework.
//
// # Overview
//
// A Tensor is a handle to an n-dimensional array that lives in a compute
// engine (a Backend). The handle itself holds no elements; every operation is
// delegated to one engine primitive and the result is wrapped in a new handle.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/facade/backend/cpu"
//	    "github.com/born-ml/facade/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.FromSlice([]float64{1, 2, 3}, backend)
//	    y := tensor.ScalarSub(tensor.Float(10), x)  // [9, 8, 7]
//	    x.AddAssign(y)                              // x is now [10, 10, 10]
//	    fmt.Println(x)
//	}
//
// # Fallible and Convenience Forms
//
// Every operation comes in two forms. TryAdd, TryReshape and friends return
// (result, error); Add, Reshape and friends return the result and panic with
// the same error on failure. Test the failure class with errors.Is:
//
//	_, err := a.TryAdd(b)
//	if errors.Is(err, tensor.ErrShapeMismatch) { ... }
//
// # Element Kinds and Devices
//
// Tensors carry one of thirteen element kinds (Int8 ... Bool, including the
// half-width Float16, BFloat16 and ComplexHalf) and a Device placement.
// Binary operations require both operands to share kind and device; scalars
// are promoted by the engine.
//
// # Aliasing
//
// ShallowClone, Reshape and same-kind ToKind return handles that share
// storage. In-place operations (AddAssign, ScatterValue, CopyFrom) are visible
// through every alias. Copy always allocates.
//
// # Memory Management
//
// Storage is reference-counted by the engine. Release drops a handle's
// reference; handles that are never released are released by the garbage
// collector.
package tensor
