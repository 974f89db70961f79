// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/facade/internal/tensor"
)

// Error describes which engine primitive failed and why. Test the failure
// class with errors.Is against the Err* values below.
type Error = tensor.Error

// Failure classes of engine primitives.
var (
	ErrShapeMismatch   = tensor.ErrShapeMismatch
	ErrKindMismatch    = tensor.ErrKindMismatch
	ErrDeviceMismatch  = tensor.ErrDeviceMismatch
	ErrAllocation      = tensor.ErrAllocation
	ErrUnsupported     = tensor.ErrUnsupported
	ErrInvalidArgument = tensor.ErrInvalidArgument
)

// must unwraps the result of a Try form. The panic value is the original
// error, so its message is the engine's message unchanged.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// check panics with err unless it is nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}
