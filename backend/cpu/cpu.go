// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/facade/internal/backend/cpu"
	"github.com/born-ml/facade/tensor"
)

// Backend is the reference compute engine on host memory.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option = internalcpu.Option

// WithSeed fixes the seed of the random source behind RandInt and RandomBatch.
func WithSeed(seed int64) Option {
	return internalcpu.WithSeed(seed)
}

// WithDevices registers additional placements the engine accepts. Arrays on
// them are still stored in host memory.
//
// Example:
//
//	gpu := tensor.Accelerator(tensor.CUDA, 0)
//	backend := cpu.New(cpu.WithDevices(gpu))
//	x := tensor.Zeros(tensor.Shape{2}, tensor.Float32, gpu, backend)
func WithDevices(devices ...tensor.Device) Option {
	return internalcpu.WithDevices(devices...)
}

// WithMaxAlloc limits a single allocation to the given number of bytes.
// Zero disables the limit.
func WithMaxAlloc(bytes int64) Option {
	return internalcpu.WithMaxAlloc(bytes)
}

// WithNumThreads sets the number of worker goroutines used by kernels.
func WithNumThreads(n int) Option {
	return internalcpu.WithNumThreads(n)
}

// New creates a new CPU backend. Options override the BORN_* environment.
//
// Example:
//
//	import (
//	    "github.com/born-ml/facade/backend/cpu"
//	    "github.com/born-ml/facade/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New(cpu.WithSeed(42))
//	    x := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32, tensor.Host, backend)
//	}
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}
