// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go reference engine for tensor operations.
//
// # Overview
//
// The engine implements every tensor.Backend primitive for all thirteen
// element kinds:
//   - Pure Go implementation (no CGO)
//   - NumPy-compatible broadcasting
//   - Half-width kinds computed in Float32 or Complex64
//   - Parallel kernels for large inputs
//
// # Configuration
//
// Defaults come from the environment:
//
//	BORN_NUM_THREADS  worker goroutines for kernels
//	BORN_SEED         seed of the random source (0 = time based)
//	BORN_MAX_ALLOC    per-allocation byte limit (0 = unlimited)
//	BORN_DEBUG        debug logging through log/slog
//
// Functional options passed to New take precedence.
//
// # Devices
//
// Storage always lives in host memory. Devices registered with WithDevices
// are placement tags: operations refuse to mix them and ToDevice moves data
// between them with a copy.
//
// # Thread Safety
//
// The engine is safe for concurrent use. Concurrent writes to aliased
// storage must be synchronized by the caller.
package cpu
