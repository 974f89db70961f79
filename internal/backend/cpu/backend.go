// Package cpu implements the reference compute engine on host memory.
//
// Storage always lives in Go-managed memory. Non-host devices registered with
// WithDevices are placement tags only: arrays carry them, operations refuse to
// mix them, and To moves data between them with a copy.
package cpu

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/born-ml/facade/internal/envconfig"
	"github.com/born-ml/facade/internal/parallel"
	"github.com/born-ml/facade/internal/tensor"
)

// CPUBackend implements tensor.Backend on host memory.
type CPUBackend struct {
	device   tensor.Device
	devices  map[tensor.Device]bool
	maxAlloc int64
	par      parallel.Config

	rngMu sync.Mutex
	rng   *rand.Rand
}

var _ tensor.Backend = (*CPUBackend)(nil)

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithSeed fixes the seed of the random source used by RandInt.
func WithSeed(seed int64) Option {
	return func(cpu *CPUBackend) {
		cpu.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // G404: reproducible sampling, not crypto
	}
}

// WithDevices registers additional placement tags the engine accepts.
func WithDevices(devices ...tensor.Device) Option {
	return func(cpu *CPUBackend) {
		for _, d := range devices {
			cpu.devices[d] = true
		}
	}
}

// WithMaxAlloc limits the size of a single allocation; 0 disables the limit.
func WithMaxAlloc(bytes int64) Option {
	return func(cpu *CPUBackend) {
		cpu.maxAlloc = bytes
	}
}

// WithParallel overrides the worker configuration of element-wise kernels.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.par = cfg
	}
}

// WithNumThreads sets the worker count of element-wise kernels; 1 disables
// goroutine fan-out.
func WithNumThreads(n int) Option {
	return func(cpu *CPUBackend) {
		if n <= 1 {
			cpu.par = parallel.Sequential()
			return
		}
		cpu.par.Enabled = true
		cpu.par.NumWorkers = n
	}
}

// New creates a CPU backend. Defaults come from BORN_* environment settings.
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{
		device:   tensor.Host,
		devices:  map[tensor.Device]bool{tensor.Host: true},
		maxAlloc: envconfig.MaxAllocBytes,
		par:      parallel.DefaultConfig(),
	}

	seed := envconfig.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cpu.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // G404: reproducible sampling, not crypto

	for _, opt := range opts {
		opt(cpu)
	}
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the default device of arrays created by this backend.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Supports reports whether d is a placement this backend accepts.
func (cpu *CPUBackend) Supports(d tensor.Device) bool {
	return cpu.devices[d]
}

// alloc creates a zeroed result for op after checking placement and limits.
func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DataType, device tensor.Device) (*tensor.RawTensor, error) {
	if !cpu.devices[device] {
		return nil, tensor.Errorf(op, tensor.ErrDeviceMismatch, "device %s is not available on %s backend", device, cpu.Name())
	}
	if err := shape.Validate(); err != nil {
		return nil, tensor.Errorf(op, tensor.ErrInvalidArgument, "%v", err)
	}

	n := int64(1)
	for _, dim := range shape {
		if dim != 0 && n > (1<<62)/int64(dim) {
			return nil, tensor.Errorf(op, tensor.ErrAllocation, "shape %v overflows", shape)
		}
		n *= int64(dim)
	}
	bytes := n * int64(dtype.Size())
	if cpu.maxAlloc > 0 && bytes > cpu.maxAlloc {
		slog.Debug("allocation rejected", "op", op, "shape", shape, "dtype", dtype, "bytes", bytes, "limit", cpu.maxAlloc)
		return nil, tensor.Errorf(op, tensor.ErrAllocation, "%d bytes for %s%v exceeds limit of %d bytes",
			bytes, dtype, shape, cpu.maxAlloc)
	}

	raw, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		return nil, tensor.Errorf(op, tensor.ErrAllocation, "%v", err)
	}
	return raw, nil
}

// Zeros allocates a zero-filled array.
func (cpu *CPUBackend) Zeros(shape tensor.Shape, dtype tensor.DataType, device tensor.Device) (*tensor.RawTensor, error) {
	return cpu.alloc("zeros", shape, dtype, device)
}

// Ones allocates an array filled with ones.
func (cpu *CPUBackend) Ones(shape tensor.Shape, dtype tensor.DataType, device tensor.Device) (*tensor.RawTensor, error) {
	result, err := cpu.alloc("ones", shape, dtype, device)
	if err != nil {
		return nil, err
	}
	fill(result, tensor.IntScalar(1))
	return result, nil
}

// RandInt draws integers uniformly from [0, high).
func (cpu *CPUBackend) RandInt(high int64, shape tensor.Shape, dtype tensor.DataType, device tensor.Device) (*tensor.RawTensor, error) {
	if high <= 0 {
		return nil, tensor.Errorf("randint", tensor.ErrInvalidArgument, "high must be positive, got %d", high)
	}
	if dtype == tensor.Bool || dtype.IsComplex() {
		return nil, tensor.Errorf("randint", tensor.ErrUnsupported, "dtype %s", dtype)
	}

	result, err := cpu.alloc("randint", shape, dtype, device)
	if err != nil {
		return nil, err
	}

	values := make([]int64, result.NumElements())
	cpu.rngMu.Lock()
	for i := range values {
		values[i] = cpu.rng.Int63n(high)
	}
	cpu.rngMu.Unlock()

	storeInt64(result, values)
	return result, nil
}

// FromHost copies a typed host slice into a new array.
func (cpu *CPUBackend) FromHost(src any, shape tensor.Shape, device tensor.Device) (*tensor.RawTensor, error) {
	dtype, data, n, ok := hostBytes(src)
	if !ok {
		return nil, tensor.Errorf("from_host", tensor.ErrUnsupported, "host type %T", src)
	}
	if shape.Validate() == nil && shape.NumElements() != n {
		return nil, tensor.Errorf("from_host", tensor.ErrShapeMismatch,
			"shape %v requires %d elements, but got %d", shape, shape.NumElements(), n)
	}

	result, err := cpu.alloc("from_host", shape, dtype, device)
	if err != nil {
		return nil, err
	}
	copy(result.Data(), data)
	return result, nil
}

// ToHost copies x into dst, which must be a slice of x's storage type with
// exactly NumElements entries.
func (cpu *CPUBackend) ToHost(x *tensor.RawTensor, dst any) error {
	dtype, data, n, ok := hostBytes(dst)
	if !ok {
		return tensor.Errorf("to_host", tensor.ErrUnsupported, "host type %T", dst)
	}
	if dtype != x.DType() {
		return tensor.Errorf("to_host", tensor.ErrKindMismatch, "%s tensor into %T", x.DType(), dst)
	}
	if n != x.NumElements() {
		return tensor.Errorf("to_host", tensor.ErrShapeMismatch,
			"buffer holds %d elements, tensor %v has %d", n, x.Shape(), x.NumElements())
	}
	copy(data, x.Data())
	return nil
}
