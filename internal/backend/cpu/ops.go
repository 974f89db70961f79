package cpu

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/born-ml/facade/internal/parallel"
	"github.com/born-ml/facade/internal/tensor"
)

// binaryOp identifies one of the four arithmetic kernels.
type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
)

func (op binaryOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opSub:
		return "sub"
	case opMul:
		return "mul"
	case opDiv:
		return "div"
	default:
		return "unknown"
	}
}

// kernel returns the element function of op for T. Integer division by zero
// must be rejected before a kernel runs.
func kernel[T number](op binaryOp) func(a, b T) T {
	switch op {
	case opAdd:
		return func(a, b T) T { return a + b }
	case opSub:
		return func(a, b T) T { return a - b }
	case opMul:
		return func(a, b T) T { return a * b }
	default:
		return func(a, b T) T { return a / b }
	}
}

func runBinary[T number](cfg parallel.Config, op binaryOp, out, a, b *tensor.RawTensor) {
	broadcast2(cfg, tensor.Elements[T](out), tensor.Elements[T](a), tensor.Elements[T](b),
		a.Shape(), b.Shape(), out.Shape(), kernel[T](op))
}

func runScalar[T number](cfg parallel.Config, op binaryOp, out, x *tensor.RawTensor, s tensor.Scalar) {
	k := kernel[T](op)
	v := scalarAs[T](s)
	map1(cfg, tensor.Elements[T](out), tensor.Elements[T](x), func(a T) T { return k(a, v) })
}

// dispatchBinary runs op on compute-kind operands.
func dispatchBinary(cfg parallel.Config, op binaryOp, out, a, b *tensor.RawTensor) {
	switch out.DType() {
	case tensor.Int8:
		runBinary[int8](cfg, op, out, a, b)
	case tensor.Int16:
		runBinary[int16](cfg, op, out, a, b)
	case tensor.Int32:
		runBinary[int32](cfg, op, out, a, b)
	case tensor.Int64:
		runBinary[int64](cfg, op, out, a, b)
	case tensor.Uint8:
		runBinary[uint8](cfg, op, out, a, b)
	case tensor.Float32:
		runBinary[float32](cfg, op, out, a, b)
	case tensor.Float64:
		runBinary[float64](cfg, op, out, a, b)
	case tensor.Complex64:
		runBinary[complex64](cfg, op, out, a, b)
	case tensor.Complex128:
		runBinary[complex128](cfg, op, out, a, b)
	default:
		panic("dispatchBinary: unsupported dtype " + out.DType().String())
	}
}

func dispatchScalar(cfg parallel.Config, op binaryOp, out, x *tensor.RawTensor, s tensor.Scalar) {
	switch out.DType() {
	case tensor.Int8:
		runScalar[int8](cfg, op, out, x, s)
	case tensor.Int16:
		runScalar[int16](cfg, op, out, x, s)
	case tensor.Int32:
		runScalar[int32](cfg, op, out, x, s)
	case tensor.Int64:
		runScalar[int64](cfg, op, out, x, s)
	case tensor.Uint8:
		runScalar[uint8](cfg, op, out, x, s)
	case tensor.Float32:
		runScalar[float32](cfg, op, out, x, s)
	case tensor.Float64:
		runScalar[float64](cfg, op, out, x, s)
	case tensor.Complex64:
		runScalar[complex64](cfg, op, out, x, s)
	case tensor.Complex128:
		runScalar[complex128](cfg, op, out, x, s)
	default:
		panic("dispatchScalar: unsupported dtype " + out.DType().String())
	}
}

func hasZero(x *tensor.RawTensor) bool {
	for _, v := range loadInt64(x) {
		if v == 0 {
			return true
		}
	}
	return false
}

// binary computes a op b into a fresh array.
func (cpu *CPUBackend) binary(op binaryOp, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	name := op.String()
	if err := tensor.CheckSameKind(name, a, b); err != nil {
		return nil, err
	}
	if err := tensor.CheckSameDevice(name, a, b); err != nil {
		return nil, err
	}
	dtype := a.DType()
	if dtype == tensor.Bool {
		return nil, tensor.Errorf(name, tensor.ErrUnsupported, "arithmetic on %s tensors", dtype)
	}
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, tensor.Errorf(name, tensor.ErrShapeMismatch, "%v", err)
	}
	if op == opDiv && dtype.IsInteger() && hasZero(b) {
		return nil, tensor.Errorf(name, tensor.ErrInvalidArgument, "integer division by zero")
	}

	aw, err := cpu.widen(name, a)
	if err != nil {
		return nil, err
	}
	bw, err := cpu.widen(name, b)
	if err != nil {
		return nil, err
	}
	out, err := cpu.alloc(name, outShape, dtype.ComputeType(), a.Device())
	if err != nil {
		return nil, err
	}
	dispatchBinary(cpu.par, op, out, aw, bw)
	return cpu.narrow(name, out, dtype)
}

// binaryInplace computes a op= b. The result is built out of place and
// committed only after every check has passed.
func (cpu *CPUBackend) binaryInplace(op binaryOp, a, b *tensor.RawTensor) error {
	name := op.String() + "_"
	if err := tensor.CheckSameKind(name, a, b); err != nil {
		return err
	}
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return tensor.Errorf(name, tensor.ErrShapeMismatch, "%v", err)
	}
	if !outShape.Equal(a.Shape()) {
		slog.Debug("in-place op rejected", "op", name, "target", a.Shape(), "operand", b.Shape())
		return tensor.Errorf(name, tensor.ErrShapeMismatch,
			"result shape %v does not match target shape %v", outShape, a.Shape())
	}

	result, err := cpu.binary(op, a, b)
	if err != nil {
		var e *tensor.Error
		if errors.As(err, &e) {
			e.Op = name
		}
		return err
	}
	copy(a.Data(), result.Data())
	return nil
}

// binaryScalar computes x op s into a fresh array. A float scalar promotes an
// integer tensor to Float32.
func (cpu *CPUBackend) binaryScalar(op binaryOp, x *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	name := op.String() + "_scalar"
	if x.DType() == tensor.Bool {
		return nil, tensor.Errorf(name, tensor.ErrUnsupported, "arithmetic on %s tensors", x.DType())
	}
	dtype := s.ResultType(x.DType())
	if op == opDiv && dtype.IsInteger() && s.Int() == 0 {
		return nil, tensor.Errorf(name, tensor.ErrInvalidArgument, "integer division by zero")
	}

	src := x
	if dtype != x.DType() {
		cast, err := cpu.Cast(x, dtype)
		if err != nil {
			return nil, err
		}
		src = cast
	}
	xw, err := cpu.widen(name, src)
	if err != nil {
		return nil, err
	}
	out, err := cpu.alloc(name, x.Shape(), dtype.ComputeType(), x.Device())
	if err != nil {
		return nil, err
	}
	dispatchScalar(cpu.par, op, out, xw, s)
	return cpu.narrow(name, out, dtype)
}

// binaryScalarInplace computes x op= s. The promoted kind must be x's kind.
func (cpu *CPUBackend) binaryScalarInplace(op binaryOp, x *tensor.RawTensor, s tensor.Scalar) error {
	name := op.String() + "_scalar_"
	if dtype := s.ResultType(x.DType()); dtype != x.DType() {
		return tensor.Errorf(name, tensor.ErrKindMismatch,
			"result kind %s cannot be stored in %s tensor", dtype, x.DType())
	}
	result, err := cpu.binaryScalar(op, x, s)
	if err != nil {
		var e *tensor.Error
		if errors.As(err, &e) {
			e.Op = name
		}
		return err
	}
	copy(x.Data(), result.Data())
	return nil
}

// Add computes a + b with broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.binary(opAdd, a, b)
}

// Sub computes a - b with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.binary(opSub, a, b)
}

// Mul computes a * b with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.binary(opMul, a, b)
}

// Div computes a / b with broadcasting. Integer division truncates.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.binary(opDiv, a, b)
}

// AddInplace computes a += b.
func (cpu *CPUBackend) AddInplace(a, b *tensor.RawTensor) error {
	return cpu.binaryInplace(opAdd, a, b)
}

// SubInplace computes a -= b.
func (cpu *CPUBackend) SubInplace(a, b *tensor.RawTensor) error {
	return cpu.binaryInplace(opSub, a, b)
}

// MulInplace computes a *= b.
func (cpu *CPUBackend) MulInplace(a, b *tensor.RawTensor) error {
	return cpu.binaryInplace(opMul, a, b)
}

// DivInplace computes a /= b.
func (cpu *CPUBackend) DivInplace(a, b *tensor.RawTensor) error {
	return cpu.binaryInplace(opDiv, a, b)
}

// AddScalar adds s to each element of x.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	return cpu.binaryScalar(opAdd, x, s)
}

// SubScalar subtracts s from each element of x.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	return cpu.binaryScalar(opSub, x, s)
}

// MulScalar multiplies each element of x by s.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	return cpu.binaryScalar(opMul, x, s)
}

// DivScalar divides each element of x by s.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	return cpu.binaryScalar(opDiv, x, s)
}

// AddScalarInplace computes x += s.
func (cpu *CPUBackend) AddScalarInplace(x *tensor.RawTensor, s tensor.Scalar) error {
	return cpu.binaryScalarInplace(opAdd, x, s)
}

// SubScalarInplace computes x -= s.
func (cpu *CPUBackend) SubScalarInplace(x *tensor.RawTensor, s tensor.Scalar) error {
	return cpu.binaryScalarInplace(opSub, x, s)
}

// MulScalarInplace computes x *= s.
func (cpu *CPUBackend) MulScalarInplace(x *tensor.RawTensor, s tensor.Scalar) error {
	return cpu.binaryScalarInplace(opMul, x, s)
}

// DivScalarInplace computes x /= s.
func (cpu *CPUBackend) DivScalarInplace(x *tensor.RawTensor, s tensor.Scalar) error {
	return cpu.binaryScalarInplace(opDiv, x, s)
}
