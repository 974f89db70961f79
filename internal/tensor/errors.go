package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Failure classes reported by engine primitives. Every *Error wraps exactly one
// of them, so callers can test with errors.Is.
var (
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrKindMismatch    = errors.New("kind mismatch")
	ErrDeviceMismatch  = errors.New("device mismatch")
	ErrAllocation      = errors.New("allocation failure")
	ErrUnsupported     = errors.New("unsupported operation")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error describes which engine primitive failed and why.
type Error struct {
	Op     string // Primitive name, e.g. "add" or "index_select".
	Err    error  // One of the Err* sentinels.
	Detail string // Human-readable context.
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error() + ": " + e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error for op and attaches the caller's stack.
// The message of the returned error is exactly Error.Error().
func Errorf(op string, class error, format string, args ...any) error {
	return errors.WithStack(&Error{
		Op:     op,
		Err:    class,
		Detail: fmt.Sprintf(format, args...),
	})
}

// CheckSameKind fails with ErrKindMismatch unless both operands share a kind.
func CheckSameKind(op string, a, b *RawTensor) error {
	if a.DType() != b.DType() {
		return Errorf(op, ErrKindMismatch, "%s vs %s", a.DType(), b.DType())
	}
	return nil
}

// CheckSameDevice fails with ErrDeviceMismatch unless both operands share a device.
func CheckSameDevice(op string, a, b *RawTensor) error {
	if a.Device() != b.Device() {
		return Errorf(op, ErrDeviceMismatch, "%s vs %s", a.Device(), b.Device())
	}
	return nil
}
