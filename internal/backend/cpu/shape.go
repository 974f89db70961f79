package cpu

import (
	"log/slog"

	"github.com/born-ml/facade/internal/tensor"
)

// Reshape returns an alias of x with a new shape. One dimension may be -1 and
// is inferred from the element count.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, shape tensor.Shape) (*tensor.RawTensor, error) {
	resolved, err := shape.Infer(x.NumElements())
	if err != nil {
		return nil, tensor.Errorf("reshape", tensor.ErrShapeMismatch, "%v", err)
	}
	view, err := x.View(resolved)
	if err != nil {
		return nil, tensor.Errorf("reshape", tensor.ErrShapeMismatch, "%v", err)
	}
	return view, nil
}

// To places x on device. Moving to the current device returns an alias;
// any other move copies.
func (cpu *CPUBackend) To(x *tensor.RawTensor, device tensor.Device) (*tensor.RawTensor, error) {
	if x.Device() == device {
		return x.Clone(), nil
	}
	result, err := cpu.alloc("to", x.Shape(), x.DType(), device)
	if err != nil {
		return nil, err
	}
	slog.Debug("device transfer", "from", x.Device(), "to", device, "bytes", x.ByteSize())
	copy(result.Data(), x.Data())
	return result, nil
}

// CopyInplace overwrites dst with src, casting src to dst's kind and
// broadcasting it to dst's shape.
func (cpu *CPUBackend) CopyInplace(dst, src *tensor.RawTensor) error {
	if err := tensor.CheckSameDevice("copy_", dst, src); err != nil {
		return err
	}
	outShape, _, err := tensor.BroadcastShapes(dst.Shape(), src.Shape())
	if err != nil || !outShape.Equal(dst.Shape()) {
		slog.Debug("in-place copy rejected", "dst", dst.Shape(), "src", src.Shape())
		return tensor.Errorf("copy_", tensor.ErrShapeMismatch,
			"source shape %v cannot be broadcast to %v", src.Shape(), dst.Shape())
	}
	if dst.SharesStorage(src) {
		return nil
	}

	cast, err := cpu.Cast(src, dst.DType())
	if err != nil {
		return err
	}
	broadcastBytes(dst.Data(), cast.Data(), dst.DType().Size(), cast.Shape(), dst.Shape())
	return nil
}
