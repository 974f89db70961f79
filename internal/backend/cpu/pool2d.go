package cpu

import (
	"math"

	"github.com/born-ml/facade/internal/parallel"
	"github.com/born-ml/facade/internal/tensor"
)

// poolGeometry validates a [N, C, H, W] input and returns the output size.
//
//	out_height = (height - kernelSize) / stride + 1
//	out_width  = (width - kernelSize) / stride + 1
func poolGeometry(op string, input *tensor.RawTensor, kernelSize, stride int) (hOut, wOut int, err error) {
	shape := input.Shape()
	if len(shape) != 4 {
		return 0, 0, tensor.Errorf(op, tensor.ErrShapeMismatch, "expected 4D input [N,C,H,W], got %dD", len(shape))
	}
	if !input.DType().IsFloat() {
		return 0, 0, tensor.Errorf(op, tensor.ErrUnsupported, "pooling of %s tensors", input.DType())
	}
	if kernelSize <= 0 || stride <= 0 {
		return 0, 0, tensor.Errorf(op, tensor.ErrInvalidArgument, "kernel size %d and stride %d must be positive", kernelSize, stride)
	}
	h, w := shape[2], shape[3]
	if kernelSize > h || kernelSize > w {
		return 0, 0, tensor.Errorf(op, tensor.ErrInvalidArgument, "kernel size %d too large for input %dx%d", kernelSize, h, w)
	}
	return (h-kernelSize)/stride + 1, (w-kernelSize)/stride + 1, nil
}

type poolFunc[T float] func(window func(yield func(T)), count int) T

func maxWindow[T float](window func(yield func(T)), _ int) T {
	maxVal := T(math.Inf(-1))
	window(func(v T) {
		if v > maxVal || v != v { //nolint:gocritic // NaN propagates
			maxVal = v
		}
	})
	return maxVal
}

func avgWindow[T float](window func(yield func(T)), count int) T {
	var sum T
	window(func(v T) { sum += v })
	return sum / T(count)
}

// pool2d slides a kernelSize x kernelSize window over every channel plane.
func pool2d[T float](cfg parallel.Config, output, input []T, shape tensor.Shape, hOut, wOut, kernelSize, stride int, reduce poolFunc[T]) {
	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	parallel.ForBatch(n, c, cfg, func(b, ch int) {
		// Pre-slice channel plane
		channelOffset := (b*c + ch) * h * w
		plane := input[channelOffset : channelOffset+h*w]
		outPlane := output[(b*c+ch)*hOut*wOut : (b*c+ch+1)*hOut*wOut]

		for oh := 0; oh < hOut; oh++ {
			hStart := oh * stride
			for ow := 0; ow < wOut; ow++ {
				wStart := ow * stride
				window := func(yield func(T)) {
					for kh := 0; kh < kernelSize; kh++ {
						row := plane[(hStart+kh)*w : (hStart+kh+1)*w]
						for kw := 0; kw < kernelSize; kw++ {
							yield(row[wStart+kw])
						}
					}
				}
				outPlane[oh*wOut+ow] = reduce(window, kernelSize*kernelSize)
			}
		}
	})
}

func (cpu *CPUBackend) pool(op string, input *tensor.RawTensor, kernelSize, stride int, isMax bool) (*tensor.RawTensor, error) {
	hOut, wOut, err := poolGeometry(op, input, kernelSize, stride)
	if err != nil {
		return nil, err
	}
	xw, err := cpu.widen(op, input)
	if err != nil {
		return nil, err
	}
	shape := input.Shape()
	out, err := cpu.alloc(op, tensor.Shape{shape[0], shape[1], hOut, wOut}, xw.DType(), input.Device())
	if err != nil {
		return nil, err
	}

	if xw.DType() == tensor.Float64 {
		reduce := avgWindow[float64]
		if isMax {
			reduce = maxWindow[float64]
		}
		pool2d(cpu.par, tensor.Elements[float64](out), tensor.Elements[float64](xw), shape, hOut, wOut, kernelSize, stride, reduce)
	} else {
		reduce := avgWindow[float32]
		if isMax {
			reduce = maxWindow[float32]
		}
		pool2d(cpu.par, tensor.Elements[float32](out), tensor.Elements[float32](xw), shape, hOut, wOut, kernelSize, stride, reduce)
	}
	return cpu.narrow(op, out, input.DType())
}

// MaxPool2D performs 2D max pooling over [N, C, H, W] input without padding.
//
// Example (2x2 pool, stride=2):
//
//	Input: [[1,2,3,4],    Output: [[6,8],
//	        [5,6,7,8],             [14,16]]
//	        [9,10,11,12],
//	        [13,14,15,16]]
func (cpu *CPUBackend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride int) (*tensor.RawTensor, error) {
	return cpu.pool("max_pool2d", input, kernelSize, stride, true)
}

// AvgPool2D performs 2D average pooling over [N, C, H, W] input without padding.
func (cpu *CPUBackend) AvgPool2D(input *tensor.RawTensor, kernelSize, stride int) (*tensor.RawTensor, error) {
	return cpu.pool("avg_pool2d", input, kernelSize, stride, false)
}
