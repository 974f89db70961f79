package cpu

import (
	"math"

	"github.com/born-ml/facade/internal/parallel"
	"github.com/born-ml/facade/internal/tensor"
)

// logSoftmaxRows computes log-softmax along the middle axis of [outer, size, inner].
func logSoftmaxRows[T float](cfg parallel.Config, dst, src []T, outer, size, inner int) {
	parallel.For(outer*inner, cfg, func(row int) {
		o, in := row/inner, row%inner
		base := o*size*inner + in

		// Subtract the max for numerical stability.
		maxVal := math.Inf(-1)
		for k := 0; k < size; k++ {
			maxVal = math.Max(maxVal, float64(src[base+k*inner]))
		}
		var sum float64
		for k := 0; k < size; k++ {
			sum += math.Exp(float64(src[base+k*inner]) - maxVal)
		}
		logSum := maxVal + math.Log(sum)
		for k := 0; k < size; k++ {
			dst[base+k*inner] = T(float64(src[base+k*inner]) - logSum)
		}
	})
}

// LogSoftmax computes log(softmax(x)) along dim:
//
//	LogSoftmax(x_i) = x_i - log(sum(exp(x_j)))
//
// A rank-0 tensor is treated as having shape [1].
func (cpu *CPUBackend) LogSoftmax(x *tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	if !x.DType().IsFloat() {
		return nil, tensor.Errorf("log_softmax", tensor.ErrUnsupported,
			"log_softmax of %s tensors (only floating-point kinds supported)", x.DType())
	}
	shape := x.Shape()
	if len(shape) == 0 {
		shape = tensor.Shape{1}
	}
	d, err := shape.NormalizeDim(dim)
	if err != nil {
		return nil, tensor.Errorf("log_softmax", tensor.ErrInvalidArgument, "%v", err)
	}

	xw, err := cpu.widen("log_softmax", x)
	if err != nil {
		return nil, err
	}
	out, err := cpu.alloc("log_softmax", x.Shape(), xw.DType(), x.Device())
	if err != nil {
		return nil, err
	}

	outer, size, inner := reduceDims(shape, d)
	if xw.DType() == tensor.Float64 {
		logSoftmaxRows(cpu.par, tensor.Elements[float64](out), tensor.Elements[float64](xw), outer, size, inner)
	} else {
		logSoftmaxRows(cpu.par, tensor.Elements[float32](out), tensor.Elements[float32](xw), outer, size, inner)
	}
	return cpu.narrow("log_softmax", out, x.DType())
}

// NLLLoss computes the mean negative log-likelihood of targets under logProbs.
//
// Shapes:
//
//	logProbs: [N, C] or [C]
//	targets:  [N]    or []   (int64 class indices)
//
// Targets equal to ignoreIndex contribute neither to the sum nor to the count.
// The mean over zero counted targets is NaN.
func (cpu *CPUBackend) NLLLoss(logProbs, targets *tensor.RawTensor, ignoreIndex int64) (*tensor.RawTensor, error) {
	if err := tensor.CheckSameDevice("nll_loss", logProbs, targets); err != nil {
		return nil, err
	}
	if !logProbs.DType().IsFloat() {
		return nil, tensor.Errorf("nll_loss", tensor.ErrUnsupported,
			"nll_loss of %s tensors (only floating-point kinds supported)", logProbs.DType())
	}
	if targets.DType() != tensor.Int64 {
		return nil, tensor.Errorf("nll_loss", tensor.ErrKindMismatch,
			"targets must be int64, got %s", targets.DType())
	}

	shape, tshape := logProbs.Shape(), targets.Shape()
	var n, c int
	switch {
	case len(shape) == 2 && len(tshape) == 1 && tshape[0] == shape[0]:
		n, c = shape[0], shape[1]
	case len(shape) == 1 && len(tshape) == 0:
		n, c = 1, shape[0]
	default:
		return nil, tensor.Errorf("nll_loss", tensor.ErrShapeMismatch,
			"input %v is incompatible with targets %v", shape, tshape)
	}

	labels := tensor.Elements[int64](targets)
	for i, t := range labels {
		if t != ignoreIndex && (t < 0 || t >= int64(c)) {
			return nil, tensor.Errorf("nll_loss", tensor.ErrInvalidArgument,
				"target %d at position %d is out of bounds for %d classes", t, i, c)
		}
	}

	result, err := cpu.alloc("nll_loss", tensor.Shape{}, logProbs.DType(), logProbs.Device())
	if err != nil {
		return nil, err
	}

	values := loadFloat64(logProbs)
	var sum float64
	count := 0
	for i := 0; i < n; i++ {
		t := labels[i]
		if t == ignoreIndex {
			continue
		}
		sum -= values[i*c+int(t)]
		count++
	}
	loss := math.NaN()
	if count > 0 {
		loss = sum / float64(count)
	}
	storeFloat64(result, []float64{loss})
	return result, nil
}
