package cpu

import (
	"github.com/born-ml/facade/internal/parallel"
	"github.com/born-ml/facade/internal/tensor"
)

// computeBroadcastStridesForShape computes strides for broadcasting a shape to outShape.
// Returns strides where dimensions of size 1 have stride 0 (for broadcasting).
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	// Pad input shape with 1s on the left
	inDim := len(inShape)
	offset := outDim - inDim

	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// computeFlatIndex computes the flat index in the source array for a given output index.
// outStrides: strides of the output shape.
// inStrides: broadcast-adjusted strides of the input shape.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}

// broadcast2 evaluates dst[i] = f(a[ia], b[ib]) over outShape, where ia and
// ib follow NumPy broadcasting of aShape and bShape.
func broadcast2[A, B, R any](cfg parallel.Config, dst []R, a []A, b []B, aShape, bShape, outShape tensor.Shape, f func(A, B) R) {
	if aShape.Equal(outShape) && bShape.Equal(outShape) {
		parallel.ForRange(len(dst), cfg, func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = f(a[i], b[i])
			}
		})
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	parallel.ForRange(len(dst), cfg, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(a[computeFlatIndex(i, outStrides, aStrides)], b[computeFlatIndex(i, outStrides, bStrides)])
		}
	})
}

// map1 evaluates dst[i] = f(x[i]).
func map1[A, R any](cfg parallel.Config, dst []R, x []A, f func(A) R) {
	parallel.ForRange(len(dst), cfg, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(x[i])
		}
	})
}

// broadcastBytes copies src (element size es) into dst, broadcasting src's
// shape to dstShape. Works for every kind since elements move as bytes.
func broadcastBytes(dst, src []byte, es int, srcShape, dstShape tensor.Shape) {
	if srcShape.Equal(dstShape) {
		copy(dst, src)
		return
	}
	outStrides := dstShape.ComputeStrides()
	inStrides := computeBroadcastStridesForShape(srcShape, dstShape)
	n := dstShape.NumElements()
	for i := 0; i < n; i++ {
		j := computeFlatIndex(i, outStrides, inStrides)
		copy(dst[i*es:(i+1)*es], src[j*es:(j+1)*es])
	}
}
