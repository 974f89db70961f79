// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

// TryCrossEntropyForLogits returns the mean cross-entropy of integer class
// targets under unnormalized logits whose last dimension is the class axis.
func (t *Tensor) TryCrossEntropyForLogits(targets *Tensor) (*Tensor, error) {
	logProbs, err := t.TryLogSoftmax(-1)
	if err != nil {
		return nil, err
	}
	defer logProbs.Release()
	return logProbs.TryNLLLoss(targets)
}

// CrossEntropyForLogits returns the mean cross-entropy of targets under
// logits t. Panics on failure.
func (t *Tensor) CrossEntropyForLogits(targets *Tensor) *Tensor {
	return must(t.TryCrossEntropyForLogits(targets))
}

// TryAccuracyForLogits returns, as a rank-0 Float32 tensor, the fraction of
// rows whose largest logit is at the target class.
func (t *Tensor) TryAccuracyForLogits(targets *Tensor) (*Tensor, error) {
	predicted, err := t.TryArgmax(-1, false)
	if err != nil {
		return nil, err
	}
	defer predicted.Release()

	labels, err := targets.TryToKind(Int64)
	if err != nil {
		return nil, err
	}
	defer labels.Release()

	hits, err := predicted.TryEq(labels)
	if err != nil {
		return nil, err
	}
	defer hits.Release()

	scores, err := hits.TryToKind(Float32)
	if err != nil {
		return nil, err
	}
	defer scores.Release()
	return scores.TryMean()
}

// AccuracyForLogits returns the fraction of correct predictions. Panics on failure.
func (t *Tensor) AccuracyForLogits(targets *Tensor) *Tensor {
	return must(t.TryAccuracyForLogits(targets))
}

// TryOneHot expands integer labels t into a Float32 tensor of shape
// t.Shape()+[labels] with a 1 at each label position.
func (t *Tensor) TryOneHot(labels int) (*Tensor, error) {
	shape := append(t.Shape(), labels)
	result, err := TryZeros(shape, Float32, t.Device(), t.backend)
	if err != nil {
		return nil, err
	}

	index, err := t.oneHotIndex()
	if err != nil {
		result.Release()
		return nil, err
	}
	defer index.Release()

	if err := result.TryScatterValue(-1, index, Float(1)); err != nil {
		result.Release()
		return nil, err
	}
	return result, nil
}

func (t *Tensor) oneHotIndex() (*Tensor, error) {
	expanded, err := t.TryUnsqueeze(-1)
	if err != nil {
		return nil, err
	}
	defer expanded.Release()
	return expanded.TryToKind(Int64)
}

// OneHot expands integer labels into one-hot rows. Panics on failure.
//
// Example:
//
//	labels := tensor.FromSlice([]int64{0, 2}, backend)
//	hot := labels.OneHot(4)  // [[1 0 0 0] [0 0 1 0]]
func (t *Tensor) OneHot(labels int) *Tensor {
	return must(t.TryOneHot(labels))
}

// batchIndex draws n Int64 row indices in [0, rows) on device.
func batchIndex(rows, n int, device Device, b Backend) (*Tensor, error) {
	return TryRandInt(int64(rows), Shape{n}, Int64, device, b)
}

// TryRandomBatch samples n rows of t along dimension 0, with replacement.
func (t *Tensor) TryRandomBatch(n int) (*Tensor, error) {
	if t.Rank() == 0 {
		return nil, fmt.Errorf("random_batch: %w", ErrInvalidArgument)
	}
	index, err := batchIndex(t.Dim(0), n, t.Device(), t.backend)
	if err != nil {
		return nil, err
	}
	defer index.Release()
	return t.TryIndexSelect(0, index)
}

// RandomBatch samples n rows of t along dimension 0. Panics on failure.
func (t *Tensor) RandomBatch(n int) *Tensor {
	return must(t.TryRandomBatch(n))
}

// TryRandomBatch2 samples the same n rows from a and b and places both
// batches on device. a and b must have the same leading dimension.
func TryRandomBatch2(a, b *Tensor, n int, device Device) (*Tensor, *Tensor, error) {
	if a.Rank() == 0 || b.Rank() == 0 || a.Dim(0) != b.Dim(0) {
		return nil, nil, fmt.Errorf("random_batch2: shape mismatch %v %v: %w", a.Shape(), b.Shape(), ErrShapeMismatch)
	}
	index, err := batchIndex(a.Dim(0), n, a.Device(), a.backend)
	if err != nil {
		return nil, nil, err
	}
	defer index.Release()

	batchA, err := selectTo(a, index, device)
	if err != nil {
		return nil, nil, err
	}
	batchB, err := selectTo(b, index, device)
	if err != nil {
		batchA.Release()
		return nil, nil, err
	}
	return batchA, batchB, nil
}

func selectTo(t, index *Tensor, device Device) (*Tensor, error) {
	rows, err := t.TryIndexSelect(0, index)
	if err != nil {
		return nil, err
	}
	defer rows.Release()
	return rows.TryToDevice(device)
}

// RandomBatch2 samples the same n rows from a and b. Panics if their leading
// dimensions differ or on any engine failure.
//
// Example:
//
//	images, labels := tensor.RandomBatch2(trainImages, trainLabels, 64, tensor.Host)
func RandomBatch2(a, b *Tensor, n int, device Device) (*Tensor, *Tensor) {
	if a.Rank() == 0 || b.Rank() == 0 || a.Dim(0) != b.Dim(0) {
		panic(fmt.Sprintf("random_batch2: shape mismatch %v %v", a.Shape(), b.Shape()))
	}
	batchA, batchB, err := TryRandomBatch2(a, b, n, device)
	check(err)
	return batchA, batchB
}

// Equal reports whether t and o have the same shape and equal elements.
// It never panics: any failure, such as differing kinds or devices, is false.
func (t *Tensor) Equal(o *Tensor) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()

	if t == nil || o == nil {
		return t == o
	}
	if !t.raw.Shape().Equal(o.raw.Shape()) {
		return false
	}

	same, err := t.TryEq(o)
	if err != nil {
		return false
	}
	defer same.Release()

	all, err := same.TryAll()
	if err != nil {
		return false
	}
	defer all.Release()

	v, err := TryToScalar[bool](all)
	return err == nil && v
}

// maxListed is the element count below which String lists a 1D tensor.
const maxListed = 10

// String renders small tensors by value and everything else as a summary.
func (t *Tensor) String() string {
	kind := t.Kind()
	if kind.IsComplex() || kind == Bool || t.Rank() > 1 || t.NumElements() >= maxListed {
		return t.summary()
	}
	values, err := t.formatValues()
	if err != nil {
		return t.summary()
	}
	return "[" + strings.Join(values, ", ") + "]"
}

func (t *Tensor) summary() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.Kind(), t.raw.Shape(), t.Device())
}

func (t *Tensor) formatValues() ([]string, error) {
	kind := t.Kind()
	if kind.IsInteger() {
		values, err := TryToSlice[int64](t)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = strconv.FormatInt(v, 10)
		}
		return out, nil
	}

	bits := 32
	if kind == Float64 {
		bits = 64
	}
	values, err := TryToSlice[float64](t)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'g', -1, bits)
	}
	return out, nil
}
