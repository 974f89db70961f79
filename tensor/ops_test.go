// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/facade/tensor"
)

func TestOps_ScalarOnTheLeft(t *testing.T) {
	backend := newBackend()
	x := tensor.FromSlice([]float64{1, 2, 4}, backend)

	assert.Equal(t, []float64{11, 12, 14}, tensor.ScalarAdd(tensor.Float(10), x).Float64s())
	assert.Equal(t, []float64{9, 8, 6}, tensor.ScalarSub(tensor.Float(10), x).Float64s())
	assert.Equal(t, []float64{10, 20, 40}, tensor.ScalarMul(tensor.Float(10), x).Float64s())
	assert.Equal(t, []float64{8, 4, 2}, tensor.ScalarDiv(tensor.Float(8), x).Float64s())

	// Operands are untouched.
	assert.Equal(t, []float64{1, 2, 4}, x.Float64s())
}

func TestOps_TensorTensor(t *testing.T) {
	backend := newBackend()
	a := tensor.FromSlice2([][]float32{{1, 2, 3}, {4, 5, 6}}, backend)
	b := tensor.FromSlice([]float32{10, 20, 30}, backend)

	tests := []struct {
		name string
		got  *tensor.Tensor
		want [][]float32
	}{
		{"Add", a.Add(b), [][]float32{{11, 22, 33}, {14, 25, 36}}},
		{"Sub", a.Sub(b), [][]float32{{-9, -18, -27}, {-6, -15, -24}}},
		{"Mul", a.Mul(b), [][]float32{{10, 40, 90}, {40, 100, 180}}},
		{"Div", b.Div(a), [][]float32{{10, 10, 10}, {2.5, 4, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tensor.Shape{2, 3}, tt.got.Shape())
			assert.Equal(t, tt.want, tensor.ToSlice2[float32](tt.got))
		})
	}
}

func TestOps_Errors(t *testing.T) {
	backend := newBackend()
	f32 := tensor.FromSlice([]float32{1, 2, 3}, backend)

	t.Run("ShapeMismatch", func(t *testing.T) {
		_, err := f32.TryAdd(tensor.FromSlice([]float32{1, 2}, backend))
		require.ErrorIs(t, err, tensor.ErrShapeMismatch)

		var terr *tensor.Error
		require.True(t, errors.As(err, &terr))
		assert.Equal(t, "add", terr.Op)
	})

	t.Run("KindMismatch", func(t *testing.T) {
		_, err := f32.TryMul(tensor.FromSlice([]float64{1, 2, 3}, backend))
		require.ErrorIs(t, err, tensor.ErrKindMismatch)
	})

	t.Run("DeviceMismatch", func(t *testing.T) {
		_, err := f32.TrySub(f32.ToDevice(gpu))
		require.ErrorIs(t, err, tensor.ErrDeviceMismatch)
	})

	t.Run("IntegerDivisionByZero", func(t *testing.T) {
		x := tensor.FromSlice([]int32{4, 5}, backend)
		_, err := x.TryDiv(tensor.FromSlice([]int32{2, 0}, backend))
		require.ErrorIs(t, err, tensor.ErrInvalidArgument)
	})

	t.Run("BoolArithmetic", func(t *testing.T) {
		x := tensor.FromSlice([]bool{true, false}, backend)
		_, err := x.TryAdd(x)
		require.ErrorIs(t, err, tensor.ErrUnsupported)
	})

	t.Run("PanicCarriesEngineMessage", func(t *testing.T) {
		other := tensor.FromSlice([]float32{1, 2}, backend)
		_, err := f32.TryAdd(other)
		require.Error(t, err)
		assert.PanicsWithError(t, err.Error(), func() { f32.Add(other) })
	})
}

func TestOps_ScalarPromotion(t *testing.T) {
	backend := newBackend()
	x := tensor.FromSlice([]int64{1, 2, 3}, backend)

	t.Run("IntScalarKeepsKind", func(t *testing.T) {
		y := x.MulScalar(tensor.Int(2))
		assert.Equal(t, tensor.Int64, y.Kind())
		assert.Equal(t, []int64{2, 4, 6}, y.Int64s())
	})

	t.Run("FloatScalarPromotes", func(t *testing.T) {
		y := x.AddScalar(tensor.Float(0.5))
		assert.Equal(t, tensor.Float32, y.Kind())
		assert.Equal(t, []float64{1.5, 2.5, 3.5}, y.Float64s())
	})

	t.Run("IntegerDivisionTruncates", func(t *testing.T) {
		y := tensor.FromSlice([]int32{7, -7}, backend).DivScalar(tensor.Int(2))
		assert.Equal(t, []int64{3, -3}, y.Int64s())
	})

	t.Run("IntegerReciprocalUnsupported", func(t *testing.T) {
		_, err := tensor.TryScalarDiv(tensor.Int(6), x)
		require.ErrorIs(t, err, tensor.ErrUnsupported)
	})

	t.Run("FloatReciprocalOfInteger", func(t *testing.T) {
		y := tensor.ScalarDiv(tensor.Float(6), x)
		assert.Equal(t, tensor.Float32, y.Kind())
		assert.InDeltaSlice(t, []float64{6, 3, 2}, y.Float64s(), 1e-5)
	})

	t.Run("ScalarOf", func(t *testing.T) {
		assert.Equal(t, []int64{4, 5, 6}, x.AddScalar(tensor.ScalarOf(3)).Int64s())
		assert.Equal(t, tensor.Float32, x.AddScalar(tensor.ScalarOf(3.0)).Kind())
	})
}

func TestOps_Assign(t *testing.T) {
	backend := newBackend()

	t.Run("VisibleThroughAliases", func(t *testing.T) {
		x := tensor.FromSlice([]float64{1, 2, 3}, backend)
		alias := x.ShallowClone()
		x.AddAssign(tensor.FromSlice([]float64{10}, backend))
		assert.Equal(t, []float64{11, 12, 13}, alias.Float64s())

		x.SubAssign(tensor.FromSlice([]float64{1, 1, 1}, backend))
		x.MulAssign(tensor.FromSlice([]float64{2, 2, 2}, backend))
		x.DivAssign(tensor.FromSlice([]float64{4}, backend))
		assert.Equal(t, []float64{5, 5.5, 6}, alias.Float64s())
	})

	t.Run("Scalars", func(t *testing.T) {
		x := tensor.FromSlice([]int32{10, 20}, backend)
		x.AddAssignScalar(tensor.Int(2))
		x.SubAssignScalar(tensor.Int(4))
		x.MulAssignScalar(tensor.Int(3))
		x.DivAssignScalar(tensor.Int(2))
		assert.Equal(t, []int64{12, 27}, x.Int64s())
	})

	t.Run("TargetMustNotGrow", func(t *testing.T) {
		x := tensor.FromSlice([]float32{1}, backend)
		assert.Panics(t, func() { x.AddAssign(tensor.FromSlice([]float32{1, 2}, backend)) })
		assert.Equal(t, []float64{1}, x.Float64s())
	})

	t.Run("PromotedKindRejected", func(t *testing.T) {
		x := tensor.FromSlice([]int64{1, 2}, backend)
		assert.PanicsWithError(t, "add_scalar_: kind mismatch: result kind float32 cannot be stored in int64 tensor", func() {
			x.AddAssignScalar(tensor.Float(0.5))
		})
		assert.Equal(t, []int64{1, 2}, x.Int64s())
	})
}

func TestOps_Unary(t *testing.T) {
	backend := newBackend()

	t.Run("Neg", func(t *testing.T) {
		x := tensor.FromSlice([]int16{1, -2, 0}, backend)
		assert.Equal(t, []int64{-1, 2, 0}, x.Neg().Int64s())
	})

	t.Run("Pow", func(t *testing.T) {
		x := tensor.FromSlice([]float64{1, 2, 3}, backend)
		assert.Equal(t, []float64{1, 4, 9}, x.Pow(tensor.Int(2)).Float64s())
		assert.Equal(t, []int64{1, 8, 27}, tensor.FromSlice([]int64{1, 2, 3}, backend).Pow(tensor.Int(3)).Int64s())
	})

	t.Run("Reciprocal", func(t *testing.T) {
		x := tensor.FromSlice([]float32{2, 4, 0.5}, backend)
		assert.Equal(t, []float64{0.5, 0.25, 2}, x.Reciprocal().Float64s())
	})

	t.Run("NegBool", func(t *testing.T) {
		_, err := tensor.FromSlice([]bool{true}, backend).TryNeg()
		require.ErrorIs(t, err, tensor.ErrUnsupported)
	})
}

func TestOps_Sum(t *testing.T) {
	backend := newBackend()

	t.Run("Empty", func(t *testing.T) {
		s := tensor.Sum(backend)
		assert.Equal(t, 0, s.Rank())
		assert.Equal(t, tensor.Float64, s.Kind())
		assert.Equal(t, 0.0, s.Float64())
	})

	t.Run("Single", func(t *testing.T) {
		x := tensor.FromSlice([]int64{1, 2}, backend)
		s := tensor.Sum(backend, x)
		assert.True(t, s.Equal(x))
	})

	t.Run("Many", func(t *testing.T) {
		s := tensor.Sum(backend,
			tensor.FromSlice([]float32{1, 2}, backend),
			tensor.FromSlice([]float32{10, 20}, backend),
			tensor.FromSlice([]float32{100}, backend),
		)
		assert.Equal(t, []float64{111, 122}, s.Float64s())
	})

	t.Run("MismatchedKinds", func(t *testing.T) {
		_, err := tensor.TrySum(backend,
			tensor.FromSlice([]float32{1}, backend),
			tensor.FromSlice([]int64{1}, backend),
		)
		require.ErrorIs(t, err, tensor.ErrKindMismatch)
	})
}
