package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/facade/internal/tensor"
)

func TestCPUBackend_Neg(t *testing.T) {
	backend := newTestBackend()

	t.Run("Float32", func(t *testing.T) {
		out, err := backend.Neg(fromSlice(t, backend, []float32{1, -2, 0}, 3))
		require.NoError(t, err)
		assert.Equal(t, []float32{-1, 2, 0}, values[float32](t, backend, out))
	})

	t.Run("Int16", func(t *testing.T) {
		out, err := backend.Neg(fromSlice(t, backend, []int16{5, -7}, 2))
		require.NoError(t, err)
		assert.Equal(t, []int16{-5, 7}, values[int16](t, backend, out))
	})

	t.Run("BFloat16", func(t *testing.T) {
		x, err := backend.Cast(fromSlice(t, backend, []float32{1.5, -3}, 2), tensor.BFloat16)
		require.NoError(t, err)
		out, err := backend.Neg(x)
		require.NoError(t, err)
		assert.Equal(t, tensor.BFloat16, out.DType())
		assert.Equal(t, []float64{-1.5, 3}, loadFloat64(out))
	})

	t.Run("Bool", func(t *testing.T) {
		_, err := backend.Neg(fromSlice(t, backend, []bool{true}, 1))
		assert.ErrorIs(t, err, tensor.ErrUnsupported)
	})
}

func TestCPUBackend_Pow(t *testing.T) {
	backend := newTestBackend()

	tests := []struct {
		name string
		x    *tensor.RawTensor
		exp  tensor.Scalar
		kind tensor.DataType
		want []float64
	}{
		{"FloatSquare", fromSlice(t, backend, []float32{1, 2, 3}, 3), tensor.IntScalar(2), tensor.Float32, []float64{1, 4, 9}},
		{"FloatReciprocal", fromSlice(t, backend, []float64{1, 2, 4}, 3), tensor.IntScalar(-1), tensor.Float64, []float64{1, 0.5, 0.25}},
		{"FloatSqrt", fromSlice(t, backend, []float64{4, 9}, 2), tensor.FloatScalar(0.5), tensor.Float64, []float64{2, 3}},
		{"IntCube", fromSlice(t, backend, []int64{2, -3}, 2), tensor.IntScalar(3), tensor.Int64, []float64{8, -27}},
		{"IntZero", fromSlice(t, backend, []int32{0, 5}, 2), tensor.IntScalar(0), tensor.Int32, []float64{1, 1}},
		{"IntFloatExponent", fromSlice(t, backend, []int64{4, 16}, 2), tensor.FloatScalar(0.5), tensor.Float32, []float64{2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := backend.Pow(tt.x, tt.exp)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, out.DType())
			assert.InDeltaSlice(t, tt.want, loadFloat64(out), 1e-6)
		})
	}

	t.Run("ZeroReciprocal", func(t *testing.T) {
		out, err := backend.Pow(fromSlice(t, backend, []float32{0}, 1), tensor.IntScalar(-1))
		require.NoError(t, err)
		assert.True(t, math.IsInf(loadFloat64(out)[0], 1))
	})

	t.Run("IntNegativeExponent", func(t *testing.T) {
		_, err := backend.Pow(fromSlice(t, backend, []int64{2}, 1), tensor.IntScalar(-1))
		assert.ErrorIs(t, err, tensor.ErrUnsupported)
	})

	t.Run("Complex", func(t *testing.T) {
		out, err := backend.Pow(fromSlice(t, backend, []complex128{2i}, 1), tensor.IntScalar(-1))
		require.NoError(t, err)
		got := values[complex128](t, backend, out)[0]
		assert.InDelta(t, 0, real(got), 1e-12)
		assert.InDelta(t, -0.5, imag(got), 1e-12)
	})
}
