package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/facade/internal/tensor"
)

func TestCPUBackend_Argmax(t *testing.T) {
	backend := newTestBackend()
	x := fromSlice(t, backend, []float32{
		1, 5, 3,
		9, 2, 9,
	}, 2, 3)

	tests := []struct {
		name    string
		dim     int
		keepDim bool
		shape   tensor.Shape
		want    []int64
	}{
		{"LastDim", -1, false, tensor.Shape{2}, []int64{1, 0}},
		{"FirstDim", 0, false, tensor.Shape{3}, []int64{1, 0, 1}},
		{"KeepDim", 1, true, tensor.Shape{2, 1}, []int64{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := backend.Argmax(x, tt.dim, tt.keepDim)
			require.NoError(t, err)
			assert.Equal(t, tensor.Int64, out.DType())
			assert.Equal(t, tt.shape, out.Shape())
			assert.Equal(t, tt.want, values[int64](t, backend, out))
		})
	}

	t.Run("NaNIsMax", func(t *testing.T) {
		nan := fromSlice(t, backend, []float64{1, math.NaN(), 7}, 3)
		out, err := backend.Argmax(nan, 0, false)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, values[int64](t, backend, out))
	})

	t.Run("Integers", func(t *testing.T) {
		ints := fromSlice(t, backend, []int64{1 << 60, 1<<60 + 1}, 2)
		out, err := backend.Argmax(ints, 0, false)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, values[int64](t, backend, out))
	})

	t.Run("Rank0", func(t *testing.T) {
		scalar := fromSlice(t, backend, []float32{3})
		out, err := backend.Argmax(scalar, -1, false)
		require.NoError(t, err)
		assert.Empty(t, out.Shape())
		assert.Equal(t, []int64{0}, values[int64](t, backend, out))
	})

	t.Run("BadDim", func(t *testing.T) {
		_, err := backend.Argmax(x, 2, false)
		assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
	})
}

func TestCPUBackend_All(t *testing.T) {
	backend := newTestBackend()

	tests := []struct {
		name string
		x    *tensor.RawTensor
		want bool
	}{
		{"AllTrue", fromSlice(t, backend, []bool{true, true}, 2), true},
		{"OneFalse", fromSlice(t, backend, []bool{true, false}, 2), false},
		{"Ints", fromSlice(t, backend, []int32{1, 2, 3}, 3), true},
		{"ZeroFloat", fromSlice(t, backend, []float32{1, 0}, 2), false},
		{"Empty", fromSlice(t, backend, []bool{}, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := backend.All(tt.x)
			require.NoError(t, err)
			assert.Equal(t, tensor.Bool, out.DType())
			assert.Empty(t, out.Shape())
			assert.Equal(t, []bool{tt.want}, values[bool](t, backend, out))
		})
	}
}

func TestCPUBackend_Mean(t *testing.T) {
	backend := newTestBackend()

	out, err := backend.Mean(fromSlice(t, backend, []float32{1, 2, 3, 6}, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, out.DType())
	assert.Empty(t, out.Shape())
	assert.Equal(t, []float32{3}, values[float32](t, backend, out))

	c, err := backend.Mean(fromSlice(t, backend, []complex64{1 + 1i, 3 - 1i}, 2))
	require.NoError(t, err)
	assert.Equal(t, []complex64{2}, values[complex64](t, backend, c))

	empty, err := backend.Mean(fromSlice(t, backend, []float64{}, 0))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(values[float64](t, backend, empty)[0]))

	_, err = backend.Mean(fromSlice(t, backend, []int64{1, 2}, 2))
	assert.ErrorIs(t, err, tensor.ErrUnsupported)
}

func TestCPUBackend_Equal(t *testing.T) {
	backend := newTestBackend()

	a := fromSlice(t, backend, []int64{1, 2, 3, 4}, 2, 2)
	b := fromSlice(t, backend, []int64{1, 4}, 2)
	out, err := backend.Equal(a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Bool, out.DType())
	assert.Equal(t, []bool{true, false, false, true}, values[bool](t, backend, out))

	nan := fromSlice(t, backend, []float32{float32(math.NaN()), 1}, 2)
	out, err = backend.Equal(nan, nan)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, values[bool](t, backend, out))

	_, err = backend.Equal(a, fromSlice(t, backend, []int32{1}, 1))
	assert.ErrorIs(t, err, tensor.ErrKindMismatch)
}
