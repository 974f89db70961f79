package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/facade/internal/tensor"
)

func TestCPUBackend_IndexSelect(t *testing.T) {
	backend := newTestBackend()
	x := fromSlice(t, backend, []float32{
		0, 1, 2,
		10, 11, 12,
		20, 21, 22,
		30, 31, 32,
	}, 4, 3)

	t.Run("Rows", func(t *testing.T) {
		out, err := backend.IndexSelect(x, 0, fromSlice(t, backend, []int64{3, 0, 3}, 3))
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{3, 3}, out.Shape())
		assert.Equal(t, []float32{30, 31, 32, 0, 1, 2, 30, 31, 32}, values[float32](t, backend, out))
	})

	t.Run("Columns", func(t *testing.T) {
		out, err := backend.IndexSelect(x, -1, fromSlice(t, backend, []int32{2}, 1))
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{4, 1}, out.Shape())
		assert.Equal(t, []float32{2, 12, 22, 32}, values[float32](t, backend, out))
	})

	t.Run("Complex", func(t *testing.T) {
		c := fromSlice(t, backend, []complex128{1i, 2i, 3i}, 3)
		out, err := backend.IndexSelect(c, 0, fromSlice(t, backend, []int64{1}, 1))
		require.NoError(t, err)
		assert.Equal(t, []complex128{2i}, values[complex128](t, backend, out))
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := backend.IndexSelect(x, 0, fromSlice(t, backend, []int64{4}, 1))
		assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
	})

	t.Run("FloatIndex", func(t *testing.T) {
		_, err := backend.IndexSelect(x, 0, fromSlice(t, backend, []float32{1}, 1))
		assert.ErrorIs(t, err, tensor.ErrKindMismatch)
	})

	t.Run("MatrixIndex", func(t *testing.T) {
		_, err := backend.IndexSelect(x, 0, fromSlice(t, backend, []int64{1, 2}, 1, 2))
		assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	})
}

func TestCPUBackend_ScatterValue(t *testing.T) {
	backend := newTestBackend()

	t.Run("OneHot", func(t *testing.T) {
		x, err := backend.Zeros(tensor.Shape{2, 4}, tensor.Float32, tensor.Host)
		require.NoError(t, err)
		index := fromSlice(t, backend, []int64{0, 2}, 2, 1)
		require.NoError(t, backend.ScatterValue(x, -1, index, tensor.FloatScalar(1)))
		assert.Equal(t, []float32{1, 0, 0, 0, 0, 0, 1, 0}, values[float32](t, backend, x))
	})

	t.Run("Dim0", func(t *testing.T) {
		x, err := backend.Zeros(tensor.Shape{3, 2}, tensor.Int64, tensor.Host)
		require.NoError(t, err)
		index := fromSlice(t, backend, []int64{2, 1}, 1, 2)
		require.NoError(t, backend.ScatterValue(x, 0, index, tensor.IntScalar(7)))
		assert.Equal(t, []int64{0, 0, 0, 7, 7, 0}, values[int64](t, backend, x))
	})

	t.Run("NoPartialWrite", func(t *testing.T) {
		x, err := backend.Zeros(tensor.Shape{2, 3}, tensor.Float32, tensor.Host)
		require.NoError(t, err)
		index := fromSlice(t, backend, []int64{1, 5}, 2, 1)
		err = backend.ScatterValue(x, 1, index, tensor.FloatScalar(1))
		assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
		assert.Equal(t, make([]float32, 6), values[float32](t, backend, x))
	})

	t.Run("RankMismatch", func(t *testing.T) {
		x, err := backend.Zeros(tensor.Shape{2, 3}, tensor.Float32, tensor.Host)
		require.NoError(t, err)
		err = backend.ScatterValue(x, 1, fromSlice(t, backend, []int64{1, 0}, 2), tensor.FloatScalar(1))
		assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	})
}
