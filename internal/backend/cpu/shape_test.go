package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/facade/internal/tensor"
)

func TestCPUBackend_Reshape(t *testing.T) {
	backend := newTestBackend()
	x := fromSlice(t, backend, []int32{1, 2, 3, 4, 5, 6}, 2, 3)

	tests := []struct {
		name  string
		shape tensor.Shape
		want  tensor.Shape
	}{
		{"Flat", tensor.Shape{6}, tensor.Shape{6}},
		{"Infer", tensor.Shape{3, -1}, tensor.Shape{3, 2}},
		{"Unsqueeze", tensor.Shape{2, 3, 1}, tensor.Shape{2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := backend.Reshape(x, tt.shape)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Shape())
			assert.True(t, out.SharesStorage(x))
		})
	}

	t.Run("Rank0", func(t *testing.T) {
		one := fromSlice(t, backend, []float32{7}, 1)
		out, err := backend.Reshape(one, tensor.Shape{})
		require.NoError(t, err)
		assert.Empty(t, out.Shape())
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := backend.Reshape(x, tensor.Shape{4, -1})
		assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
		_, err = backend.Reshape(x, tensor.Shape{-1, -1})
		assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	})
}

func TestCPUBackend_To(t *testing.T) {
	gpu := tensor.Accelerator(tensor.Metal, 0)
	backend := New(WithDevices(gpu))
	x := fromSlice(t, backend, []float32{1, 2}, 2)

	same, err := backend.To(x, tensor.Host)
	require.NoError(t, err)
	assert.True(t, same.SharesStorage(x))

	moved, err := backend.To(x, gpu)
	require.NoError(t, err)
	assert.Equal(t, gpu, moved.Device())
	assert.False(t, moved.SharesStorage(x))
	assert.Equal(t, []float32{1, 2}, values[float32](t, backend, moved))

	_, err = backend.To(x, tensor.Accelerator(tensor.CUDA, 3))
	assert.ErrorIs(t, err, tensor.ErrDeviceMismatch)
}

func TestCPUBackend_CopyInplace(t *testing.T) {
	backend := newTestBackend()

	t.Run("CastAndBroadcast", func(t *testing.T) {
		dst, err := backend.Zeros(tensor.Shape{2, 2}, tensor.Float64, tensor.Host)
		require.NoError(t, err)
		require.NoError(t, backend.CopyInplace(dst, fromSlice(t, backend, []int32{3, 4}, 2)))
		assert.Equal(t, []float64{3, 4, 3, 4}, values[float64](t, backend, dst))
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		dst, err := backend.Zeros(tensor.Shape{2}, tensor.Float32, tensor.Host)
		require.NoError(t, err)
		err = backend.CopyInplace(dst, fromSlice(t, backend, []float32{1, 2, 3, 4}, 2, 2))
		assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	})
}
