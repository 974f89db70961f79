package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NormalizeDim(t *testing.T) {
	s := Shape{2, 3, 4}
	for dim, want := range map[int]int{0: 0, 2: 2, -1: 2, -3: 0} {
		got, err := s.NormalizeDim(dim)
		require.NoError(t, err)
		assert.Equal(t, want, got, "dim %d", dim)
	}

	for _, dim := range []int{3, -4} {
		_, err := s.NormalizeDim(dim)
		assert.Error(t, err, "dim %d", dim)
	}

	_, err := Shape{}.NormalizeDim(0)
	assert.Error(t, err)
}

func TestShape_Infer(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		n     int
		want  Shape
		err   bool
	}{
		{"Known", Shape{2, 3}, 6, Shape{2, 3}, false},
		{"Leading", Shape{-1, 4}, 12, Shape{3, 4}, false},
		{"Trailing", Shape{2, -1}, 12, Shape{2, 6}, false},
		{"Scalar", Shape{}, 1, Shape{}, false},
		{"ZeroElements", Shape{0, -1}, 0, nil, true},
		{"TwoUnknown", Shape{-1, -1}, 4, nil, true},
		{"NotDivisible", Shape{-1, 5}, 12, nil, true},
		{"WrongCount", Shape{2, 2}, 6, nil, true},
		{"Negative", Shape{-2, 3}, 6, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.shape.Infer(tt.n)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b      Shape
		want      Shape
		broadcast bool
		err       bool
	}{
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{}, Shape{2, 2}, Shape{2, 2}, true, false},
		{Shape{2, 1, 4}, Shape{3, 1}, Shape{2, 3, 4}, true, false},
		{Shape{0}, Shape{1}, Shape{0}, true, false},
		{Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if tt.err {
			assert.Error(t, err, "%v vs %v", tt.a, tt.b)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v vs %v", tt.a, tt.b)
		assert.Equal(t, tt.broadcast, broadcast, "%v vs %v", tt.a, tt.b)
	}
}
