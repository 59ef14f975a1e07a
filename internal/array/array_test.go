package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArrayStorageTooSmall(t *testing.T) {
	data := make([]byte, 8)
	_, err := NewArray(Shape{2, 3}, Float32, data, nil, 0, testDevice)
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestNewArrayNegativeDim(t *testing.T) {
	_, err := NewArray(Shape{-1}, Float32, make([]byte, 16), nil, 0, testDevice)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewArrayNegativeStrideView(t *testing.T) {
	// A reversed view anchored at the last element fits exactly.
	a, err := NewArray(Shape{4}, Int64, make([]byte, 32), Strides{-8}, 24, testDevice)
	require.NoError(t, err)
	assert.Equal(t, 32, a.NBytes())

	// Anchored too low, the view reaches below the block.
	_, err = NewArray(Shape{4}, Int64, make([]byte, 32), Strides{-8}, 16, testDevice)
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestNewArrayDefaultStrides(t *testing.T) {
	a, err := NewArray(Shape{2, 3}, Float32, make([]byte, 24), nil, 0, testDevice)
	require.NoError(t, err)
	assert.Equal(t, Strides{12, 4}, a.Strides())
	assert.True(t, a.IsContiguous())
}

func TestArrayAtSetAt(t *testing.T) {
	a, err := NewArray(Shape{2, 3}, Float64, make([]byte, 48), nil, 0, testDevice)
	require.NoError(t, err)

	a.SetAt(FloatScalar(2.5), 1, 2)
	assert.Equal(t, 2.5, a.At(1, 2).Float64())
	assert.Equal(t, 0.0, a.At(0, 0).Float64())
}

func TestArrayAtBoundsPanics(t *testing.T) {
	a, _ := NewArray(Shape{2, 3}, Float32, make([]byte, 24), nil, 0, testDevice)
	assert.Panics(t, func() { a.At(2, 0) })
	assert.Panics(t, func() { a.At(0) })
}

func TestArrayItem(t *testing.T) {
	a, _ := NewArray(Shape{}, Int64, make([]byte, 8), nil, 0, testDevice)
	a.SetAt(IntScalar(7))
	assert.Equal(t, int64(7), a.Item().Int64())

	b, _ := NewArray(Shape{2}, Int64, make([]byte, 16), nil, 0, testDevice)
	assert.Panics(t, func() { b.Item() })
}

func TestScalarRoundTripPerDtype(t *testing.T) {
	tests := []struct {
		dtype Dtype
		in    Scalar
		want  float64
	}{
		{Bool, BoolScalar(true), 1},
		{Uint8, IntScalar(200), 200},
		{Int32, IntScalar(-5), -5},
		{Int64, IntScalar(1 << 40), float64(int64(1) << 40)},
		{Float16, FloatScalar(0.5), 0.5},
		{Float32, FloatScalar(-1.25), -1.25},
		{Float64, FloatScalar(3.141592653589793), 3.141592653589793},
	}
	for _, tt := range tests {
		t.Run(tt.dtype.String(), func(t *testing.T) {
			a, err := NewArray(Shape{1}, tt.dtype, make([]byte, tt.dtype.Size()), nil, 0, testDevice)
			require.NoError(t, err)
			a.SetAt(tt.in, 0)
			assert.Equal(t, tt.want, a.At(0).Float64())
		})
	}
}

func TestArrayCloneShares(t *testing.T) {
	a, _ := NewArray(Shape{4}, Float32, make([]byte, 16), nil, 0, testDevice)
	a.SetAt(FloatScalar(1), 0)

	c := a.Clone()
	assert.True(t, a.SharesStorageWith(c))
	assert.False(t, a.IsUniqueStorage())

	c.SetAt(FloatScalar(9), 0)
	assert.Equal(t, 9.0, a.At(0).Float64(), "clone writes through shared storage")
}

func TestArrayRelease(_ *testing.T) {
	a, _ := NewArray(Shape{2}, Float32, make([]byte, 8), nil, 0, testDevice)
	c := a.Clone()
	a.Release()
	c.Release()
}

func TestAsFloat32ZeroCopy(t *testing.T) {
	a, _ := NewArray(Shape{3}, Float32, make([]byte, 12), nil, 0, testDevice)
	s := a.AsFloat32()
	require.Len(t, s, 3)

	s[1] = 5
	assert.Equal(t, 5.0, a.At(1).Float64())
}

func TestAsFloat32RequiresContiguous(t *testing.T) {
	a, _ := NewArray(Shape{2}, Float32, make([]byte, 16), Strides{8}, 0, testDevice)
	assert.Panics(t, func() { a.AsFloat32() })

	b, _ := NewArray(Shape{2}, Int32, make([]byte, 8), nil, 0, testDevice)
	assert.Panics(t, func() { b.AsFloat32() }, "dtype mismatch")
}

func TestNBytesStridedView(t *testing.T) {
	// A column view over a 2x3 float32 matrix addresses 16 bytes, not 24.
	a, err := NewArray(Shape{2}, Float32, make([]byte, 24), Strides{12}, 0, testDevice)
	require.NoError(t, err)
	assert.Equal(t, 16, a.NBytes())
}

func TestDiagonalView(t *testing.T) {
	// 3x4 int32 matrix with entries i*10+j.
	a, err := NewArray(Shape{3, 4}, Int32, make([]byte, 48), nil, 0, testDevice)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			a.SetAt(IntScalar(int64(i*10+j)), i, j)
		}
	}

	tests := []struct {
		k    int
		want []int64
	}{
		{0, []int64{0, 11, 22}},
		{1, []int64{1, 12, 23}},
		{3, []int64{3}},
		{-1, []int64{10, 21}},
		{-2, []int64{20, 31}},
		{5, nil},
		{-4, nil},
	}
	for _, tt := range tests {
		d, err := a.DiagonalView(tt.k)
		require.NoError(t, err, "k=%d", tt.k)
		require.Equal(t, Shape{len(tt.want)}, d.Shape(), "k=%d", tt.k)
		for i, want := range tt.want {
			assert.Equal(t, want, d.At(i).Int64(), "k=%d i=%d", tt.k, i)
		}
		assert.True(t, d.SharesStorageWith(a))
	}
}

func TestDiagonalViewWritesThrough(t *testing.T) {
	a, _ := NewArray(Shape{2, 2}, Float32, make([]byte, 16), nil, 0, testDevice)
	d, err := a.DiagonalView(0)
	require.NoError(t, err)

	d.SetAt(FloatScalar(7), 1)
	assert.Equal(t, 7.0, a.At(1, 1).Float64())
}

func TestDiagonalViewRequires2Dim(t *testing.T) {
	a, _ := NewArray(Shape{4}, Float32, make([]byte, 16), nil, 0, testDevice)
	_, err := a.DiagonalView(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
