package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-ml/strata/internal/array"
)

var nativeDevice = array.Device{Kind: array.KindNative}

func TestAllocateZeroed(t *testing.T) {
	b := New()
	data, err := b.Allocate(32)
	require.NoError(t, err)
	require.Len(t, data, 32)
	for _, v := range data {
		assert.Zero(t, v)
	}
}

func TestAllocateNegative(t *testing.T) {
	_, err := New().Allocate(-1)
	assert.ErrorIs(t, err, array.ErrInvalidArgument)
}

func TestBackendMetadata(t *testing.T) {
	b := New()
	assert.Equal(t, "native", b.Name())
	assert.Equal(t, array.KindNative, b.Kind())
}

func TestOpsRejectForeignDevice(t *testing.T) {
	out, err := array.NewArray(array.Shape{2}, array.Float32, make([]byte, 8), nil, 0, array.Device{Kind: array.KindWebGPU})
	require.NoError(t, err)

	assert.ErrorIs(t, fillOp{}.Call(array.IntScalar(0), out), array.ErrPrecondition)
	assert.ErrorIs(t, identityOp{}.Call(out), array.ErrPrecondition)
}

func TestFill(t *testing.T) {
	a, err := array.Full(array.Shape{2, 3}, array.FloatScalar(1.5), array.Float32, nativeDevice)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, 1.5, a.At(i, j).Float64())
		}
	}
}

func TestFillStridedView(t *testing.T) {
	// Fill through a reversed view and check the storage order.
	storage := make([]byte, 16)
	out, err := array.NewArray(array.Shape{4}, array.Int32, storage, array.Strides{-4}, 12, nativeDevice)
	require.NoError(t, err)

	require.NoError(t, fillOp{}.Call(array.IntScalar(9), out))
	flat, err := array.NewArray(array.Shape{4}, array.Int32, storage, nil, 0, nativeDevice)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.Equal(t, int64(9), flat.At(i).Int64())
	}
}

func TestArangeInt(t *testing.T) {
	a, err := array.Arange(array.IntScalar(2), array.IntScalar(11), array.IntScalar(3), array.Int64, nativeDevice)
	require.NoError(t, err)
	require.Equal(t, array.Shape{3}, a.Shape())
	for i, want := range []int64{2, 5, 8} {
		assert.Equal(t, want, a.At(i).Int64())
	}
}

func TestArangeFloat(t *testing.T) {
	a, err := array.Arange(array.FloatScalar(0), array.FloatScalar(1), array.FloatScalar(0.25), array.Float64, nativeDevice)
	require.NoError(t, err)
	require.Equal(t, array.Shape{4}, a.Shape())
	for i, want := range []float64{0, 0.25, 0.5, 0.75} {
		assert.Equal(t, want, a.At(i).Float64())
	}
}

func TestArangeDescending(t *testing.T) {
	a, err := array.Arange(array.IntScalar(5), array.IntScalar(0), array.IntScalar(-2), array.Int32, nativeDevice)
	require.NoError(t, err)
	require.Equal(t, array.Shape{3}, a.Shape())
	for i, want := range []int64{5, 3, 1} {
		assert.Equal(t, want, a.At(i).Int64())
	}
}

func TestArangeRejectsMatrixOutput(t *testing.T) {
	out, err := array.Empty(array.Shape{2, 2}, array.Int64, nativeDevice)
	require.NoError(t, err)
	err = arangeOp{}.Call(array.IntScalar(0), array.IntScalar(1), out)
	assert.ErrorIs(t, err, array.ErrInvalidArgument)
}

func TestCopyContiguous(t *testing.T) {
	src, err := array.FromSlice([]float32{1, 2, 3, 4}, array.Shape{2, 2}, nativeDevice)
	require.NoError(t, err)

	dst, err := array.Copy(src)
	require.NoError(t, err)
	assert.False(t, dst.SharesStorageWith(src))
	assert.Equal(t, src.AsFloat32(), dst.AsFloat32())
}

func TestCopyNegativeStrideView(t *testing.T) {
	src, err := array.FromSlice([]int64{1, 2, 3, 4}, array.Shape{4}, nativeDevice)
	require.NoError(t, err)

	// Reversed view over the same storage.
	rev, err := array.NewArray(array.Shape{4}, array.Int64, src.StorageBytes(), array.Strides{-8}, 24, nativeDevice)
	require.NoError(t, err)

	dst, err := array.Copy(rev)
	require.NoError(t, err)
	assert.True(t, dst.IsContiguous())
	assert.Equal(t, []int64{4, 3, 2, 1}, dst.AsInt64())
}

func TestCopyStridedIntoStrided(t *testing.T) {
	src, err := array.EmptyWithStrides(array.Shape{2, 2}, array.Float32, array.Strides{4, 8}, nativeDevice)
	require.NoError(t, err)
	src.SetAt(array.FloatScalar(3), 0, 1)

	out, err := array.EmptyWithStrides(array.Shape{2, 2}, array.Float32, array.Strides{4, 8}, nativeDevice)
	require.NoError(t, err)
	require.NoError(t, copyOp{}.Call(src, out))
	assert.Equal(t, 3.0, out.At(0, 1).Float64())
}

func TestCopyShapeMismatch(t *testing.T) {
	a, _ := array.Zeros(array.Shape{2}, array.Float32, nativeDevice)
	b, _ := array.Zeros(array.Shape{3}, array.Float32, nativeDevice)
	assert.ErrorIs(t, copyOp{}.Call(a, b), array.ErrInvalidArgument)
}

func TestCopyDtypeMismatch(t *testing.T) {
	a, _ := array.Zeros(array.Shape{2}, array.Float32, nativeDevice)
	b, _ := array.Zeros(array.Shape{2}, array.Float64, nativeDevice)
	assert.ErrorIs(t, copyOp{}.Call(a, b), array.ErrInvalidArgument)
}

func TestAsTypeCast(t *testing.T) {
	src, err := array.FromSlice([]int32{1, 2, 3}, array.Shape{3}, nativeDevice)
	require.NoError(t, err)

	out, err := array.Empty(array.Shape{3}, array.Float64, nativeDevice)
	require.NoError(t, err)
	require.NoError(t, asTypeOp{}.Call(src, out))
	assert.Equal(t, []float64{1, 2, 3}, out.AsFloat64())
}

func TestAsTypeTruncatesFloat(t *testing.T) {
	src, err := array.FromSlice([]float32{1.9, -1.9}, array.Shape{2}, nativeDevice)
	require.NoError(t, err)

	out, err := array.Empty(array.Shape{2}, array.Int32, nativeDevice)
	require.NoError(t, err)
	require.NoError(t, asTypeOp{}.Call(src, out))
	assert.Equal(t, []int32{1, -1}, out.AsInt32())
}

func TestIdentity(t *testing.T) {
	a, err := array.Identity(3, array.Float32, nativeDevice)
	require.NoError(t, err)
	want := []float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
	assert.Equal(t, want, a.AsFloat32())
}

func TestIdentityRejectsNonSquare(t *testing.T) {
	out, err := array.Empty(array.Shape{2, 3}, array.Float32, nativeDevice)
	require.NoError(t, err)
	assert.ErrorIs(t, identityOp{}.Call(out), array.ErrInvalidArgument)
}

func TestEyeRectangular(t *testing.T) {
	a, err := array.Eye(3, 4, 1, array.Float32, nativeDevice)
	require.NoError(t, err)
	want := []float32{
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	assert.Equal(t, want, a.AsFloat32())
}

func TestEyeNegativeK(t *testing.T) {
	a, err := array.Eye(3, 3, -1, array.Float32, nativeDevice)
	require.NoError(t, err)
	want := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	assert.Equal(t, want, a.AsFloat32())
}

func TestEyeOverwritesGarbage(t *testing.T) {
	// The op zero-fills before writing the diagonal.
	out, err := array.Full(array.Shape{2, 2}, array.FloatScalar(7), array.Float32, nativeDevice)
	require.NoError(t, err)
	require.NoError(t, eyeOp{}.Call(0, out))
	assert.Equal(t, []float32{1, 0, 0, 1}, out.AsFloat32())
}

func TestDiagflatPositiveK(t *testing.T) {
	v, err := array.FromSlice([]float32{1, 2, 3}, array.Shape{3}, nativeDevice)
	require.NoError(t, err)

	a, err := array.Diagflat(v, 1, nativeDevice)
	require.NoError(t, err)
	want := []float32{
		0, 1, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 3,
		0, 0, 0, 0,
	}
	assert.Equal(t, want, a.AsFloat32())
}

func TestDiagflatNegativeK(t *testing.T) {
	v, err := array.FromSlice([]float32{1, 2}, array.Shape{2}, nativeDevice)
	require.NoError(t, err)

	a, err := array.Diagflat(v, -1, nativeDevice)
	require.NoError(t, err)
	want := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 2, 0,
	}
	assert.Equal(t, want, a.AsFloat32())
}

func TestDiagflatRejectsWrongOutShape(t *testing.T) {
	v, err := array.FromSlice([]float32{1, 2}, array.Shape{2}, nativeDevice)
	require.NoError(t, err)
	out, err := array.Empty(array.Shape{2, 2}, array.Float32, nativeDevice)
	require.NoError(t, err)

	err = diagflatOp{}.Call(v, 1, out)
	assert.ErrorIs(t, err, array.ErrInvalidArgument)
}

func TestLinspaceExactEndpoint(t *testing.T) {
	// 0.1 steps accumulate rounding error; the boundary must still be
	// exactly the requested stop.
	a, err := array.Linspace(array.FloatScalar(0), array.FloatScalar(1), 11, true, array.Float64, nativeDevice)
	require.NoError(t, err)
	vals := a.AsFloat64()
	assert.Equal(t, 0.0, vals[0])
	assert.Equal(t, 1.0, vals[10])
}

func TestLinspaceHalfOpen(t *testing.T) {
	a, err := array.Linspace(array.FloatScalar(0), array.FloatScalar(5), 5, false, array.Float64, nativeDevice)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, a.AsFloat64())
}

func TestLinspaceRejectsEmptyOutput(t *testing.T) {
	out, err := array.Empty(array.Shape{0}, array.Float32, nativeDevice)
	require.NoError(t, err)
	assert.ErrorIs(t, linspaceOp{}.Call(0, 1, out), array.ErrInvalidArgument)
}
