// Copyright 2025 Strata ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-ml/strata/array"
	_ "github.com/strata-ml/strata/backend/native"
)

func TestDefaultDeviceIsNative(t *testing.T) {
	assert.Equal(t, array.KindNative, array.DefaultDevice().Kind)
}

func TestZeroDeviceTargetsDefault(t *testing.T) {
	a, err := array.Zeros(array.Shape{2, 2}, array.Float32, array.Device{})
	require.NoError(t, err)
	assert.Equal(t, array.DefaultDevice(), a.Device())
}

func TestWithDefaultDeviceScoped(t *testing.T) {
	d := array.Device{Kind: array.KindNative, Index: 3}
	restore := array.WithDefaultDevice(d)
	a, err := array.Zeros(array.Shape{1}, array.Float32, array.Device{})
	restore()

	require.NoError(t, err)
	assert.Equal(t, d, a.Device())
	assert.Equal(t, array.Device{Kind: array.KindNative}, array.DefaultDevice())
}

func TestUnavailableBackendFailsFast(t *testing.T) {
	// No webgpu backend is imported in this test binary, so webgpu
	// devices have no allocator and creation fails immediately.
	_, err := array.Zeros(array.Shape{2}, array.Float32, array.Device{Kind: array.KindWebGPU})
	assert.ErrorIs(t, err, array.ErrNotRegistered)
}

func TestArangeRoundTrip(t *testing.T) {
	a, err := array.Arange(array.IntScalar(0), array.IntScalar(10), array.IntScalar(3), array.DtypeInvalid, array.Device{})
	require.NoError(t, err)
	assert.Equal(t, array.Int64, a.Dtype())
	assert.Equal(t, []int64{0, 3, 6, 9}, a.AsInt64())
}

func TestFromSliceAndDiagView(t *testing.T) {
	m, err := array.FromSlice([]float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, array.Shape{3, 3}, array.Device{})
	require.NoError(t, err)

	d, err := array.Diag(m, 1, array.Device{})
	require.NoError(t, err)
	require.Equal(t, array.Shape{2}, d.Shape())
	assert.Equal(t, 2.0, d.At(0).Float64())
	assert.Equal(t, 6.0, d.At(1).Float64())

	// The diagonal is a view: writes show up in the matrix.
	d.SetAt(array.FloatScalar(-1), 0)
	assert.Equal(t, -1.0, m.At(0, 1).Float64())
}

func TestDiagflatBuildsMatrix(t *testing.T) {
	v, err := array.FromSlice([]float64{1, 2}, array.Shape{2}, array.Device{})
	require.NoError(t, err)

	m, err := array.Diagflat(v, 0, array.Device{})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 2}, m.AsFloat64())
}

func TestLinspaceThenAsContiguous(t *testing.T) {
	a, err := array.Linspace(array.FloatScalar(0), array.FloatScalar(1), 5, true, array.Float64, array.Device{})
	require.NoError(t, err)

	b, err := array.AsContiguousArray(a, array.DtypeInvalid)
	require.NoError(t, err)
	assert.Same(t, a, b, "contiguous result passes through untouched")
	assert.Equal(t, 1.0, b.At(4).Float64())
}

func TestAsContiguousArrayCastsThroughFacade(t *testing.T) {
	a, err := array.FromSlice([]int32{1, 2, 3}, array.Shape{3}, array.Device{})
	require.NoError(t, err)

	b, err := array.AsContiguousArray(a, array.Float32)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, b.AsFloat32())
}

func TestCopySevers(t *testing.T) {
	src, err := array.Ones(array.Shape{2, 2}, array.Float32, array.Device{})
	require.NoError(t, err)

	dst, err := array.Copy(src)
	require.NoError(t, err)
	dst.SetAt(array.FloatScalar(5), 0, 0)
	assert.Equal(t, 1.0, src.At(0, 0).Float64())
}

func TestEyeFacade(t *testing.T) {
	a, err := array.Eye(2, -1, 0, array.DtypeInvalid, array.Device{})
	require.NoError(t, err)
	assert.Equal(t, array.Shape{2, 2}, a.Shape())
	assert.Equal(t, array.Float32, a.Dtype())
	assert.Equal(t, []float32{1, 0, 0, 1}, a.AsFloat32())
}

func TestRequiredBytesFacade(t *testing.T) {
	assert.Equal(t, 24, array.RequiredBytes(array.Shape{2, 3}, array.Strides{12, 4}, 4))
	assert.Equal(t, 0, array.RequiredBytes(array.Shape{0}, array.Strides{4}, 4))
}

func TestFromHostDataFacadeBounds(t *testing.T) {
	_, err := array.FromHostData(array.Shape{4}, array.Float64, make([]byte, 16), array.Strides{8}, 0, array.Device{})
	assert.ErrorIs(t, err, array.ErrPrecondition)
}
