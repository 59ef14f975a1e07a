package webgpu

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/strata-ml/strata/internal/array"
)

// backendFor validates that out lives on a WebGPU device and returns
// the shared backend instance.
func backendFor(out *array.Array) (*Backend, error) {
	if out.Device().Kind != array.KindWebGPU {
		return nil, errors.Wrapf(array.ErrPrecondition, "output array on %s, executing backend is webgpu", out.Device())
	}
	b, err := Shared()
	if err != nil {
		return nil, errors.Wrap(err, "webgpu backend unavailable")
	}
	return b, nil
}

// gpuEligible reports whether out can be produced by a compute shader
// directly: float32 elements laid out contiguously from offset zero.
// Everything else takes the host path into the array's storage.
func gpuEligible(out *array.Array) bool {
	return out.Dtype() == array.Float32 && out.IsContiguous() && out.NumElements() > 0
}

type fillOp struct{}

func (fillOp) Call(value array.Scalar, out *array.Array) error {
	b, err := backendFor(out)
	if err != nil {
		return err
	}
	if gpuEligible(out) {
		params := make([]byte, 16)
		//nolint:gosec // G115: Safe conversion, NumElements() returns non-negative int
		binary.LittleEndian.PutUint32(params[0:4], uint32(out.NumElements()))
		binary.LittleEndian.PutUint32(params[4:8], math.Float32bits(float32(value.Float64())))
		return b.runGenerator("fill", fillShader, params, out)
	}
	array.ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
		out.StoreScalar(off, value)
	})
	return nil
}

type arangeOp struct{}

func (arangeOp) Call(start, step array.Scalar, out *array.Array) error {
	b, err := backendFor(out)
	if err != nil {
		return err
	}
	if len(out.Shape()) != 1 {
		return errors.Wrapf(array.ErrInvalidArgument, "arange output must be 1-dim, got shape %s", out.Shape())
	}
	if gpuEligible(out) {
		params := make([]byte, 16)
		//nolint:gosec // G115: Safe conversion, NumElements() returns non-negative int
		binary.LittleEndian.PutUint32(params[0:4], uint32(out.NumElements()))
		binary.LittleEndian.PutUint32(params[4:8], math.Float32bits(float32(start.Float64())))
		binary.LittleEndian.PutUint32(params[8:12], math.Float32bits(float32(step.Float64())))
		return b.runGenerator("ramp", rampShader, params, out)
	}
	if out.Dtype().IsFloat() {
		lo, d := start.Float64(), step.Float64()
		i := 0
		array.ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
			out.StoreScalar(off, array.FloatScalar(lo+float64(i)*d))
			i++
		})
		return nil
	}
	lo, d := start.Int64(), step.Int64()
	i := int64(0)
	array.ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
		out.StoreScalar(off, array.IntScalar(lo+i*d))
		i++
	})
	return nil
}

type copyOp struct{}

func (copyOp) Call(a, out *array.Array) error {
	b, err := backendFor(out)
	if err != nil {
		return err
	}
	if a.Device() != out.Device() {
		return errors.Wrapf(array.ErrPrecondition, "copy across devices: %s -> %s", a.Device(), out.Device())
	}
	if !a.Shape().Equal(out.Shape()) {
		return errors.Wrapf(array.ErrInvalidArgument, "copy shape mismatch: %s vs %s", a.Shape(), out.Shape())
	}
	if a.Dtype() != out.Dtype() {
		return errors.Wrapf(array.ErrInvalidArgument, "copy dtype mismatch: %s vs %s", a.Dtype(), out.Dtype())
	}
	if gpuEligible(out) && a.IsContiguous() {
		return b.runCopy(a.Data()[:a.NBytes()], out)
	}
	if a.IsContiguous() && out.IsContiguous() {
		copy(out.Data()[:out.NBytes()], a.Data()[:a.NBytes()])
		return nil
	}
	array.ForEachOffsetPair(a.Shape(), a.Strides(), a.Offset(), out.Strides(), out.Offset(), func(so, do int) {
		out.StoreScalar(do, a.LoadScalar(so))
	})
	return nil
}

type asTypeOp struct{}

func (asTypeOp) Call(a, out *array.Array) error {
	if _, err := backendFor(out); err != nil {
		return err
	}
	if a.Device() != out.Device() {
		return errors.Wrapf(array.ErrPrecondition, "cast across devices: %s -> %s", a.Device(), out.Device())
	}
	if !a.Shape().Equal(out.Shape()) {
		return errors.Wrapf(array.ErrInvalidArgument, "cast shape mismatch: %s vs %s", a.Shape(), out.Shape())
	}
	// Casting runs host-side; the scalar round-trip handles every dtype
	// pair.
	array.ForEachOffsetPair(a.Shape(), a.Strides(), a.Offset(), out.Strides(), out.Offset(), func(so, do int) {
		out.StoreScalar(do, a.LoadScalar(so))
	})
	return nil
}

// zeroFill writes zeros into every element of out.
func zeroFill(out *array.Array) {
	zero := array.IntScalar(0)
	array.ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
		out.StoreScalar(off, zero)
	})
}

// runEye dispatches the eye shader over a rows x cols float32 matrix.
func runEye(b *Backend, k int, out *array.Array) error {
	params := make([]byte, 16)
	//nolint:gosec // G115: Safe conversion, NumElements() returns non-negative int
	binary.LittleEndian.PutUint32(params[0:4], uint32(out.NumElements()))
	//nolint:gosec // G115: Safe conversion, shape dimensions are non-negative
	binary.LittleEndian.PutUint32(params[4:8], uint32(out.Shape()[1]))
	//nolint:gosec // G115: two's complement encoding of the diagonal index
	binary.LittleEndian.PutUint32(params[8:12], uint32(int32(k)))
	return b.runGenerator("eye", eyeShader, params, out)
}

type identityOp struct{}

func (identityOp) Call(out *array.Array) error {
	b, err := backendFor(out)
	if err != nil {
		return err
	}
	shape := out.Shape()
	if len(shape) != 2 || shape[0] != shape[1] {
		return errors.Wrapf(array.ErrInvalidArgument, "identity output must be square 2-dim, got shape %s", shape)
	}
	if gpuEligible(out) {
		return runEye(b, 0, out)
	}
	zeroFill(out)
	one := array.IntScalar(1)
	for i := 0; i < shape[0]; i++ {
		out.SetAt(one, i, i)
	}
	return nil
}

type eyeOp struct{}

func (eyeOp) Call(k int, out *array.Array) error {
	b, err := backendFor(out)
	if err != nil {
		return err
	}
	shape := out.Shape()
	if len(shape) != 2 {
		return errors.Wrapf(array.ErrInvalidArgument, "eye output must be 2-dim, got shape %s", shape)
	}
	if gpuEligible(out) {
		return runEye(b, k, out)
	}
	zeroFill(out)
	one := array.IntScalar(1)
	for i := 0; i < shape[0]; i++ {
		j := i + k
		if j < 0 || j >= shape[1] {
			continue
		}
		out.SetAt(one, i, j)
	}
	return nil
}

type diagflatOp struct{}

// Call scatters v along the k-th diagonal. The scatter touches n out of
// n*n elements, so it always runs host-side.
func (diagflatOp) Call(v *array.Array, k int, out *array.Array) error {
	if _, err := backendFor(out); err != nil {
		return err
	}
	if v.Device() != out.Device() {
		return errors.Wrapf(array.ErrPrecondition, "diagflat source on %s, output on %s", v.Device(), out.Device())
	}
	if len(v.Shape()) != 1 {
		return errors.Wrapf(array.ErrInvalidArgument, "diagflat source must be 1-dim, got shape %s", v.Shape())
	}
	if v.Dtype() != out.Dtype() {
		return errors.Wrapf(array.ErrInvalidArgument, "diagflat dtype mismatch: %s vs %s", v.Dtype(), out.Dtype())
	}
	n := v.NumElements()
	size := n + abs(k)
	shape := out.Shape()
	if len(shape) != 2 || shape[0] != size || shape[1] != size {
		return errors.Wrapf(array.ErrInvalidArgument, "diagflat output must have shape (%d, %d), got %s", size, size, shape)
	}
	zeroFill(out)
	for i := 0; i < n; i++ {
		row, col := i, i+k
		if k < 0 {
			row, col = i-k, i
		}
		out.SetAt(v.At(i), row, col)
	}
	return nil
}

type linspaceOp struct{}

func (linspaceOp) Call(start, stop float64, out *array.Array) error {
	b, err := backendFor(out)
	if err != nil {
		return err
	}
	if len(out.Shape()) != 1 || out.NumElements() < 1 {
		return errors.Wrapf(array.ErrInvalidArgument, "linspace output must be 1-dim with at least one element, got shape %s", out.Shape())
	}
	n := out.NumElements()
	if n == 1 {
		out.SetAt(array.FloatScalar(start), 0)
		return nil
	}
	step := (stop - start) / float64(n-1)
	if gpuEligible(out) {
		params := make([]byte, 16)
		//nolint:gosec // G115: Safe conversion, NumElements() returns non-negative int
		binary.LittleEndian.PutUint32(params[0:4], uint32(n))
		binary.LittleEndian.PutUint32(params[4:8], math.Float32bits(float32(start)))
		binary.LittleEndian.PutUint32(params[8:12], math.Float32bits(float32(step)))
		if err := b.runGenerator("ramp", rampShader, params, out); err != nil {
			return err
		}
		// Pin the inclusive boundary exactly; the shader accumulates
		// rounding error at the far end.
		out.SetAt(array.FloatScalar(stop), n-1)
		return nil
	}
	i := 0
	array.ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
		v := start + float64(i)*step
		if i == n-1 {
			v = stop
		}
		out.StoreScalar(off, array.FloatScalar(v))
		i++
	})
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
