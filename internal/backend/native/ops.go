package native

import (
	"github.com/pkg/errors"

	"github.com/strata-ml/strata/internal/array"
	"github.com/strata-ml/strata/internal/parallel"
)

// loopCfg tunes the parallel element loops used on the contiguous
// fast paths. Distinct indices touch disjoint bytes, so the loop
// bodies are safe to run concurrently.
var loopCfg = parallel.DefaultConfig()

// requireNative rejects output arrays that live on a device this
// backend does not execute for.
func requireNative(out *array.Array) error {
	if out.Device().Kind != array.KindNative {
		return errors.Wrapf(array.ErrPrecondition, "output array on %s, executing backend is native", out.Device())
	}
	return nil
}

type fillOp struct{}

func (fillOp) Call(value array.Scalar, out *array.Array) error {
	if err := requireNative(out); err != nil {
		return err
	}
	if out.IsContiguous() {
		size := out.ItemSize()
		parallel.For(out.NumElements(), func(i int) {
			out.StoreScalar(i*size, value)
		}, loopCfg)
		return nil
	}
	array.ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
		out.StoreScalar(off, value)
	})
	return nil
}

type arangeOp struct{}

func (arangeOp) Call(start, step array.Scalar, out *array.Array) error {
	if err := requireNative(out); err != nil {
		return err
	}
	if len(out.Shape()) != 1 {
		return errors.Wrapf(array.ErrInvalidArgument, "arange output must be 1-dim, got shape %s", out.Shape())
	}
	if out.Dtype().IsFloat() {
		lo, d := start.Float64(), step.Float64()
		if out.IsContiguous() {
			size := out.ItemSize()
			parallel.For(out.NumElements(), func(i int) {
				out.StoreScalar(i*size, array.FloatScalar(lo+float64(i)*d))
			}, loopCfg)
			return nil
		}
		i := 0
		array.ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
			out.StoreScalar(off, array.FloatScalar(lo+float64(i)*d))
			i++
		})
		return nil
	}
	lo, d := start.Int64(), step.Int64()
	if out.IsContiguous() {
		size := out.ItemSize()
		parallel.For(out.NumElements(), func(i int) {
			out.StoreScalar(i*size, array.IntScalar(lo+int64(i)*d))
		}, loopCfg)
		return nil
	}
	i := int64(0)
	array.ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
		out.StoreScalar(off, array.IntScalar(lo+i*d))
		i++
	})
	return nil
}

type copyOp struct{}

func (copyOp) Call(a, out *array.Array) error {
	if err := requireNative(out); err != nil {
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
	// Fast path: both views contiguous, a single memmove suffices.
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
	if err := requireNative(out); err != nil {
		return err
	}
	if a.Device() != out.Device() {
		return errors.Wrapf(array.ErrPrecondition, "cast across devices: %s -> %s", a.Device(), out.Device())
	}
	if !a.Shape().Equal(out.Shape()) {
		return errors.Wrapf(array.ErrInvalidArgument, "cast shape mismatch: %s vs %s", a.Shape(), out.Shape())
	}
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

type identityOp struct{}

func (identityOp) Call(out *array.Array) error {
	if err := requireNative(out); err != nil {
		return err
	}
	shape := out.Shape()
	if len(shape) != 2 || shape[0] != shape[1] {
		return errors.Wrapf(array.ErrInvalidArgument, "identity output must be square 2-dim, got shape %s", shape)
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
	if err := requireNative(out); err != nil {
		return err
	}
	shape := out.Shape()
	if len(shape) != 2 {
		return errors.Wrapf(array.ErrInvalidArgument, "eye output must be 2-dim, got shape %s", shape)
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

func (diagflatOp) Call(v *array.Array, k int, out *array.Array) error {
	if err := requireNative(out); err != nil {
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
	if err := requireNative(out); err != nil {
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
	if out.IsContiguous() {
		size := out.ItemSize()
		parallel.For(n, func(i int) {
			v := start + float64(i)*step
			if i == n-1 {
				v = stop // keep the inclusive boundary exact
			}
			out.StoreScalar(i*size, array.FloatScalar(v))
		}, loopCfg)
		return nil
	}
	i := 0
	array.ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
		v := start + float64(i)*step
		if i == n-1 {
			v = stop // keep the inclusive boundary exact
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
