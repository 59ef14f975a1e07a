package array

import (
	"math"

	"github.com/pkg/errors"
)

// copyAttachHook is invoked by Copy on each result so the graph layer
// can record differentiable lineage. Opaque to this package.
var copyAttachHook func(*Array)

// SetCopyAttachHook installs the graph-connection hook called by Copy.
// Pass nil to disable.
func SetCopyAttachHook(fn func(*Array)) {
	copyAttachHook = fn
}

// Empty allocates uninitialized storage for the given shape on the
// target device and returns an array handle over it. Contents are
// unspecified until written. A zero device targets the default device.
func Empty(shape Shape, dtype Dtype, device Device) (*Array, error) {
	return EmptyWithStrides(shape, dtype, nil, device)
}

// EmptyWithStrides is Empty with an explicit byte layout. Nil strides
// select the contiguous layout for the shape.
func EmptyWithStrides(shape Shape, dtype Dtype, strides Strides, device Device) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if strides == nil {
		strides = shape.ContiguousStrides(dtype.Size())
	}
	if len(strides) != len(shape) {
		return nil, errors.Wrapf(ErrInvalidArgument, "strides rank %d does not match shape %s", len(strides), shape)
	}
	device = resolveDevice(device)
	alloc, err := ResolveAllocator(device)
	if err != nil {
		return nil, err
	}
	data, err := alloc.Allocate(RequiredBytes(shape, strides, dtype.Size()))
	if err != nil {
		return nil, errors.Wrapf(err, "allocating %s of %s on %s", shape, dtype, device)
	}
	return NewArray(shape, dtype, data, strides, 0, device)
}

// EmptyReduced allocates an uninitialized array shaped like shape with
// the listed axes removed, or collapsed to size 1 when keepdims is
// set. Reduction-style callers use it to build output arrays.
func EmptyReduced(shape Shape, dtype Dtype, axes Axes, keepdims bool, device Device) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	reduced, err := shape.reduce(axes, keepdims)
	if err != nil {
		return nil, err
	}
	return Empty(reduced, dtype, device)
}

// Full allocates an array and fills every element with fillValue.
// An unspecified dtype defaults to the fill value's natural kind.
func Full(shape Shape, fillValue Scalar, dtype Dtype, device Device) (*Array, error) {
	dtype = resolveDtype(dtype, fillValue.Dtype())
	out, err := Empty(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	fill, err := ResolveOp[FillOp](OpFill, out.Device())
	if err != nil {
		return nil, err
	}
	if err := fill.Call(fillValue, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Zeros allocates an array filled with zeros.
func Zeros(shape Shape, dtype Dtype, device Device) (*Array, error) {
	return Full(shape, IntScalar(0), dtype, device)
}

// Ones allocates an array filled with ones.
func Ones(shape Shape, dtype Dtype, device Device) (*Array, error) {
	return Full(shape, IntScalar(1), dtype, device)
}

// EmptyLike allocates an uninitialized array with the same shape and
// dtype as a. The source array's device is ignored; the result targets
// device (default device when zero).
func EmptyLike(a *Array, device Device) (*Array, error) {
	return Empty(a.Shape(), a.Dtype(), device)
}

// FullLike is Full with shape and dtype read off a.
func FullLike(a *Array, fillValue Scalar, device Device) (*Array, error) {
	return Full(a.Shape(), fillValue, a.Dtype(), device)
}

// ZerosLike is Zeros with shape and dtype read off a.
func ZerosLike(a *Array, device Device) (*Array, error) {
	return Zeros(a.Shape(), a.Dtype(), device)
}

// OnesLike is Ones with shape and dtype read off a.
func OnesLike(a *Array, device Device) (*Array, error) {
	return Ones(a.Shape(), a.Dtype(), device)
}

// FromHostData wraps caller-owned memory into an array without
// copying. The data must already reside on the given device and be
// large enough for the declared layout; the size is checked and the
// call fails fast on violation. The array becomes a co-owner of data.
func FromHostData(shape Shape, dtype Dtype, data []byte, strides Strides, offset int, device Device) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(strides) != len(shape) {
		return nil, errors.Wrapf(ErrInvalidArgument, "strides rank %d does not match shape %s", len(strides), shape)
	}
	if offset < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative offset %d", offset)
	}
	if err := checkLayoutFits(shape, strides, dtype.Size(), offset, len(data)); err != nil {
		return nil, err
	}
	return NewArray(shape, dtype, data, strides, offset, resolveDevice(device))
}

// FromData is FromHostData with optional strides (nil selects the
// contiguous layout for the shape).
func FromData(shape Shape, dtype Dtype, data []byte, strides Strides, offset int, device Device) (*Array, error) {
	if strides == nil {
		strides = shape.ContiguousStrides(dtype.Size())
	}
	return FromHostData(shape, dtype, data, strides, offset, device)
}

// FromContiguousHostData wraps contiguous caller-owned memory.
func FromContiguousHostData(shape Shape, dtype Dtype, data []byte, device Device) (*Array, error) {
	return FromData(shape, dtype, data, nil, 0, device)
}

// arangeLen computes the output length ceil((stop-start)/step) in the
// dtype's arithmetic: integer arithmetic for integer dtypes, floating
// arithmetic otherwise.
func arangeLen(start, stop, step Scalar, dtype Dtype) (int, error) {
	if dtype.IsFloat() {
		stepF := step.Float64()
		if stepF == 0 {
			return 0, errors.Wrap(ErrInvalidArgument, "arange step must be nonzero")
		}
		n := int(math.Ceil((stop.Float64() - start.Float64()) / stepF))
		if n < 0 {
			n = 0
		}
		return n, nil
	}
	stepI := step.Int64()
	if stepI == 0 {
		return 0, errors.Wrap(ErrInvalidArgument, "arange step must be nonzero")
	}
	diff := stop.Int64() - start.Int64()
	if diff == 0 || (diff > 0) != (stepI > 0) {
		return 0, nil
	}
	n := diff / stepI
	if diff%stepI != 0 {
		n++
	}
	return int(n), nil
}

// Arange builds a 1-dim array holding start, start+step, ... up to but
// excluding stop. An unspecified dtype is inferred from the scalars:
// integer when all three are integer kinds, the default float dtype
// otherwise.
func Arange(start, stop, step Scalar, dtype Dtype, device Device) (*Array, error) {
	if dtype == DtypeInvalid {
		if start.IsFloat() || stop.IsFloat() || step.IsFloat() {
			dtype = DefaultFloatDtype
		} else {
			dtype = DefaultIntDtype
		}
	}
	n, err := arangeLen(start, stop, step, dtype)
	if err != nil {
		return nil, err
	}
	out, err := Empty(Shape{n}, dtype, device)
	if err != nil {
		return nil, err
	}
	op, err := ResolveOp[ArangeOp](OpArange, out.Device())
	if err != nil {
		return nil, err
	}
	if err := op.Call(start, step, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ArangeStop is Arange from 0 with unit step.
func ArangeStop(stop Scalar, dtype Dtype, device Device) (*Array, error) {
	return Arange(IntScalar(0), stop, IntScalar(1), dtype, device)
}

// Copy returns a newly allocated, fully C-contiguous copy of a on the
// same device, with its own storage. The result is handed to the
// graph-attach hook so it stays connected to the same computation
// graphs as the input.
func Copy(a *Array) (*Array, error) {
	out, err := Empty(a.Shape(), a.Dtype(), a.Device())
	if err != nil {
		return nil, err
	}
	op, err := ResolveOp[CopyOp](OpCopy, out.Device())
	if err != nil {
		return nil, err
	}
	if err := op.Call(a, out); err != nil {
		return nil, err
	}
	if copyAttachHook != nil {
		copyAttachHook(out)
	}
	return out, nil
}

// Identity builds the n-by-n identity matrix.
func Identity(n int, dtype Dtype, device Device) (*Array, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "identity size must be non-negative, got %d", n)
	}
	dtype = resolveDtype(dtype, DefaultFloatDtype)
	out, err := Empty(Shape{n, n}, dtype, device)
	if err != nil {
		return nil, err
	}
	op, err := ResolveOp[IdentityOp](OpIdentity, out.Device())
	if err != nil {
		return nil, err
	}
	if err := op.Call(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Eye builds an n-by-m matrix with ones along the k-th diagonal and
// zeros elsewhere. A negative m selects the default m = n; dtype
// defaults to the package's float default.
func Eye(n, m, k int, dtype Dtype, device Device) (*Array, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "eye rows must be non-negative, got %d", n)
	}
	if m < 0 {
		m = n
	}
	dtype = resolveDtype(dtype, DefaultFloatDtype)
	out, err := Empty(Shape{n, m}, dtype, device)
	if err != nil {
		return nil, err
	}
	op, err := ResolveOp[EyeOp](OpEye, out.Device())
	if err != nil {
		return nil, err
	}
	if err := op.Call(k, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Diagflat builds a square 2-dim array whose k-th diagonal holds the
// elements of the 1-dim array v, zero elsewhere. v must reside on the
// target device.
func Diagflat(v *Array, k int, device Device) (*Array, error) {
	if len(v.Shape()) != 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "diagflat requires a 1-dim source, got shape %s", v.Shape())
	}
	device = resolveDevice(device)
	if v.Device() != device {
		return nil, errors.Wrapf(ErrPrecondition, "diagflat source on %s, target device %s", v.Device(), device)
	}
	size := v.NumElements() + abs(k)
	out, err := Empty(Shape{size, size}, v.Dtype(), device)
	if err != nil {
		return nil, err
	}
	op, err := ResolveOp[DiagflatOp](OpDiagflat, out.Device())
	if err != nil {
		return nil, err
	}
	if err := op.Call(v, k, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Diag builds a matrix from a 1-dim v (equivalent to Diagflat), or
// extracts the k-th diagonal of a 2-dim v as a shared-storage view.
func Diag(v *Array, k int, device Device) (*Array, error) {
	switch len(v.Shape()) {
	case 1:
		return Diagflat(v, k, device)
	case 2:
		return v.DiagonalView(k)
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "diag requires a 1- or 2-dim array, got shape %s", v.Shape())
	}
}

// Linspace builds a 1-dim array of num evenly spaced values from start
// to stop, including stop when endpoint is set. A negative num selects
// the default count; num must otherwise be at least 1. The step is
// (stop-start)/(num-1) with endpoint, (stop-start)/num without.
func Linspace(start, stop Scalar, num int, endpoint bool, dtype Dtype, device Device) (*Array, error) {
	if num < 0 {
		num = DefaultLinspaceNum
	}
	if num == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "linspace needs at least one element")
	}
	dtype = resolveDtype(dtype, DefaultFloatDtype)
	lo := start.Float64()
	hi := stop.Float64()
	if !endpoint && num > 1 {
		// Shift the inclusive upper boundary so the op's closed
		// interval reproduces the half-open spacing.
		hi = lo + (hi-lo)*float64(num-1)/float64(num)
	}
	out, err := Empty(Shape{num}, dtype, device)
	if err != nil {
		return nil, err
	}
	op, err := ResolveOp[LinspaceOp](OpLinspace, out.Device())
	if err != nil {
		return nil, err
	}
	if err := op.Call(lo, hi, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AsContiguous returns a itself when it is already C-contiguous with
// the requested dtype; otherwise it allocates a fresh contiguous array
// on a's device and copies (or casts) into it. The shape is preserved.
func AsContiguous(a *Array, dtype Dtype) (*Array, error) {
	if a.IsContiguous() && a.Dtype() == dtype {
		return a, nil
	}
	out, err := Empty(a.Shape(), dtype, a.Device())
	if err != nil {
		return nil, err
	}
	if a.Dtype() == dtype {
		op, err := ResolveOp[CopyOp](OpCopy, out.Device())
		if err != nil {
			return nil, err
		}
		if err := op.Call(a, out); err != nil {
			return nil, err
		}
		return out, nil
	}
	op, err := ResolveOp[AsTypeOp](OpAsType, out.Device())
	if err != nil {
		return nil, err
	}
	if err := op.Call(a, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AsContiguousArray is AsContiguous with an optional dtype (default:
// a's dtype) and one documented quirk: a 0-dim input yields a result
// of shape (1), never a true scalar shape.
func AsContiguousArray(a *Array, dtype Dtype) (*Array, error) {
	dtype = resolveDtype(dtype, a.Dtype())
	out, err := AsContiguous(a, dtype)
	if err != nil {
		return nil, err
	}
	if len(out.Shape()) == 0 {
		view := out.Clone()
		view.shape = Shape{1}
		view.strides = Strides{dtype.Size()}
		return view, nil
	}
	return out, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
