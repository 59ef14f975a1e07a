package array

// Operation contracts. Each op is a named, stateless unit of
// device-executable logic with exactly one Call method; every backend
// supplies its own implementation and registers it under the op's name
// and the backend's DeviceKind. The logical semantics are identical
// across backends; only the execution strategy differs.
//
// All Call contracts share the same preconditions: the output array
// must already have the exact shape and dtype the operation requires
// and must reside on the executing backend's device. Ops never resize,
// retype or reallocate their outputs.

// Operation names used as registry keys.
const (
	OpFill     = "Fill"
	OpArange   = "Arange"
	OpCopy     = "Copy"
	OpAsType   = "AsType"
	OpIdentity = "Identity"
	OpEye      = "Eye"
	OpDiagflat = "Diagflat"
	OpLinspace = "Linspace"
)

// FillOp writes the given value, converted to out's dtype, into every
// element of out.
type FillOp interface {
	Call(value Scalar, out *Array) error
}

// ArangeOp fills the 1-dim array out with start + i*step, computed in
// out's dtype arithmetic. The element count was fixed by the caller.
type ArangeOp interface {
	Call(start, step Scalar, out *Array) error
}

// CopyOp copies the elements of a into out. The arrays must already
// match in shape and dtype and both reside on the executing device;
// the op never reshapes, casts or reallocates.
type CopyOp interface {
	Call(a, out *Array) error
}

// AsTypeOp copies the elements of a into out with dtype conversion.
// The arrays must match in shape; dtypes may differ.
type AsTypeOp interface {
	Call(a, out *Array) error
}

// IdentityOp fills the square 2-dim array out with the multiplicative
// identity of its dtype on the main diagonal and zero elsewhere.
type IdentityOp interface {
	Call(out *Array) error
}

// EyeOp fills the 2-dim array out with ones along the k-th diagonal
// (k = 0 main, k > 0 above, k < 0 below) and zeros elsewhere. A
// diagonal running off either edge fills no elements.
type EyeOp interface {
	Call(k int, out *Array) error
}

// DiagflatOp reads the 1-dim source v and writes a 2-dim out whose
// k-th diagonal holds v's elements in order, all other entries zero.
// out's shape must be exactly (n+|k|, n+|k|) with n = v.NumElements().
type DiagflatOp interface {
	Call(v *Array, k int, out *Array) error
}

// LinspaceOp fills the 1-dim array out (at least one element) with
// evenly spaced values from start to stop inclusive. For a single
// element the value is start. Endpoint handling is the caller-facing
// Linspace entry point's concern; the boundaries arrive precomputed.
type LinspaceOp interface {
	Call(start, stop float64, out *Array) error
}

// Allocator is the device-scoped memory allocator each backend
// registers for its kind. Allocate returns host-visible storage of
// exactly nbytes, zero-initialized.
type Allocator interface {
	Allocate(nbytes int) ([]byte, error)
}
