// Package native implements the host executor: the pure-Go backend
// supplying the device-scoped allocator and one implementation of every
// generator/transform op contract, over arbitrary byte strides.
package native

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/strata-ml/strata/internal/array"
)

// Backend is the host executor. It carries no state; registration in
// init makes every native-kind device dispatch here.
type Backend struct{}

// New returns the host backend.
func New() *Backend { return &Backend{} }

// Name returns the backend name.
func (*Backend) Name() string { return "native" }

// Kind returns the device kind this backend executes for.
func (*Backend) Kind() array.DeviceKind { return array.KindNative }

// Allocate returns zeroed host memory of exactly nbytes.
func (*Backend) Allocate(nbytes int) ([]byte, error) {
	if nbytes < 0 {
		return nil, errors.Wrapf(array.ErrInvalidArgument, "negative allocation size %d", nbytes)
	}
	return make([]byte, nbytes), nil
}

func init() {
	b := New()
	array.RegisterAllocator(array.KindNative, b)
	array.RegisterOp(array.OpFill, array.KindNative, fillOp{})
	array.RegisterOp(array.OpArange, array.KindNative, arangeOp{})
	array.RegisterOp(array.OpCopy, array.KindNative, copyOp{})
	array.RegisterOp(array.OpAsType, array.KindNative, asTypeOp{})
	array.RegisterOp(array.OpIdentity, array.KindNative, identityOp{})
	array.RegisterOp(array.OpEye, array.KindNative, eyeOp{})
	array.RegisterOp(array.OpDiagflat, array.KindNative, diagflatOp{})
	array.RegisterOp(array.OpLinspace, array.KindNative, linspaceOp{})
	klog.V(2).Info("native: backend registered")
}
