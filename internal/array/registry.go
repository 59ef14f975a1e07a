package array

import (
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// The op registry maps (operation name, device kind) to the backend's
// concrete implementation. Backends register in their package init;
// adding a backend is a registration act, not a subclassing one.

type opKey struct {
	name string
	kind DeviceKind
}

var (
	registryMu sync.RWMutex
	ops        = map[opKey]any{}
	allocators = map[DeviceKind]Allocator{}
)

// RegisterOp installs impl as the implementation of the named op for
// the given device kind, replacing any previous registration.
func RegisterOp(name string, kind DeviceKind, impl any) {
	registryMu.Lock()
	defer registryMu.Unlock()
	ops[opKey{name: name, kind: kind}] = impl
	klog.V(1).Infof("array: registered op %s for %s", name, kind)
}

// RegisterAllocator installs the device-scoped allocator for a kind.
func RegisterAllocator(kind DeviceKind, alloc Allocator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	allocators[kind] = alloc
	klog.V(1).Infof("array: registered allocator for %s", kind)
}

// ResolveOp returns the registered implementation of the named op for
// the device, typed as T. Resolution failure is fatal to the call that
// needed the op; there is no fallback to another device kind.
func ResolveOp[T any](name string, device Device) (T, error) {
	registryMu.RLock()
	impl, ok := ops[opKey{name: name, kind: device.Kind}]
	registryMu.RUnlock()
	var zero T
	if !ok {
		return zero, errors.Wrapf(ErrNotRegistered, "op %s on device %s", name, device)
	}
	typed, ok := impl.(T)
	if !ok {
		return zero, errors.Wrapf(ErrNotRegistered, "op %s on device %s has wrong contract %T", name, device, impl)
	}
	return typed, nil
}

// ResolveAllocator returns the allocator registered for the device's
// kind.
func ResolveAllocator(device Device) (Allocator, error) {
	registryMu.RLock()
	alloc, ok := allocators[device.Kind]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrNotRegistered, "allocator for device %s", device)
	}
	return alloc, nil
}
