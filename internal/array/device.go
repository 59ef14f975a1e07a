package array

import (
	"fmt"
	"sync/atomic"
)

// DeviceKind identifies a backend implementation family.
type DeviceKind int

// Supported backend kinds.
const (
	KindInvalid DeviceKind = iota
	KindNative
	KindWebGPU
)

// String returns a human-readable kind name.
func (k DeviceKind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindWebGPU:
		return "webgpu"
	case KindInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Device identifies an execution context: a backend kind plus an
// ordinal index within that backend. A Device owns the memory an
// array's storage is allocated from; an array is bound to one device
// for its lifetime.
//
// The zero Device is "unspecified" and resolves to the default device.
type Device struct {
	Kind  DeviceKind
	Index int
}

// IsValid reports whether the device names a concrete backend.
func (d Device) IsValid() bool { return d.Kind != KindInvalid }

// String formats the device as kind:index.
func (d Device) String() string {
	return fmt.Sprintf("%s:%d", d.Kind, d.Index)
}

// defaultDevice holds the process-wide default used whenever a caller
// omits an explicit device. Reads are idempotent and lock-free.
var defaultDevice atomic.Value

func init() {
	defaultDevice.Store(Device{Kind: KindNative})
}

// DefaultDevice returns the current process-wide default device.
func DefaultDevice() Device {
	return defaultDevice.Load().(Device)
}

// WithDefaultDevice installs d as the default device and returns a
// restore function reinstating the previous default. Intended for
// scoped use:
//
//	defer array.WithDefaultDevice(dev)()
func WithDefaultDevice(d Device) func() {
	prev := DefaultDevice()
	defaultDevice.Store(d)
	return func() { defaultDevice.Store(prev) }
}

// resolveDevice substitutes the default device for the zero value.
func resolveDevice(d Device) Device {
	if !d.IsValid() {
		return DefaultDevice()
	}
	return d
}
