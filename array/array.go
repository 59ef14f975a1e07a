// Copyright 2025 Strata ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import "github.com/strata-ml/strata/internal/array"

// Array is a strided view over a device-resident storage block.
type Array = array.Array

// Shape holds the dimension sizes of an array. Dimensions may be zero;
// a zero-length shape is a 0-dim scalar array.
type Shape = array.Shape

// Strides holds per-dimension byte strides. Strides are signed: zero
// and negative values are valid and describe broadcast and reversed
// views.
type Strides = array.Strides

// Axes lists dimension indices, used by reduction-shaped allocation.
type Axes = array.Axes

// Dtype tags the element type of an array.
type Dtype = array.Dtype

// Scalar is a dtype-tagged scalar value used by creation routines.
type Scalar = array.Scalar

// Device identifies a concrete execution device by kind and index.
type Device = array.Device

// DeviceKind enumerates the backend families a device can belong to.
type DeviceKind = array.DeviceKind

// Element constrains the Go element types FromSlice accepts.
type Element = array.Element

// Allocator is the device memory contract a backend provides.
type Allocator = array.Allocator

// Element type tags.
const (
	DtypeInvalid = array.DtypeInvalid
	Bool         = array.Bool
	Uint8        = array.Uint8
	Int32        = array.Int32
	Int64        = array.Int64
	Float16      = array.Float16
	Float32      = array.Float32
	Float64      = array.Float64

	// DefaultFloatDtype is substituted when a creation routine gets an
	// unspecified dtype in a floating-point context.
	DefaultFloatDtype = array.DefaultFloatDtype
	// DefaultIntDtype is substituted in integer contexts.
	DefaultIntDtype = array.DefaultIntDtype
)

// Device kinds.
const (
	KindInvalid = array.KindInvalid
	KindNative  = array.KindNative
	KindWebGPU  = array.KindWebGPU
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrInvalidArgument reports a malformed argument: negative
	// dimension, zero arange step, rank mismatch.
	ErrInvalidArgument = array.ErrInvalidArgument
	// ErrPrecondition reports a violated runtime precondition, such as
	// host data too small for the declared layout.
	ErrPrecondition = array.ErrPrecondition
	// ErrNotRegistered reports a missing backend op or allocator for
	// the target device kind.
	ErrNotRegistered = array.ErrNotRegistered
)

// NewScalar converts a Go value (bool, uint8, int, int32, int64,
// float32, float64 or Scalar) into a Scalar.
func NewScalar(v any) (Scalar, error) { return array.NewScalar(v) }

// MustScalar is NewScalar panicking on unsupported values.
func MustScalar(v any) Scalar { return array.MustScalar(v) }

// FloatScalar builds a float-kind Scalar.
func FloatScalar(v float64) Scalar { return array.FloatScalar(v) }

// IntScalar builds an integer-kind Scalar.
func IntScalar(v int64) Scalar { return array.IntScalar(v) }

// BoolScalar builds a bool-kind Scalar.
func BoolScalar(v bool) Scalar { return array.BoolScalar(v) }

// DtypeOf returns the dtype tag for a Go element type.
func DtypeOf[T Element]() Dtype { return array.DtypeOf[T]() }

// DefaultDevice returns the process-wide default device.
func DefaultDevice() Device { return array.DefaultDevice() }

// WithDefaultDevice sets the process-wide default device and returns a
// restore function:
//
//	restore := array.WithDefaultDevice(array.Device{Kind: array.KindWebGPU})
//	defer restore()
func WithDefaultDevice(d Device) func() { return array.WithDefaultDevice(d) }

// RequiredBytes returns the minimum storage extent in bytes that a
// layout addresses, handling negative and zero strides.
func RequiredBytes(shape Shape, strides Strides, itemSize int) int {
	return array.RequiredBytes(shape, strides, itemSize)
}

// IsContiguous reports whether a layout is exactly C-contiguous:
// row-major strides and zero offset.
func IsContiguous(shape Shape, strides Strides, itemSize, offset int) bool {
	return array.IsContiguous(shape, strides, itemSize, offset)
}
