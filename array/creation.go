// Copyright 2025 Strata ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import "github.com/strata-ml/strata/internal/array"

// Empty allocates uninitialized storage for the given shape on the
// target device. Contents are unspecified until written. A zero device
// targets the default device.
func Empty(shape Shape, dtype Dtype, device Device) (*Array, error) {
	return array.Empty(shape, dtype, device)
}

// EmptyWithStrides is Empty with an explicit byte layout. Nil strides
// select the contiguous layout for the shape.
func EmptyWithStrides(shape Shape, dtype Dtype, strides Strides, device Device) (*Array, error) {
	return array.EmptyWithStrides(shape, dtype, strides, device)
}

// EmptyReduced allocates an uninitialized array shaped like shape with
// the listed axes removed, or collapsed to size 1 when keepdims is set.
func EmptyReduced(shape Shape, dtype Dtype, axes Axes, keepdims bool, device Device) (*Array, error) {
	return array.EmptyReduced(shape, dtype, axes, keepdims, device)
}

// Full allocates an array and fills every element with fillValue. An
// unspecified dtype defaults to the fill value's natural kind.
func Full(shape Shape, fillValue Scalar, dtype Dtype, device Device) (*Array, error) {
	return array.Full(shape, fillValue, dtype, device)
}

// Zeros allocates an array filled with zeros.
func Zeros(shape Shape, dtype Dtype, device Device) (*Array, error) {
	return array.Zeros(shape, dtype, device)
}

// Ones allocates an array filled with ones.
func Ones(shape Shape, dtype Dtype, device Device) (*Array, error) {
	return array.Ones(shape, dtype, device)
}

// EmptyLike allocates an uninitialized array with the same shape and
// dtype as a on device (default device when zero).
func EmptyLike(a *Array, device Device) (*Array, error) {
	return array.EmptyLike(a, device)
}

// FullLike is Full with shape and dtype read off a.
func FullLike(a *Array, fillValue Scalar, device Device) (*Array, error) {
	return array.FullLike(a, fillValue, device)
}

// ZerosLike is Zeros with shape and dtype read off a.
func ZerosLike(a *Array, device Device) (*Array, error) {
	return array.ZerosLike(a, device)
}

// OnesLike is Ones with shape and dtype read off a.
func OnesLike(a *Array, device Device) (*Array, error) {
	return array.OnesLike(a, device)
}

// FromSlice copies a typed host slice into a fresh contiguous array on
// the target device. The dtype is derived from T.
func FromSlice[T Element](data []T, shape Shape, device Device) (*Array, error) {
	return array.FromSlice(data, shape, device)
}

// Data returns a's elements as a typed slice sharing the array's
// storage. Panics when T does not match a's dtype or the layout is not
// C-contiguous.
func Data[T Element](a *Array) []T {
	return array.Data[T](a)
}

// FromHostData wraps caller-owned memory into an array without
// copying. The memory must be large enough for the declared layout;
// the call fails fast on violation. The array becomes a co-owner.
func FromHostData(shape Shape, dtype Dtype, data []byte, strides Strides, offset int, device Device) (*Array, error) {
	return array.FromHostData(shape, dtype, data, strides, offset, device)
}

// FromData is FromHostData with optional strides (nil selects the
// contiguous layout for the shape).
func FromData(shape Shape, dtype Dtype, data []byte, strides Strides, offset int, device Device) (*Array, error) {
	return array.FromData(shape, dtype, data, strides, offset, device)
}

// FromContiguousHostData wraps contiguous caller-owned memory.
func FromContiguousHostData(shape Shape, dtype Dtype, data []byte, device Device) (*Array, error) {
	return array.FromContiguousHostData(shape, dtype, data, device)
}

// Arange builds a 1-dim array holding start, start+step, ... up to but
// excluding stop. An unspecified dtype is inferred from the scalars.
func Arange(start, stop, step Scalar, dtype Dtype, device Device) (*Array, error) {
	return array.Arange(start, stop, step, dtype, device)
}

// ArangeStop is Arange from 0 with unit step.
func ArangeStop(stop Scalar, dtype Dtype, device Device) (*Array, error) {
	return array.ArangeStop(stop, dtype, device)
}

// Copy returns a newly allocated, fully C-contiguous copy of a on the
// same device with its own storage.
func Copy(a *Array) (*Array, error) {
	return array.Copy(a)
}

// Identity builds the n-by-n identity matrix.
func Identity(n int, dtype Dtype, device Device) (*Array, error) {
	return array.Identity(n, dtype, device)
}

// Eye builds an n-by-m matrix with ones along the k-th diagonal and
// zeros elsewhere. A negative m selects m = n.
func Eye(n, m, k int, dtype Dtype, device Device) (*Array, error) {
	return array.Eye(n, m, k, dtype, device)
}

// Diagflat builds a square matrix whose k-th diagonal holds the
// elements of the 1-dim array v.
func Diagflat(v *Array, k int, device Device) (*Array, error) {
	return array.Diagflat(v, k, device)
}

// Diag builds a matrix from a 1-dim v, or extracts the k-th diagonal
// of a 2-dim v as a shared-storage view.
func Diag(v *Array, k int, device Device) (*Array, error) {
	return array.Diag(v, k, device)
}

// Linspace builds a 1-dim array of num evenly spaced values from start
// to stop, including stop when endpoint is set. A negative num selects
// the default count of 50.
func Linspace(start, stop Scalar, num int, endpoint bool, dtype Dtype, device Device) (*Array, error) {
	return array.Linspace(start, stop, num, endpoint, dtype, device)
}

// AsContiguous returns a itself when it is already C-contiguous with
// the requested dtype; otherwise it copies (or casts) into a fresh
// contiguous array on a's device.
func AsContiguous(a *Array, dtype Dtype) (*Array, error) {
	return array.AsContiguous(a, dtype)
}

// AsContiguousArray is AsContiguous with an optional dtype (default:
// a's dtype); a 0-dim input yields a result of shape (1).
func AsContiguousArray(a *Array, dtype Dtype) (*Array, error) {
	return array.AsContiguousArray(a, dtype)
}
