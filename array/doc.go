// Copyright 2025 Strata ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array provides N-dimensional array creation and memory
// layout primitives for the Strata framework.
//
// # Overview
//
// Arrays are strided views over device-resident storage blocks. This
// package provides:
//   - Shape/stride layout arithmetic over signed byte strides
//   - Creation routines (Zeros, Ones, Arange, Linspace, Eye, ...)
//   - Zero-copy wrapping of host memory and shared-storage views
//   - Device abstraction with per-kind op dispatch
//
// # Basic Usage
//
//	import (
//	    "github.com/strata-ml/strata/array"
//	    _ "github.com/strata-ml/strata/backend/native"
//	)
//
//	func main() {
//	    x, _ := array.Zeros(array.Shape{2, 3}, array.Float32, array.Device{})
//	    y, _ := array.Arange(array.IntScalar(0), array.IntScalar(6), array.IntScalar(1), array.Int64, array.Device{})
//	    v, _ := array.FromSlice([]float32{1, 2, 3}, array.Shape{3}, array.Device{})
//	    m, _ := array.Diagflat(v, 0, array.Device{})
//	    _ = x
//	    _ = y
//	    _ = m
//	}
//
// A zero Device targets the process-wide default device, which is
// native unless changed with WithDefaultDevice.
//
// # Supported Data Types
//
// The package supports the following element types:
//   - float16, float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers, useful for images)
//   - bool (boolean masks)
//
// # Device Support
//
// Arrays can reside on different devices:
//   - native: pure Go host execution
//   - webgpu: zero-CGO GPU acceleration
//
// Backends register themselves on import; blank-import the backend
// packages you want available.
//
// # Memory Management
//
// Storage blocks are reference-counted and shared between views.
// Copy always materializes fresh contiguous storage; DiagonalView and
// Clone share the source block without copying.
package array
