// Copyright 2025 Strata ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated array
// creation.
//
// WebGPU is a cross-platform graphics and compute API that works on:
//   - Windows (via D3D12)
//   - macOS (via Metal)
//   - Linux (via Vulkan)
//
// Importing this package registers the backend for webgpu-kind
// devices; the GPU itself is only touched on first use.
//
// Example:
//
//	import (
//	    "github.com/strata-ml/strata/array"
//	    "github.com/strata-ml/strata/backend/webgpu"
//	)
//
//	func main() {
//	    if !webgpu.IsAvailable() {
//	        log.Fatal("no compatible GPU")
//	    }
//	    restore := array.WithDefaultDevice(array.Device{Kind: array.KindWebGPU})
//	    defer restore()
//
//	    x, err := array.Linspace(array.FloatScalar(0), array.FloatScalar(1), 1024, true, array.Float32, array.Device{})
//	    ...
//	}
package webgpu

import (
	"github.com/strata-ml/strata/array"
	internalwebgpu "github.com/strata-ml/strata/internal/backend/webgpu"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements array.Allocator.
var _ array.Allocator = (*Backend)(nil)

// MemoryStats reports the backend's allocator statistics.
type MemoryStats = internalwebgpu.MemoryStats

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU instance, adapter and device.
// Call Release() when done to free GPU resources. Most callers should
// prefer the shared instance used by the registered ops; New is for
// code that manages backend lifetime explicitly.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// This function attempts to initialize a WebGPU adapter to verify that
// a compatible GPU and drivers are present. It's useful for graceful
// fallback to the native backend:
//
//	if !webgpu.IsAvailable() {
//	    // stay on the native default device
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
