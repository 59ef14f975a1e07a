// Package webgpu implements the accelerator executor on top of WebGPU
// compute. Float32 generator ops run as WGSL compute shaders and the
// results are read back into the array's host-visible storage; other
// dtypes are generated host-side and staged on demand. Uses go-webgpu
// (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/strata-ml/strata/internal/array"
)

// Backend holds the WebGPU instance, device and queue plus shader and
// pipeline caches.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	adapterInfo *wgpu.AdapterInfoGo

	// Memory tracking for host-visible allocations handed out through
	// the allocator contract.
	memoryStats struct {
		totalAllocatedBytes uint64
		peakMemoryBytes     uint64
		activeBytes         uint64
		mu                  sync.Mutex
	}
}

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (backend *Backend, err error) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("webgpu: failed to create instance: %w", err)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	adapterInfo, _ := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	b := &Backend{
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		shaders:     make(map[string]*wgpu.ShaderModule),
		pipelines:   make(map[string]*wgpu.ComputePipeline),
		adapterInfo: adapterInfo,
	}
	klog.V(1).Infof("webgpu: backend initialized on %s", b.Name())
	return b, nil
}

// Release releases all WebGPU resources.
// Must be called when the backend is no longer needed.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = nil

	for _, s := range b.shaders {
		s.Release()
	}
	b.shaders = nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
	klog.V(1).Info("webgpu: backend released")
}

// Name returns the backend name including the adapter description.
func (b *Backend) Name() string {
	if b.adapterInfo != nil {
		return fmt.Sprintf("WebGPU (%s %s)", b.adapterInfo.Device, b.adapterInfo.Vendor)
	}
	return "WebGPU"
}

// Kind returns the device kind this backend executes for.
func (*Backend) Kind() array.DeviceKind { return array.KindWebGPU }

// Allocate returns zeroed host-visible storage of exactly nbytes and
// tracks allocation statistics. Op implementations stage this memory
// through GPU buffers on demand.
func (b *Backend) Allocate(nbytes int) ([]byte, error) {
	if nbytes < 0 {
		return nil, errors.Wrapf(array.ErrInvalidArgument, "negative allocation size %d", nbytes)
	}
	b.memoryStats.mu.Lock()
	b.memoryStats.totalAllocatedBytes += uint64(nbytes)
	b.memoryStats.activeBytes += uint64(nbytes)
	if b.memoryStats.activeBytes > b.memoryStats.peakMemoryBytes {
		b.memoryStats.peakMemoryBytes = b.memoryStats.activeBytes
	}
	total := b.memoryStats.totalAllocatedBytes
	b.memoryStats.mu.Unlock()
	klog.V(2).Infof("webgpu: allocated %s (total %s)", humanize.IBytes(uint64(nbytes)), humanize.IBytes(total))
	return make([]byte, nbytes), nil
}

// MemoryStats reports allocator statistics.
type MemoryStats struct {
	// Total bytes allocated since backend creation
	TotalAllocatedBytes uint64
	// Peak memory usage in bytes
	PeakMemoryBytes uint64
}

// Stats returns a snapshot of the allocator statistics.
func (b *Backend) Stats() MemoryStats {
	b.memoryStats.mu.Lock()
	defer b.memoryStats.mu.Unlock()
	return MemoryStats{
		TotalAllocatedBytes: b.memoryStats.totalAllocatedBytes,
		PeakMemoryBytes:     b.memoryStats.peakMemoryBytes,
	}
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

var (
	sharedOnce    sync.Once
	sharedBackend *Backend
	sharedErr     error
)

// Shared returns the process-wide backend instance used by the
// registered op implementations, initializing it on first use.
func Shared() (*Backend, error) {
	sharedOnce.Do(func() {
		sharedBackend, sharedErr = New()
	})
	return sharedBackend, sharedErr
}

func init() {
	array.RegisterAllocator(array.KindWebGPU, allocatorStub{})
	array.RegisterOp(array.OpFill, array.KindWebGPU, fillOp{})
	array.RegisterOp(array.OpArange, array.KindWebGPU, arangeOp{})
	array.RegisterOp(array.OpCopy, array.KindWebGPU, copyOp{})
	array.RegisterOp(array.OpAsType, array.KindWebGPU, asTypeOp{})
	array.RegisterOp(array.OpIdentity, array.KindWebGPU, identityOp{})
	array.RegisterOp(array.OpEye, array.KindWebGPU, eyeOp{})
	array.RegisterOp(array.OpDiagflat, array.KindWebGPU, diagflatOp{})
	array.RegisterOp(array.OpLinspace, array.KindWebGPU, linspaceOp{})
	klog.V(2).Info("webgpu: backend registered")
}

// allocatorStub defers backend initialization to the first allocation
// so importing the package never touches the GPU.
type allocatorStub struct{}

func (allocatorStub) Allocate(nbytes int) ([]byte, error) {
	b, err := Shared()
	if err != nil {
		return nil, errors.Wrap(err, "webgpu backend unavailable")
	}
	return b.Allocate(nbytes)
}
