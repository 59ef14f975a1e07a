package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceString(t *testing.T) {
	assert.Equal(t, "native:0", Device{Kind: KindNative}.String())
	assert.Equal(t, "webgpu:1", Device{Kind: KindWebGPU, Index: 1}.String())
	assert.Equal(t, "invalid:0", Device{}.String())
}

func TestDeviceIsValid(t *testing.T) {
	assert.False(t, Device{}.IsValid())
	assert.True(t, Device{Kind: KindNative}.IsValid())
}

func TestDefaultDevice(t *testing.T) {
	assert.Equal(t, Device{Kind: KindNative}, DefaultDevice())
}

func TestWithDefaultDeviceRestores(t *testing.T) {
	prev := DefaultDevice()
	d := Device{Kind: KindWebGPU, Index: 2}

	restore := WithDefaultDevice(d)
	assert.Equal(t, d, DefaultDevice())

	restore()
	assert.Equal(t, prev, DefaultDevice())
}

func TestResolveDevice(t *testing.T) {
	assert.Equal(t, DefaultDevice(), resolveDevice(Device{}))

	explicit := Device{Kind: KindWebGPU}
	assert.Equal(t, explicit, resolveDevice(explicit))
}
