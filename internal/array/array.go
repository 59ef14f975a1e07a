package array

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// Array is a handle over a strided view of a device-resident storage
// block: shape, signed byte strides, dtype, byte offset and the owning
// device. Several arrays may share one storage block; the block is
// released when the last holder releases it.
type Array struct {
	buffer  *buffer
	shape   Shape
	strides Strides
	dtype   Dtype
	offset  int
	device  Device
}

// NewArray builds an array handle over freshly allocated storage
// obtained from data. shape/strides/offset must address only bytes
// inside data; this is the strict form used by backends and tests.
func NewArray(shape Shape, dtype Dtype, data []byte, strides Strides, offset int, device Device) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if strides == nil {
		strides = shape.ContiguousStrides(dtype.Size())
	}
	if len(strides) != len(shape) {
		return nil, errors.Wrapf(ErrInvalidArgument, "strides rank %d does not match shape %v", len(strides), shape)
	}
	if err := checkLayoutFits(shape, strides, dtype.Size(), offset, len(data)); err != nil {
		return nil, err
	}
	return &Array{
		buffer:  newBufferShared(data),
		shape:   shape.Clone(),
		strides: strides.Clone(),
		dtype:   dtype,
		offset:  offset,
		device:  resolveDevice(device),
	}, nil
}

// Shape returns the array's shape.
func (a *Array) Shape() Shape { return a.shape }

// Strides returns the array's byte strides.
func (a *Array) Strides() Strides { return a.strides }

// Dtype returns the element type tag.
func (a *Array) Dtype() Dtype { return a.dtype }

// Offset returns the byte offset of the first logical element within
// the storage block.
func (a *Array) Offset() int { return a.offset }

// Device returns the device the array is bound to.
func (a *Array) Device() Device { return a.device }

// NumElements returns the total number of logical elements.
func (a *Array) NumElements() int { return a.shape.NumElements() }

// ItemSize returns the element byte width.
func (a *Array) ItemSize() int { return a.dtype.Size() }

// NBytes returns the minimum storage extent the view addresses.
func (a *Array) NBytes() int { return RequiredBytes(a.shape, a.strides, a.dtype.Size()) }

// IsContiguous reports whether the view is exactly C-contiguous:
// row-major strides and zero offset.
func (a *Array) IsContiguous() bool {
	return IsContiguous(a.shape, a.strides, a.dtype.Size(), a.offset)
}

// Data returns the byte window starting at the array's offset.
// Only meaningful for layouts with non-negative strides.
func (a *Array) Data() []byte {
	return a.buffer.data[a.offset:]
}

// StorageBytes returns the whole underlying storage block, ignoring
// the offset. Backends use it together with Offset and Strides to
// address elements of arbitrary (including negative-stride) views.
func (a *Array) StorageBytes() []byte {
	return a.buffer.data
}

// SharesStorageWith reports whether two arrays are views over the same
// storage block.
func (a *Array) SharesStorageWith(other *Array) bool {
	return a.buffer == other.buffer
}

// Clone returns a new handle sharing the same storage block.
func (a *Array) Clone() *Array {
	a.buffer.addRef()
	return &Array{
		buffer:  a.buffer,
		shape:   a.shape.Clone(),
		strides: a.strides.Clone(),
		dtype:   a.dtype,
		offset:  a.offset,
		device:  a.device,
	}
}

// Release drops this handle's storage reference. The block is freed
// when the last holder releases it.
func (a *Array) Release() {
	a.buffer.release()
}

// IsUniqueStorage reports whether this handle is the storage block's
// only holder.
func (a *Array) IsUniqueStorage() bool {
	return a.buffer.isUnique()
}

// String returns a short description of the handle.
func (a *Array) String() string {
	return fmt.Sprintf("Array[%s]%s on %s", a.dtype, a.shape, a.device)
}

// elemOffset computes the absolute byte offset of the element at the
// given indices, with bounds checks.
func (a *Array) elemOffset(indices ...int) int {
	if len(indices) != len(a.shape) {
		panic(fmt.Sprintf("array: expected %d indices, got %d", len(a.shape), len(indices)))
	}
	off := a.offset
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			panic(fmt.Sprintf("array: index %d out of bounds for axis %d (size %d)", idx, i, a.shape[i]))
		}
		off += idx * a.strides[i]
	}
	return off
}

// At returns the element at the given indices as a Scalar.
// Panics on rank or bounds violations.
func (a *Array) At(indices ...int) Scalar {
	return a.LoadScalar(a.elemOffset(indices...))
}

// SetAt stores v (converted to the array's dtype) at the given indices.
func (a *Array) SetAt(v Scalar, indices ...int) {
	a.StoreScalar(a.elemOffset(indices...), v)
}

// Item returns the single element of a 0-dim or one-element array.
func (a *Array) Item() Scalar {
	if a.NumElements() != 1 {
		panic(fmt.Sprintf("array: Item requires a single-element array, got shape %s", a.shape))
	}
	idx := make([]int, len(a.shape))
	return a.At(idx...)
}

// LoadScalar decodes the element at an absolute byte offset into the
// storage block.
func (a *Array) LoadScalar(byteOff int) Scalar {
	data := a.buffer.data
	switch a.dtype {
	case Bool:
		return BoolScalar(data[byteOff] != 0)
	case Uint8:
		return Scalar{kind: Uint8, i: int64(data[byteOff])}
	case Int32:
		return Scalar{kind: Int32, i: int64(int32(binary.LittleEndian.Uint32(data[byteOff:])))}
	case Int64:
		return Scalar{kind: Int64, i: int64(binary.LittleEndian.Uint64(data[byteOff:]))}
	case Float16:
		return Scalar{kind: Float16, f: float16Value(binary.LittleEndian.Uint16(data[byteOff:]))}
	case Float32:
		return Scalar{kind: Float32, f: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[byteOff:])))}
	case Float64:
		return Scalar{kind: Float64, f: math.Float64frombits(binary.LittleEndian.Uint64(data[byteOff:]))}
	default:
		panic("array: unknown dtype")
	}
}

// StoreScalar encodes v into the array's dtype at an absolute byte
// offset into the storage block.
func (a *Array) StoreScalar(byteOff int, v Scalar) {
	data := a.buffer.data
	switch a.dtype {
	case Bool:
		if v.Bool() {
			data[byteOff] = 1
		} else {
			data[byteOff] = 0
		}
	case Uint8:
		data[byteOff] = uint8(v.Int64())
	case Int32:
		binary.LittleEndian.PutUint32(data[byteOff:], uint32(int32(v.Int64())))
	case Int64:
		binary.LittleEndian.PutUint64(data[byteOff:], uint64(v.Int64()))
	case Float16:
		binary.LittleEndian.PutUint16(data[byteOff:], float16Bits(v.Float64()))
	case Float32:
		binary.LittleEndian.PutUint32(data[byteOff:], math.Float32bits(float32(v.Float64())))
	case Float64:
		binary.LittleEndian.PutUint64(data[byteOff:], math.Float64bits(v.Float64()))
	default:
		panic("array: unknown dtype")
	}
}

// requireContiguousView panics unless the typed slice accessors are
// safe to use.
func (a *Array) requireContiguousView(want Dtype) {
	if a.dtype != want {
		panic(fmt.Sprintf("array: dtype is %s, not %s", a.dtype, want))
	}
	if !a.IsContiguous() {
		panic("array: typed access requires a C-contiguous array")
	}
}

// AsFloat32 interprets contiguous storage as []float32.
// Panics if the dtype differs or the layout is not contiguous.
func (a *Array) AsFloat32() []float32 {
	a.requireContiguousView(Float32)
	if a.NumElements() == 0 {
		return nil
	}
	data := a.buffer.data[a.offset:]
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsFloat64 interprets contiguous storage as []float64.
func (a *Array) AsFloat64() []float64 {
	a.requireContiguousView(Float64)
	if a.NumElements() == 0 {
		return nil
	}
	data := a.buffer.data[a.offset:]
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsInt32 interprets contiguous storage as []int32.
func (a *Array) AsInt32() []int32 {
	a.requireContiguousView(Int32)
	if a.NumElements() == 0 {
		return nil
	}
	data := a.buffer.data[a.offset:]
	return unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsInt64 interprets contiguous storage as []int64.
func (a *Array) AsInt64() []int64 {
	a.requireContiguousView(Int64)
	if a.NumElements() == 0 {
		return nil
	}
	data := a.buffer.data[a.offset:]
	return unsafe.Slice((*int64)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsUint8 interprets contiguous storage as []uint8.
func (a *Array) AsUint8() []uint8 {
	a.requireContiguousView(Uint8)
	return a.buffer.data[a.offset : a.offset+a.NumElements()]
}

// AsBool interprets contiguous storage as []bool.
func (a *Array) AsBool() []bool {
	a.requireContiguousView(Bool)
	if a.NumElements() == 0 {
		return nil
	}
	data := a.buffer.data[a.offset:]
	return unsafe.Slice((*bool)(unsafe.Pointer(&data[0])), a.NumElements())
}

// DiagonalView returns a 1-dim view over the k-th diagonal of a 2-dim
// array: k = 0 is the main diagonal, k > 0 above, k < 0 below. The view
// shares storage with a. An off-edge k yields an empty view.
func (a *Array) DiagonalView(k int) (*Array, error) {
	if len(a.shape) != 2 {
		return nil, errors.Wrapf(ErrInvalidArgument, "diagonal view requires a 2-dim array, got shape %s", a.shape)
	}
	rows, cols := a.shape[0], a.shape[1]
	var n, off int
	if k >= 0 {
		n = min(rows, cols-k)
		off = a.offset + k*a.strides[1]
	} else {
		n = min(rows+k, cols)
		off = a.offset + (-k)*a.strides[0]
	}
	if n < 0 {
		n = 0
	}
	a.buffer.addRef()
	return &Array{
		buffer:  a.buffer,
		shape:   Shape{n},
		strides: Strides{a.strides[0] + a.strides[1]},
		dtype:   a.dtype,
		offset:  off,
		device:  a.device,
	}, nil
}
