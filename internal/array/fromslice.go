package array

import (
	"unsafe"

	"github.com/pkg/errors"
)

// FromSlice copies a typed host slice into a fresh contiguous array on
// the target device. The dtype is derived from T and the slice length
// must match the shape's element count.
func FromSlice[T Element](data []T, shape Shape, device Device) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, errors.Wrapf(ErrInvalidArgument, "shape %s needs %d elements, slice has %d", shape, shape.NumElements(), len(data))
	}
	dt := DtypeOf[T]()
	out, err := Empty(shape, dt, device)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		//nolint:gosec // unsafe.Slice for zero-copy view of the source slice
		src := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*dt.Size())
		copy(out.Data()[:out.NBytes()], src)
	}
	return out, nil
}

// Data returns a's elements as a typed slice sharing the array's
// storage. Panics when T does not match a's dtype or the layout is not
// C-contiguous, like the typed As* accessors.
func Data[T Element](a *Array) []T {
	want := DtypeOf[T]()
	if a.Dtype() != want {
		panic("array: dtype is " + a.Dtype().String() + ", not " + want.String())
	}
	if !a.IsContiguous() {
		panic("array: typed access requires a C-contiguous array")
	}
	if a.NumElements() == 0 {
		return nil
	}
	data := a.Data()
	//nolint:gosec // unsafe.Slice for zero-copy typed view of contiguous storage
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), a.NumElements())
}
