package array

import "github.com/pkg/errors"

// Strides is the ordered sequence of signed per-dimension byte steps,
// paired one-to-one with a Shape. Together with an element size and a
// byte offset it fixes every element's address:
//
//	address = base + offset + sum(index[i] * strides[i])
//
// Strides need not be positive or monotonic; views may be reversed or
// broadcast. The construction routines in this package only ever
// produce contiguous layouts or layouts explicitly requested by the
// caller.
type Strides []int

// Clone returns a copy of the strides.
func (st Strides) Clone() Strides {
	clone := make(Strides, len(st))
	copy(clone, st)
	return clone
}

// Equal reports whether two stride sequences are identical.
func (st Strides) Equal(other Strides) bool {
	if len(st) != len(other) {
		return false
	}
	for i := range st {
		if st[i] != other[i] {
			return false
		}
	}
	return true
}

// RequiredBytes returns the minimum buffer size, in bytes, such that
// every element addressed by (shape, strides) lies inside the buffer.
// It never underestimates, whatever the stride signs.
//
// Conventions: a 0-dim (scalar) shape needs itemSize bytes; a shape
// with any zero-size dimension needs 0 bytes, since no element is ever
// addressed. The zero-size convention is relied on by every call site
// in this package.
func RequiredBytes(shape Shape, strides Strides, itemSize int) int {
	_, extent := layoutBounds(shape, strides, itemSize)
	return extent
}

// layoutBounds returns the lowest byte offset the layout reaches
// relative to its base (non-positive; negative strides reach below)
// and the total extent in bytes from that lowest offset.
func layoutBounds(shape Shape, strides Strides, itemSize int) (lo, extent int) {
	if len(shape) != len(strides) {
		panic("array: shape/strides rank mismatch")
	}
	if len(shape) == 0 {
		return 0, itemSize
	}
	// The reachable offsets span [minOff, maxOff] where each axis
	// contributes (dim-1)*stride to one of the two bounds depending on
	// the stride sign. The extent covers that span plus one element.
	minOff, maxOff := 0, 0
	for i, dim := range shape {
		if dim == 0 {
			return 0, 0
		}
		span := (dim - 1) * strides[i]
		if span > 0 {
			maxOff += span
		} else {
			minOff += span
		}
	}
	return minOff, maxOff - minOff + itemSize
}

// checkLayoutFits verifies that every byte (offset, shape, strides)
// addresses lies inside a storage block of the given size.
func checkLayoutFits(shape Shape, strides Strides, itemSize, offset, storageSize int) error {
	lo, extent := layoutBounds(shape, strides, itemSize)
	if extent == 0 {
		return nil
	}
	if offset+lo < 0 {
		return errors.Wrapf(ErrPrecondition, "layout reaches %d bytes below the storage block", -(offset + lo))
	}
	if offset+lo+extent > storageSize {
		return errors.Wrapf(ErrPrecondition, "storage too small: layout needs %d bytes at offset %d, have %d", extent, offset+lo, storageSize)
	}
	return nil
}

// IsContiguous reports whether (shape, strides, offset) is exactly the
// canonical C-contiguous layout: row-major strides and zero offset.
func IsContiguous(shape Shape, strides Strides, itemSize, offset int) bool {
	if offset != 0 {
		return false
	}
	return strides.Equal(shape.ContiguousStrides(itemSize))
}
