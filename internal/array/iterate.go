package array

// ForEachOffset walks every logical element of (shape, strides) in
// row-major index order, calling fn with the element's absolute byte
// offset (base offset included). Handles negative and zero strides; a
// zero-size dimension yields no calls. Backends use this for their
// strided slow paths.
func ForEachOffset(shape Shape, strides Strides, offset int, fn func(byteOff int)) {
	if shape.NumElements() == 0 {
		return
	}
	if len(shape) == 0 {
		fn(offset)
		return
	}
	idx := make([]int, len(shape))
	off := offset
	for {
		fn(off)
		// Odometer increment, least significant axis last.
		axis := len(shape) - 1
		for {
			idx[axis]++
			off += strides[axis]
			if idx[axis] < shape[axis] {
				break
			}
			idx[axis] = 0
			off -= shape[axis] * strides[axis]
			axis--
			if axis < 0 {
				return
			}
		}
	}
}

// ForEachOffsetPair walks two same-shaped views in lockstep, calling fn
// with paired absolute byte offsets. Used by copy/cast implementations.
func ForEachOffsetPair(shape Shape, src Strides, srcOff int, dst Strides, dstOff int, fn func(srcByteOff, dstByteOff int)) {
	if shape.NumElements() == 0 {
		return
	}
	if len(shape) == 0 {
		fn(srcOff, dstOff)
		return
	}
	idx := make([]int, len(shape))
	so, do := srcOff, dstOff
	for {
		fn(so, do)
		axis := len(shape) - 1
		for {
			idx[axis]++
			so += src[axis]
			do += dst[axis]
			if idx[axis] < shape[axis] {
				break
			}
			idx[axis] = 0
			so -= shape[axis] * src[axis]
			do -= shape[axis] * dst[axis]
			axis--
			if axis < 0 {
				return
			}
		}
	}
}
