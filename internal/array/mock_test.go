package array

// Test-only backend registered for a private device kind so the
// creation routines can be exercised without importing a real backend
// package.

const testKind DeviceKind = 100

var testDevice = Device{Kind: testKind}

// mockAllocator hands out plain host memory.
type mockAllocator struct{}

func (mockAllocator) Allocate(nbytes int) ([]byte, error) {
	return make([]byte, nbytes), nil
}

type mockFill struct{}

func (mockFill) Call(value Scalar, out *Array) error {
	ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
		out.StoreScalar(off, value)
	})
	return nil
}

type mockArange struct{}

func (mockArange) Call(start, step Scalar, out *Array) error {
	if out.Dtype().IsFloat() {
		lo, d := start.Float64(), step.Float64()
		i := 0
		ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
			out.StoreScalar(off, FloatScalar(lo+float64(i)*d))
			i++
		})
		return nil
	}
	lo, d := start.Int64(), step.Int64()
	i := int64(0)
	ForEachOffset(out.Shape(), out.Strides(), out.Offset(), func(off int) {
		out.StoreScalar(off, IntScalar(lo+i*d))
		i++
	})
	return nil
}

type mockCopy struct{}

func (mockCopy) Call(a, out *Array) error {
	ForEachOffsetPair(a.Shape(), a.Strides(), a.Offset(), out.Strides(), out.Offset(), func(so, do int) {
		out.StoreScalar(do, a.LoadScalar(so))
	})
	return nil
}

type mockAsType struct{}

func (mockAsType) Call(a, out *Array) error {
	ForEachOffsetPair(a.Shape(), a.Strides(), a.Offset(), out.Strides(), out.Offset(), func(so, do int) {
		out.StoreScalar(do, a.LoadScalar(so))
	})
	return nil
}

type mockIdentity struct{}

func (mockIdentity) Call(out *Array) error {
	one := IntScalar(1)
	for i := 0; i < out.Shape()[0]; i++ {
		out.SetAt(one, i, i)
	}
	return nil
}

type mockEye struct{}

func (mockEye) Call(k int, out *Array) error {
	one := IntScalar(1)
	for i := 0; i < out.Shape()[0]; i++ {
		j := i + k
		if j >= 0 && j < out.Shape()[1] {
			out.SetAt(one, i, j)
		}
	}
	return nil
}

type mockDiagflat struct{}

func (mockDiagflat) Call(v *Array, k int, out *Array) error {
	for i := 0; i < v.NumElements(); i++ {
		row, col := i, i+k
		if k < 0 {
			row, col = i-k, i
		}
		out.SetAt(v.At(i), row, col)
	}
	return nil
}

type mockLinspace struct{}

func (mockLinspace) Call(start, stop float64, out *Array) error {
	n := out.NumElements()
	if n == 1 {
		out.SetAt(FloatScalar(start), 0)
		return nil
	}
	step := (stop - start) / float64(n-1)
	for i := 0; i < n; i++ {
		v := start + float64(i)*step
		if i == n-1 {
			v = stop
		}
		out.SetAt(FloatScalar(v), i)
	}
	return nil
}

func init() {
	RegisterAllocator(testKind, mockAllocator{})
	RegisterOp(OpFill, testKind, mockFill{})
	RegisterOp(OpArange, testKind, mockArange{})
	RegisterOp(OpCopy, testKind, mockCopy{})
	RegisterOp(OpAsType, testKind, mockAsType{})
	RegisterOp(OpIdentity, testKind, mockIdentity{})
	RegisterOp(OpEye, testKind, mockEye{})
	RegisterOp(OpDiagflat, testKind, mockDiagflat{})
	RegisterOp(OpLinspace, testKind, mockLinspace{})
}
