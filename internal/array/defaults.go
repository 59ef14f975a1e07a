package array

// Default-substitution behavior for omitted optional parameters, in one
// place. Entry points never apply defaults inline.
//
//   - omitted device (zero Device)    -> DefaultDevice()
//   - omitted dtype (DtypeInvalid)    -> context default below
//   - omitted strides (nil)           -> contiguous layout for the shape
//   - omitted Linspace num (negative) -> DefaultLinspaceNum
//   - omitted Linspace endpoint       -> true (facade concern)
//   - omitted Eye m (negative)        -> n

// DefaultLinspaceNum is the element count Linspace uses when the
// caller passes a negative num.
const DefaultLinspaceNum = 50

// resolveDtype substitutes fallback for an unspecified dtype.
func resolveDtype(dt, fallback Dtype) Dtype {
	if dt == DtypeInvalid {
		return fallback
	}
	return dt
}
