// Package array implements the core strided array model: shapes, byte
// strides, dtypes, device handles and the construction routines that
// produce arrays on a target device through the op registry.
package array

import (
	"github.com/x448/float16"
)

// Element is a constraint for element types usable with the generic
// helpers. It mirrors the supported Dtype set; Float16 has no native Go
// representation and is only reachable through the Dtype-based API.
type Element interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// Dtype is the runtime element type tag of an array.
type Dtype int

// Supported element types. DtypeInvalid is the zero value and stands
// for "not specified"; entry points substitute their documented default.
const (
	DtypeInvalid Dtype = iota
	Bool
	Uint8
	Int32
	Int64
	Float16
	Float32
	Float64
)

// DefaultFloatDtype is substituted when an entry point with an optional
// dtype (Eye, Linspace, float Arange) is called without one.
const DefaultFloatDtype = Float32

// DefaultIntDtype is substituted for Arange over integer scalars.
const DefaultIntDtype = Int64

// Size returns the element byte width.
func (dt Dtype) Size() int {
	switch dt {
	case Bool, Uint8:
		return 1
	case Float16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		panic("array: unknown dtype")
	}
}

// IsFloat reports whether dt is a floating point kind.
func (dt Dtype) IsFloat() bool {
	switch dt {
	case Float16, Float32, Float64:
		return true
	default:
		return false
	}
}

// String returns a human-readable name for the dtype.
func (dt Dtype) String() string {
	switch dt {
	case Bool:
		return "bool"
	case Uint8:
		return "uint8"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case DtypeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// DtypeOf infers the Dtype for a Go element type.
func DtypeOf[T Element]() Dtype {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("array: unsupported element type")
	}
}

// float16Bits converts a float64 to IEEE 754 binary16 bits.
func float16Bits(v float64) uint16 {
	return float16.Fromfloat32(float32(v)).Bits()
}

// float16Value converts IEEE 754 binary16 bits to float64.
func float16Value(bits uint16) float64 {
	return float64(float16.Frombits(bits).Float32())
}
