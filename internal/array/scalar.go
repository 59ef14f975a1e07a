package array

import (
	"fmt"

	"github.com/pkg/errors"
)

// Scalar is a typed scalar value used for fill values and range
// boundaries. It remembers the kind it was constructed from so entry
// points can infer a dtype when the caller omits one.
type Scalar struct {
	kind Dtype
	f    float64
	i    int64
	b    bool
}

// NewScalar builds a Scalar from a Go value. Supported kinds are the
// array element types plus int (mapped to Int64).
func NewScalar(v any) (Scalar, error) {
	switch x := v.(type) {
	case bool:
		return Scalar{kind: Bool, b: x}, nil
	case uint8:
		return Scalar{kind: Uint8, i: int64(x)}, nil
	case int:
		return Scalar{kind: Int64, i: int64(x)}, nil
	case int32:
		return Scalar{kind: Int32, i: int64(x)}, nil
	case int64:
		return Scalar{kind: Int64, i: x}, nil
	case float32:
		return Scalar{kind: Float32, f: float64(x)}, nil
	case float64:
		return Scalar{kind: Float64, f: x}, nil
	case Scalar:
		return x, nil
	default:
		return Scalar{}, errors.Wrapf(ErrInvalidArgument, "unsupported scalar type %T", v)
	}
}

// MustScalar is NewScalar that panics on unsupported types. Intended
// for literals in tests and call sites with compile-time known types.
func MustScalar(v any) Scalar {
	s, err := NewScalar(v)
	if err != nil {
		panic(err)
	}
	return s
}

// FloatScalar builds a Float64-kind scalar.
func FloatScalar(v float64) Scalar { return Scalar{kind: Float64, f: v} }

// IntScalar builds an Int64-kind scalar.
func IntScalar(v int64) Scalar { return Scalar{kind: Int64, i: v} }

// BoolScalar builds a Bool-kind scalar.
func BoolScalar(v bool) Scalar { return Scalar{kind: Bool, b: v} }

// Dtype returns the kind the scalar was constructed from.
func (s Scalar) Dtype() Dtype {
	if s.kind == DtypeInvalid {
		return Int64 // zero Scalar behaves as integer zero
	}
	return s.kind
}

// Float64 returns the value converted to float64.
func (s Scalar) Float64() float64 {
	switch s.Dtype() {
	case Bool:
		if s.b {
			return 1
		}
		return 0
	case Float16, Float32, Float64:
		return s.f
	default:
		return float64(s.i)
	}
}

// Int64 returns the value converted to int64. Float values truncate
// toward zero.
func (s Scalar) Int64() int64 {
	switch s.Dtype() {
	case Bool:
		if s.b {
			return 1
		}
		return 0
	case Float16, Float32, Float64:
		return int64(s.f)
	default:
		return s.i
	}
}

// Bool returns the value converted to bool (non-zero is true).
func (s Scalar) Bool() bool {
	switch s.Dtype() {
	case Bool:
		return s.b
	case Float16, Float32, Float64:
		return s.f != 0
	default:
		return s.i != 0
	}
}

// IsFloat reports whether the scalar carries a floating point kind.
func (s Scalar) IsFloat() bool { return s.Dtype().IsFloat() }

// String returns a printable representation.
func (s Scalar) String() string {
	switch s.Dtype() {
	case Bool:
		return fmt.Sprintf("%v", s.b)
	case Float16, Float32, Float64:
		return fmt.Sprintf("%g", s.f)
	default:
		return fmt.Sprintf("%d", s.i)
	}
}
