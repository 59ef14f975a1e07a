package array

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Shape is the ordered sequence of per-dimension element counts.
// Dimensions may be zero (the array then addresses no elements);
// negative dimensions are invalid. A zero-length Shape is a scalar.
type Shape []int

// NumElements returns the total number of logical elements.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is non-negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return errors.Wrapf(ErrInvalidArgument, "shape %v: negative dimension %d at axis %d", s, dim, i)
		}
	}
	return nil
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String formats the shape as (d0, d1, ...).
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ContiguousStrides returns the canonical row-major byte strides for
// the shape with the given element size. The last axis moves by one
// element; each earlier axis moves by the full extent of the axes
// after it.
func (s Shape) ContiguousStrides(itemSize int) Strides {
	strides := make(Strides, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = itemSize
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Axes lists dimension indices for reduction-shaped outputs.
type Axes []int

// validate checks bounds and rejects duplicates against ndim.
func (a Axes) validate(ndim int) error {
	seen := make(map[int]bool, len(a))
	for _, ax := range a {
		if ax < 0 || ax >= ndim {
			return errors.Wrapf(ErrInvalidArgument, "axis %d out of range for %d-dim shape", ax, ndim)
		}
		if seen[ax] {
			return errors.Wrapf(ErrInvalidArgument, "duplicate axis %d", ax)
		}
		seen[ax] = true
	}
	return nil
}

// reduce removes the listed axes from s, or collapses them to size 1
// when keepdims is set.
func (s Shape) reduce(axes Axes, keepdims bool) (Shape, error) {
	if err := axes.validate(len(s)); err != nil {
		return nil, err
	}
	drop := make(map[int]bool, len(axes))
	for _, ax := range axes {
		drop[ax] = true
	}
	out := make(Shape, 0, len(s))
	for i, dim := range s {
		switch {
		case !drop[i]:
			out = append(out, dim)
		case keepdims:
			out = append(out, 1)
		}
	}
	return out, nil
}
