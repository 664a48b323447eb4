// Package statree provides generalized order-statistic associative
// containers: ordered sets, multisets, maps and multimaps whose nodes are
// augmented with a user-supplied weight function so that partial sums over
// key ranges can be computed in O(log N).
package statree

import "golang.org/x/exp/constraints"

// Numeric is the set of types usable as a weight-vector component W. It
// must support default construction (the Go zero value), addition,
// subtraction and equality, which every type satisfying it gets for free
// from Go's arithmetic and comparison operators.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// AddChecked returns a+b along with an error if the addition overflowed or
// underflowed. For integer W this detects wraparound using only comparison
// operators (no bit-width introspection is needed): if b is non-negative
// the sum must not be smaller than a, and if b is negative the sum must not
// be larger than a. Floating-point addition never wraps, so the same check
// is a harmless no-op for float W.
func AddChecked[W Numeric](a, b W) (W, error) {
	s := a + b
	if b >= 0 {
		if s < a {
			return s, &ArithmeticError{Op: "add", A: a, B: b}
		}
	} else if s > a {
		return s, &ArithmeticError{Op: "add", A: a, B: b}
	}
	return s, nil
}

// SubChecked returns a-b along with an error if the subtraction overflowed
// or underflowed, using the mirror image of AddChecked's reasoning.
func SubChecked[W Numeric](a, b W) (W, error) {
	s := a - b
	if b >= 0 {
		if s > a {
			return s, &ArithmeticError{Op: "sub", A: a, B: b}
		}
	} else if s < a {
		return s, &ArithmeticError{Op: "sub", A: a, B: b}
	}
	return s, nil
}

// AddVecChecked adds b into a componentwise, in place, stopping and
// reporting the first component that overflows. Both slices must have the
// same length (the container's weight arity D); callers within this module
// guarantee that invariant.
func AddVecChecked[W Numeric](a, b []W) error {
	for i := range a {
		s, err := AddChecked(a[i], b[i])
		if err != nil {
			return err
		}
		a[i] = s
	}
	return nil
}

// SubVecChecked mirrors AddVecChecked for subtraction.
func SubVecChecked[W Numeric](a, b []W) error {
	for i := range a {
		s, err := SubChecked(a[i], b[i])
		if err != nil {
			return err
		}
		a[i] = s
	}
	return nil
}

// ZeroVec returns a fresh all-zero weight vector of arity d.
func ZeroVec[W Numeric](d int) []W {
	return make([]W, d)
}

// EqualVec reports whether a and b are componentwise equal within
// tolerance. A negative tolerance means "skip the check entirely"; callers
// that want an exact check pass tolerance == 0.
func EqualVec[W Numeric](a, b []W, tolerance float64) bool {
	if tolerance < 0 {
		return true
	}
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		if d < 0 {
			d = -d
		}
		if d > tolerance {
			return false
		}
	}
	return true
}

// CopyVec returns a fresh copy of v.
func CopyVec[W Numeric](v []W) []W {
	out := make([]W, len(v))
	copy(out, v)
	return out
}
