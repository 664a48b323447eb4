package statree

import "fmt"

// The error kinds below are each a plain struct implementing error,
// constructed with the offending values so callers can errors.As into them
// for detail, rather than matching on an opaque string.

// OutOfMemoryError is returned when a host allocation failed. The tree is
// left unchanged by the operation that triggered it.
type OutOfMemoryError struct {
	Op string
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("statree: out of memory during %s", e.Op)
}

// ArithmeticError is returned when adding or subtracting weight-vector
// components overflowed or underflowed. It is fatal to the tree that raised
// it: sum propagation may have stopped partway.
type ArithmeticError struct {
	Op   string
	A, B any
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("statree: arithmetic overflow in %s(%v, %v)", e.Op, e.A, e.B)
}

// InvalidHandleError is returned when a nil/sentinel handle is passed where
// a live node was required, or when a range's two handles don't belong to
// the same tree.
type InvalidHandleError struct {
	Reason string
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("statree: invalid handle: %s", e.Reason)
}

// KeyAbsentError is returned by Map.At when the key is not present.
type KeyAbsentError struct {
	Key any
}

func (e *KeyAbsentError) Error() string {
	return fmt.Sprintf("statree: key not present: %v", e.Key)
}

// OutOfRangeError is returned by positional access beyond size.
type OutOfRangeError struct {
	Index, Size int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("statree: index %d out of range [0,%d)", e.Index, e.Size)
}

// InvariantViolatedError is returned by check() and is purely diagnostic.
type InvariantViolatedError struct {
	Reason string
}

func (e *InvariantViolatedError) Error() string {
	return fmt.Sprintf("statree: invariant violated: %s", e.Reason)
}

// CapacityError is returned by the compact allocator when the index type's
// range (minus the two sentinels, halved for the packed color bit) is
// exhausted.
type CapacityError struct {
	Limit uint64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("statree: compact allocator at capacity (limit %d live nodes)", e.Limit)
}
