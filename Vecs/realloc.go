// Package Vecs provides the two growable backing stores used by the
// compact node allocator: ReallocVec, for bitwise-relocatable element
// types, and StackedVec, for element types that must never move once
// placed.
package Vecs

// MaxGrow bounds the per-growth increment of a ReallocVec: growth doubles
// the current capacity but never adds more than MaxGrow elements in one
// step, so peak overhead during a long run of pushes is current+MaxGrow
// rather than unbounded.
const MaxGrow = 131072

// Backing is the capability CompactAlloc needs from whichever vector backs
// it. ReallocVec and StackedVec both satisfy it; which one a given
// CompactAlloc instantiation uses is chosen once, as a type parameter, at
// compile time — never as a runtime branch.
type Backing[T any] interface {
	Len() int
	Push(v T) int
	Pop() (T, bool)
	Get(i int) *T
	Set(i int, v T)
	ShrinkTo(n int)
}

// ReallocVec is a contiguous growable array for element types that may be
// relocated by a plain copy (no internal self-pointers, no embedded
// synchronization primitives). Growth reallocates the whole backing array;
// Go gives user code no in-place-extend primitive, so unlike a systems
// language this always pays a copy, but the growth ceiling below still
// bounds the peak capacity overhead of each reallocation.
type ReallocVec[T any] struct {
	data []T
}

// NewReallocVec returns an empty vector with room for hint elements without
// reallocating.
func NewReallocVec[T any](hint int) *ReallocVec[T] {
	return &ReallocVec[T]{data: make([]T, 0, hint)}
}

func (v *ReallocVec[T]) Len() int { return len(v.data) }
func (v *ReallocVec[T]) Cap() int { return cap(v.data) }

func (v *ReallocVec[T]) Get(i int) *T { return &v.data[i] }
func (v *ReallocVec[T]) Set(i int, x T) { v.data[i] = x }

// Reserve grows the backing array, if needed, so that at least n elements
// fit without a further reallocation.
func (v *ReallocVec[T]) Reserve(n int) {
	if n > cap(v.data) {
		v.grow(n)
	}
}

// ReserveOk is the nothrow form of Reserve: it returns false instead of
// panicking if the host allocator refuses the request.
func (v *ReallocVec[T]) ReserveOk(n int) (ok bool) {
	if n <= cap(v.data) {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	v.grow(n)
	return true
}

func (v *ReallocVec[T]) grow(min int) {
	cur := cap(v.data)
	inc := cur
	if inc > MaxGrow {
		inc = MaxGrow
	}
	if inc == 0 {
		inc = 1
	}
	newCap := cur + inc
	if newCap < min {
		newCap = min
	}
	nd := make([]T, len(v.data), newCap)
	copy(nd, v.data)
	v.data = nd
}

// Push appends v, growing the backing array if necessary, and returns the
// index v now occupies.
func (v *ReallocVec[T]) Push(x T) int {
	if len(v.data) == cap(v.data) {
		v.grow(len(v.data) + 1)
	}
	v.data = append(v.data, x)
	return len(v.data) - 1
}

// PushOk is the nothrow form of Push.
func (v *ReallocVec[T]) PushOk(x T) (idx int, ok bool) {
	if len(v.data) == cap(v.data) {
		if !v.ReserveOk(len(v.data) + 1) {
			return 0, false
		}
	}
	v.data = append(v.data, x)
	return len(v.data) - 1, true
}

// Pop removes and returns the last element. ok is false on an empty vector.
func (v *ReallocVec[T]) Pop() (x T, ok bool) {
	if len(v.data) == 0 {
		return x, false
	}
	n := len(v.data) - 1
	x = v.data[n]
	v.data[n] = *new(T) // run T's destructor-equivalent: drop any references it held.
	v.data = v.data[:n]
	return x, true
}

// ShrinkTo discards trailing elements beyond n and may release the memory
// backing them.
func (v *ReallocVec[T]) ShrinkTo(n int) {
	if n >= len(v.data) {
		return
	}
	for i := n; i < len(v.data); i++ {
		v.data[i] = *new(T)
	}
	nd := make([]T, n)
	copy(nd, v.data[:n])
	v.data = nd
}

// Insert places x at position i, shifting everything at or after i one
// slot to the right.
func (v *ReallocVec[T]) Insert(i int, x T) {
	v.data = append(v.data, x)
	copy(v.data[i+1:], v.data[i:len(v.data)-1])
	v.data[i] = x
}

// Erase removes and returns the element at position i, shifting everything
// after it one slot to the left.
func (v *ReallocVec[T]) Erase(i int) T {
	x := v.data[i]
	copy(v.data[i:], v.data[i+1:])
	n := len(v.data) - 1
	v.data[n] = *new(T)
	v.data = v.data[:n]
	return x
}

// InsertRange inserts xs starting at position i.
func (v *ReallocVec[T]) InsertRange(i int, xs []T) {
	v.data = append(v.data, xs...)
	copy(v.data[i+len(xs):], v.data[i:len(v.data)-len(xs)])
	copy(v.data[i:], xs)
}

// Slice exposes the live elements. Callers must not retain the slice across
// a mutating call, since growth reallocates.
func (v *ReallocVec[T]) Slice() []T { return v.data }

var _ Backing[int] = (*ReallocVec[int])(nil)
