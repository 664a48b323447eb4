package Containers

import (
	"github.com/g-m-twostay/statree"
	"github.com/g-m-twostay/statree/Alloc"
	"github.com/g-m-twostay/statree/RBTree"
)

// The constructors below bind a container façade to the pointer-style
// allocator: one heap record per node, unbounded capacity. Each comes in a
// vector-weight form (weight returns a length-d slice) and a "simple"
// scalar-weight form pinning D = 1, since the scalar case is just the
// vector case with D = 1.

type ptrSetHandle[K any, W statree.Numeric] = Alloc.PtrHandle[K, struct{}, W]
type ptrMapHandle[K, V any, W statree.Numeric] = Alloc.PtrHandle[K, V, W]

// NewPtrSet builds a pointer-backed Set with a length-d vector weight.
func NewPtrSet[K any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K) []W, d int) *Set[ptrSetHandle[K, W], K, W, *Alloc.PtrAlloc[K, struct{}, W]] {
	alloc := Alloc.NewPtrAlloc[K, struct{}, W]()
	wf := func(k K, _ struct{}) []W { return weight(k) }
	t := RBTree.New[ptrSetHandle[K, W], K, struct{}, W, *Alloc.PtrAlloc[K, struct{}, W]](alloc, less, wf, d, false)
	return newSet[ptrSetHandle[K, W], K, W, *Alloc.PtrAlloc[K, struct{}, W]](t)
}

// NewSimplePtrSet builds a pointer-backed Set with a scalar weight.
func NewSimplePtrSet[K any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K) W) *Set[ptrSetHandle[K, W], K, W, *Alloc.PtrAlloc[K, struct{}, W]] {
	return NewPtrSet[K, W](less, func(k K) []W { return []W{weight(k)} }, 1)
}

// NewPtrMultiSet builds a pointer-backed MultiSet with a vector weight.
func NewPtrMultiSet[K any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K) []W, d int) *MultiSet[ptrSetHandle[K, W], K, W, *Alloc.PtrAlloc[K, struct{}, W]] {
	alloc := Alloc.NewPtrAlloc[K, struct{}, W]()
	wf := func(k K, _ struct{}) []W { return weight(k) }
	t := RBTree.New[ptrSetHandle[K, W], K, struct{}, W, *Alloc.PtrAlloc[K, struct{}, W]](alloc, less, wf, d, true)
	return newMultiSet[ptrSetHandle[K, W], K, W, *Alloc.PtrAlloc[K, struct{}, W]](t)
}

// NewSimplePtrMultiSet builds a pointer-backed MultiSet with a scalar weight.
func NewSimplePtrMultiSet[K any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K) W) *MultiSet[ptrSetHandle[K, W], K, W, *Alloc.PtrAlloc[K, struct{}, W]] {
	return NewPtrMultiSet[K, W](less, func(k K) []W { return []W{weight(k)} }, 1)
}

// NewPtrMap builds a pointer-backed Map with a vector weight.
func NewPtrMap[K, V any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K, v V) []W, d int) *Map[ptrMapHandle[K, V, W], K, V, W, *Alloc.PtrAlloc[K, V, W]] {
	alloc := Alloc.NewPtrAlloc[K, V, W]()
	t := RBTree.New[ptrMapHandle[K, V, W], K, V, W, *Alloc.PtrAlloc[K, V, W]](alloc, less, weight, d, false)
	return newMap[ptrMapHandle[K, V, W], K, V, W, *Alloc.PtrAlloc[K, V, W]](t)
}

// NewSimplePtrMap builds a pointer-backed Map with a scalar weight.
func NewSimplePtrMap[K, V any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K, v V) W) *Map[ptrMapHandle[K, V, W], K, V, W, *Alloc.PtrAlloc[K, V, W]] {
	return NewPtrMap[K, V, W](less, func(k K, v V) []W { return []W{weight(k, v)} }, 1)
}

// NewPtrMultiMap builds a pointer-backed MultiMap with a vector weight.
func NewPtrMultiMap[K, V any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K, v V) []W, d int) *MultiMap[ptrMapHandle[K, V, W], K, V, W, *Alloc.PtrAlloc[K, V, W]] {
	alloc := Alloc.NewPtrAlloc[K, V, W]()
	t := RBTree.New[ptrMapHandle[K, V, W], K, V, W, *Alloc.PtrAlloc[K, V, W]](alloc, less, weight, d, true)
	return newMultiMap[ptrMapHandle[K, V, W], K, V, W, *Alloc.PtrAlloc[K, V, W]](t)
}

// NewSimplePtrMultiMap builds a pointer-backed MultiMap with a scalar weight.
func NewSimplePtrMultiMap[K, V any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K, v V) W) *MultiMap[ptrMapHandle[K, V, W], K, V, W, *Alloc.PtrAlloc[K, V, W]] {
	return NewPtrMultiMap[K, V, W](less, func(k K, v V) []W { return []W{weight(k, v)} }, 1)
}
