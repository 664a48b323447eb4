package Containers

import (
	"golang.org/x/exp/constraints"

	"github.com/g-m-twostay/statree"
	"github.com/g-m-twostay/statree/Alloc"
	"github.com/g-m-twostay/statree/RBTree"
	"github.com/g-m-twostay/statree/Vecs"
)

// The constructors below bind a container façade to the compact, arena-
// style allocator: nodes packed into an index-addressable vector, handles
// are integers, and ShrinkToFit can reclaim space left by deletions. Each
// comes in a ReallocVec-backed form (for relocatable node content) and a
// StackedVec-backed form (for node content that must not be
// bitwise-relocated).

type compactSetAllocRe[H constraints.Unsigned, K any, W statree.Numeric] = *Alloc.CompactAlloc[H, K, struct{}, W, *Vecs.ReallocVec[Alloc.CompactNode[K, struct{}, H]]]
type compactSetAllocSt[H constraints.Unsigned, K any, W statree.Numeric] = *Alloc.CompactAlloc[H, K, struct{}, W, *Vecs.StackedVec[Alloc.CompactNode[K, struct{}, H]]]
type compactMapAllocRe[H constraints.Unsigned, K, V any, W statree.Numeric] = *Alloc.CompactAlloc[H, K, V, W, *Vecs.ReallocVec[Alloc.CompactNode[K, V, H]]]
type compactMapAllocSt[H constraints.Unsigned, K, V any, W statree.Numeric] = *Alloc.CompactAlloc[H, K, V, W, *Vecs.StackedVec[Alloc.CompactNode[K, V, H]]]

// NewCompactSet builds a relocatable-backed compact Set with a vector
// weight. H is the handle/index type (typically uint32).
func NewCompactSet[H constraints.Unsigned, K any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K) []W, d int) *Set[H, K, W, compactSetAllocRe[H, K, W]] {
	alloc := Alloc.NewCompactAllocRelocatable[H, K, struct{}, W](d)
	wf := func(k K, _ struct{}) []W { return weight(k) }
	t := RBTree.New[H, K, struct{}, W, compactSetAllocRe[H, K, W]](alloc, less, wf, d, false)
	return newSet[H, K, W, compactSetAllocRe[H, K, W]](t)
}

// NewSimpleCompactSet is NewCompactSet with a scalar weight.
func NewSimpleCompactSet[H constraints.Unsigned, K any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K) W) *Set[H, K, W, compactSetAllocRe[H, K, W]] {
	return NewCompactSet[H, K, W](less, func(k K) []W { return []W{weight(k)} }, 1)
}

// NewCompactSetStacked is NewCompactSet for K that must not be bitwise
// relocated.
func NewCompactSetStacked[H constraints.Unsigned, K any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K) []W, d, chunkSize int) *Set[H, K, W, compactSetAllocSt[H, K, W]] {
	alloc := Alloc.NewCompactAllocStacked[H, K, struct{}, W](chunkSize, d)
	wf := func(k K, _ struct{}) []W { return weight(k) }
	t := RBTree.New[H, K, struct{}, W, compactSetAllocSt[H, K, W]](alloc, less, wf, d, false)
	return newSet[H, K, W, compactSetAllocSt[H, K, W]](t)
}

// NewCompactMultiSet builds a relocatable-backed compact MultiSet with a
// vector weight.
func NewCompactMultiSet[H constraints.Unsigned, K any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K) []W, d int) *MultiSet[H, K, W, compactSetAllocRe[H, K, W]] {
	alloc := Alloc.NewCompactAllocRelocatable[H, K, struct{}, W](d)
	wf := func(k K, _ struct{}) []W { return weight(k) }
	t := RBTree.New[H, K, struct{}, W, compactSetAllocRe[H, K, W]](alloc, less, wf, d, true)
	return newMultiSet[H, K, W, compactSetAllocRe[H, K, W]](t)
}

// NewSimpleCompactMultiSet is NewCompactMultiSet with a scalar weight.
func NewSimpleCompactMultiSet[H constraints.Unsigned, K any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K) W) *MultiSet[H, K, W, compactSetAllocRe[H, K, W]] {
	return NewCompactMultiSet[H, K, W](less, func(k K) []W { return []W{weight(k)} }, 1)
}

// NewCompactMap builds a relocatable-backed compact Map with a vector
// weight.
func NewCompactMap[H constraints.Unsigned, K, V any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K, v V) []W, d int) *Map[H, K, V, W, compactMapAllocRe[H, K, V, W]] {
	alloc := Alloc.NewCompactAllocRelocatable[H, K, V, W](d)
	t := RBTree.New[H, K, V, W, compactMapAllocRe[H, K, V, W]](alloc, less, weight, d, false)
	return newMap[H, K, V, W, compactMapAllocRe[H, K, V, W]](t)
}

// NewSimpleCompactMap is NewCompactMap with a scalar weight.
func NewSimpleCompactMap[H constraints.Unsigned, K, V any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K, v V) W) *Map[H, K, V, W, compactMapAllocRe[H, K, V, W]] {
	return NewCompactMap[H, K, V, W](less, func(k K, v V) []W { return []W{weight(k, v)} }, 1)
}

// NewCompactMapStacked is NewCompactMap for K or V that must not be bitwise
// relocated.
func NewCompactMapStacked[H constraints.Unsigned, K, V any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K, v V) []W, d, chunkSize int) *Map[H, K, V, W, compactMapAllocSt[H, K, V, W]] {
	alloc := Alloc.NewCompactAllocStacked[H, K, V, W](chunkSize, d)
	t := RBTree.New[H, K, V, W, compactMapAllocSt[H, K, V, W]](alloc, less, weight, d, false)
	return newMap[H, K, V, W, compactMapAllocSt[H, K, V, W]](t)
}

// NewCompactMultiMap builds a relocatable-backed compact MultiMap with a
// vector weight.
func NewCompactMultiMap[H constraints.Unsigned, K, V any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K, v V) []W, d int) *MultiMap[H, K, V, W, compactMapAllocRe[H, K, V, W]] {
	alloc := Alloc.NewCompactAllocRelocatable[H, K, V, W](d)
	t := RBTree.New[H, K, V, W, compactMapAllocRe[H, K, V, W]](alloc, less, weight, d, true)
	return newMultiMap[H, K, V, W, compactMapAllocRe[H, K, V, W]](t)
}

// NewSimpleCompactMultiMap is NewCompactMultiMap with a scalar weight.
func NewSimpleCompactMultiMap[H constraints.Unsigned, K, V any, W statree.Numeric](less RBTree.LessFunc[K], weight func(k K, v V) W) *MultiMap[H, K, V, W, compactMapAllocRe[H, K, V, W]] {
	return NewCompactMultiMap[H, K, V, W](less, func(k K, v V) []W { return []W{weight(k, v)} }, 1)
}
