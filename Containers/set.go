package Containers

import (
	"github.com/g-m-twostay/statree"
	"github.com/g-m-twostay/statree/Alloc"
	"github.com/g-m-twostay/statree/RBTree"
)

// Set is an ordered set façade: at most one entry per distinct key.
type Set[H comparable, K any, W statree.Numeric, A Alloc.Allocator[H, K, struct{}, W]] struct {
	container[H, K, struct{}, W, A]
}

// Put inserts k if absent. It reports whether an insertion happened.
func (s *Set[H, K, W, A]) Put(k K) (H, bool, error) {
	return s.t.Insert(k, struct{}{})
}

// PutHint is Put with an insertion-point hint.
func (s *Set[H, K, W, A]) PutHint(hint H, k K) (H, bool, error) {
	return s.t.InsertHint(hint, k, struct{}{})
}

// MultiSet is an ordered multiset façade: any number of entries may share a
// key, in stable insertion order among themselves.
type MultiSet[H comparable, K any, W statree.Numeric, A Alloc.Allocator[H, K, struct{}, W]] struct {
	container[H, K, struct{}, W, A]
}

func (s *MultiSet[H, K, W, A]) Put(k K) (H, bool, error) {
	return s.t.Insert(k, struct{}{})
}

func (s *MultiSet[H, K, W, A]) PutHint(hint H, k K) (H, bool, error) {
	return s.t.InsertHint(hint, k, struct{}{})
}

func newSet[H comparable, K any, W statree.Numeric, A Alloc.Allocator[H, K, struct{}, W]](t *RBTree.Tree[H, K, struct{}, W, A]) *Set[H, K, W, A] {
	return &Set[H, K, W, A]{container[H, K, struct{}, W, A]{t: t}}
}

func newMultiSet[H comparable, K any, W statree.Numeric, A Alloc.Allocator[H, K, struct{}, W]](t *RBTree.Tree[H, K, struct{}, W, A]) *MultiSet[H, K, W, A] {
	return &MultiSet[H, K, W, A]{container[H, K, struct{}, W, A]{t: t}}
}
