// Package RBTree implements the augmented red-black tree at the center of
// this library: every node's stored subtree sum is kept consistent, under
// insertion, deletion, rotation and value update, with the componentwise
// sum of a caller-supplied weight function over its subtree.
package RBTree

import (
	"github.com/g-m-twostay/statree"
	"github.com/g-m-twostay/statree/Alloc"
)

// WeightFunc computes an entry's own weight-vector contribution. The
// returned slice must always have the tree's fixed arity D.
type WeightFunc[K, V any, W statree.Numeric] func(key K, val V) []W

// LessFunc is the caller-supplied total order over keys.
type LessFunc[K any] func(a, b K) bool

// Tree is a red-black tree parameterized over a node storage back-end A, a
// comparator, a weight function and a uniqueness policy. H is the
// allocator's handle type: a pointer for Alloc.PtrAlloc, an integer index
// for Alloc.CompactAlloc.
type Tree[H comparable, K, V any, W statree.Numeric, A Alloc.Allocator[H, K, V, W]] struct {
	alloc  A
	root   H
	size   int
	d      int
	less   LessFunc[K]
	weight WeightFunc[K, V, W]
	multi  bool
}

// New constructs an empty tree. d is the weight function's fixed arity;
// multi selects the multi (duplicate keys allowed) uniqueness policy over
// the unique one.
func New[H comparable, K, V any, W statree.Numeric, A Alloc.Allocator[H, K, V, W]](alloc A, less LessFunc[K], weight WeightFunc[K, V, W], d int, multi bool) *Tree[H, K, V, W, A] {
	return &Tree[H, K, V, W, A]{alloc: alloc, root: alloc.Nil(), d: d, less: less, weight: weight, multi: multi}
}

func (t *Tree[H, K, V, W, A]) Size() int   { return t.size }
func (t *Tree[H, K, V, W, A]) Empty() bool { return t.size == 0 }
func (t *Tree[H, K, V, W, A]) NilHandle() H { return t.alloc.Nil() }
func (t *Tree[H, K, V, W, A]) IsNil(h H) bool { return h == t.alloc.Nil() }
func (t *Tree[H, K, V, W, A]) Root() H      { return t.root }

func (t *Tree[H, K, V, W, A]) Key(h H) K   { return t.alloc.Key(h) }
func (t *Tree[H, K, V, W, A]) Value(h H) V { return t.alloc.Value(h) }

// Allocator exposes the underlying allocator, e.g. for CompactAlloc's
// ShrinkToFit; Tree itself never assumes which back-end it has.
func (t *Tree[H, K, V, W, A]) Allocator() A { return t.alloc }

// --- Nil-safe accessors -----------------------------------------------
//
// PtrAlloc's Nil handle is a self-referential sentinel node; CompactAlloc's
// is its permanent sentinel slot 0. These wrappers answer for Nil without
// consulting the allocator (Black, Nil links, an all-zero sum), so the
// sentinel's stored fields never reach the tree's logic; code below that
// calls the allocator directly does so on handles it knows are not Nil.

func (t *Tree[H, K, V, W, A]) colorOf(h H) Alloc.Color {
	if t.IsNil(h) {
		return Alloc.Black
	}
	return t.alloc.Color(h)
}

func (t *Tree[H, K, V, W, A]) leftOf(h H) H {
	if t.IsNil(h) {
		return t.alloc.Nil()
	}
	return t.alloc.Left(h)
}

func (t *Tree[H, K, V, W, A]) rightOf(h H) H {
	if t.IsNil(h) {
		return t.alloc.Nil()
	}
	return t.alloc.Right(h)
}

func (t *Tree[H, K, V, W, A]) parentOf(h H) H {
	if t.IsNil(h) {
		return t.alloc.Nil()
	}
	return t.alloc.Parent(h)
}

func (t *Tree[H, K, V, W, A]) sumOf(h H) []W {
	if t.IsNil(h) {
		return statree.ZeroVec[W](t.d)
	}
	return t.alloc.Sum(h)
}

func (t *Tree[H, K, V, W, A]) setChild(parent, oldChild, newChild H) {
	if t.IsNil(parent) {
		t.root = newChild
		return
	}
	if t.alloc.Left(parent) == oldChild {
		t.alloc.SetLeft(parent, newChild)
	} else {
		t.alloc.SetRight(parent, newChild)
	}
}

// recomputeSum recomputes h's stored subtree sum from its own (freshly
// evaluated) weight plus its two children's currently-stored sums. It
// never touches h's ancestors.
func (t *Tree[H, K, V, W, A]) recomputeSum(h H) error {
	if t.IsNil(h) {
		return nil
	}
	own := t.weight(t.alloc.Key(h), t.alloc.Value(h))
	s := statree.CopyVec(own)
	if err := statree.AddVecChecked(s, t.sumOf(t.leftOf(h))); err != nil {
		return err
	}
	if err := statree.AddVecChecked(s, t.sumOf(t.rightOf(h))); err != nil {
		return err
	}
	t.alloc.SetSum(h, s)
	return nil
}

// rotateLeft: x's right child y takes x's place; y's old left subtree
// becomes x's new right subtree. Sums are re-derived for x then y, in that
// order, since y's new subtree now includes x.
func (t *Tree[H, K, V, W, A]) rotateLeft(x H) error {
	y := t.alloc.Right(x)
	yl := t.alloc.Left(y)
	t.alloc.SetRight(x, yl)
	if !t.IsNil(yl) {
		t.alloc.SetParent(yl, x)
	}
	p := t.alloc.Parent(x)
	t.alloc.SetParent(y, p)
	t.setChild(p, x, y)
	t.alloc.SetLeft(y, x)
	t.alloc.SetParent(x, y)
	if err := t.recomputeSum(x); err != nil {
		return err
	}
	return t.recomputeSum(y)
}

// rotateRight mirrors rotateLeft.
func (t *Tree[H, K, V, W, A]) rotateRight(x H) error {
	y := t.alloc.Left(x)
	yr := t.alloc.Right(y)
	t.alloc.SetLeft(x, yr)
	if !t.IsNil(yr) {
		t.alloc.SetParent(yr, x)
	}
	p := t.alloc.Parent(x)
	t.alloc.SetParent(y, p)
	t.setChild(p, x, y)
	t.alloc.SetRight(y, x)
	t.alloc.SetParent(x, y)
	if err := t.recomputeSum(x); err != nil {
		return err
	}
	return t.recomputeSum(y)
}

// Clear empties the tree. It frees every node through the allocator
// (PtrAlloc.Free only clears the node's links and sum, leaving the memory
// to the GC; CompactAlloc.Free splices every
// slot onto its free list) rather than discarding the allocator itself, so
// a CompactAlloc's backing vectors are reused rather than reallocated by
// the next insert.
func (t *Tree[H, K, V, W, A]) Clear() {
	t.clearSubtree(t.root)
	t.root = t.alloc.Nil()
	t.size = 0
}

func (t *Tree[H, K, V, W, A]) clearSubtree(h H) {
	if t.IsNil(h) {
		return
	}
	l, r := t.alloc.Left(h), t.alloc.Right(h)
	t.clearSubtree(l)
	t.clearSubtree(r)
	t.alloc.Free(h)
}

// TotalSum is the tree's root subtree sum, or an all-zero vector when empty.
func (t *Tree[H, K, V, W, A]) TotalSum() []W {
	return statree.CopyVec(t.sumOf(t.root))
}

// shrinker is implemented by Alloc.CompactAlloc[H, ...]; ShrinkToFit uses it
// to compact the allocator's backing vectors while fixing up the one
// external handle Tree itself holds (its root). The type assertion mirrors
// compactChecker in check.go.
type shrinker[H any] interface {
	ShrinkToFit(roots ...*H)
}

// ShrinkToFit compacts the underlying allocator, if it is a CompactAlloc,
// passing &t.root so the root handle is rewritten in place should its node
// be the one relocated. On a PtrAlloc-backed tree, which has no compaction
// step, it is a no-op.
func (t *Tree[H, K, V, W, A]) ShrinkToFit() {
	if s, ok := any(t.alloc).(shrinker[H]); ok {
		s.ShrinkToFit(&t.root)
	}
}
