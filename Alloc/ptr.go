package Alloc

import "github.com/g-m-twostay/statree"

// pnode is one individually heap-allocated node record. Its subtree-sum
// storage is fused into the node rather than kept in a side table: for the
// scalar (D=1) case sum1 holds the single component inline, costing no
// allocation beyond the node itself; for D>1 sum holds a separately
// allocated length-D slice, since an array field can't be sized by a
// runtime value. simple records which of the two is live.
type pnode[K, V any, W statree.Numeric] struct {
	key         K
	val         V
	left, right *pnode[K, V, W]
	parent      *pnode[K, V, W]
	color       Color
	simple      bool
	sum1        [1]W
	sum         []W
}

// PtrHandle is PtrAlloc's handle type, exported as an alias so callers
// outside this package (the Containers façades) can name it as an explicit
// type argument to RBTree.New without reaching into pnode, which stays
// unexported.
type PtrHandle[K, V any, W statree.Numeric] = *pnode[K, V, W]

// PtrAlloc allocates one record per node with the host allocator. Capacity
// is unbounded (up to what the host can provide); this back-end is
// preferred for containers holding few, large entries.
type PtrAlloc[K, V any, W statree.Numeric] struct {
	nilNode *pnode[K, V, W]
}

// NewPtrAlloc constructs a PtrAlloc with its permanent nil sentinel: a
// single black node whose own links point to itself, never mutated again.
func NewPtrAlloc[K, V any, W statree.Numeric]() *PtrAlloc[K, V, W] {
	nilN := &pnode[K, V, W]{color: Black}
	nilN.left, nilN.right, nilN.parent = nilN, nilN, nilN
	return &PtrAlloc[K, V, W]{nilNode: nilN}
}

func (a *PtrAlloc[K, V, W]) Nil() *pnode[K, V, W] { return a.nilNode }

func (a *PtrAlloc[K, V, W]) New(key K, val V, d int) (*pnode[K, V, W], error) {
	n, ok := a.NewOk(key, val, d)
	if !ok {
		return nil, &statree.OutOfMemoryError{Op: "PtrAlloc.New"}
	}
	return n, nil
}

func (a *PtrAlloc[K, V, W]) NewOk(key K, val V, d int) (n *pnode[K, V, W], ok bool) {
	defer func() {
		if recover() != nil {
			n, ok = nil, false
		}
	}()
	nn := &pnode[K, V, W]{
		key: key, val: val,
		left: a.nilNode, right: a.nilNode, parent: a.nilNode,
		color:  Red,
		simple: d == 1,
	}
	if d > 1 {
		nn.sum = statree.ZeroVec[W](d)
	}
	return nn, true
}

func (a *PtrAlloc[K, V, W]) Free(h *pnode[K, V, W]) {
	// Nothing to release explicitly; the Go GC reclaims h once it becomes
	// unreachable. Free exists so PtrAlloc satisfies Allocator and so
	// RBTree.Tree's clear/erase paths read the same regardless of backend.
	h.left, h.right, h.parent = nil, nil, nil
	h.sum = nil
	h.sum1 = [1]W{}
}

func (a *PtrAlloc[K, V, W]) Key(h *pnode[K, V, W]) K   { return h.key }
func (a *PtrAlloc[K, V, W]) Value(h *pnode[K, V, W]) V { return h.val }
func (a *PtrAlloc[K, V, W]) SetValue(h *pnode[K, V, W], v V) { h.val = v }

func (a *PtrAlloc[K, V, W]) Left(h *pnode[K, V, W]) *pnode[K, V, W]   { return h.left }
func (a *PtrAlloc[K, V, W]) Right(h *pnode[K, V, W]) *pnode[K, V, W]  { return h.right }
func (a *PtrAlloc[K, V, W]) Parent(h *pnode[K, V, W]) *pnode[K, V, W] { return h.parent }
func (a *PtrAlloc[K, V, W]) SetLeft(h, c *pnode[K, V, W])   { h.left = c }
func (a *PtrAlloc[K, V, W]) SetRight(h, c *pnode[K, V, W])  { h.right = c }
func (a *PtrAlloc[K, V, W]) SetParent(h, c *pnode[K, V, W]) { h.parent = c }

func (a *PtrAlloc[K, V, W]) Color(h *pnode[K, V, W]) Color        { return h.color }
func (a *PtrAlloc[K, V, W]) SetColor(h *pnode[K, V, W], c Color) { h.color = c }

func (a *PtrAlloc[K, V, W]) Sum(h *pnode[K, V, W]) []W {
	if h.simple {
		return h.sum1[:]
	}
	return h.sum
}

func (a *PtrAlloc[K, V, W]) SetSum(h *pnode[K, V, W], s []W) {
	if h.simple {
		h.sum1[0] = s[0]
		return
	}
	h.sum = s
}

var _ Allocator[*pnode[int, int, int], int, int, int] = (*PtrAlloc[int, int, int])(nil)
