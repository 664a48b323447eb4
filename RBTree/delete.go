package RBTree

import (
	"github.com/g-m-twostay/statree"
	"github.com/g-m-twostay/statree/Alloc"
)

// transplant replaces the subtree rooted at u with the subtree rooted at v
// (v may be Nil), rewiring u's former parent and v's new parent link.
func (t *Tree[H, K, V, W, A]) transplant(u, v H) {
	p := t.alloc.Parent(u)
	t.setChild(p, u, v)
	if !t.IsNil(v) {
		t.alloc.SetParent(v, p)
	}
}

// Erase removes the entry at h and returns the handle of its in-order
// successor (Nil if h was the last entry). When h has two children, the
// in-order successor node is relinked into h's old position by pointer
// rewiring rather than by copying its key/value into h — so a handle any
// caller holds to the successor (which is exactly the handle this call
// returns) stays valid and keeps naming the same entry.
func (t *Tree[H, K, V, W, A]) Erase(h H) (H, error) {
	if t.IsNil(h) {
		return t.alloc.Nil(), &statree.InvalidHandleError{Reason: "Erase on nil handle"}
	}
	succ := t.Next(h)

	z := h
	y := z
	origColor := t.colorOf(y)
	var x, xParent H

	switch {
	case t.IsNil(t.alloc.Left(z)):
		x = t.alloc.Right(z)
		xParent = t.alloc.Parent(z)
		t.transplant(z, x)
	case t.IsNil(t.alloc.Right(z)):
		x = t.alloc.Left(z)
		xParent = t.alloc.Parent(z)
		t.transplant(z, x)
	default:
		y = t.minOf(t.alloc.Right(z))
		origColor = t.colorOf(y)
		x = t.alloc.Right(y)
		if t.alloc.Parent(y) == z {
			xParent = y
		} else {
			xParent = t.alloc.Parent(y)
			t.transplant(y, x)
			zr := t.alloc.Right(z)
			t.alloc.SetRight(y, zr)
			t.alloc.SetParent(zr, y)
		}
		t.transplant(z, y)
		zl := t.alloc.Left(z)
		t.alloc.SetLeft(y, zl)
		t.alloc.SetParent(zl, y)
		t.alloc.SetColor(y, t.colorOf(z))
	}

	// Re-derive sums bottom-up along the chain of nodes whose subtree
	// contents changed, from xParent up to the root. This is an equally
	// valid discipline to decrementing w(z) along z's old ancestor chain
	// before the splice, since the tree has no concurrent observer that
	// could see an intermediate, partially-updated sum.
	var propErr error
	for cur := xParent; !t.IsNil(cur); cur = t.alloc.Parent(cur) {
		if err := t.recomputeSum(cur); err != nil && propErr == nil {
			propErr = err
		}
	}

	t.size--
	if origColor == Alloc.Black {
		t.deleteFixup(x, xParent)
	}
	t.alloc.Free(z)
	if propErr != nil {
		return succ, propErr
	}
	return succ, nil
}

func (t *Tree[H, K, V, W, A]) minOf(h H) H {
	for {
		l := t.alloc.Left(h)
		if t.IsNil(l) {
			return h
		}
		h = l
	}
}

// EraseRange erases every entry in [first, last) and returns last.
func (t *Tree[H, K, V, W, A]) EraseRange(first, last H) (H, error) {
	cur := first
	for cur != last {
		if t.IsNil(cur) {
			return t.alloc.Nil(), &statree.InvalidHandleError{Reason: "EraseRange: last not reachable from first"}
		}
		next, err := t.Erase(cur)
		if err != nil {
			return last, err
		}
		cur = next
	}
	return last, nil
}

// EraseKey erases every entry with key == k and returns how many were
// removed.
func (t *Tree[H, K, V, W, A]) EraseKey(k K) (int, error) {
	first := t.LowerBound(k)
	last := t.UpperBound(k)
	n := 0
	cur := first
	for cur != last {
		if t.IsNil(cur) {
			break
		}
		next, err := t.Erase(cur)
		if err != nil {
			return n, err
		}
		n++
		cur = next
	}
	return n, nil
}
