package RBTree

import "github.com/g-m-twostay/statree"

// Min is First renamed for callers thinking in terms of key order rather
// than iteration position.
func (t *Tree[H, K, V, W, A]) Min() H { return t.First() }

// Max is Last renamed for callers thinking in terms of key order rather
// than iteration position.
func (t *Tree[H, K, V, W, A]) Max() H { return t.Last() }

// First returns the handle of the in-order first entry, or Nil if empty.
func (t *Tree[H, K, V, W, A]) First() H {
	if t.IsNil(t.root) {
		return t.alloc.Nil()
	}
	h := t.root
	for l := t.alloc.Left(h); !t.IsNil(l); l = t.alloc.Left(h) {
		h = l
	}
	return h
}

// Last returns the handle of the in-order last entry, or Nil if empty.
func (t *Tree[H, K, V, W, A]) Last() H {
	if t.IsNil(t.root) {
		return t.alloc.Nil()
	}
	h := t.root
	for r := t.alloc.Right(h); !t.IsNil(r); r = t.alloc.Right(h) {
		h = r
	}
	return h
}

// Next returns h's in-order successor. Next(Nil) is Nil.
func (t *Tree[H, K, V, W, A]) Next(h H) H {
	if t.IsNil(h) {
		return t.alloc.Nil()
	}
	if r := t.alloc.Right(h); !t.IsNil(r) {
		h = r
		for l := t.alloc.Left(h); !t.IsNil(l); l = t.alloc.Left(h) {
			h = l
		}
		return h
	}
	p := t.alloc.Parent(h)
	for !t.IsNil(p) && h == t.alloc.Right(p) {
		h = p
		p = t.alloc.Parent(h)
	}
	return p
}

// Prev returns h's in-order predecessor. Prev(Nil) is Last(), so that an
// end iterator can be decremented.
func (t *Tree[H, K, V, W, A]) Prev(h H) H {
	if t.IsNil(h) {
		return t.Last()
	}
	if l := t.alloc.Left(h); !t.IsNil(l) {
		h = l
		for r := t.alloc.Right(h); !t.IsNil(r); r = t.alloc.Right(h) {
			h = r
		}
		return h
	}
	p := t.alloc.Parent(h)
	for !t.IsNil(p) && h == t.alloc.Left(p) {
		h = p
		p = t.alloc.Parent(h)
	}
	return p
}

// Find returns the handle of an entry equal to k, or Nil if none exists.
// For a multi tree, any one of the (possibly several) equal entries may be
// returned; in practice it returns lower_bound(k) when that key matches.
func (t *Tree[H, K, V, W, A]) Find(k K) H {
	h := t.LowerBound(k)
	if !t.IsNil(h) && !t.less(k, t.alloc.Key(h)) {
		return h
	}
	return t.alloc.Nil()
}

// LowerBound returns the handle of the first entry with key >= k, or Nil.
func (t *Tree[H, K, V, W, A]) LowerBound(k K) H {
	x := t.root
	res := t.alloc.Nil()
	for !t.IsNil(x) {
		if !t.less(t.alloc.Key(x), k) {
			res = x
			x = t.alloc.Left(x)
		} else {
			x = t.alloc.Right(x)
		}
	}
	return res
}

// UpperBound returns the handle of the first entry with key > k, or Nil.
func (t *Tree[H, K, V, W, A]) UpperBound(k K) H {
	x := t.root
	res := t.alloc.Nil()
	for !t.IsNil(x) {
		if t.less(k, t.alloc.Key(x)) {
			res = x
			x = t.alloc.Left(x)
		} else {
			x = t.alloc.Right(x)
		}
	}
	return res
}

// Count returns the number of entries with key == k.
func (t *Tree[H, K, V, W, A]) Count(k K) int {
	n := 0
	for h := t.LowerBound(k); !t.IsNil(h) && !t.less(k, t.alloc.Key(h)) && !t.less(t.alloc.Key(h), k); h = t.Next(h) {
		n++
	}
	return n
}

// SumBeforeNode computes the componentwise sum of w over every entry that
// precedes h in in-order: the left subtree's sum, plus the
// own-weight-and-left-sum of every ancestor h ascends past as a right
// child. h == Nil yields TotalSum().
func (t *Tree[H, K, V, W, A]) SumBeforeNode(h H) ([]W, error) {
	if t.IsNil(h) {
		return t.TotalSum(), nil
	}
	acc := statree.ZeroVec[W](t.d)
	if err := statree.AddVecChecked(acc, t.sumOf(t.alloc.Left(h))); err != nil {
		return acc, err
	}
	cur := h
	p := t.alloc.Parent(cur)
	for !t.IsNil(p) {
		if cur == t.alloc.Right(p) {
			own := t.weight(t.alloc.Key(p), t.alloc.Value(p))
			if err := statree.AddVecChecked(acc, own); err != nil {
				return acc, err
			}
			if err := statree.AddVecChecked(acc, t.sumOf(t.alloc.Left(p))); err != nil {
				return acc, err
			}
		}
		cur = p
		p = t.alloc.Parent(cur)
	}
	return acc, nil
}

// SumBefore is SumBeforeNode(LowerBound(k)): the componentwise sum of w
// over every entry with key strictly less than k.
func (t *Tree[H, K, V, W, A]) SumBefore(k K) ([]W, error) {
	return t.SumBeforeNode(t.LowerBound(k))
}

// UpdateValue overwrites h's value and re-propagates its subtree sum up to
// the root. It returns InvalidHandleError for Nil/sentinel h.
func (t *Tree[H, K, V, W, A]) UpdateValue(h H, v V) error {
	if t.IsNil(h) {
		return &statree.InvalidHandleError{Reason: "UpdateValue on nil handle"}
	}
	t.alloc.SetValue(h, v)
	for cur := h; !t.IsNil(cur); cur = t.alloc.Parent(cur) {
		if err := t.recomputeSum(cur); err != nil {
			return err
		}
	}
	return nil
}

// SetValue inserts (k, v) if k is absent, or overwrites the value of an
// existing entry with key k (the first one, for a multi tree) otherwise.
// It returns whether a new entry was inserted.
func (t *Tree[H, K, V, W, A]) SetValue(k K, v V) (bool, error) {
	if h := t.Find(k); !t.IsNil(h) {
		return false, t.UpdateValue(h, v)
	}
	_, _, err := t.Insert(k, v)
	return true, err
}
