package RBTree

import (
	"github.com/g-m-twostay/statree"
	"github.com/g-m-twostay/statree/Alloc"
)

// Insert adds (key, val). For a unique tree, if key already compares equal
// to an existing entry, insert does nothing and returns (existing handle,
// false, nil). For a multi tree, insertion always succeeds and the new
// entry is placed after every existing entry with an equal key (stable
// tail insertion).
func (t *Tree[H, K, V, W, A]) Insert(key K, val V) (H, bool, error) {
	return t.insertAt(t.findInsertionPoint(key), key, val)
}

// InsertHint behaves like Insert but first tries to attach the new entry
// next to hint in O(1), falling back to a full descent when the hint
// doesn't apply. For a unique tree the hint is used only when the new key
// sits strictly between prev(hint) and hint; for a multi tree, an
// equal-keyed hint means "insert immediately before hint", and any other
// hint is ignored in favor of a full descent (so a key greater than every
// existing key lands after Last()).
func (t *Tree[H, K, V, W, A]) InsertHint(hint H, key K, val V) (H, bool, error) {
	if p, ok := t.hintInsertionPoint(hint, key); ok {
		return t.insertAt(p, key, val)
	}
	return t.insertAt(t.findInsertionPoint(key), key, val)
}

// insertionPoint names where a new node attaches: under parent, as its
// left or right child. parent == Nil means "becomes the root". existing is
// set only for the unique-tree duplicate case, where found is true and the
// new entry is not inserted at all.
type insertionPoint[H comparable] struct {
	parent   H
	right    bool
	existing H
	found    bool
}

func (t *Tree[H, K, V, W, A]) findInsertionPoint(key K) insertionPoint[H] {
	x := t.root
	p := t.alloc.Nil()
	goRight := false
	for !t.IsNil(x) {
		p = x
		switch {
		case t.less(key, t.alloc.Key(x)):
			goRight = false
			x = t.alloc.Left(x)
		case t.less(t.alloc.Key(x), key):
			goRight = true
			x = t.alloc.Right(x)
		default:
			if !t.multi {
				return insertionPoint[H]{existing: x, found: true}
			}
			goRight = true
			x = t.alloc.Right(x)
		}
	}
	return insertionPoint[H]{parent: p, right: goRight}
}

// hintInsertionPoint implements InsertHint's fast path: ok is false when
// the hint doesn't apply and the caller must fall back to a full descent.
func (t *Tree[H, K, V, W, A]) hintInsertionPoint(hint H, key K) (insertionPoint[H], bool) {
	if t.IsNil(hint) || t.size == 0 {
		return insertionPoint[H]{}, false
	}
	hk := t.alloc.Key(hint)
	if t.multi {
		if !t.less(key, hk) && !t.less(hk, key) {
			// Equal to hint: insert immediately before hint.
			if l := t.alloc.Left(hint); t.IsNil(l) {
				return insertionPoint[H]{parent: hint, right: false}, true
			}
			pred := t.maxOf(t.alloc.Left(hint))
			return insertionPoint[H]{parent: pred, right: true}, true
		}
		return insertionPoint[H]{}, false
	}
	// Unique: usable only when key sits strictly between prev(hint) and
	// hint.
	if !t.less(key, hk) {
		return insertionPoint[H]{}, false
	}
	prev := t.Prev(hint)
	if !t.IsNil(prev) && !t.less(t.alloc.Key(prev), key) {
		return insertionPoint[H]{}, false
	}
	if l := t.alloc.Left(hint); t.IsNil(l) {
		return insertionPoint[H]{parent: hint, right: false}, true
	}
	pred := t.maxOf(t.alloc.Left(hint))
	return insertionPoint[H]{parent: pred, right: true}, true
}

func (t *Tree[H, K, V, W, A]) maxOf(h H) H {
	for {
		r := t.alloc.Right(h)
		if t.IsNil(r) {
			return h
		}
		h = r
	}
}

func (t *Tree[H, K, V, W, A]) insertAt(p insertionPoint[H], key K, val V) (H, bool, error) {
	if p.found {
		return p.existing, false, nil
	}
	nh, err := t.alloc.New(key, val, t.d)
	if err != nil {
		return t.alloc.Nil(), false, err
	}
	ownW := t.weight(key, val)
	t.alloc.SetSum(nh, statree.CopyVec(ownW))

	if t.IsNil(p.parent) {
		t.root = nh
	} else if p.right {
		t.alloc.SetRight(p.parent, nh)
	} else {
		t.alloc.SetLeft(p.parent, nh)
	}
	t.alloc.SetParent(nh, p.parent)
	t.alloc.SetColor(nh, Alloc.Red)

	for anc := p.parent; !t.IsNil(anc); anc = t.alloc.Parent(anc) {
		s := t.alloc.Sum(anc)
		if err := statree.AddVecChecked(s, ownW); err != nil {
			// An Arithmetic error during sum propagation is fatal: the
			// tree is left inconsistent. The node is already linked in,
			// so size/root bookkeeping must still reflect that.
			t.alloc.SetSum(anc, s)
			t.size++
			return nh, true, err
		}
		t.alloc.SetSum(anc, s)
	}
	t.size++
	t.insertFixup(nh)
	return nh, true, nil
}
