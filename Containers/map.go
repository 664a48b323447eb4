package Containers

import (
	"github.com/g-m-twostay/statree"
	"github.com/g-m-twostay/statree/Alloc"
	"github.com/g-m-twostay/statree/RBTree"
)

// Map is an ordered map façade: at most one entry per distinct key.
type Map[H comparable, K, V any, W statree.Numeric, A Alloc.Allocator[H, K, V, W]] struct {
	container[H, K, V, W, A]
}

func (m *Map[H, K, V, W, A]) Put(k K, v V) (H, bool, error)           { return m.t.Insert(k, v) }
func (m *Map[H, K, V, W, A]) PutHint(hint H, k K, v V) (H, bool, error) { return m.t.InsertHint(hint, k, v) }
func (m *Map[H, K, V, W, A]) Value(h H) V                              { return m.t.Value(h) }

// At returns the value stored at k, or statree.KeyAbsentError if k is not
// present.
func (m *Map[H, K, V, W, A]) At(k K) (V, error) {
	h := m.t.Find(k)
	if m.t.IsNil(h) {
		var zero V
		return zero, &statree.KeyAbsentError{Key: k}
	}
	return m.t.Value(h), nil
}

// Index is the default-inserting indexed get (std::map::operator[]'s
// analogue): it returns the value at k, inserting a zero-valued entry
// first if k is absent.
func (m *Map[H, K, V, W, A]) Index(k K) (V, error) {
	h := m.t.Find(k)
	if !m.t.IsNil(h) {
		return m.t.Value(h), nil
	}
	var zero V
	nh, _, err := m.t.Insert(k, zero)
	if err != nil {
		return zero, err
	}
	return m.t.Value(nh), nil
}

// SetValue inserts (k, v) if absent, or overwrites the existing value at k.
// It reports whether a new entry was inserted.
func (m *Map[H, K, V, W, A]) SetValue(k K, v V) (bool, error) { return m.t.SetValue(k, v) }

// UpdateValue overwrites h's value in place and re-derives every affected
// subtree sum.
func (m *Map[H, K, V, W, A]) UpdateValue(h H, v V) error { return m.t.UpdateValue(h, v) }

// MultiMap is an ordered multimap façade: any number of entries may share a
// key. Unlike Map it exposes neither At nor Index, since neither has an
// unambiguous meaning once a key may name more than one entry; use Find /
// LowerBound / EqualRange to pick a specific handle, then Value/UpdateValue.
type MultiMap[H comparable, K, V any, W statree.Numeric, A Alloc.Allocator[H, K, V, W]] struct {
	container[H, K, V, W, A]
}

func (m *MultiMap[H, K, V, W, A]) Put(k K, v V) (H, bool, error) { return m.t.Insert(k, v) }
func (m *MultiMap[H, K, V, W, A]) PutHint(hint H, k K, v V) (H, bool, error) {
	return m.t.InsertHint(hint, k, v)
}
func (m *MultiMap[H, K, V, W, A]) Value(h H) V               { return m.t.Value(h) }
func (m *MultiMap[H, K, V, W, A]) UpdateValue(h H, v V) error { return m.t.UpdateValue(h, v) }

func newMap[H comparable, K, V any, W statree.Numeric, A Alloc.Allocator[H, K, V, W]](t *RBTree.Tree[H, K, V, W, A]) *Map[H, K, V, W, A] {
	return &Map[H, K, V, W, A]{container[H, K, V, W, A]{t: t}}
}

func newMultiMap[H comparable, K, V any, W statree.Numeric, A Alloc.Allocator[H, K, V, W]](t *RBTree.Tree[H, K, V, W, A]) *MultiMap[H, K, V, W, A] {
	return &MultiMap[H, K, V, W, A]{container[H, K, V, W, A]{t: t}}
}
