// Package Containers provides the set/multiset/map/multimap façades over
// RBTree.Tree: purely type-level bindings exposing the familiar
// ordered-associative-container surface — insert, erase, find,
// lower_bound, upper_bound, equal_range, count, contains, size, empty,
// clear, iterate — plus the order-statistic extensions (sum_before,
// sum_before_node, total_sum) that set this library apart from a plain
// ordered map. No façade carries state beyond its one underlying tree.
package Containers

import (
	"github.com/g-m-twostay/statree"
	"github.com/g-m-twostay/statree/Alloc"
	"github.com/g-m-twostay/statree/RBTree"
)

// container is the shared core embedded by Set, MultiSet, Map and MultiMap.
// It is not itself exported: callers only ever see it through one of the
// four named façades.
type container[H comparable, K, V any, W statree.Numeric, A Alloc.Allocator[H, K, V, W]] struct {
	t *RBTree.Tree[H, K, V, W, A]
}

func (c *container[H, K, V, W, A]) Size() int  { return c.t.Size() }
func (c *container[H, K, V, W, A]) Empty() bool { return c.t.Empty() }
func (c *container[H, K, V, W, A]) Clear()     { c.t.Clear() }

func (c *container[H, K, V, W, A]) NilHandle() H    { return c.t.NilHandle() }
func (c *container[H, K, V, W, A]) IsNil(h H) bool  { return c.t.IsNil(h) }
func (c *container[H, K, V, W, A]) Allocator() A    { return c.t.Allocator() }
func (c *container[H, K, V, W, A]) Key(h H) K       { return c.t.Key(h) }

func (c *container[H, K, V, W, A]) Contains(k K) bool { return !c.t.IsNil(c.t.Find(k)) }
func (c *container[H, K, V, W, A]) Count(k K) int     { return c.t.Count(k) }
func (c *container[H, K, V, W, A]) Find(k K) H        { return c.t.Find(k) }
func (c *container[H, K, V, W, A]) LowerBound(k K) H  { return c.t.LowerBound(k) }
func (c *container[H, K, V, W, A]) UpperBound(k K) H  { return c.t.UpperBound(k) }

// EqualRange returns [lower_bound(k), upper_bound(k)), the (possibly empty)
// range of entries comparing equal to k.
func (c *container[H, K, V, W, A]) EqualRange(k K) (H, H) {
	return c.t.LowerBound(k), c.t.UpperBound(k)
}

func (c *container[H, K, V, W, A]) Erase(h H) (H, error) { return c.t.Erase(h) }
func (c *container[H, K, V, W, A]) EraseRange(first, last H) (H, error) {
	return c.t.EraseRange(first, last)
}
func (c *container[H, K, V, W, A]) EraseKey(k K) (int, error) { return c.t.EraseKey(k) }

func (c *container[H, K, V, W, A]) First() H   { return c.t.First() }
func (c *container[H, K, V, W, A]) Last() H    { return c.t.Last() }
func (c *container[H, K, V, W, A]) Next(h H) H { return c.t.Next(h) }
func (c *container[H, K, V, W, A]) Prev(h H) H { return c.t.Prev(h) }

// Iterate calls fn once per entry in ascending key order, stopping early if
// fn returns false.
func (c *container[H, K, V, W, A]) Iterate(fn func(h H) bool) {
	for h := c.t.First(); !c.t.IsNil(h); h = c.t.Next(h) {
		if !fn(h) {
			return
		}
	}
}

func (c *container[H, K, V, W, A]) SumBefore(k K) ([]W, error)     { return c.t.SumBefore(k) }
func (c *container[H, K, V, W, A]) SumBeforeNode(h H) ([]W, error) { return c.t.SumBeforeNode(h) }
func (c *container[H, K, V, W, A]) TotalSum() []W                  { return c.t.TotalSum() }

func (c *container[H, K, V, W, A]) Check(tolerance float64) error { return c.t.Check(tolerance) }

// Stats is a cheap diagnostic snapshot of the underlying tree's shape,
// meant for a caller reporting health after each record rather than
// paying for a full Check.
func (c *container[H, K, V, W, A]) Stats() RBTree.Stats { return c.t.StatsSnapshot() }

// ShrinkToFit compacts the underlying allocator's backing storage, if it
// is compactable, fixing up the tree's own root handle in the process.
// Other handles a caller holds into a compact-backed container are not
// updated and may name a different or dropped slot afterwards; this method
// only protects the container's internal root link.
func (c *container[H, K, V, W, A]) ShrinkToFit() { c.t.ShrinkToFit() }
