package RBTree

import (
	"fmt"

	"github.com/g-m-twostay/statree"
	"github.com/g-m-twostay/statree/Alloc"
)

// Check walks the whole tree and verifies every structural invariant:
// parent/child link symmetry, BST key order between each node and its
// children (strict on both sides for a unique tree; a multi tree allows
// equal keys on either side), no red node has a
// red child, equal black-height on every leaf-to-root path, sum consistency
// within tolerance, and size matching an in-order walk. tolerance is an
// absolute componentwise bound for floating-point W (exact equality is
// required for integer W); a negative tolerance skips the sum check
// entirely. It never mutates the tree; failures are reported as
// *statree.InvariantViolatedError.
func (t *Tree[H, K, V, W, A]) Check(tolerance float64) error {
	n, blackHeight, err := t.checkSubtree(t.root, tolerance)
	if err != nil {
		return err
	}
	if n != t.size {
		return &statree.InvariantViolatedError{Reason: fmt.Sprintf("size()=%d but subtree walk counted %d live nodes", t.size, n)}
	}
	_ = blackHeight
	if !t.IsNil(t.root) && t.alloc.Color(t.root) != Alloc.Black {
		return &statree.InvariantViolatedError{Reason: "root is not black"}
	}
	if walked := t.countInOrder(); walked != t.size {
		return &statree.InvariantViolatedError{Reason: fmt.Sprintf("size()=%d but in-order walk from first() visited %d nodes", t.size, walked)}
	}
	return t.checkCompactFreeList()
}

// Stats is a cheap diagnostic snapshot, meant for a caller (e.g. cmd/ordstat
// under -c) that wants to report tree shape without paying for a full
// Check.
type Stats struct {
	Size        int
	Empty       bool
	BlackHeight int
}

// StatsSnapshot reports Size/Empty directly and BlackHeight by descending
// the leftmost spine, counting black nodes. On a tree that currently
// satisfies the equal-black-height invariant this equals every other
// path's black-height; it does not itself verify that invariant (use Check
// for that).
func (t *Tree[H, K, V, W, A]) StatsSnapshot() Stats {
	bh := 0
	for h := t.root; !t.IsNil(h); h = t.alloc.Left(h) {
		if t.alloc.Color(h) == Alloc.Black {
			bh++
		}
	}
	return Stats{Size: t.size, Empty: t.size == 0, BlackHeight: bh}
}

// checkSubtree returns (live node count, black-height) for the subtree
// rooted at h, or an error on the first violated invariant.
func (t *Tree[H, K, V, W, A]) checkSubtree(h H, tolerance float64) (int, int, error) {
	if t.IsNil(h) {
		return 0, 0, nil
	}
	k := t.alloc.Key(h)
	l, r := t.alloc.Left(h), t.alloc.Right(h)

	if !t.IsNil(l) {
		if t.alloc.Parent(l) != h {
			return 0, 0, &statree.InvariantViolatedError{Reason: "left child's parent link does not point back"}
		}
		lk := t.alloc.Key(l)
		if t.multi {
			if t.less(k, lk) {
				return 0, 0, &statree.InvariantViolatedError{Reason: "left subtree key greater than node key"}
			}
		} else if !t.less(lk, k) {
			return 0, 0, &statree.InvariantViolatedError{Reason: "left subtree key not strictly less than node key in a unique tree"}
		}
	}
	if !t.IsNil(r) {
		if t.alloc.Parent(r) != h {
			return 0, 0, &statree.InvariantViolatedError{Reason: "right child's parent link does not point back"}
		}
		rk := t.alloc.Key(r)
		if t.less(rk, k) {
			return 0, 0, &statree.InvariantViolatedError{Reason: "right subtree key less than node key"}
		}
		if !t.multi && !t.less(k, rk) {
			return 0, 0, &statree.InvariantViolatedError{Reason: "right subtree key not strictly greater than node key in a unique tree"}
		}
	}

	if t.alloc.Color(h) == Alloc.Red {
		if t.colorOf(l) == Alloc.Red || t.colorOf(r) == Alloc.Red {
			return 0, 0, &statree.InvariantViolatedError{Reason: "red node has a red child"}
		}
	}

	ln, lbh, err := t.checkSubtree(l, tolerance)
	if err != nil {
		return 0, 0, err
	}
	rn, rbh, err := t.checkSubtree(r, tolerance)
	if err != nil {
		return 0, 0, err
	}
	if lbh != rbh {
		return 0, 0, &statree.InvariantViolatedError{Reason: fmt.Sprintf("unequal black-height: left=%d right=%d", lbh, rbh)}
	}

	if tolerance >= 0 {
		own := t.weight(k, t.alloc.Value(h))
		want := statree.CopyVec(own)
		if err := statree.AddVecChecked(want, t.sumOf(l)); err != nil {
			return 0, 0, err
		}
		if err := statree.AddVecChecked(want, t.sumOf(r)); err != nil {
			return 0, 0, err
		}
		got := t.alloc.Sum(h)
		if !statree.EqualVec(want, got, tolerance) {
			return 0, 0, &statree.InvariantViolatedError{Reason: fmt.Sprintf("stored sum %v does not match w+children %v within tolerance %g", got, want, tolerance)}
		}
	}

	bh := lbh
	if t.alloc.Color(h) == Alloc.Black {
		bh++
	}
	return ln + rn + 1, bh, nil
}

func (t *Tree[H, K, V, W, A]) countInOrder() int {
	n := 0
	for h := t.First(); !t.IsNil(h); h = t.Next(h) {
		n++
	}
	return n
}

// compactChecker is implemented by Alloc.CompactAlloc[H, ...]; Check uses it
// to verify invariant 6 (free-list partition correctness) when A happens to
// be a compact back-end. H is shared with the enclosing Tree's handle type,
// so the type assertion below matches CompactAlloc's actual method set
// exactly regardless of which unsigned integer H is.
type compactChecker[H comparable] interface {
	Live() int
	SlotCount() int
	IsFree(h H) bool
	FreeHead() H
	FreeListNeighbors(h H) (prev, next H)
}

func (t *Tree[H, K, V, W, A]) checkCompactFreeList() error {
	cc, ok := any(t.alloc).(compactChecker[H])
	if !ok {
		return nil
	}
	total := cc.SlotCount()
	nilH := t.alloc.Nil()
	free := 0
	seen := make(map[H]bool, total)
	n := cc.FreeHead()
	for steps := 0; n != nilH && steps <= total; steps++ {
		if seen[n] {
			return &statree.InvariantViolatedError{Reason: "compact allocator free list cycles"}
		}
		seen[n] = true
		if !cc.IsFree(n) {
			return &statree.InvariantViolatedError{Reason: "compact allocator free list references a live slot"}
		}
		free++
		_, next := cc.FreeListNeighbors(n)
		n = next
	}
	// H carries no numeric constraint here (Tree only requires it
	// comparable), so slots can't be enumerated by reconstructing H from an
	// int; the cycle-freedom check above plus this cardinality check
	// together still pin down that the free list is exactly the free slots,
	// since every free slot walked was independently confirmed free.
	if cc.Live()+free != total {
		return &statree.InvariantViolatedError{Reason: fmt.Sprintf("live(%d) + free(%d) != slot count(%d)", cc.Live(), free, total)}
	}
	return nil
}
