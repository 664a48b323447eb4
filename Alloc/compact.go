package Alloc

import (
	"golang.org/x/exp/constraints"

	"github.com/g-m-twostay/statree"
	"github.com/g-m-twostay/statree/Vecs"
)

// cnode is one slot of a CompactAlloc's node vector, including the two
// permanent sentinel slots (nilIdx, headerIdx) every CompactAlloc carries
// from construction. The subtree-sum vector is deliberately not a field
// here: sums live in their own vector so they stay bitwise-relocatable even
// when B (the backing store for cnode itself) is a StackedVec chosen
// because K or V cannot be.
//
// parentColor packs the node's parent index and its own color bit into one
// word. A reserved value marks a free-list slot; see packParent/unpackParent
// below.
type cnode[K, V any, H constraints.Unsigned] struct {
	key         K
	val         V
	left, right H // free-list prev/next when this slot is deleted.
	parentColor H
}

// CompactNode is a CompactAlloc's backing-vector element type, exported as
// an alias (mirroring PtrHandle) so external code can name a full
// CompactAlloc instantiation — e.g. as an explicit type argument to
// RBTree.New — without reaching into cnode, which stays unexported.
// NewCompactAllocRelocatable/NewCompactAllocStacked remain the easier way to
// actually construct one.
type CompactNode[K, V any, H constraints.Unsigned] = cnode[K, V, H]

func maxOf[H constraints.Unsigned]() H { return ^H(0) }

// capLimit bounds the total number of arena slots a CompactAlloc[H] can
// address, the two permanent sentinels included: half of H's range, so the
// free-list's deleted-slot marker (maxOf[H]()) stays strictly above every
// value a packed parent-and-color field can legitimately hold. For a
// 32-bit H this is 2^31 - 1.
func capLimit[H constraints.Unsigned]() H {
	return maxOf[H]() >> 1
}

// packParent and unpackParent just pack an index and a color bit into one
// word, the color in H's high bit (set for Red); unlike an arena that
// virtualizes nil out of its address space, nilIdx is itself a real,
// packable slot index here, so no remapping is needed to represent "no
// parent".
func packParent[H constraints.Unsigned](parent H, c Color) H {
	if c == Red {
		return parent | (maxOf[H]() ^ maxOf[H]()>>1)
	}
	return parent
}

func unpackParent[H constraints.Unsigned](pc H) (H, Color) {
	hi := maxOf[H]() ^ maxOf[H]()>>1
	return pc &^ hi, Color(pc&hi != 0)
}

func deletedMarker[H constraints.Unsigned]() H { return maxOf[H]() }

// nilIdx and headerIdx are the two permanent sentinel slots every
// CompactAlloc allocates at construction, mirroring the pointer back-end's
// single self-referential nil node but split across two slots, since the
// compact data model also needs a header ("root parent") slot to keep its
// sentinel accounting symmetric with the two-sentinels model generally:
// neither is ever freed, relocated, or reused, and every real node's index
// is strictly greater than headerIdx.
const nilIdx = 0
const headerIdx = 1

// CompactAlloc stores every node inside B (a Vecs.ReallocVec or
// Vecs.StackedVec of cnode), with a separate Vecs.ReallocVec of W holding
// all the subtree sums back to back, D per node. Handles are indices into
// that vector; freeing a node splices its slot into an intrusive
// doubly-linked free list instead of shrinking the vector, so New reuses
// freed slots before it ever grows the backing store. B is fixed at
// CompactAlloc's instantiation: a compile-time choice, not a runtime
// branch.
//
// Construction pushes the two permanent sentinel slots described at nilIdx
// and headerIdx before any real node exists, so live and SlotCount start at
// 2 rather than 0 and never drop below it.
type CompactAlloc[H constraints.Unsigned, K, V any, W statree.Numeric, B Vecs.Backing[cnode[K, V, H]]] struct {
	nodes    B
	sums     Vecs.ReallocVec[W]
	d        int
	freeHead H
	live     int
}

// NewCompactAlloc constructs a CompactAlloc holding only its two permanent
// sentinel slots. nodes must be a fresh, empty B (e.g.
// Vecs.NewReallocVec[cnode[K,V,H]](0) or Vecs.NewStackedVec[cnode[K,V,H]](0));
// d is the weight arity.
func NewCompactAlloc[H constraints.Unsigned, K, V any, W statree.Numeric, B Vecs.Backing[cnode[K, V, H]]](nodes B, d int) *CompactAlloc[H, K, V, W, B] {
	a := &CompactAlloc[H, K, V, W, B]{nodes: nodes, d: d, freeHead: H(nilIdx)}
	a.initSentinels()
	return a
}

// initSentinels pushes the nil and header slots, in that order, so their
// indices land at nilIdx and headerIdx respectively. Both are
// self-referential and black, same as the pointer back-end's single nil
// node; neither is ever freed, relocated, or handed out by New.
func (a *CompactAlloc[H, K, V, W, B]) initSentinels() {
	self := H(nilIdx)
	sentinel := cnode[K, V, H]{left: self, right: self, parentColor: packParent(self, Black)}
	a.nodes.Push(sentinel)
	a.nodes.Push(sentinel)
	for i := 0; i < 2*a.d; i++ {
		a.sums.Push(W(0))
	}
	a.live = 2
}

// NewCompactAllocRelocatable constructs a CompactAlloc backed by a
// ReallocVec, for node types safe to bitwise-relocate during growth.
// Callers never need to name cnode themselves; K, V, W and H alone pin
// down B.
func NewCompactAllocRelocatable[H constraints.Unsigned, K, V any, W statree.Numeric](d int) *CompactAlloc[H, K, V, W, *Vecs.ReallocVec[cnode[K, V, H]]] {
	return NewCompactAlloc[H, K, V, W](Vecs.NewReallocVec[cnode[K, V, H]](0), d)
}

// NewCompactAllocStacked constructs a CompactAlloc backed by a StackedVec,
// for node types that must not be bitwise-relocated (e.g. K or V embeds a
// mutex, or any self-referential field).
func NewCompactAllocStacked[H constraints.Unsigned, K, V any, W statree.Numeric](chunkSize, d int) *CompactAlloc[H, K, V, W, *Vecs.StackedVec[cnode[K, V, H]]] {
	return NewCompactAlloc[H, K, V, W](Vecs.NewStackedVec[cnode[K, V, H]](chunkSize), d)
}

// Nil is the permanent nilIdx slot, not a virtual out-of-range value: it is
// a real, allocated arena entry, same as every other handle this allocator
// hands out.
func (a *CompactAlloc[H, K, V, W, B]) Nil() H { return H(nilIdx) }

func (a *CompactAlloc[H, K, V, W, B]) New(key K, val V, d int) (H, error) {
	h, ok := a.NewOk(key, val, d)
	if !ok {
		if a.live >= int(capLimit[H]()) {
			return a.Nil(), &statree.CapacityError{Limit: uint64(capLimit[H]())}
		}
		return a.Nil(), &statree.OutOfMemoryError{Op: "CompactAlloc.New"}
	}
	return h, nil
}

func (a *CompactAlloc[H, K, V, W, B]) NewOk(key K, val V, d int) (h H, ok bool) {
	if H(a.live) >= capLimit[H]() {
		return a.Nil(), false
	}
	defer func() {
		if recover() != nil {
			h, ok = a.Nil(), false
		}
	}()
	n := cnode[K, V, H]{key: key, val: val, left: a.Nil(), right: a.Nil(), parentColor: packParent(a.Nil(), Red)}
	if a.freeHead != a.Nil() {
		h = a.freeHead
		a.freeHead = a.nodes.Get(int(h)).right
		if a.freeHead != a.Nil() {
			a.nodes.Get(int(a.freeHead)).left = a.Nil()
		}
		a.nodes.Set(int(h), n)
		base := int(h) * d
		zeros := statree.ZeroVec[W](d)
		for i := 0; i < d; i++ {
			a.sums.Set(base+i, zeros[i])
		}
	} else {
		idx := a.nodes.Push(n)
		h = H(idx)
		for i := 0; i < d; i++ {
			a.sums.Push(W(0))
		}
	}
	a.live++
	return h, true
}

func (a *CompactAlloc[H, K, V, W, B]) Free(h H) {
	n := a.nodes.Get(int(h))
	n.left = a.Nil()
	n.right = a.freeHead
	if a.freeHead != a.Nil() {
		a.nodes.Get(int(a.freeHead)).left = h
	}
	a.freeHead = h
	n.parentColor = deletedMarker[H]()
	a.live--
}

func (a *CompactAlloc[H, K, V, W, B]) Key(h H) K   { return a.nodes.Get(int(h)).key }
func (a *CompactAlloc[H, K, V, W, B]) Value(h H) V { return a.nodes.Get(int(h)).val }
func (a *CompactAlloc[H, K, V, W, B]) SetValue(h H, v V) { a.nodes.Get(int(h)).val = v }

func (a *CompactAlloc[H, K, V, W, B]) Left(h H) H  { return a.nodes.Get(int(h)).left }
func (a *CompactAlloc[H, K, V, W, B]) Right(h H) H { return a.nodes.Get(int(h)).right }
func (a *CompactAlloc[H, K, V, W, B]) Parent(h H) H {
	p, _ := unpackParent(a.nodes.Get(int(h)).parentColor)
	return p
}
func (a *CompactAlloc[H, K, V, W, B]) SetLeft(h, c H)  { a.nodes.Get(int(h)).left = c }
func (a *CompactAlloc[H, K, V, W, B]) SetRight(h, c H) { a.nodes.Get(int(h)).right = c }
func (a *CompactAlloc[H, K, V, W, B]) SetParent(h, c H) {
	n := a.nodes.Get(int(h))
	_, col := unpackParent(n.parentColor)
	n.parentColor = packParent(c, col)
}

func (a *CompactAlloc[H, K, V, W, B]) Color(h H) Color {
	_, c := unpackParent(a.nodes.Get(int(h)).parentColor)
	return c
}
func (a *CompactAlloc[H, K, V, W, B]) SetColor(h H, c Color) {
	n := a.nodes.Get(int(h))
	p, _ := unpackParent(n.parentColor)
	n.parentColor = packParent(p, c)
}

func (a *CompactAlloc[H, K, V, W, B]) Sum(h H) []W {
	base := int(h) * a.d
	s := make([]W, a.d)
	for i := 0; i < a.d; i++ {
		s[i] = *a.sums.Get(base + i)
	}
	return s
}

func (a *CompactAlloc[H, K, V, W, B]) SetSum(h H, s []W) {
	base := int(h) * a.d
	for i := 0; i < a.d; i++ {
		a.sums.Set(base+i, s[i])
	}
}

// Live is the number of live (non-free-list) node slots, the two permanent
// sentinel slots included.
func (a *CompactAlloc[H, K, V, W, B]) Live() int { return a.live }

// SlotCount is the total size of the backing node vector: live nodes, the
// two permanent sentinels among them, plus free-list slots.
func (a *CompactAlloc[H, K, V, W, B]) SlotCount() int { return a.nodes.Len() }

// IsFree reports whether slot h currently holds a free-list entry rather
// than a live node; used by Tree.Check to verify the free-list partition.
func (a *CompactAlloc[H, K, V, W, B]) IsFree(h H) bool {
	return a.nodes.Get(int(h)).parentColor == deletedMarker[H]()
}

// FreeListNeighbors exposes a free slot's doubly-linked neighbors, again
// only for Check.
func (a *CompactAlloc[H, K, V, W, B]) FreeListNeighbors(h H) (prev, next H) {
	n := a.nodes.Get(int(h))
	return n.left, n.right
}

func (a *CompactAlloc[H, K, V, W, B]) FreeHead() H { return a.freeHead }

// ShrinkToFit is CompactAlloc's sole compaction operation and the sole
// source of handle invalidation within the allocator. It walks from the
// back of the node vector: if the last slot is already free, it is dropped
// along with the vector's tail; otherwise the last live node is moved into
// some free slot (whichever one the free list happens to pop first; nearer
// the front on average, but no specific slot is promised) and the tail is
// dropped. roots lets the caller (RBTree.Tree) pass pointers to any handles
// it holds outside the tree structure itself (its root) so they get fixed
// up if the node they name is the one moved.
func (a *CompactAlloc[H, K, V, W, B]) ShrinkToFit(roots ...*H) {
	for a.freeHead != a.Nil() {
		last := H(a.nodes.Len() - 1)
		if a.IsFree(last) {
			a.unlinkFree(last)
			a.dropTail()
			continue
		}
		dst, ok := a.popFreeAny()
		if !ok {
			break
		}
		a.relocate(last, dst, roots)
		a.dropTail()
	}
}

func (a *CompactAlloc[H, K, V, W, B]) unlinkFree(h H) {
	prev, next := a.FreeListNeighbors(h)
	if prev != a.Nil() {
		a.nodes.Get(int(prev)).right = next
	} else {
		a.freeHead = next
	}
	if next != a.Nil() {
		a.nodes.Get(int(next)).left = prev
	}
}

func (a *CompactAlloc[H, K, V, W, B]) popFreeAny() (H, bool) {
	if a.freeHead == a.Nil() {
		return a.Nil(), false
	}
	h := a.freeHead
	a.unlinkFree(h)
	return h, true
}

func (a *CompactAlloc[H, K, V, W, B]) dropTail() {
	n := a.nodes.Len() - 1
	a.nodes.ShrinkTo(n)
	a.sums.ShrinkTo(n * a.d)
}

// relocate moves the content and sum vector of live node `src` into free
// slot `dst`, rewiring every neighbor that referenced src, and fixes up any
// of roots that pointed at src.
func (a *CompactAlloc[H, K, V, W, B]) relocate(src, dst H, roots []*H) {
	n := *a.nodes.Get(int(src))
	a.nodes.Set(int(dst), n)
	for i := 0; i < a.d; i++ {
		a.sums.Set(int(dst)*a.d+i, *a.sums.Get(int(src)*a.d+i))
	}

	parent, _ := unpackParent(n.parentColor)
	if parent != a.Nil() {
		p := a.nodes.Get(int(parent))
		if p.left == src {
			p.left = dst
		} else if p.right == src {
			p.right = dst
		}
	}
	if n.left != a.Nil() {
		a.setParentIndexOnly(n.left, dst)
	}
	if n.right != a.Nil() {
		a.setParentIndexOnly(n.right, dst)
	}
	for _, r := range roots {
		if r != nil && *r == src {
			*r = dst
		}
	}
}

func (a *CompactAlloc[H, K, V, W, B]) setParentIndexOnly(h, newParent H) {
	c := a.nodes.Get(int(h))
	_, col := unpackParent(c.parentColor)
	c.parentColor = packParent(newParent, col)
}

var _ Allocator[uint32, int, int, int] = (*CompactAlloc[uint32, int, int, int, *Vecs.ReallocVec[cnode[int, int, uint32]]])(nil)

