// Package Alloc provides the two node storage back-ends behind one shared
// capability interface: PtrAlloc, which heap-allocates one record per node,
// and CompactAlloc, which packs nodes into an index-addressable vector.
package Alloc

import "github.com/g-m-twostay/statree"

// Color is a node's red-black color.
type Color bool

const (
	Red   Color = true
	Black Color = false
)

// Allocator is the capability set RBTree.Tree needs from a node storage
// back-end, with explicit link/color accessors standing in for the node
// inheritance Go has no implicit form of: allocate and free nodes, read and
// write their key/value/links/color, and read and write their stored
// subtree-sum vector. H is the handle type: a pointer for PtrAlloc, an
// integer index for CompactAlloc.
type Allocator[H comparable, K, V any, W statree.Numeric] interface {
	// Nil is the sentinel handle used in place of null for every external
	// link. It is stable for the allocator's lifetime.
	Nil() H

	// New allocates a node carrying (key, val), colored Red, with its left,
	// right and parent links set to Nil and its sum vector zeroed to arity
	// d. It returns statree.OutOfMemoryError on allocation failure, leaving
	// the allocator unchanged.
	New(key K, val V, d int) (H, error)

	// NewOk is New's nothrow form.
	NewOk(key K, val V, d int) (H, bool)

	// Free releases h. The caller must have already unlinked h from the
	// tree; Free does not touch left/right/parent of neighboring nodes.
	Free(h H)

	Key(h H) K
	Value(h H) V
	SetValue(h H, v V)

	Left(h H) H
	Right(h H) H
	Parent(h H) H
	SetLeft(h, c H)
	SetRight(h, c H)
	SetParent(h, c H)

	Color(h H) Color
	SetColor(h H, c Color)

	// Sum returns the handle's stored subtree-sum vector. PtrAlloc returns
	// the node's own storage; CompactAlloc returns a fresh copy, so writing
	// into the returned slice does not change its stored sum. Changes are
	// stored with SetSum.
	Sum(h H) []W
	SetSum(h H, s []W)
}
