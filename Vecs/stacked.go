package Vecs

// DefaultChunkSize is the number of elements held by one chunk when the
// caller doesn't pick a size explicitly.
const DefaultChunkSize = 131072

// StackedVec is a growable array built as a stack of fixed-size chunks. A
// chunk, once allocated, is never reallocated or copied, so it is safe for
// element types that must not move once placed — e.g. a type embedding
// sync.Mutex, where go vet's copylocks check would flag a bitwise copy.
// ReallocVec cannot be used for such a type; StackedVec can always be used
// in its place, at the cost of one extra indirection and division per
// access.
type StackedVec[T any] struct {
	chunkSize int
	chunks    [][]T
	length    int
}

// NewStackedVec returns an empty vector whose chunks hold chunkSize
// elements each. A chunkSize <= 0 selects DefaultChunkSize.
func NewStackedVec[T any](chunkSize int) *StackedVec[T] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &StackedVec[T]{chunkSize: chunkSize}
}

func (v *StackedVec[T]) Len() int { return v.length }

// index maps a logical index to (chunk, offset).
func (v *StackedVec[T]) index(i int) (int, int) {
	return i / v.chunkSize, i % v.chunkSize
}

func (v *StackedVec[T]) Get(i int) *T {
	c, o := v.index(i)
	return &v.chunks[c][o]
}

func (v *StackedVec[T]) Set(i int, x T) {
	c, o := v.index(i)
	v.chunks[c][o] = x
}

func (v *StackedVec[T]) ensureChunk(c int) {
	for len(v.chunks) <= c {
		v.chunks = append(v.chunks, make([]T, v.chunkSize))
	}
}

// Push appends x, allocating a new chunk if the current last one is full.
func (v *StackedVec[T]) Push(x T) int {
	i := v.length
	c, o := v.index(i)
	v.ensureChunk(c)
	v.chunks[c][o] = x
	v.length++
	return i
}

// PushOk is the nothrow form of Push.
func (v *StackedVec[T]) PushOk(x T) (idx int, ok bool) {
	defer func() {
		if recover() != nil {
			idx, ok = 0, false
		}
	}()
	return v.Push(x), true
}

// Pop removes and returns the last element.
func (v *StackedVec[T]) Pop() (x T, ok bool) {
	if v.length == 0 {
		return x, false
	}
	v.length--
	c, o := v.index(v.length)
	x = v.chunks[c][o]
	v.chunks[c][o] = *new(T)
	return x, true
}

// ShrinkTo discards trailing elements beyond n and frees wholly-unused
// trailing chunks. The first chunk is kept at its original size — unlike
// ReallocVec, StackedVec never reallocates a chunk in place, since doing so
// would move elements that may be address-sensitive.
func (v *StackedVec[T]) ShrinkTo(n int) {
	if n >= v.length {
		return
	}
	for i := n; i < v.length; i++ {
		c, o := v.index(i)
		v.chunks[c][o] = *new(T)
	}
	lastChunk, _ := v.index(maxInt(n-1, 0))
	if n == 0 {
		lastChunk = -1
	}
	if lastChunk+1 < len(v.chunks) {
		v.chunks = v.chunks[:lastChunk+1]
	}
	v.length = n
}

// Insert places x at position i, shifting everything at or after i one
// slot to the right, crossing chunk boundaries transparently.
func (v *StackedVec[T]) Insert(i int, x T) {
	v.Push(x) // grows storage and length by one; value gets overwritten below.
	for j := v.length - 1; j > i; j-- {
		v.Set(j, *v.Get(j-1))
	}
	v.Set(i, x)
}

// Erase removes and returns the element at position i, shifting everything
// after it one slot to the left.
func (v *StackedVec[T]) Erase(i int) T {
	x := *v.Get(i)
	for j := i; j < v.length-1; j++ {
		v.Set(j, *v.Get(j+1))
	}
	v.Pop()
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var _ Backing[int] = (*StackedVec[int])(nil)
