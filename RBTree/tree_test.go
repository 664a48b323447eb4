package RBTree

import (
	"math"
	"testing"

	"github.com/g-m-twostay/statree/Alloc"
	"github.com/g-m-twostay/statree/Vecs"
)

func lessInt(a, b int) bool { return a < b }

func newSimpleSet(t *testing.T) *Tree[Alloc.PtrHandle[int, struct{}, int], int, struct{}, int, *Alloc.PtrAlloc[int, struct{}, int]] {
	t.Helper()
	alloc := Alloc.NewPtrAlloc[int, struct{}, int]()
	w := func(int, struct{}) []int { return []int{1} }
	return New[Alloc.PtrHandle[int, struct{}, int], int, struct{}, int, *Alloc.PtrAlloc[int, struct{}, int]](alloc, lessInt, w, 1, false)
}

func newSimpleMultiSet(t *testing.T) *Tree[Alloc.PtrHandle[int, struct{}, int], int, struct{}, int, *Alloc.PtrAlloc[int, struct{}, int]] {
	t.Helper()
	alloc := Alloc.NewPtrAlloc[int, struct{}, int]()
	w := func(int, struct{}) []int { return []int{1} }
	return New[Alloc.PtrHandle[int, struct{}, int], int, struct{}, int, *Alloc.PtrAlloc[int, struct{}, int]](alloc, lessInt, w, 1, true)
}

func inOrderKeys(tr *Tree[Alloc.PtrHandle[int, struct{}, int], int, struct{}, int, *Alloc.PtrAlloc[int, struct{}, int]]) []int {
	var out []int
	for h := tr.First(); !tr.IsNil(h); h = tr.Next(h) {
		out = append(out, tr.Key(h))
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Inserting [1, 2, 1000, 1234] under w ≡ 1 should make sum_before/total_sum
// behave as a plain in-order rank.
func TestScenarioSimpleSet(t *testing.T) {
	tr := newSimpleSet(t)
	for _, k := range []int{1, 2, 1000, 1234} {
		if _, _, err := tr.Insert(k, struct{}{}); err != nil {
			t.Fatalf("Insert(%d): %v", k, err)
		}
	}
	if err := tr.Check(0); err != nil {
		t.Fatalf("Check: %v", err)
	}
	sb, err := tr.SumBefore(1000)
	if err != nil || sb[0] != 2 {
		t.Fatalf("SumBefore(1000) = %v, %v; want [2], nil", sb, err)
	}
	if total := tr.TotalSum(); total[0] != 4 {
		t.Fatalf("TotalSum() = %v, want [4]", total)
	}
	if got := inOrderKeys(tr); !equalInts(got, []int{1, 2, 1000, 1234}) {
		t.Fatalf("in-order keys = %v, want [1 2 1000 1234]", got)
	}
}

// A multiset holding duplicate keys [5, 5, 5, 3, 7] should count and erase
// one occurrence at a time.
func TestScenarioMultiSet(t *testing.T) {
	tr := newSimpleMultiSet(t)
	for _, k := range []int{5, 5, 5, 3, 7} {
		if _, _, err := tr.Insert(k, struct{}{}); err != nil {
			t.Fatalf("Insert(%d): %v", k, err)
		}
	}
	if err := tr.Check(0); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if n := tr.Count(5); n != 3 {
		t.Fatalf("Count(5) = %d, want 3", n)
	}
	h := tr.LowerBound(5)
	if _, err := tr.Erase(h); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if err := tr.Check(0); err != nil {
		t.Fatalf("Check after erase: %v", err)
	}
	if n := tr.Count(5); n != 2 {
		t.Fatalf("Count(5) = %d after erasing one, want 2", n)
	}
	if got := inOrderKeys(tr); !equalInts(got, []int{3, 5, 5, 7}) {
		t.Fatalf("in-order keys = %v, want [3 5 5 7]", got)
	}
}

// A map under a two-argument weight w(k,v) = 2*(k+v) should sum over both
// key and value.
func TestScenarioMap(t *testing.T) {
	alloc := Alloc.NewPtrAlloc[uint32, uint32, int64]()
	w := func(k, v uint32) []int64 { return []int64{2 * (int64(k) + int64(v))} }
	tr := New[Alloc.PtrHandle[uint32, uint32, int64], uint32, uint32, int64, *Alloc.PtrAlloc[uint32, uint32, int64]](alloc, func(a, b uint32) bool { return a < b }, w, 1, false)
	if _, _, err := tr.Insert(1, 2); err != nil {
		t.Fatal(err)
	}
	if _, _, err := tr.Insert(1000, 1234); err != nil {
		t.Fatal(err)
	}
	sb, err := tr.SumBefore(1000)
	if err != nil || sb[0] != 6 {
		t.Fatalf("SumBefore(1000) = %v, %v; want [6], nil", sb, err)
	}
	if total := tr.TotalSum(); total[0] != 4474 {
		t.Fatalf("TotalSum() = %v, want [4474]", total)
	}
}

// A vector weight w((k,v), a) = a*k*v should sum componentwise across the
// whole weight vector.
func TestScenarioVectorWeight(t *testing.T) {
	as := []float64{1.0, 2.5, 5.555555}
	alloc := Alloc.NewPtrAlloc[int, int, float64]()
	w := func(k, v int) []float64 {
		out := make([]float64, len(as))
		for i, a := range as {
			out[i] = a * float64(k) * float64(v)
		}
		return out
	}
	tr := New[Alloc.PtrHandle[int, int, float64], int, int, float64, *Alloc.PtrAlloc[int, int, float64]](alloc, lessInt, w, len(as), false)
	for _, kv := range [][2]int{{1, 3}, {10, 1}, {5, 2}} {
		if _, _, err := tr.Insert(kv[0], kv[1]); err != nil {
			t.Fatal(err)
		}
	}
	got, err := tr.SumBefore(10)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{13, 32.5, 72.222215}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("SumBefore(10)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// An integer weight large enough to overflow uint32 on the second
// insertion's sum propagation should surface as an error, not a silent
// wraparound.
func TestScenarioArithmeticOverflow(t *testing.T) {
	alloc := Alloc.NewPtrAlloc[uint32, struct{}, uint32]()
	w := func(k uint32, _ struct{}) []uint32 { return []uint32{k} }
	tr := New[Alloc.PtrHandle[uint32, struct{}, uint32], uint32, struct{}, uint32, *Alloc.PtrAlloc[uint32, struct{}, uint32]](alloc, func(a, b uint32) bool { return a < b }, w, 1, true)
	const k = uint32(1) << 31
	if _, _, err := tr.Insert(k, struct{}{}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, _, err := tr.Insert(k, struct{}{}); err == nil {
		t.Fatalf("second insert should have raised an Arithmetic error")
	}
}

// Compact-allocator compaction neutrality (ShrinkToFit leaving every
// surviving key and its rank unchanged) is exercised at the Containers
// layer in Containers/set_test.go and Containers/map_test.go, and at the
// allocator layer in Alloc's own TestCompactAllocShrinkToFit.
func TestEraseInverse(t *testing.T) {
	tr := newSimpleSet(t)
	keys := []int{8, 4, 12, 2, 6, 10, 14, 1, 3, 5, 7, 9, 11, 13, 15}
	var handles []Alloc.PtrHandle[int, struct{}, int]
	for _, k := range keys {
		h, _, err := tr.Insert(k, struct{}{})
		if err != nil {
			t.Fatal(err)
		}
		handles = append(handles, h)
	}
	if err := tr.Check(0); err != nil {
		t.Fatalf("Check after inserts: %v", err)
	}
	for _, h := range handles {
		if _, err := tr.Erase(h); err != nil {
			t.Fatal(err)
		}
		if err := tr.Check(0); err != nil {
			t.Fatalf("Check mid-erase: %v", err)
		}
	}
	if tr.Size() != 0 {
		t.Fatalf("Size() = %d after erasing everything, want 0", tr.Size())
	}
	if total := tr.TotalSum(); total[0] != 0 {
		t.Fatalf("TotalSum() = %v after erasing everything, want [0]", total)
	}
}

// Shrinking down to a single surviving node forces that node to be the one
// relocated by Alloc.CompactAlloc.ShrinkToFit (it is the only live slot
// left, so whichever slot it occupies, everything below it is free and
// gets reclaimed). If Tree.ShrinkToFit failed to pass &t.root among its
// roots, t.root would keep naming a slot ShrinkToFit has since dropped.
func TestShrinkToFitFixesRootHandle(t *testing.T) {
	type H = uint32
	type B = *Vecs.ReallocVec[Alloc.CompactNode[int, struct{}, H]]
	alloc := Alloc.NewCompactAllocRelocatable[H, int, struct{}, int](1)
	w := func(int, struct{}) []int { return []int{1} }
	tr := New[H, int, struct{}, int, *Alloc.CompactAlloc[H, int, struct{}, int, B]](alloc, lessInt, w, 1, false)

	for k := 0; k < 10; k++ {
		if _, _, err := tr.Insert(k, struct{}{}); err != nil {
			t.Fatalf("Insert(%d): %v", k, err)
		}
	}
	for k := 0; k < 9; k++ {
		if _, err := tr.EraseKey(k); err != nil {
			t.Fatal(err)
		}
	}
	if tr.Size() != 1 {
		t.Fatalf("Size() = %d before shrink, want 1", tr.Size())
	}

	tr.ShrinkToFit()

	if err := tr.Check(0); err != nil {
		t.Fatalf("Check after ShrinkToFit: %v", err)
	}
	h := tr.Find(9)
	if tr.IsNil(h) {
		t.Fatalf("Find(9) after ShrinkToFit = Nil, want the surviving node")
	}
	if tr.Root() != h {
		t.Fatalf("Root() = %v after ShrinkToFit, want %v (the surviving node)", tr.Root(), h)
	}
	if got := tr.TotalSum(); got[0] != 1 {
		t.Fatalf("TotalSum() = %v after ShrinkToFit, want [1]", got)
	}
}

func TestIterationOrderAndPrevNext(t *testing.T) {
	tr := newSimpleSet(t)
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		tr.Insert(k, struct{}{})
	}
	var forward []int
	for h := tr.First(); !tr.IsNil(h); h = tr.Next(h) {
		forward = append(forward, tr.Key(h))
	}
	if !equalInts(forward, []int{1, 3, 4, 5, 7, 8, 9}) {
		t.Fatalf("forward walk = %v", forward)
	}
	var backward []int
	for h := tr.Last(); !tr.IsNil(h); h = tr.Prev(h) {
		backward = append(backward, tr.Key(h))
	}
	if !equalInts(backward, []int{9, 8, 7, 5, 4, 3, 1}) {
		t.Fatalf("backward walk = %v", backward)
	}
	for h := tr.First(); !tr.IsNil(h); h = tr.Next(h) {
		if n := tr.Next(h); !tr.IsNil(n) && tr.Prev(n) != h {
			t.Fatalf("prev(next(h)) != h at key %d", tr.Key(h))
		}
	}
}

func TestRankConsistency(t *testing.T) {
	tr := newSimpleSet(t)
	keys := []int{50, 20, 80, 10, 30, 70, 90, 5, 15, 25, 35, 65, 75, 85, 95}
	for _, k := range keys {
		tr.Insert(k, struct{}{})
	}
	idx := 0
	for h := tr.First(); !tr.IsNil(h); h, idx = tr.Next(h), idx+1 {
		sb, err := tr.SumBeforeNode(h)
		if err != nil {
			t.Fatal(err)
		}
		if sb[0] != idx {
			t.Fatalf("SumBeforeNode at in-order position %d = %v, want [%d]", idx, sb, idx)
		}
	}
}

func TestUpdateCoherence(t *testing.T) {
	alloc := Alloc.NewPtrAlloc[int, int, int]()
	w := func(_, v int) []int { return []int{v} }
	tr := New[Alloc.PtrHandle[int, int, int], int, int, int, *Alloc.PtrAlloc[int, int, int]](alloc, lessInt, w, 1, false)
	h1, _, _ := tr.Insert(1, 10)
	tr.Insert(2, 20)
	tr.Insert(3, 30)

	before, err := tr.SumBeforeNode(h1)
	if err != nil {
		t.Fatal(err)
	}
	afterNextBefore, err := tr.SumBeforeNode(tr.Next(h1))
	if err != nil {
		t.Fatal(err)
	}

	if err := tr.UpdateValue(h1, 100); err != nil {
		t.Fatal(err)
	}
	if err := tr.Check(0); err != nil {
		t.Fatalf("Check after UpdateValue: %v", err)
	}

	after, err := tr.SumBeforeNode(h1)
	if err != nil {
		t.Fatal(err)
	}
	if after[0] != before[0] {
		t.Fatalf("SumBeforeNode(h1) changed after updating h1's own value: %v -> %v", before, after)
	}
	afterNextAfter, err := tr.SumBeforeNode(tr.Next(h1))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := afterNextAfter[0]-afterNextBefore[0], int(100-10); got != want {
		t.Fatalf("SumBeforeNode(next(h1)) delta = %d, want %d", got, want)
	}
}

func TestInsertionCountLaw(t *testing.T) {
	tr := newSimpleSet(t)
	keys := []int{7, 1, 9, 3, 5, 11, 2, 8, 6, 4, 10}
	for _, k := range keys {
		if _, inserted, err := tr.Insert(k, struct{}{}); err != nil || !inserted {
			t.Fatalf("Insert(%d) = _, %v, %v", k, inserted, err)
		}
	}
	if tr.Size() != len(keys) {
		t.Fatalf("Size() = %d, want %d", tr.Size(), len(keys))
	}
	for _, k := range keys {
		if n := tr.Count(k); n != 1 {
			t.Fatalf("Count(%d) = %d, want 1", k, n)
		}
	}
	// Re-inserting an existing key in a unique tree must be a no-op.
	if _, inserted, err := tr.Insert(keys[0], struct{}{}); err != nil || inserted {
		t.Fatalf("re-Insert(%d) = _, %v, %v; want inserted=false", keys[0], inserted, err)
	}
	if tr.Size() != len(keys) {
		t.Fatalf("Size() = %d after re-insert, want %d", tr.Size(), len(keys))
	}
}

func TestHintInsertion(t *testing.T) {
	tr := newSimpleSet(t)
	for _, k := range []int{10, 20, 30, 40, 50} {
		tr.Insert(k, struct{}{})
	}
	hint := tr.Find(30)
	if _, inserted, err := tr.InsertHint(hint, 25, struct{}{}); err != nil || !inserted {
		t.Fatalf("InsertHint(30, 25) = _, %v, %v", inserted, err)
	}
	if err := tr.Check(0); err != nil {
		t.Fatalf("Check after hinted insert: %v", err)
	}
	if got := inOrderKeys(tr); !equalInts(got, []int{10, 20, 25, 30, 40, 50}) {
		t.Fatalf("in-order keys = %v", got)
	}
}
