package Alloc

import "testing"

// exerciseAllocator runs the same small scenario against any Allocator
// implementation, so PtrAlloc and CompactAlloc are checked by one shared
// body: both must behave identically as far as Tree is concerned.
func exerciseAllocator[H comparable, A Allocator[H, int, string, int64]](t *testing.T, a A) {
	t.Helper()
	nilH := a.Nil()

	h1, err := a.New(1, "one", 2)
	if err != nil {
		t.Fatalf("New(1): %v", err)
	}
	if a.Key(h1) != 1 || a.Value(h1) != "one" {
		t.Fatalf("New(1) stored (%v, %v), want (1, one)", a.Key(h1), a.Value(h1))
	}
	if a.Color(h1) != Red {
		t.Fatalf("fresh node color = %v, want Red", a.Color(h1))
	}
	if a.Left(h1) != nilH || a.Right(h1) != nilH {
		t.Fatalf("fresh node has non-nil child link")
	}
	if sum := a.Sum(h1); len(sum) != 2 || sum[0] != 0 || sum[1] != 0 {
		t.Fatalf("fresh node sum = %v, want [0 0]", sum)
	}

	h2, err := a.New(2, "two", 2)
	if err != nil {
		t.Fatalf("New(2): %v", err)
	}
	a.SetLeft(h1, h2)
	a.SetParent(h2, h1)
	if a.Left(h1) != h2 || a.Parent(h2) != h1 {
		t.Fatalf("link mutation didn't take")
	}

	a.SetValue(h2, "TWO")
	if a.Value(h2) != "TWO" {
		t.Fatalf("SetValue didn't take")
	}

	a.SetColor(h2, Black)
	if a.Color(h2) != Black {
		t.Fatalf("SetColor didn't take")
	}

	a.SetSum(h1, []int64{5, 7})
	if sum := a.Sum(h1); sum[0] != 5 || sum[1] != 7 {
		t.Fatalf("SetSum didn't take: got %v", sum)
	}

	a.Free(h2)
}

func TestPtrAlloc(t *testing.T) {
	exerciseAllocator[PtrHandle[int, string, int64]](t, NewPtrAlloc[int, string, int64]())
}

func TestCompactAllocRelocatable(t *testing.T) {
	exerciseAllocator[uint32](t, NewCompactAllocRelocatable[uint32, int, string, int64](2))
}

func TestCompactAllocStacked(t *testing.T) {
	exerciseAllocator[uint32](t, NewCompactAllocStacked[uint32, int, string, int64](0, 2))
}

func TestCompactAllocFreeListReusesSlots(t *testing.T) {
	a := NewCompactAllocRelocatable[uint32, int, struct{}, int64](1)
	var handles []uint32
	for i := 0; i < 5; i++ {
		h, err := a.New(i, struct{}{}, 1)
		if err != nil {
			t.Fatalf("New(%d): %v", i, err)
		}
		handles = append(handles, h)
	}
	before := a.SlotCount()
	a.Free(handles[2])
	a.Free(handles[4])
	if a.Live() != 5 {
		t.Fatalf("Live() = %d, want 5", a.Live())
	}
	h, err := a.New(99, struct{}{}, 1)
	if err != nil {
		t.Fatalf("New(99): %v", err)
	}
	if a.SlotCount() != before {
		t.Fatalf("SlotCount grew from %d to %d; New should have reused a free slot", before, a.SlotCount())
	}
	if h != handles[4] && h != handles[2] {
		t.Fatalf("New(99) = %d, want a reused slot (%d or %d)", h, handles[2], handles[4])
	}
}

func TestCompactAllocShrinkToFit(t *testing.T) {
	a := NewCompactAllocRelocatable[uint32, int, struct{}, int64](1)
	var handles []uint32
	for i := 0; i < 10; i++ {
		h, _ := a.New(i, struct{}{}, 1)
		handles = append(handles, h)
		a.SetSum(h, []int64{int64(i)})
	}
	for _, i := range []int{1, 3, 5, 7, 9} {
		a.Free(handles[i])
	}
	a.ShrinkToFit()
	// 5 surviving real nodes plus the allocator's two permanent sentinel
	// slots.
	if a.Live() != 7 {
		t.Fatalf("Live() = %d after ShrinkToFit, want 7", a.Live())
	}
	if a.SlotCount() != 7 {
		t.Fatalf("SlotCount() = %d after ShrinkToFit, want 7", a.SlotCount())
	}
	seen := map[int]bool{}
	for i := uint32(2); i < uint32(a.SlotCount()); i++ {
		seen[a.Key(i)] = true
	}
	for _, want := range []int{0, 2, 4, 6, 8} {
		if !seen[want] {
			t.Fatalf("key %d missing after ShrinkToFit", want)
		}
	}
}
