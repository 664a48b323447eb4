package Vecs

import "testing"

func TestReallocVecPushPop(t *testing.T) {
	v := NewReallocVec[int](0)
	for i := 0; i < 1000; i++ {
		v.Push(i)
	}
	if v.Len() != 1000 {
		t.Fatalf("Len() = %d, want 1000", v.Len())
	}
	for i := 999; i >= 0; i-- {
		got, ok := v.Pop()
		if !ok || got != i {
			t.Fatalf("Pop() = (%d, %v), want (%d, true)", got, ok, i)
		}
	}
	if v.Len() != 0 {
		t.Fatalf("Len() = %d after draining, want 0", v.Len())
	}
	if _, ok := v.Pop(); ok {
		t.Fatalf("Pop() on empty vec reported ok")
	}
}

func TestReallocVecGetSet(t *testing.T) {
	v := NewReallocVec[string](4)
	v.Push("a")
	v.Push("b")
	v.Push("c")
	v.Set(1, "B")
	if got := *v.Get(1); got != "B" {
		t.Fatalf("Get(1) = %q, want %q", got, "B")
	}
	if got := *v.Get(0); got != "a" {
		t.Fatalf("Get(0) = %q, want %q", got, "a")
	}
}

func TestReallocVecInsertErase(t *testing.T) {
	v := NewReallocVec[int](0)
	for i := 0; i < 5; i++ {
		v.Push(i)
	}
	v.Insert(2, 99)
	want := []int{0, 1, 99, 2, 3, 4}
	if v.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", v.Len(), len(want))
	}
	for i, w := range want {
		if got := *v.Get(i); got != w {
			t.Fatalf("Get(%d) = %d, want %d", i, got, w)
		}
	}
	v.Erase(2)
	for i := 0; i < 5; i++ {
		if got := *v.Get(i); got != i {
			t.Fatalf("after Erase(2), Get(%d) = %d, want %d", i, got, i)
		}
	}
}

func TestReallocVecInsertRange(t *testing.T) {
	v := NewReallocVec[int](0)
	for _, x := range []int{0, 1, 2, 3} {
		v.Push(x)
	}
	v.InsertRange(2, []int{97, 98, 99})
	want := []int{0, 1, 97, 98, 99, 2, 3}
	if v.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", v.Len(), len(want))
	}
	for i, w := range want {
		if got := *v.Get(i); got != w {
			t.Fatalf("Get(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestReallocVecShrinkTo(t *testing.T) {
	v := NewReallocVec[int](0)
	for i := 0; i < 10; i++ {
		v.Push(i)
	}
	v.ShrinkTo(3)
	if v.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", v.Len())
	}
	for i := 0; i < 3; i++ {
		if got := *v.Get(i); got != i {
			t.Fatalf("Get(%d) = %d, want %d", i, got, i)
		}
	}
}

func TestReallocVecGrowthIsCappedDoubling(t *testing.T) {
	v := NewReallocVec[int](0)
	for i := 0; i < MaxGrow*3; i++ {
		v.Push(i)
	}
	if v.Len() != MaxGrow*3 {
		t.Fatalf("Len() = %d, want %d", v.Len(), MaxGrow*3)
	}
	// Capacities run 1, 2, 4, ..., MaxGrow, then grow by MaxGrow each step:
	// 2*MaxGrow, 3*MaxGrow. Pure doubling would have reached 4*MaxGrow.
	if v.Cap() != MaxGrow*3 {
		t.Fatalf("Cap() = %d, want %d", v.Cap(), MaxGrow*3)
	}
	for i := 0; i < v.Len(); i += 997 {
		if got := *v.Get(i); got != i {
			t.Fatalf("Get(%d) = %d, want %d", i, got, i)
		}
	}
}
