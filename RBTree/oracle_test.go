package RBTree

import (
	"math/rand"
	"testing"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
)

// llrbInt adapts int to GoLLRB's llrb.Item so it can stand in as an oracle
// for key ordering.
type llrbInt int

func (x llrbInt) Less(than llrb.Item) bool { return x < than.(llrbInt) }

// TestOrderingMatchesGodsRedBlackTree cross-checks in-order key sequence and
// live count against github.com/emirpasic/gods's own red-black tree under a
// randomized interleaving of inserts and erases, on a unique simple set.
func TestOrderingMatchesGodsRedBlackTree(t *testing.T) {
	tr := newSimpleSet(t)
	oracle := redblacktree.NewWithIntComparator()

	rng := rand.New(rand.NewSource(1))
	live := map[int]bool{}
	for i := 0; i < 2000; i++ {
		k := rng.Intn(500)
		if rng.Intn(3) == 0 && live[k] {
			if _, err := tr.EraseKey(k); err != nil {
				t.Fatalf("EraseKey(%d): %v", k, err)
			}
			oracle.Remove(k)
			delete(live, k)
		} else {
			if _, _, err := tr.Insert(k, struct{}{}); err != nil {
				t.Fatalf("Insert(%d): %v", k, err)
			}
			oracle.Put(k, struct{}{})
			live[k] = true
		}
	}

	if err := tr.Check(0); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if tr.Size() != oracle.Size() {
		t.Fatalf("Size() = %d, oracle.Size() = %d", tr.Size(), oracle.Size())
	}

	got := inOrderKeys(tr)
	wantKeys := oracle.Keys()
	if len(got) != len(wantKeys) {
		t.Fatalf("len(got)=%d, len(oracle keys)=%d", len(got), len(wantKeys))
	}
	for i, wk := range wantKeys {
		if got[i] != wk.(int) {
			t.Fatalf("key mismatch at position %d: got %d, oracle %d", i, got[i], wk.(int))
		}
	}
}

// TestOrderingMatchesGoLLRB cross-checks the same scenario against
// github.com/petar/GoLLRB's left-leaning red-black tree.
func TestOrderingMatchesGoLLRB(t *testing.T) {
	tr := newSimpleSet(t)
	oracle := llrb.New()

	rng := rand.New(rand.NewSource(2))
	live := map[int]bool{}
	for i := 0; i < 2000; i++ {
		k := rng.Intn(500)
		if rng.Intn(3) == 0 && live[k] {
			if _, err := tr.EraseKey(k); err != nil {
				t.Fatalf("EraseKey(%d): %v", k, err)
			}
			oracle.Delete(llrbInt(k))
			delete(live, k)
		} else {
			if _, _, err := tr.Insert(k, struct{}{}); err != nil {
				t.Fatalf("Insert(%d): %v", k, err)
			}
			oracle.ReplaceOrInsert(llrbInt(k))
			live[k] = true
		}
	}

	if err := tr.Check(0); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if tr.Size() != oracle.Len() {
		t.Fatalf("Size() = %d, oracle.Len() = %d", tr.Size(), oracle.Len())
	}

	got := inOrderKeys(tr)
	var want []int
	oracle.AscendGreaterOrEqual(llrbInt(-1<<31), func(i llrb.Item) bool {
		want = append(want, int(i.(llrbInt)))
		return true
	})
	if len(got) != len(want) {
		t.Fatalf("len(got)=%d, len(oracle walk)=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key mismatch at position %d: got %d, oracle %d", i, got[i], want[i])
		}
	}
}

// TestRankMatchesGoogleBTree cross-checks order-statistic rank (SumBeforeNode
// under w ≡ 1) against an in-order walk of github.com/google/btree's
// generic B-tree, which has no native rank operation but is an independent
// ordering oracle to derive one from.
func TestRankMatchesGoogleBTree(t *testing.T) {
	tr := newSimpleSet(t)
	oracle := btree.NewG[int](8, func(a, b int) bool { return a < b })

	keys := []int{55, 12, 98, 3, 47, 71, 29, 84, 61, 8, 33, 19, 77, 44, 90}
	for _, k := range keys {
		tr.Insert(k, struct{}{})
		oracle.ReplaceOrInsert(k)
	}
	if err := tr.Check(0); err != nil {
		t.Fatalf("Check: %v", err)
	}

	var ordered []int
	oracle.Ascend(func(k int) bool {
		ordered = append(ordered, k)
		return true
	})

	for rank, k := range ordered {
		sb, err := tr.SumBefore(k)
		if err != nil {
			t.Fatal(err)
		}
		if sb[0] != rank {
			t.Fatalf("SumBefore(%d) = %v, want [%d] (oracle rank)", k, sb, rank)
		}
	}
}
