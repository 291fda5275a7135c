package gen

import "testing"

// canonicalTree builds the 4{0,2{1},3} shape from spec.md scenario 7.
func canonicalTree() Shrinkable[int] {
	leaf1 := Terminal(1)
	node2 := NewShrinkable(2, func() LazyStream[Shrinkable[int]] { return One(leaf1) })
	leaf0 := Terminal(0)
	leaf3 := Terminal(3)
	return NewShrinkable(4, func() LazyStream[Shrinkable[int]] { return Three(leaf0, node2, leaf3) })
}

func valuesAtDepth1(s Shrinkable[int]) []int {
	var out []int
	cur := s.Shrinks()
	for !cur.IsEmpty() {
		out = append(out, cur.Head().Value)
		cur = cur.Tail()
	}
	return out
}

func TestShrinkableMapPreservesShape(t *testing.T) {
	tree := canonicalTree()
	doubled := MapShrinkable(tree, func(x int) int { return x * 2 })
	if doubled.Value != 8 {
		t.Fatalf("root = %d, want 8", doubled.Value)
	}
	got := valuesAtDepth1(doubled)
	want := []int{0, 4, 6}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("level1[%d] = %d, want %d", i, got[i], v)
		}
	}
	grandchild := doubled.Shrinks().Tail().Head()
	gc := valuesAtDepth1(grandchild)
	if len(gc) != 1 || gc[0] != 2 {
		t.Fatalf("grandchild of 4 -> want [2], got %v", gc)
	}
}

func TestShrinkableFilterPrunesAndSplices(t *testing.T) {
	tree := canonicalTree()
	filtered := tree.Filter(func(x int) bool { return x >= 2 })
	if filtered.Value != 4 {
		t.Fatalf("root = %d, want 4", filtered.Value)
	}
	got := valuesAtDepth1(filtered)
	// 0 fails pred and has no children of its own, so it vanishes
	// entirely; 2{1} survives since 2 passes but its own child 1 does
	// not (1's filtered children stream is empty, contributing nothing).
	want := []int{2, 3}
	if len(got) != len(want) {
		t.Fatalf("level1 = %v, want %v", got, want)
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("level1[%d] = %d, want %d", i, got[i], v)
		}
	}
}

func TestShrinkableFilterRootMustSatisfy(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when root fails predicate")
		}
	}()
	Terminal(1).Filter(func(x int) bool { return x > 1 })
}

func TestShrinkableFlatMap(t *testing.T) {
	// second = first/2
	pairs := FlatMapShrinkable(canonicalTree(), func(first int) Shrinkable[int] {
		return Terminal(first / 2)
	})
	if pairs.Value != 2 {
		t.Fatalf("FlatMapShrinkable root = %d, want 2", pairs.Value)
	}
}

func TestShrinkableTake(t *testing.T) {
	wide := NewShrinkable(0, func() LazyStream[Shrinkable[int]] {
		return FromSlice([]Shrinkable[int]{Terminal(1), Terminal(2), Terminal(3), Terminal(4)})
	})
	capped := wide.Take(2)
	got := valuesAtDepth1(capped)
	if len(got) != 2 {
		t.Fatalf("Take(2) kept %d children, want 2", len(got))
	}
}

func TestShrinkableRetrieveAndGetNthChild(t *testing.T) {
	tree := canonicalTree()
	child, err := tree.GetNthChild(1)
	if err != nil || child.Value != 2 {
		t.Fatalf("GetNthChild(1) = %v, %v, want value 2", child.Value, err)
	}
	grand, err := tree.Retrieve([]int{1, 0})
	if err != nil || grand.Value != 1 {
		t.Fatalf("Retrieve([1,0]) = %v, %v, want value 1", grand.Value, err)
	}
	if _, err := tree.Retrieve([]int{99}); err == nil {
		t.Fatal("expected error for out-of-range retrieve")
	}
}
