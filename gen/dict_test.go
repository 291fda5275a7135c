package gen

import "testing"

func TestMapOfRespectsSizeBounds(t *testing.T) {
	r := NewRNG("map-size")
	g := MapOf(IntRange(0, 200), Bool(), 1, 5)
	for i := 0; i < 30; i++ {
		m := g.Generate(r, Size{}).Value
		if len(m) < 1 || len(m) > 5 {
			t.Fatalf("MapOf produced a map of size %d, want [1,5]", len(m))
		}
	}
}

func TestMapOfShrinkOnlyChangesValues(t *testing.T) {
	keys := IntRange(0, 3)
	vals := IntRange(0, 1000)
	g := MapOf(keys, vals, 2, 2)
	r := NewRNG("map-shrink-keys")
	s := g.Generate(r, Size{})
	origKeys := map[int]bool{}
	for k := range s.Value {
		origKeys[k] = true
	}

	cur := s.Shrinks()
	for !cur.IsEmpty() {
		child := cur.Head()
		if len(child.Value) == len(s.Value) {
			for k := range child.Value {
				if !origKeys[k] {
					t.Fatalf("shrink introduced a new key %d not in the original set", k)
				}
			}
		}
		cur = cur.Tail()
	}
}

func TestKVPairRetainsKeyAndValue(t *testing.T) {
	k := Terminal(7)
	v := Terminal("seven")
	p := pairShrinkable(k, v)
	if p.Value.Key != 7 || p.Value.Val != "seven" {
		t.Fatalf("pairShrinkable produced %+v, want {7 seven}", p.Value)
	}
}
