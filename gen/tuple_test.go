package gen

import "testing"

func TestTuple2ComponentsIndependentlyShrink(t *testing.T) {
	r := NewRNG("tuple2")
	g := Tuple2(IntRange(0, 50), IntRange(0, 50))
	s := g.Generate(r, Size{})
	cur := s.Shrinks()
	sawFirstOnly, sawSecondOnly := false, false
	for !cur.IsEmpty() {
		c := cur.Head()
		if c.Value.First != s.Value.First && c.Value.Second == s.Value.Second {
			sawFirstOnly = true
		}
		if c.Value.Second != s.Value.Second && c.Value.First == s.Value.First {
			sawSecondOnly = true
		}
		cur = cur.Tail()
	}
	if !sawFirstOnly && !sawSecondOnly && s.Value.First != 0 && s.Value.Second != 0 {
		t.Fatal("expected at least one single-axis shrink among Tuple2's children")
	}
}

func TestTuple3CarriesAllThreeComponents(t *testing.T) {
	g := Tuple3(Just(1), Just("x"), Just(true))
	s := g.Generate(NewRNG("tuple3"), Size{})
	if s.Value.First != 1 || s.Value.Second != "x" || s.Value.Third != true {
		t.Fatalf("Tuple3 produced %+v", s.Value)
	}
}

func TestTuple4CarriesAllFourComponents(t *testing.T) {
	g := Tuple4(Just(1), Just(2), Just(3), Just(4))
	s := g.Generate(NewRNG("tuple4"), Size{})
	q := s.Value
	if q.First != 1 || q.Second != 2 || q.Third != 3 || q.Fourth != 4 {
		t.Fatalf("Tuple4 produced %+v", q)
	}
}
