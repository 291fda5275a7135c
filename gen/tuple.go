package gen

// Pair is the generated value of Tuple2: independently shrinkable
// heterogeneous components. Go generics have no arity polymorphism, so
// tuple arities 2-4 are spelled out by hand, the way the teacher's
// array-of-fixed-arity helpers were.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the generated value of Tuple3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Quad is the generated value of Tuple4.
type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Tuple2 generates independently-drawn (A,B) pairs. Each component
// shrinks on its own axis: a child either shrinks First or shrinks
// Second, never both at once, so a minimal failing pair is found by
// exploring one dimension at a time.
func Tuple2[A, B any](ga Generator[A], gb Generator[B]) Generator[Pair[A, B]] {
	return From(func(r *RNG, sz Size) Shrinkable[Pair[A, B]] {
		a := ga.Generate(r, sz)
		b := gb.Generate(r, sz)
		return shrinkPair(a, b)
	})
}

func shrinkPair[A, B any](a Shrinkable[A], b Shrinkable[B]) Shrinkable[Pair[A, B]] {
	return NewShrinkable(Pair[A, B]{First: a.Value, Second: b.Value}, func() LazyStream[Shrinkable[Pair[A, B]]] {
		fromA := Transform(a.Shrinks(), func(ca Shrinkable[A]) Shrinkable[Pair[A, B]] { return shrinkPair(ca, b) })
		fromB := Transform(b.Shrinks(), func(cb Shrinkable[B]) Shrinkable[Pair[A, B]] { return shrinkPair(a, cb) })
		return ConcatStream(fromA, fromB)
	})
}

// Tuple3 generates independently-drawn (A,B,C) triples.
func Tuple3[A, B, C any](ga Generator[A], gb Generator[B], gc Generator[C]) Generator[Triple[A, B, C]] {
	return From(func(r *RNG, sz Size) Shrinkable[Triple[A, B, C]] {
		a := ga.Generate(r, sz)
		b := gb.Generate(r, sz)
		c := gc.Generate(r, sz)
		return shrinkTriple(a, b, c)
	})
}

func shrinkTriple[A, B, C any](a Shrinkable[A], b Shrinkable[B], c Shrinkable[C]) Shrinkable[Triple[A, B, C]] {
	return NewShrinkable(Triple[A, B, C]{First: a.Value, Second: b.Value, Third: c.Value}, func() LazyStream[Shrinkable[Triple[A, B, C]]] {
		fromA := Transform(a.Shrinks(), func(ca Shrinkable[A]) Shrinkable[Triple[A, B, C]] { return shrinkTriple(ca, b, c) })
		fromB := Transform(b.Shrinks(), func(cb Shrinkable[B]) Shrinkable[Triple[A, B, C]] { return shrinkTriple(a, cb, c) })
		fromC := Transform(c.Shrinks(), func(cc Shrinkable[C]) Shrinkable[Triple[A, B, C]] { return shrinkTriple(a, b, cc) })
		return ConcatStream(ConcatStream(fromA, fromB), fromC)
	})
}

// Tuple4 generates independently-drawn (A,B,C,D) quads.
func Tuple4[A, B, C, D any](ga Generator[A], gb Generator[B], gc Generator[C], gd Generator[D]) Generator[Quad[A, B, C, D]] {
	return From(func(r *RNG, sz Size) Shrinkable[Quad[A, B, C, D]] {
		a := ga.Generate(r, sz)
		b := gb.Generate(r, sz)
		c := gc.Generate(r, sz)
		d := gd.Generate(r, sz)
		return shrinkQuad(a, b, c, d)
	})
}

func shrinkQuad[A, B, C, D any](a Shrinkable[A], b Shrinkable[B], c Shrinkable[C], d Shrinkable[D]) Shrinkable[Quad[A, B, C, D]] {
	return NewShrinkable(Quad[A, B, C, D]{First: a.Value, Second: b.Value, Third: c.Value, Fourth: d.Value}, func() LazyStream[Shrinkable[Quad[A, B, C, D]]] {
		fromA := Transform(a.Shrinks(), func(ca Shrinkable[A]) Shrinkable[Quad[A, B, C, D]] { return shrinkQuad(ca, b, c, d) })
		fromB := Transform(b.Shrinks(), func(cb Shrinkable[B]) Shrinkable[Quad[A, B, C, D]] { return shrinkQuad(a, cb, c, d) })
		fromC := Transform(c.Shrinks(), func(cc Shrinkable[C]) Shrinkable[Quad[A, B, C, D]] { return shrinkQuad(a, b, cc, d) })
		fromD := Transform(d.Shrinks(), func(cd Shrinkable[D]) Shrinkable[Quad[A, B, C, D]] { return shrinkQuad(a, b, c, cd) })
		return ConcatStream(ConcatStream(fromA, fromB), ConcatStream(fromC, fromD))
	})
}
