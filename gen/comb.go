package gen

// Just always returns v, terminal (no shrinking: a constant has
// nowhere smaller to go).
func Just[T any](v T) Generator[T] {
	return From(func(r *RNG, sz Size) Shrinkable[T] { return Terminal(v) })
}

// Lazy defers construction of the wrapped value until Generate is
// actually called, for values that are expensive or not safe to build
// eagerly at Generator-definition time.
func Lazy[T any](fn func() T) Generator[T] {
	return From(func(r *RNG, sz Size) Shrinkable[T] { return Terminal(fn()) })
}

// Map transforms every value in the tree with f, preserving the
// source's shrink shape exactly (MAP STRUCTURE).
func Map[T, U any](g Generator[T], f func(T) U) Generator[U] {
	return From(func(r *RNG, sz Size) Shrinkable[U] {
		return MapShrinkable(g.Generate(r, sz), f)
	})
}

// Filter keeps only generated values satisfying pred, retrying the
// draw up to a bound before giving up, and pruning the shrink tree of
// any descendant that would violate pred (F1, F2).
func Filter[T any](g Generator[T], pred func(T) bool) Generator[T] {
	const maxAttempts = 100
	return From(func(r *RNG, sz Size) Shrinkable[T] {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			s := g.Generate(r, sz)
			if pred(s.Value) {
				return s.Filter(pred)
			}
		}
		panic("gen: Filter: exhausted attempts without satisfying predicate")
	})
}

// FlatMap builds a dependent generator: f(x) is drawn once per shrink
// candidate x. The resulting tree lists the shrinks derived from the
// parent's own children first, followed by the dependent generator's
// shrinks, as FlatMapShrinkable defines.
func FlatMap[T, U any](g Generator[T], f func(T) Generator[U]) Generator[U] {
	return From(func(r *RNG, sz Size) Shrinkable[U] {
		s := g.Generate(r, sz)
		return FlatMapShrinkable(s, func(v T) Shrinkable[U] {
			return f(v).Generate(r, sz)
		})
	})
}

// Chain is an alias for FlatMap matching the combinator name used in
// spec.md's generator algebra.
func Chain[T, U any](g Generator[T], f func(T) Generator[U]) Generator[U] {
	return FlatMap(g, f)
}

// Accumulate generates an initial element from seed, then repeatedly
// applies next to the last element generated to extend the slice out
// to a randomly chosen target length in [minLen, maxLen]. Shrinking
// follows length-shrink first (each length-shrunk variant re-shrunk
// elementwise as an inner layer via shrinkSlice), then element-shrink
// across every position.
func Accumulate[T any](seed Generator[T], minLen, maxLen int, next func(T) Generator[T]) Generator[[]T] {
	return From(func(r *RNG, sz Size) Shrinkable[[]T] {
		n := minLen
		if maxLen > minLen {
			n = r.IntRange(minLen, maxLen)
		}
		elems := make([]Shrinkable[T], 0, n)
		if n > 0 {
			first := seed.Generate(r, sz)
			elems = append(elems, first)
			last := first.Value
			for i := 1; i < n; i++ {
				s := next(last).Generate(r, sz)
				elems = append(elems, s)
				last = s.Value
			}
		}
		return shrinkSlice(elems, minLen)
	})
}

// Aggregate folds a chain of generated arrays into a single final
// value: a chain length n is drawn from [minLen, maxLen], an initial
// array is drawn from init, then next is applied to the running value
// n-1 times to produce each successive array. Only the initial
// array is independently shrinkable — later steps depend on it and are
// shrink-opaque, the same dependent-generator pattern FlatMap uses for
// its own tail.
func Aggregate[A any](init Generator[A], minLen, maxLen int, next func(A) Generator[A]) Generator[A] {
	return From(func(r *RNG, sz Size) Shrinkable[A] {
		n := minLen
		if maxLen > minLen {
			n = r.IntRange(minLen, maxLen)
		}
		first := init.Generate(r, sz)
		return aggregateFrom(first, n, next, r, sz)
	})
}

func aggregateFrom[A any](first Shrinkable[A], n int, next func(A) Generator[A], r *RNG, sz Size) Shrinkable[A] {
	acc := first.Value
	for i := 1; i < n; i++ {
		acc = next(acc).Generate(r, sz).Value
	}
	final := acc
	return NewShrinkable(final, func() LazyStream[Shrinkable[A]] {
		return Transform(first.Shrinks(), func(c Shrinkable[A]) Shrinkable[A] {
			return aggregateFrom(c, n, next, r, sz)
		})
	})
}

// ElementOf picks one of a fixed set of values, weighted per
// resolvedWeights. Shrinking tries the earlier (by index) weighted
// values before the one actually drawn, under the convention that
// callers list values from "simplest" to "most complex".
func ElementOf[T any](values ...WeightedValue[T]) Generator[T] {
	if len(values) == 0 {
		panic("gen: ElementOf: no values given")
	}
	weights := make([]float64, len(values))
	for i, v := range values {
		weights[i] = v.Weight
	}
	resolved := resolvedWeights(weights)
	return From(func(r *RNG, sz Size) Shrinkable[T] {
		idx := pickWeighted(r, resolved)
		return shrinkElementOf(values, idx)
	})
}

func shrinkElementOf[T any](values []WeightedValue[T], idx int) Shrinkable[T] {
	return NewShrinkable(values[idx].Value, func() LazyStream[Shrinkable[T]] {
		if idx == 0 {
			return EmptyStream[Shrinkable[T]]()
		}
		var out LazyStream[Shrinkable[T]] = EmptyStream[Shrinkable[T]]()
		for i := idx - 1; i >= 0; i-- {
			child := shrinkElementOf(values, i)
			tail := out
			out = Cons(child, func() LazyStream[Shrinkable[T]] { return tail })
		}
		return out
	})
}

// OneOf picks one of a fixed set of generators, weighted per
// resolvedWeights, and draws from it. Shrinking stays within the chosen
// generator's own tree (no cross-generator shrinking).
func OneOf[T any](gens ...WeightedGen[T]) Generator[T] {
	if len(gens) == 0 {
		panic("gen: OneOf: no generators given")
	}
	weights := make([]float64, len(gens))
	for i, g := range gens {
		weights[i] = g.Weight
	}
	resolved := resolvedWeights(weights)
	return From(func(r *RNG, sz Size) Shrinkable[T] {
		idx := pickWeighted(r, resolved)
		return gens[idx].Gen.Generate(r, sz)
	})
}

// Construct builds a T from n independently-generated component
// values via build, shrinking each component on its own axis the same
// way Tuple2/Tuple3 do. Components are supplied as already-erased
// Generator[any] so build can take any arity; callers normally wrap
// this with a typed helper of their own arity.
func Construct[T any](build func([]any) T, comps ...Generator[any]) Generator[T] {
	return From(func(r *RNG, sz Size) Shrinkable[T] {
		nodes := make([]Shrinkable[any], len(comps))
		for i, c := range comps {
			nodes[i] = c.Generate(r, sz)
		}
		return constructShrink(build, nodes)
	})
}

func constructShrink[T any](build func([]any) T, nodes []Shrinkable[any]) Shrinkable[T] {
	values := make([]any, len(nodes))
	for i, n := range nodes {
		values[i] = n.Value
	}
	return NewShrinkable(build(values), func() LazyStream[Shrinkable[T]] {
		var out LazyStream[Shrinkable[T]] = EmptyStream[Shrinkable[T]]()
		for i := len(nodes) - 1; i >= 0; i-- {
			idx := i
			tail := out
			out = ConcatLazy(Transform(nodes[idx].Shrinks(), func(c Shrinkable[any]) Shrinkable[T] {
				replaced := cloneElems(nodes)
				replaced[idx] = c
				return constructShrink(build, replaced)
			}), func() LazyStream[Shrinkable[T]] { return tail })
		}
		return out
	})
}

// ChainTuple runs g, then builds a dependent generator of U from its
// value, and returns both as a Pair, preserving both components'
// independent shrink axes the way Tuple2 does.
func ChainTuple[T, U any](g Generator[T], f func(T) Generator[U]) Generator[Pair[T, U]] {
	return From(func(r *RNG, sz Size) Shrinkable[Pair[T, U]] {
		t := g.Generate(r, sz)
		u := f(t.Value).Generate(r, sz)
		return shrinkPair(t, u)
	})
}
