package gen

import "fmt"

// Shrinkable is a value paired with a lazily-expanded rose tree of
// candidate children that are, per the owning primitive's policy,
// "closer to a canonical minimum" than the value itself (invariant
// S3). Invariant S1: the children thunk must never produce the node
// itself, directly or transitively. Invariant S2: every reachable
// child shares T's domain contract.
type Shrinkable[T any] struct {
	// Value is the candidate this node represents.
	Value T

	shrinksFn func() LazyStream[Shrinkable[T]]
}

// NewShrinkable builds a node from a value and a children thunk. A nil
// thunk means the node is terminal (has no children).
func NewShrinkable[T any](v T, shrinks func() LazyStream[Shrinkable[T]]) Shrinkable[T] {
	if shrinks == nil {
		shrinks = func() LazyStream[Shrinkable[T]] { return EmptyStream[Shrinkable[T]]() }
	}
	return Shrinkable[T]{Value: v, shrinksFn: shrinks}
}

// Terminal builds a leaf node: a value with no shrink children.
func Terminal[T any](v T) Shrinkable[T] {
	return NewShrinkable(v, nil)
}

// Shrinks returns this node's immediate children.
func (s Shrinkable[T]) Shrinks() LazyStream[Shrinkable[T]] {
	return s.shrinksFn()
}

// WithShrinks replaces the children thunk; the value is unchanged.
func (s Shrinkable[T]) WithShrinks(thunk func() LazyStream[Shrinkable[T]]) Shrinkable[T] {
	return NewShrinkable(s.Value, thunk)
}

// MapShrinkable lifts a value transform over an entire tree: the
// resulting tree mirrors the source tree's shape exactly, with every
// value passed through f.
func MapShrinkable[T, U any](s Shrinkable[T], f func(T) U) Shrinkable[U] {
	return NewShrinkable(f(s.Value), func() LazyStream[Shrinkable[U]] {
		return Transform(s.Shrinks(), func(c Shrinkable[T]) Shrinkable[U] { return MapShrinkable(c, f) })
	})
}

// Map is MapShrinkable specialized to an endomorphism, for chaining.
func (s Shrinkable[T]) Map(f func(T) T) Shrinkable[T] {
	return MapShrinkable(s, f)
}

// Filter prunes descendants whose value fails pred, recursively, while
// preserving the surviving frontier: a descendant that fails pred is
// replaced, in the stream, by its own filtered children (F2). The
// root must satisfy pred (F1) — violating this is a programming error
// in the caller, not a runtime condition to recover from.
func (s Shrinkable[T]) Filter(pred func(T) bool) Shrinkable[T] {
	if !pred(s.Value) {
		panic("gen: Shrinkable.Filter: root value does not satisfy predicate")
	}
	return filterNode(s, pred)
}

func filterNode[T any](s Shrinkable[T], pred func(T) bool) Shrinkable[T] {
	return NewShrinkable(s.Value, func() LazyStream[Shrinkable[T]] {
		return filterChildren(s.Shrinks(), pred)
	})
}

func filterChildren[T any](s LazyStream[Shrinkable[T]], pred func(T) bool) LazyStream[Shrinkable[T]] {
	if s.IsEmpty() {
		return EmptyStream[Shrinkable[T]]()
	}
	c := s.Head()
	if pred(c.Value) {
		h := filterNode(c, pred)
		return Cons(h, func() LazyStream[Shrinkable[T]] { return filterChildren(s.Tail(), pred) })
	}
	// c itself fails pred: splice in c's own filtered descendants in
	// its place, then continue with the rest of the level.
	return ConcatLazy(filterChildren(c.Shrinks(), pred), func() LazyStream[Shrinkable[T]] {
		return filterChildren(s.Tail(), pred)
	})
}

// FlatMapShrinkable computes value := f(self.value).value, with
// children := concat(map(self.children, c => f(c.value)), f(self.value).children).
func FlatMapShrinkable[T, U any](s Shrinkable[T], f func(T) Shrinkable[U]) Shrinkable[U] {
	fu := f(s.Value)
	return NewShrinkable(fu.Value, func() LazyStream[Shrinkable[U]] {
		fromParent := Transform(s.Shrinks(), func(c Shrinkable[T]) Shrinkable[U] { return f(c.Value) })
		return ConcatLazy(fromParent, fu.Shrinks)
	})
}

// ConcatStatic appends a value-independent tail stream to children at
// every node, recursively.
func (s Shrinkable[T]) ConcatStatic(extra func() LazyStream[Shrinkable[T]]) Shrinkable[T] {
	return NewShrinkable(s.Value, func() LazyStream[Shrinkable[T]] {
		rec := Transform(s.Shrinks(), func(c Shrinkable[T]) Shrinkable[T] { return c.ConcatStatic(extra) })
		return ConcatLazy(rec, extra)
	})
}

// Concat is ConcatStatic but the extra tail is computed from each
// node's own value.
func (s Shrinkable[T]) Concat(fn func(T) LazyStream[Shrinkable[T]]) Shrinkable[T] {
	return NewShrinkable(s.Value, func() LazyStream[Shrinkable[T]] {
		rec := Transform(s.Shrinks(), func(c Shrinkable[T]) Shrinkable[T] { return c.Concat(fn) })
		return ConcatLazy(rec, func() LazyStream[Shrinkable[T]] { return fn(s.Value) })
	})
}

// AndThenStatic is ConcatStatic restricted to leaves: the extra tail
// is appended only where a node has no children of its own, extending
// the frontier rather than every level.
func (s Shrinkable[T]) AndThenStatic(extra func() LazyStream[Shrinkable[T]]) Shrinkable[T] {
	return NewShrinkable(s.Value, func() LazyStream[Shrinkable[T]] {
		kids := s.Shrinks()
		if kids.IsEmpty() {
			return extra()
		}
		return Transform(kids, func(c Shrinkable[T]) Shrinkable[T] { return c.AndThenStatic(extra) })
	})
}

// AndThen is the value-dependent variant of AndThenStatic.
func (s Shrinkable[T]) AndThen(fn func(T) LazyStream[Shrinkable[T]]) Shrinkable[T] {
	return NewShrinkable(s.Value, func() LazyStream[Shrinkable[T]] {
		kids := s.Shrinks()
		if kids.IsEmpty() {
			return fn(s.Value)
		}
		return Transform(kids, func(c Shrinkable[T]) Shrinkable[T] { return c.AndThen(fn) })
	})
}

// GetNthChild returns the nth immediate child (0-based), erroring if
// out of range.
func (s Shrinkable[T]) GetNthChild(n int) (Shrinkable[T], error) {
	if n < 0 {
		return Shrinkable[T]{}, fmt.Errorf("gen: GetNthChild: negative index %d", n)
	}
	st := s.Shrinks()
	i := 0
	for !st.IsEmpty() {
		if i == n {
			return st.Head(), nil
		}
		st = st.Tail()
		i++
	}
	return Shrinkable[T]{}, fmt.Errorf("gen: GetNthChild: index %d out of range (have %d children)", n, i)
}

// Retrieve descends by a path of child indices.
func (s Shrinkable[T]) Retrieve(path []int) (Shrinkable[T], error) {
	cur := s
	for depth, idx := range path {
		next, err := cur.GetNthChild(idx)
		if err != nil {
			return Shrinkable[T]{}, fmt.Errorf("gen: Retrieve: at depth %d: %w", depth, err)
		}
		cur = next
	}
	return cur, nil
}

// Take caps the width of the children stream at every level,
// recursively.
func (s Shrinkable[T]) Take(n int) Shrinkable[T] {
	return NewShrinkable(s.Value, func() LazyStream[Shrinkable[T]] {
		return Transform(Take(s.Shrinks(), n), func(c Shrinkable[T]) Shrinkable[T] { return c.Take(n) })
	})
}
