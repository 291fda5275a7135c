package gen

// Size controls the scale and limits of generators: the minimum and
// maximum bounds for generated values, or for container lengths.
type Size struct {
	// Min is the minimum bound for generated values.
	Min int
	// Max is the maximum bound for generated values.
	Max int
}

// IsZero reports whether sz carries no information (the caller did not
// override the generator's own default range).
func (sz Size) IsZero() bool { return sz.Min == 0 && sz.Max == 0 }

// Generator is the public contract every generator implements: given a
// source of randomness and a size hint, produce a Shrinkable.
type Generator[T any] interface {
	Generate(r *RNG, sz Size) Shrinkable[T]
}

// GenFunc adapts a plain function to the Generator interface.
type GenFunc[T any] struct {
	fn func(r *RNG, sz Size) Shrinkable[T]
}

// Generate implements Generator.
func (g GenFunc[T]) Generate(r *RNG, sz Size) Shrinkable[T] {
	return g.fn(r, sz)
}

// From builds a Generator from a closure. This is the constructor
// every primitive and combinator in this package is built from.
func From[T any](fn func(*RNG, Size) Shrinkable[T]) Generator[T] {
	return GenFunc[T]{fn: fn}
}

// Arbitrary wraps a Generator to offer fluent same-type combinators
// without requiring callers to import the free functions in comb.go
// for the common case. Cross-type combinators (Map to a different
// type, FlatMap, Chain, ...) remain free functions since Go does not
// support additional type parameters on interface methods.
type Arbitrary[T any] struct {
	g Generator[T]
}

// NewArbitrary wraps g.
func NewArbitrary[T any](g Generator[T]) Arbitrary[T] { return Arbitrary[T]{g: g} }

// Generate implements Generator.
func (a Arbitrary[T]) Generate(r *RNG, sz Size) Shrinkable[T] { return a.g.Generate(r, sz) }

// Filter keeps only values satisfying pred.
func (a Arbitrary[T]) Filter(pred func(T) bool) Arbitrary[T] {
	return NewArbitrary[T](Filter(a.g, pred))
}

// Map applies an endomorphism f, preserving the shrink tree's shape.
func (a Arbitrary[T]) Map(f func(T) T) Arbitrary[T] {
	return NewArbitrary[T](Map(a.g, f))
}
