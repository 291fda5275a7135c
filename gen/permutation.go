package gen

// Permutation generates a Fisher-Yates shuffle of xs. Shrinking fixes
// the leftmost out-of-place element back into its original position
// one swap at a time, guaranteeing convergence to the identity
// permutation in at most len(xs)-1 steps (PERMUTATION CONVERGENCE).
func Permutation[T any](xs []T) Generator[[]T] {
	original := append([]T(nil), xs...)
	return From(func(r *RNG, sz Size) Shrinkable[[]T] {
		perm := append([]T(nil), original...)
		for i := len(perm) - 1; i > 0; i-- {
			j := r.Intn(i + 1)
			perm[i], perm[j] = perm[j], perm[i]
		}
		return shrinkPermutation(perm, original)
	})
}

func shrinkPermutation[T any](perm, original []T) Shrinkable[[]T] {
	return NewShrinkable(append([]T(nil), perm...), func() LazyStream[Shrinkable[[]T]] {
		idx := firstOutOfPlace(perm, original)
		if idx < 0 {
			return EmptyStream[Shrinkable[[]T]]()
		}
		// Find wherever original[idx] currently sits and swap it home.
		swapAt := -1
		for k := idx + 1; k < len(perm); k++ {
			if equalPermElem(perm[k], original[idx]) {
				swapAt = k
				break
			}
		}
		if swapAt < 0 {
			return EmptyStream[Shrinkable[[]T]]()
		}
		fixed := append([]T(nil), perm...)
		fixed[idx], fixed[swapAt] = fixed[swapAt], fixed[idx]
		return One(shrinkPermutation(fixed, original))
	})
}

func firstOutOfPlace[T any](perm, original []T) int {
	for i := range perm {
		if !equalPermElem(perm[i], original[i]) {
			return i
		}
	}
	return -1
}

// equalPermElem compares a and b by value through interface equality.
// It panics at run time when T's dynamic type is not comparable (for
// example a slice, map or func type); PermutationOf restricts T to
// comparable types.
func equalPermElem[T any](a, b T) bool {
	return any(a) == any(b)
}

// PermutationOf is Permutation restricted to comparable element types.
// Equal values are interchangeable in shrinkPermutation, so with
// duplicates in xs shrinking converges to a value-wise copy of xs.
func PermutationOf[T comparable](xs []T) Generator[[]T] {
	return Permutation(xs)
}
