package gen

// KV is a generated key/value pair, used as the element type when
// building map generators out of the slice/set machinery.
type KV[K comparable, V any] struct {
	Key K
	Val V
}

// MapOf generates map[K]V with key count in [minSize, maxSize], keys
// drawn unique from keyGen and values independently from valGen.
// Shrinking drops entries (length-first, inherited from the underlying
// set-of-pairs machinery) before it shrinks a surviving entry's value.
func MapOf[K comparable, V any](keyGen Generator[K], valGen Generator[V], minSize, maxSize int) Generator[map[K]V] {
	return From(func(r *RNG, sz Size) Shrinkable[map[K]V] {
		n := minSize
		if maxSize > minSize {
			n = r.IntRange(minSize, maxSize)
		}
		seen := make(map[K]bool, n)
		pairs := make([]Shrinkable[KV[K, V]], 0, n)
		const maxAttempts = 50
		for len(pairs) < n {
			progressed := false
			for attempt := 0; attempt < maxAttempts; attempt++ {
				k := keyGen.Generate(r, sz)
				if !seen[k.Value] {
					seen[k.Value] = true
					v := valGen.Generate(r, sz)
					pairs = append(pairs, pairShrinkable(k, v))
					progressed = true
					break
				}
			}
			if !progressed {
				break
			}
		}
		tree := shrinkSlice(pairs, minSize)
		return MapShrinkable(tree, pairsToMap[K, V])
	})
}

func pairShrinkable[K comparable, V any](k Shrinkable[K], v Shrinkable[V]) Shrinkable[KV[K, V]] {
	return NewShrinkable(KV[K, V]{Key: k.Value, Val: v.Value}, func() LazyStream[Shrinkable[KV[K, V]]] {
		// Only the value shrinks in place; the key stays fixed once a
		// pair has survived the unique-key draw (invariant S2: changing
		// a key mid-shrink could collide with a sibling).
		return Transform(v.Shrinks(), func(cv Shrinkable[V]) Shrinkable[KV[K, V]] {
			return pairShrinkable(k, cv)
		})
	})
}

func pairsToMap[K comparable, V any](pairs []KV[K, V]) map[K]V {
	m := make(map[K]V, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Val
	}
	return m
}
