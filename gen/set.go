package gen

// SetOf generates a []T of unique elements (by == comparison), length
// in [minSize, maxSize], built by resampling elem on collision. The
// result is filtered so that any elementwise shrink that would
// introduce a duplicate is pruned rather than surfaced.
func SetOf[T comparable](elem Generator[T], minSize, maxSize int) Generator[[]T] {
	return From(func(r *RNG, sz Size) Shrinkable[[]T] {
		n := minSize
		if maxSize > minSize {
			n = r.IntRange(minSize, maxSize)
		}
		seen := make(map[T]bool, n)
		elems := make([]Shrinkable[T], 0, n)
		const maxAttempts = 50
		for len(elems) < n {
			progressed := false
			for attempt := 0; attempt < maxAttempts; attempt++ {
				cand := elem.Generate(r, sz)
				if !seen[cand.Value] {
					seen[cand.Value] = true
					elems = append(elems, cand)
					progressed = true
					break
				}
			}
			if !progressed {
				break // exhausted the domain before reaching n
			}
		}
		tree := shrinkSlice(elems, minSize)
		return tree.Filter(isUniqueSlice[T])
	})
}

func isUniqueSlice[T comparable](xs []T) bool {
	seen := make(map[T]bool, len(xs))
	for _, x := range xs {
		if seen[x] {
			return false
		}
		seen[x] = true
	}
	return true
}
