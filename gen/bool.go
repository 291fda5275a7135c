package gen

// Bool generates a uniformly distributed boolean. true shrinks to
// false; false is terminal.
func Bool() Generator[bool] {
	return From(func(r *RNG, sz Size) Shrinkable[bool] {
		v := r.Bool()
		return shrinkBool(v)
	})
}

func shrinkBool(v bool) Shrinkable[bool] {
	if !v {
		return Terminal(false)
	}
	return NewShrinkable(true, func() LazyStream[Shrinkable[bool]] {
		return One(Terminal(false))
	})
}
