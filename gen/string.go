package gen

import "unicode/utf16"

// minASCII/maxASCII bound the default alphabet: printable ASCII,
// avoiding control characters that tend to make failures unreadable.
const minASCII = 0x20
const maxASCII = 0x7e

// String generates strings of printable ASCII runes, length (measured
// in UTF-16 code units, per spec) in [0, 10].
func String() Generator[string] {
	return StringOfRange(RuneASCII(), 0, 10)
}

// StringOfRange generates strings built from runeGen, with a UTF-16
// code-unit length in [minSize, maxSize].
func StringOfRange(runeGen Generator[rune], minSize, maxSize int) Generator[string] {
	return From(func(r *RNG, sz Size) Shrinkable[string] {
		target := minSize
		if maxSize > minSize {
			target = r.IntRange(minSize, maxSize)
		}
		var runes []Shrinkable[rune]
		length := 0
		for length < target {
			c := runeGen.Generate(r, sz)
			units := utf16.RuneLen(c.Value)
			if units < 1 {
				units = 1
			}
			if length+units > maxSize && maxSize > 0 {
				break
			}
			runes = append(runes, c)
			length += units
		}
		elemTree := shrinkSlice(runes, minSizeForRunes(minSize, runes))
		return MapShrinkable(elemTree, runesToString)
	})
}

func minSizeForRunes(minSize int, runes []Shrinkable[rune]) int {
	// shrinkSlice works in element counts, not code units; approximate
	// the element-count floor conservatively so the UTF-16 length never
	// shrinks below minSize.
	if minSize <= 0 {
		return 0
	}
	if minSize >= len(runes) {
		return len(runes)
	}
	return minSize
}

func runesToString(rs []rune) string {
	return string(rs)
}

// RuneASCII generates a printable ASCII rune, shrinking toward 'a'.
func RuneASCII() Generator[rune] {
	return From(func(r *RNG, sz Size) Shrinkable[rune] {
		v := rune(r.IntRange(minASCII, maxASCII))
		return shrinkRuneToward(v, 'a')
	})
}

// Rune generates any valid Unicode scalar value, excluding the UTF-16
// surrogate range U+D800-U+DFFF (which is not a valid scalar value by
// definition, and must never appear in a generated string).
func Rune() Generator[rune] {
	return From(func(r *RNG, sz Size) Shrinkable[rune] {
		var v rune
		for {
			v = rune(r.IntRange(0, 0x10FFFF))
			if v < 0xD800 || v > 0xDFFF {
				break
			}
		}
		return shrinkRuneToward(v, 'a')
	})
}

func shrinkRuneToward(v, target rune) Shrinkable[rune] {
	return MapShrinkable(shrinkInt64Toward(int64(v), int64(target)), func(n int64) rune {
		r := rune(n)
		if r >= 0xD800 && r <= 0xDFFF {
			return target
		}
		return r
	})
}
