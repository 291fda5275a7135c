package gen

// Uint32 generates uint32 values across the type's full range.
func Uint32() Generator[uint32] {
	return MapShrinkableGen(Uint64Range(0, uint64(^uint32(0))), func(v uint64) uint32 { return uint32(v) }, func(v uint32) uint64 { return uint64(v) })
}

// Uint16 generates uint16 values across the type's full range.
func Uint16() Generator[uint16] {
	return MapShrinkableGen(Uint64Range(0, uint64(^uint16(0))), func(v uint64) uint16 { return uint16(v) }, func(v uint16) uint64 { return uint64(v) })
}

// Byte generates a single byte.
func Byte() Generator[byte] {
	return MapShrinkableGen(Uint64Range(0, 255), func(v uint64) byte { return byte(v) }, func(v byte) uint64 { return uint64(v) })
}
