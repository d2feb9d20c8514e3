package pick

// NoHit is the sentinel returned for background pixels and out-of-range
// decodes.
const NoHit = -1

// Encode packs an instance index into a 24-bit RGB identity color. Index i
// maps to i+1 so that pure black stays reserved for "no hit"; the value is
// split most-significant byte first across (R, G, B).
func Encode(i int) (r, g, b uint8) {
	v := uint32(i + 1)
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// Decode reverses Encode. An exact (0,0,0) pixel decodes to NoHit, never
// to a valid index.
func Decode(r, g, b uint8) int {
	v := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	if v == 0 {
		return NoHit
	}
	return int(v) - 1
}
