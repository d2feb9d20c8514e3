package dataset

// Record is one named color. Records are immutable after load; a record's
// identity is its position in the loaded slice, which doubles as the
// picking identifier.
type Record struct {
	Name string
	Hex  string // 6 lowercase hex digits, no leading '#'

	// Perceptual coordinates: L in [0,1], A and B roughly in [-1,1].
	L float64
	A float64
	B float64

	// Derived 8-bit channels from Hex.
	R, G, Bl uint8

	// Flag marks curated ("good") entries; visibility filtering keys off it.
	Flag bool
}
