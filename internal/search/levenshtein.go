package search

// Levenshtein returns the edit distance between a and b with unit costs
// for insert, delete and substitute. It keeps a single DP row, so the
// auxiliary space is O(min(|a|,|b|)); it runs over the whole filtered
// record set on every ranking pass.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		prev := row[0] // row[i-1][j-1] before overwrite
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cur := row[j]

			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			best := prev + cost
			if d := row[j] + 1; d < best { // delete
				best = d
			}
			if d := row[j-1] + 1; d < best { // insert
				best = d
			}
			row[j] = best
			prev = cur
		}
	}
	return row[len(rb)]
}
