// Package search ranks color records against a typed query, first by
// case-insensitive substring match and, when that yields nothing, by a
// fuzzy edit-distance fallback.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"colorcloud/internal/dataset"
)

const (
	// minQueryLen is the minimum query length; shorter queries rank
	// nothing rather than erroring.
	minQueryLen = 2

	strictCap = 100
	fuzzyCap  = 20
)

// Match is one ranked result. Index refers to the record's position in
// the dataset; Distance is the edit distance used for ordering.
type Match struct {
	Index    int
	Distance int
}

// Rank orders records against query. The strict pass keeps
// visibility-filtered records whose name or hex contains the query; if it
// finds nothing, a fuzzy pass ranks all visibility-filtered records.
// Results sort by ascending edit distance, ties broken by record order.
// The first entry is the caller's implicit preview selection.
func Rank(query string, records []dataset.Record, hideUnflagged bool) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < minQueryLen {
		return nil
	}

	visible := func(rec dataset.Record) bool {
		return !hideUnflagged || rec.Flag
	}

	var candidates []int
	for i, rec := range records {
		if !visible(rec) {
			continue
		}
		if strings.Contains(strings.ToLower(rec.Name), q) || strings.Contains(rec.Hex, q) {
			candidates = append(candidates, i)
		}
	}

	limit := strictCap
	if len(candidates) == 0 {
		// Fuzzy fallback: drop the substring requirement.
		for i, rec := range records {
			if visible(rec) {
				candidates = append(candidates, i)
			}
		}
		limit = fuzzyCap
	}

	matches := make([]Match, 0, len(candidates))
	for _, i := range candidates {
		rec := records[i]
		d := Levenshtein(q, strings.ToLower(rec.Name))
		if hd := Levenshtein(q, rec.Hex); hd < d {
			d = hd
		}
		matches = append(matches, Match{Index: i, Distance: d})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Distance < matches[b].Distance
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
