package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ProgressFunc receives load progress as a percentage in [0,100].
type ProgressFunc func(pct float64, msg string)

// ParseCSV reads color records from r. Expected columns per row:
//
//	name, hex, l, a, b[, flag]
//
// Rows with fewer than five parseable fields are dropped silently. The
// flag column defaults to false when absent or unparsable. A leading
// header row (unparsable l/a/b) is dropped by the same rule.
func ParseCSV(r io.Reader, progress ProgressFunc) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dataset: read: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	records := make([]Record, 0, len(lines))

	for i, line := range lines {
		rec, ok := parseRow(line)
		if ok {
			records = append(records, rec)
		}
		if progress != nil && (i%2000 == 0 || i == len(lines)-1) {
			pct := float64(i+1) / float64(len(lines)) * 100
			progress(pct, fmt.Sprintf("parsed %d rows", i+1))
		}
	}

	return records, nil
}

// LoadFile parses a CSV dataset from disk.
func LoadFile(path string, progress ProgressFunc) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()
	return ParseCSV(bufio.NewReader(f), progress)
}

func parseRow(line string) (Record, bool) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return Record{}, false
	}

	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return Record{}, false
	}

	name := strings.TrimSpace(fields[0])
	hex, ok := normalizeHex(strings.TrimSpace(fields[1]))
	if name == "" || !ok {
		return Record{}, false
	}

	l, err1 := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	a, err2 := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	b, err3 := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return Record{}, false
	}

	flag := false
	if len(fields) >= 6 {
		if v, err := strconv.ParseBool(strings.TrimSpace(fields[5])); err == nil {
			flag = v
		}
	}

	rv, _ := strconv.ParseUint(hex[0:2], 16, 8)
	gv, _ := strconv.ParseUint(hex[2:4], 16, 8)
	bv, _ := strconv.ParseUint(hex[4:6], 16, 8)

	return Record{
		Name: name,
		Hex:  hex,
		L:    l,
		A:    a,
		B:    b,
		R:    uint8(rv),
		G:    uint8(gv),
		Bl:   uint8(bv),
		Flag: flag,
	}, true
}

// normalizeHex strips an optional '#' and lowercases; rejects anything
// that is not exactly six hex digits.
func normalizeHex(s string) (string, bool) {
	s = strings.ToLower(strings.TrimPrefix(s, "#"))
	if len(s) != 6 {
		return "", false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", false
		}
	}
	return s, true
}
