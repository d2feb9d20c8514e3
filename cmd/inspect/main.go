package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"colorcloud/internal/dataset"
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: inspect <colors.csv>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	totalRows := 0
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) != "" {
			totalRows++
		}
	}

	records, err := dataset.LoadFile(path, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flagged := 0
	lMin, lMax := math.Inf(1), math.Inf(-1)
	aMin, aMax := math.Inf(1), math.Inf(-1)
	bMin, bMax := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		if r.Flag {
			flagged++
		}
		lMin = math.Min(lMin, r.L)
		lMax = math.Max(lMax, r.L)
		aMin = math.Min(aMin, r.A)
		aMax = math.Max(aMax, r.A)
		bMin = math.Min(bMin, r.B)
		bMax = math.Max(bMax, r.B)
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Rows: %d (dropped %d)\n", totalRows, totalRows-len(records))
	fmt.Printf("Records: %d, flagged: %d\n", len(records), flagged)
	if len(records) > 0 {
		fmt.Printf("L range: [%.3f, %.3f]\n", lMin, lMax)
		fmt.Printf("a range: [%.3f, %.3f]\n", aMin, aMax)
		fmt.Printf("b range: [%.3f, %.3f]\n", bMin, bMax)
	}
}
