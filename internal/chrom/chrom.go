// Package chrom provides chromosome name ordering shared by the genome
// analyzer and the VCF generator.
package chrom

import (
	"sort"
	"strconv"
	"strings"
)

// Compare orders chromosome names the way genomic tools expect:
// autosomes numerically (1 before 2 before 10), any numeric chromosome
// before a non-numeric one, then X, Y, MT (or M), then everything else
// lexically.
func Compare(a, b string) int {
	an, aok := parseNum(a)
	bn, bok := parseNum(b)

	switch {
	case aok && bok:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case aok:
		return -1
	case bok:
		return 1
	}

	ao := nonNumericRank(a)
	bo := nonNumericRank(b)
	switch {
	case ao < bo:
		return -1
	case ao > bo:
		return 1
	}
	return strings.Compare(a, b)
}

// Less reports whether chromosome a sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts chromosome names in place.
func Sort(chroms []string) {
	sort.Slice(chroms, func(i, j int) bool {
		return Less(chroms[i], chroms[j])
	})
}

func parseNum(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	return n, err == nil
}

func nonNumericRank(s string) int {
	switch s {
	case "X":
		return 0
	case "Y":
		return 1
	case "MT", "M":
		return 2
	}
	return 99
}
