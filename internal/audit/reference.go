// Package audit holds the pure reference-code arithmetic for the action
// log. Allocation (locking, collision retries) lives in the repositories
// package; everything here is deterministic and free of I/O.
package audit

import "strings"

const (
	// ReferenceLength is the fixed total length of a reference code.
	ReferenceLength = 9

	// referencePrefix is the leading character of every reference.
	referencePrefix = "A"
)

// SeedReference is the canonical starting point of the sequence: the prefix
// zero-padded to the fixed length, ending in counter "0". It is never stored;
// the first stored reference is its successor.
func SeedReference() string {
	return referencePrefix + strings.Repeat("0", ReferenceLength-1)
}

// NextReference returns the reference that follows previous in the sequence.
// An empty previous starts from the canonical seed. The result always has
// the same length as its input.
func NextReference(previous string) string {
	if previous == "" {
		previous = SeedReference()
	}
	last := len(previous) - 1
	return previous[:last] + string(successor(previous[last]))
}

// successor increments a single counter character: 0-8 numerically, 9 rolls
// to A, A-Y alphabetically. Z wraps to 0 with no carry into the preceding
// characters; this matches the historical sequence of stored references and
// must not be "fixed" without a data migration.
func successor(c byte) byte {
	switch {
	case c >= '0' && c <= '8':
		return c + 1
	case c == '9':
		return 'A'
	case c >= 'A' && c <= 'Y':
		return c + 1
	default:
		return '0'
	}
}
