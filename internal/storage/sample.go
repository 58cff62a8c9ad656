package storage

import (
	"math/rand/v2"
	"sort"
)

// Sample returns a uniform random sample of n rows without replacement,
// preserving the rows' original order. When n <= 0 or n >= len(rows) the
// full table is returned. A nil rng uses the package-level source.
func Sample[T any](rows []T, n int, rng *rand.Rand) []T {
	if n <= 0 || n >= len(rows) {
		return rows
	}

	var perm []int
	if rng != nil {
		perm = rng.Perm(len(rows))
	} else {
		perm = rand.Perm(len(rows))
	}

	picked := perm[:n]
	sort.Ints(picked)

	out := make([]T, n)
	for i, idx := range picked {
		out[i] = rows[idx]
	}
	return out
}
