package service

import (
	"math/rand"

	"lemmyharvest/internal/services/harvest/domain"
)

// randomSort picks one cadence window uniformly per invocation
func randomSort(rng *rand.Rand, sorts []domain.Sort) domain.Sort {
	return sorts[rng.Intn(len(sorts))]
}

// sampleCommunities draws the working set: a uniform without-replacement
// sample from the whole catalog, unioned with a second draw from the
// top-ranked prefix when the catalog is deep enough, deduplicated by name
// (last-seen wins). Draws clamp to the population size, a short catalog
// never fails
func sampleCommunities(rng *rand.Rand, all []domain.Community, browse, topPrefix int) []domain.Community {
	picked := sampleWithoutReplacement(rng, all, browse)
	if len(all) > topPrefix {
		picked = append(picked, sampleWithoutReplacement(rng, all[:topPrefix], topPrefix)...)
	}

	byName := make(map[string]int, len(picked))
	out := make([]domain.Community, 0, len(picked))
	for _, c := range picked {
		if i, seen := byName[c.Name]; seen {
			out[i] = c
			continue
		}
		byName[c.Name] = len(out)
		out = append(out, c)
	}
	return out
}

// sampleWithoutReplacement returns k distinct entries of pool in random
// order; k is clamped to the pool size
func sampleWithoutReplacement(rng *rand.Rand, pool []domain.Community, k int) []domain.Community {
	if k > len(pool) {
		k = len(pool)
	}
	if k <= 0 {
		return nil
	}
	out := make([]domain.Community, 0, k)
	for _, i := range rng.Perm(len(pool))[:k] {
		out = append(out, pool[i])
	}
	return out
}
