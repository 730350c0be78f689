// Package elements selects reproducible elemental immunity sets
package elements

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

// pcgStream is the second PCG word; only the seed varies between ladders
const pcgStream = 0x9e3779b97f4a7c15

// Seed hashes a ladder position into a selection seed using FNV-1a
func Seed(ladder string, floor, level int) uint64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%s:%d:%d", ladder, floor, level)
	return h.Sum64()
}

// Select picks count distinct elements from the catalogue. The same seed
// always yields the same elements in the same order.
func Select(seed uint64, count int) []entities.Element {
	if count <= 0 {
		return nil
	}
	pool := make([]entities.Element, len(entities.Elements))
	copy(pool, entities.Elements)
	if count > len(pool) {
		count = len(pool)
	}

	r := rand.New(rand.NewPCG(seed, pcgStream))
	for i := 0; i < count; i++ {
		j := i + r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count:count]
}

// Contains reports whether set holds e
func Contains(set []entities.Element, e entities.Element) bool {
	for _, s := range set {
		if s == e {
			return true
		}
	}
	return false
}

// AllImmune reports whether every affinity is in immunities. An empty
// affinity list is never immune.
func AllImmune(affinities, immunities []entities.Element) bool {
	if len(affinities) == 0 {
		return false
	}
	for _, a := range affinities {
		if !Contains(immunities, a) {
			return false
		}
	}
	return true
}

// AnyEffective reports whether at least one affinity is not in immunities
func AnyEffective(affinities, immunities []entities.Element) bool {
	for _, a := range affinities {
		if !Contains(immunities, a) {
			return true
		}
	}
	return false
}
