// Package randutil builds the seeded generators every session draws from.
// A session owns exactly one *rand.Rand: the opponent's initial table, the
// random policy and any scripted bot all pull from sources built here, so a
// seed fully determines a simulated run.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from seed. Both PCG
// words are derived through splitmix so that nearby seeds diverge quickly.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ResolveSeed returns seed unless it is zero, in which case a time-based
// seed is chosen. Callers log the resolved value so runs can be replayed.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// Derive returns the seed for the n-th independent stream under base.
func Derive(base int64, n int) int64 {
	return int64(mix(uint64(base) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
