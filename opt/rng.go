// Package opt - deterministic RNG plumbing shared by all variants and drivers.
//
// Everything here follows the module-wide policy from doc.go: no time-based
// sources, no global generators, seed==0 mapped to a fixed default, and
// per-worker streams derived with a SplitMix64-style mix instead of sharing
// one *rand.Rand across goroutines.
package opt

import (
	"iter"
	"math/rand"
)

// defaultRNGSeed is the fixed seed substituted when callers pass seed==0 or
// a nil generator. Arbitrary but stable, so zero-valued configurations stay
// reproducible.
const defaultRNGSeed int64 = 1

// RNGFromSeed returns a deterministic *rand.Rand for the given seed.
// Policy: seed==0 ⇒ defaultRNGSeed; any other value is used verbatim.
//
// Complexity: O(1).
func RNGFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}
	return rand.New(rand.NewSource(s))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed using the canonical SplitMix64 multipliers (Vigna 2014). The
// avalanche mix keeps sibling streams decorrelated even for adjacent ids.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// DeriveRNG creates an independent deterministic stream from a base RNG and
// a stream identifier, for per-ant / per-restart generators in parallel
// drivers. base==nil falls back to the default seed. Otherwise one Int63 is
// consumed from base, so accidentally reusing a stream id still yields
// distinct children.
//
// Call during setup, not in hot loops.
//
// Complexity: O(1).
func DeriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	var parent int64
	if base == nil {
		parent = defaultRNGSeed
	} else {
		parent = base.Int63()
	}
	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// ShuffleInts performs an in-place Fisher–Yates shuffle of a.
// rng==nil falls back to a fresh default-seed stream (deterministic).
//
// Complexity: O(n) time, O(1) extra space.
func ShuffleInts(a []int, rng *rand.Rand) {
	n := len(a)
	if n <= 1 {
		return
	}
	r := rng
	if r == nil {
		r = RNGFromSeed(0)
	}
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Perm returns a freshly allocated random permutation of 0..n-1.
// n<=0 yields an empty slice; rng==nil falls back to the default stream.
//
// Complexity: O(n) time, O(n) space.
func Perm(n int, rng *rand.Rand) []int {
	if n <= 0 {
		return nil
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	ShuffleInts(p, rng)
	return p
}

// ShuffledIndices lazily enumerates 0..n-1 exactly once each, in uniformly
// random order, without materializing the index space up front. It runs an
// inside-out Fisher–Yates over a virtual identity array, keeping only the
// displaced entries in a map, so an abandoned traversal costs memory
// proportional to what was consumed, not to n. This is what makes
// without-replacement scans over quadratic move spaces affordable when the
// consumer usually stops early.
//
// Ranging over the returned sequence again draws a new order from rng.
// rng==nil falls back to a fresh default-seed stream per traversal.
//
// Complexity: O(k) time and space for k consumed elements.
func ShuffledIndices(n int, rng *rand.Rand) iter.Seq[int] {
	return func(yield func(int) bool) {
		if n <= 0 {
			return
		}
		r := rng
		if r == nil {
			r = RNGFromSeed(0)
		}
		// displaced[k] holds the value currently sitting at virtual
		// position k wherever it differs from k itself.
		displaced := make(map[int]int)
		for i := n - 1; i >= 0; i-- {
			j := r.Intn(i + 1)
			vj, ok := displaced[j]
			if !ok {
				vj = j
			}
			vi, ok := displaced[i]
			if !ok {
				vi = i
			}
			// Emit the value at j, then park the value at i there; slot i
			// leaves the live window and can be forgotten.
			if !yield(vj) {
				return
			}
			displaced[j] = vi
			delete(displaced, i)
		}
	}
}
