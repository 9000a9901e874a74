// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package prng implements a small deterministic pseudo-random generator
// used by statistics functions (sample) that require a reproducible
// sequence given a fixed seed, independent of Go's global math/rand
// state.
package prng

// SplitMix64 is the well-known splitmix64 generator: a simple additive
// recurrence over a 64-bit state run through a fixed bit-mixing
// function. It is not cryptographically secure; it exists purely for
// reproducible sampling.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 seeds a generator. The same seed always yields the same
// sequence.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

// Next returns the next 64-bit value in the sequence.
func (g *SplitMix64) Next() uint64 {
	g.state += 0x9E3779B97F4A7C15
	z := g.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
