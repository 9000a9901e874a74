// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package prng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedProducesSameSequence(t *testing.T) {
	a := NewSplitMix64(42)
	b := NewSplitMix64(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestDifferentSeedsProduceDifferentSequences(t *testing.T) {
	a := NewSplitMix64(1)
	b := NewSplitMix64(2)
	assert.NotEqual(t, a.Next(), b.Next())
}

func TestNextAdvancesState(t *testing.T) {
	g := NewSplitMix64(7)
	first := g.Next()
	second := g.Next()
	assert.NotEqual(t, first, second)
}
