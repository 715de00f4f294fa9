package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceIsReproducible(t *testing.T) {
	t.Parallel()

	first := NewSource(42)
	second := NewSource(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, first.Intn(1000), second.Intn(1000))
	}
	for i := 0; i < 100; i++ {
		assert.Equal(t, first.Float64(), second.Float64())
	}
}

func TestSourceShuffleIsReproducible(t *testing.T) {
	t.Parallel()

	shuffle := func(seed int64) []int {
		vals := []int{1, 2, 3, 4, 5, 6, 7, 8}
		NewSource(seed).Shuffle(len(vals), func(i, j int) {
			vals[i], vals[j] = vals[j], vals[i]
		})
		return vals
	}

	assert.Equal(t, shuffle(7), shuffle(7))
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, shuffle(7))
}

func TestSourceSeed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(99), NewSource(99).Seed())
}
