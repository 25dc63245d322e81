package iterate

import (
	"testing"

	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/wide"
	"github.com/stretchr/testify/assert"
)

func TestTargetedIsCartesianProduct(t *testing.T) {
	corpus := []wide.Value{wide.FromUint64(8, 1), wide.FromUint64(8, 2), wide.FromUint64(8, 3)}
	pairs := Targeted{Corpus: corpus}.Pairs(format.TwosComplement8)
	assert.Len(t, pairs, 9)
}

func TestRandomIsReproducible(t *testing.T) {
	r := Random{Seed: 0xDEADBEEF, Count: 1000}
	first := r.Pairs(format.Binary32)
	second := r.Pairs(format.Binary32)
	assert.Equal(t, first, second)
}

func TestRandomDifferentSeedsDiffer(t *testing.T) {
	a := Random{Seed: 1, Count: 100}.Pairs(format.Binary32)
	b := Random{Seed: 2, Count: 100}.Pairs(format.Binary32)
	assert.NotEqual(t, a, b)
}

func TestRandomMasksToFormatWidth(t *testing.T) {
	pairs := Random{Seed: 42, Count: 500}.Pairs(format.TwosComplement8)
	for _, p := range pairs {
		assert.LessOrEqual(t, p.A.Uint64(), uint64(0xFF))
		assert.LessOrEqual(t, p.B.Uint64(), uint64(0xFF))
	}
}

func TestRandomWideFormat(t *testing.T) {
	pairs := Random{Seed: 7, Count: 50}.Pairs(format.Binary128)
	assert.Len(t, pairs, 50)
	for _, p := range pairs {
		assert.Equal(t, uint8(128), p.A.Width())
	}
}

func TestCombinedConcatenatesInOrder(t *testing.T) {
	corpus := []wide.Value{wide.FromUint64(8, 1)}
	targeted := Targeted{Corpus: corpus}
	random := Random{Seed: 1, Count: 3}
	combined := Combined{Strategies: []Strategy{targeted, random}}
	pairs := combined.Pairs(format.TwosComplement8)
	assert.Len(t, pairs, 1+3)
}
