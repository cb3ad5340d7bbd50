package contexttree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EmptyForest(t *testing.T) {
	sampler := NewSampler(1)
	_, err := sampler.Generate(Forest{}, 10)
	require.ErrorIs(t, err, ErrEmptyForest)
}

func TestGenerate_EmptyTree(t *testing.T) {
	sampler := NewSampler(1)
	_, err := sampler.Generate(Forest{NewTree()}, 10)
	require.ErrorIs(t, err, ErrEmptyTree)
}

func TestGenerate_NegativeLength(t *testing.T) {
	tree := NewTree()
	tree.CreateChild(Note(1))
	_, err := NewSampler(1).Generate(Forest{tree}, -1)
	assert.Error(t, err)
}

func TestGenerate_ZeroLength(t *testing.T) {
	tree := NewTree()
	tree.CreateChild(Note(1))

	gen, err := NewSampler(1).Generate(Forest{tree}, 0)
	require.NoError(t, err)
	assert.Empty(t, gen.Symbols)
	assert.Equal(t, 0, gen.Restarts)
	assert.Equal(t, []int{0}, gen.SegmentLengths)
}

func TestGenerate_RestartAndSegments(t *testing.T) {
	// One tree, one path: root -> 1 -> 2, with node 2 a leaf. Every walk
	// emits 1,2 and then restarts; restarts consume no output slots.
	builder := NewTreeBuilder(&BuilderConfig{})
	tree := NewTree()
	builder.Ingest(tree, notes(1, 2))

	gen, err := NewSampler(7).Generate(Forest{tree}, 5)
	require.NoError(t, err)

	want := []Symbol{Note(1), Note(2), Note(1), Note(2), Note(1)}
	assert.Equal(t, want, gen.Symbols)
	assert.Equal(t, 2, gen.Restarts)
	assert.Equal(t, []int{2, 2, 1}, gen.SegmentLengths)
}

func TestGenerate_AlphabetClosure(t *testing.T) {
	builder := NewTreeBuilder(&BuilderConfig{MaxSteps: 2})
	tree := NewTree()
	builder.IngestAll(tree, [][]Symbol{
		notes(1, 2, 3, 1, 2),
		notes(4, 1, 4, 2),
		{Note(1), Chord(0, 4, 7), Note(2)},
	})

	trained := map[string]bool{}
	for _, sym := range []Symbol{Note(1), Note(2), Note(3), Note(4), Chord(0, 4, 7)} {
		trained[sym.Key()] = true
	}

	gen, err := NewSampler(99).Generate(Forest{tree}, 500)
	require.NoError(t, err)
	require.Len(t, gen.Symbols, 500)
	for _, sym := range gen.Symbols {
		assert.True(t, trained[sym.Key()], "sampler invented symbol %s", sym)
	}
}

func TestGenerate_FrequencyRatio(t *testing.T) {
	// Root with children A (freq 3) and B (freq 1): over many draws the
	// empirical split converges to 3:1.
	tree := NewTree()
	a := tree.CreateChild(Note(1))
	a.freq = 3
	tree.CreateChild(Note(2))

	const draws = 10000
	gen, err := NewSampler(42).Generate(Forest{tree}, draws)
	require.NoError(t, err)

	countA := 0
	for _, sym := range gen.Symbols {
		if sym.Equal(Note(1)) {
			countA++
		}
	}
	share := float64(countA) / float64(draws)
	assert.InDelta(t, 0.75, share, 0.02)

	// Both children are leaves, so every emission after the first restarts.
	assert.Equal(t, draws-1, gen.Restarts)
}

func TestGenerate_SeedDeterminism(t *testing.T) {
	builder := NewTreeBuilder(&BuilderConfig{MaxSteps: 2})
	tree := NewTree()
	builder.IngestAll(tree, [][]Symbol{notes(1, 2, 3, 4), notes(2, 3, 1)})
	forest := Forest{tree}

	first, err := NewSampler(123).Generate(forest, 100)
	require.NoError(t, err)
	second, err := NewSampler(123).Generate(forest, 100)
	require.NoError(t, err)

	assert.Equal(t, first.Symbols, second.Symbols)
	assert.Equal(t, first.Restarts, second.Restarts)
	assert.Equal(t, first.SegmentLengths, second.SegmentLengths)
}

func TestChildDistribution_Normalized(t *testing.T) {
	tree := NewTree()
	tree.CreateChild(Note(1)).freq = 5
	tree.CreateChild(Note(2)).freq = 2
	tree.CreateChild(Note(3)).freq = 1

	children, probs, err := childDistribution(tree)
	require.NoError(t, err)
	require.Len(t, children, 3)

	sum := 0.0
	for _, p := range probs {
		assert.Greater(t, p, 0.0)
		sum += p
	}
	assert.InEpsilon(t, 1.0, sum, 1e-12)
	assert.InEpsilon(t, 5.0/8.0, probs[0], 1e-12)
}

func TestChildDistribution_Corrupt(t *testing.T) {
	_, _, err := childDistribution(NewTree())
	require.ErrorIs(t, err, ErrEmptyTree)

	tree := NewTree()
	tree.CreateChild(Note(1)).freq = 0
	_, _, err = childDistribution(tree)
	require.ErrorIs(t, err, ErrBadFrequency)
}

func TestGenerateN(t *testing.T) {
	builder := NewTreeBuilder(&BuilderConfig{})
	tree := NewTree()
	builder.Ingest(tree, notes(1, 2, 3))

	sequences, err := NewSampler(5).GenerateN(Forest{tree}, 10, 3)
	require.NoError(t, err)
	require.Len(t, sequences, 3)
	for _, gen := range sequences {
		assert.Len(t, gen.Symbols, 10)
	}

	_, err = NewSampler(5).GenerateN(Forest{tree}, 10, -1)
	assert.Error(t, err)
}
