package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadenza-music/cadenza/contexttree"
)

func testSongs() [][]contexttree.Symbol {
	note := contexttree.Note
	return [][]contexttree.Symbol{
		{note(2), note(2), note(-4), note(5)},
		{note(2), note(-1), note(-1), note(2)},
		{note(-4), note(5), note(2), contexttree.Chord(0, 4, 7)},
		{note(5), note(2), note(2), note(-4)},
	}
}

func TestRun(t *testing.T) {
	gen := NewGenerator(&Config{
		Builder:      contexttree.BuilderConfig{MaxSteps: 1},
		SongsPerTree: 2,
		Length:       20,
		Sequences:    2,
		Seed:         7,
	})

	result, err := gen.Run(testSongs())
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.False(t, result.Timestamp.IsZero())
	assert.Equal(t, 4, result.Songs)
	assert.Equal(t, 2, result.Trees)

	require.Len(t, result.Sequences, 2)
	for _, seq := range result.Sequences {
		assert.Len(t, seq.Symbols, 20)
	}

	for _, key := range []string{
		contexttree.MetricNodeCount,
		contexttree.MetricTotalFrequency,
		MetricLeafRestarts,
	} {
		_, ok := result.Metrics[key]
		assert.True(t, ok, "missing metric %s", key)
	}
	assert.GreaterOrEqual(t, result.RestartsPerSymbol, 0.0)
}

func TestRun_Deterministic(t *testing.T) {
	config := &Config{
		Builder:      contexttree.BuilderConfig{MaxSteps: 1},
		SongsPerTree: 2,
		Length:       15,
		Sequences:    1,
		Seed:         42,
	}

	first, err := NewGenerator(config).Run(testSongs())
	require.NoError(t, err)
	second, err := NewGenerator(config).Run(testSongs())
	require.NoError(t, err)

	require.Len(t, second.Sequences, len(first.Sequences))
	for i := range first.Sequences {
		a, b := first.Sequences[i], second.Sequences[i]
		require.Len(t, b.Symbols, len(a.Symbols))
		for j := range a.Symbols {
			assert.True(t, a.Symbols[j].Equal(b.Symbols[j]),
				"sequence %d symbol %d: %s vs %s", i, j, a.Symbols[j], b.Symbols[j])
		}
		assert.Equal(t, a.Restarts, b.Restarts)
		assert.Equal(t, a.SegmentLengths, b.SegmentLengths)
	}
}

func TestRun_TooFewSongs(t *testing.T) {
	gen := NewGenerator(&Config{
		Builder:      contexttree.BuilderConfig{MaxSteps: 1},
		SongsPerTree: 10,
		Length:       5,
		Sequences:    1,
		Seed:         1,
	})

	_, err := gen.Run(testSongs()[:2])
	require.ErrorIs(t, err, contexttree.ErrEmptyForest)
}

func TestRun_EmptySongs(t *testing.T) {
	// Every symbol is the empty sentinel, so ingestion truncates immediately
	// and the trees come out bare.
	songs := [][]contexttree.Symbol{
		{contexttree.Note(0)},
		{contexttree.Note(0)},
	}
	gen := NewGenerator(&Config{
		Builder:      contexttree.BuilderConfig{MaxSteps: 1},
		SongsPerTree: 2,
		Length:       5,
		Sequences:    1,
		Seed:         1,
	})

	_, err := gen.Run(songs)
	require.ErrorIs(t, err, contexttree.ErrEmptyTree)
}

func TestNewGenerator_Defaults(t *testing.T) {
	gen := NewGenerator(nil)
	require.NotNil(t, gen.config)
	assert.Equal(t, 200, gen.config.SongsPerTree)
	assert.Equal(t, 100, gen.config.Length)
	assert.Equal(t, 1, gen.config.Sequences)
	assert.NotNil(t, gen.Sampler())
}
