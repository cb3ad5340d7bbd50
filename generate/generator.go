package generate

import (
	"time"

	"github.com/google/uuid"

	"github.com/cadenza-music/cadenza/algorithms/stats"
	"github.com/cadenza-music/cadenza/contexttree"
	"github.com/cadenza-music/cadenza/logging"
)

// MetricLeafRestarts is the collated-metrics key for per-sequence restart
// counts observed during the run.
const MetricLeafRestarts = "leaf_restarts"

// Config carries the full run surface: tree growth bounds, corpus batching,
// and sampling parameters.
type Config struct {
	Builder      contexttree.BuilderConfig `json:"builder"`
	SongsPerTree int                       `json:"songs_per_tree"`
	Length       int                       `json:"length"`
	Sequences    int                       `json:"sequences"`
	Seed         uint64                    `json:"seed"` // 0 = derive from the clock
}

// DefaultConfig mirrors the reference run parameters: 200 songs per tree,
// one 100-symbol sequence.
func DefaultConfig() *Config {
	return &Config{
		Builder:      *contexttree.DefaultBuilderConfig(),
		SongsPerTree: 200,
		Length:       100,
		Sequences:    1,
	}
}

// Result is one complete generation run.
type Result struct {
	ID                string                           `json:"id"`
	Timestamp         time.Time                        `json:"timestamp"`
	Config            *Config                          `json:"config"`
	Songs             int                              `json:"songs"`
	Trees             int                              `json:"trees"`
	Sequences         []*contexttree.GeneratedSequence `json:"sequences"`
	Metrics           map[string]stats.BoxPlot         `json:"metrics"`
	RestartsPerSymbol float64                          `json:"restarts_per_symbol"`
}

// Generator folds a song corpus into a forest of context trees and samples
// new sequences from it. Build once, sample many.
type Generator struct {
	config  *Config
	builder *contexttree.TreeBuilder
	sampler *contexttree.Sampler
	logger  logging.Logger
}

// NewGenerator creates a generator; nil config means defaults.
func NewGenerator(config *Config) *Generator {
	if config == nil {
		config = DefaultConfig()
	}
	builderConfig := config.Builder
	return &Generator{
		config:  config,
		builder: contexttree.NewTreeBuilder(&builderConfig),
		sampler: contexttree.NewSampler(config.Seed),
		logger:  logging.WithFields(logging.Fields{"component": "generator"}),
	}
}

// Sampler exposes the run's seeded sampler so downstream stages (pitch
// reconstruction) draw from the same random stream.
func (g *Generator) Sampler() *contexttree.Sampler {
	return g.sampler
}

// BuildForest batches songs per the config and builds one tree per batch.
func (g *Generator) BuildForest(songs [][]contexttree.Symbol) (contexttree.Forest, error) {
	forest, err := g.builder.BuildForest(songs, g.config.SongsPerTree)
	if err != nil {
		return nil, err
	}
	if err := forest.Validate(); err != nil {
		return nil, err
	}
	g.logger.Info("forest built", logging.Fields{
		"songs": len(songs),
		"trees": len(forest),
	})
	return forest, nil
}

// Run executes the whole pipeline over songs: build the forest, sample the
// configured sequences, collate forest metrics plus the run's leaf-restart
// statistics.
func (g *Generator) Run(songs [][]contexttree.Symbol) (*Result, error) {
	forest, err := g.BuildForest(songs)
	if err != nil {
		return nil, err
	}

	sequences, err := g.sampler.GenerateN(forest, g.config.Length, g.config.Sequences)
	if err != nil {
		return nil, err
	}

	metrics, err := contexttree.Collate(forest)
	if err != nil {
		return nil, err
	}

	totalRestarts := 0
	restarts := make([]int, len(sequences))
	for i, seq := range sequences {
		restarts[i] = seq.Restarts
		totalRestarts += seq.Restarts
	}
	if len(restarts) > 0 {
		summary, err := stats.SummarizeInts(restarts)
		if err != nil {
			return nil, err
		}
		metrics[MetricLeafRestarts] = summary
	}

	restartsPerSymbol := 0.0
	if symbols := g.config.Sequences * g.config.Length; symbols > 0 {
		restartsPerSymbol = float64(totalRestarts) / float64(symbols)
	}

	result := &Result{
		ID:                uuid.NewString(),
		Timestamp:         time.Now().UTC(),
		Config:            g.config,
		Songs:             len(songs),
		Trees:             len(forest),
		Sequences:         sequences,
		Metrics:           metrics,
		RestartsPerSymbol: restartsPerSymbol,
	}

	g.logger.Info("run complete", logging.Fields{
		"id":                  result.ID,
		"sequences":           len(sequences),
		"restarts_per_symbol": restartsPerSymbol,
	})
	return result, nil
}
