package contexttree

import (
	"fmt"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cadenza-music/cadenza/logging"
)

// GeneratedSequence is the output of one sampling run: the emitted symbols,
// how many times a leaf forced a restart, and the run lengths between
// restarts (including the trailing unterminated run).
type GeneratedSequence struct {
	Symbols        []Symbol `json:"symbols"`
	Restarts       int      `json:"restarts"`
	SegmentLengths []int    `json:"segment_lengths"`
}

// Sampler draws symbol sequences from a forest by a frequency-weighted
// random walk, one tree at a time, re-picking a tree whenever the walk runs
// into a leaf. All randomness comes from a single seedable generator so runs
// are reproducible.
type Sampler struct {
	rng    *rand.Rand
	logger logging.Logger
}

// NewSampler creates a sampler seeded with seed. Seed 0 derives one from the
// clock.
func NewSampler(seed uint64) *Sampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Sampler{
		rng:    rand.New(rand.NewPCG(seed, seed)),
		logger: logging.WithFields(logging.Fields{"component": "sampler"}),
	}
}

// RNG exposes the sampler's generator so collaborating stages (pitch
// reconstruction) draw from the same seeded stream.
func (s *Sampler) RNG() *rand.Rand {
	return s.rng
}

// Generate produces length symbols from forest. Every emission draws a child
// of the current node with probability proportional to its frequency; the
// distribution is recomputed from the live children set at each step. A leaf
// triggers a restart at a uniformly chosen tree and does not consume an
// output slot.
func (s *Sampler) Generate(forest Forest, length int) (*GeneratedSequence, error) {
	if err := forest.Validate(); err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("contexttree: sequence length must be non-negative, got %d", length)
	}

	cur := forest[s.rng.IntN(len(forest))]
	gen := &GeneratedSequence{Symbols: make([]Symbol, 0, length)}
	segmentStart := 0

	for len(gen.Symbols) < length {
		if cur.IsLeaf() {
			gen.SegmentLengths = append(gen.SegmentLengths, len(gen.Symbols)-segmentStart)
			segmentStart = len(gen.Symbols)
			gen.Restarts++
			cur = forest[s.rng.IntN(len(forest))]
		}

		children, probs, err := childDistribution(cur)
		if err != nil {
			return nil, err
		}

		next := children[int(distuv.NewCategorical(probs, s.rng).Rand())]
		gen.Symbols = append(gen.Symbols, next.Symbol())
		cur = next
	}
	gen.SegmentLengths = append(gen.SegmentLengths, len(gen.Symbols)-segmentStart)

	s.logger.Debug("sequence generated", logging.Fields{
		"length":   len(gen.Symbols),
		"restarts": gen.Restarts,
	})

	return gen, nil
}

// GenerateN produces count independent sequences of the requested length.
func (s *Sampler) GenerateN(forest Forest, length, count int) ([]*GeneratedSequence, error) {
	if count < 0 {
		return nil, fmt.Errorf("contexttree: sequence count must be non-negative, got %d", count)
	}
	sequences := make([]*GeneratedSequence, 0, count)
	for i := 0; i < count; i++ {
		gen, err := s.Generate(forest, length)
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, gen)
	}
	return sequences, nil
}

// childDistribution computes the sampling distribution over n's children,
// proportional to frequency. Validate guarantees a non-leaf current node, so
// an empty children set here means the structure mutated underneath us.
func childDistribution(n *Node) ([]*Node, []float64, error) {
	children := n.Children()
	if len(children) == 0 {
		return nil, nil, fmt.Errorf("%w: reached during sampling", ErrEmptyTree)
	}

	total := 0
	for _, child := range children {
		total += child.freq
	}
	if total <= 0 {
		return nil, nil, ErrBadFrequency
	}

	probs := make([]float64, len(children))
	for i, child := range children {
		probs[i] = float64(child.freq) / float64(total)
	}
	return children, probs, nil
}
