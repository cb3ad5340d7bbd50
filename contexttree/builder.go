package contexttree

import (
	"fmt"

	"github.com/cadenza-music/cadenza/logging"
)

// BuilderConfig bounds the growth of a context tree. Both limits are
// optional; zero means unbounded. MaxSteps caps consecutive node creations
// and MaxDepth caps consecutive revisit descents before the cursor returns
// to the root. The two counters trigger independently and never interact.
type BuilderConfig struct {
	MaxSteps int `json:"max_steps"`
	MaxDepth int `json:"max_depth"`
}

// DefaultBuilderConfig returns the build parameters of the reference corpus
// runs: one new node per excursion, unbounded depth.
func DefaultBuilderConfig() *BuilderConfig {
	return &BuilderConfig{
		MaxSteps: 1,
		MaxDepth: 0,
	}
}

// TreeBuilder folds symbol sequences into frequency tries, implementing a
// bounded-context, bounded-depth LZ78-style dictionary growth policy.
// Ingestion is deterministic: a fixed sequence and fixed limits always yield
// the same tree.
type TreeBuilder struct {
	config *BuilderConfig
	logger logging.Logger
}

// NewTreeBuilder creates a builder; nil config means defaults.
func NewTreeBuilder(config *BuilderConfig) *TreeBuilder {
	if config == nil {
		config = DefaultBuilderConfig()
	}
	return &TreeBuilder{
		config: config,
		logger: logging.WithFields(logging.Fields{"component": "tree_builder"}),
	}
}

// Ingest folds one ordered symbol sequence into tree, in place. The cursor
// starts at the root with both counters at zero:
//
//   - an empty symbol truncates the rest of the sequence (tolerated
//     malformed trailing data, not an error);
//   - a symbol already present as a child bumps the current node's frequency
//     and descends; reaching MaxDepth sends the cursor back to the root;
//   - a new symbol becomes a child at frequency 1 and the cursor descends
//     into it; reaching MaxSteps sends the cursor back to the root.
//
// Counters reset per sequence; the tree structure and frequencies accumulate
// across sequences.
func (b *TreeBuilder) Ingest(tree *Node, seq []Symbol) {
	cur := tree
	steps := 0
	depth := 0

	for i, sym := range seq {
		if sym.IsEmpty() {
			b.logger.Debug("empty symbol, truncating sequence", logging.Fields{
				"position": i,
				"length":   len(seq),
			})
			return
		}

		if child := cur.Child(sym); child != nil {
			cur.freq++
			cur = child
			depth++
			if b.config.MaxDepth > 0 && depth == b.config.MaxDepth {
				cur = tree
				depth = 0
			}
		} else {
			cur = cur.CreateChild(sym)
			steps++
			if b.config.MaxSteps > 0 && steps == b.config.MaxSteps {
				cur = tree
				steps = 0
			}
		}
	}
}

// IngestAll folds every sequence into tree, in order.
func (b *TreeBuilder) IngestAll(tree *Node, seqs [][]Symbol) {
	for _, seq := range seqs {
		b.Ingest(tree, seq)
	}
}

// BuildForest groups songs into batches of songsPerTree and folds each batch
// into its own tree. Grouping floors: a trailing partial batch is dropped,
// so len(songs)/songsPerTree trees come back.
func (b *TreeBuilder) BuildForest(songs [][]Symbol, songsPerTree int) (Forest, error) {
	if songsPerTree <= 0 {
		return nil, fmt.Errorf("contexttree: songs per tree must be positive, got %d", songsPerTree)
	}

	numTrees := len(songs) / songsPerTree
	forest := make(Forest, 0, numTrees)
	for i := 0; i < numTrees; i++ {
		tree := NewTree()
		b.IngestAll(tree, songs[i*songsPerTree:(i+1)*songsPerTree])
		forest = append(forest, tree)
	}

	b.logger.Debug("forest built", logging.Fields{
		"trees":          len(forest),
		"songs":          len(songs),
		"songs_per_tree": songsPerTree,
	})

	return forest, nil
}
