package contexttree

import "fmt"

// Forest is an ordered collection of independently built trees. Trees never
// share nodes; order only matters to the sampler's uniform tree choice.
type Forest []*Node

// Validate checks the sampling preconditions: at least one tree, and no tree
// whose root is already a leaf (such a tree could never emit a symbol).
func (f Forest) Validate() error {
	if len(f) == 0 {
		return ErrEmptyForest
	}
	for i, tree := range f {
		if tree == nil || tree.IsLeaf() {
			return fmt.Errorf("%w (tree %d)", ErrEmptyTree, i)
		}
	}
	return nil
}
