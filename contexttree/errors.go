package contexttree

import "errors"

var (
	// ErrEmptyForest indicates a sampling request against a forest with no trees.
	ErrEmptyForest = errors.New("contexttree: forest has no trees")
	// ErrEmptyTree indicates a tree whose root has no children; such a tree
	// can never emit a symbol and invalidates the whole forest.
	ErrEmptyTree = errors.New("contexttree: tree root has no children")
	// ErrBadFrequency indicates children whose frequencies sum to zero. Every
	// child is created at frequency 1, so this is an invariant violation, not
	// a condition to soften.
	ErrBadFrequency = errors.New("contexttree: children frequencies sum to zero")
)
