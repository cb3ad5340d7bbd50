package contexttree

import (
	"github.com/cadenza-music/cadenza/algorithms/stats"
)

// Metric names in the collated mapping. The names and their numeric
// semantics are the contract with external reporting; rendering is not this
// package's concern.
const (
	MetricNodeCount       = "node_count"
	MetricLeafCount       = "leaf_count"
	MetricMaxDepth        = "max_depth"
	MetricMeanLeafDepth   = "mean_leaf_depth"
	MetricBranchingFactor = "branching_factor"
	MetricTotalFrequency  = "total_frequency"
)

// TreeMetrics aggregates structural statistics over one tree. Diagnostic
// only: computing metrics never touches the generative path.
type TreeMetrics struct {
	NodeCount       int     `json:"node_count"` // nodes excluding the root
	LeafCount       int     `json:"leaf_count"`
	MaxDepth        int     `json:"max_depth"`
	MeanLeafDepth   float64 `json:"mean_leaf_depth"`
	BranchingFactor float64 `json:"branching_factor"` // mean children per internal node
	TotalFrequency  int     `json:"total_frequency"`  // sum of the root's immediate children frequencies
}

// Analyze walks the tree with an explicit stack (no recursion, arbitrarily
// deep chains are fine) and returns its structural aggregates.
func Analyze(root *Node) TreeMetrics {
	var m TreeMetrics
	for _, child := range root.Children() {
		m.TotalFrequency += child.Frequency()
	}

	type frame struct {
		node  *Node
		depth int
	}
	stack := []frame{{root, 0}}
	internal := 0
	childSum := 0
	leafDepthSum := 0

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node != root {
			m.NodeCount++
		}
		if f.node.IsLeaf() {
			m.LeafCount++
			leafDepthSum += f.depth
			if f.depth > m.MaxDepth {
				m.MaxDepth = f.depth
			}
			continue
		}

		internal++
		childSum += len(f.node.Children())
		for _, child := range f.node.Children() {
			stack = append(stack, frame{child, f.depth + 1})
		}
	}

	if m.LeafCount > 0 {
		m.MeanLeafDepth = float64(leafDepthSum) / float64(m.LeafCount)
	}
	if internal > 0 {
		m.BranchingFactor = float64(childSum) / float64(internal)
	}
	return m
}

// Collate analyzes every tree in the forest and reduces each metric to its
// five-number summary.
func Collate(forest Forest) (map[string]stats.BoxPlot, error) {
	if len(forest) == 0 {
		return nil, ErrEmptyForest
	}

	series := make(map[string][]float64, 6)
	for _, tree := range forest {
		m := Analyze(tree)
		series[MetricNodeCount] = append(series[MetricNodeCount], float64(m.NodeCount))
		series[MetricLeafCount] = append(series[MetricLeafCount], float64(m.LeafCount))
		series[MetricMaxDepth] = append(series[MetricMaxDepth], float64(m.MaxDepth))
		series[MetricMeanLeafDepth] = append(series[MetricMeanLeafDepth], m.MeanLeafDepth)
		series[MetricBranchingFactor] = append(series[MetricBranchingFactor], m.BranchingFactor)
		series[MetricTotalFrequency] = append(series[MetricTotalFrequency], float64(m.TotalFrequency))
	}

	collated := make(map[string]stats.BoxPlot, len(series))
	for name, values := range series {
		summary, err := stats.Summarize(values)
		if err != nil {
			return nil, err
		}
		collated[name] = summary
	}
	return collated, nil
}
