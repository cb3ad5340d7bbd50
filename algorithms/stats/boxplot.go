package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// BoxPlot is the five-number summary backing a box plot: min, first
// quartile, median, third quartile, max.
type BoxPlot struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Summarize computes the five-number summary of data using gonum's empirical
// quantiles. The input is left untouched.
func Summarize(data []float64) (BoxPlot, error) {
	if len(data) == 0 {
		return BoxPlot{}, fmt.Errorf("empty data")
	}

	values := make([]float64, len(data))
	copy(values, data)
	sort.Float64s(values)

	return BoxPlot{
		Min:    values[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, values, nil),
		Median: stat.Quantile(0.50, stat.Empirical, values, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, values, nil),
		Max:    values[len(values)-1],
	}, nil
}

// SummarizeInts is Summarize over integer observations (counts, depths).
func SummarizeInts(data []int) (BoxPlot, error) {
	values := make([]float64, len(data))
	for i, v := range data {
		values[i] = float64(v)
	}
	return Summarize(values)
}
