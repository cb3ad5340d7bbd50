package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cadenza-music/cadenza/contexttree"
	"github.com/cadenza-music/cadenza/corpus"
)

var (
	statsCorpus       string
	statsSongsPerTree int
	statsMaxSteps     int
	statsMaxDepth     int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Build a forest and print its collated structure metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		songs, err := corpus.Load(statsCorpus)
		if err != nil {
			return err
		}

		builder := contexttree.NewTreeBuilder(&contexttree.BuilderConfig{
			MaxSteps: statsMaxSteps,
			MaxDepth: statsMaxDepth,
		})
		forest, err := builder.BuildForest(corpus.Vectors(songs), statsSongsPerTree)
		if err != nil {
			return err
		}

		metrics, err := contexttree.Collate(forest)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(metrics, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsCorpus, "corpus", "delta_notes.json", "interval corpus file")
	statsCmd.Flags().IntVar(&statsSongsPerTree, "songs-per-tree", 200, "songs folded into each tree")
	statsCmd.Flags().IntVar(&statsMaxSteps, "max-steps", 1, "new-node budget before returning to the root (0 = unbounded)")
	statsCmd.Flags().IntVar(&statsMaxDepth, "max-depth", 0, "revisit depth before returning to the root (0 = unbounded)")
	rootCmd.AddCommand(statsCmd)
}
