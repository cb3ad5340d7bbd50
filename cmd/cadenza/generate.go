package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cadenza-music/cadenza/contexttree"
	"github.com/cadenza-music/cadenza/corpus"
	"github.com/cadenza-music/cadenza/generate"
	"github.com/cadenza-music/cadenza/midi"
)

var (
	genCorpus       string
	genSongsPerTree int
	genMaxSteps     int
	genMaxDepth     int
	genLength       int
	genCount        int
	genSeed         uint64
	genOut          string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a forest from a corpus and generate new sequences",
	RunE: func(cmd *cobra.Command, args []string) error {
		songs, err := corpus.Load(genCorpus)
		if err != nil {
			return err
		}

		generator := generate.NewGenerator(&generate.Config{
			Builder: contexttree.BuilderConfig{
				MaxSteps: genMaxSteps,
				MaxDepth: genMaxDepth,
			},
			SongsPerTree: genSongsPerTree,
			Length:       genLength,
			Sequences:    genCount,
			Seed:         genSeed,
		})

		result, err := generator.Run(corpus.Vectors(songs))
		if err != nil {
			return err
		}

		if genOut != "" && len(result.Sequences) > 0 {
			pitches := midi.ReconstructPitches(result.Sequences[0].Symbols, generator.Sampler().RNG())
			if err := midi.WriteFile(genOut, pitches, nil); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", genOut)
		}

		summary, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(summary))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&genCorpus, "corpus", "delta_notes.json", "interval corpus file")
	generateCmd.Flags().IntVar(&genSongsPerTree, "songs-per-tree", 200, "songs folded into each tree")
	generateCmd.Flags().IntVar(&genMaxSteps, "max-steps", 1, "new-node budget before returning to the root (0 = unbounded)")
	generateCmd.Flags().IntVar(&genMaxDepth, "max-depth", 0, "revisit depth before returning to the root (0 = unbounded)")
	generateCmd.Flags().IntVar(&genLength, "length", 100, "symbols per generated sequence")
	generateCmd.Flags().IntVar(&genCount, "count", 1, "number of sequences to generate")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "random seed (0 = from the clock)")
	generateCmd.Flags().StringVar(&genOut, "out", "generated.mid", "SMF file for the first generated sequence (empty to skip)")
	rootCmd.AddCommand(generateCmd)
}
