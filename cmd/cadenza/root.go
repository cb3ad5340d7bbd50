package main

import (
	"github.com/spf13/cobra"

	"github.com/cadenza-music/cadenza/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cadenza",
	Short: "Generate melodies from MIDI corpora with adaptive context trees",
	Long: `cadenza builds a forest of frequency tries from pitch-interval
corpora and samples new symbol sequences from them by a weighted random walk
with leaf-triggered restarts.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
