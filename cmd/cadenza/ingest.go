package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cadenza-music/cadenza/corpus"
)

var (
	ingestDir string
	ingestOut string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Convert a directory of MIDI files into an interval corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		songs, err := corpus.ScanDir(ingestDir)
		if err != nil {
			return err
		}
		if len(songs) == 0 {
			return fmt.Errorf("no usable MIDI files under %s", ingestDir)
		}
		if err := corpus.Save(ingestOut, songs); err != nil {
			return err
		}
		fmt.Printf("saved %d songs to %s\n", len(songs), ingestOut)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDir, "dir", ".", "root directory to scan for .mid/.midi files")
	ingestCmd.Flags().StringVar(&ingestOut, "out", "delta_notes.json", "corpus file to write")
	rootCmd.AddCommand(ingestCmd)
}
