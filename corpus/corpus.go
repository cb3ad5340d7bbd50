// Package corpus persists per-song pitch-interval vectors as JSON and
// prepares them for tree building. The file shape is interchangeable with
// the delta-notes corpus files the generator was originally trained on.
package corpus

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cadenza-music/cadenza/contexttree"
	"github.com/cadenza-music/cadenza/logging"
	"github.com/cadenza-music/cadenza/midi"
)

// Song pairs a source file with its pitch-interval vector.
type Song struct {
	Filepath string               `json:"filepath"`
	Vector   []contexttree.Symbol `json:"vector"`
}

// Load reads a corpus file written by Save (or by the original pipeline).
func Load(path string) ([]Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: reading %s: %w", path, err)
	}
	var songs []Song
	if err := json.Unmarshal(data, &songs); err != nil {
		return nil, fmt.Errorf("corpus: parsing %s: %w", path, err)
	}
	return songs, nil
}

// Save writes songs to path as indented JSON.
func Save(path string, songs []Song) error {
	data, err := json.MarshalIndent(songs, "", "  ")
	if err != nil {
		return fmt.Errorf("corpus: encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("corpus: writing %s: %w", path, err)
	}
	return nil
}

// Vectors strips the songs down to their symbol sequences, in order.
func Vectors(songs []Song) [][]contexttree.Symbol {
	vectors := make([][]contexttree.Symbol, len(songs))
	for i, song := range songs {
		vectors[i] = song.Vector
	}
	return vectors
}

// ScanDir walks root for .mid/.midi files and converts each to a Song.
// Files that fail to parse, and files yielding no notes, are logged and
// skipped rather than failing the scan.
func ScanDir(root string) ([]Song, error) {
	logger := logging.WithFields(logging.Fields{"component": "corpus_scan"})

	var songs []Song
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".mid" && ext != ".midi" {
			return nil
		}

		vector, err := midi.ReadIntervals(path)
		if err != nil {
			logger.Warn("skipping unreadable MIDI file", logging.Fields{
				"path":  path,
				"error": err.Error(),
			})
			return nil
		}
		if len(vector) == 0 {
			logger.Debug("skipping file with no notes", logging.Fields{"path": path})
			return nil
		}
		songs = append(songs, Song{Filepath: path, Vector: vector})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("corpus: scanning %s: %w", root, err)
	}

	logger.Info("scan complete", logging.Fields{"root": root, "songs": len(songs)})
	return songs, nil
}
