package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadenza-music/cadenza/contexttree"
	"github.com/cadenza-music/cadenza/midi"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	songs := []Song{
		{Filepath: "a.mid", Vector: []contexttree.Symbol{
			contexttree.Note(2), contexttree.Chord(0, 4, 7), contexttree.Note(-3),
		}},
		{Filepath: "b.mid", Vector: []contexttree.Symbol{contexttree.Note(5)}},
	}

	require.NoError(t, Save(path, songs))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, len(songs))
	for i := range songs {
		assert.Equal(t, songs[i].Filepath, loaded[i].Filepath)
		require.Len(t, loaded[i].Vector, len(songs[i].Vector))
		for j := range songs[i].Vector {
			assert.True(t, songs[i].Vector[j].Equal(loaded[i].Vector[j]),
				"song %d symbol %d: want %s, got %s", i, j, songs[i].Vector[j], loaded[i].Vector[j])
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestVectors(t *testing.T) {
	songs := []Song{
		{Vector: []contexttree.Symbol{contexttree.Note(1)}},
		{Vector: []contexttree.Symbol{contexttree.Note(2), contexttree.Note(3)}},
	}
	vectors := Vectors(songs)
	require.Len(t, vectors, 2)
	assert.Len(t, vectors[0], 1)
	assert.Len(t, vectors[1], 2)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, midi.WriteFile(filepath.Join(dir, "one.mid"),
		[]midi.PitchEvent{{60}, {62}, {64}}, nil))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, midi.WriteFile(filepath.Join(dir, "nested", "two.MIDI"),
		[]midi.PitchEvent{{67}, {65}}, nil))

	// Non-MIDI and unparseable files are ignored or skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.mid"), []byte("not midi"), 0o644))

	songs, err := ScanDir(dir)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	for _, song := range songs {
		assert.NotEmpty(t, song.Vector)
	}
}

func TestScanDir_MissingRoot(t *testing.T) {
	_, err := ScanDir(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
