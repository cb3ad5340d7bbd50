package contexttree

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Symbol is one element of the musical alphabet: a single pitch interval in
// semitones, or an ordered chord of intervals struck together. Symbols have
// value equality and serve as trie map keys via Key().
//
// The JSON form matches the interval corpus on disk: a bare number for a
// note, an array for a chord. An array of length one stays a chord - it is a
// different symbol than the equal bare number.
type Symbol struct {
	intervals []int
	chord     bool
}

// Note returns a single-interval symbol.
func Note(interval int) Symbol {
	return Symbol{intervals: []int{interval}}
}

// Chord returns an ordered multi-interval symbol.
func Chord(intervals ...int) Symbol {
	owned := make([]int, len(intervals))
	copy(owned, intervals)
	return Symbol{intervals: owned, chord: true}
}

// IsChord reports whether the symbol carries a chord of intervals.
func (s Symbol) IsChord() bool {
	return s.chord
}

// Intervals returns a copy of the symbol's intervals.
func (s Symbol) Intervals() []int {
	out := make([]int, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// IsEmpty reports whether the symbol is the sentinel for absent data: a zero
// note or a chord with no intervals. Ingestion stops at the first empty
// symbol. A chord containing zeros is not empty.
func (s Symbol) IsEmpty() bool {
	if s.chord {
		return len(s.intervals) == 0
	}
	return len(s.intervals) == 0 || s.intervals[0] == 0
}

// Key returns the canonical map-key encoding of the symbol.
func (s Symbol) Key() string {
	if !s.chord {
		if len(s.intervals) == 0 {
			return ""
		}
		return strconv.Itoa(s.intervals[0])
	}
	parts := make([]string, len(s.intervals))
	for i, v := range s.intervals {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Equal reports value equality, including the note/chord distinction.
func (s Symbol) Equal(other Symbol) bool {
	return s.Key() == other.Key()
}

func (s Symbol) String() string {
	return s.Key()
}

// MarshalJSON writes a bare number for a note and an array for a chord.
func (s Symbol) MarshalJSON() ([]byte, error) {
	if s.chord {
		return json.Marshal(s.intervals)
	}
	if len(s.intervals) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(s.intervals[0])
}

// UnmarshalJSON accepts a number, an array of numbers, or null.
func (s *Symbol) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = Symbol{}
		return nil
	}
	if trimmed[0] == '[' {
		var intervals []int
		if err := json.Unmarshal(trimmed, &intervals); err != nil {
			return err
		}
		*s = Symbol{intervals: intervals, chord: true}
		return nil
	}
	var interval int
	if err := json.Unmarshal(trimmed, &interval); err != nil {
		return err
	}
	*s = Note(interval)
	return nil
}
