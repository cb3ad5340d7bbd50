package midi

import (
	"math/rand/v2"

	"github.com/cadenza-music/cadenza/contexttree"
)

// PitchEvent is one reconstructed event: the absolute MIDI pitches sounding
// together at that step.
type PitchEvent []int

// ReconstructPitches maps a generated interval sequence back to absolute
// MIDI pitches. The opening anchor is a random pitch in octave 4 (C4..B4)
// drawn from rng; each event's pitches are anchor+interval, and the anchor
// then moves to the event's pitch - for a chord, its lowest pitch.
func ReconstructPitches(seq []contexttree.Symbol, rng *rand.Rand) []PitchEvent {
	if len(seq) == 0 {
		return nil
	}

	anchor := referencePitch + rng.IntN(12)
	events := make([]PitchEvent, 0, len(seq))

	for _, sym := range seq {
		intervals := sym.Intervals()
		if len(intervals) == 0 {
			continue
		}
		pitches := make(PitchEvent, len(intervals))
		for i, interval := range intervals {
			pitches[i] = anchor + interval
		}
		if sym.IsChord() {
			anchor = minPitch(pitches)
		} else {
			anchor = pitches[0]
		}
		events = append(events, pitches)
	}
	return events
}
