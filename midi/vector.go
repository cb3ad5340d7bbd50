package midi

import (
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/cadenza-music/cadenza/contexttree"
)

// referencePitch anchors the first event: middle C.
const referencePitch = 60

// noteEvent is one moment of the song: every pitch starting at one tick.
type noteEvent struct {
	tick    uint64
	pitches []int
}

// ReadIntervals parses the Standard MIDI File at path into a pitch-interval
// symbol vector.
func ReadIntervals(path string) ([]contexttree.Symbol, error) {
	song, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("midi: reading %s: %w", path, err)
	}
	return IntervalVector(song), nil
}

// IntervalVector converts a parsed SMF into a sequential vector of pitch
// intervals (deltas). Note starts across all tracks are ordered by absolute
// tick; pitches sharing a tick form one chord. Each event's intervals are
// relative to a reference pitch: the previous event's pitch, or - when the
// previous event was a chord - the previous pitch closest to the current
// event's lowest pitch.
func IntervalVector(song *smf.SMF) []contexttree.Symbol {
	events := collectNoteEvents(song)

	symbols := make([]contexttree.Symbol, 0, len(events))
	last := []int{referencePitch}

	for _, ev := range events {
		ref := closestPitch(last, minPitch(ev.pitches))
		intervals := make([]int, len(ev.pitches))
		for i, p := range ev.pitches {
			intervals[i] = p - ref
		}
		if len(intervals) == 1 {
			symbols = append(symbols, contexttree.Note(intervals[0]))
		} else {
			symbols = append(symbols, contexttree.Chord(intervals...))
		}
		last = ev.pitches
	}
	return symbols
}

// collectNoteEvents gathers note-start pitches from every track, grouped by
// absolute tick, pitches sorted ascending within a tick.
func collectNoteEvents(song *smf.SMF) []noteEvent {
	byTick := make(map[uint64][]int)

	for _, track := range song.Tracks {
		var abs uint64
		var channel, key, velocity uint8
		for _, ev := range track {
			abs += uint64(ev.Delta)
			if ev.Message.GetNoteStart(&channel, &key, &velocity) {
				byTick[abs] = append(byTick[abs], int(key))
			}
		}
	}

	ticks := make([]uint64, 0, len(byTick))
	for tick := range byTick {
		ticks = append(ticks, tick)
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i] < ticks[j] })

	events := make([]noteEvent, 0, len(ticks))
	for _, tick := range ticks {
		pitches := byTick[tick]
		sort.Ints(pitches)
		events = append(events, noteEvent{tick: tick, pitches: pitches})
	}
	return events
}

// closestPitch returns the pitch among candidates with the smallest absolute
// distance to target. Ties keep the earlier pitch.
func closestPitch(candidates []int, target int) int {
	closest := candidates[0]
	best := -1
	for _, p := range candidates {
		d := p - target
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
			closest = p
		}
	}
	return closest
}

func minPitch(pitches []int) int {
	lowest := pitches[0]
	for _, p := range pitches[1:] {
		if p < lowest {
			lowest = p
		}
	}
	return lowest
}
