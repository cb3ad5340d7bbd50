package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// WriterConfig controls SMF emission. The generator does not model rhythm,
// so every event gets the same duration at a fixed tempo.
type WriterConfig struct {
	TicksPerQuarter uint16  `json:"ticks_per_quarter"`
	TempoBPM        float64 `json:"tempo_bpm"`
	QuarterLengths  float64 `json:"quarter_lengths"` // duration of each event, in quarter notes
	Channel         uint8   `json:"channel"`
	Velocity        uint8   `json:"velocity"`
}

// DefaultWriterConfig returns eighth-note events at 120 BPM.
func DefaultWriterConfig() *WriterConfig {
	return &WriterConfig{
		TicksPerQuarter: 960,
		TempoBPM:        120,
		QuarterLengths:  0.5,
		Channel:         0,
		Velocity:        100,
	}
}

// NewSMF renders the pitch events as a single-track SMF.
func NewSMF(events []PitchEvent, config *WriterConfig) (*smf.SMF, error) {
	if config == nil {
		config = DefaultWriterConfig()
	}
	if config.TicksPerQuarter == 0 || config.QuarterLengths <= 0 {
		return nil, fmt.Errorf("midi: invalid writer config: %+v", config)
	}
	duration := uint32(config.QuarterLengths * float64(config.TicksPerQuarter))

	var track smf.Track
	track.Add(0, smf.MetaTempo(config.TempoBPM))

	for _, ev := range events {
		for _, pitch := range ev {
			track.Add(0, gomidi.NoteOn(config.Channel, clampPitch(pitch), config.Velocity))
		}
		for i, pitch := range ev {
			delta := uint32(0)
			if i == 0 {
				delta = duration
			}
			track.Add(delta, gomidi.NoteOff(config.Channel, clampPitch(pitch)))
		}
	}
	track.Close(0)

	out := smf.New()
	out.TimeFormat = smf.MetricTicks(config.TicksPerQuarter)
	if err := out.Add(track); err != nil {
		return nil, fmt.Errorf("midi: adding track: %w", err)
	}
	return out, nil
}

// WriteFile renders the pitch events as a single-track SMF at path.
func WriteFile(path string, events []PitchEvent, config *WriterConfig) error {
	out, err := NewSMF(events, config)
	if err != nil {
		return err
	}
	if err := out.WriteFile(path); err != nil {
		return fmt.Errorf("midi: writing %s: %w", path, err)
	}
	return nil
}

// clampPitch pins reconstructed pitches to the MIDI range; long generated
// runs can drift past it.
func clampPitch(pitch int) uint8 {
	if pitch < 0 {
		return 0
	}
	if pitch > 127 {
		return 127
	}
	return uint8(pitch)
}
