package tui

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const chimeSampleRate = beep.SampleRate(44100)

// Chime plays a short two-note tone when a run completes. A Chime whose
// speaker failed to initialise stays silent.
type Chime struct {
	enabled bool
}

// NewChime initialises the speaker. The error is informational: the returned
// Chime is always usable.
func NewChime(enabled bool) (*Chime, error) {
	if !enabled {
		return &Chime{}, nil
	}
	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10)); err != nil {
		return &Chime{}, err
	}
	return &Chime{enabled: true}, nil
}

// Enabled reports whether the chime produces sound.
func (c *Chime) Enabled() bool { return c != nil && c.enabled }

// Play queues the completion tone. It returns false when silent.
func (c *Chime) Play() bool {
	if !c.Enabled() {
		return false
	}
	tone, err := completionTone(chimeSampleRate)
	if err != nil {
		return false
	}
	speaker.Play(tone)
	return true
}

// Close releases the speaker.
func (c *Chime) Close() {
	if c.Enabled() {
		speaker.Close()
		c.enabled = false
	}
}

// completionTone is a rising fifth: 660 Hz then 990 Hz, 120 ms each.
func completionTone(sr beep.SampleRate) (beep.Streamer, error) {
	low, err := generators.SineTone(sr, 660)
	if err != nil {
		return nil, err
	}
	high, err := generators.SineTone(sr, 990)
	if err != nil {
		return nil, err
	}
	note := sr.N(120 * time.Millisecond)
	return beep.Seq(beep.Take(note, low), beep.Take(note, high)), nil
}
