package tui

import (
	"testing"
	"time"
)

func TestCompletionToneLength(t *testing.T) {
	tone, err := completionTone(chimeSampleRate)
	if err != nil {
		t.Fatalf("tone: %v", err)
	}
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := tone.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	want := 2 * chimeSampleRate.N(120*time.Millisecond)
	if total != want {
		t.Fatalf("expected %d samples, got %d", want, total)
	}
}

func TestDisabledChimeIsSilent(t *testing.T) {
	c, err := NewChime(false)
	if err != nil {
		t.Fatalf("disabled chime: %v", err)
	}
	if c.Enabled() || c.Play() {
		t.Fatalf("disabled chime should not play")
	}
	c.Close()

	var nilChime *Chime
	if nilChime.Play() {
		t.Fatalf("nil chime should not play")
	}
}
