package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/opd-ai/go-broadside/pkg/event"
)

// drain counts the samples left in s.
func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestPlayer_ToneLength(t *testing.T) {
	p := NewPlayerWith(beep.SampleRate(1000), func(...beep.Streamer) {}, nil)

	tone, err := p.Tone(Cue{Freq: 100, Duration: 250 * time.Millisecond})
	if err != nil {
		t.Fatalf("Tone() error = %v", err)
	}
	if got := drain(tone); got != 250 {
		t.Errorf("tone has %d samples, want 250", got)
	}
}

func TestPlayer_Attach(t *testing.T) {
	tests := []struct {
		name  string
		event event.Event
		want  int
	}{
		{"fire", event.NewProjectileEvent(event.ProjectileFired, nil, 7, "player"), 1},
		{"damage", event.NewCraftEvent(event.CraftDamaged, nil, 1, "player", 0, 0, 0, 2), 1},
		{"win", event.NewMatchEvent(event.MatchEnded, nil, "m", 1, "win"), 1},
		{"unknown outcome", event.NewMatchEvent(event.MatchEnded, nil, "m", 1, "none"), 0},
		{"start", event.NewMatchEvent(event.MatchStarted, nil, "m", 1, "none"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			played := 0
			p := NewPlayerWith(beep.SampleRate(8000), func(s ...beep.Streamer) { played += len(s) }, nil)
			bus := event.NewEventBus()
			p.Attach(bus)

			bus.Publish(tt.event)
			if played != tt.want {
				t.Errorf("played %d tones, want %d", played, tt.want)
			}

			p.Detach()
			bus.Publish(tt.event)
			if played != tt.want {
				t.Errorf("played %d tones after Detach, want %d", played, tt.want)
			}
		})
	}
}
