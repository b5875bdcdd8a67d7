// Package sound plays short sine tones for combat events.
package sound

import (
	"context"
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-broadside/pkg/event"
	"github.com/opd-ai/go-broadside/pkg/logging"
)

// SampleRate is the speaker rate used by NewPlayer.
const SampleRate = beep.SampleRate(44100)

// Cue is a single tone.
type Cue struct {
	Freq     float64
	Duration time.Duration
}

// Cues played for each event type.
var (
	CueFire   = Cue{Freq: 440, Duration: 60 * time.Millisecond}
	CueHit    = Cue{Freq: 880, Duration: 50 * time.Millisecond}
	CueWin    = Cue{Freq: 660, Duration: 400 * time.Millisecond}
	CueLose   = Cue{Freq: 165, Duration: 400 * time.Millisecond}
	CueDraw   = Cue{Freq: 330, Duration: 300 * time.Millisecond}
	endingCue = map[string]Cue{"win": CueWin, "lose": CueLose, "draw": CueDraw}
)

// Player turns events into tones.
type Player struct {
	rate   beep.SampleRate
	play   func(s ...beep.Streamer)
	logger *logging.Logger
	subs   []*event.Subscription
}

// NewPlayer initializes the speaker.
func NewPlayer(logger *logging.Logger) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to open speaker: %w", err)
	}
	return NewPlayerWith(SampleRate, speaker.Play, logger), nil
}

// NewPlayerWith creates a player that hands tones to play instead of the
// speaker.
func NewPlayerWith(rate beep.SampleRate, play func(s ...beep.Streamer), logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Player{rate: rate, play: play, logger: logger}
}

// Tone builds the streamer for c.
func (p *Player) Tone(c Cue) (beep.Streamer, error) {
	sine, err := generators.SineTone(p.rate, c.Freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(p.rate.N(c.Duration), sine), nil
}

// Play starts c.
func (p *Player) Play(c Cue) {
	tone, err := p.Tone(c)
	if err != nil {
		p.logger.Warn(context.Background(), "tone skipped", "freq", c.Freq, "error", err.Error())
		return
	}
	p.play(tone)
}

// Attach subscribes the player to bus.
func (p *Player) Attach(bus *event.Bus) {
	p.subs = append(p.subs,
		bus.Subscribe(event.ProjectileFired, func(event.Event) { p.Play(CueFire) }),
		bus.Subscribe(event.CraftDamaged, func(event.Event) { p.Play(CueHit) }),
		bus.Subscribe(event.MatchEnded, func(e event.Event) {
			if me, ok := e.(*event.MatchEvent); ok {
				if c, ok := endingCue[me.Outcome]; ok {
					p.Play(c)
				}
			}
		}),
	)
}

// Detach removes every subscription made by Attach.
func (p *Player) Detach() {
	for _, s := range p.subs {
		s.Cancel()
	}
	p.subs = nil
}
