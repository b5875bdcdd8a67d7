// Package tui plays a match in a terminal through tcell.
package tui

import (
	"context"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-broadside/pkg/engine"
	"github.com/opd-ai/go-broadside/pkg/entity"
	"github.com/opd-ai/go-broadside/pkg/input"
	"github.com/opd-ai/go-broadside/pkg/logging"
	"github.com/opd-ai/go-broadside/pkg/render"
)

// hudRows is the space kept below the arena for status lines.
const hudRows = 9

var (
	styleDefault  = tcell.StyleDefault
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)
	styleOpponent = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleRock     = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	styleShot     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBanner   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
)

var runeKeys = map[rune]input.Key{
	'w': input.KeyForward,
	'a': input.KeyTurnLeft,
	'd': input.KeyTurnRight,
	' ': input.KeyFire,
}

var specialKeys = map[tcell.Key]input.Key{
	tcell.KeyUp:    input.KeyForward,
	tcell.KeyLeft:  input.KeyTurnLeft,
	tcell.KeyRight: input.KeyTurnRight,
}

// Client owns a tcell screen for the length of a match.
type Client struct {
	screen tcell.Screen
	match  *engine.Match
	keys   *input.KeyState
	logger *logging.Logger
	raster *render.TerminalRenderer
}

// NewClient creates a client drawing match on screen. Key presses are
// recorded in keys, which the match polls as its input source.
func NewClient(screen tcell.Screen, match *engine.Match, keys *input.KeyState, logger *logging.Logger) *Client {
	if keys == nil {
		keys = input.NewKeyState(0, nil)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Client{
		screen: screen,
		match:  match,
		keys:   keys,
		logger: logger,
		raster: render.NewTerminalRenderer(nil, 0, 0, 1),
	}
}

// Keys returns the key tracker fed by HandleEvent.
func (c *Client) Keys() *input.KeyState {
	return c.keys
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (c *Client) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		c.screen.Sync()
	case *tcell.EventKey:
		return c.handleKey(ev)
	}
	return true
}

func (c *Client) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		r := unicode.ToLower(ev.Rune())
		switch r {
		case 'q':
			return false
		case 'r':
			if c.match.Outcome().Terminal() {
				c.keys.Reset()
				c.match.Restart()
				c.logger.Info(context.Background(), "round restarted", "round", c.match.Snapshot().Round)
			}
			return true
		}
		if k, ok := runeKeys[r]; ok {
			c.keys.Press(k)
		}
	default:
		if k, ok := specialKeys[ev.Key()]; ok {
			c.keys.Press(k)
		}
	}
	return true
}

// Draw renders the arena and HUD onto the screen and shows it.
func (c *Client) Draw() {
	c.screen.Clear()
	width, height := c.screen.Size()

	arenaW, arenaH := width-2, height-hudRows-2
	if arenaW < 1 || arenaH < 1 {
		c.drawText(0, 0, "terminal too small", styleBanner)
		c.screen.Show()
		return
	}

	if w, h := c.raster.Size(); w != arenaW || h != arenaH {
		c.raster.Resize(arenaW, arenaH, render.FitScale(c.match.Extent(), arenaW, arenaH))
	}
	c.raster.Clear()
	c.match.Render(c.raster)

	c.drawBorder(arenaW, arenaH)
	for y := 0; y < arenaH; y++ {
		for x := 0; x < arenaW; x++ {
			ch := c.raster.Cell(x, y)
			c.screen.SetContent(x+1, y+1, ch, nil, cellStyle(ch))
		}
	}

	state := c.match.Snapshot()
	banner := render.Banner(state.Outcome)
	for i, line := range render.HUDLines(state) {
		style := styleDefault
		if banner != "" && line == banner {
			style = styleBanner
		}
		c.drawText(0, arenaH+2+i, line, style)
	}
	c.screen.Show()
}

func (c *Client) drawBorder(w, h int) {
	for x := 0; x <= w+1; x++ {
		c.screen.SetContent(x, 0, '-', nil, styleBorder)
		c.screen.SetContent(x, h+1, '-', nil, styleBorder)
	}
	for y := 1; y <= h; y++ {
		c.screen.SetContent(0, y, '|', nil, styleBorder)
		c.screen.SetContent(w+1, y, '|', nil, styleBorder)
	}
}

func (c *Client) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		c.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func cellStyle(ch rune) tcell.Style {
	switch ch {
	case render.SideGlyph(entity.SidePlayer):
		return stylePlayer
	case render.SideGlyph(entity.SideOpponent):
		return styleOpponent
	case '#':
		return styleRock
	case '*':
		return styleShot
	default:
		return styleDefault
	}
}

// Run plays until the user quits or ctx is done. Terminal events are read
// on their own goroutine; the match advances on a ticker at its time step.
func (c *Client) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	step := time.Duration(c.match.TimeStep() * float64(time.Second))
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	last := time.Now()
	c.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !c.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			c.match.Advance(now.Sub(last).Seconds(), c.keys)
			last = now
			c.Draw()
		}
	}
}
