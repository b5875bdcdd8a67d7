// pkg/render/hud.go
package render

import (
	"fmt"

	"github.com/opd-ai/go-broadside/pkg/engine"
)

// HUDLines returns the status lines shown beside the arena.
func HUDLines(s engine.State) []string {
	lines := []string{
		fmt.Sprintf("Health: %d", s.Player.Health),
		fmt.Sprintf("Enemy Health: %d", s.Opponent.Health),
		fmt.Sprintf("Turns till cannon readies: %d", s.Player.TurnsUntilReady()),
		fmt.Sprintf("Turns till enemy can shoot: %d", s.Opponent.TurnsUntilReady()),
		fmt.Sprintf("Turn: %s", s.Turn),
		fmt.Sprintf("Round: %d", s.Round),
	}
	if banner := Banner(s.Outcome); banner != "" {
		lines = append(lines, banner)
	}
	return lines
}

// Banner returns the end-of-match message, or "" while the match runs.
func Banner(o engine.Outcome) string {
	switch o {
	case engine.OutcomeWin:
		return "You Win"
	case engine.OutcomeLose:
		return "You Lose"
	case engine.OutcomeDraw:
		return "Draw"
	default:
		return ""
	}
}
