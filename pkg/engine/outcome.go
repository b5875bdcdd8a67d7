// pkg/engine/outcome.go
package engine

import (
	"fmt"
	"strings"
)

// Outcome is the result of a match from the player's point of view.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomeDraw:
		return "draw"
	default:
		return "none"
	}
}

// Terminal reports whether the match is over.
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// TieBreak decides the outcome when both crafts are destroyed in one tick.
type TieBreak int

const (
	TieBreakLose TieBreak = iota
	TieBreakDraw
)

// ParseTieBreak maps a config name onto a TieBreak.
func ParseTieBreak(name string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lose":
		return TieBreakLose, nil
	case "draw":
		return TieBreakDraw, nil
	}
	return TieBreakLose, fmt.Errorf("unknown tie break %q", name)
}

// CheckOutcome inspects both healths after a tick.
func CheckOutcome(player, opponent int, tie TieBreak) Outcome {
	playerDown, opponentDown := player <= 0, opponent <= 0
	switch {
	case playerDown && opponentDown:
		if tie == TieBreakDraw {
			return OutcomeDraw
		}
		return OutcomeLose
	case playerDown:
		return OutcomeLose
	case opponentDown:
		return OutcomeWin
	}
	return OutcomeNone
}

// ObstaclePolicy decides what a rock does to the opponent craft.
type ObstaclePolicy int

const (
	PolicyDamage ObstaclePolicy = iota
	PolicyStun
)

func (p ObstaclePolicy) String() string {
	if p == PolicyStun {
		return "stun"
	}
	return "damage"
}

// ParsePolicy maps a config name onto an ObstaclePolicy.
func ParsePolicy(name string) (ObstaclePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "damage":
		return PolicyDamage, nil
	case "stun":
		return PolicyStun, nil
	}
	return PolicyDamage, fmt.Errorf("unknown obstacle policy %q", name)
}
