// pkg/engine/turn.go
package engine

import (
	"errors"

	"github.com/opd-ai/go-broadside/pkg/entity"
)

// ErrNotYourTurn is returned when a side acts while the other holds the turn.
var ErrNotYourTurn = errors.New("not your turn")

// TurnState names the side allowed to act.
type TurnState int

const (
	PlayerTurn TurnState = iota
	OpponentTurn
)

// TurnOf returns the state in which side holds the turn.
func TurnOf(side entity.Side) TurnState {
	if side == entity.SideOpponent {
		return OpponentTurn
	}
	return PlayerTurn
}

// Side returns the side holding the turn.
func (t TurnState) Side() entity.Side {
	if t == OpponentTurn {
		return entity.SideOpponent
	}
	return entity.SidePlayer
}

func (t TurnState) String() string {
	if t == OpponentTurn {
		return "Opponent"
	}
	return "Player"
}

// Action describes what a side did during one tick.
type Action uint8

const (
	// ActionFire is a free action and never ends the turn on its own.
	ActionFire Action = 1 << iota
	// ActionMove covers any heading change or forward move.
	ActionMove
	// ActionPass gives the turn away without acting.
	ActionPass
)

// EndsTurn reports whether a tick with action hands the turn over.
func (a Action) EndsTurn() bool {
	return a&(ActionMove|ActionPass) != 0
}

// Arbitrator enforces alternation between the two sides.
type Arbitrator struct {
	State TurnState
}

// Allows reports whether side may act now.
func (a *Arbitrator) Allows(side entity.Side) bool {
	return a.State == TurnOf(side)
}

// Complete records that side finished action. It returns whether the turn
// passed to the other side. Acting out of turn fails with ErrNotYourTurn
// and changes nothing.
func (a *Arbitrator) Complete(side entity.Side, action Action) (bool, error) {
	if !a.Allows(side) {
		return false, ErrNotYourTurn
	}
	if !action.EndsTurn() {
		return false, nil
	}
	a.State = TurnOf(side.Other())
	return true, nil
}

// Reset gives the turn back to the player.
func (a *Arbitrator) Reset() {
	a.State = PlayerTurn
}
