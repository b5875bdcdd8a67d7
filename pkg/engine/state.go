// pkg/engine/state.go
package engine

import (
	"github.com/opd-ai/go-broadside/pkg/entity"
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// CraftState is a read-only copy of one craft.
type CraftState struct {
	ID           uint64
	Side         entity.Side
	Position     physics.Vector2D
	Rotation     float64
	Heading      physics.Heading
	Radius       float64
	Health       int
	MaxHealth    int
	Readiness    int
	MaxReadiness int
	Stunned      bool
}

// TurnsUntilReady mirrors Broadside.TurnsUntilReady.
func (c CraftState) TurnsUntilReady() int {
	if n := c.MaxReadiness - c.Readiness; n > 0 {
		return n
	}
	return 0
}

// RockState is a read-only copy of one rock.
type RockState struct {
	ID       uint64
	Position physics.Vector2D
	Radius   float64
}

// ProjectileState is a read-only copy of one projectile in flight.
type ProjectileState struct {
	ID       uint64
	Owner    entity.Side
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
}

// State is everything a presentation layer may look at. It shares no
// memory with the match.
type State struct {
	MatchID     string
	Round       int
	Tick        uint64
	Turn        TurnState
	Outcome     Outcome
	Extent      physics.Vector2D
	Player      CraftState
	Opponent    CraftState
	Rocks       []RockState
	Projectiles []ProjectileState
}

func craftState(c *entity.Craft) CraftState {
	return CraftState{
		ID:           uint64(c.ID),
		Side:         c.Side,
		Position:     c.Pose.Position,
		Rotation:     c.Pose.Rotation,
		Heading:      c.Heading,
		Radius:       c.Collider.Radius,
		Health:       c.Health,
		MaxHealth:    c.MaxHealth,
		Readiness:    c.Weapon.Readiness,
		MaxReadiness: c.Weapon.MaxReadiness,
		Stunned:      c.Stunned,
	}
}

// Snapshot copies the current match state.
func (m *Match) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := State{
		MatchID:     m.ID,
		Round:       m.round,
		Tick:        m.tick,
		Turn:        m.turn.State,
		Outcome:     m.outcome,
		Extent:      m.extent,
		Player:      craftState(m.player),
		Opponent:    craftState(m.opponent),
		Rocks:       make([]RockState, 0, len(m.rocks)),
		Projectiles: make([]ProjectileState, 0, len(m.projectiles)),
	}
	for _, r := range m.rocks {
		s.Rocks = append(s.Rocks, RockState{
			ID:       uint64(r.ID),
			Position: r.Pose.Position,
			Radius:   r.Radius(),
		})
	}
	for _, p := range m.projectiles {
		if !p.Active {
			continue
		}
		s.Projectiles = append(s.Projectiles, ProjectileState{
			ID:       uint64(p.ID),
			Owner:    p.Owner,
			Position: p.Pose.Position,
			Velocity: p.Velocity,
			Radius:   p.Collider.Radius,
		})
	}
	return s
}

// Render draws every live entity on r between Clear and Present. The
// entities are only valid for the duration of the call and must not be
// modified.
func (m *Match) Render(r entity.Renderer) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r.Clear()
	for _, rock := range m.rocks {
		rock.Render(r)
	}
	for _, p := range m.projectiles {
		if p.Active {
			p.Render(r)
		}
	}
	m.player.Render(r)
	m.opponent.Render(r)
	r.Present()
}
