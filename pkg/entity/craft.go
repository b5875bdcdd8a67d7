// pkg/entity/craft.go
package entity

import (
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// Craft is one side's vessel.
type Craft struct {
	BaseEntity
	Side      Side
	Heading   physics.Heading
	Health    int
	MaxHealth int
	Weapon    Broadside
	// Stunned makes the craft sit out its next decision.
	Stunned bool
}

// CraftSpec describes a craft at match start.
type CraftSpec struct {
	Position physics.Vector2D
	Heading  physics.Heading
	Radius   float64
	Health   int
}

// NewCraft creates a craft for side from spec.
func NewCraft(id ID, side Side, spec CraftSpec, weapon Broadside) *Craft {
	heading := physics.Normalize(int(spec.Heading))
	c := &Craft{
		Side:      side,
		Heading:   heading,
		Health:    spec.Health,
		MaxHealth: spec.Health,
		Weapon:    weapon,
	}
	c.ID = id
	c.Collider.Radius = spec.Radius
	c.Active = true
	c.SetPose(physics.PoseFor(spec.Position, heading))
	return c
}

// Layers implements Entity.
func (c *Craft) Layers() physics.LayerSet {
	return c.Side.Layer().Set()
}

// Alive reports whether the craft still has health left.
func (c *Craft) Alive() bool {
	return c.Health > 0
}

// TakeDamage subtracts amount from health. Health may go negative.
func (c *Craft) TakeDamage(amount int) int {
	if amount > 0 {
		c.Health -= amount
	}
	return c.Health
}

// Move applies one tick of movement. A turn always carries the craft
// forward as well, so impulse is used whenever turn or forward is set.
func (c *Craft) Move(turn int, forward bool, impulse float64, extent physics.Vector2D) {
	if turn == 0 && !forward {
		return
	}
	pose, heading := physics.Integrate(c.Pose, c.Heading, turn, impulse, extent)
	c.Heading = heading
	c.SetPose(pose)
}
