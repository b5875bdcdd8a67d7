// pkg/entity/rock.go
package entity

import (
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// Rock is a static obstacle. It never moves once placed.
type Rock struct {
	BaseEntity
}

// NewRock creates a rock at position with the given radius.
func NewRock(id ID, position physics.Vector2D, radius float64) *Rock {
	r := &Rock{}
	r.ID = id
	r.Collider.Radius = radius
	r.Active = true
	r.SetPose(physics.Pose{Position: position})
	return r
}

// Layers implements Entity.
func (r *Rock) Layers() physics.LayerSet {
	return physics.LayerObstacle.Set()
}

// Radius returns the rock's collision radius.
func (r *Rock) Radius() float64 {
	return r.Collider.Radius
}
