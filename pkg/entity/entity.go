// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is the base interface for all arena objects
type Entity interface {
	GetID() ID
	GetPose() physics.Pose
	GetCollider() physics.Circle
	Layers() physics.LayerSet
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID       ID
	Pose     physics.Pose
	Collider physics.Circle
	Active   bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPose returns the entity's pose
func (e *BaseEntity) GetPose() physics.Pose {
	return e.Pose
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Pose.Position
}

// GetCollider returns the entity's collision shape centered on its pose
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{
		Center: e.Pose.Position,
		Radius: e.Collider.Radius,
	}
}

// SetPose moves the entity and keeps its collider on it.
func (e *BaseEntity) SetPose(p physics.Pose) {
	e.Pose = p
	e.Collider.Center = p.Position
}

// BodyOf builds the physics body handed to a collision collaborator.
func BodyOf(e Entity) physics.Body {
	return physics.Body{
		ID:     uint64(e.GetID()),
		Layers: e.Layers(),
		Shape:  e.GetCollider(),
	}
}

// IDSource hands out entity IDs for one match. IDs start at 1 so the zero
// value never names a live entity.
type IDSource struct {
	next ID
}

// NewIDSource creates a source whose first ID is 1.
func NewIDSource() *IDSource {
	return &IDSource{next: 1}
}

// Next returns a fresh ID.
func (s *IDSource) Next() ID {
	if s.next == 0 {
		s.next = 1
	}
	id := s.next
	s.next++
	return id
}

// Side names one of the two combatants.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) String() string {
	if s == SideOpponent {
		return "opponent"
	}
	return "player"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// Layer returns the collision layer of the side's craft.
func (s Side) Layer() physics.Layer {
	if s == SideOpponent {
		return physics.LayerOpponent
	}
	return physics.LayerPlayer
}

func (c *Craft) Render(r Renderer) {
	r.RenderCraft(c)
}

func (rk *Rock) Render(r Renderer) {
	r.RenderRock(rk)
}

func (p *Projectile) Render(r Renderer) {
	r.RenderProjectile(p)
}
