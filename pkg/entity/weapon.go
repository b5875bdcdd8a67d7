// pkg/entity/weapon.go
package entity

import (
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// DefaultMaxReadiness is the readiness a broadside needs before it fires.
const DefaultMaxReadiness = 3

// Broadside is a pair of fixed cannons pointing off both beams. Readiness
// builds up one point per non-firing action and is spent all at once.
type Broadside struct {
	Readiness        int
	MaxReadiness     int
	Speed            float64
	ProjectileRadius float64
}

// NewBroadside creates an empty broadside.
func NewBroadside(maxReadiness int, speed, projectileRadius float64) Broadside {
	if maxReadiness < 1 {
		maxReadiness = DefaultMaxReadiness
	}
	return Broadside{
		MaxReadiness:     maxReadiness,
		Speed:            speed,
		ProjectileRadius: projectileRadius,
	}
}

// Charge adds one readiness point, saturating at MaxReadiness.
func (w *Broadside) Charge() {
	if w.Readiness < 0 {
		w.Readiness = 0
	}
	if w.Readiness < w.MaxReadiness {
		w.Readiness++
	}
}

// Ready reports whether the next Fire will be honored.
func (w *Broadside) Ready() bool {
	return w.Readiness == w.MaxReadiness
}

// TurnsUntilReady returns how many more charges are needed.
func (w *Broadside) TurnsUntilReady() int {
	if n := w.MaxReadiness - w.Readiness; n > 0 {
		return n
	}
	return 0
}

// Fire spends full readiness and returns one projectile per firing arc,
// left first. It returns nil and leaves readiness alone unless ready.
func (w *Broadside) Fire(owner Side, pose physics.Pose, heading physics.Heading, ids *IDSource) []*Projectile {
	if !w.Ready() {
		return nil
	}
	w.Readiness = 0

	left, right := physics.FiringArcs(heading)
	return []*Projectile{
		NewProjectile(ids.Next(), owner, pose.Position, left.Scale(w.Speed), w.ProjectileRadius),
		NewProjectile(ids.Next(), owner, pose.Position, right.Scale(w.Speed), w.ProjectileRadius),
	}
}

// Projectile represents a broadside shot in flight
type Projectile struct {
	BaseEntity
	Owner    Side
	Velocity physics.Vector2D
}

// NewProjectile creates a live projectile.
func NewProjectile(id ID, owner Side, position, velocity physics.Vector2D, radius float64) *Projectile {
	p := &Projectile{Owner: owner, Velocity: velocity}
	p.ID = id
	p.Collider.Radius = radius
	p.Active = true
	p.SetPose(physics.Pose{Position: position, Rotation: physics.VelocityRotation(velocity)})
	return p
}

// Layers implements Entity. Ownership is not a layer.
func (p *Projectile) Layers() physics.LayerSet {
	return physics.LayerProjectile.Set()
}

// Update moves the projectile along its velocity.
func (p *Projectile) Update(deltaTime float64) {
	pose := p.Pose
	pose.Position = pose.Position.Add(p.Velocity.Scale(deltaTime))
	p.SetPose(pose)
}

// Outside reports whether the projectile has left [-limit, +limit].
func (p *Projectile) Outside(limit physics.Vector2D) bool {
	return !physics.InBox(p.Pose.Position, limit)
}
