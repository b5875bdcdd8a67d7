// pkg/engine/collision.go
package engine

import (
	"github.com/opd-ai/go-broadside/pkg/entity"
	"github.com/opd-ai/go-broadside/pkg/event"
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// Damage causes, used in logs, events and metrics.
const (
	causeRam        = "ram"
	causeRock       = "rock"
	causeProjectile = "projectile"
)

// resolveContacts applies the combat consequences of one tick's contacts.
// Stopped contacts are only reported.
func (m *Match) resolveContacts(contacts []physics.Contact) {
	for _, c := range contacts {
		m.metrics.collision(m.ctx, c.Kind.String())

		eventType := event.CollisionStarted
		if c.Kind == physics.ContactStopped {
			eventType = event.CollisionStopped
		}
		m.emit(event.NewCollisionEvent(eventType, m, c.A.ID, c.B.ID,
			c.A.Layers.String(), c.B.Layers.String()))

		if c.Kind == physics.ContactStopped {
			m.logger.Debug(m.ctx, "contact stopped",
				"a", c.A.ID, "b", c.B.ID, "layers_a", c.A.Layers.String(), "layers_b", c.B.Layers.String())
			continue
		}
		m.resolveStarted(c.A, c.B)
	}
}

// resolveStarted classifies a started contact by the layers of both
// participants. Pairs are ordered by layer so every combination of the
// closed layer set falls into exactly one case.
func (m *Match) resolveStarted(a, b physics.BodyRef) {
	la, okA := physics.Classify(a.Layers)
	lb, okB := physics.Classify(b.Layers)
	if !okA || !okB {
		m.logger.Debug(m.ctx, "ignoring contact with unclassified body",
			"a", a.ID, "b", b.ID, "layers_a", a.Layers.String(), "layers_b", b.Layers.String())
		return
	}
	if lb < la {
		a, b = b, a
		la, lb = lb, la
	}

	switch la {
	case physics.LayerPlayer:
		switch lb {
		case physics.LayerPlayer:
			// A single player craft cannot touch itself.
		case physics.LayerOpponent:
			m.ram(a.ID, b.ID)
		case physics.LayerObstacle:
			if craft := m.craftByID(a.ID, entity.SidePlayer); craft != nil {
				m.damage(craft, causeRock)
			}
		case physics.LayerProjectile:
			m.projectileHit(a.ID, entity.SidePlayer, b.ID)
		}
	case physics.LayerOpponent:
		switch lb {
		case physics.LayerOpponent:
			// One opponent craft per match.
		case physics.LayerObstacle:
			m.opponentStruckRock(a.ID)
		case physics.LayerProjectile:
			m.projectileHit(a.ID, entity.SideOpponent, b.ID)
		}
	case physics.LayerObstacle:
		switch lb {
		case physics.LayerObstacle:
			// Rocks are static and may be placed touching.
		case physics.LayerProjectile:
			if p := m.liveProjectile(b.ID); p != nil {
				m.destroyProjectile(p, "rock")
			}
		}
	case physics.LayerProjectile:
		m.projectilesMet(a.ID, b.ID)
	}
}

// craftByID returns side's craft if id really names it.
func (m *Match) craftByID(id uint64, side entity.Side) *entity.Craft {
	craft := m.craft(side)
	if craft == nil || uint64(craft.ID) != id {
		return nil
	}
	return craft
}

func (m *Match) ram(playerID, opponentID uint64) {
	p := m.craftByID(playerID, entity.SidePlayer)
	o := m.craftByID(opponentID, entity.SideOpponent)
	if p == nil || o == nil {
		return
	}
	m.damage(p, causeRam)
	m.damage(o, causeRam)
}

func (m *Match) opponentStruckRock(id uint64) {
	o := m.craftByID(id, entity.SideOpponent)
	if o == nil {
		return
	}
	if m.policy == PolicyStun {
		o.Stunned = true
		m.logger.Debug(m.ctx, "opponent stunned by rock", "tick", m.tick)
		return
	}
	m.damage(o, causeRock)
}

// projectileHit damages the craft unless the projectile is its own.
func (m *Match) projectileHit(craftID uint64, side entity.Side, projectileID uint64) {
	craft := m.craftByID(craftID, side)
	p := m.liveProjectile(projectileID)
	if craft == nil || p == nil || p.Owner == side {
		return
	}
	m.damage(craft, causeProjectile)
	m.destroyProjectile(p, "hit")
}

// projectilesMet destroys both projectiles when they belong to different
// sides. Sibling shots from one broadside spawn on top of each other.
func (m *Match) projectilesMet(a, b uint64) {
	pa, pb := m.liveProjectile(a), m.liveProjectile(b)
	if pa == nil || pb == nil || pa.Owner == pb.Owner {
		return
	}
	m.destroyProjectile(pa, "intercepted")
	m.destroyProjectile(pb, "intercepted")
}

func (m *Match) damage(craft *entity.Craft, cause string) {
	amount := m.collisionDamage
	if amount <= 0 {
		return
	}
	health := craft.TakeDamage(amount)

	m.metrics.damaged(m.ctx, craft.Side.String(), cause, amount)
	m.logger.Debug(m.ctx, "craft damaged",
		"side", craft.Side.String(), "cause", cause, "amount", amount, "health", health, "tick", m.tick)
	m.emit(event.NewCraftEvent(event.CraftDamaged, m, uint64(craft.ID), craft.Side.String(),
		int(craft.Heading), craft.Pose.Position.X, craft.Pose.Position.Y, health))
}
