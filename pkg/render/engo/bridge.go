// pkg/render/engo/bridge.go
package engo

import (
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-broadside/pkg/physics"
)

// bridgeGroup is set on every body so that engo tests all pairs. The
// lower bits carry the body's layers.
const bridgeGroup common.CollisionGroup = 1 << 7

type bridgeEntry struct {
	ecs.BasicEntity
	common.CollisionComponent
	common.SpaceComponent

	body physics.Body
	seen bool
}

// CollisionBridge is a physics.Collaborator backed by engo's
// common.CollisionSystem. Engo reports bounding box overlaps through
// engo.Mailbox; the bridge refines them to circles and turns the overlap
// set into started and stopped contacts.
type CollisionBridge struct {
	system *common.CollisionSystem

	mu       sync.Mutex
	entries  map[uint64]*bridgeEntry // by body ID
	byEntity map[uint64]*bridgeEntry // by ecs ID
	pending  [][2]uint64
	overlaps physics.PairSet
	listener engo.MessageHandlerId
	closed   bool
}

// NewCollisionBridge creates a bridge listening on engo.Mailbox. A mailbox
// is created when none exists yet, as in headless use.
func NewCollisionBridge() *CollisionBridge {
	if engo.Mailbox == nil {
		engo.Mailbox = &engo.MessageManager{}
	}

	b := &CollisionBridge{
		system:   &common.CollisionSystem{Solids: 0},
		entries:  make(map[uint64]*bridgeEntry),
		byEntity: make(map[uint64]*bridgeEntry),
		overlaps: make(physics.PairSet),
	}
	b.listener = engo.Mailbox.Listen(common.CollisionMessage{}.Type(), b.receive)
	return b
}

// Close stops listening on engo.Mailbox and forgets every body. A closed
// bridge reports no contacts.
func (b *CollisionBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	if engo.Mailbox != nil {
		engo.Mailbox.StopListen(common.CollisionMessage{}.Type(), b.listener)
	}
	for id, e := range b.entries {
		b.system.Remove(e.BasicEntity)
		delete(b.entries, id)
	}
	clear(b.byEntity)
	b.pending = nil
	b.overlaps = make(physics.PairSet)
}

// Sync implements physics.Collaborator.
func (b *CollisionBridge) Sync(bodies []physics.Body) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	for _, e := range b.entries {
		e.seen = false
	}

	for _, body := range bodies {
		e, ok := b.entries[body.ID]
		if !ok {
			e = &bridgeEntry{BasicEntity: ecs.NewBasic()}
			b.entries[body.ID] = e
			b.byEntity[e.ID()] = e
			b.system.Add(&e.BasicEntity, &e.CollisionComponent, &e.SpaceComponent)
		}
		e.seen = true
		e.body = body

		group := common.CollisionGroup(body.Layers) | bridgeGroup
		e.CollisionComponent.Main = bridgeGroup
		e.CollisionComponent.Group = group

		r := float32(body.Shape.Radius)
		e.SpaceComponent.Position = engo.Point{
			X: float32(body.Shape.Center.X) - r,
			Y: float32(body.Shape.Center.Y) - r,
		}
		e.SpaceComponent.Width = 2 * r
		e.SpaceComponent.Height = 2 * r
	}

	for id, e := range b.entries {
		if !e.seen {
			b.system.Remove(e.BasicEntity)
			delete(b.byEntity, e.ID())
			delete(b.entries, id)
		}
	}
}

// Step implements physics.Collaborator.
func (b *CollisionBridge) Step() []physics.Contact {
	b.mu.Lock()
	b.pending = b.pending[:0]
	b.mu.Unlock()

	// The system dispatches synchronously into receive.
	b.system.Update(0)

	b.mu.Lock()
	defer b.mu.Unlock()

	current := make(physics.PairSet)
	for _, pair := range b.pending {
		ea, okA := b.byEntity[pair[0]]
		eb, okB := b.byEntity[pair[1]]
		if !okA || !okB {
			continue
		}
		if ea.body.Shape.Collides(eb.body.Shape) {
			current.Add(ea.body.Ref(), eb.body.Ref())
		}
	}

	contacts := physics.DiffPairs(b.overlaps, current)
	b.overlaps = current
	return contacts
}

// Len returns the number of synced bodies.
func (b *CollisionBridge) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

func (b *CollisionBridge) receive(msg engo.Message) {
	var m common.CollisionMessage
	switch v := msg.(type) {
	case common.CollisionMessage:
		m = v
	case *common.CollisionMessage:
		m = *v
	default:
		return
	}
	if m.Entity.BasicEntity == nil || m.To.BasicEntity == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	// Other bridges may share the mailbox.
	if _, ok := b.byEntity[m.Entity.ID()]; !ok {
		return
	}
	if _, ok := b.byEntity[m.To.ID()]; !ok {
		return
	}
	b.pending = append(b.pending, [2]uint64{m.Entity.ID(), m.To.ID()})
}
