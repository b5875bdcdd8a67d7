// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Match event types
const (
	MatchStarted        Type = "match_started"
	TurnChanged         Type = "turn_changed"
	CraftMoved          Type = "craft_moved"
	ProjectileFired     Type = "projectile_fired"
	ProjectileDespawned Type = "projectile_despawned"
	CollisionStarted    Type = "collision_started"
	CollisionStopped    Type = "collision_stopped"
	CraftDamaged        Type = "craft_damaged"
	MatchEnded          Type = "match_ended"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is a handle on a registered handler.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.Unsubscribe(id) },
	}
}

// Unsubscribe removes the handler registered under id. Unknown ids are
// ignored.
func (b *Bus) Unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, regs := range b.handlers {
		for i, r := range regs {
			if r.id != id {
				continue
			}
			remaining := append(regs[:i:i], regs[i+1:]...)
			if len(remaining) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = remaining
			}
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// Specific event implementations

// MatchEvent marks the start or end of a round.
type MatchEvent struct {
	BaseEvent
	MatchID string
	Round   int
	Outcome string
}

// NewMatchEvent creates a new match event
func NewMatchEvent(eventType Type, source interface{}, matchID string, round int, outcome string) *MatchEvent {
	return &MatchEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		MatchID: matchID,
		Round:   round,
		Outcome: outcome,
	}
}

// TurnEvent reports which side now holds the turn.
type TurnEvent struct {
	BaseEvent
	Tick uint64
	Side string
}

// NewTurnEvent creates a new turn event
func NewTurnEvent(source interface{}, tick uint64, side string) *TurnEvent {
	return &TurnEvent{
		BaseEvent: BaseEvent{
			EventType: TurnChanged,
			Source:    source,
		},
		Tick: tick,
		Side: side,
	}
}

// CraftEvent contains information about craft movement and damage
type CraftEvent struct {
	BaseEvent
	CraftID uint64
	Side    string
	Heading int
	X, Y    float64
	Health  int
}

// NewCraftEvent creates a new craft event
func NewCraftEvent(eventType Type, source interface{}, craftID uint64, side string, heading int, x, y float64, health int) *CraftEvent {
	return &CraftEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		CraftID: craftID,
		Side:    side,
		Heading: heading,
		X:       x,
		Y:       y,
		Health:  health,
	}
}

// ProjectileEvent contains information about a fired or removed shot
type ProjectileEvent struct {
	BaseEvent
	ProjectileID uint64
	Owner        string
}

// NewProjectileEvent creates a new projectile event
func NewProjectileEvent(eventType Type, source interface{}, projectileID uint64, owner string) *ProjectileEvent {
	return &ProjectileEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ProjectileID: projectileID,
		Owner:        owner,
	}
}

// CollisionEvent contains information about entity collisions
type CollisionEvent struct {
	BaseEvent
	EntityA uint64
	EntityB uint64
	LayersA string
	LayersB string
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(eventType Type, source interface{}, entityA, entityB uint64, layersA, layersB string) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityA: entityA,
		EntityB: entityB,
		LayersA: layersA,
		LayersB: layersB,
	}
}
