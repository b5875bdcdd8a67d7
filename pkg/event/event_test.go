// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"match started", MatchStarted, "match"},
		{"craft damaged", CraftDamaged, 123},
		{"empty source", MatchEnded, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{EventType: tt.eventType, Source: tt.source}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}
			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBusSubscribe_MultipleHandlers_UniqueIDs(t *testing.T) {
	bus := NewEventBus()
	noop := func(Event) {}

	sub1 := bus.Subscribe(TurnChanged, noop)
	sub2 := bus.Subscribe(TurnChanged, noop)
	sub3 := bus.Subscribe(CraftMoved, noop)

	if sub1.ID == 0 || sub1.ID == sub2.ID || sub2.ID == sub3.ID {
		t.Errorf("subscription IDs not unique and non-zero: %d %d %d", sub1.ID, sub2.ID, sub3.ID)
	}
	if sub3.Type != CraftMoved {
		t.Errorf("Type = %v, want %v", sub3.Type, CraftMoved)
	}

	bus.mu.RLock()
	defer bus.mu.RUnlock()
	if len(bus.handlers[TurnChanged]) != 2 {
		t.Errorf("expected 2 handlers for TurnChanged, got %d", len(bus.handlers[TurnChanged]))
	}
}

func TestBusPublish_CallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe(ProjectileFired, func(Event) { order = append(order, 1) })
	bus.Subscribe(ProjectileFired, func(Event) { order = append(order, 2) })
	bus.Subscribe(CollisionStarted, func(Event) { order = append(order, 3) })

	bus.Publish(NewProjectileEvent(ProjectileFired, "test", 7, "player"))

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("handler order = %v, want [1 2]", order)
	}
}

func TestBusPublish_NoSubscribers_NoError(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(&BaseEvent{EventType: MatchStarted})
}

func TestBusUnsubscribe_ByID(t *testing.T) {
	bus := NewEventBus()
	called := map[string]bool{}

	sub1 := bus.Subscribe(CraftDamaged, func(Event) { called["first"] = true })
	bus.Subscribe(CraftDamaged, func(Event) { called["second"] = true })
	bus.Subscribe(MatchEnded, func(Event) { called["ended"] = true })

	bus.Unsubscribe(sub1.ID)
	bus.Unsubscribe(9999)

	bus.Publish(&BaseEvent{EventType: CraftDamaged})
	bus.Publish(&BaseEvent{EventType: MatchEnded})

	if called["first"] {
		t.Error("first handler should not be called after Unsubscribe")
	}
	if !called["second"] || !called["ended"] {
		t.Errorf("remaining handlers not called: %v", called)
	}
}

func TestSubscriptionCancel_RemovesHandler(t *testing.T) {
	bus := NewEventBus()
	handlerCalled := false

	sub := bus.Subscribe(CollisionStopped, func(Event) { handlerCalled = true })
	sub.Cancel()
	sub.Cancel()

	bus.mu.RLock()
	remaining := len(bus.handlers[CollisionStopped])
	bus.mu.RUnlock()
	if remaining != 0 {
		t.Errorf("expected 0 handlers after cancel, got %d", remaining)
	}

	bus.Publish(&BaseEvent{EventType: CollisionStopped})
	if handlerCalled {
		t.Error("handler should not be called after cancellation")
	}
}

func TestBus_ConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0

	handler := func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	}

	const subscribers = 10
	wg.Add(subscribers)
	for i := 0; i < subscribers; i++ {
		go func() {
			defer wg.Done()
			bus.Subscribe(TurnChanged, handler)
		}()
	}
	wg.Wait()

	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			bus.Publish(NewTurnEvent("test", 1, "player"))
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != subscribers*3 {
		t.Errorf("expected %d handler calls, got %d", subscribers*3, count)
	}
}

func TestEventConstructors(t *testing.T) {
	m := NewMatchEvent(MatchEnded, "engine", "abc", 2, "win")
	if m.GetType() != MatchEnded || m.MatchID != "abc" || m.Round != 2 || m.Outcome != "win" {
		t.Errorf("NewMatchEvent() = %+v", m)
	}

	c := NewCraftEvent(CraftDamaged, "engine", 1, "opponent", 4, -100, 0, 4)
	if c.GetType() != CraftDamaged || c.CraftID != 1 || c.Side != "opponent" || c.Heading != 4 || c.X != -100 || c.Health != 4 {
		t.Errorf("NewCraftEvent() = %+v", c)
	}

	col := NewCollisionEvent(CollisionStarted, "physics", 3, 9, "{player}", "{obstacle}")
	if col.GetType() != CollisionStarted || col.EntityA != 3 || col.EntityB != 9 || col.LayersB != "{obstacle}" {
		t.Errorf("NewCollisionEvent() = %+v", col)
	}

	tr := NewTurnEvent("engine", 12, "opponent")
	if tr.GetType() != TurnChanged || tr.Tick != 12 || tr.Side != "opponent" {
		t.Errorf("NewTurnEvent() = %+v", tr)
	}
}
