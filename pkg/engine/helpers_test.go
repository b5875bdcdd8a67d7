// pkg/engine/helpers_test.go
package engine

import (
	"testing"

	"github.com/opd-ai/go-broadside/pkg/config"
	"github.com/opd-ai/go-broadside/pkg/logging"
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// scriptedPhysics replays queued contacts, one batch per Step.
type scriptedPhysics struct {
	queue  [][]physics.Contact
	synced [][]physics.Body
}

func (s *scriptedPhysics) Sync(bodies []physics.Body) {
	s.synced = append(s.synced, append([]physics.Body(nil), bodies...))
}

func (s *scriptedPhysics) Step() []physics.Contact {
	if len(s.queue) == 0 {
		return nil
	}
	batch := s.queue[0]
	s.queue = s.queue[1:]
	return batch
}

func (s *scriptedPhysics) push(contacts ...physics.Contact) {
	s.queue = append(s.queue, contacts)
}

func started(a, b physics.BodyRef) physics.Contact {
	return physics.Contact{Kind: physics.ContactStarted, A: a, B: b}
}

func ref(id uint64, l physics.Layer) physics.BodyRef {
	return physics.BodyRef{ID: id, Layers: l.Set()}
}

// testConfig returns defaults without generated rocks and with the
// opponent deciding on every tick of its turn.
func testConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Obstacles.Count = 0
	cfg.Timing.DecisionInterval = cfg.Timing.TimeStep
	return cfg
}

func newTestMatch(t *testing.T, cfg *config.GameConfig, opts ...Option) *Match {
	t.Helper()
	base := []Option{WithLogger(logging.NewNopLogger()), WithMetrics(NopMetrics())}
	m, err := NewMatch(cfg, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewMatch() error = %v", err)
	}
	return m
}
