// Package invariant checks a running match against the rules the engine
// promises to keep. The simulator runs the checks after every tick.
package invariant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/opd-ai/go-broadside/pkg/engine"
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// Check is a single invariant.
type Check interface {
	// Name returns the unique name of this check
	Name() string
	// Check inspects the match and returns an error if the invariant is broken
	Check(ctx context.Context) error
}

// Status is the aggregated result of a run.
type Status struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// OK reports whether every check passed.
func (s Status) OK() bool {
	return s.Status == StatusOK
}

// Failures returns the failing checks' messages, sorted by check name.
func (s Status) Failures() []string {
	names := make([]string, 0, len(s.Checks))
	for name, r := range s.Checks {
		if r.Status != StatusOK {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, name+": "+s.Checks[name].Message)
	}
	return out
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	StatusOK       = "ok"
	StatusViolated = "violated"
)

// Checker manages and runs checks.
type Checker struct {
	checks map[string]Check
	mu     sync.RWMutex
}

// NewChecker creates an empty checker.
func NewChecker() *Checker {
	return &Checker{
		checks: make(map[string]Check),
	}
}

// AddCheck registers check, replacing any check with the same name.
func (c *Checker) AddCheck(check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[check.Name()] = check
}

// RemoveCheck removes a check by name.
func (c *Checker) RemoveCheck(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.checks, name)
}

// Run executes all registered checks.
func (c *Checker) Run(ctx context.Context) Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := Status{
		Status: StatusOK,
		Checks: make(map[string]CheckResult, len(c.checks)),
	}

	for name, check := range c.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = StatusViolated
			status.Checks[name] = CheckResult{
				Status:  StatusViolated,
				Message: err.Error(),
			}
			continue
		}
		status.Checks[name] = CheckResult{Status: StatusOK}
	}

	return status
}

// ServeHTTP runs every check and writes the status as JSON. A violated
// invariant answers 503 Service Unavailable.
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := c.Run(ctx)

	w.Header().Set("Content-Type", "application/json")
	if status.OK() {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}

// StateFunc supplies the state a check looks at.
type StateFunc func() engine.State

// Standard registers the stock checks against state.
func Standard(state StateFunc) *Checker {
	c := NewChecker()
	c.AddCheck(NewHeadingCheck(state))
	c.AddCheck(NewReadinessCheck(state))
	c.AddCheck(NewTurnCheck(state))
	c.AddCheck(NewArenaCheck(state))
	c.AddCheck(NewHealthCheck(state))
	return c
}

func crafts(s engine.State) []engine.CraftState {
	return []engine.CraftState{s.Player, s.Opponent}
}

// HeadingCheck verifies both headings stay in [0,8).
type HeadingCheck struct {
	state StateFunc
}

// NewHeadingCheck creates a heading range check.
func NewHeadingCheck(state StateFunc) *HeadingCheck {
	return &HeadingCheck{state: state}
}

// Name returns the name of this check.
func (h *HeadingCheck) Name() string {
	return "heading"
}

// Check verifies every heading is a valid octant.
func (h *HeadingCheck) Check(ctx context.Context) error {
	for _, c := range crafts(h.state()) {
		if !c.Heading.Valid() {
			return fmt.Errorf("%s heading %d outside [0,%d)", c.Side, c.Heading, physics.Octants)
		}
	}
	return nil
}

// ReadinessCheck verifies 0 <= readiness <= max.
type ReadinessCheck struct {
	state StateFunc
}

// NewReadinessCheck creates a readiness range check.
func NewReadinessCheck(state StateFunc) *ReadinessCheck {
	return &ReadinessCheck{state: state}
}

// Name returns the name of this check.
func (r *ReadinessCheck) Name() string {
	return "readiness"
}

// Check verifies both broadsides are within range.
func (r *ReadinessCheck) Check(ctx context.Context) error {
	for _, c := range crafts(r.state()) {
		if c.Readiness < 0 || c.Readiness > c.MaxReadiness {
			return fmt.Errorf("%s readiness %d outside [0,%d]", c.Side, c.Readiness, c.MaxReadiness)
		}
	}
	return nil
}

// TurnCheck verifies the turn names one of the two sides.
type TurnCheck struct {
	state StateFunc
}

// NewTurnCheck creates a turn state check.
func NewTurnCheck(state StateFunc) *TurnCheck {
	return &TurnCheck{state: state}
}

// Name returns the name of this check.
func (t *TurnCheck) Name() string {
	return "turn"
}

// Check verifies the turn state.
func (t *TurnCheck) Check(ctx context.Context) error {
	switch turn := t.state().Turn; turn {
	case engine.PlayerTurn, engine.OpponentTurn:
		return nil
	default:
		return fmt.Errorf("unknown turn state %d", int(turn))
	}
}

// ArenaCheck verifies both crafts are inside the arena.
type ArenaCheck struct {
	state StateFunc
}

// NewArenaCheck creates an arena bounds check.
func NewArenaCheck(state StateFunc) *ArenaCheck {
	return &ArenaCheck{state: state}
}

// Name returns the name of this check.
func (a *ArenaCheck) Name() string {
	return "arena"
}

// Check verifies craft positions.
func (a *ArenaCheck) Check(ctx context.Context) error {
	s := a.state()
	for _, c := range crafts(s) {
		if !physics.InBox(c.Position, s.Extent) {
			return fmt.Errorf("%s at (%.1f, %.1f) outside arena", c.Side, c.Position.X, c.Position.Y)
		}
	}
	return nil
}

// HealthCheck verifies that health never rises within a round.
type HealthCheck struct {
	state StateFunc

	mu       sync.Mutex
	matchID  string
	round    int
	player   int
	opponent int
}

// NewHealthCheck creates a health monotonicity check.
func NewHealthCheck(state StateFunc) *HealthCheck {
	return &HealthCheck{state: state}
}

// Name returns the name of this check.
func (h *HealthCheck) Name() string {
	return "health"
}

// Check compares health against the previous call in the same round of
// the same match.
func (h *HealthCheck) Check(ctx context.Context) error {
	s := h.state()

	h.mu.Lock()
	defer h.mu.Unlock()

	if s.MatchID != h.matchID || s.Round != h.round {
		h.matchID, h.round = s.MatchID, s.Round
		h.player, h.opponent = s.Player.Health, s.Opponent.Health
		return nil
	}

	var err error
	switch {
	case s.Player.Health > h.player:
		err = fmt.Errorf("player health rose from %d to %d", h.player, s.Player.Health)
	case s.Opponent.Health > h.opponent:
		err = fmt.Errorf("opponent health rose from %d to %d", h.opponent, s.Opponent.Health)
	}
	h.player, h.opponent = s.Player.Health, s.Opponent.Health
	return err
}
