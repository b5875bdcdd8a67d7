// pkg/engine/match.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/opd-ai/go-broadside/pkg/config"
	"github.com/opd-ai/go-broadside/pkg/entity"
	"github.com/opd-ai/go-broadside/pkg/event"
	"github.com/opd-ai/go-broadside/pkg/input"
	"github.com/opd-ai/go-broadside/pkg/logging"
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// ErrMatchOver is returned by operations that need a match still in play.
var ErrMatchOver = errors.New("match is over")

// maxCatchUpTicks bounds how many ticks one Advance call may run.
const maxCatchUpTicks = 10

// rockPlacementAttempts bounds the search for a free spot per rock.
const rockPlacementAttempts = 64

// maxFlightSlices bounds how finely one tick of projectile flight is cut.
const maxFlightSlices = 32

// Match is the whole simulation state of one duel. All combat state lives
// here and is only mutated from Tick, Advance and Restart.
type Match struct {
	ID string

	cfg    *config.GameConfig
	extent physics.Vector2D

	timeStep        float64
	impulse         float64
	decisionTicks   int
	despawnLimit    physics.Vector2D
	collisionDamage int
	tieBreak        TieBreak
	policy          ObstaclePolicy

	turn        Arbitrator
	player      *entity.Craft
	opponent    *entity.Craft
	rocks       []*entity.Rock
	projectiles []*entity.Projectile
	ids         *entity.IDSource

	round        int
	tick         uint64
	outcome      Outcome
	accumulator  float64
	opponentWait int

	physics physics.Collaborator
	bus     *event.Bus
	queued  []event.Event
	logger  *logging.Logger
	metrics *Metrics
	ctx     context.Context

	mu sync.RWMutex
}

// Option customizes a Match.
type Option func(*Match)

// WithCollaborator replaces the default quadtree detector.
func WithCollaborator(c physics.Collaborator) Option {
	return func(m *Match) { m.physics = c }
}

// WithEventBus publishes match events on bus.
func WithEventBus(bus *event.Bus) Option {
	return func(m *Match) { m.bus = bus }
}

// WithLogger sets the match logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Match) { m.logger = l }
}

// WithMetrics sets the metric counters.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Match) { m.metrics = metrics }
}

// WithContext sets the context used for logging and metrics. A correlation
// ID equal to the match ID is added when ctx has none.
func WithContext(ctx context.Context) Option {
	return func(m *Match) { m.ctx = ctx }
}

// NewMatch validates cfg and sets up round 1.
func NewMatch(cfg *config.GameConfig, opts ...Option) (*Match, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "creating match")
	}
	tie, err := ParseTieBreak(cfg.Rules.TieBreak)
	if err != nil {
		return nil, logging.WrapError(err, "creating match")
	}
	policy, err := ParsePolicy(cfg.Rules.OpponentObstaclePolicy)
	if err != nil {
		return nil, logging.WrapError(err, "creating match")
	}

	ex, ey := cfg.Extent()
	m := &Match{
		ID:              uuid.NewString(),
		cfg:             cfg,
		extent:          physics.Vector2D{X: ex, Y: ey},
		timeStep:        cfg.Timing.TimeStep,
		impulse:         cfg.Movement.ForwardDistance,
		decisionTicks:   ticksFor(cfg.Timing.DecisionInterval, cfg.Timing.TimeStep),
		collisionDamage: cfg.Rules.CollisionDamage,
		tieBreak:        tie,
		policy:          policy,
		ids:             entity.NewIDSource(),
	}
	m.despawnLimit = physics.Vector2D{
		X: ex + cfg.Weapons.DespawnMargin,
		Y: ey + cfg.Weapons.DespawnMargin,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.physics == nil {
		m.physics = physics.NewDetector(m.extent)
	}
	if m.bus == nil {
		m.bus = event.NewEventBus()
	}
	if m.logger == nil {
		m.logger = logging.NewLogger()
	}
	if m.metrics == nil {
		if m.metrics, err = NewMetrics(nil); err != nil {
			return nil, logging.WrapError(err, "creating match")
		}
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if logging.GetCorrelationID(m.ctx) == "" {
		m.ctx = logging.WithCorrelationID(m.ctx, m.ID)
	}
	m.logger = m.logger.With("match_id", m.ID)

	m.rocks = m.placeRocks()
	m.startRound()
	m.publish(m.takeEvents())

	return m, nil
}

// ticksFor converts an interval into a whole number of ticks, at least one.
func ticksFor(interval, step float64) int {
	n := int(math.Round(interval / step))
	if n < 1 {
		return 1
	}
	return n
}

func craftSpec(c config.CraftConfig) entity.CraftSpec {
	return entity.CraftSpec{
		Position: physics.Vector2D{X: c.X, Y: c.Y},
		Heading:  physics.Heading(c.Heading),
		Radius:   c.Radius,
		Health:   c.Health,
	}
}

func (m *Match) newWeapon() entity.Broadside {
	w := m.cfg.Weapons
	return entity.NewBroadside(w.MaxReadiness, w.ProjectileSpeed, w.ProjectileRadius)
}

// startRound creates fresh crafts and clears the per-round state. Rocks
// are kept.
func (m *Match) startRound() {
	m.round++
	m.tick = 0
	m.outcome = OutcomeNone
	m.accumulator = 0
	m.opponentWait = 0
	m.turn.Reset()
	m.projectiles = nil

	m.player = entity.NewCraft(m.ids.Next(), entity.SidePlayer, craftSpec(m.cfg.Crafts.Player), m.newWeapon())
	m.opponent = entity.NewCraft(m.ids.Next(), entity.SideOpponent, craftSpec(m.cfg.Crafts.Opponent), m.newWeapon())

	m.logger.Info(m.ctx, "round started",
		"round", m.round, "rocks", len(m.rocks),
		"player_health", m.player.Health, "opponent_health", m.opponent.Health)
	m.emit(event.NewMatchEvent(event.MatchStarted, m, m.ID, m.round, OutcomeNone.String()))
}

// placeRocks places the configured rocks, then scatters the generated ones
// away from both spawn points and from each other.
func (m *Match) placeRocks() []*entity.Rock {
	obs := m.cfg.Obstacles
	rocks := make([]*entity.Rock, 0, len(obs.Rocks)+obs.Count)
	for _, rc := range obs.Rocks {
		rocks = append(rocks, entity.NewRock(m.ids.Next(), physics.Vector2D{X: rc.X, Y: rc.Y}, rc.Radius))
	}

	if obs.Count == 0 {
		return rocks
	}

	rng := rand.New(rand.NewPCG(uint64(obs.Seed), 0x62726f6164736964))
	spawns := []physics.Circle{
		{Center: physics.Vector2D{X: m.cfg.Crafts.Player.X, Y: m.cfg.Crafts.Player.Y}, Radius: m.cfg.Crafts.Player.Radius},
		{Center: physics.Vector2D{X: m.cfg.Crafts.Opponent.X, Y: m.cfg.Crafts.Opponent.Y}, Radius: m.cfg.Crafts.Opponent.Radius},
	}

	for i := 0; i < obs.Count; i++ {
		radius := obs.MinRadius + rng.Float64()*(obs.MaxRadius-obs.MinRadius)
		if pos, ok := m.findRockSpot(rng, radius, spawns, rocks); ok {
			rocks = append(rocks, entity.NewRock(m.ids.Next(), pos, radius))
			continue
		}
		m.logger.Warn(m.ctx, "no room for rock", "index", i, "radius", radius)
	}
	return rocks
}

func (m *Match) findRockSpot(rng *rand.Rand, radius float64, spawns []physics.Circle, rocks []*entity.Rock) (physics.Vector2D, bool) {
	clearance := m.cfg.Obstacles.Clearance
	spanX := math.Max(0, m.extent.X-radius)
	spanY := math.Max(0, m.extent.Y-radius)

	for attempt := 0; attempt < rockPlacementAttempts; attempt++ {
		pos := physics.Vector2D{
			X: (rng.Float64()*2 - 1) * spanX,
			Y: (rng.Float64()*2 - 1) * spanY,
		}
		candidate := physics.Circle{Center: pos, Radius: radius + clearance}

		free := true
		for _, s := range spawns {
			if candidate.Collides(s) {
				free = false
				break
			}
		}
		for _, r := range rocks {
			if !free {
				break
			}
			if (physics.Circle{Center: pos, Radius: radius}).Collides(r.GetCollider()) {
				free = false
			}
		}
		if free {
			return pos, true
		}
	}
	return physics.Vector2D{}, false
}

// Tick advances the simulation by one fixed step and returns the outcome.
// The phases run in a fixed order: decision and movement, projectile
// flight, collision detection, collision resolution, outcome check. Once
// the match has an outcome Tick does nothing.
func (m *Match) Tick(src input.Source) Outcome {
	m.mu.Lock()
	outcome := m.tickLocked(src)
	events := m.takeEvents()
	m.mu.Unlock()

	m.publish(events)
	return outcome
}

func (m *Match) tickLocked(src input.Source) Outcome {
	if m.outcome.Terminal() {
		return m.outcome
	}
	m.tick++

	switch m.turn.State {
	case PlayerTurn:
		m.playerStep(src)
	case OpponentTurn:
		m.opponentWait++
		if m.opponentWait >= m.decisionTicks {
			m.opponentWait = 0
			m.opponentStep()
		}
	}

	slices := m.flightSlices()
	for i := 0; i < slices; i++ {
		m.advanceProjectiles(m.timeStep / float64(slices))
		m.resolveContacts(m.detect())
		m.removeInactive()
	}
	m.checkOutcome()

	m.metrics.tick(m.ctx)
	return m.outcome
}

// Advance feeds dt seconds of wall time into the fixed-step accumulator and
// runs the ticks that became due. It returns the number of ticks run.
func (m *Match) Advance(dt float64, src input.Source) int {
	m.mu.Lock()
	ran := m.advanceLocked(dt, src)
	events := m.takeEvents()
	m.mu.Unlock()

	m.publish(events)
	return ran
}

func (m *Match) advanceLocked(dt float64, src input.Source) int {
	if dt <= 0 || m.outcome.Terminal() {
		return 0
	}
	m.accumulator += dt
	if limit := m.timeStep * maxCatchUpTicks; m.accumulator > limit {
		m.accumulator = limit
	}

	// The epsilon keeps 10 steps of 0.1 from leaving a tick behind.
	const eps = 1e-9
	ran := 0
	for m.accumulator+eps >= m.timeStep && !m.outcome.Terminal() {
		m.accumulator -= m.timeStep
		m.tickLocked(src)
		ran++
	}
	if m.outcome.Terminal() || m.accumulator < 0 {
		m.accumulator = 0
	}
	return ran
}

// playerStep polls input once. Holding fire skips movement for the tick.
func (m *Match) playerStep(src input.Source) {
	intent := input.Read(src)
	if intent.Idle() {
		return
	}

	if intent.Fire {
		m.fire(m.player)
		m.complete(entity.SidePlayer, ActionFire)
		return
	}

	m.move(m.player, intent.Turn, intent.Forward)
	m.player.Weapon.Charge()
	m.complete(entity.SidePlayer, ActionMove)
}

// opponentStep runs one pursuit decision. A ready broadside fires before
// the craft moves.
func (m *Match) opponentStep() {
	o := m.opponent
	if o.Stunned {
		o.Stunned = false
		m.logger.Debug(m.ctx, "opponent skips stunned turn", "tick", m.tick)
		m.complete(entity.SideOpponent, ActionPass)
		return
	}

	dec := DecideOpponent(o.Pose, o.Heading, m.player.Pose)
	m.logger.Debug(m.ctx, "opponent decision",
		"tick", m.tick, "heading", int(o.Heading), "target", int(dec.Target), "branch", dec.Branch.String())

	action := ActionMove
	if m.fire(o) {
		action |= ActionFire
	}
	m.move(o, dec.Turn, dec.Forward)
	if action&ActionFire == 0 {
		o.Weapon.Charge()
	}
	m.complete(entity.SideOpponent, action)
}

func (m *Match) move(craft *entity.Craft, turn int, forward bool) {
	craft.Move(turn, forward, m.impulse, m.extent)
	m.emit(event.NewCraftEvent(event.CraftMoved, m, uint64(craft.ID), craft.Side.String(),
		int(craft.Heading), craft.Pose.Position.X, craft.Pose.Position.Y, craft.Health))
}

// fire launches craft's broadside if it is ready.
func (m *Match) fire(craft *entity.Craft) bool {
	shots := craft.Weapon.Fire(craft.Side, craft.Pose, craft.Heading, m.ids)
	if len(shots) == 0 {
		return false
	}
	m.projectiles = append(m.projectiles, shots...)
	for _, p := range shots {
		m.emit(event.NewProjectileEvent(event.ProjectileFired, m, uint64(p.ID), p.Owner.String()))
	}
	m.metrics.projectilesFired(m.ctx, craft.Side.String(), len(shots))
	m.logger.Debug(m.ctx, "broadside fired", "side", craft.Side.String(), "tick", m.tick)
	return true
}

func (m *Match) complete(side entity.Side, action Action) {
	passed, err := m.turn.Complete(side, action)
	if err != nil {
		m.logger.Error(m.ctx, "turn arbitration failed", err, "side", side.String(), "turn", m.turn.State.String())
		return
	}
	if !passed {
		return
	}
	m.opponentWait = 0
	m.logger.Debug(m.ctx, "turn changed", "tick", m.tick, "turn", m.turn.State.String())
	m.emit(event.NewTurnEvent(m, m.tick, m.turn.State.Side().String()))
}

// flightSlices returns how many pieces this tick's projectile flight is cut
// into. Each piece moves a projectile less than the smallest overlap
// distance between a projectile and any body, so a shot cannot step over
// a craft or rock between two detections.
func (m *Match) flightSlices() int {
	var travel float64
	shot := math.Inf(1)
	for _, p := range m.projectiles {
		if !p.Active {
			continue
		}
		travel = max(travel, p.Velocity.Length()*m.timeStep)
		shot = min(shot, p.Collider.Radius)
	}
	if travel == 0 {
		return 1
	}

	smallest := min(shot, m.player.Collider.Radius, m.opponent.Collider.Radius)
	for _, r := range m.rocks {
		smallest = min(smallest, r.Collider.Radius)
	}
	return min(int(travel/(shot+smallest))+1, maxFlightSlices)
}

// advanceProjectiles moves every live projectile by dt seconds and retires
// those that left the arena plus the despawn margin.
func (m *Match) advanceProjectiles(dt float64) {
	for _, p := range m.projectiles {
		if !p.Active {
			continue
		}
		p.Update(dt)
		if p.Outside(m.despawnLimit) {
			m.destroyProjectile(p, "out of bounds")
		}
	}
}

func (m *Match) destroyProjectile(p *entity.Projectile, reason string) {
	if !p.Active {
		return
	}
	p.Active = false
	m.logger.Debug(m.ctx, "projectile removed", "id", uint64(p.ID), "reason", reason)
	m.emit(event.NewProjectileEvent(event.ProjectileDespawned, m, uint64(p.ID), p.Owner.String()))
}

func (m *Match) removeInactive() {
	live := m.projectiles[:0]
	for _, p := range m.projectiles {
		if p.Active {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(m.projectiles); i++ {
		m.projectiles[i] = nil
	}
	m.projectiles = live
}

// detect hands every participating body to the collaborator and returns
// its contacts in a stable order.
func (m *Match) detect() []physics.Contact {
	bodies := make([]physics.Body, 0, 2+len(m.rocks)+len(m.projectiles))
	bodies = append(bodies, entity.BodyOf(m.player), entity.BodyOf(m.opponent))
	for _, r := range m.rocks {
		bodies = append(bodies, entity.BodyOf(r))
	}
	for _, p := range m.projectiles {
		if p.Active {
			bodies = append(bodies, entity.BodyOf(p))
		}
	}

	m.physics.Sync(bodies)
	contacts := m.physics.Step()
	physics.SortContacts(contacts)
	return contacts
}

func (m *Match) checkOutcome() {
	outcome := CheckOutcome(m.player.Health, m.opponent.Health, m.tieBreak)
	if !outcome.Terminal() {
		return
	}
	m.outcome = outcome
	m.metrics.matchFinished(m.ctx, outcome.String())
	m.logger.Info(m.ctx, "match ended",
		"round", m.round, "tick", m.tick, "outcome", outcome.String(),
		"player_health", m.player.Health, "opponent_health", m.opponent.Health)
	m.emit(event.NewMatchEvent(event.MatchEnded, m, m.ID, m.round, outcome.String()))
}

// Restart begins a new round with fresh crafts. The rocks stay where they
// are. Restarting is always explicit; a finished match never respawns by
// itself.
func (m *Match) Restart() {
	m.mu.Lock()
	// Flush the collaborator so old pairs do not report against new IDs.
	m.physics.Sync(nil)
	m.physics.Step()
	m.startRound()
	events := m.takeEvents()
	m.mu.Unlock()

	m.publish(events)
}

// Fire requests an immediate broadside for side outside the normal input
// flow. It obeys the same rules as a held fire key.
func (m *Match) Fire(side entity.Side) (bool, error) {
	m.mu.Lock()
	if m.outcome.Terminal() {
		m.mu.Unlock()
		return false, ErrMatchOver
	}
	if !m.turn.Allows(side) {
		m.mu.Unlock()
		return false, fmt.Errorf("fire %s: %w", side, ErrNotYourTurn)
	}
	fired := m.fire(m.craft(side))
	m.complete(side, ActionFire)
	events := m.takeEvents()
	m.mu.Unlock()

	m.publish(events)
	return fired, nil
}

func (m *Match) craft(side entity.Side) *entity.Craft {
	if side == entity.SideOpponent {
		return m.opponent
	}
	return m.player
}

func (m *Match) liveProjectile(id uint64) *entity.Projectile {
	for _, p := range m.projectiles {
		if uint64(p.ID) == id {
			if p.Active {
				return p
			}
			return nil
		}
	}
	return nil
}

// emit queues e until the match lock is released.
func (m *Match) emit(e event.Event) {
	m.queued = append(m.queued, e)
}

func (m *Match) takeEvents() []event.Event {
	events := m.queued
	m.queued = nil
	return events
}

// publish must be called without holding m.mu, so handlers may call back
// into the match.
func (m *Match) publish(events []event.Event) {
	for _, e := range events {
		m.bus.Publish(e)
	}
}

// Events returns the match's event bus. Handlers run once the operation
// that raised the event has released the match, so they may read it
// through Snapshot, Outcome or Turn.
func (m *Match) Events() *event.Bus {
	return m.bus
}

// Outcome returns the current outcome.
func (m *Match) Outcome() Outcome {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.outcome
}

// Turn returns the side currently allowed to act.
func (m *Match) Turn() TurnState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.turn.State
}

// Extent returns the half size of the arena.
func (m *Match) Extent() physics.Vector2D {
	return m.extent
}

// TimeStep returns the fixed tick length in seconds.
func (m *Match) TimeStep() float64 {
	return m.timeStep
}
