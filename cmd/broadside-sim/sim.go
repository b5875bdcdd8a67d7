package main

import (
	"context"
	"errors"

	"github.com/opd-ai/go-broadside/pkg/config"
	"github.com/opd-ai/go-broadside/pkg/engine"
	"github.com/opd-ai/go-broadside/pkg/invariant"
	"github.com/opd-ai/go-broadside/pkg/logging"
	"github.com/opd-ai/go-broadside/pkg/render"
)

// errViolation is returned when an invariant check fails.
var errViolation = errors.New("invariant violated")

// result describes one finished or abandoned match.
type result struct {
	MatchID    string   `json:"match_id"`
	Seed       int64    `json:"seed"`
	Outcome    string   `json:"outcome"`
	Ticks      int      `json:"ticks"`
	Violations []string `json:"violations,omitempty"`
}

// summary aggregates a batch of matches.
type summary struct {
	Matches    int `json:"matches"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Draws      int `json:"draws"`
	Unfinished int `json:"unfinished"`
	Ticks      int `json:"ticks"`
	Violations int `json:"violations"`
}

func (s *summary) add(r result) {
	s.Matches++
	s.Ticks += r.Ticks
	if len(r.Violations) > 0 {
		s.Violations++
	}
	switch r.Outcome {
	case engine.OutcomeWin.String():
		s.Wins++
	case engine.OutcomeLose.String():
		s.Losses++
	case engine.OutcomeDraw.String():
		s.Draws++
	default:
		s.Unfinished++
	}
}

// simulator runs autopilot matches back to back.
type simulator struct {
	config   *config.GameConfig
	logger   *logging.Logger
	maxTicks int
	check    bool

	// started is called with each new match before its first tick.
	started func(*engine.Match)
}

// run plays one match with the obstacle seed replaced by seed. It stops at
// an outcome, at maxTicks, or at the first invariant violation.
func (s *simulator) run(ctx context.Context, seed int64) (result, error) {
	cfg := *s.config
	cfg.Obstacles.Seed = seed

	m, err := engine.NewMatch(&cfg, engine.WithLogger(s.logger), engine.WithContext(ctx))
	if err != nil {
		return result{}, logging.WrapError(err, "failed to create match with seed %d", seed)
	}
	if s.started != nil {
		s.started(m)
	}

	var checker *invariant.Checker
	if s.check {
		checker = invariant.Standard(m.Snapshot)
	}
	src := engine.NewPursuitSource(m)

	r := result{MatchID: m.ID, Seed: seed}
	for r.Ticks < s.maxTicks && !m.Outcome().Terminal() {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		m.Tick(src)
		r.Ticks++

		if checker == nil {
			continue
		}
		if status := checker.Run(ctx); !status.OK() {
			r.Violations = status.Failures()
			r.Outcome = m.Outcome().String()
			return r, errViolation
		}
	}

	m.Render(render.NewNullRenderer(s.logger))
	r.Outcome = m.Outcome().String()
	return r, nil
}
