// pkg/engine/metrics.go
package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/opd-ai/go-broadside/pkg/engine"

// Metrics counts match activity. The zero value is not usable; build one
// with NewMetrics.
type Metrics struct {
	ticks      metric.Int64Counter
	fired      metric.Int64Counter
	collisions metric.Int64Counter
	damage     metric.Int64Counter
	finished   metric.Int64Counter
}

// NewMetrics creates the counters on meter. A nil meter uses the global
// OTel provider, which is a no-op unless the program installs one.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	m := &Metrics{}
	var err error

	if m.ticks, err = meter.Int64Counter(
		"broadside.ticks",
		metric.WithDescription("Simulation ticks run"),
	); err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}
	if m.fired, err = meter.Int64Counter(
		"broadside.projectiles.fired",
		metric.WithDescription("Projectiles launched"),
	); err != nil {
		return nil, fmt.Errorf("creating fired counter: %w", err)
	}
	if m.collisions, err = meter.Int64Counter(
		"broadside.collisions",
		metric.WithDescription("Collision notifications received"),
	); err != nil {
		return nil, fmt.Errorf("creating collisions counter: %w", err)
	}
	if m.damage, err = meter.Int64Counter(
		"broadside.damage",
		metric.WithDescription("Health removed from crafts"),
	); err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}
	if m.finished, err = meter.Int64Counter(
		"broadside.matches.finished",
		metric.WithDescription("Matches that reached an outcome"),
	); err != nil {
		return nil, fmt.Errorf("creating finished counter: %w", err)
	}

	return m, nil
}

// NopMetrics returns metrics that record nothing.
func NopMetrics() *Metrics {
	m, err := NewMetrics(noop.NewMeterProvider().Meter(instrumentationName))
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Metrics) tick(ctx context.Context) {
	m.ticks.Add(ctx, 1)
}

func (m *Metrics) projectilesFired(ctx context.Context, side string, n int) {
	m.fired.Add(ctx, int64(n), metric.WithAttributes(attribute.String("side", side)))
}

func (m *Metrics) collision(ctx context.Context, kind string) {
	m.collisions.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *Metrics) damaged(ctx context.Context, side, cause string, amount int) {
	m.damage.Add(ctx, int64(amount), metric.WithAttributes(
		attribute.String("side", side),
		attribute.String("cause", cause),
	))
}

func (m *Metrics) matchFinished(ctx context.Context, outcome string) {
	m.finished.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
