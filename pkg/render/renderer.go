// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-broadside/pkg/entity"
	"github.com/opd-ai/go-broadside/pkg/logging"
)

// NullRenderer is an entity.Renderer that only logs what it is asked to
// draw. The headless simulator uses it.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a NullRenderer. A nil logger logs at the level
// set in the environment.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{logger: logger}
}

// Frames returns how many frames have been presented.
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
}

// RenderCraft implements entity.Renderer.
func (d *NullRenderer) RenderCraft(craft *entity.Craft) {
	ctx := context.Background()
	if craft == nil {
		d.logger.Debug(ctx, "RenderCraft called with nil craft")
		return
	}
	d.logger.Debug(ctx, "RenderCraft called",
		"craft_id", uint64(craft.ID),
		"side", craft.Side.String(),
		"heading", int(craft.Heading),
		"health", craft.Health,
	)
}

// RenderRock implements entity.Renderer.
func (d *NullRenderer) RenderRock(rock *entity.Rock) {
	ctx := context.Background()
	if rock == nil {
		d.logger.Debug(ctx, "RenderRock called with nil rock")
		return
	}
	d.logger.Debug(ctx, "RenderRock called",
		"rock_id", uint64(rock.ID),
		"radius", rock.Radius(),
	)
}

// RenderProjectile implements entity.Renderer.
func (d *NullRenderer) RenderProjectile(projectile *entity.Projectile) {
	ctx := context.Background()
	if projectile == nil {
		d.logger.Debug(ctx, "RenderProjectile called with nil projectile")
		return
	}
	d.logger.Debug(ctx, "RenderProjectile called",
		"projectile_id", uint64(projectile.ID),
		"owner", projectile.Owner.String(),
	)
}
