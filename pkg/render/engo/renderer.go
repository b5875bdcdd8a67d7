// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-broadside/pkg/entity"
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// spriteSystem is the part of common.RenderSystem the renderer uses.
type spriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// sprite is one drawn entity.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	seen bool
}

// EngoRenderer implements entity.Renderer using the Engo game engine.
// Sprites are created on first sight and removed on the first frame an
// entity is no longer drawn.
type EngoRenderer struct {
	system  spriteSystem
	view    *View
	assets  *AssetManager
	sprites map[entity.ID]*sprite
}

// NewEngoRenderer creates a new Engo-based renderer
func NewEngoRenderer(system spriteSystem, view *View, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		system:  system,
		view:    view,
		assets:  assets,
		sprites: make(map[entity.ID]*sprite),
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Present implements entity.Renderer. It drops sprites that were not drawn
// since the last Clear.
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if !s.seen {
			r.system.Remove(s.BasicEntity)
			delete(r.sprites, id)
		}
	}
}

// RenderCraft implements entity.Renderer
func (r *EngoRenderer) RenderCraft(craft *entity.Craft) {
	r.draw(craft.ID, SpriteCraft, SideColor(craft.Side), craft.GetCollider(), craft.Pose.Rotation, 2)
}

// RenderRock implements entity.Renderer
func (r *EngoRenderer) RenderRock(rock *entity.Rock) {
	r.draw(rock.ID, SpriteRock, RockColor, rock.GetCollider(), 0, 0)
}

// RenderProjectile implements entity.Renderer
func (r *EngoRenderer) RenderProjectile(projectile *entity.Projectile) {
	r.draw(projectile.ID, SpriteShot, SideColor(projectile.Owner), projectile.GetCollider(), projectile.Pose.Rotation, 3)
}

// Len returns the number of live sprites.
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

func (r *EngoRenderer) draw(id entity.ID, name string, tint color.Color, shape physics.Circle, rotation float64, z float32) {
	s, ok := r.sprites[id]
	if !ok {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{
			Drawable: r.assets.Sprite(name),
			Color:    tint,
		}
		s.RenderComponent.SetZIndex(z)
		r.sprites[id] = s
		r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	s.seen = true

	size := float32(2*shape.Radius) * r.view.Scale()
	if d := s.Drawable; d != nil && d.Width() > 0 && d.Height() > 0 {
		s.Scale = engo.Point{X: size / d.Width(), Y: size / d.Height()}
	}

	s.Width, s.Height = size, size
	s.Rotation = Degrees(rotation)
	s.SetCenter(r.view.WorldToScreen(shape.Center))
}
