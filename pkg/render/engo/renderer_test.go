package engo

import (
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-broadside/pkg/config"
	"github.com/opd-ai/go-broadside/pkg/engine"
	"github.com/opd-ai/go-broadside/pkg/entity"
	"github.com/opd-ai/go-broadside/pkg/logging"
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// fakeSystem records sprite registrations.
type fakeSystem struct {
	added   map[uint64]*common.SpaceComponent
	removed []uint64
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{added: make(map[uint64]*common.SpaceComponent)}
}

func (f *fakeSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	f.added[basic.ID()] = space
}

func (f *fakeSystem) Remove(basic ecs.BasicEntity) {
	f.removed = append(f.removed, basic.ID())
	delete(f.added, basic.ID())
}

func newTestRenderer() (*EngoRenderer, *fakeSystem) {
	sys := newFakeSystem()
	view := NewView(physics.Vector2D{X: 250, Y: 250}, 500, 500)
	return NewEngoRenderer(sys, view, NewAssetManager()), sys
}

func TestEngoRenderer_DrawsMatch(t *testing.T) {
	m, err := engine.NewMatch(config.DefaultConfig(),
		engine.WithLogger(logging.NewNopLogger()), engine.WithMetrics(engine.NopMetrics()))
	if err != nil {
		t.Fatalf("NewMatch() error = %v", err)
	}
	r, sys := newTestRenderer()

	m.Render(r)
	want := 2 + len(m.Snapshot().Rocks)
	if r.Len() != want || len(sys.added) != want {
		t.Errorf("sprites = %d, registered = %d; want %d", r.Len(), len(sys.added), want)
	}

	// Drawing the same match again reuses every sprite.
	m.Render(r)
	if len(sys.added) != want || len(sys.removed) != 0 {
		t.Errorf("redraw registered %d and removed %d sprites", len(sys.added), len(sys.removed))
	}
}

func TestEngoRenderer_SizesAndRemoves(t *testing.T) {
	r, sys := newTestRenderer()
	craft := entity.NewCraft(1, entity.SidePlayer,
		entity.CraftSpec{Position: physics.Vector2D{X: 100}, Radius: 20, Health: 3}, entity.NewBroadside(3, 1000, 5))
	shot := entity.NewProjectile(2, entity.SideOpponent, physics.Vector2D{}, physics.Vector2D{X: 1}, 5)

	r.Clear()
	r.RenderCraft(craft)
	r.RenderProjectile(shot)
	r.Present()

	space := r.sprites[craft.ID].SpaceComponent
	if space.Width != 40 || space.Height != 40 {
		t.Errorf("craft sprite is %vx%v, want 40x40", space.Width, space.Height)
	}
	if r.sprites[shot.ID].Color != OpponentColor {
		t.Error("shot not tinted with its owner's color")
	}

	r.Clear()
	r.RenderCraft(craft)
	r.Present()

	if r.Len() != 1 || len(sys.removed) != 1 {
		t.Errorf("sprites = %d, removed = %d; want 1, 1", r.Len(), len(sys.removed))
	}
	if _, ok := r.sprites[shot.ID]; ok {
		t.Error("projectile sprite survived a frame it was not drawn in")
	}
}
