// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-broadside/pkg/config"
	"github.com/opd-ai/go-broadside/pkg/engine"
	"github.com/opd-ai/go-broadside/pkg/event"
	"github.com/opd-ai/go-broadside/pkg/logging"
)

// hudFontSize is the HUD text size in points.
const hudFontSize = 18

// BattleScene runs one player-versus-opponent match inside engo.
type BattleScene struct {
	config *config.GameConfig
	bus    *event.Bus
	logger *logging.Logger

	world    *ecs.World
	match    *engine.Match
	bridge   *CollisionBridge
	renderer *EngoRenderer
	view     *View
	input    *InputSystem
	hud      *HUDSystem
	font     *common.Font
}

// NewBattleScene creates a new battle scene. The match publishes on bus,
// which may be nil.
func NewBattleScene(cfg *config.GameConfig, bus *event.Bus, logger *logging.Logger) *BattleScene {
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &BattleScene{config: cfg, bus: bus, logger: logger}
}

// Type returns the scene type (required by Engo)
func (scene *BattleScene) Type() string {
	return "BattleScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *BattleScene) Preload() {
	font, err := LoadHUDFont(hudFontSize)
	if err != nil {
		scene.logger.Error(context.Background(), "HUD disabled", err)
		return
	}
	scene.font = font
}

// Setup is called when the scene starts (required by Engo)
func (scene *BattleScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		panic("BattleScene needs an *ecs.World")
	}
	scene.world = world

	common.SetBackground(SeaColor)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.bridge = NewCollisionBridge()
	match, err := engine.NewMatch(scene.config,
		engine.WithCollaborator(scene.bridge),
		engine.WithEventBus(scene.bus),
		engine.WithLogger(scene.logger))
	if err != nil {
		panic("failed to create match: " + err.Error())
	}
	scene.match = match

	assets := NewAssetManager()
	if err := assets.LoadAssets(); err != nil {
		panic("failed to load assets: " + err.Error())
	}

	scene.view = NewView(match.Extent(), engo.GameWidth(), engo.GameHeight())
	scene.renderer = NewEngoRenderer(renderSystem, scene.view, assets)
	scene.input = NewInputSystem()
	scene.hud = NewHUDSystem(renderSystem, scene.font)

	world.AddSystem(&battleSystem{scene: scene})
	world.AddSystem(scene.hud)
}

// Match returns the running match.
func (scene *BattleScene) Match() *engine.Match {
	return scene.match
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *BattleScene) Exit() {
	if scene.bridge != nil {
		scene.bridge.Close()
	}
	if scene.match != nil {
		scene.logger.Info(context.Background(), "battle scene closed",
			"outcome", scene.match.Outcome().String())
	}
}

// frame advances the match by dt seconds and redraws it.
func (scene *BattleScene) frame(dt float32) {
	scene.input.Sample()

	if scene.match.Outcome().Terminal() && scene.input.RestartRequested() {
		scene.match.Restart()
	}
	scene.match.Advance(float64(dt), scene.input)

	scene.view.Resize(engo.GameWidth(), engo.GameHeight())
	scene.match.Render(scene.renderer)
	scene.hud.UpdateState(scene.match.Snapshot())
}

// battleSystem drives the scene once per engo frame.
type battleSystem struct {
	scene *BattleScene
}

func (s *battleSystem) Update(dt float32) {
	s.scene.frame(dt)
}

func (s *battleSystem) Remove(basic ecs.BasicEntity) {}
