// pkg/render/engo/hud.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-broadside/pkg/engine"
	"github.com/opd-ai/go-broadside/pkg/render"
)

// HUDFontURL is the name the HUD font is registered under in engo.Files.
const HUDFontURL = "gomono.ttf"

// LoadHUDFont registers the bundled monospace font and prepares it for
// drawing. It needs an OpenGL context.
func LoadHUDFont(size float64) (*common.Font, error) {
	if err := engo.Files.LoadReaderData(HUDFontURL, bytes.NewReader(gomono.TTF)); err != nil {
		return nil, fmt.Errorf("failed to load HUD font: %w", err)
	}
	font := &common.Font{
		URL:  HUDFontURL,
		FG:   color.White,
		Size: size,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("failed to prepare HUD font: %w", err)
	}
	return font, nil
}

type hudLine struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// HUDSystem draws the status lines in the top-left corner of the screen.
type HUDSystem struct {
	system spriteSystem
	font   *common.Font

	text   []string
	banner string
	lines  []*hudLine

	x, y       float32
	lineHeight float32
	hudColor   color.Color
	endColor   color.Color
}

// NewHUDSystem creates a HUD drawing into system. With a nil font the HUD
// keeps its text but draws nothing.
func NewHUDSystem(system spriteSystem, font *common.Font) *HUDSystem {
	return &HUDSystem{
		system:     system,
		font:       font,
		x:          10,
		y:          10,
		lineHeight: 20,
		hudColor:   color.RGBA{255, 255, 255, 255},
		endColor:   color.RGBA{255, 220, 0, 255},
	}
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
}

// UpdateState replaces the displayed text with the lines for s.
func (hud *HUDSystem) UpdateState(s engine.State) {
	hud.text = render.HUDLines(s)
	hud.banner = render.Banner(s.Outcome)
	if s.Outcome.Terminal() {
		hud.text = append(hud.text, "Press R to play again")
	}
}

// Lines returns the text currently shown.
func (hud *HUDSystem) Lines() []string {
	return hud.text
}

// Update draws the current text.
func (hud *HUDSystem) Update(dt float32) {
	if hud.font == nil {
		return
	}

	for i, text := range hud.text {
		hud.renderText(i, text)
	}
	for len(hud.lines) > len(hud.text) {
		last := hud.lines[len(hud.lines)-1]
		hud.system.Remove(last.BasicEntity)
		hud.lines = hud.lines[:len(hud.lines)-1]
	}
}

// renderText draws text as line i, reusing the line's entity.
func (hud *HUDSystem) renderText(i int, text string) {
	if i == len(hud.lines) {
		line := &hudLine{BasicEntity: ecs.NewBasic()}
		line.RenderComponent.SetShader(common.HUDShader)
		line.RenderComponent.SetZIndex(10)
		line.SpaceComponent.Position = engo.Point{X: hud.x, Y: hud.y + float32(i)*hud.lineHeight}
		hud.lines = append(hud.lines, line)
		hud.system.Add(&line.BasicEntity, &line.RenderComponent, &line.SpaceComponent)
	}

	line := hud.lines[i]
	line.Drawable = common.Text{Font: hud.font, Text: text}
	line.Color = hud.hudColor
	if hud.banner != "" && text == hud.banner {
		line.Color = hud.endColor
	}
	line.SpaceComponent.Width = float32(len(text)) * hud.lineHeight / 2
	line.SpaceComponent.Height = hud.lineHeight
}
