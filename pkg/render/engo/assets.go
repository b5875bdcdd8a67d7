// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-broadside/pkg/entity"
)

// Sprite names.
const (
	SpriteCraft = "craft"
	SpriteRock  = "rock"
	SpriteShot  = "shot"
)

// craftPattern is a hull pointing north.
var craftPattern = [][]int{
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
}

var rockPattern = [][]int{
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
}

var shotPattern = [][]int{
	{0, 1, 1, 0},
	{1, 1, 1, 1},
	{1, 1, 1, 1},
	{0, 1, 1, 0},
}

// Patterns returns the pixel pattern for every sprite.
func Patterns() map[string][][]int {
	return map[string][][]int{
		SpriteCraft: craftPattern,
		SpriteRock:  rockPattern,
		SpriteShot:  shotPattern,
	}
}

// Side colors tint the white sprites.
var (
	PlayerColor   color.Color = color.RGBA{80, 160, 255, 255}
	OpponentColor color.Color = color.RGBA{230, 60, 60, 255}
	RockColor     color.Color = color.RGBA{140, 120, 100, 255}
	SeaColor      color.Color = color.RGBA{10, 30, 70, 255}
)

// SideColor returns the tint used for side's craft and shots.
func SideColor(side entity.Side) color.Color {
	if side == entity.SideOpponent {
		return OpponentColor
	}
	return PlayerColor
}

// AssetManager handles loading and managing game assets
type AssetManager struct {
	sprites map[string]common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: make(map[string]common.Drawable),
	}
}

// LoadAssets uploads every sprite. It needs an OpenGL context.
func (am *AssetManager) LoadAssets() error {
	for name, pattern := range Patterns() {
		am.sprites[name] = common.NewTextureSingle(common.NewImageObject(PatternImage(pattern)))
	}
	return nil
}

// Sprite returns the named sprite, falling back to the shot sprite.
func (am *AssetManager) Sprite(name string) common.Drawable {
	if sprite, exists := am.sprites[name]; exists {
		return sprite
	}
	return am.sprites[SpriteShot]
}

// PatternImage rasterizes a 0/1 pattern into a white-on-transparent image.
func PatternImage(pattern [][]int) *image.NRGBA {
	height := len(pattern)
	width := 0
	for _, row := range pattern {
		if len(row) > width {
			width = len(row)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)

	for y, row := range pattern {
		for x, pixel := range row {
			if pixel == 1 {
				img.Set(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}
