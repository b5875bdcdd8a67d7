// pkg/render/engo/view.go
package engo

import (
	"math"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-broadside/pkg/physics"
)

// View maps arena coordinates, north up, onto screen pixels, y down. At
// zoom 1 the whole arena fits the screen.
type View struct {
	extent        physics.Vector2D
	width, height float32
	center        physics.Vector2D

	zoom    float32
	minZoom float32
	maxZoom float32
}

// NewView creates a view of an arena with the given half extent on a
// width x height screen.
func NewView(extent physics.Vector2D, width, height float32) *View {
	return &View{
		extent:  extent,
		width:   width,
		height:  height,
		zoom:    1.0,
		minZoom: 0.5,
		maxZoom: 4.0,
	}
}

// Resize updates the screen size.
func (v *View) Resize(width, height float32) {
	v.width, v.height = width, height
}

// SetCenter sets the arena point shown at the middle of the screen.
func (v *View) SetCenter(p physics.Vector2D) {
	v.center = p
}

// SetZoom sets the zoom level
func (v *View) SetZoom(zoom float32) {
	v.zoom = v.clampZoom(zoom)
}

// Zoom returns the current zoom level
func (v *View) Zoom() float32 {
	return v.zoom
}

// clampZoom ensures zoom is within valid bounds
func (v *View) clampZoom(zoom float32) float32 {
	if zoom < v.minZoom {
		return v.minZoom
	}
	if zoom > v.maxZoom {
		return v.maxZoom
	}
	return zoom
}

// Scale returns screen pixels per arena unit.
func (v *View) Scale() float32 {
	if v.extent.X <= 0 || v.extent.Y <= 0 {
		return v.zoom
	}
	fit := math.Min(float64(v.width)/(2*v.extent.X), float64(v.height)/(2*v.extent.Y))
	return float32(fit) * v.zoom
}

// WorldToScreen converts arena coordinates to screen coordinates
func (v *View) WorldToScreen(p physics.Vector2D) engo.Point {
	s := v.Scale()
	return engo.Point{
		X: float32(p.X-v.center.X)*s + v.width/2,
		Y: v.height/2 - float32(p.Y-v.center.Y)*s,
	}
}

// ScreenToWorld converts screen coordinates to arena coordinates
func (v *View) ScreenToWorld(p engo.Point) physics.Vector2D {
	s := float64(v.Scale())
	return physics.Vector2D{
		X: float64(p.X-v.width/2)/s + v.center.X,
		Y: float64(v.height/2-p.Y)/s + v.center.Y,
	}
}

// Degrees converts a body rotation, counter-clockwise radians, into the
// clockwise degrees engo draws with.
func Degrees(rotation float64) float32 {
	return float32(-rotation * 180 / math.Pi)
}
