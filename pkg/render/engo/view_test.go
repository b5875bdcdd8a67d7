package engo

import (
	"math"
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-broadside/pkg/physics"
)

func TestView_Scale(t *testing.T) {
	tests := []struct {
		name   string
		extent physics.Vector2D
		w, h   float32
		zoom   float32
		want   float32
	}{
		{"square fit", physics.Vector2D{X: 250, Y: 250}, 800, 800, 1, 1.6},
		{"height limits", physics.Vector2D{X: 250, Y: 250}, 1000, 500, 1, 1},
		{"zoomed", physics.Vector2D{X: 250, Y: 250}, 500, 500, 2, 2},
		{"zoom clamped", physics.Vector2D{X: 250, Y: 250}, 500, 500, 10, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(tt.extent, tt.w, tt.h)
			v.SetZoom(tt.zoom)
			if got := v.Scale(); math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("Scale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestView_WorldToScreen(t *testing.T) {
	v := NewView(physics.Vector2D{X: 250, Y: 250}, 500, 500)

	tests := []struct {
		name  string
		world physics.Vector2D
		want  engo.Point
	}{
		{"origin", physics.Vector2D{}, engo.Point{X: 250, Y: 250}},
		{"north is up", physics.Vector2D{Y: 100}, engo.Point{X: 250, Y: 150}},
		{"east is right", physics.Vector2D{X: 100}, engo.Point{X: 350, Y: 250}},
		{"corner", physics.Vector2D{X: -250, Y: 250}, engo.Point{X: 0, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.WorldToScreen(tt.world)
			if got != tt.want {
				t.Errorf("WorldToScreen(%v) = %v, want %v", tt.world, got, tt.want)
			}
			back := v.ScreenToWorld(got)
			if !back.ApproxEqual(tt.world, 1e-4) {
				t.Errorf("ScreenToWorld(%v) = %v, want %v", got, back, tt.world)
			}
		})
	}
}

func TestView_Center(t *testing.T) {
	v := NewView(physics.Vector2D{X: 250, Y: 250}, 500, 500)
	v.SetCenter(physics.Vector2D{X: 100, Y: 100})
	if got := v.WorldToScreen(physics.Vector2D{X: 100, Y: 100}); got != (engo.Point{X: 250, Y: 250}) {
		t.Errorf("centered point drawn at %v", got)
	}
}

func TestDegrees(t *testing.T) {
	tests := []struct {
		heading physics.Heading
		want    float32
	}{
		{0, 0},
		{2, 90},
		{4, -180},
		{6, -90},
	}
	for _, tt := range tests {
		if got := Degrees(tt.heading.Rotation()); math.Abs(float64(got-tt.want)) > 1e-4 {
			t.Errorf("Degrees(heading %d) = %v, want %v", tt.heading, got, tt.want)
		}
	}
}
