package physics

import (
	"math"
	"testing"
)

var bigArena = Vector2D{X: 1e6, Y: 1e6}

func TestIntegrate_HoldAndForward(t *testing.T) {
	for h := 0; h < Octants; h++ {
		heading := Heading(h)
		start := PoseFor(Vector2D{X: 10, Y: -5}, heading)

		pose, got := Integrate(start, heading, 0, 50, bigArena)

		if got != heading {
			t.Errorf("heading %d changed to %d", h, got)
		}
		if pose.Rotation != start.Rotation {
			t.Errorf("heading %d: rotation changed from %v to %v", h, start.Rotation, pose.Rotation)
		}
		want := start.Position.Add(Forward(heading).Scale(100))
		if !pose.Position.ApproxEqual(want, 1e-9) {
			t.Errorf("heading %d: position %v, expected %v", h, pose.Position, want)
		}
	}
}

func TestIntegrate_TurnInPlace(t *testing.T) {
	tests := []struct {
		name     string
		start    Heading
		turn     int
		expected Heading
	}{
		{"right_from_north", 0, 1, 1},
		{"left_from_north_wraps", 0, -1, 7},
		{"right_from_northwest_wraps", 7, 1, 0},
		{"oversized_delta_is_one_step", 3, 5, 4},
		{"oversized_negative_delta_is_one_step", 3, -9, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := PoseFor(Vector2D{}, tt.start)
			pose, got := Integrate(start, tt.start, tt.turn, 0, bigArena)
			if got != tt.expected {
				t.Errorf("heading = %d, expected %d", got, tt.expected)
			}
			if pose.Rotation != tt.expected.Rotation() {
				t.Errorf("rotation = %v, expected %v", pose.Rotation, tt.expected.Rotation())
			}
			if pose.Position != (Vector2D{}) {
				t.Errorf("position moved to %v without impulse", pose.Position)
			}
		})
	}
}

func TestIntegrate_TurnWhileMovingCurves(t *testing.T) {
	pose, heading := Integrate(PoseFor(Vector2D{}, 0), 0, 1, 50, bigArena)
	if heading != 1 {
		t.Fatalf("heading = %d, expected 1", heading)
	}

	q := RotationQuantum
	want := Vector2D{
		X: 50 * (math.Sin(q) + math.Sin(2*q)),
		Y: 50 * (math.Cos(q) + math.Cos(2*q)),
	}
	if !pose.Position.ApproxEqual(want, 1e-9) {
		t.Errorf("position = %v, expected %v", pose.Position, want)
	}

	// Translating first and rotating afterwards would end elsewhere.
	straight := Forward(0).Scale(50).Add(Forward(1).Scale(50))
	if pose.Position.ApproxEqual(straight, 1e-3) {
		t.Error("turn and translate were applied as independent passes")
	}
}

func TestIntegrate_FullRevolutionIsExact(t *testing.T) {
	pose := PoseFor(Vector2D{}, 0)
	heading := Heading(0)
	for i := 0; i < Octants; i++ {
		pose, heading = Integrate(pose, heading, 1, 0, bigArena)
	}
	if heading != 0 {
		t.Errorf("heading = %d after full revolution, expected 0", heading)
	}
	if pose.Rotation != 0 {
		t.Errorf("rotation = %v after full revolution, expected 0", pose.Rotation)
	}
}

func TestIntegrate_ClampPinsToBoundary(t *testing.T) {
	extent := Vector2D{X: 250, Y: 250}
	tests := []struct {
		name     string
		start    Vector2D
		heading  Heading
		expected Vector2D
	}{
		{"east_wall", Vector2D{X: 240, Y: 0}, 2, Vector2D{X: 250, Y: 0}},
		{"west_wall", Vector2D{X: -200, Y: 30}, 6, Vector2D{X: -250, Y: 30}},
		{"north_wall", Vector2D{X: 0, Y: 249}, 0, Vector2D{X: 0, Y: 250}},
		{"south_wall", Vector2D{X: 5, Y: -180}, 4, Vector2D{X: 5, Y: -250}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pose, _ := Integrate(PoseFor(tt.start, tt.heading), tt.heading, 0, 50, extent)
			if !pose.Position.ApproxEqual(tt.expected, 1e-9) {
				t.Errorf("position = %v, expected %v", pose.Position, tt.expected)
			}
			if !InBox(pose.Position, extent) {
				t.Errorf("position %v outside arena", pose.Position)
			}
		})
	}
}
