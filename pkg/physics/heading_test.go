package physics

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       int
		expected Heading
	}{
		{0, 0}, {7, 7}, {8, 0}, {9, 1}, {-1, 7}, {-8, 0}, {-9, 7}, {17, 1},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.expected {
			t.Errorf("Normalize(%d) = %d, expected %d", tt.in, got, tt.expected)
		}
	}
}

func TestForward_WrapInvariance(t *testing.T) {
	for h := 0; h < Octants; h++ {
		a := Forward(Heading(h))
		b := Forward(Normalize(h + Octants))
		c := Forward(Heading(h + Octants))
		if a != b || a != c {
			t.Errorf("heading %d: Forward not wrap invariant: %v %v %v", h, a, b, c)
		}
		if math.Abs(a.Length()-1) > 1e-12 {
			t.Errorf("heading %d: Forward length %v, expected 1", h, a.Length())
		}
	}
}

func TestForward_CompassPoints(t *testing.T) {
	tests := []struct {
		name     string
		h        Heading
		expected Vector2D
	}{
		{"north", 0, Vector2D{X: 0, Y: 1}},
		{"east", 2, Vector2D{X: 1, Y: 0}},
		{"south", 4, Vector2D{X: 0, Y: -1}},
		{"west", 6, Vector2D{X: -1, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Forward(tt.h); got != tt.expected {
				t.Errorf("Forward(%d) = %v, expected %v", tt.h, got, tt.expected)
			}
		})
	}
}

func TestFiringArcs_TwoOctantsOffBow(t *testing.T) {
	for h := 0; h < Octants; h++ {
		left, right := FiringArcs(Heading(h))
		if left != Forward(Normalize(h-2)) {
			t.Errorf("heading %d: left arc %v, expected Forward(%d)", h, left, Normalize(h-2))
		}
		if right != Forward(Normalize(h+2)) {
			t.Errorf("heading %d: right arc %v, expected Forward(%d)", h, right, Normalize(h+2))
		}
		if dot := left.Dot(Forward(Heading(h))); math.Abs(dot) > 1e-12 {
			t.Errorf("heading %d: left arc not perpendicular to bow (dot %v)", h, dot)
		}
	}
}

func TestFiringArcs_RotationSymmetry(t *testing.T) {
	for h := 0; h < Octants; h++ {
		left, right := FiringArcs(Heading(h))
		nextLeft, nextRight := FiringArcs(Normalize(h + 1))

		// Rotating the heading one octant clockwise rotates both arcs by
		// the same 45 degrees.
		if got := left.Rotate(-OctantAngle); !got.ApproxEqual(nextLeft, 1e-12) {
			t.Errorf("heading %d: rotated left %v, expected %v", h, got, nextLeft)
		}
		if got := right.Rotate(-OctantAngle); !got.ApproxEqual(nextRight, 1e-12) {
			t.Errorf("heading %d: rotated right %v, expected %v", h, got, nextRight)
		}
	}
}

func TestHeading_RotationMatchesForward(t *testing.T) {
	for h := 0; h < Octants; h++ {
		heading := Heading(h)
		if got := FromRotation(heading.Rotation()); !got.ApproxEqual(Forward(heading), 1e-12) {
			t.Errorf("heading %d: FromRotation(Rotation()) = %v, expected %v", h, got, Forward(heading))
		}
	}
}

func TestOctantOf_Table(t *testing.T) {
	tests := []struct {
		dx, dy   int
		expected Heading
	}{
		{0, 1, 0}, {1, 1, 1}, {1, 0, 2}, {1, -1, 3},
		{0, -1, 4}, {-1, -1, 5}, {-1, 0, 6}, {-1, 1, 7},
		{0, 0, 0},
		{25, -3, 3},
	}
	for _, tt := range tests {
		if got := OctantOf(tt.dx, tt.dy); got != tt.expected {
			t.Errorf("OctantOf(%d, %d) = %d, expected %d", tt.dx, tt.dy, got, tt.expected)
		}
	}
}

func TestOctantBetween(t *testing.T) {
	from := Vector2D{X: -100, Y: 0}
	if got := OctantBetween(from, Vector2D{X: 100, Y: 0}); got != 2 {
		t.Errorf("target due east: got %d, expected 2", got)
	}
	if got := OctantBetween(from, Vector2D{X: -150, Y: -10}); got != 5 {
		t.Errorf("target south-west: got %d, expected 5", got)
	}
	if got := OctantBetween(from, from); got != 0 {
		t.Errorf("same point: got %d, expected 0", got)
	}
}
