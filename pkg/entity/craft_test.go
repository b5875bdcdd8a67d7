package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-broadside/pkg/physics"
)

var testExtent = physics.Vector2D{X: 250, Y: 250}

func TestNewCraft(t *testing.T) {
	c := NewCraft(5, SideOpponent, CraftSpec{
		Position: physics.Vector2D{X: -100},
		Heading:  12,
		Radius:   20,
		Health:   5,
	}, NewBroadside(3, 1000, 5))

	if c.Heading != 4 {
		t.Errorf("Heading = %v, want 4", c.Heading)
	}
	if c.Health != 5 || c.MaxHealth != 5 {
		t.Errorf("Health = %d/%d, want 5/5", c.Health, c.MaxHealth)
	}
	if c.Pose.Rotation != physics.Heading(4).Rotation() {
		t.Errorf("Rotation = %v, want %v", c.Pose.Rotation, physics.Heading(4).Rotation())
	}
	if !c.Active || !c.Alive() {
		t.Error("new craft should be active and alive")
	}
}

func TestCraft_TakeDamage(t *testing.T) {
	c := NewCraft(1, SidePlayer, CraftSpec{Health: 1}, Broadside{})

	if got := c.TakeDamage(1); got != 0 {
		t.Errorf("TakeDamage(1) = %d, want 0", got)
	}
	if c.Alive() {
		t.Error("craft at zero health should not be alive")
	}
	if got := c.TakeDamage(2); got != -2 {
		t.Errorf("TakeDamage(2) = %d, want -2", got)
	}
	if got := c.TakeDamage(-5); got != -2 {
		t.Errorf("negative damage should be ignored, got %d", got)
	}
}

func TestCraft_Move(t *testing.T) {
	tests := []struct {
		name        string
		turn        int
		forward     bool
		wantHeading physics.Heading
		wantMoved   bool
	}{
		{"idle", 0, false, 0, false},
		{"forward", 0, true, 0, true},
		{"turn_right_moves", 1, false, 1, true},
		{"turn_left_moves", -1, false, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCraft(1, SidePlayer, CraftSpec{Radius: 10, Health: 3}, Broadside{})
			c.Move(tt.turn, tt.forward, 50, testExtent)

			if c.Heading != tt.wantHeading {
				t.Errorf("Heading = %v, want %v", c.Heading, tt.wantHeading)
			}
			moved := c.Pose.Position != (physics.Vector2D{})
			if moved != tt.wantMoved {
				t.Errorf("moved = %v, want %v", moved, tt.wantMoved)
			}
			if c.Collider.Center != c.Pose.Position {
				t.Errorf("collider %v does not follow position %v", c.Collider.Center, c.Pose.Position)
			}
		})
	}
}

func TestCraft_MoveForwardDistance(t *testing.T) {
	c := NewCraft(1, SidePlayer, CraftSpec{Heading: 2, Health: 3}, Broadside{})
	c.Move(0, true, 50, testExtent)

	if math.Abs(c.Pose.Position.X-100) > 1e-9 || math.Abs(c.Pose.Position.Y) > 1e-9 {
		t.Errorf("Position = %v, want (100, 0)", c.Pose.Position)
	}
}
