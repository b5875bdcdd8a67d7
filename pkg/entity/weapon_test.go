// pkg/entity/weapon_test.go
package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-broadside/pkg/physics"
)

func TestBroadside_ChargeSaturates(t *testing.T) {
	w := NewBroadside(3, 1000, 5)
	want := []int{1, 2, 3, 3, 3}
	for i, expected := range want {
		w.Charge()
		if w.Readiness != expected {
			t.Errorf("after %d charges Readiness = %d, want %d", i+1, w.Readiness, expected)
		}
	}
	if !w.Ready() {
		t.Error("Ready() = false after saturating")
	}
	if w.TurnsUntilReady() != 0 {
		t.Errorf("TurnsUntilReady() = %d, want 0", w.TurnsUntilReady())
	}
}

func TestBroadside_ChargeRecoversFromNegative(t *testing.T) {
	w := Broadside{Readiness: -4, MaxReadiness: 3}
	w.Charge()
	if w.Readiness != 1 {
		t.Errorf("Readiness = %d, want 1", w.Readiness)
	}
}

func TestNewBroadside_DefaultsMaxReadiness(t *testing.T) {
	if w := NewBroadside(0, 1, 1); w.MaxReadiness != DefaultMaxReadiness {
		t.Errorf("MaxReadiness = %d, want %d", w.MaxReadiness, DefaultMaxReadiness)
	}
}

func TestBroadside_FireNotReady(t *testing.T) {
	for readiness := 0; readiness < 3; readiness++ {
		w := Broadside{Readiness: readiness, MaxReadiness: 3, Speed: 1000}
		if shots := w.Fire(SidePlayer, physics.Pose{}, 0, NewIDSource()); shots != nil {
			t.Errorf("Fire() at readiness %d returned %d projectiles, want none", readiness, len(shots))
		}
		if w.Readiness != readiness {
			t.Errorf("Fire() changed readiness from %d to %d", readiness, w.Readiness)
		}
		if got := w.TurnsUntilReady(); got != 3-readiness {
			t.Errorf("TurnsUntilReady() = %d, want %d", got, 3-readiness)
		}
	}
}

func TestBroadside_FireAlongArcs(t *testing.T) {
	for h := physics.Heading(0); h < physics.Octants; h++ {
		w := Broadside{Readiness: 3, MaxReadiness: 3, Speed: 1000, ProjectileRadius: 5}
		pose := physics.PoseFor(physics.Vector2D{X: 10, Y: 20}, h)
		ids := NewIDSource()

		shots := w.Fire(SideOpponent, pose, h, ids)
		if len(shots) != 2 {
			t.Fatalf("heading %d: Fire() returned %d projectiles, want 2", h, len(shots))
		}
		if w.Readiness != 0 {
			t.Errorf("heading %d: Readiness = %d after firing, want 0", h, w.Readiness)
		}

		left, right := physics.FiringArcs(h)
		if shots[0].Velocity != left.Scale(1000) || shots[1].Velocity != right.Scale(1000) {
			t.Errorf("heading %d: velocities %v %v, want %v %v", h,
				shots[0].Velocity, shots[1].Velocity, left.Scale(1000), right.Scale(1000))
		}
		for _, p := range shots {
			if p.Owner != SideOpponent {
				t.Errorf("Owner = %v, want opponent", p.Owner)
			}
			if p.Pose.Position != pose.Position {
				t.Errorf("spawn = %v, want %v", p.Pose.Position, pose.Position)
			}
			if !p.Active || p.GetCollider().Radius != 5 {
				t.Errorf("projectile not live with radius 5: %+v", p.BaseEntity)
			}
		}
		if shots[0].ID == shots[1].ID {
			t.Error("projectiles share an ID")
		}
	}
}

func TestProjectile_UpdateAndOutside(t *testing.T) {
	p := NewProjectile(1, SidePlayer, physics.Vector2D{}, physics.Vector2D{X: 1000}, 5)
	if math.Abs(p.Pose.Rotation-physics.Heading(2).Rotation()) > 1e-9 {
		t.Errorf("Rotation = %v, want %v", p.Pose.Rotation, physics.Heading(2).Rotation())
	}

	limit := physics.Vector2D{X: 300, Y: 300}
	p.Update(0.1)
	if p.Pose.Position.X != 100 || p.Collider.Center != p.Pose.Position {
		t.Errorf("Position = %v, want (100, 0)", p.Pose.Position)
	}
	if p.Outside(limit) {
		t.Error("projectile at x=100 should be inside")
	}
	for i := 0; i < 3; i++ {
		p.Update(0.1)
	}
	if !p.Outside(limit) {
		t.Errorf("projectile at %v should be outside %v", p.Pose.Position, limit)
	}
}
