package physics

import "testing"

func TestIsLayer(t *testing.T) {
	tests := []struct {
		name     string
		set      LayerSet
		target   Layer
		expected bool
	}{
		{"player_matches_player", Layers(LayerPlayer), LayerPlayer, true},
		{"opponent_matches_opponent", Layers(LayerOpponent), LayerOpponent, true},
		{"rock_is_not_player", Layers(LayerObstacle), LayerPlayer, false},
		{"projectile_is_not_opponent", Layers(LayerProjectile), LayerOpponent, false},
		{"tagged_projectile_is_not_player", Layers(LayerPlayer, LayerProjectile), LayerPlayer, false},
		{"tagged_projectile_is_not_projectile", Layers(LayerPlayer, LayerProjectile), LayerProjectile, false},
		{"empty_set_matches_nothing", 0, LayerObstacle, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLayer(tt.set, tt.target); got != tt.expected {
				t.Errorf("IsLayer(%v, %v) = %v, expected %v", tt.set, tt.target, got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	for _, l := range AllLayers {
		got, ok := Classify(l.Set())
		if !ok || got != l {
			t.Errorf("Classify(%v) = %v, %v; expected %v, true", l.Set(), got, ok, l)
		}
	}
	if _, ok := Classify(Layers(LayerPlayer, LayerObstacle)); ok {
		t.Error("ambiguous set should not classify")
	}
	if _, ok := Classify(0); ok {
		t.Error("empty set should not classify")
	}
}

func TestLayerSet_String(t *testing.T) {
	if got := Layers(LayerPlayer, LayerProjectile).String(); got != "{player,projectile}" {
		t.Errorf("String() = %q", got)
	}
}
