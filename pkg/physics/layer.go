package physics

import "strings"

// Layer is a categorical collision tag. The set is closed.
type Layer uint8

const (
	LayerPlayer Layer = iota
	LayerOpponent
	LayerObstacle
	LayerProjectile
	layerCount
)

// AllLayers lists every layer in declaration order.
var AllLayers = [...]Layer{LayerPlayer, LayerOpponent, LayerObstacle, LayerProjectile}

var layerNames = [...]string{"player", "opponent", "obstacle", "projectile"}

func (l Layer) String() string {
	if l < layerCount {
		return layerNames[l]
	}
	return "unknown"
}

// Set returns the single-member set holding l.
func (l Layer) Set() LayerSet {
	return LayerSet(1) << l
}

// LayerSet is a bitmask of layers attached to a body.
type LayerSet uint8

// combatLayers covers every layer the resolver distinguishes.
const combatLayers = LayerSet(1)<<layerCount - 1

// Layers builds a set from the given layers.
func Layers(ls ...Layer) LayerSet {
	var s LayerSet
	for _, l := range ls {
		s |= l.Set()
	}
	return s
}

// Has reports whether l is a member of s.
func (s LayerSet) Has(l Layer) bool {
	return s&l.Set() != 0
}

func (s LayerSet) String() string {
	names := make([]string, 0, len(AllLayers))
	for _, l := range AllLayers {
		if s.Has(l) {
			names = append(names, l.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// IsLayer reports whether set belongs to target and to no other combat
// layer. A body tagged both projectile and player therefore matches
// neither, which keeps projectiles and rocks from being taken for craft.
func IsLayer(set LayerSet, target Layer) bool {
	if !set.Has(target) {
		return false
	}
	return set&combatLayers&^target.Set() == 0
}

// Classify returns the unique combat layer of set, or false if set is
// empty or ambiguous.
func Classify(set LayerSet) (Layer, bool) {
	for _, l := range AllLayers {
		if IsLayer(set, l) {
			return l, true
		}
	}
	return 0, false
}
