// pkg/engine/opponent.go
package engine

import (
	"github.com/opd-ai/go-broadside/pkg/input"
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// Branch records which pursuit rule produced a decision.
type Branch int

const (
	BranchHold Branch = iota
	BranchWrapLeft
	BranchLeft
	BranchRight
)

func (b Branch) String() string {
	switch b {
	case BranchWrapLeft:
		return "wrap-left"
	case BranchLeft:
		return "left"
	case BranchRight:
		return "right"
	default:
		return "hold"
	}
}

// Decision is one tick of pursuit.
type Decision struct {
	Turn    int
	Forward bool
	Target  physics.Heading
	Branch  Branch
}

// DecideOpponent steers one octant toward the bearing of target. It always
// moves forward. When the bearing is more than five octants away the craft
// turns left, which keeps it from dithering when the target is astern.
func DecideOpponent(self physics.Pose, heading physics.Heading, target physics.Pose) Decision {
	q := physics.OctantBetween(self.Position, target.Position)
	d := physics.Normalize(int(heading))

	dec := Decision{Forward: true, Target: q}
	switch diff := int(q) - int(d); {
	case diff == 0:
		dec.Branch = BranchHold
	case diff > 5 || diff < -5:
		dec.Turn, dec.Branch = -1, BranchWrapLeft
	case d > q:
		dec.Turn, dec.Branch = -1, BranchLeft
	default:
		dec.Turn, dec.Branch = 1, BranchRight
	}
	return dec
}

// PursuitSource is an autopilot for the player craft. It holds the keys
// the pursuit rule would press against the opponent, and fire whenever the
// broadside is ready.
type PursuitSource struct {
	match *Match
}

// NewPursuitSource drives m's player craft.
func NewPursuitSource(m *Match) *PursuitSource {
	return &PursuitSource{match: m}
}

// Held implements input.Source. It is called from inside Tick, so it reads
// the crafts directly rather than through Snapshot.
func (s *PursuitSource) Held(k input.Key) bool {
	p, o := s.match.player, s.match.opponent
	if k == input.KeyFire {
		return p.Weapon.Ready()
	}
	d := DecideOpponent(p.Pose, p.Heading, o.Pose)
	switch k {
	case input.KeyTurnLeft:
		return d.Turn < 0
	case input.KeyTurnRight:
		return d.Turn > 0
	case input.KeyForward:
		return d.Forward
	}
	return false
}
