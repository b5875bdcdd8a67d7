package physics

import "math"

// HalfSteps is the number of rotate-then-translate passes per tick.
const HalfSteps = 2

// RotationQuantum is the rotation applied per octant of turn in one half
// step. Two half steps add up to one full octant per tick.
const RotationQuantum = OctantAngle / HalfSteps

const snapEpsilon = 1e-9

// Pose is a body's placement in the arena.
type Pose struct {
	Position Vector2D
	Rotation float64 // radians, counter-clockwise from north
}

// Forward returns the unit vector the pose is facing.
func (p Pose) Forward() Vector2D {
	return FromRotation(p.Rotation)
}

// PoseFor builds a pose at position facing heading h.
func PoseFor(position Vector2D, h Heading) Pose {
	return Pose{Position: position, Rotation: h.Rotation()}
}

// Integrate applies one tick of movement. turn is a signed octant step
// (only its sign is used) and impulse the distance covered per half step.
// Each half step first rotates by the turn quantum and then translates
// along the resulting forward vector, so turning while moving traces a
// curve. The result is clamped into [-extent, +extent].
func Integrate(pose Pose, heading Heading, turn int, impulse float64, extent Vector2D) (Pose, Heading) {
	turn = clampSign(turn)
	heading = Normalize(int(heading) + turn)

	for i := 0; i < HalfSteps; i++ {
		// A clockwise heading step is a negative rotation.
		pose.Rotation -= float64(turn) * RotationQuantum
		pose.Position = pose.Position.Add(FromRotation(pose.Rotation).Scale(impulse))
	}

	pose.Rotation = NormalizeAngle(pose.Rotation)
	if target := heading.Rotation(); math.Abs(NormalizeAngle(pose.Rotation-target)) < snapEpsilon {
		pose.Rotation = target
	}
	pose.Position = ClampToBox(pose.Position, extent)

	return pose, heading
}
