package physics

import "math"

// Octants is the number of discrete headings.
const Octants = 8

// OctantAngle is the angle between two adjacent headings, in radians.
const OctantAngle = math.Pi / 4

// Heading is one of eight compass octants. 0 is north and values increase
// clockwise, so 2 is east, 4 south and 6 west.
type Heading int

const diag = math.Sqrt2 / 2

// forwardTable holds exact unit vectors so that equal headings always
// produce identical vectors.
var forwardTable = [Octants]Vector2D{
	{X: 0, Y: 1},
	{X: diag, Y: diag},
	{X: 1, Y: 0},
	{X: diag, Y: -diag},
	{X: 0, Y: -1},
	{X: -diag, Y: -diag},
	{X: -1, Y: 0},
	{X: -diag, Y: diag},
}

// Normalize folds any integer into [0,8).
func Normalize(h int) Heading {
	h %= Octants
	if h < 0 {
		h += Octants
	}
	return Heading(h)
}

// Turn returns the heading delta octants clockwise from h.
func (h Heading) Turn(delta int) Heading {
	return Normalize(int(h) + delta)
}

// Valid reports whether h is already in [0,8).
func (h Heading) Valid() bool {
	return h >= 0 && h < Octants
}

// Rotation returns the body rotation matching h: radians counter-clockwise
// from north, in (-Pi, Pi].
func (h Heading) Rotation() float64 {
	return NormalizeAngle(-float64(Normalize(int(h))) * OctantAngle)
}

// Forward returns the unit direction vector for heading h.
func Forward(h Heading) Vector2D {
	return forwardTable[Normalize(int(h))]
}

// FiringArcs returns the broadside directions for heading h. Both arcs are
// fixed at two octants off the bow: left is h-2 and right is h+2.
func FiringArcs(h Heading) (left, right Vector2D) {
	return Forward(h.Turn(-2)), Forward(h.Turn(2))
}

// octantTable maps a per-axis sign pair (dx, dy) onto a heading.
var octantTable = map[[2]int]Heading{
	{0, 1}:   0,
	{1, 1}:   1,
	{1, 0}:   2,
	{1, -1}:  3,
	{0, -1}:  4,
	{-1, -1}: 5,
	{-1, 0}:  6,
	{-1, 1}:  7,
}

// OctantOf maps the sign of a displacement onto a heading. Inputs are
// reduced to their signs first; a zero displacement maps to 0.
func OctantOf(dx, dy int) Heading {
	if h, ok := octantTable[[2]int{clampSign(dx), clampSign(dy)}]; ok {
		return h
	}
	return 0
}

// OctantBetween returns the octant in which to lies as seen from from.
func OctantBetween(from, to Vector2D) Heading {
	dx, dy := to.Sub(from).Sign()
	return OctantOf(dx, dy)
}

func clampSign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// NormalizeAngle folds an angle into (-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
