// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components.
// +Y is north, +X is east.
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{
		X: v.X / length,
		Y: v.Y / length,
	}
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Rotate rotates the vector counter-clockwise by angle (in radians)
func (v Vector2D) Rotate(angle float64) Vector2D {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vector2D) ApproxEqual(other Vector2D, eps float64) bool {
	return math.Abs(v.X-other.X) <= eps && math.Abs(v.Y-other.Y) <= eps
}

// Sign returns the per-axis sign of the vector as -1, 0 or 1.
func (v Vector2D) Sign() (int, int) {
	return sign(v.X), sign(v.Y)
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

// FromRotation returns the unit forward vector of a body rotated by
// rotation radians counter-clockwise from north.
func FromRotation(rotation float64) Vector2D {
	return Vector2D{
		X: -math.Sin(rotation),
		Y: math.Cos(rotation),
	}
}

// ClampToBox pins v into the symmetric box [-extent, +extent] on both axes.
// Coordinates outside the box land exactly on the boundary.
func ClampToBox(v, extent Vector2D) Vector2D {
	return Vector2D{
		X: math.Max(-extent.X, math.Min(extent.X, v.X)),
		Y: math.Max(-extent.Y, math.Min(extent.Y, v.Y)),
	}
}

// InBox reports whether v lies inside [-extent, +extent] on both axes.
func InBox(v, extent Vector2D) bool {
	return v.X >= -extent.X && v.X <= extent.X && v.Y >= -extent.Y && v.Y <= extent.Y
}

// VelocityRotation returns the rotation whose forward vector points along
// v. A zero vector faces north.
func VelocityRotation(v Vector2D) float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return math.Atan2(-v.X, v.Y)
}
