// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are overlapping. Touching circles do not
// collide.
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Rect represents a rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether point lies inside r. The minimum edges are
// inclusive and the maximum edges exclusive, so adjacent quadrants never
// both claim a point.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(other.Center.X-other.Width/2 > r.Center.X+r.Width/2 ||
		other.Center.X+other.Width/2 < r.Center.X-r.Width/2 ||
		other.Center.Y-other.Height/2 > r.Center.Y+r.Height/2 ||
		other.Center.Y+other.Height/2 < r.Center.Y-r.Height/2)
}

// QuadTree for spatial partitioning
type QuadTree struct {
	Boundary  Rect
	Capacity  int
	Points    []Vector2D
	Objects   []any
	Divided   bool
	NorthWest *QuadTree
	NorthEast *QuadTree
	SouthWest *QuadTree
	SouthEast *QuadTree
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree(boundary Rect, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		Objects:  make([]any, 0, capacity),
	}
}

// Insert stores object at point. It returns false when point lies outside
// the tree's boundary.
func (qt *QuadTree) Insert(point Vector2D, object any) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if len(qt.Points) < qt.Capacity && !qt.Divided {
		qt.Points = append(qt.Points, point)
		qt.Objects = append(qt.Objects, object)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(point, object) ||
		qt.NorthEast.Insert(point, object) ||
		qt.SouthWest.Insert(point, object) ||
		qt.SouthEast.Insert(point, object)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	nw := Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}
	ne := Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}
	sw := Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}
	se := Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}

	qt.NorthWest = NewQuadTree(nw, qt.Capacity)
	qt.NorthEast = NewQuadTree(ne, qt.Capacity)
	qt.SouthWest = NewQuadTree(sw, qt.Capacity)
	qt.SouthEast = NewQuadTree(se, qt.Capacity)
	qt.Divided = true
}

// Query returns all objects whose point lies inside area.
func (qt *QuadTree) Query(area Rect) []any {
	found := make([]any, 0)

	if !qt.Boundary.Intersects(area) {
		return found
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			found = append(found, qt.Objects[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = append(found, qt.NorthWest.Query(area)...)
	found = append(found, qt.NorthEast.Query(area)...)
	found = append(found, qt.SouthWest.Query(area)...)
	found = append(found, qt.SouthEast.Query(area)...)

	return found
}

// Clear empties the tree while keeping its boundary.
func (qt *QuadTree) Clear() {
	qt.Points = qt.Points[:0]
	qt.Objects = qt.Objects[:0]
	qt.Divided = false
	qt.NorthWest = nil
	qt.NorthEast = nil
	qt.SouthWest = nil
	qt.SouthEast = nil
}
