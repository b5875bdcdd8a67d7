package physics

import "sort"

// Body is what the combat core hands to a physics collaborator for one
// participating entity.
type Body struct {
	ID     uint64
	Layers LayerSet
	Shape  Circle
}

// Ref strips the geometry from b.
func (b Body) Ref() BodyRef {
	return BodyRef{ID: b.ID, Layers: b.Layers}
}

// BodyRef identifies a contact participant and its layers.
type BodyRef struct {
	ID     uint64
	Layers LayerSet
}

// ContactKind tells whether two bodies began or stopped overlapping.
type ContactKind int

const (
	ContactStarted ContactKind = iota
	ContactStopped
)

func (k ContactKind) String() string {
	if k == ContactStopped {
		return "stopped"
	}
	return "started"
}

// Contact is a collision notification. A.ID is always below B.ID.
type Contact struct {
	Kind ContactKind
	A    BodyRef
	B    BodyRef
}

// Collaborator detects overlaps between bodies. It performs no game logic.
type Collaborator interface {
	// Sync replaces the set of bodies with the given ones.
	Sync(bodies []Body)
	// Step reports the contacts that started or stopped since the
	// previous Step.
	Step() []Contact
}

type pairKey struct {
	lo, hi uint64
}

// PairSet holds the overlapping pairs seen in one step.
type PairSet map[pairKey]Contact

// Add records that a and b overlap. Order does not matter and self pairs
// are ignored.
func (s PairSet) Add(a, b BodyRef) {
	if a.ID == b.ID {
		return
	}
	if b.ID < a.ID {
		a, b = b, a
	}
	s[pairKey{a.ID, b.ID}] = Contact{A: a, B: b}
}

// DiffPairs turns two consecutive overlap sets into started and stopped
// contacts, sorted by kind then participant IDs.
func DiffPairs(previous, current PairSet) []Contact {
	contacts := make([]Contact, 0)
	for key, c := range current {
		if _, ok := previous[key]; !ok {
			c.Kind = ContactStarted
			contacts = append(contacts, c)
		}
	}
	for key, c := range previous {
		if _, ok := current[key]; !ok {
			c.Kind = ContactStopped
			contacts = append(contacts, c)
		}
	}
	SortContacts(contacts)
	return contacts
}

// SortContacts orders contacts deterministically.
func SortContacts(contacts []Contact) {
	sort.Slice(contacts, func(i, j int) bool {
		ci, cj := contacts[i], contacts[j]
		if ci.Kind != cj.Kind {
			return ci.Kind < cj.Kind
		}
		if ci.A.ID != cj.A.ID {
			return ci.A.ID < cj.A.ID
		}
		return ci.B.ID < cj.B.ID
	})
}

// Detector is a headless Collaborator. It indexes circles in a quadtree
// and tracks overlapping pairs between steps.
type Detector struct {
	index    *QuadTree
	bodies   []Body
	overlaps PairSet
}

// NewDetector creates a detector for an arena of the given half extent.
// Bodies outside the indexed region are still checked, by brute force.
func NewDetector(extent Vector2D) *Detector {
	return &Detector{
		index: NewQuadTree(Rect{
			Width:  extent.X * 4,
			Height: extent.Y * 4,
		}, 8),
		overlaps: make(PairSet),
	}
}

// Sync implements Collaborator.
func (d *Detector) Sync(bodies []Body) {
	d.bodies = append(d.bodies[:0], bodies...)
}

// Step implements Collaborator.
func (d *Detector) Step() []Contact {
	current := d.detect()
	contacts := DiffPairs(d.overlaps, current)
	d.overlaps = current
	return contacts
}

// Overlapping reports whether the bodies with IDs a and b overlapped at
// the last Step.
func (d *Detector) Overlapping(a, b uint64) bool {
	if b < a {
		a, b = b, a
	}
	_, ok := d.overlaps[pairKey{a, b}]
	return ok
}

func (d *Detector) detect() PairSet {
	d.index.Clear()

	var maxRadius float64
	var outside []int
	for i, b := range d.bodies {
		if b.Shape.Radius > maxRadius {
			maxRadius = b.Shape.Radius
		}
		if !d.index.Insert(b.Shape.Center, i) {
			outside = append(outside, i)
		}
	}

	found := make(PairSet)
	record := func(i, j int) {
		a, b := d.bodies[i], d.bodies[j]
		if a.Shape.Collides(b.Shape) {
			found.Add(a.Ref(), b.Ref())
		}
	}

	for i, b := range d.bodies {
		reach := 2 * (b.Shape.Radius + maxRadius)
		area := Rect{Center: b.Shape.Center, Width: reach, Height: reach}
		for _, obj := range d.index.Query(area) {
			record(i, obj.(int))
		}
		for _, j := range outside {
			record(i, j)
		}
	}

	return found
}
