package diffusion

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Crossing is the outcome of testing a step against the planes of a boundary.
type Crossing uint8

const (
	CrossNone Crossing = iota // no plane crossed
	CrossA                    // only the first plane crossed
	CrossB                    // only the second plane crossed
	CrossBoth                 // both planes crossed in the same step
)

func (c Crossing) String() string {
	switch c {
	case CrossNone:
		return "none"
	case CrossA:
		return "A"
	case CrossB:
		return "B"
	case CrossBoth:
		return "both"
	}
	return fmt.Sprintf("Crossing(%d)", uint8(c))
}

// crosses returns whether the step from old to new changes side of the plane.
func crosses(old, new Vec, pl Plane) bool {
	return OnPositiveSide(old, pl) != OnPositiveSide(new, pl)
}

// Unbounded is the trivial boundary a.k.a. free diffusion.
type Unbounded struct{}

// Move accepts every step.
func (Unbounded) Move(old, new Vec) (Vec, Crossing, error) {
	return new, CrossNone, nil
}

// OnePlane is a boundary made of a single reflective plane.
type OnePlane struct {
	Plane Plane
}

// NewOnePlane returns a single-plane boundary after validating the plane.
func NewOnePlane(pl Plane) (*OnePlane, error) {
	if err := pl.Validate(); err != nil {
		return nil, err
	}
	return &OnePlane{Plane: pl}, nil
}

// Move reflects steps that cross the plane and accepts the others unmodified.
func (b *OnePlane) Move(old, new Vec) (Vec, Crossing, error) {
	if !crosses(old, new, b.Plane) {
		return new, CrossNone, nil
	}
	p, err := Reflect(old, new, b.Plane)
	return p, CrossA, err
}

// cornerDamping scales the point projected on the intersection line of two
// planes when a single step crosses both. It is a heuristic that keeps the
// particle from sticking to the edge, not a physical reflection.
const cornerDamping = 0.95

// TwoPlanes is a boundary made of two reflective planes.
//
// A step crossing a single plane is reflected about it. A step crossing
// both is redirected to the intersection line of the planes: the midpoint
// of the two crossing points is projected on the line and scaled by 0.95.
// The projection is orthogonal: older analysis scripts projecting with
// (anchor - p)·dir give corner positions mirrored through the line anchor.
// NewTwoPlanes validates the planes and computes their intersection line
// once; a TwoPlanes built as a literal computes the line on each corner step.
type TwoPlanes struct {
	A, B Plane

	line    Line
	lineErr error // set when the planes are parallel
}

// NewTwoPlanes returns a two-plane boundary. Parallel planes are accepted;
// a step crossing both of them then fails with ErrDegenerateGeometry.
func NewTwoPlanes(a, b Plane) (*TwoPlanes, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("plane A: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("plane B: %w", err)
	}
	t := &TwoPlanes{A: a, B: b}
	t.line, t.lineErr = IntersectPlanes(a, b)
	return t, nil
}

// Classify tests a step against both planes.
func (b *TwoPlanes) Classify(old, new Vec) Crossing {
	ca, cb := crosses(old, new, b.A), crosses(old, new, b.B)
	switch {
	case ca && cb:
		return CrossBoth
	case ca:
		return CrossA
	case cb:
		return CrossB
	}
	return CrossNone
}

// Move resolves a step against both planes.
func (b *TwoPlanes) Move(old, new Vec) (Vec, Crossing, error) {
	c := b.Classify(old, new)
	switch c {
	case CrossA:
		p, err := Reflect(old, new, b.A)
		return p, c, err
	case CrossB:
		p, err := Reflect(old, new, b.B)
		return p, c, err
	case CrossBoth:
		p, err := b.corner(old, new)
		return p, c, err
	}
	return new, c, nil
}

// corner handles a step crossing both planes.
func (b *TwoPlanes) corner(old, new Vec) (Vec, error) {
	line, err := b.line, b.lineErr
	if err == nil && line.Dir == (Vec{}) {
		line, err = IntersectPlanes(b.A, b.B)
	}
	if err != nil {
		return Vec{}, err
	}
	ia, err := IntersectSegment(old, new, b.A)
	if err != nil {
		return Vec{}, err
	}
	ib, err := IntersectSegment(old, new, b.B)
	if err != nil {
		return Vec{}, err
	}
	mid := r3.Scale(0.5, r3.Add(ia, ib))
	return r3.Scale(cornerDamping, ClosestPoint(line, mid)), nil
}
