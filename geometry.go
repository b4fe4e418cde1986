package diffusion

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a 3D position or displacement.
type Vec = r3.Vec

// A Plane is defined by its normal and any point lying on it.
type Plane struct {
	Normal Vec
	Anchor Vec
}

// Validate reports whether the plane has a usable normal.
func (p Plane) Validate() error {
	if !finite(p.Normal) || !finite(p.Anchor) {
		return fmt.Errorf("%w: plane %v is not finite", ErrInvalidArgument, p)
	}
	if r3.Norm2(p.Normal) == 0 {
		return fmt.Errorf("%w: plane has a zero normal", ErrInvalidArgument)
	}
	return nil
}

// A Line is the set of points Anchor + t*Dir for all real t.
type Line struct {
	Anchor Vec
	Dir    Vec
}

// Point returns the point of parameter t on the line.
func (l Line) Point(t float64) Vec {
	return r3.Add(l.Anchor, r3.Scale(t, l.Dir))
}

// parallelTol is the relative magnitude of n_A x n_B below which two
// planes are treated as parallel.
const parallelTol = 1e-12

// OnPositiveSide returns whether p lies strictly on the side of the plane
// its normal points to. Points on the plane are not on the positive side.
func OnPositiveSide(p Vec, pl Plane) bool {
	return r3.Dot(pl.Normal, p) > r3.Dot(pl.Normal, pl.Anchor)
}

// Reflect returns where p1 would be if the segment from p0 to p1 bounced
// elastically off the plane. The length of the path is preserved.
func Reflect(p0, p1 Vec, pl Plane) (Vec, error) {
	inter, d, err := intersect(p0, p1, pl)
	if err != nil {
		return Vec{}, err
	}
	n := r3.Unit(pl.Normal)
	r := r3.Sub(d, r3.Scale(2*r3.Dot(d, n), n))
	rem := r3.Norm(r3.Sub(p1, inter))
	return r3.Add(inter, r3.Scale(rem/r3.Norm(r), r)), nil
}

// IntersectSegment returns the point where the line through p0 and p1
// meets the plane.
func IntersectSegment(p0, p1 Vec, pl Plane) (Vec, error) {
	inter, _, err := intersect(p0, p1, pl)
	return inter, err
}

// intersect solves n.(p0 + t*d) = n.anchor for t and returns the point
// of parameter t along with d = p1 - p0.
func intersect(p0, p1 Vec, pl Plane) (inter, d Vec, err error) {
	d = r3.Sub(p1, p0)
	den := r3.Dot(pl.Normal, d)
	if den == 0 {
		return Vec{}, d, fmt.Errorf("%w: segment %v -> %v, normal %v", ErrParallelSegment, p0, p1, pl.Normal)
	}
	t := (r3.Dot(pl.Normal, pl.Anchor) - r3.Dot(pl.Normal, p0)) / den
	return r3.Add(p0, r3.Scale(t, d)), d, nil
}

// IntersectPlanes returns the line shared by two planes. The direction of
// the line is n_A x n_B. Its anchor is the solution of both plane equations
// with the coordinate along which the direction is largest set to zero,
// which is z = 0 unless the line is nearly horizontal.
func IntersectPlanes(a, b Plane) (Line, error) {
	dir := r3.Cross(a.Normal, b.Normal)
	if r3.Norm(dir) <= parallelTol*r3.Norm(a.Normal)*r3.Norm(b.Normal) {
		return Line{}, fmt.Errorf("%w: planes with normals %v and %v are parallel",
			ErrDegenerateGeometry, a.Normal, b.Normal)
	}

	// drop axis k and solve for the other two
	d := components(dir)
	k := 2
	for i := 0; i < 2; i++ {
		if math.Abs(d[i]) > math.Abs(d[k]) {
			k = i
		}
	}
	i, j := (k+1)%3, (k+2)%3
	na, nb := components(a.Normal), components(b.Normal)

	A := mat.NewDense(2, 2, []float64{
		na[i], na[j],
		nb[i], nb[j],
	})
	rhs := mat.NewVecDense(2, []float64{
		r3.Dot(a.Normal, a.Anchor),
		r3.Dot(b.Normal, b.Anchor),
	})
	var x mat.VecDense
	if err := x.SolveVec(A, rhs); err != nil {
		return Line{}, fmt.Errorf("%w: %v", ErrDegenerateGeometry, err)
	}

	var anchor [3]float64
	anchor[i], anchor[j] = x.AtVec(0), x.AtVec(1)
	return Line{Anchor: Vec{X: anchor[0], Y: anchor[1], Z: anchor[2]}, Dir: dir}, nil
}

// ClosestPoint returns the orthogonal projection of p onto the line.
func ClosestPoint(l Line, p Vec) Vec {
	t := r3.Dot(r3.Sub(p, l.Anchor), l.Dir) / r3.Norm2(l.Dir)
	return l.Point(t)
}

func components(v Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func finite(v Vec) bool {
	for _, x := range components(v) {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
