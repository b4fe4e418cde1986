// Package diffusion simulates random walks of particles confined by planar barriers.
//
// A particle starts at rest and takes one uniform random step per frame.
// A Boundary decides where the particle actually lands when a step
// crosses one or two planes. The raw trajectory is then centered and
// reduced to mean-squared displacements (MSD) and effective diffusion
// coefficients (Deff) in 3D and in the XY, XZ and YZ projections.
package diffusion

import (
	"fmt"
	"math"
)

// Params contains the parameters of a single particle walk.
type Params struct {
	// Base is the magnitude of a single step. Each axis moves by
	// Base * (u - 0.5) with u uniform in [0, 1).
	Base float64

	// Variance is the variation in step size. It is accepted for
	// compatibility with existing run configurations and currently
	// has no effect on the steps.
	Variance float64

	Frames   int // number of frames, including the initial one
	Particle int // particle id copied into every record
	Start    Vec // position at frame 0
}

// Validate reports whether the parameters can produce a trajectory.
func (p Params) Validate() error {
	switch {
	case p.Frames < 1:
		return fmt.Errorf("%w: frame count %d, need at least 1", ErrInvalidArgument, p.Frames)
	case !(p.Base > 0) || math.IsInf(p.Base, 0):
		return fmt.Errorf("%w: base step %v, need a finite positive value", ErrInvalidArgument, p.Base)
	case !finite(p.Start):
		return fmt.Errorf("%w: start position %v is not finite", ErrInvalidArgument, p.Start)
	}
	return nil
}

// Projections holds one quantity computed in 3D and in the three
// axis-aligned planes.
type Projections struct {
	XYZ float64
	XY  float64
	XZ  float64
	YZ  float64
}

// A Record is the state of one particle at one frame.
type Record struct {
	Particle int      // particle id
	Frame    int      // frame index, starting at 0
	Step     Vec      // random displacement drawn for this frame
	Pos      Vec      // position after boundary resolution
	Centered Vec      // position relative to the trajectory bounding-box center
	Crossing Crossing // boundary outcome applied at this frame

	MSD  Projections // squared displacement from frame 0
	Deff Projections // MSD / (6t) in 3D and MSD / (4t) in 2D
}

// A Boundary confines a walk.
//
// Move returns the position actually reached by a particle at old that
// attempts to step to new, along with the crossing outcome that was applied.
// Implementations must be safe for concurrent use.
type Boundary interface {
	Move(old, new Vec) (Vec, Crossing, error)
}
