package diffusion

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// A Source supplies uniform random numbers in [0, 1).
// *rand.Rand from math/rand/v2 is a Source.
type Source interface {
	Float64() float64
}

// NewSource returns a generator for one particle of a seeded run.
// The same seed and particle always yield the same stream.
func NewSource(seed uint64, particle int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(particle)))
}

// step draws a random displacement of magnitude base on each axis.
func step(src Source, base float64) Vec {
	return Vec{
		X: base * (src.Float64() - 0.5),
		Y: base * (src.Float64() - 0.5),
		Z: base * (src.Float64() - 0.5),
	}
}

// Walk generates the raw trajectory of one particle: ids, frames, steps,
// positions and crossings. Centered positions, MSD and Deff are left at
// zero; see Analyze.
func Walk(src Source, p Params, b Boundary) ([]Record, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if b == nil {
		b = Unbounded{}
	}

	traj := make([]Record, p.Frames)
	traj[0] = Record{Particle: p.Particle, Pos: p.Start}
	for k := 1; k < p.Frames; k++ {
		prev := traj[k-1].Pos
		d := step(src, p.Base)
		pos, c, err := b.Move(prev, r3.Add(prev, d))
		if err != nil {
			return nil, fmt.Errorf("particle %d, frame %d: %w", p.Particle, k, err)
		}
		traj[k] = Record{
			Particle: p.Particle,
			Frame:    k,
			Step:     d,
			Pos:      pos,
			Crossing: c,
		}
	}
	return traj, nil
}

// WalkPlane returns the analyzed trajectory of a particle confined by one plane.
func WalkPlane(src Source, p Params, pl Plane) ([]Record, error) {
	b, err := NewOnePlane(pl)
	if err != nil {
		return nil, err
	}
	return Simulate(src, p, b)
}

// WalkPlanes returns the analyzed trajectory of a particle confined by two planes.
func WalkPlanes(src Source, p Params, a, b Plane) ([]Record, error) {
	t, err := NewTwoPlanes(a, b)
	if err != nil {
		return nil, err
	}
	return Simulate(src, p, t)
}

// Simulate generates a trajectory and computes its statistics.
func Simulate(src Source, p Params, b Boundary) ([]Record, error) {
	traj, err := Walk(src, p, b)
	if err != nil {
		return nil, err
	}
	Analyze(traj)
	return traj, nil
}
