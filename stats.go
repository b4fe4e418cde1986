package diffusion

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Analyze centers a single-particle trajectory and fills in its MSD and
// Deff values in place.
//
// Each axis is centered on the middle of its range over the whole
// trajectory. MSD at frame t is the squared distance from the position at
// frame 0; Deff divides it by 6t in 3D and 4t in each 2D projection. Frame
// 0 keeps zero MSD and Deff. Frames are taken to be the record indices.
func Analyze(traj []Record) {
	if len(traj) == 0 {
		return
	}

	xs := make([]float64, len(traj))
	ys := make([]float64, len(traj))
	zs := make([]float64, len(traj))
	for i, r := range traj {
		xs[i], ys[i], zs[i] = r.Pos.X, r.Pos.Y, r.Pos.Z
	}
	cx := (floats.Max(xs) + floats.Min(xs)) / 2
	cy := (floats.Max(ys) + floats.Min(ys)) / 2
	cz := (floats.Max(zs) + floats.Min(zs)) / 2
	for i := range traj {
		traj[i].Centered = Vec{X: xs[i] - cx, Y: ys[i] - cy, Z: zs[i] - cz}
	}

	o := traj[0].Centered
	traj[0].MSD, traj[0].Deff = Projections{}, Projections{}
	for i := 1; i < len(traj); i++ {
		c := traj[i].Centered
		dx, dy, dz := c.X-o.X, c.Y-o.Y, c.Z-o.Z
		dx2, dy2, dz2 := dx*dx, dy*dy, dz*dz

		m := Projections{
			XYZ: dx2 + dy2 + dz2,
			XY:  dx2 + dy2,
			XZ:  dx2 + dz2,
			YZ:  dz2 + dy2,
		}
		t := float64(i)
		traj[i].MSD = m
		traj[i].Deff = Projections{
			XYZ: m.XYZ / (6 * t),
			XY:  m.XY / (4 * t),
			XZ:  m.XZ / (4 * t),
			YZ:  m.YZ / (4 * t),
		}
	}
}

// Summary contains the mean MSD and Deff of all particles at one frame.
type Summary struct {
	Frame int
	Count int // number of particles contributing
	MSD   Projections
	Deff  Projections
}

// Ensemble averages analyzed records of any number of particles frame by
// frame. The result is sorted by frame.
func Ensemble(records []Record) []Summary {
	byFrame := make(map[int][]Record)
	for _, r := range records {
		byFrame[r.Frame] = append(byFrame[r.Frame], r)
	}
	frames := make([]int, 0, len(byFrame))
	for f := range byFrame {
		frames = append(frames, f)
	}
	sort.Ints(frames)

	out := make([]Summary, len(frames))
	for i, f := range frames {
		rs := byFrame[f]
		out[i] = Summary{
			Frame: f,
			Count: len(rs),
			MSD:   meanOf(rs, func(r Record) Projections { return r.MSD }),
			Deff:  meanOf(rs, func(r Record) Projections { return r.Deff }),
		}
	}
	return out
}

func meanOf(rs []Record, get func(Record) Projections) Projections {
	n := len(rs)
	xyz, xy, xz, yz := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, r := range rs {
		p := get(r)
		xyz[i], xy[i], xz[i], yz[i] = p.XYZ, p.XY, p.XZ, p.YZ
	}
	return Projections{
		XYZ: stat.Mean(xyz, nil),
		XY:  stat.Mean(xy, nil),
		XZ:  stat.Mean(xz, nil),
		YZ:  stat.Mean(yz, nil),
	}
}

// FitDiffusion estimates diffusion coefficients from the least-squares
// slope of mean MSD against frame, with the line forced through the
// origin. The 3D slope is divided by 6 and the 2D slopes by 4.
func FitDiffusion(ens []Summary) (Projections, error) {
	if len(ens) < 2 {
		return Projections{}, fmt.Errorf("%w: need at least 2 frames to fit, got %d", ErrInvalidArgument, len(ens))
	}
	n := len(ens)
	t := make([]float64, n)
	xyz, xy, xz, yz := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, s := range ens {
		t[i] = float64(s.Frame)
		xyz[i], xy[i], xz[i], yz[i] = s.MSD.XYZ, s.MSD.XY, s.MSD.XZ, s.MSD.YZ
	}
	slope := func(y []float64) float64 {
		_, beta := stat.LinearRegression(t, y, nil, true)
		return beta
	}
	return Projections{
		XYZ: slope(xyz) / 6,
		XY:  slope(xy) / 4,
		XZ:  slope(xz) / 4,
		YZ:  slope(yz) / 4,
	}, nil
}
