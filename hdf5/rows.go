// Package hdf5 saves and loads particle trajectories in HDF5 files.
//
// A file holds a "records" dataset with one compound row per particle and
// frame, an "ensemble" dataset with the per-frame means, a "planes" dataset
// with the boundary, and a "config" dataset whose attributes describe the run.
//
// Building with the nohdf5 tag removes the dependency on the HDF5 C library;
// Save and Load then return an error.
package hdf5

import (
	"github.com/jrfilteau/brain-diffusion"
)

// Config holds the parameters of the HDF5 writer.
type Config struct {
	Output string            // path of output file
	RunID  string            // identifier stored with the run metadata
	Planes []diffusion.Plane // boundary planes, if any

	// Meta is a pointer to a struct whose numeric and string fields
	// are saved as attributes of the "config" dataset.
	Meta interface{}
}

// A record is what is stored in the HDF5 file for each particle at each frame.
// This structure is mapped to a compound datatype in HDF5 so member names are important.
type record struct {
	Particle int64
	Frame    int64
	Step     diffusion.Vec
	Pos      diffusion.Vec
	Centered diffusion.Vec
	Crossing int64
	MSD      diffusion.Projections
	Deff     diffusion.Projections
}

// A summary is one row of the "ensemble" dataset.
type summary struct {
	Frame int64
	Count int64
	MSD   diffusion.Projections
	Deff  diffusion.Projections
}

func toRecords(rs []diffusion.Record) []record {
	out := make([]record, len(rs))
	for i, r := range rs {
		out[i] = record{
			Particle: int64(r.Particle),
			Frame:    int64(r.Frame),
			Step:     r.Step,
			Pos:      r.Pos,
			Centered: r.Centered,
			Crossing: int64(r.Crossing),
			MSD:      r.MSD,
			Deff:     r.Deff,
		}
	}
	return out
}

func fromRecords(rs []record) []diffusion.Record {
	out := make([]diffusion.Record, len(rs))
	for i, r := range rs {
		out[i] = diffusion.Record{
			Particle: int(r.Particle),
			Frame:    int(r.Frame),
			Step:     r.Step,
			Pos:      r.Pos,
			Centered: r.Centered,
			Crossing: diffusion.Crossing(r.Crossing),
			MSD:      r.MSD,
			Deff:     r.Deff,
		}
	}
	return out
}

func toSummaries(ss []diffusion.Summary) []summary {
	out := make([]summary, len(ss))
	for i, s := range ss {
		out[i] = summary{
			Frame: int64(s.Frame),
			Count: int64(s.Count),
			MSD:   s.MSD,
			Deff:  s.Deff,
		}
	}
	return out
}
