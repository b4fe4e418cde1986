// Command walk runs random walks of particles confined by planar barriers.
//
// # Usage
//
// The walk command takes one optional argument:
//
//	walk [config_file]
//
// It is the path to a TOML config file.
// If no config file is specified, a run with default parameters
// (10 particles, 1000 frames, one plane x = 0) is performed.
//
// # Config file
//
// The config file is written in TOML, for instance:
//
//	output    = "runs/corner.h5"
//	particles = 100
//	frames    = 5000
//	base      = 1.0
//	seed      = 42
//
//	[[planes]]
//	normal = [1, 0, 0]
//	anchor = [0, 0, 0]
//
//	[[planes]]
//	normal = [0, 1, 0]
//	anchor = [0, 0, 0]
//
// Up to two planes are allowed. With `planes = []` the walk is unbounded.
//
// # Output
//
// If output is set, all records and the ensemble means are saved in an HDF5
// file. Otherwise the ensemble MSD and Deff are printed every n-th frame
// ("every" key) followed by the diffusion coefficients fitted on the
// mean MSD.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jrfilteau/brain-diffusion"
	"github.com/jrfilteau/brain-diffusion/hdf5"
)

const usage = `Usage: walk [config_file]

The first argument is optional and is the path to a TOML config file.
If no config file is specified, a run with default parameters is performed
and its summary printed.
`

func main() {
	var conf *Config
	var err error
	switch len(os.Args) {
	case 1:
		conf = DefaultConf
	case 2:
		conf, err = ParseConfig(os.Args[1])
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		Fatal(err)
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		Fatal(err)
	}
	defer log.Sync()

	// setup simulation
	d, err := setup(conf, log)
	if err != nil {
		Fatal(err)
	}

	records, err := d.Run(context.Background())
	fmt.Printf("\n")
	if err != nil {
		Fatal(err)
	}

	// save or print depending on config
	if conf.Output == "" {
		err = printSummary(conf, records)
	} else {
		runID := uuid.NewString()
		log.Info("saving run", zap.String("output", conf.Output), zap.String("run_id", runID))
		err = hdf5.Save(&hdf5.Config{
			Output: conf.Output,
			RunID:  runID,
			Planes: planes(conf),
			Meta:   conf,
		}, records)
	}
	if err != nil {
		Fatal(err)
	}
}

// Fatal prints an error on the standard output and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// setup builds the driver for the configured run.
func setup(conf *Config, log *zap.Logger) (*diffusion.Driver, error) {
	b, err := boundary(planes(conf))
	if err != nil {
		return nil, err
	}
	return &diffusion.Driver{
		Params: diffusion.Params{
			Base:     conf.Base,
			Variance: conf.Variance,
			Frames:   conf.Frames,
			Start:    vec(conf.Start),
		},
		Boundary:  b,
		Particles: conf.Particles,
		Seed:      conf.Seed,
		Workers:   conf.Workers,
		Log:       log,
		Progress: func(done, total int) {
			// show progress as percentage
			fmt.Printf("\r% 3d%%", 100*done/total)
		},
	}, nil
}

// boundary returns the boundary made of the given planes.
func boundary(pls []diffusion.Plane) (diffusion.Boundary, error) {
	switch len(pls) {
	case 0:
		return diffusion.Unbounded{}, nil
	case 1:
		return diffusion.NewOnePlane(pls[0])
	case 2:
		return diffusion.NewTwoPlanes(pls[0], pls[1])
	}
	return nil, fmt.Errorf("%d planes configured (at most 2)", len(pls))
}

func planes(conf *Config) []diffusion.Plane {
	pls := make([]diffusion.Plane, len(conf.Planes))
	for i, p := range conf.Planes {
		pls[i] = diffusion.Plane{Normal: vec(p.Normal), Anchor: vec(p.Anchor)}
	}
	return pls
}

func vec(v [3]float64) diffusion.Vec {
	return diffusion.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// printSummary prints the ensemble means every conf.Every frames
// and the fitted diffusion coefficients.
func printSummary(conf *Config, records []diffusion.Record) error {
	ens := diffusion.Ensemble(records)
	fmt.Printf("%8s %12s %12s %12s %12s %12s\n", "frame", "msd", "msd_xy", "msd_xz", "msd_yz", "deff")
	for _, s := range ens {
		if s.Frame%conf.Every != 0 && s.Frame != len(ens)-1 {
			continue
		}
		fmt.Printf("%8d %12.5g %12.5g %12.5g %12.5g %12.5g\n",
			s.Frame, s.MSD.XYZ, s.MSD.XY, s.MSD.XZ, s.MSD.YZ, s.Deff.XYZ)
	}
	if len(ens) < 2 {
		return nil
	}
	d, err := diffusion.FitDiffusion(ens)
	if err != nil {
		return err
	}
	fmt.Printf("fitted D: 3D %.5g, xy %.5g, xz %.5g, yz %.5g\n", d.XYZ, d.XY, d.XZ, d.YZ)
	return nil
}
