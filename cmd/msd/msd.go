// Command msd recomputes the statistics of a run saved by the walk command.
//
// # Usage
//
//	msd file.h5
//
// The trajectories are read back from the "records" dataset, each particle
// is centered and analyzed again from its raw positions, and the ensemble
// MSD and Deff are printed as tab-separated columns followed by the fitted
// diffusion coefficients.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jrfilteau/brain-diffusion"
	"github.com/jrfilteau/brain-diffusion/hdf5"
)

const usage = `Usage: msd file.h5

The argument is the path to an HDF5 file written by the walk command.
`

func main() {
	if len(os.Args) != 2 {
		Fatal(fmt.Errorf("%d arguments provided (1 required)\n\n%s", len(os.Args)-1, usage))
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		Fatal(err)
	}
	defer log.Sync()

	records, err := hdf5.Load(os.Args[1])
	if err != nil {
		Fatal(err)
	}
	parts := reanalyze(records)
	log.Info("loaded run",
		zap.String("path", os.Args[1]),
		zap.Int("records", len(records)),
		zap.Int("particles", parts),
	)

	ens := diffusion.Ensemble(records)
	fmt.Println("frame\tcount\tmsd\tmsd_xy\tmsd_xz\tmsd_yz\tdeff\tdeff_xy\tdeff_xz\tdeff_yz")
	for _, s := range ens {
		fmt.Printf("%d\t%d\t%g\t%g\t%g\t%g\t%g\t%g\t%g\t%g\n", s.Frame, s.Count,
			s.MSD.XYZ, s.MSD.XY, s.MSD.XZ, s.MSD.YZ,
			s.Deff.XYZ, s.Deff.XY, s.Deff.XZ, s.Deff.YZ)
	}

	d, err := diffusion.FitDiffusion(ens)
	if err != nil {
		Fatal(err)
	}
	fmt.Printf("# fitted D: 3D %g, xy %g, xz %g, yz %g\n", d.XYZ, d.XY, d.XZ, d.YZ)
}

// Fatal prints an error on the standard output and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// reanalyze runs the statistics pass on each particle of a concatenated
// run in place and returns the number of particles.
// Records of one particle are expected to be contiguous.
func reanalyze(records []diffusion.Record) int {
	var n int
	for start := 0; start < len(records); {
		end := start + 1
		for end < len(records) && records[end].Particle == records[start].Particle {
			end++
		}
		diffusion.Analyze(records[start:end])
		start = end
		n++
	}
	return n
}
