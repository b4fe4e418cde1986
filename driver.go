package diffusion

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// A Driver runs the walks of many particles and concatenates them.
type Driver struct {
	Params    Params   // Particle is overwritten for each particle
	Boundary  Boundary // shared by all particles
	Particles int      // particles are numbered 1 to Particles
	Seed      uint64   // each particle draws from NewSource(Seed, id)

	// Workers limits the number of particles walked concurrently.
	// Zero or less means no limit.
	Workers int

	// Progress, if set, is called after each particle completes.
	// Calls are serialized.
	Progress func(done, total int)

	Log *zap.Logger
}

// Run walks every particle and returns their analyzed records, grouped by
// particle in id order, frames ascending within each particle.
// The output only depends on the parameters and the seed.
func (d *Driver) Run(ctx context.Context) ([]Record, error) {
	if d.Particles < 1 {
		return nil, fmt.Errorf("%w: particle count %d, need at least 1", ErrInvalidArgument, d.Particles)
	}
	if err := d.Params.Validate(); err != nil {
		return nil, err
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	results := make([][]Record, d.Particles)
	var (
		mu   sync.Mutex
		done int
	)

	g, ctx := errgroup.WithContext(ctx)
	if d.Workers > 0 {
		g.SetLimit(d.Workers)
	}
	for i := range results {
		id := i + 1
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := d.Params
			p.Particle = id
			traj, err := Simulate(NewSource(d.Seed, id), p, d.Boundary)
			if err != nil {
				return err
			}
			results[i] = traj

			log.Debug("particle done",
				zap.Int("particle", id),
				zap.Int("frames", len(traj)),
				zap.Int("crossings", countCrossings(traj)),
			)

			if d.Progress != nil {
				mu.Lock()
				done++
				d.Progress(done, d.Particles)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("run aborted", zap.Error(err))
		return nil, err
	}

	out := make([]Record, 0, d.Particles*d.Params.Frames)
	for _, traj := range results {
		out = append(out, traj...)
	}
	log.Info("run complete",
		zap.Int("particles", d.Particles),
		zap.Int("records", len(out)),
	)
	return out, nil
}

func countCrossings(traj []Record) int {
	var n int
	for _, r := range traj {
		if r.Crossing != CrossNone {
			n++
		}
	}
	return n
}
