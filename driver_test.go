package diffusion

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDriverRun(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	var calls []int
	d := &Driver{
		Params:    Params{Base: 1, Frames: 40},
		Boundary:  &OnePlane{Plane: planeX},
		Particles: 5,
		Seed:      99,
		Workers:   2,
		Progress:  func(done, total int) { calls = append(calls, done) },
		Log:       zap.New(core),
	}
	records, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5*40)

	for i, r := range records {
		assert.Equal(t, i/40+1, r.Particle, "record %d", i)
		assert.Equal(t, i%40, r.Frame, "record %d", i)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, calls)
	assert.Equal(t, 5, logs.FilterMessage("particle done").Len())
	assert.Equal(t, 1, logs.FilterMessage("run complete").Len())

	// each particle is the walk of its own stream
	third, err := Simulate(NewSource(99, 3), Params{Base: 1, Frames: 40, Particle: 3}, &OnePlane{Plane: planeX})
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(third, records[80:120]))
}

func TestDriverDeterministic(t *testing.T) {
	b, err := NewTwoPlanes(planeX, Plane{Normal: Vec{X: 1, Y: 1, Z: 1}, Anchor: Vec{Z: -1}})
	require.NoError(t, err)
	run := func(workers int) []Record {
		d := &Driver{
			Params:    Params{Base: 1, Frames: 100},
			Boundary:  b,
			Particles: 8,
			Seed:      7,
			Workers:   workers,
		}
		records, err := d.Run(context.Background())
		require.NoError(t, err)
		return records
	}
	assert.Empty(t, cmp.Diff(run(1), run(0)))
}

func TestDriverErrors(t *testing.T) {
	d := &Driver{Params: Params{Base: 1, Frames: 10}, Particles: 0}
	_, err := d.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidArgument)

	d = &Driver{Params: Params{Base: 1, Frames: 0}, Particles: 3}
	_, err = d.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidArgument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d = &Driver{Params: Params{Base: 1, Frames: 10}, Particles: 3}
	_, err = d.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
