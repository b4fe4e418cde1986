package hdf5

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrfilteau/brain-diffusion"
)

func TestRecordRows(t *testing.T) {
	src := diffusion.NewSource(3, 1)
	pl := diffusion.Plane{Normal: diffusion.Vec{Z: 1}, Anchor: diffusion.Vec{Z: -0.2}}
	rs, err := diffusion.WalkPlane(src, diffusion.Params{Base: 1, Frames: 50, Particle: 4}, pl)
	require.NoError(t, err)

	rows := toRecords(rs)
	require.Len(t, rows, 50)
	assert.Equal(t, int64(4), rows[10].Particle)
	assert.Equal(t, int64(10), rows[10].Frame)

	if diff := cmp.Diff(rs, fromRecords(rows)); diff != "" {
		t.Errorf("records changed through rows (-want +got):\n%s", diff)
	}
}

func TestSummaryRows(t *testing.T) {
	ss := []diffusion.Summary{
		{Frame: 0, Count: 2},
		{Frame: 1, Count: 2, MSD: diffusion.Projections{XYZ: 0.3, XY: 0.2, XZ: 0.2, YZ: 0.2}},
	}
	rows := toSummaries(ss)
	assert.Equal(t, []summary{
		{Frame: 0, Count: 2},
		{Frame: 1, Count: 2, MSD: diffusion.Projections{XYZ: 0.3, XY: 0.2, XZ: 0.2, YZ: 0.2}},
	}, rows)
}
