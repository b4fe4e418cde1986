package diffusion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	traj := []Record{
		{Pos: Vec{}},
		{Frame: 1, Pos: Vec{X: 1}},
		{Frame: 2, Pos: Vec{X: 1, Y: 2}},
		{Frame: 3, Pos: Vec{X: 3, Y: 2, Z: 2}},
	}
	Analyze(traj)

	want := []Record{
		{
			Pos:      Vec{},
			Centered: Vec{X: -1.5, Y: -1, Z: -1},
		},
		{
			Frame:    1,
			Pos:      Vec{X: 1},
			Centered: Vec{X: -0.5, Y: -1, Z: -1},
			MSD:      Projections{XYZ: 1, XY: 1, XZ: 1, YZ: 0},
			Deff:     Projections{XYZ: 1.0 / 6, XY: 0.25, XZ: 0.25, YZ: 0},
		},
		{
			Frame:    2,
			Pos:      Vec{X: 1, Y: 2},
			Centered: Vec{X: -0.5, Y: 1, Z: -1},
			MSD:      Projections{XYZ: 5, XY: 5, XZ: 1, YZ: 4},
			Deff:     Projections{XYZ: 5.0 / 12, XY: 5.0 / 8, XZ: 1.0 / 8, YZ: 0.5},
		},
		{
			Frame:    3,
			Pos:      Vec{X: 3, Y: 2, Z: 2},
			Centered: Vec{X: 1.5, Y: 1, Z: 1},
			MSD:      Projections{XYZ: 17, XY: 13, XZ: 13, YZ: 8},
			Deff:     Projections{XYZ: 17.0 / 18, XY: 13.0 / 12, XZ: 13.0 / 12, YZ: 8.0 / 12},
		},
	}
	if diff := cmp.Diff(want, traj, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Analyze mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeEdgeCases(t *testing.T) {
	assert.NotPanics(t, func() { Analyze(nil) })

	one := []Record{{Pos: Vec{X: 4, Y: -2, Z: 1}}}
	Analyze(one)
	assert.Equal(t, Vec{}, one[0].Centered)
	assert.Equal(t, Projections{}, one[0].MSD)

	// stale statistics on frame 0 are cleared
	two := []Record{{MSD: Projections{XYZ: 3}, Deff: Projections{XY: 1}}, {Frame: 1, Pos: Vec{Y: 1}}}
	Analyze(two)
	assert.Equal(t, Projections{}, two[0].MSD)
	assert.Equal(t, Projections{}, two[0].Deff)
}

func TestAnalyzeTranslationInvariant(t *testing.T) {
	p := Params{Base: 1, Frames: 200}
	a, err := Simulate(NewSource(3, 1), p, Unbounded{})
	require.NoError(t, err)
	p.Start = Vec{X: 10, Y: -4, Z: 0.5}
	b, err := Simulate(NewSource(3, 1), p, Unbounded{})
	require.NoError(t, err)

	opt := cmpopts.EquateApprox(0, 1e-9)
	for i := range a {
		assert.Empty(t, cmp.Diff(a[i].Centered, b[i].Centered, opt), "frame %d", i)
		assert.Empty(t, cmp.Diff(a[i].MSD, b[i].MSD, opt), "frame %d", i)
		assert.Empty(t, cmp.Diff(a[i].Deff, b[i].Deff, opt), "frame %d", i)
	}
}

func TestEnsemble(t *testing.T) {
	records := []Record{
		{Particle: 2, Frame: 1, MSD: Projections{XYZ: 3, XY: 1}, Deff: Projections{XYZ: 0.5}},
		{Particle: 1, Frame: 0},
		{Particle: 1, Frame: 1, MSD: Projections{XYZ: 1, XY: 1, YZ: 2}, Deff: Projections{XYZ: 1.0 / 6}},
		{Particle: 2, Frame: 0},
		{Particle: 3, Frame: 1, MSD: Projections{XYZ: 2, XZ: 6}},
	}
	got := Ensemble(records)

	want := []Summary{
		{Frame: 0, Count: 2},
		{
			Frame: 1,
			Count: 3,
			MSD:   Projections{XYZ: 2, XY: 2.0 / 3, XZ: 2, YZ: 2.0 / 3},
			Deff:  Projections{XYZ: (0.5 + 1.0/6) / 3},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Ensemble mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, Ensemble(nil))
}

func TestFitDiffusion(t *testing.T) {
	var ens []Summary
	for f := 0; f < 50; f++ {
		x := float64(f)
		ens = append(ens, Summary{
			Frame: f,
			MSD:   Projections{XYZ: 6 * 0.25 * x, XY: 4 * 0.1 * x, XZ: 4 * 0.2 * x, YZ: 4 * 0.3 * x},
		})
	}
	d, err := FitDiffusion(ens)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, d.XYZ, 1e-12)
	assert.InDelta(t, 0.1, d.XY, 1e-12)
	assert.InDelta(t, 0.2, d.XZ, 1e-12)
	assert.InDelta(t, 0.3, d.YZ, 1e-12)

	_, err = FitDiffusion(ens[:1])
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
