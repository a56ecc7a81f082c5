package rollout

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-stack/mppicore/geom"
	"github.com/nav-stack/mppicore/motionmodel"
	"github.com/nav-stack/mppicore/state"
)

func newNominal(horizon, dims int) *state.Nominal {
	u := state.NewNominal()
	u.Reset(horizon, dims)
	return u
}

func TestGenerateShapeIsBatchHorizon3(t *testing.T) {
	g := NewGenerator(motionmodel.Differential, motionmodel.AckermannConfig{}, Limits{VXMax: 0.5, WZMax: 1.0}, StdDevs{VX: 0.1, WZ: 0.2}, 0.1, 0)
	g.Reset(10, 5)
	traj, err := g.Generate(geom.Pose2D{}, geom.Twist2D{}, newNominal(5, 2))
	require.NoError(t, err)
	assert.Equal(t, 10, traj.Batch())
	assert.Equal(t, 5, traj.Horizon())
}

func TestGenerateRespectsControlLimits(t *testing.T) {
	limits := Limits{VXMax: 0.5, VYMax: 0.3, WZMax: 1.0}
	g := NewGenerator(motionmodel.Omnidirectional, motionmodel.AckermannConfig{}, limits, StdDevs{VX: 2, VY: 2, WZ: 2}, 0.1, 1)
	g.Reset(50, 8)
	_, err := g.Generate(geom.Pose2D{}, geom.Twist2D{}, newNominal(8, 3))
	require.NoError(t, err)

	s := g.State()
	for b := 0; b < s.Batch(); b++ {
		for tt := 0; tt < s.Horizon(); tt++ {
			assert.LessOrEqual(t, math.Abs(float64(s.ControlsVX().At(b, tt))), limits.VXMax+1e-6)
			assert.LessOrEqual(t, math.Abs(float64(s.ControlsVY().At(b, tt))), limits.VYMax+1e-6)
			assert.LessOrEqual(t, math.Abs(float64(s.ControlsWZ().At(b, tt))), limits.WZMax+1e-6)
		}
	}
}

func TestGenerateDeterministicUnderSeed(t *testing.T) {
	make := func() *Trajectories {
		g := NewGenerator(motionmodel.Differential, motionmodel.AckermannConfig{}, Limits{VXMax: 0.5, WZMax: 1.0}, StdDevs{VX: 0.1, WZ: 0.2}, 0.1, 42)
		g.Reset(5, 4)
		traj, err := g.Generate(geom.Pose2D{}, geom.Twist2D{}, newNominal(4, 2))
		require.NoError(t, err)
		return traj
	}
	a := make()
	b := make()
	for bi := 0; bi < a.Batch(); bi++ {
		for tt := 0; tt < a.Horizon(); tt++ {
			ax, ay, ayaw := a.At(bi, tt)
			bx, by, byaw := b.At(bi, tt)
			assert.Equal(t, ax, bx)
			assert.Equal(t, ay, by)
			assert.Equal(t, ayaw, byaw)
		}
	}
}

func TestIntegrationConsistencyZeroYaw(t *testing.T) {
	nominal := newNominal(5, 2)
	for t := 0; t < 5; t++ {
		nominal.Set(t, 0, 1.0) // vx = 1
		nominal.Set(t, 1, 0.0) // wz = 0
	}
	// zero noise, zero std so the sampled control equals the nominal exactly
	g := NewGenerator(motionmodel.Differential, motionmodel.AckermannConfig{}, Limits{VXMax: 10, WZMax: 10}, StdDevs{}, 0.1, 7)
	g.Reset(1, 5)
	velocity := geom.Twist2D{Linear: r3.Vector{X: 1.0}}
	traj, err := g.Generate(geom.Pose2D{X: 0, Y: 0, Yaw: 0}, velocity, nominal)
	require.NoError(t, err)

	for tt := 0; tt < 5; tt++ {
		x, _, _ := traj.At(0, tt)
		want := 1.0 * 0.1 * float64(tt+1)
		assert.InDelta(t, want, x, 1e-4)
	}
}
