package kinematic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-stack/mppicore/motionmodel"
	"github.com/nav-stack/mppicore/state"
)

func seedRow0(s *state.State, vx, wz float32) {
	for b := 0; b < s.Batch(); b++ {
		s.VelocitiesVX().Set(b, 0, vx)
		s.VelocitiesWZ().Set(b, 0, wz)
	}
}

func TestPropagateDifferentialHoldsConstantControl(t *testing.T) {
	s := state.New()
	layout := motionmodel.NewLayout(motionmodel.Differential)
	s.Reset(2, 4, layout, 0.1)
	seedRow0(s, 1.0, 0.2)
	for b := 0; b < 2; b++ {
		for tt := 0; tt < 4; tt++ {
			s.ControlsVX().Set(b, tt, 1.0)
			s.ControlsWZ().Set(b, tt, 0.2)
		}
	}

	require.NoError(t, Propagate(s, motionmodel.Differential, motionmodel.AckermannConfig{}))

	for b := 0; b < 2; b++ {
		for tt := 0; tt < 4; tt++ {
			assert.InDelta(t, 1.0, float64(s.VelocitiesVX().At(b, tt)), 1e-6)
			assert.InDelta(t, 0.2, float64(s.VelocitiesWZ().At(b, tt)), 1e-6)
		}
	}
}

func TestPropagateAckermannClipsEachStep(t *testing.T) {
	s := state.New()
	layout := motionmodel.NewLayout(motionmodel.Ackermann)
	s.Reset(1, 3, layout, 0.1)
	seedRow0(s, 1.0, 10.0)
	for tt := 0; tt < 3; tt++ {
		s.ControlsVX().Set(0, tt, 1.0)
		s.ControlsWZ().Set(0, tt, 10.0)
	}

	cfg := motionmodel.AckermannConfig{MinTurningRadius: 2.0}
	require.NoError(t, Propagate(s, motionmodel.Ackermann, cfg))

	for tt := 1; tt < 3; tt++ {
		assert.InDelta(t, 0.5, float64(s.VelocitiesWZ().At(0, tt)), 1e-6)
	}
}
