package motionmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		name    string
		want    Variant
		wantErr bool
	}{
		{"diff", Differential, false},
		{"omni", Omnidirectional, false},
		{"ackermann", Ackermann, false},
		{"bogus", Default, true},
	} {
		got, err := Parse(tc.name)
		if tc.wantErr {
			require.Error(t, err)
			var unknown *ErrUnknownVariant
			require.ErrorAs(t, err, &unknown)
		} else {
			require.NoError(t, err)
		}
		assert.Equal(t, tc.want, got)
	}
}

func TestIsHolonomic(t *testing.T) {
	assert.False(t, IsHolonomic(Differential))
	assert.True(t, IsHolonomic(Omnidirectional))
	assert.False(t, IsHolonomic(Ackermann))
}

func TestLayoutColumnsDistinctAndHolonomic(t *testing.T) {
	for _, v := range Variants() {
		l := NewLayout(v)
		assert.Equal(t, IsHolonomic(v), l.Holonomic())
		if l.Holonomic() {
			assert.Equal(t, 3, l.ControlDims())
			assert.NotEqual(t, -1, l.VYCmdCol())
			assert.NotEqual(t, -1, l.VYCol())
		} else {
			assert.Equal(t, 2, l.ControlDims())
			assert.Equal(t, -1, l.VYCmdCol())
			assert.Equal(t, -1, l.VYCol())
		}
		assert.Equal(t, l.Width()-1, l.DtCol())
	}
}

func TestStepDifferentialIsIdentity(t *testing.T) {
	v, err := Step(Differential, Row{VXCmd: 1.5, WZCmd: 0.3}, AckermannConfig{})
	require.NoError(t, err)
	assert.Equal(t, Velocity{VX: 1.5, WZ: 0.3}, v)
}

func TestStepOmniIsIdentity(t *testing.T) {
	v, err := Step(Omnidirectional, Row{VXCmd: 1, VYCmd: 2, WZCmd: 3}, AckermannConfig{})
	require.NoError(t, err)
	assert.Equal(t, Velocity{VX: 1, VY: 2, WZ: 3}, v)
}

func TestStepAckermannClipsCurvature(t *testing.T) {
	cfg := AckermannConfig{MinTurningRadius: 1.0}
	v, err := Step(Ackermann, Row{VXCmd: 1.0, WZCmd: 5.0}, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v.WZ, 1e-9)

	v, err = Step(Ackermann, Row{VXCmd: 1.0, WZCmd: -5.0}, cfg)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, v.WZ, 1e-9)

	v, err = Step(Ackermann, Row{VXCmd: 1.0, WZCmd: 0.2}, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, v.WZ, 1e-9)
}

func TestStepAckermannRequiresPositiveRadius(t *testing.T) {
	_, err := Step(Ackermann, Row{VXCmd: 1.0, WZCmd: 0.1}, AckermannConfig{MinTurningRadius: 0})
	require.ErrorIs(t, err, ErrNoMinTurningRadius)
}
