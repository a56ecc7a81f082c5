// Package rollout implements the sampling/clipping/propagation/integration
// pipeline that turns a nominal control sequence into a batch of noised,
// dynamically-feasible XY-yaw trajectories.
package rollout

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nav-stack/mppicore/geom"
	"github.com/nav-stack/mppicore/kinematic"
	"github.com/nav-stack/mppicore/motionmodel"
	"github.com/nav-stack/mppicore/state"
)

// randSource adapts *rand.Rand to the rand.Source interface expected by
// gonum/stat/distuv (which takes a uint64 seed, unlike math/rand.Rand.Seed).
type randSource struct{ r *rand.Rand }

func (s randSource) Uint64() uint64   { return s.r.Uint64() }
func (s randSource) Seed(seed uint64) { s.r.Seed(int64(seed)) }

// Limits bounds each control column.
type Limits struct {
	VXMax, VYMax, WZMax float64
}

// StdDevs is the per-column Gaussian noise standard deviation used to
// sample perturbed control sequences.
type StdDevs struct {
	VX, VY, WZ float64
}

// Trajectories is the generated [batch, horizon, 3] (x, y, yaw) tensor Γ.
type Trajectories struct {
	batch, horizon int
	data           []float32 // flat, stride 3: x, y, yaw
}

func newTrajectories(batch, horizon int) *Trajectories {
	return &Trajectories{batch: batch, horizon: horizon, data: make([]float32, batch*horizon*3)}
}

func (g *Trajectories) reset(batch, horizon int) {
	size := batch * horizon * 3
	if cap(g.data) < size {
		g.data = make([]float32, size)
	} else {
		g.data = g.data[:size]
	}
	g.batch, g.horizon = batch, horizon
}

// Batch and Horizon report the tensor's shape.
func (g *Trajectories) Batch() int   { return g.batch }
func (g *Trajectories) Horizon() int { return g.horizon }

func (g *Trajectories) idx(b, t int) int { return (b*g.horizon + t) * 3 }

// At returns the (x, y, yaw) triple for batch row b at time step t.
func (g *Trajectories) At(b, t int) (x, y, yaw float64) {
	i := g.idx(b, t)
	return float64(g.data[i]), float64(g.data[i+1]), float64(g.data[i+2])
}

func (g *Trajectories) set(b, t int, x, y, yaw float64) {
	i := g.idx(b, t)
	g.data[i], g.data[i+1], g.data[i+2] = float32(x), float32(y), float32(yaw)
}

// Generator owns the batch/horizon-sized scratch state and RNG used to turn
// a nominal control sequence into a trajectory batch every iteration.
type Generator struct {
	variant motionmodel.Variant
	ackCfg  motionmodel.AckermannConfig
	limits  Limits
	stds    StdDevs
	modelDt float32

	batch, horizon int
	s              *state.State
	traj           *Trajectories

	rng     *rand.Rand
	noiseVX distuv.Normal
	noiseVY distuv.Normal
	noiseWZ distuv.Normal
}

// NewGenerator constructs a Generator; call Reset before the first Generate.
func NewGenerator(variant motionmodel.Variant, ackCfg motionmodel.AckermannConfig, limits Limits, stds StdDevs, modelDt float32, seed uint64) *Generator {
	rng := rand.New(rand.NewSource(int64(seed)))
	g := &Generator{
		variant: variant,
		ackCfg:  ackCfg,
		limits:  limits,
		stds:    stds,
		modelDt: modelDt,
		s:       state.New(),
		rng:     rng,
	}
	src := randSource{rng}
	g.noiseVX = distuv.Normal{Mu: 0, Sigma: stds.VX, Src: src}
	g.noiseVY = distuv.Normal{Mu: 0, Sigma: stds.VY, Src: src}
	g.noiseWZ = distuv.Normal{Mu: 0, Sigma: stds.WZ, Src: src}
	return g
}

// Reset (re)sizes the generator's scratch state for a new batch/horizon.
func (g *Generator) Reset(batch, horizon int) {
	g.batch, g.horizon = batch, horizon
	layout := motionmodel.NewLayout(g.variant)
	g.s.Reset(batch, horizon, layout, g.modelDt)
	if g.traj == nil {
		g.traj = newTrajectories(batch, horizon)
	} else {
		g.traj.reset(batch, horizon)
	}
}

// State exposes the generator's backing state tensor S, e.g. for the
// softmax update step which reads the sampled (and clipped) controls.
func (g *Generator) State() *state.State { return g.s }

// Generate samples noise, adds it to the nominal sequence, clips to limits,
// seeds row-0 velocities from the measured twist, propagates the kinematic
// model, and integrates the result into world-frame poses.
func (g *Generator) Generate(pose geom.Pose2D, velocity geom.Twist2D, nominal *state.Nominal) (*Trajectories, error) {
	g.sampleAndClip(nominal)
	g.seedVelocities(velocity)
	if err := kinematic.Propagate(g.s, g.variant, g.ackCfg); err != nil {
		return nil, err
	}
	g.integrate(pose)
	return g.traj, nil
}

func (g *Generator) sampleAndClip(nominal *state.Nominal) {
	holonomic := g.s.Layout().Holonomic()
	for b := 0; b < g.batch; b++ {
		for t := 0; t < g.horizon; t++ {
			vx := nominal.At(t, 0) + float32(g.noiseVX.Rand())
			vx = clip32(vx, float32(g.limits.VXMax))
			g.s.ControlsVX().Set(b, t, vx)

			var wzIdx = 1
			if holonomic {
				vy := nominal.At(t, 1) + float32(g.noiseVY.Rand())
				vy = clip32(vy, float32(g.limits.VYMax))
				g.s.ControlsVY().Set(b, t, vy)
				wzIdx = 2
			}

			wz := nominal.At(t, wzIdx) + float32(g.noiseWZ.Rand())
			wz = clip32(wz, float32(g.limits.WZMax))
			if g.variant == motionmodel.Ackermann && g.ackCfg.MinTurningRadius > 0 {
				maxWZ := float32(float64(vx) / g.ackCfg.MinTurningRadius)
				wz = clip32(wz, absf32(maxWZ))
			}
			g.s.ControlsWZ().Set(b, t, wz)
		}
	}
}

func clip32(v, limit float32) float32 {
	if limit < 0 {
		limit = -limit
	}
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (g *Generator) seedVelocities(velocity geom.Twist2D) {
	vx, vy, wz := float32(velocity.VX()), float32(velocity.VY()), float32(velocity.WZ())
	for b := 0; b < g.batch; b++ {
		g.s.VelocitiesVX().Set(b, 0, vx)
		g.s.VelocitiesWZ().Set(b, 0, wz)
		if g.s.Layout().Holonomic() {
			g.s.VelocitiesVY().Set(b, 0, vy)
		}
	}
}

// integrate computes, per batch row, cumulative yaw and XY position from
// the propagated velocity columns. Position deltas use the yaw at the
// *start* of each step (the heading the robot was actually driving at),
// while the emitted yaw column is the post-step yaw.
func (g *Generator) integrate(pose geom.Pose2D) {
	holonomic := g.s.Layout().Holonomic()
	dt := float64(g.s.DT())

	wz := make([]float64, g.horizon)
	vx := make([]float64, g.horizon)
	vy := make([]float64, g.horizon)
	yawDelta := make([]float64, g.horizon)
	yaw := make([]float64, g.horizon)
	yawOffset := make([]float64, g.horizon)
	dx := make([]float64, g.horizon)
	dy := make([]float64, g.horizon)
	xCum := make([]float64, g.horizon)
	yCum := make([]float64, g.horizon)

	for b := 0; b < g.batch; b++ {
		for t := 0; t < g.horizon; t++ {
			wz[t] = float64(g.s.VelocitiesWZ().At(b, t)) * dt
			vx[t] = float64(g.s.VelocitiesVX().At(b, t))
			if holonomic {
				vy[t] = float64(g.s.VelocitiesVY().At(b, t))
			} else {
				vy[t] = 0
			}
		}
		floats.CumSum(yawDelta, wz)
		for t := 0; t < g.horizon; t++ {
			yaw[t] = pose.Yaw + yawDelta[t]
			if t == 0 {
				yawOffset[t] = pose.Yaw
			} else {
				yawOffset[t] = yaw[t-1]
			}
		}
		for t := 0; t < g.horizon; t++ {
			c, s := math.Cos(yawOffset[t]), math.Sin(yawOffset[t])
			dxStep := vx[t]*c - vy[t]*s
			dyStep := vx[t]*s + vy[t]*c
			dx[t] = dxStep * dt
			dy[t] = dyStep * dt
		}
		floats.CumSum(xCum, dx)
		floats.CumSum(yCum, dy)
		for t := 0; t < g.horizon; t++ {
			g.traj.set(b, t, pose.X+xCum[t], pose.Y+yCum[t], yaw[t])
		}
	}
}
