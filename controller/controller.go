// Package controller implements the MPPI iteration loop: per tick, it
// samples and scores a batch of trajectories for IterationCount
// iterations, softmax-updates the nominal control sequence after each, and
// emits the nominal sequence's first row as the next commanded twist.
package controller

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/nav-stack/mppicore/costmap"
	"github.com/nav-stack/mppicore/critic"
	"github.com/nav-stack/mppicore/geom"
	"github.com/nav-stack/mppicore/motionmodel"
	"github.com/nav-stack/mppicore/mppilog"
	"github.com/nav-stack/mppicore/paramset"
	"github.com/nav-stack/mppicore/rollout"
	"github.com/nav-stack/mppicore/state"
)

// Controller is the receding-horizon MPPI optimizer. It holds a
// non-owning handle to the cost-grid provider and to a logger; all tensors
// (S inside generator, Γ, K, U) are owned by the controller and never
// shared with a caller.
type Controller struct {
	cfg      Config
	variant  motionmodel.Variant
	ackCfg   motionmodel.AckermannConfig
	provider costmap.Provider
	logger   mppilog.Logger

	generator *rollout.Generator
	scorer    *critic.Scorer
	nominal   *state.Nominal
	costs     []float32

	lastTrajectories *rollout.Trajectories

	activated bool
}

// New constructs an unconfigured Controller.
func New() *Controller {
	return &Controller{}
}

// Configure implements the host lifecycle callback: it reads params into a
// Config, validates it, and (re)builds every owned tensor and collaborator.
// The controller remains unusable (every call to EvalControl returns an
// error) until Configure succeeds.
func (c *Controller) Configure(params paramset.Set, provider costmap.Provider, logger mppilog.Logger) error {
	cfg := ConfigFromParams(params)
	if err := cfg.Validate(); err != nil {
		c.generator, c.scorer = nil, nil
		return err
	}
	variant, err := motionmodel.Parse(cfg.MotionModel)
	if err != nil {
		// Validate already rejects an unknown name at first selection; this
		// can't happen here, but fail closed rather than fall back silently.
		c.generator, c.scorer = nil, nil
		return NewConfigurationError(err)
	}

	c.cfg = cfg
	c.variant = variant
	c.ackCfg = motionmodel.AckermannConfig{MinTurningRadius: cfg.MinTurningRadius}
	c.provider = provider
	c.logger = logger

	c.generator = rollout.NewGenerator(
		variant,
		c.ackCfg,
		rollout.Limits{VXMax: cfg.VXMax, VYMax: cfg.VYMax, WZMax: cfg.WZMax},
		rollout.StdDevs{VX: cfg.VXStd, VY: cfg.VYStd, WZ: cfg.WZStd},
		float32(cfg.ModelDt),
		cfg.Seed,
	)
	c.scorer = &critic.Scorer{}
	if err := c.scorer.Configure(cfg.CriticNames, cfg.CriticParams, provider); err != nil {
		c.generator, c.scorer = nil, nil
		return NewConfigurationError(err)
	}
	c.nominal = state.NewNominal()
	c.costs = make([]float32, cfg.BatchSize)

	c.Reset()
	return nil
}

// Activate marks the controller ready to receive EvalControl calls. It has
// no resources of its own to acquire; the method exists to mirror the
// surrounding host's component lifecycle.
func (c *Controller) Activate() error {
	c.activated = true
	return nil
}

// Deactivate is the inverse of Activate.
func (c *Controller) Deactivate() error {
	c.activated = false
	return nil
}

// Cleanup releases the controller's tensors. A cleaned-up controller must
// be Configured again before use.
func (c *Controller) Cleanup() error {
	c.generator = nil
	c.scorer = nil
	c.nominal = nil
	c.costs = nil
	c.lastTrajectories = nil
	c.activated = false
	return nil
}

// Reset re-zeros the nominal control sequence U and reshapes every tensor
// for the current batch/horizon.
func (c *Controller) Reset() {
	dims := motionmodel.NewLayout(c.variant).ControlDims()
	c.nominal.Reset(c.cfg.TimeSteps, dims)
	c.generator.Reset(c.cfg.BatchSize, c.cfg.TimeSteps)
	if cap(c.costs) < c.cfg.BatchSize {
		c.costs = make([]float32, c.cfg.BatchSize)
	} else {
		c.costs = c.costs[:c.cfg.BatchSize]
	}
}

// SetMotionModel re-configures the motion model used by subsequent ticks.
// An unrecognized name is a RuntimeSoftWarning: the previous selection is
// kept, a warning is logged, and the error is returned.
func (c *Controller) SetMotionModel(name string) error {
	variant, err := motionmodel.Parse(name)
	if err != nil {
		if c.logger != nil {
			c.logger.Warnf("mppi: unknown motion model %q, keeping %v", name, c.variant)
		}
		return NewRuntimeSoftWarning(err)
	}
	c.variant = variant
	c.cfg.MotionModel = name
	c.generator = rollout.NewGenerator(
		variant,
		c.ackCfg,
		rollout.Limits{VXMax: c.cfg.VXMax, VYMax: c.cfg.VYMax, WZMax: c.cfg.WZMax},
		rollout.StdDevs{VX: c.cfg.VXStd, VY: c.cfg.VYStd, WZ: c.cfg.WZStd},
		float32(c.cfg.ModelDt),
		c.cfg.Seed,
	)
	c.Reset()
	return nil
}

// GeneratedTrajectories returns the last iteration's Γ, for an external
// debug publisher. The returned value aliases internal storage and must be
// treated as read-only.
func (c *Controller) GeneratedTrajectories() *rollout.Trajectories {
	return c.lastTrajectories
}

// EvalControl is the control entry point: given the current pose, current
// twist, and reference path, it runs IterationCount rollout/score/update
// iterations and returns the first row of the resulting nominal sequence
// as a stamped twist in the base frame.
func (c *Controller) EvalControl(pose geom.PoseStamped, velocity geom.Twist2D, path geom.Path) (geom.TwistStamped, error) {
	if c.generator == nil || c.scorer == nil {
		return geom.TwistStamped{}, NewConfigurationError(errValue("controller not configured"))
	}
	if path.Empty() && c.logger != nil {
		c.logger.Warnf("mppi: eval_control called with an empty path")
	}

	allLethal := true
	for i := 0; i < c.cfg.IterationCount; i++ {
		traj, err := c.generator.Generate(pose.Pose, velocity, c.nominal)
		if err != nil {
			return geom.TwistStamped{}, err
		}
		if err := c.scorer.Score(pose.Pose, traj, path, c.costs); err != nil {
			return geom.TwistStamped{}, err
		}
		if !allLethalBatch(c.costs) {
			allLethal = false
		}
		softmaxUpdate(c.nominal, c.generator.State(), c.costs, c.cfg.Temperature)
		c.lastTrajectories = traj
	}

	twist := firstRowTwist(c.nominal, c.variant)
	out := geom.TwistStamped{
		Twist:     twist,
		FrameID:   c.cfg.BaseFrameID,
		Timestamp: path.Stamp(),
	}
	if allLethal {
		return out, ErrInfeasiblePlan
	}
	return out, nil
}

func allLethalBatch(costs []float32) bool {
	for _, k := range costs {
		if k < critic.CostInf {
			return false
		}
	}
	return true
}

// firstRowTwist reads U[0, :] under variant's control layout and packages
// it as a Twist2D.
func firstRowTwist(nominal *state.Nominal, variant motionmodel.Variant) geom.Twist2D {
	layout := motionmodel.NewLayout(variant)
	var twist geom.Twist2D
	twist.Linear.X = float64(nominal.At(0, layout.VXCmdCol()))
	if layout.Holonomic() {
		twist.Linear.Y = float64(nominal.At(0, 1))
	}
	wzIdx := 1
	if layout.Holonomic() {
		wzIdx = 2
	}
	twist.Angular.Z = float64(nominal.At(0, wzIdx))
	return twist
}

// softmaxUpdate computes the MPPI softmax control update: subtract min(K)
// for numeric stability, exponentiate by -K/lambda, normalize to a convex
// combination, and collapse the batch of sampled controls S.controls into
// the new nominal sequence U.
func softmaxUpdate(nominal *state.Nominal, s *state.State, costs []float32, lambda float64) {
	batch := s.Batch()
	horizon := s.Horizon()
	dims := nominal.Dims()

	k64 := make([]float64, batch)
	for b := 0; b < batch; b++ {
		k64[b] = float64(costs[b])
	}
	minK := floats.Min(k64)

	weights := make([]float64, batch)
	for b := 0; b < batch; b++ {
		weights[b] = math.Exp(-(k64[b] - minK) / lambda)
	}
	sum := floats.Sum(weights)
	if sum > 0 {
		floats.Scale(1/sum, weights)
	}

	controls := s.Controls()
	for t := 0; t < horizon; t++ {
		for cDim := 0; cDim < dims; cDim++ {
			acc := 0.0
			for b := 0; b < batch; b++ {
				acc += weights[b] * float64(controls.At(b, t, cDim))
			}
			nominal.Set(t, cDim, float32(acc))
		}
	}
}
