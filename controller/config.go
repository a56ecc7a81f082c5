package controller

import (
	"go.uber.org/multierr"

	"github.com/nav-stack/mppicore/motionmodel"
	"github.com/nav-stack/mppicore/paramset"
)

// Config is the flat parameter contract the controller is configured from,
// with every field defaulted so a zero-value paramset.Set still produces a
// runnable configuration.
type Config struct {
	ModelDt        float64
	TimeSteps      int
	BatchSize      int
	IterationCount int
	Temperature    float64

	VXMax, VYMax, WZMax float64
	VXStd, VYStd, WZStd float64

	MotionModel      string
	MinTurningRadius float64

	CriticNames  []string
	CriticParams map[string]paramset.Set

	BaseFrameID string

	Seed uint64
}

// defaultCriticNames lists the four built-in critics, in the order the
// scorer evaluates them.
func defaultCriticNames() []string {
	return []string{"GoalCritic", "GoalAngleCritic", "ReferenceCritic", "ObstacleCritic"}
}

// DefaultConfig returns the parameter contract's documented defaults.
func DefaultConfig() Config {
	return Config{
		ModelDt:          0.1,
		TimeSteps:        15,
		BatchSize:        200,
		IterationCount:   2,
		Temperature:      0.25,
		VXMax:            0.5,
		VYMax:            1.3,
		WZMax:            1.3,
		VXStd:            0.1,
		VYStd:            0.1,
		WZStd:            0.3,
		MotionModel:      "diff",
		MinTurningRadius: 1.0,
		CriticNames:      defaultCriticNames(),
		CriticParams:     map[string]paramset.Set{},
		BaseFrameID:      "base_link",
	}
}

// ConfigFromParams reads a Config out of a flat paramset.Set, applying
// DefaultConfig's values for every absent key. Every built-in critic's
// parameter keys (e.g. "goal_weight", "obstacle_power") are unique across
// critics, so each configured critic is simply handed the same flat params
// set rather than a narrowed per-critic view; each critic's own Configure
// only ever looks up the handful of keys it recognizes.
func ConfigFromParams(params paramset.Set) Config {
	def := DefaultConfig()
	criticNames := params.StringSlice("critics", def.CriticNames)
	criticParams := make(map[string]paramset.Set, len(criticNames))
	for _, name := range criticNames {
		criticParams[name] = params
	}

	cfg := Config{
		ModelDt:          params.Float64("model_dt", def.ModelDt),
		TimeSteps:        params.Int("time_steps", def.TimeSteps),
		BatchSize:        params.Int("batch_size", def.BatchSize),
		IterationCount:   params.Int("iteration_count", def.IterationCount),
		Temperature:      params.Float64("temperature", def.Temperature),
		VXMax:            params.Float64("vx_max", def.VXMax),
		VYMax:            params.Float64("vy_max", def.VYMax),
		WZMax:            params.Float64("wz_max", def.WZMax),
		VXStd:            params.Float64("vx_std", def.VXStd),
		VYStd:            params.Float64("vy_std", def.VYStd),
		WZStd:            params.Float64("wz_std", def.WZStd),
		MotionModel:      params.String("motion_model", def.MotionModel),
		MinTurningRadius: params.Float64("min_turning_radius", def.MinTurningRadius),
		CriticNames:      criticNames,
		CriticParams:     criticParams,
		BaseFrameID:      params.String("base_frame_id", def.BaseFrameID),
		Seed:             uint64(params.Int("seed", 0)),
	}
	return cfg
}

// Validate enforces the configuration-error conditions a controller must
// refuse to run with, returning every violation found (combined via
// multierr.Append) so a caller fixing one problem at a time doesn't have to
// re-run Configure repeatedly to discover the next one.
func (c Config) Validate() error {
	var err error
	if c.ModelDt <= 0 {
		err = multierr.Append(err, NewConfigurationError(errValue("model_dt must be positive")))
	}
	if c.BatchSize <= 0 {
		err = multierr.Append(err, NewConfigurationError(errValue("batch_size must be positive")))
	}
	if c.TimeSteps <= 0 {
		err = multierr.Append(err, NewConfigurationError(errValue("time_steps must be positive")))
	}
	if c.Temperature <= 0 {
		err = multierr.Append(err, NewConfigurationError(errValue("temperature must be positive")))
	}
	if _, parseErr := motionmodel.Parse(c.MotionModel); parseErr != nil {
		err = multierr.Append(err, NewConfigurationError(parseErr))
	}
	return err
}

type errValue string

func (e errValue) Error() string { return string(e) }
