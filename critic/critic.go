// Package critic implements a pluggable cost-scoring pipeline: a Critic
// interface, four concrete critics, and a Scorer that loads an ordered list
// of them by name and aggregates their additive contributions into a
// per-trajectory cost vector.
package critic

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/nav-stack/mppicore/costmap"
	"github.com/nav-stack/mppicore/geom"
	"github.com/nav-stack/mppicore/paramset"
	"github.com/nav-stack/mppicore/rollout"
)

// CostInf is the sentinel, prohibitive-but-finite cost assigned to any
// trajectory that touches a lethal (or no-information) cell. It is finite
// rather than +Inf so the softmax update in controller stays numerically
// well-behaved even when every sampled trajectory is vetoed.
const CostInf float32 = 1e6

// Critic scores a trajectory batch, adding its non-negative contribution to
// the caller's cost vector k. Critics must be stateless between calls
// apart from their own Configure-time parameters, and order-independent:
// the final per-trajectory cost is simply the sum across critics.
type Critic interface {
	Configure(params paramset.Set) error
	Score(pose geom.Pose2D, traj *rollout.Trajectories, path geom.Path, k []float32) error
}

// registry maps a critic's configured name to a constructor: a fixed,
// compiled-in set of named critics rather than a dynamically loaded plugin
// mechanism, since the critic set this controller needs is closed and
// known at build time.
var registry = map[string]func() Critic{
	"GoalCritic":      func() Critic { return &GoalCritic{} },
	"GoalAngleCritic": func() Critic { return &GoalAngleCritic{} },
	"ReferenceCritic": func() Critic { return &ReferenceCritic{} },
	"ObstacleCritic":  func() Critic { return &ObstacleCritic{} },
}

// New constructs a registered critic by name.
func New(name string) (Critic, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("critic: unknown critic %q", name)
	}
	return ctor(), nil
}

func dist2D(x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	return math.Sqrt(dx*dx + dy*dy)
}

func powWeight(d, weight float64, power float64) float32 {
	return float32(math.Pow(weight*d, power))
}

// Scorer orchestrates an ordered list of critics: it loads them by name at
// Configure time and sums their contributions at Score time.
type Scorer struct {
	critics []Critic
}

// providerBinder is implemented by critics that need the non-owning
// costmap.Provider handle (currently just ObstacleCritic); Scorer.Configure
// binds it after construction rather than threading it through every
// Critic's Configure signature.
type providerBinder interface {
	SetProvider(provider costmap.Provider)
}

// Configure loads and configures every named critic, in order. An unknown
// critic name surfaces as a ConfigurationError-flavored wrapped error.
func (s *Scorer) Configure(names []string, perCriticParams map[string]paramset.Set, provider costmap.Provider) error {
	s.critics = make([]Critic, 0, len(names))
	for _, name := range names {
		c, err := New(name)
		if err != nil {
			return errors.Wrapf(err, "scorer: configuring critic list")
		}
		if binder, ok := c.(providerBinder); ok {
			binder.SetProvider(provider)
		}
		params := perCriticParams[name]
		if err := c.Configure(params); err != nil {
			return errors.Wrapf(err, "scorer: configuring critic %q", name)
		}
		s.critics = append(s.critics, c)
	}
	return nil
}

// Score zeroes k to shape [batch], then invokes every configured critic in
// order, each adding its contribution.
func (s *Scorer) Score(pose geom.Pose2D, traj *rollout.Trajectories, path geom.Path, k []float32) error {
	for i := range k {
		k[i] = 0
	}
	for _, c := range s.critics {
		if err := c.Score(pose, traj, path, k); err != nil {
			return err
		}
	}
	return nil
}

// meanOf is a small wrapper around gonum/stat.Mean for an unweighted slice,
// named so call sites read as "mean of distances" rather than a raw gonum
// call with a nil weights argument repeated at every site.
func meanOf(xs []float64) float64 {
	return stat.Mean(xs, nil)
}
