package critic

import (
	"github.com/nav-stack/mppicore/costmap"
	"github.com/nav-stack/mppicore/geom"
	"github.com/nav-stack/mppicore/paramset"
	"github.com/nav-stack/mppicore/rollout"
)

// ObstacleCritic queries the cost grid at every trajectory sample. A
// trajectory touching any prohibitive cell (inscribed, lethal, or
// no-information) has its entire contribution set to CostInf; otherwise the
// contribution is (weight * meanInflated)^power over the grid's
// inflated-cost channel, normalized to [0, 1].
type ObstacleCritic struct {
	power    float64
	weight   float64
	provider costmap.Provider
}

// NewObstacleCritic constructs an ObstacleCritic bound to a cost-grid
// provider. The provider is a non-owning handle: its lifetime and mutation
// are the host's responsibility.
func NewObstacleCritic(provider costmap.Provider) *ObstacleCritic {
	return &ObstacleCritic{provider: provider}
}

// Configure implements Critic.
func (c *ObstacleCritic) Configure(params paramset.Set) error {
	c.power = params.Float64("obstacle_power", 1)
	c.weight = params.Float64("obstacle_weight", 1.0)
	return nil
}

// SetProvider rebinds the non-owning cost-grid handle, used when the
// controller's Configure is called with a new costmap provider.
func (c *ObstacleCritic) SetProvider(provider costmap.Provider) {
	c.provider = provider
}

// Score implements Critic.
func (c *ObstacleCritic) Score(pose geom.Pose2D, traj *rollout.Trajectories, path geom.Path, k []float32) error {
	if c.provider == nil {
		return nil
	}
	const inflatedMax = float64(costmap.Inscribed - 1)
	horizon := traj.Horizon()
	inflated := make([]float64, 0, horizon)
	for b := 0; b < traj.Batch(); b++ {
		lethal := false
		inflated = inflated[:0]
		for t := 0; t < horizon; t++ {
			x, y, _ := traj.At(b, t)
			i, j, ok := c.provider.WorldToGrid(x, y)
			if !ok {
				// A sample outside the grid's bounds contributes nothing
				// rather than being treated as lethal or inflated: a wide
				// sampling distribution routinely reaches past the grid's
				// edge on early ticks, and the grid itself is assumed to
				// cover every cell the robot could plausibly occupy soon.
				continue
			}
			cost := c.provider.Cost(i, j)
			if costmap.IsProhibitive(cost) {
				lethal = true
				break
			}
			if costmap.IsInflated(cost) {
				inflated = append(inflated, float64(cost)/inflatedMax)
			} else {
				inflated = append(inflated, 0)
			}
		}
		if lethal {
			k[b] += CostInf
			continue
		}
		if len(inflated) == 0 {
			continue
		}
		mean := meanOf(inflated)
		k[b] += powWeight(mean, c.weight, c.power)
	}
	return nil
}
