package critic

import (
	"github.com/nav-stack/mppicore/geom"
	"github.com/nav-stack/mppicore/paramset"
	"github.com/nav-stack/mppicore/rollout"
)

// GoalCritic penalizes the terminal XY distance between a trajectory and
// the path's final (goal) pose: contribution = (weight * distance)^power.
type GoalCritic struct {
	power  float64
	weight float64
}

// Configure implements Critic.
func (c *GoalCritic) Configure(params paramset.Set) error {
	c.power = params.Float64("goal_power", 1)
	c.weight = params.Float64("goal_weight", 100)
	return nil
}

// Score implements Critic.
func (c *GoalCritic) Score(pose geom.Pose2D, traj *rollout.Trajectories, path geom.Path, k []float32) error {
	if path.Empty() {
		return nil
	}
	goal := path.Goal()
	last := traj.Horizon() - 1
	for b := 0; b < traj.Batch(); b++ {
		x, y, _ := traj.At(b, last)
		d := dist2D(x, y, goal.X, goal.Y)
		k[b] += powWeight(d, c.weight, c.power)
	}
	return nil
}
