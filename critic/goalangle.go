package critic

import (
	"math"

	"github.com/nav-stack/mppicore/geom"
	"github.com/nav-stack/mppicore/paramset"
	"github.com/nav-stack/mppicore/rollout"
)

// GoalAngleCritic penalizes the angular distance between a trajectory's
// terminal heading and the path's terminal heading. This compares
// heading-to-heading rather than bearing-to-goal: the path's final pose
// already carries a heading in every scenario this controller drives, and
// heading-to-heading comparison avoids an atan2 over a vector that can be
// near-zero right at the goal.
type GoalAngleCritic struct {
	power  float64
	weight float64
}

// Configure implements Critic.
func (c *GoalAngleCritic) Configure(params paramset.Set) error {
	c.power = params.Float64("goal_angle_power", 1)
	c.weight = params.Float64("goal_angle_weight", 3.0)
	return nil
}

// Score implements Critic.
func (c *GoalAngleCritic) Score(pose geom.Pose2D, traj *rollout.Trajectories, path geom.Path, k []float32) error {
	if path.Empty() {
		return nil
	}
	goalYaw := path.Goal().Yaw
	last := traj.Horizon() - 1
	for b := 0; b < traj.Batch(); b++ {
		_, _, yaw := traj.At(b, last)
		dtheta := math.Abs(geom.AngleDiff(goalYaw, yaw))
		k[b] += powWeight(dtheta, c.weight, c.power)
	}
	return nil
}
