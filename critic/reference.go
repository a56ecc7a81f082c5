package critic

import (
	"math"

	"github.com/nav-stack/mppicore/geom"
	"github.com/nav-stack/mppicore/paramset"
	"github.com/nav-stack/mppicore/rollout"
)

// ReferenceCritic penalizes a trajectory's mean distance from the reference
// path: contribution = (weight * meanDistance)^power. A path shorter than
// two poses has no segment to measure distance against, so it contributes
// nothing rather than comparing against a single, directionless point.
type ReferenceCritic struct {
	power  float64
	weight float64
}

// Configure implements Critic.
func (c *ReferenceCritic) Configure(params paramset.Set) error {
	c.power = params.Float64("reference_power", 1)
	c.weight = params.Float64("reference_weight", 20)
	return nil
}

// Score implements Critic.
func (c *ReferenceCritic) Score(pose geom.Pose2D, traj *rollout.Trajectories, path geom.Path, k []float32) error {
	if len(path) < 2 {
		return nil
	}
	horizon := traj.Horizon()
	distances := make([]float64, horizon)
	for b := 0; b < traj.Batch(); b++ {
		for t := 0; t < horizon; t++ {
			x, y, _ := traj.At(b, t)
			distances[t] = distanceToPath(x, y, path)
		}
		mean := meanOf(distances)
		k[b] += powWeight(mean, c.weight, c.power)
	}
	return nil
}

// distanceToPath returns the minimum distance from (x, y) to any segment of
// path, projecting onto each segment rather than only comparing to path
// vertices.
func distanceToPath(x, y float64, path geom.Path) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(path); i++ {
		a := path[i].Pose
		b := path[i+1].Pose
		d := distanceToSegment(x, y, a.X, a.Y, b.X, b.Y)
		if d < best {
			best = d
		}
	}
	return best
}

func distanceToSegment(px, py, ax, ay, bx, by float64) float64 {
	abx, aby := bx-ax, by-ay
	length2 := abx*abx + aby*aby
	if length2 == 0 {
		return dist2D(px, py, ax, ay)
	}
	t := ((px-ax)*abx + (py-ay)*aby) / length2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	projX, projY := ax+t*abx, ay+t*aby
	return dist2D(px, py, projX, projY)
}
