package critic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-stack/mppicore/costmap"
	"github.com/nav-stack/mppicore/geom"
	"github.com/nav-stack/mppicore/motionmodel"
	"github.com/nav-stack/mppicore/paramset"
	"github.com/nav-stack/mppicore/rollout"
	"github.com/nav-stack/mppicore/state"
)

func straightTrajectory(batch, horizon int, dx float64) *rollout.Trajectories {
	nominal := state.NewNominal()
	nominal.Reset(horizon, 2)
	vx := dx / (float64(horizon) * 0.1)
	for t := 0; t < horizon; t++ {
		nominal.Set(t, 0, float32(vx))
	}
	g := rollout.NewGenerator(motionmodel.Differential, motionmodel.AckermannConfig{}, rollout.Limits{VXMax: 10, WZMax: 10}, rollout.StdDevs{}, 0.1, 0)
	g.Reset(batch, horizon)
	traj, err := g.Generate(geom.Pose2D{}, geom.Twist2D{}, nominal)
	if err != nil {
		panic(err)
	}
	return traj
}

func pathAlongX(n int, length float64) geom.Path {
	path := make(geom.Path, n)
	for i := 0; i < n; i++ {
		path[i] = geom.PoseStamped{
			Pose:      geom.Pose2D{X: length * float64(i) / float64(n-1)},
			Timestamp: time.Unix(0, 0),
		}
	}
	return path
}

func TestGoalCriticPenalizesDistance(t *testing.T) {
	c := &GoalCritic{}
	require.NoError(t, c.Configure(paramset.Set{}))
	traj := straightTrajectory(1, 5, 0.0)
	path := pathAlongX(10, 1.0)
	k := make([]float32, 1)
	require.NoError(t, c.Score(geom.Pose2D{}, traj, path, k))
	assert.Greater(t, k[0], float32(0))
}

func TestGoalAngleCriticZeroWhenAligned(t *testing.T) {
	c := &GoalAngleCritic{}
	require.NoError(t, c.Configure(paramset.Set{}))
	traj := straightTrajectory(1, 5, 1.0)
	path := pathAlongX(2, 1.0) // heading 0 implicitly since all poses have Yaw 0
	k := make([]float32, 1)
	require.NoError(t, c.Score(geom.Pose2D{}, traj, path, k))
	assert.InDelta(t, 0, k[0], 1e-5)
}

func TestReferenceCriticZeroForShortPath(t *testing.T) {
	c := &ReferenceCritic{}
	require.NoError(t, c.Configure(paramset.Set{}))
	traj := straightTrajectory(1, 5, 1.0)
	k := make([]float32, 1)
	require.NoError(t, c.Score(geom.Pose2D{}, traj, geom.Path{}, k))
	assert.Equal(t, float32(0), k[0])
}

func TestObstacleCriticVetoesLethalTrajectory(t *testing.T) {
	grid := costmap.NewGrid(100, 100, 0.01, -0.5, -0.5)
	grid.SetRectLethal(0.3, -0.2, 0.4, 0.2)

	c := NewObstacleCritic(grid)
	require.NoError(t, c.Configure(paramset.Set{}))

	traj := straightTrajectory(1, 15, 1.0) // passes straight through the rectangle
	k := make([]float32, 1)
	require.NoError(t, c.Score(geom.Pose2D{}, traj, geom.Path{}, k))
	assert.Equal(t, CostInf, k[0])
}

func TestObstacleCriticFreeGridNoContribution(t *testing.T) {
	grid := costmap.NewGrid(100, 100, 0.01, -0.5, -0.5)
	c := NewObstacleCritic(grid)
	require.NoError(t, c.Configure(paramset.Set{}))

	traj := straightTrajectory(1, 5, 1.0)
	k := make([]float32, 1)
	require.NoError(t, c.Score(geom.Pose2D{}, traj, geom.Path{}, k))
	assert.Equal(t, float32(0), k[0])
}

func TestScorerUnknownCriticErrors(t *testing.T) {
	s := &Scorer{}
	err := s.Configure([]string{"NotARealCritic"}, nil, nil)
	require.Error(t, err)
}

func TestScorerSumsAdditively(t *testing.T) {
	s := &Scorer{}
	require.NoError(t, s.Configure([]string{"GoalCritic", "GoalAngleCritic"}, map[string]paramset.Set{}, nil))
	traj := straightTrajectory(1, 5, 0.0)
	path := pathAlongX(10, 1.0)
	k := make([]float32, 1)
	require.NoError(t, s.Score(geom.Pose2D{}, traj, path, k))
	assert.Greater(t, k[0], float32(0))
}
