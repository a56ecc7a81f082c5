// Package geom holds the small set of planar pose and velocity types shared
// across the controller. It intentionally stays 2D: every motion model this
// repository supports (differential, omnidirectional, Ackermann) lives on
// the ground plane, so a full 6-DOF pose/quaternion framework is more
// machinery than the domain needs.
package geom

import (
	"math"
	"time"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose2D is a robot or path pose in the world frame.
type Pose2D struct {
	X, Y, Yaw float64
}

// Twist2D is a commanded or measured velocity in the base frame. Linear.Y is
// only meaningful for holonomic motion models; Angular.X and Angular.Y are
// always zero for a ground robot but are carried so the type matches the
// linear/angular r3.Vector convention used for base velocity commands.
type Twist2D struct {
	Linear  r3.Vector
	Angular r3.Vector
}

// VX, VY, WZ are convenience accessors over the twist's linear/angular axes.
func (t Twist2D) VX() float64 { return t.Linear.X }
func (t Twist2D) VY() float64 { return t.Linear.Y }
func (t Twist2D) WZ() float64 { return t.Angular.Z }

// PoseStamped pairs a Pose2D with the frame and time it was measured in.
type PoseStamped struct {
	Pose      Pose2D
	FrameID   string
	Timestamp time.Time
}

// TwistStamped pairs a Twist2D with the frame it is commanded in and the
// timestamp it should be published under.
type TwistStamped struct {
	Twist     Twist2D
	FrameID   string
	Timestamp time.Time
}

// Path is an ordered sequence of stamped reference poses, goal last.
type Path []PoseStamped

// Goal returns the last pose of the path. Callers must check Empty first.
func (p Path) Goal() Pose2D {
	return p[len(p)-1].Pose
}

// Empty reports whether the path carries no poses at all.
func (p Path) Empty() bool {
	return len(p) == 0
}

// Stamp returns the timestamp of the path's final pose, used to stamp the
// controller's output twist. Returns the zero time for an empty path.
func (p Path) Stamp() time.Time {
	if p.Empty() {
		return time.Time{}
	}
	return p[len(p)-1].Timestamp
}

// QuaternionFromYaw returns the unit quaternion representing a rotation of
// yaw radians about the Z axis. PoseStamped itself carries yaw directly in
// its Pose2D, not a quaternion.
func QuaternionFromYaw(yaw float64) quat.Number {
	half := yaw / 2
	return quat.Number{Real: math.Cos(half), Kmag: math.Sin(half)}
}

// YawFromQuaternion extracts the Z-axis (yaw) rotation from a quaternion,
// ignoring any roll/pitch component it may carry.
func YawFromQuaternion(q quat.Number) float64 {
	sinYaw := 2 * (q.Real*q.Kmag + q.Imag*q.Jmag)
	cosYaw := 1 - 2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag)
	return math.Atan2(sinYaw, cosYaw)
}

// NormalizeAngle wraps an angle into (-pi, pi], the convention every angular
// critic in this repository expects its inputs in.
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta+math.Pi, 2*math.Pi)
	if theta <= 0 {
		theta += 2 * math.Pi
	}
	return theta - math.Pi
}

// AngleDiff returns the signed shortest angular distance from a to b, in
// (-pi, pi].
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(b - a)
}
