// Package motionmodel defines the kinematic variants a rollout can be
// generated under (differential, omnidirectional, Ackermann), the control
// column layout each variant implies, and the per-variant velocity step
// function. The layout is computed once from the variant and passed around
// as a value — nothing here mutates shared layout state once a Layout
// exists, so one Layout can be safely handed to every batch row's view
// without synchronization.
package motionmodel

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Variant names a kinematic motion model.
type Variant int

const (
	// Differential is a two-wheeled differential-drive base: controls are
	// (vx, wz), no lateral velocity.
	Differential Variant = iota
	// Omnidirectional is a holonomic base: controls are (vx, vy, wz).
	Omnidirectional
	// Ackermann is a car-like base: controls are (vx, wz), with wz bounded
	// by the minimum turning radius.
	Ackermann
)

// Default is the motion model selected when none is configured.
const Default = Differential

// String renders the variant using the same short names parsed by Parse.
func (v Variant) String() string {
	switch v {
	case Differential:
		return "diff"
	case Omnidirectional:
		return "omni"
	case Ackermann:
		return "ackermann"
	default:
		return fmt.Sprintf("motionmodel.Variant(%d)", int(v))
	}
}

// ErrUnknownVariant is returned by Parse for a name that matches none of the
// recognized variants.
type ErrUnknownVariant struct {
	Name string
}

func (e *ErrUnknownVariant) Error() string {
	return fmt.Sprintf("unrecognized motion model %q", e.Name)
}

// Parse maps a configured motion-model name to a Variant. Unrecognized
// names return ErrUnknownVariant; callers at first selection treat this as
// a configuration error, and callers re-configuring an already-running
// controller treat it as a soft warning and keep the previous variant.
func Parse(name string) (Variant, error) {
	switch name {
	case "diff":
		return Differential, nil
	case "omni":
		return Omnidirectional, nil
	case "ackermann":
		return Ackermann, nil
	default:
		return Default, &ErrUnknownVariant{Name: name}
	}
}

// Variants lists every recognized variant, in a stable order.
func Variants() []Variant {
	return []Variant{Differential, Omnidirectional, Ackermann}
}

// IsHolonomic reports whether the variant admits an independent lateral
// velocity control.
func IsHolonomic(v Variant) bool {
	return v == Omnidirectional
}

// Layout is the immutable column layout for one motion model: offsets of
// the control, velocity, and dt columns within a state-tensor row. It is
// computed once from a Variant and handed to views by value.
type Layout struct {
	variant Variant

	// control column offsets; vyCmd is -1 when the variant has no lateral
	// control (its presence is what IsHolonomic reports).
	vxCmdCol, vyCmdCol, wzCmdCol int
	vxCol, vyCol, wzCol          int
	dtCol                        int
	width                        int
}

// NewLayout computes the column layout for variant.
func NewLayout(variant Variant) Layout {
	l := Layout{variant: variant}
	col := 0
	l.vxCmdCol = col
	col++
	if IsHolonomic(variant) {
		l.vyCmdCol = col
		col++
	} else {
		l.vyCmdCol = -1
	}
	l.wzCmdCol = col
	col++

	l.vxCol = col
	col++
	if IsHolonomic(variant) {
		l.vyCol = col
		col++
	} else {
		l.vyCol = -1
	}
	l.wzCol = col
	col++

	l.dtCol = col
	col++

	l.width = col
	return l
}

// Variant returns the motion model this layout was computed from.
func (l Layout) Variant() Variant { return l.variant }

// Holonomic reports whether this layout carries a lateral velocity column.
func (l Layout) Holonomic() bool { return IsHolonomic(l.variant) }

// Width is the number of columns in one row under this layout.
func (l Layout) Width() int { return l.width }

// ControlDims is the number of control columns (2 for diff/ackermann, 3 for
// omni), matching the nominal control sequence U's second dimension.
func (l Layout) ControlDims() int {
	if l.Holonomic() {
		return 3
	}
	return 2
}

// VXCmdCol, VYCmdCol, WZCmdCol, VXCol, VYCol, WZCol, DtCol return column
// offsets; the VY variants return -1 for non-holonomic layouts.
func (l Layout) VXCmdCol() int { return l.vxCmdCol }
func (l Layout) VYCmdCol() int { return l.vyCmdCol }
func (l Layout) WZCmdCol() int { return l.wzCmdCol }
func (l Layout) VXCol() int    { return l.vxCol }
func (l Layout) VYCol() int    { return l.vyCol }
func (l Layout) WZCol() int    { return l.wzCol }
func (l Layout) DtCol() int    { return l.dtCol }

// Row is a read-only view onto one row of velocity/control columns, used by
// Step.
type Row struct {
	VX, VY, WZ float64
	VXCmd      float64
	VYCmd      float64
	WZCmd      float64
}

// Velocity is the (vx, vy, wz) triple Step advances to.
type Velocity struct {
	VX, VY, WZ float64
}

// AckermannConfig bounds the Ackermann variant's curvature.
type AckermannConfig struct {
	MinTurningRadius float64
}

// ErrNoMinTurningRadius is returned by Step for an Ackermann variant
// configured with a non-positive turning radius.
var ErrNoMinTurningRadius = errors.New("ackermann motion model requires a positive minimum turning radius")

// Step advances a row's velocity one time step under variant. For
// Differential and Omnidirectional, the next velocity is simply the
// commanded velocity (first-order model, no dynamics). For Ackermann, wz is
// additionally clipped so that |wz| <= |vx| / MinTurningRadius.
func Step(variant Variant, row Row, cfg AckermannConfig) (Velocity, error) {
	switch variant {
	case Differential:
		return Velocity{VX: row.VXCmd, WZ: row.WZCmd}, nil
	case Omnidirectional:
		return Velocity{VX: row.VXCmd, VY: row.VYCmd, WZ: row.WZCmd}, nil
	case Ackermann:
		if cfg.MinTurningRadius <= 0 {
			return Velocity{}, ErrNoMinTurningRadius
		}
		wz := row.WZCmd
		maxWZ := math.Abs(row.VXCmd) / cfg.MinTurningRadius
		if wz > maxWZ {
			wz = maxWZ
		} else if wz < -maxWZ {
			wz = -maxWZ
		}
		return Velocity{VX: row.VXCmd, WZ: wz}, nil
	default:
		return Velocity{}, fmt.Errorf("motionmodel: Step called with unknown variant %v", variant)
	}
}
