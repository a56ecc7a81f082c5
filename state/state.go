// Package state implements the batched control/velocity/time-delta tensor:
// a single flat buffer addressed by an explicit stride, with named column
// views that alias the backing storage rather than copy out of it.
package state

import "github.com/nav-stack/mppicore/motionmodel"

// ColumnView is a read/write view onto one named column of the state
// tensor, aliasing the backing buffer. Its lifetime is tied to the State it
// was produced from; callers must not retain one across a Reset.
type ColumnView struct {
	data          []float32
	batch, horizon int
	width         int
	offset        int
}

// At returns the value at batch row b, time step t.
func (v ColumnView) At(b, t int) float32 {
	return v.data[(b*v.horizon+t)*v.width+v.offset]
}

// Set writes the value at batch row b, time step t.
func (v ColumnView) Set(b, t int, val float32) {
	v.data[(b*v.horizon+t)*v.width+v.offset] = val
}

// Batch and Horizon report the view's shape.
func (v ColumnView) Batch() int   { return v.batch }
func (v ColumnView) Horizon() int { return v.horizon }

// BlockView is a read/write view onto a contiguous run of columns (e.g. all
// control columns or all velocity columns), aliasing the backing buffer.
type BlockView struct {
	data           []float32
	batch, horizon int
	width          int
	offset         int
	numCols        int
}

// At returns the value of column c (0-indexed within the block) at (b, t).
func (v BlockView) At(b, t, c int) float32 {
	return v.data[(b*v.horizon+t)*v.width+v.offset+c]
}

// Set writes the value of column c (0-indexed within the block) at (b, t).
func (v BlockView) Set(b, t, c int, val float32) {
	v.data[(b*v.horizon+t)*v.width+v.offset+c] = val
}

// NumCols is the number of columns this block spans.
func (v BlockView) NumCols() int { return v.numCols }

// Batch and Horizon report the view's shape.
func (v BlockView) Batch() int   { return v.batch }
func (v BlockView) Horizon() int { return v.horizon }

// State is the batched [batch, horizon, columns] tensor: control columns,
// velocity columns, and a constant dt column, laid out per motionmodel.Layout.
type State struct {
	layout         motionmodel.Layout
	batch, horizon int
	dt             float32
	data           []float32
}

// New constructs an empty State; call Reset before use.
func New() *State {
	return &State{}
}

// Reset sets the batch/horizon/layout, reallocates the backing buffer only
// when its capacity is too small for the new shape (otherwise it is
// resliced), zero-fills every entry, and writes dt to every row's dt column.
func (s *State) Reset(batch, horizon int, layout motionmodel.Layout, dt float32) {
	s.layout = layout
	s.batch = batch
	s.horizon = horizon
	s.dt = dt

	size := batch * horizon * layout.Width()
	if cap(s.data) < size {
		s.data = make([]float32, size)
	} else {
		s.data = s.data[:size]
		for i := range s.data {
			s.data[i] = 0
		}
	}

	dtCol := s.column(layout.DtCol())
	for b := 0; b < batch; b++ {
		for t := 0; t < horizon; t++ {
			dtCol.Set(b, t, dt)
		}
	}
}

// SetLayout recomputes column offsets for a new motion-model variant without
// reallocating storage; callers are expected to Reset afterward since column
// semantics (and likely shape) changed.
func (s *State) SetLayout(layout motionmodel.Layout) {
	s.layout = layout
}

// Layout returns the layout currently governing this state's columns.
func (s *State) Layout() motionmodel.Layout { return s.layout }

// Batch and Horizon report the tensor's current shape.
func (s *State) Batch() int   { return s.batch }
func (s *State) Horizon() int { return s.horizon }

// DT returns the configured step length written to every row.
func (s *State) DT() float32 { return s.dt }

func (s *State) column(offset int) ColumnView {
	return ColumnView{data: s.data, batch: s.batch, horizon: s.horizon, width: s.layout.Width(), offset: offset}
}

func (s *State) block(offset, numCols int) BlockView {
	return BlockView{data: s.data, batch: s.batch, horizon: s.horizon, width: s.layout.Width(), offset: offset, numCols: numCols}
}

// Controls returns a view over every control column (vx_cmd, [vy_cmd],
// wz_cmd), in that order.
func (s *State) Controls() BlockView {
	return s.block(s.layout.VXCmdCol(), s.layout.ControlDims())
}

// Velocities returns a view over every velocity column (vx, [vy], wz), in
// that order. Assumes a holonomic layout's vx/vy/wz columns are contiguous,
// which NewLayout guarantees.
func (s *State) Velocities() BlockView {
	n := 2
	if s.layout.Holonomic() {
		n = 3
	}
	return s.block(s.layout.VXCol(), n)
}

// ControlsVX, ControlsVY, ControlsWZ return single-column views over the
// named control axis. ControlsVY panics on a non-holonomic layout: a
// non-holonomic motion model has no lateral control column to view.
func (s *State) ControlsVX() ColumnView { return s.column(s.layout.VXCmdCol()) }
func (s *State) ControlsVY() ColumnView {
	if s.layout.VYCmdCol() < 0 {
		panic("state: ControlsVY accessed on a non-holonomic layout")
	}
	return s.column(s.layout.VYCmdCol())
}
func (s *State) ControlsWZ() ColumnView { return s.column(s.layout.WZCmdCol()) }

// VelocitiesVX, VelocitiesVY, VelocitiesWZ return single-column views over
// the named velocity axis. VelocitiesVY panics on a non-holonomic layout.
func (s *State) VelocitiesVX() ColumnView { return s.column(s.layout.VXCol()) }
func (s *State) VelocitiesVY() ColumnView {
	if s.layout.VYCol() < 0 {
		panic("state: VelocitiesVY accessed on a non-holonomic layout")
	}
	return s.column(s.layout.VYCol())
}
func (s *State) VelocitiesWZ() ColumnView { return s.column(s.layout.WZCol()) }

// Row extracts the control/velocity values at (b, t) as a motionmodel.Row,
// ready to hand to motionmodel.Step.
func (s *State) Row(b, t int) motionmodel.Row {
	row := motionmodel.Row{
		VX:    float64(s.VelocitiesVX().At(b, t)),
		WZ:    float64(s.VelocitiesWZ().At(b, t)),
		VXCmd: float64(s.ControlsVX().At(b, t)),
		WZCmd: float64(s.ControlsWZ().At(b, t)),
	}
	if s.layout.Holonomic() {
		row.VY = float64(s.VelocitiesVY().At(b, t))
		row.VYCmd = float64(s.ControlsVY().At(b, t))
	}
	return row
}

// SetVelocity writes a motionmodel.Velocity into row (b, t)'s velocity
// columns.
func (s *State) SetVelocity(b, t int, vel motionmodel.Velocity) {
	s.VelocitiesVX().Set(b, t, float32(vel.VX))
	s.VelocitiesWZ().Set(b, t, float32(vel.WZ))
	if s.layout.Holonomic() {
		s.VelocitiesVY().Set(b, t, float32(vel.VY))
	}
}

// Nominal is the warm-started nominal control sequence U: a dense
// [horizon, control_dims] array.
type Nominal struct {
	horizon, dims int
	data          []float32
}

// NewNominal constructs an empty Nominal; call Reset before use.
func NewNominal() *Nominal {
	return &Nominal{}
}

// Reset (re)allocates for the given shape and zero-fills: U is re-zeroed on
// every controller Reset rather than carried over at a new shape.
func (u *Nominal) Reset(horizon, dims int) {
	u.horizon, u.dims = horizon, dims
	size := horizon * dims
	if cap(u.data) < size {
		u.data = make([]float32, size)
	} else {
		u.data = u.data[:size]
		for i := range u.data {
			u.data[i] = 0
		}
	}
}

// Horizon and Dims report the sequence's shape.
func (u *Nominal) Horizon() int { return u.horizon }
func (u *Nominal) Dims() int    { return u.dims }

// At returns the control value for column c at time step t.
func (u *Nominal) At(t, c int) float32 {
	return u.data[t*u.dims+c]
}

// Set writes the control value for column c at time step t.
func (u *Nominal) Set(t, c int, val float32) {
	u.data[t*u.dims+c] = val
}
