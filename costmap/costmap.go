// Package costmap defines the read-only cost-grid provider the obstacle
// critic queries. The actual occupancy/cost grid is an external
// collaborator owned by the host; Grid here is only an in-memory stand-in
// so this repository's controller tests can run without a real costmap
// service.
package costmap

// Cost sentinel values, matching the standard occupancy-grid cost-byte
// convention: free space at one end, a band of inflated costs approaching
// an obstacle, then the inscribed-radius, lethal, and no-information
// sentinels.
const (
	Free          uint8 = 0
	Inscribed     uint8 = 253
	Lethal        uint8 = 254
	NoInformation uint8 = 255
)

// IsProhibitive reports whether cost denotes a cell the robot must not
// enter: the lethal sentinel, a no-information cell (treated as
// prohibitive since an unexplored cell cannot be proven safe), or the
// inscribed-radius sentinel (a guaranteed collision for any orientation,
// not merely an elevated risk like the inflated band below it).
func IsProhibitive(cost uint8) bool {
	return cost == Inscribed || cost == Lethal || cost == NoInformation
}

// IsInflated reports whether cost is in the inflated band (0, 253):
// non-zero, non-lethal, non-inscribed, non-no-information.
func IsInflated(cost uint8) bool {
	return cost > Free && cost < Inscribed
}

// Provider is the read-only cost grid collaborator. Callers must guarantee
// the grid is not mutated concurrently with a call to Cost or WorldToGrid;
// the host is expected to hold the relevant read lock for the controller's
// entire control-evaluation call.
type Provider interface {
	// WorldToGrid converts a world-frame (x, y) to grid indices. ok is false
	// when the point falls outside the grid.
	WorldToGrid(x, y float64) (i, j int, ok bool)
	// Cost returns the raw cost byte at grid cell (i, j).
	Cost(i, j int) uint8
}

// Grid is a simple dense in-memory Provider, useful as a test double and as
// a reference implementation of the WorldToGrid convention.
type Grid struct {
	OriginX, OriginY float64
	Resolution       float64
	Width, Height    int
	Cells            []uint8 // row-major, length Width*Height
}

// NewGrid returns a Grid of the given size with every cell free.
func NewGrid(width, height int, resolution, originX, originY float64) *Grid {
	return &Grid{
		OriginX:    originX,
		OriginY:    originY,
		Resolution: resolution,
		Width:      width,
		Height:     height,
		Cells:      make([]uint8, width*height),
	}
}

// WorldToGrid implements Provider.
func (g *Grid) WorldToGrid(x, y float64) (int, int, bool) {
	i := int((x - g.OriginX) / g.Resolution)
	j := int((y - g.OriginY) / g.Resolution)
	if i < 0 || j < 0 || i >= g.Width || j >= g.Height {
		return 0, 0, false
	}
	return i, j, true
}

// Cost implements Provider.
func (g *Grid) Cost(i, j int) uint8 {
	return g.Cells[j*g.Width+i]
}

// SetCost writes a cost value at grid cell (i, j); a cell outside the grid
// is silently ignored so tests can paint obstacles without worrying about
// edges.
func (g *Grid) SetCost(i, j int, cost uint8) {
	if i < 0 || j < 0 || i >= g.Width || j >= g.Height {
		return
	}
	g.Cells[j*g.Width+i] = cost
}

// SetRectLethal marks every cell whose center falls within [x0,x1]x[y0,y1]
// (world frame) as lethal.
func (g *Grid) SetRectLethal(x0, y0, x1, y1 float64) {
	for j := 0; j < g.Height; j++ {
		for i := 0; i < g.Width; i++ {
			x := g.OriginX + (float64(i)+0.5)*g.Resolution
			y := g.OriginY + (float64(j)+0.5)*g.Resolution
			if x >= x0 && x <= x1 && y >= y0 && y <= y1 {
				g.SetCost(i, j, Lethal)
			}
		}
	}
}
