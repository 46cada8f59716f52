package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection on a
// bounded playfield. Objects are inserted by position and index, then nearby
// objects can be queried by radius.
//
// Positions outside the playfield are clamped into the border cells, so
// objects that have not yet entered the screen are still found.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of objects that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given playfield dimensions.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(pos Vector2, index int) {
	col, row := g.posToCell(pos.X, pos.Y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryRadius calls fn for each item index stored in a cell that intersects
// the square of half-size radius around pos. Callers still run the exact
// distance test; the grid only filters out far-away items.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryRadius(pos Vector2, radius float64, fn func(index int) bool) {
	minCol, minRow := g.posToCell(pos.X-radius, pos.Y-radius)
	maxCol, maxRow := g.posToCell(pos.X+radius, pos.Y+radius)

	for r := minRow; r <= maxRow; r++ {
		rowOffset := r * g.cols
		for c := minCol; c <= maxCol; c++ {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts playfield coordinates to grid cell coordinates.
// Clamps to valid range so off-screen positions land in border cells.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
