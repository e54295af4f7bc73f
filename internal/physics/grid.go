package physics

import "math"

// SpatialHash is a uniform grid for broad-phase collision detection in an
// unbounded world. Objects are inserted by position and index, then nearby
// objects can be queried via a 3x3 cell neighborhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding objects so that all potential collisions are found within
// the 3x3 neighborhood.
type SpatialHash struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cells       map[cellKey][]int
	used        []cellKey // Cells touched since the last Clear
}

type cellKey struct {
	col, row int
}

// NewSpatialHash creates an empty hash with the given cell size.
func NewSpatialHash(cellSize float64) *SpatialHash {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &SpatialHash{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cells:       make(map[cellKey][]int),
	}
}

// CellSize returns the edge length of a cell.
func (g *SpatialHash) CellSize() float64 {
	return g.cellSize
}

// Clear removes all items while keeping cell slices for reuse.
func (g *SpatialHash) Clear() {
	for _, k := range g.used {
		g.cells[k] = g.cells[k][:0]
	}
	g.used = g.used[:0]
}

// Insert adds an item (identified by index) at the given world position.
func (g *SpatialHash) Insert(x, y float64, index int) {
	k := g.key(x, y)
	items := g.cells[k]
	if len(items) == 0 {
		g.used = append(g.used, k)
	}
	g.cells[k] = append(items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given world position.
// If fn returns true, iteration stops early (useful for "find first" queries).
func (g *SpatialHash) QueryAround(x, y float64, fn func(index int) bool) {
	center := g.key(x, y)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			for _, idx := range g.cells[cellKey{center.col + dc, center.row + dr}] {
				if fn(idx) {
					return
				}
			}
		}
	}
}

func (g *SpatialHash) key(x, y float64) cellKey {
	return cellKey{
		col: int(math.Floor(x * g.invCellSize)),
		row: int(math.Floor(y * g.invCellSize)),
	}
}
