package engine

// Rect is an axis-aligned rectangle in pixel coordinates
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Right returns the x-coordinate of the right edge
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports whether two rectangles share interior area.
// Touching edges do not count and an empty rectangle intersects nothing.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// wallThickness is the short side of a wall segment
func wallThickness(cellSize int) int {
	t := cellSize / 12
	if t < 1 {
		return 1
	}
	return t
}

// verticalWallBounds places a wall on the right edge of a cell
func verticalWallBounds(cell Cell, cellSize int) Rect {
	t := wallThickness(cellSize)
	return Rect{
		X: cell.Col*cellSize + cellSize - t,
		Y: cell.Row*cellSize + cellSize/6,
		W: t,
		H: cellSize,
	}
}

// horizontalWallBounds places a wall on the bottom edge of a cell
func horizontalWallBounds(cell Cell, cellSize int) Rect {
	t := wallThickness(cellSize)
	return Rect{
		X: cell.Col*cellSize + cellSize*2/15,
		Y: cell.Row*cellSize + cellSize - t,
		W: cellSize,
		H: t,
	}
}

// itemBounds is the footprint of a trap or prize inside a cell
func itemBounds(cell Cell, cellSize int) Rect {
	quarter := cellSize / 4
	return Rect{
		X: cell.Col*cellSize + quarter,
		Y: cell.Row*cellSize + quarter,
		W: quarter,
		H: quarter,
	}
}

// PlayerHitBox is the sub-cell square anchored at the player's position
func PlayerHitBox(pos Position, cellSize int) Rect {
	half := cellSize / 2
	return Rect{X: pos.X, Y: pos.Y, W: half, H: half}
}

// CellAt returns the grid cell that contains a pixel position
func CellAt(pos Position, cellSize int) Cell {
	if cellSize <= 0 {
		return Cell{}
	}
	return Cell{Col: floorDiv(pos.X, cellSize), Row: floorDiv(pos.Y, cellSize)}
}

// CellOrigin returns the player position for a cell, given the start offset
func CellOrigin(cell Cell, cfg *GameConfig) Position {
	return Position{
		X: cfg.Start.X%cfg.CellSize + cell.Col*cfg.CellSize,
		Y: cfg.Start.Y%cfg.CellSize + cell.Row*cfg.CellSize,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
