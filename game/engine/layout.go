package engine

import (
	"fmt"
	"math/rand/v2"
)

// NewRand returns the deterministic random source used for layouts
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// GenerateLayout places walls, traps and prizes uniformly at random.
// Entities may share a cell; no attempt is made to keep the start cell
// clear or to guarantee that every prize is reachable.
func GenerateLayout(config *GameConfig, rng *rand.Rand) Layout {
	layout := Layout{
		Walls:  make([]Wall, 0, config.Walls),
		Traps:  make([]Trap, 0, config.Traps),
		Prizes: make([]Prize, 0, config.Prizes),
	}

	for i := 0; i < config.Walls; i++ {
		cell := randomCell(config, rng)
		wall := Wall{ID: fmt.Sprintf("wall_%d", i), Cell: cell}
		if rng.IntN(2) == 0 {
			wall.Orientation = Vertical
			wall.Bounds = verticalWallBounds(cell, config.CellSize)
		} else {
			wall.Orientation = Horizontal
			wall.Bounds = horizontalWallBounds(cell, config.CellSize)
		}
		layout.Walls = append(layout.Walls, wall)
	}

	for i := 0; i < config.Prizes; i++ {
		cell := randomCell(config, rng)
		layout.Prizes = append(layout.Prizes, Prize{
			ID:     fmt.Sprintf("prize_%d", i),
			Cell:   cell,
			Bounds: itemBounds(cell, config.CellSize),
		})
	}

	for i := 0; i < config.Traps; i++ {
		cell := randomCell(config, rng)
		layout.Traps = append(layout.Traps, Trap{
			ID:     fmt.Sprintf("trap_%d", i),
			Cell:   cell,
			Bounds: itemBounds(cell, config.CellSize),
		})
	}

	return layout
}

func randomCell(config *GameConfig, rng *rand.Rand) Cell {
	return Cell{Col: rng.IntN(config.Columns), Row: rng.IntN(config.Rows)}
}

// NewWall builds a wall on the given cell edge using the config geometry
func NewWall(id string, cell Cell, orientation Orientation, cellSize int) Wall {
	wall := Wall{ID: id, Cell: cell, Orientation: orientation}
	if orientation == Vertical {
		wall.Bounds = verticalWallBounds(cell, cellSize)
	} else {
		wall.Bounds = horizontalWallBounds(cell, cellSize)
	}
	return wall
}

// NewTrap builds an active trap on the given cell
func NewTrap(id string, cell Cell, cellSize int) Trap {
	return Trap{ID: id, Cell: cell, Bounds: itemBounds(cell, cellSize)}
}

// NewPrize builds an uncollected prize on the given cell
func NewPrize(id string, cell Cell, cellSize int) Prize {
	return Prize{ID: id, Cell: cell, Bounds: itemBounds(cell, cellSize)}
}
