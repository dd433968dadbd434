package engine

import "strings"

// Board symbols
const (
	SymbolPlayer     = '@'
	SymbolPrize      = '$'
	SymbolSprungTrap = 'x'
	SymbolTrap       = '^'
	SymbolEmpty      = '.'
)

// RenderBoard draws the board as text, one string per line. Each cell is
// three characters wide followed by its right edge; every row is followed
// by a line holding the bottom edges. Active traps are hidden unless
// reveal is set.
func RenderBoard(state *GameState, config *GameConfig, reveal bool) []string {
	cols, rows := config.Columns, config.Rows

	symbols := make([][]rune, rows)
	for r := range symbols {
		symbols[r] = []rune(strings.Repeat(string(SymbolEmpty), cols))
	}
	put := func(cell Cell, sym rune) {
		if cell.Row < 0 || cell.Row >= rows || cell.Col < 0 || cell.Col >= cols {
			return
		}
		symbols[cell.Row][cell.Col] = sym
	}

	// Lowest priority first so later symbols win a shared cell
	for _, trap := range state.Traps {
		if trap.Sprung {
			put(trap.Cell, SymbolSprungTrap)
		} else if reveal {
			put(trap.Cell, SymbolTrap)
		}
	}
	for _, prize := range state.Prizes {
		if prize.Active() {
			put(prize.Cell, SymbolPrize)
		}
	}
	put(CellAt(state.Player, config.CellSize), SymbolPlayer)

	vertical := make(map[Cell]bool)
	horizontal := make(map[Cell]bool)
	for _, wall := range state.Walls {
		if wall.Orientation == Vertical {
			vertical[wall.Cell] = true
		} else {
			horizontal[wall.Cell] = true
		}
	}

	lines := make([]string, 0, rows*2+1)
	lines = append(lines, "+"+strings.Repeat("----", cols))

	for r := 0; r < rows; r++ {
		var cellLine, edgeLine strings.Builder
		cellLine.WriteByte('|')
		edgeLine.WriteByte('|')
		for c := 0; c < cols; c++ {
			cell := Cell{Col: c, Row: r}
			cellLine.WriteByte(' ')
			cellLine.WriteRune(symbols[r][c])
			cellLine.WriteByte(' ')
			if vertical[cell] {
				cellLine.WriteByte('|')
			} else {
				cellLine.WriteByte(' ')
			}

			if horizontal[cell] {
				edgeLine.WriteString("---")
			} else {
				edgeLine.WriteString("   ")
			}
			edgeLine.WriteByte(' ')
		}
		lines = append(lines, strings.TrimRight(cellLine.String(), " "))
		lines = append(lines, strings.TrimRight(edgeLine.String(), " "))
	}

	return lines
}
