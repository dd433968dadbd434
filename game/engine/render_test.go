package engine

import (
	"strings"
	"testing"
)

func TestRenderBoard(t *testing.T) {
	state, config := createTestGameState()
	state.Walls = []Wall{
		NewWall("w0", Cell{Col: 0, Row: 0}, Vertical, 60),
		NewWall("w1", Cell{Col: 1, Row: 0}, Horizontal, 60),
	}
	state.Traps = []Trap{
		NewTrap("t0", Cell{Col: 2, Row: 0}, 60),
		{ID: "t1", Cell: Cell{Col: 3, Row: 0}, Sprung: true},
	}

	lines := RenderBoard(state, config, false)
	if len(lines) != 1+2*config.Rows {
		t.Fatalf("Expected %d lines, got %d", 1+2*config.Rows, len(lines))
	}

	row0 := lines[1]
	// Cell c has its symbol at 2+4c and its right edge at 4+4c
	if row0[2] != SymbolPlayer {
		t.Errorf("Expected player at (0,0), got %q", row0)
	}
	if row0[4] != '|' {
		t.Errorf("Expected vertical wall after (0,0), got %q", row0)
	}
	if row0[10] != SymbolEmpty {
		t.Errorf("Expected hidden trap at (2,0), got %q", row0)
	}
	if row0[14] != SymbolSprungTrap {
		t.Errorf("Expected sprung trap at (3,0), got %q", row0)
	}
	if lines[2][5:8] != "---" {
		t.Errorf("Expected horizontal wall under (1,0), got %q", lines[2])
	}

	lastRow := lines[2*config.Rows-1]
	if lastRow[2+4*7] != SymbolPrize {
		t.Errorf("Expected prize at (7,4), got %q", lastRow)
	}

	revealed := RenderBoard(state, config, true)
	if revealed[1][10] != SymbolTrap {
		t.Errorf("Expected revealed trap at (2,0), got %q", revealed[1])
	}
}

func TestRenderBoard_PlayerOnPrize(t *testing.T) {
	state, config := createTestGameState()
	state.Prizes = []Prize{NewPrize("p", Cell{Col: 0, Row: 0}, 60)}

	lines := RenderBoard(state, config, true)
	if lines[1][2] != SymbolPlayer {
		t.Errorf("Player must be drawn over a prize, got %q", lines[1])
	}
	if strings.ContainsRune(strings.Join(lines, "\n"), SymbolPrize) {
		t.Error("Expected the only prize to be hidden under the player")
	}
}
