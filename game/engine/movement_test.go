package engine

import (
	"testing"
)

func createTestGameState() (*GameState, *GameConfig) {
	config := DefaultConfig()
	state := InitGameState(config, 1, Layout{Prizes: []Prize{NewPrize("prize_0", Cell{Col: 7, Row: 4}, 60)}})
	return state, config
}

func TestInBounds(t *testing.T) {
	state, config := createTestGameState()

	tests := []struct {
		name     string
		pos      Position
		expected bool
	}{
		{"start", Position{X: 15, Y: 15}, true},
		{"origin", Position{X: 0, Y: 0}, true},
		{"last column", Position{X: 435, Y: 15}, true},
		{"right limit", Position{X: 450, Y: 300}, true},
		{"past right", Position{X: 451, Y: 15}, false},
		{"past bottom", Position{X: 15, Y: 301}, false},
		{"negative x", Position{X: -45, Y: 15}, false},
		{"negative y", Position{X: 15, Y: -1}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := state.InBounds(test.pos, config); got != test.expected {
				t.Errorf("InBounds(%+v): expected %v, got %v", test.pos, test.expected, got)
			}
		})
	}
}

func TestMovePlayer_BasicMovement(t *testing.T) {
	state, config := createTestGameState()

	delta, result := state.MovePlayer(60, 0, config)
	if delta != 0 || result != ResultMoved {
		t.Errorf("Expected (0, moved), got (%d, %s)", delta, result)
	}
	if state.Player != (Position{X: 75, Y: 15}) {
		t.Errorf("Expected (75,15), got %+v", state.Player)
	}
	if state.HitBox != (Rect{X: 75, Y: 15, W: 30, H: 30}) {
		t.Errorf("Expected hit box to follow the player, got %+v", state.HitBox)
	}
	if state.Steps != 1 {
		t.Errorf("Expected 1 step, got %d", state.Steps)
	}
}

func TestMovePlayer_OffGrid(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
	}{
		{"left", -60, 0},
		{"up", 0, -60},
		{"jump left", -120, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state, config := createTestGameState()
			delta, result := state.MovePlayer(test.dx, test.dy, config)
			if delta != -5 || result != ResultOffGrid {
				t.Errorf("Expected (-5, off_grid), got (%d, %s)", delta, result)
			}
			if state.Player != config.Start {
				t.Errorf("Position should not change, got %+v", state.Player)
			}
			if state.Steps != 1 {
				t.Errorf("Steps must count blocked moves, got %d", state.Steps)
			}
			if state.Message != config.Messages.OffGrid {
				t.Errorf("Expected off-grid message, got %q", state.Message)
			}
		})
	}
}

func TestMovePlayer_FarEdge(t *testing.T) {
	state, config := createTestGameState()
	state.Player = Position{X: 435, Y: 255}

	if _, result := state.MovePlayer(60, 0, config); result != ResultOffGrid {
		t.Errorf("Expected off_grid past the last column, got %s", result)
	}
	if _, result := state.MovePlayer(0, 60, config); result != ResultOffGrid {
		t.Errorf("Expected off_grid past the last row, got %s", result)
	}
}

func TestMovePlayer_WallCollision(t *testing.T) {
	tests := []struct {
		name   string
		wall   Wall
		from   Position
		dx, dy int
	}{
		{"right into vertical", NewWall("w", Cell{Col: 0, Row: 0}, Vertical, 60), Position{X: 15, Y: 15}, 60, 0},
		{"left into vertical", NewWall("w", Cell{Col: 0, Row: 0}, Vertical, 60), Position{X: 75, Y: 15}, -60, 0},
		{"down into horizontal", NewWall("w", Cell{Col: 0, Row: 0}, Horizontal, 60), Position{X: 15, Y: 15}, 0, 60},
		{"up into horizontal", NewWall("w", Cell{Col: 0, Row: 0}, Horizontal, 60), Position{X: 15, Y: 75}, 0, -60},
		{"jump over vertical", NewWall("w", Cell{Col: 1, Row: 0}, Vertical, 60), Position{X: 15, Y: 15}, 120, 0},
		{"jump over horizontal", NewWall("w", Cell{Col: 0, Row: 1}, Horizontal, 60), Position{X: 15, Y: 15}, 0, 120},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state, config := createTestGameState()
			state.Walls = []Wall{test.wall}
			state.Player = test.from

			delta, result := state.MovePlayer(test.dx, test.dy, config)
			if delta != -5 || result != ResultHitWall {
				t.Errorf("Expected (-5, hit_wall), got (%d, %s)", delta, result)
			}
			if state.Player != test.from {
				t.Errorf("Position should not change, got %+v", state.Player)
			}
			if state.Steps != 1 {
				t.Errorf("Expected 1 step, got %d", state.Steps)
			}
		})
	}
}

func TestMovePlayer_WallOutsidePath(t *testing.T) {
	state, config := createTestGameState()
	// A vertical wall one row down does not block a move along row 0
	state.Walls = []Wall{NewWall("w", Cell{Col: 0, Row: 1}, Vertical, 60)}

	if _, result := state.MovePlayer(60, 0, config); result != ResultMoved {
		t.Errorf("Expected moved, got %s", result)
	}
}

func TestMovePlayer_WallBehindPlayer(t *testing.T) {
	state, config := createTestGameState()
	state.Player = Position{X: 75, Y: 15}
	state.Walls = []Wall{NewWall("w", Cell{Col: 0, Row: 0}, Vertical, 60)}

	if _, result := state.MovePlayer(60, 0, config); result != ResultMoved {
		t.Errorf("A wall behind the player must not block, got %s", result)
	}
}

func TestCrossesWall_ReturnsWall(t *testing.T) {
	wall := NewWall("wall_7", Cell{Col: 2, Row: 0}, Vertical, 60)
	hit, ok := CrossesWall(Position{X: 135, Y: 15}, Position{X: 195, Y: 15}, []Wall{wall})
	if !ok || hit.ID != "wall_7" {
		t.Errorf("Expected wall_7 to block, got %+v %v", hit, ok)
	}
}

func TestInteraction_Pickup(t *testing.T) {
	state, config := createTestGameState()
	state.Prizes = []Prize{
		NewPrize("prize_0", Cell{Col: 0, Row: 0}, 60),
		NewPrize("prize_1", Cell{Col: 0, Row: 0}, 60),
	}

	delta, result := state.PickupPrize(config)
	if delta != 10 || result != ResultPrizeCollected {
		t.Errorf("Expected (+10, prize_collected), got (%d, %s)", delta, result)
	}
	if !state.Prizes[0].Collected || state.Prizes[1].Collected {
		t.Error("Expected only the first prize in list order to be collected")
	}
	if state.PrizesLeft != 1 {
		t.Errorf("Expected 1 prize left, got %d", state.PrizesLeft)
	}
}

func TestInteraction_Counts(t *testing.T) {
	state, _ := createTestGameState()
	state.Traps = []Trap{
		NewTrap("trap_0", Cell{Col: 1, Row: 1}, 60),
		{ID: "trap_1", Sprung: true},
	}

	if n := state.CountActiveTraps(); n != 1 {
		t.Errorf("Expected 1 active trap, got %d", n)
	}
	if n := state.CountActivePrizes(); n != 1 {
		t.Errorf("Expected 1 active prize, got %d", n)
	}
	if state.DidWin() {
		t.Error("Did not expect a win with a prize left")
	}
}
