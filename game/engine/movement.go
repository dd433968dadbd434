package engine

import (
	"time"
)

// InBounds checks whether a candidate player position lies on the grid
func (gs *GameState) InBounds(pos Position, config *GameConfig) bool {
	if pos.X < 0 || pos.X > config.Width-config.CellSize {
		return false
	}
	if pos.Y < 0 || pos.Y > config.Height-config.CellSize {
		return false
	}
	return true
}

// CrossesWall reports whether the straight path from -> to crosses a wall.
//
// The path is tested against each wall's own span on the move axis: the
// wall must lie strictly ahead of the old coordinate and at or before the
// new one, and the perpendicular coordinate must fall inside the wall's
// extent. Jumps use the same test as single steps.
func CrossesWall(from, to Position, walls []Wall) (Wall, bool) {
	dx, dy := to.X-from.X, to.Y-from.Y

	for _, wall := range walls {
		x1, y1 := wall.Bounds.X, wall.Bounds.Y
		x2, y2 := wall.Bounds.Right(), wall.Bounds.Bottom()

		withinY := from.Y >= y1 && from.Y <= y2
		withinX := from.X >= x1 && from.X <= x2

		switch {
		case dx > 0 && from.X < x1 && to.X >= x1 && withinY:
			return wall, true
		case dx < 0 && from.X > x2 && to.X <= x2 && withinY:
			return wall, true
		case dy > 0 && from.Y < y1 && to.Y >= y1 && withinX:
			return wall, true
		case dy < 0 && from.Y > y2 && to.Y <= y2 && withinX:
			return wall, true
		}
	}

	return Wall{}, false
}

// MovePlayer attempts to move the player by a pixel delta and returns the
// score delta together with a result code. The step counter is incremented
// whether or not the move succeeds.
func (gs *GameState) MovePlayer(dx, dy int, config *GameConfig) (int, string) {
	gs.Steps++

	target := Position{X: gs.Player.X + dx, Y: gs.Player.Y + dy}

	if !gs.InBounds(target, config) {
		gs.Message = config.Messages.OffGrid
		return -config.Scoring.OffGridPenalty, ResultOffGrid
	}

	if _, blocked := CrossesWall(gs.Player, target, gs.Walls); blocked {
		gs.Message = config.Messages.HitWall
		return -config.Scoring.WallPenalty, ResultHitWall
	}

	gs.Player = target
	gs.HitBox = PlayerHitBox(target, config.CellSize)
	gs.Message = config.Messages.Moved
	return 0, ResultMoved
}

// AddToHistory appends a processed command to the cumulative history
func (gs *GameState) AddToHistory(outcome *Outcome) {
	gs.TotalActions++
	gs.History = append(gs.History, HistoryEntry{
		Number:     gs.TotalActions,
		Command:    outcome.Command,
		Result:     outcome.Result,
		From:       outcome.From,
		To:         outcome.To,
		ScoreDelta: outcome.ScoreDelta,
		Score:      outcome.Score,
		Round:      outcome.Round,
		Timestamp:  time.Now().Unix(),
	})
}
