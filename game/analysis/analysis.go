// Package analysis measures how playable generated rooms are.
//
// A layout is explored cell by cell from the start, with the same moves the
// player has (single steps and jumps) and the same wall test the engine
// uses. Cells holding an armed trap end the round, so they are never
// entered. A layout is solvable when the start is safe and every prize lies
// on a safely reachable cell.
package analysis

import (
	"github.com/wricardo/escaperoom/game/command"
	"github.com/wricardo/escaperoom/game/engine"
)

// Report describes one layout
type Report struct {
	Seed            int64 `json:"seed"`
	StartTrapped    bool  `json:"start_trapped"`
	ReachableCells  int   `json:"reachable_cells"`
	Prizes          int   `json:"prizes"`
	PrizesReachable int   `json:"prizes_reachable"`
	// MaxPrizeDistance is the largest number of moves needed to reach any
	// single prize; -1 when some prize cannot be reached
	MaxPrizeDistance int  `json:"max_prize_distance"`
	Solvable         bool `json:"solvable"`
}

// Summary aggregates the reports of many seeded layouts
type Summary struct {
	Config          string  `json:"config"`
	Layouts         int     `json:"layouts"`
	Solvable        int     `json:"solvable"`
	StartTrapped    int     `json:"start_trapped"`
	AvgReachable    float64 `json:"avg_reachable_cells"`
	AvgPrizeReached float64 `json:"avg_prizes_reachable"`
	// FirstUnsolvable is the lowest seed producing an unsolvable layout, or
	// -1 when every layout was solvable
	FirstUnsolvable int64 `json:"first_unsolvable"`
}

// SolvableRate is the fraction of solvable layouts
func (s Summary) SolvableRate() float64 {
	if s.Layouts == 0 {
		return 0
	}
	return float64(s.Solvable) / float64(s.Layouts)
}

// StartTrappedRate is the fraction of layouts with a trap on the start cell
func (s Summary) StartTrappedRate() float64 {
	if s.Layouts == 0 {
		return 0
	}
	return float64(s.StartTrapped) / float64(s.Layouts)
}

// moves are the cell offsets reachable with one command
var moves = func() [][2]int {
	var out [][2]int
	for _, spec := range command.Specs() {
		cmd, err := command.Lookup(spec.Name)
		if err != nil || cmd.Action != command.Move {
			continue
		}
		out = append(out, [2]int{cmd.DX, cmd.DY})
	}
	return out
}()

// Distances returns the number of moves needed to reach every safely
// reachable cell. The start cell is included with distance 0 unless it is
// trapped, in which case the result is empty.
func Distances(config *engine.GameConfig, layout engine.Layout) map[engine.Cell]int {
	dist := make(map[engine.Cell]int)
	if trapped(config.Start, config, layout) {
		return dist
	}

	var bounds engine.GameState
	start := engine.CellAt(config.Start, config.CellSize)
	dist[start] = 0
	queue := []engine.Position{config.Start}

	for len(queue) > 0 {
		from := queue[0]
		queue = queue[1:]
		d := dist[engine.CellAt(from, config.CellSize)]

		for _, m := range moves {
			to := engine.Position{X: from.X + m[0]*config.CellSize, Y: from.Y + m[1]*config.CellSize}
			cell := engine.CellAt(to, config.CellSize)
			if _, seen := dist[cell]; seen {
				continue
			}
			if !bounds.InBounds(to, config) {
				continue
			}
			if _, blocked := engine.CrossesWall(from, to, layout.Walls); blocked {
				continue
			}
			if trapped(to, config, layout) {
				continue
			}
			dist[cell] = d + 1
			queue = append(queue, to)
		}
	}

	return dist
}

// Analyze explores one layout
func Analyze(config *engine.GameConfig, layout engine.Layout) Report {
	report := Report{
		Prizes:           len(layout.Prizes),
		StartTrapped:     trapped(config.Start, config, layout),
		MaxPrizeDistance: -1,
	}

	dist := Distances(config, layout)
	report.ReachableCells = len(dist)

	farthest := 0
	for _, prize := range layout.Prizes {
		d, ok := prizeDistance(prize, dist, config)
		if !ok {
			continue
		}
		report.PrizesReachable++
		farthest = max(farthest, d)
	}

	report.Solvable = !report.StartTrapped && report.PrizesReachable == report.Prizes
	if report.Solvable {
		report.MaxPrizeDistance = farthest
	}
	return report
}

// AnalyzeSeed generates the first-round layout of a seed and analyzes it
func AnalyzeSeed(config *engine.GameConfig, seed int64) Report {
	report := Analyze(config, engine.GenerateLayout(config, engine.NewRand(seed)))
	report.Seed = seed
	return report
}

// Sample analyzes count consecutive seeds starting at firstSeed
func Sample(config *engine.GameConfig, firstSeed int64, count int) Summary {
	summary := Summary{Config: config.Name, FirstUnsolvable: -1}

	reachable, prizes := 0, 0
	for i := 0; i < count; i++ {
		report := AnalyzeSeed(config, firstSeed+int64(i))

		summary.Layouts++
		reachable += report.ReachableCells
		prizes += report.PrizesReachable
		if report.Solvable {
			summary.Solvable++
		} else if summary.FirstUnsolvable < 0 {
			summary.FirstUnsolvable = report.Seed
		}
		if report.StartTrapped {
			summary.StartTrapped++
		}
	}

	if summary.Layouts > 0 {
		summary.AvgReachable = float64(reachable) / float64(summary.Layouts)
		summary.AvgPrizeReached = float64(prizes) / float64(summary.Layouts)
	}
	return summary
}

// prizeDistance finds the closest safe cell from which the prize can be
// picked up
func prizeDistance(prize engine.Prize, dist map[engine.Cell]int, config *engine.GameConfig) (int, bool) {
	best, found := 0, false
	for cell, d := range dist {
		hitBox := engine.PlayerHitBox(engine.CellOrigin(cell, config), config.CellSize)
		if !prize.Bounds.Intersects(hitBox) {
			continue
		}
		if !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}

func trapped(pos engine.Position, config *engine.GameConfig, layout engine.Layout) bool {
	hitBox := engine.PlayerHitBox(pos, config.CellSize)
	for _, trap := range layout.Traps {
		if trap.Active() && trap.Bounds.Intersects(hitBox) {
			return true
		}
	}
	return false
}
