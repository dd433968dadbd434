// Command analyze prints quick, human-readable statistics about the rooms in
// the configs directory. Each room is generated for a range of seeds and
// every layout is explored from the start: how many cells are safely
// reachable, how often a trap lands on the start cell and how many layouts
// can be solved at all.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/escaperoom/game/analysis"
	"github.com/wricardo/escaperoom/game/config"
	"github.com/wricardo/escaperoom/game/engine"
)

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "analyze",
		Usage:  "sample seeded layouts of each room and report how playable they are",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing room configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:  "room",
				Usage: "analyze only this room",
			},
			&cli.IntFlag{
				Name:  "seeds",
				Value: 1000,
				Usage: "number of seeded layouts per room",
			},
			&cli.Int64Flag{
				Name:  "first-seed",
				Value: 1,
				Usage: "first seed of the sampled range",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the summaries as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configs, err := config.NewManager(cmd.String("config-dir"))
			if err != nil {
				return err
			}

			names := []string{cmd.String("room")}
			if names[0] == "" {
				infos, err := configs.ListConfigs()
				if err != nil {
					return err
				}
				names = names[:0]
				for _, info := range infos {
					names = append(names, info.ConfigID)
				}
			}

			var summaries []analysis.Summary
			for _, name := range names {
				room, err := configs.LoadConfig(name)
				if err != nil {
					return fmt.Errorf("room %s: %w", name, err)
				}
				summary := analysis.Sample(room, cmd.Int64("first-seed"), cmd.Int("seeds"))
				summaries = append(summaries, summary)

				if !cmd.Bool("json") {
					fmt.Fprintf(out, "\n=== Analyzing %s ===\n", name)
					printSummary(out, room, summary)
				}
			}

			if cmd.Bool("json") {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summaries)
			}
			return nil
		},
	}
}

// printSummary writes the statistics of one room. When some layout was not
// solvable, the first one is drawn with its traps revealed.
func printSummary(out io.Writer, room *engine.GameConfig, summary analysis.Summary) {
	fmt.Fprintf(out, "Name: %s\n", room.Name)
	fmt.Fprintf(out, "Grid: %d x %d cells\n", room.Columns, room.Rows)
	fmt.Fprintf(out, "Walls: %d, Prizes: %d, Traps: %d\n", room.Walls, room.Prizes, room.Traps)
	fmt.Fprintf(out, "Layouts sampled: %d\n", summary.Layouts)
	fmt.Fprintf(out, "Avg reachable cells: %.1f of %d\n", summary.AvgReachable, room.Columns*room.Rows)
	fmt.Fprintf(out, "Avg reachable prizes: %.2f of %d\n", summary.AvgPrizeReached, room.Prizes)

	if summary.StartTrapped > 0 {
		fmt.Fprintf(out, "⚠️  Trap on the start cell in %d layouts (%.1f%%)\n", summary.StartTrapped, summary.StartTrappedRate()*100)
	} else {
		fmt.Fprintf(out, "✅ The start cell was never trapped\n")
	}

	if summary.FirstUnsolvable < 0 {
		fmt.Fprintf(out, "✅ All %d layouts are solvable\n", summary.Layouts)
		return
	}

	fmt.Fprintf(out, "⚠️  Solvable layouts: %d/%d (%.1f%%)\n", summary.Solvable, summary.Layouts, summary.SolvableRate()*100)

	layout := engine.GenerateLayout(room, engine.NewRand(summary.FirstUnsolvable))
	state := engine.InitGameState(room, summary.FirstUnsolvable, layout)
	fmt.Fprintf(out, "   First unsolvable seed: %d\n", summary.FirstUnsolvable)
	for _, line := range engine.RenderBoard(state, room, true) {
		fmt.Fprintf(out, "   %s\n", strings.TrimRight(line, " "))
	}
}
