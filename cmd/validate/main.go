// Command validate checks the room configuration files in a directory.
// For every *.json file it checks:
//   - JSON structure, grid geometry, entity counts and required messages
//     (the same rules the server applies when loading a room)
//   - Playability: how many seeded layouts can be solved, i.e. every prize
//     is reachable from the start without stepping on a trap
//
// It exits with a non-zero status if any file is invalid.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/escaperoom/game/analysis"
	"github.com/wricardo/escaperoom/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration file and
// samples seeds layouts of it
func validateConfig(filePath string, seeds int) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	config, err := engine.ParseGameConfig(data)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid configuration: %v", err))
		return result
	}

	summary := analysis.Sample(config, 1, seeds)
	if summary.Solvable == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Playability failure: none of %d seeded layouts can be solved", seeds))
		return result
	}

	result.Errors = append(result.Errors,
		fmt.Sprintf("✓ Name: %s", config.Name),
		fmt.Sprintf("✓ Grid: %dx%d cells of %dpx (%dx%d px)", config.Columns, config.Rows, config.CellSize, config.Width, config.Height),
		fmt.Sprintf("✓ Entities: %d walls, %d prizes, %d traps", config.Walls, config.Prizes, config.Traps),
		fmt.Sprintf("✓ Solvable layouts: %.1f%% of %d seeds", summary.SolvableRate()*100, summary.Layouts),
		fmt.Sprintf("✓ Trap on start: %.1f%% of layouts", summary.StartTrappedRate()*100),
	)
	return result
}

// validateDir validates every *.json file in dir and writes a report to
// out. It reports whether all of them are valid.
func validateDir(dir string, seeds int, out io.Writer) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no config files found in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file, seeds)

		fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(out, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(out, "  "+info)
			}
		} else {
			fmt.Fprintln(out, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(out, "  ❌ "+err)
			}
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(out, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(out, "❌ Some configurations have errors")
	}
	return allValid, nil
}

func main() {
	cmd := &cli.Command{
		Name:  "validate",
		Usage: "validate the room configurations of a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing room configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.IntFlag{
				Name:  "seeds",
				Value: 200,
				Usage: "number of seeded layouts sampled per room",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ok, err := validateDir(cmd.String("config-dir"), cmd.Int("seeds"), os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
