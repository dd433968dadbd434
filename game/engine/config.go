package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfig returns the classic escape room: an 8x5 grid of 60 pixel
// cells on a 510x360 board with 20 walls, 3 prizes and 5 traps.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "Classic Escape Room",
		Description: "The original 8x5 room with 20 walls, 3 prizes and 5 hidden traps",
		Width:       510,
		Height:      360,
		CellSize:    60,
		Columns:     8,
		Rows:        5,
		Start:       Position{X: 15, Y: 15},
		Walls:       20,
		Traps:       5,
		Prizes:      3,
		Scoring: Scoring{
			PrizeReward:    10,
			TrapPenalty:    5,
			EndBonus:       10,
			OffGridPenalty: 5,
			WallPenalty:    5,
		},
		Messages: DefaultMessages(),
	}
}

// DefaultMessages returns the status lines of the classic game
func DefaultMessages() Messages {
	return Messages{
		Welcome:        "Welcome to EscapeRoom!\nGet to the other side of the room, avoiding walls and invisible traps,\npick up all the prizes.",
		Moved:          "Moved.",
		OffGrid:        "You tried to move off the grid!",
		HitWall:        "There is a wall in the way!",
		PrizeCollected: "Prize collected!",
		NoPrize:        "No prize here!",
		TrapSprung:     "GAME OVER! You hit a trap!",
		Victory:        "CONGRATULATIONS! You escaped!",
		Replay:         "Board reset.",
		Quit:           "Thanks for playing.",
		RoundOver:      "The round is over. Type replay to play again.",
	}
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate grid geometry
	if config.CellSize < MinCellSize || config.CellSize > MaxCellSize {
		return fmt.Errorf("config validation: cell_size must be between %d and %d, got %d", MinCellSize, MaxCellSize, config.CellSize)
	}
	if config.Columns < 1 || config.Rows < 1 {
		return fmt.Errorf("config validation: columns and rows must be positive, got %dx%d", config.Columns, config.Rows)
	}
	if config.Columns*config.Rows > MaxGridCells {
		return fmt.Errorf("config validation: grid may have at most %d cells, got %d", MaxGridCells, config.Columns*config.Rows)
	}
	if config.Columns*config.CellSize > config.Width {
		return fmt.Errorf("config validation: %d columns of %d pixels do not fit a width of %d",
			config.Columns, config.CellSize, config.Width)
	}
	if config.Rows*config.CellSize > config.Height {
		return fmt.Errorf("config validation: %d rows of %d pixels do not fit a height of %d",
			config.Rows, config.CellSize, config.Height)
	}

	// Validate start position
	if config.Start.X < 0 || config.Start.X > config.Width-config.CellSize ||
		config.Start.Y < 0 || config.Start.Y > config.Height-config.CellSize {
		return fmt.Errorf("config validation: start (%d, %d) is outside the board", config.Start.X, config.Start.Y)
	}

	// Validate entity counts
	counts := map[string]int{"walls": config.Walls, "traps": config.Traps, "prizes": config.Prizes}
	for name, n := range counts {
		if n < 0 || n > MaxEntities {
			return fmt.Errorf("config validation: %s must be between 0 and %d, got %d", name, MaxEntities, n)
		}
	}
	if config.Prizes < 1 {
		return fmt.Errorf("config validation: at least one prize is required")
	}

	// Validate scoring
	scores := map[string]int{
		"prize_reward":     config.Scoring.PrizeReward,
		"trap_penalty":     config.Scoring.TrapPenalty,
		"end_bonus":        config.Scoring.EndBonus,
		"off_grid_penalty": config.Scoring.OffGridPenalty,
		"wall_penalty":     config.Scoring.WallPenalty,
	}
	for name, v := range scores {
		if v < 0 || v > MaxScoreValue {
			return fmt.Errorf("config validation: scoring.%s must be between 0 and %d, got %d", name, MaxScoreValue, v)
		}
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("config validation: messages.victory is required")
	}
	if config.Messages.TrapSprung == "" {
		return fmt.Errorf("config validation: messages.trap_sprung is required")
	}

	return nil
}

// fillMessages supplies default text for optional messages left empty
func fillMessages(config *GameConfig) {
	defaults := DefaultMessages()
	m := &config.Messages
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&m.Moved, defaults.Moved)
	fill(&m.OffGrid, defaults.OffGrid)
	fill(&m.HitWall, defaults.HitWall)
	fill(&m.PrizeCollected, defaults.PrizeCollected)
	fill(&m.NoPrize, defaults.NoPrize)
	fill(&m.Replay, defaults.Replay)
	fill(&m.Quit, defaults.Quit)
	fill(&m.RoundOver, defaults.RoundOver)
}

// ParseGameConfig decodes and validates a JSON game configuration
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	fillMessages(&config)

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	return ParseGameConfig(data)
}

// LoadConfigByName loads a game configuration by name from a config directory
func LoadConfigByName(configDir, configName string) (*GameConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join(configDir, configName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configName, err)
	}

	config, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", configName, err)
	}

	return config, nil
}
