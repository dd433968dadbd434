package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := ValidateGameConfig(DefaultConfig()); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
}

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*GameConfig)
		wantErr string
	}{
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"cell too small", func(c *GameConfig) { c.CellSize = 4 }, "cell_size"},
		{"cell too large", func(c *GameConfig) { c.CellSize = 500 }, "cell_size"},
		{"zero columns", func(c *GameConfig) { c.Columns = 0 }, "columns and rows"},
		{"columns overflow width", func(c *GameConfig) { c.Columns = 9 }, "width"},
		{"rows overflow height", func(c *GameConfig) { c.Rows = 7 }, "height"},
		{"start outside", func(c *GameConfig) { c.Start = Position{X: 460, Y: 15} }, "start"},
		{"negative start", func(c *GameConfig) { c.Start = Position{X: -1, Y: 15} }, "start"},
		{"too many walls", func(c *GameConfig) { c.Walls = MaxEntities + 1 }, "walls"},
		{"negative traps", func(c *GameConfig) { c.Traps = -1 }, "traps"},
		{"no prizes", func(c *GameConfig) { c.Prizes = 0 }, "at least one prize"},
		{"negative penalty", func(c *GameConfig) { c.Scoring.WallPenalty = -5 }, "wall_penalty"},
		{"missing welcome", func(c *GameConfig) { c.Messages.Welcome = "" }, "messages.welcome"},
		{"missing victory", func(c *GameConfig) { c.Messages.Victory = "" }, "messages.victory"},
		{"missing trap message", func(c *GameConfig) { c.Messages.TrapSprung = "" }, "messages.trap_sprung"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := DefaultConfig()
			test.modify(config)
			err := ValidateGameConfig(config)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Expected error containing %q, got %v", test.wantErr, err)
			}
		})
	}
}

const testConfigJSON = `{
  "name": "Tiny Room",
  "description": "A 4x3 room for tests",
  "width": 250,
  "height": 190,
  "cell_size": 60,
  "columns": 4,
  "rows": 3,
  "start": {"x": 15, "y": 15},
  "walls": 2,
  "traps": 1,
  "prizes": 1,
  "scoring": {"prize_reward": 10, "trap_penalty": 5, "end_bonus": 10, "off_grid_penalty": 5, "wall_penalty": 5},
  "messages": {
    "welcome": "Welcome to the tiny room",
    "trap_sprung": "Caught!",
    "victory": "Out!"
  }
}`

func TestParseGameConfig_FillsMessages(t *testing.T) {
	config, err := ParseGameConfig([]byte(testConfigJSON))
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	if config.Columns != 4 || config.Rows != 3 {
		t.Errorf("Expected 4x3 grid, got %dx%d", config.Columns, config.Rows)
	}
	if config.Messages.TrapSprung != "Caught!" {
		t.Errorf("Expected custom trap message, got %q", config.Messages.TrapSprung)
	}
	if config.Messages.HitWall != DefaultMessages().HitWall {
		t.Errorf("Expected default hit wall message, got %q", config.Messages.HitWall)
	}
}

func TestParseGameConfig_Invalid(t *testing.T) {
	if _, err := ParseGameConfig([]byte("{not json")); err == nil {
		t.Error("Expected JSON error")
	}
	if _, err := ParseGameConfig([]byte(`{"name": "x"}`)); err == nil {
		t.Error("Expected validation error")
	}
}

func TestLoadConfigByName(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.json"), []byte(testConfigJSON), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfigByName(dir, "tiny")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Name != "Tiny Room" {
		t.Errorf("Expected Tiny Room, got %q", config.Name)
	}

	if _, err := LoadConfigByName(dir, "tiny.json"); err != nil {
		t.Errorf("Expected .json suffix to be accepted: %v", err)
	}

	if _, err := LoadConfigByName(dir, "missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestLoadGameConfig_ConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.json"), []byte(testConfigJSON), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_DIR", dir)

	config, err := LoadGameConfig("configs/tiny.json")
	if err != nil {
		t.Fatalf("Failed to load config through CONFIG_DIR: %v", err)
	}
	if config.Width != 250 {
		t.Errorf("Expected width 250, got %d", config.Width)
	}
}

func TestClassicConfigFile(t *testing.T) {
	config, err := LoadGameConfig(filepath.Join("..", "..", "configs", "classic.json"))
	if err != nil {
		t.Fatalf("Failed to load classic config: %v", err)
	}

	def := DefaultConfig()
	if config.Width != def.Width || config.Height != def.Height || config.CellSize != def.CellSize {
		t.Errorf("Classic config geometry differs from the default")
	}
	if config.Scoring != def.Scoring {
		t.Errorf("Classic config scoring differs from the default: %+v", config.Scoring)
	}
}
