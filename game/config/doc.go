// Package config provides configuration management for the Escape Room game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation through the engine
//   - Default configuration management with a built-in fallback
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Board size, cell size and grid dimensions
//   - The player's start position
//   - How many walls, traps and prizes each round places
//   - Score rewards and penalties
//   - Status messages (missing optional messages fall back to the classic text)
//
// Available Configurations:
//   - classic: the original 8x5 room with 20 walls, 3 prizes and 5 traps
//   - maze: the same room with many more walls
//   - minefield: a wider room with few walls and many traps
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		manager = config.NewBuiltinManager()
//	}
//
//	gameConfig, err := manager.LoadConfig("maze")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
