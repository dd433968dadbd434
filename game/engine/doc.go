// Package engine provides the core game logic for the Escape Room game.
//
// The engine package implements the game mechanics including:
//   - Pixel-space movement with bounds and wall collision checks
//   - Seeded random placement of walls, traps and prizes
//   - Trap springing, prize pickup and scoring
//   - The round state machine (playing, lost, won, quit)
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState represents the current game state,
// while GameConfig defines board geometry, entity counts, scoring and
// messages, loaded from JSON files or DefaultConfig.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultConfig(), engine.WithSeed(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cmd, err := command.Lookup("right")
//	if err != nil {
//		log.Fatal(err)
//	}
//	outcome := gameEngine.Execute(cmd)
//	fmt.Println(outcome.Message, outcome.Score)
//
// Game Rules:
//
// The player moves one or two cells at a time across a grid of rooms.
// Moving off the grid or into a wall costs points and leaves the player
// in place. Stepping onto a hidden trap ends the round in defeat;
// collecting every prize ends it in victory. Either way an end-of-round
// bonus is paid once, and replay starts a new layout keeping the score.
package engine
