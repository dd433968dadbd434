// Package service provides the business logic layer for the Escape Room game.
//
// The service package implements:
//   - Multi-session game management
//   - Command validation and execution
//   - Event generation for broadcast to clients
//   - Board rendering and move history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. A single mutex serializes commands so each one is fully
// processed, traps and win checks included, before the next is read. Each
// session owns its own engine and random source.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, service.CreateOptions{ConfigName: "classic"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Execute(ctx, info.ID, "jump")
//
// Errors:
//
// Invalid command text returns command.ErrInvalidCommand. Commands sent to a
// finished round, other than replay and help, return engine.ErrRoundOver.
package service
