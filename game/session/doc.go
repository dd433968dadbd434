// Package session provides session management for the Escape Room game.
//
// The session package implements:
//   - Thread-safe in-memory session storage and retrieval
//   - Unique session ID generation
//   - Expiry of idle sessions through a background sweeper
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session owns its own engine instance and random source, so sessions
// never share board state.
//
// Session Identifiers:
//
// Sessions use 4-character hexadecimal IDs for easy reference. IDs are
// matched case-insensitively and generated from cryptographic randomness,
// retrying on collision.
//
// Usage:
//
//	manager := session.NewManager()
//	manager.StartSweeper(ctx, time.Minute, time.Hour)
//
//	sess, err := manager.Create("", engine.DefaultConfig(), engine.WithSeed(42))
//	if err != nil {
//		log.Fatal(err)
//	}
package session
