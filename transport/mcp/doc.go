// Package mcp exposes the Escape Room to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call is translated into a request
// against the REST API, so agents and browser viewers share the same
// sessions and live updates.
//
// MCP Tools:
//   - create_session: create a session with an optional room and seed
//   - list_sessions: list active sessions
//   - get_session: session details
//   - game_state: state summary plus the text board
//   - command: run one command from the vocabulary (enum in the schema)
//   - replay: start a new round
//   - move_history: paginated command history
//   - list_configs: available rooms
//   - describe_board: text board, optionally with hidden traps revealed
//   - game_instructions: the full rules
//
// Transport Modes:
//   - HTTP: the serve command mounts the server at /mcp
//   - Stdio: the mcp command serves stdio and proxies to a running server,
//     or to one it starts internally
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// Tool failures (unknown session, invalid command, finished round) are
// reported as tool errors rather than protocol errors.
package mcp
