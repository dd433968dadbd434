// Package api provides the HTTP REST API of the Escape Room server.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions              create a session {config_id?, seed?}
//   - GET    /api/sessions              list sessions (?sort=accessed|created|score|id&order=asc|desc&limit=N)
//   - GET    /api/sessions/{id}         session info
//   - DELETE /api/sessions/{id}         delete a session
//
// Game:
//   - GET    /api/sessions/{id}/state   game state snapshot
//   - GET    /api/sessions/{id}/board   text board (?reveal=true shows hidden traps, ?format=text)
//   - POST   /api/sessions/{id}/command run one command {"command": "jr"}
//   - POST   /api/sessions/{id}/replay  start a new round
//   - GET    /api/sessions/{id}/history paginated command history (?page&limit&order)
//
// Reference:
//   - GET    /api/configs               available rooms
//   - GET    /api/configs/{name}        one room configuration
//   - GET    /api/commands              command vocabulary and help table
//   - GET    /health                    health check
//   - GET    /ws?session={id}           live state updates
//   - GET    /                          browser board
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status code derived from the
// sentinel error behind them:
//
//	{"error": "invalid command: \"dance\"", "code": 400, "commands": ["?", "d", ...]}
//
// Invalid command text yields 400 and the accepted tokens, unknown sessions
// and rooms 404, and commands sent to a finished round 409.
package api
