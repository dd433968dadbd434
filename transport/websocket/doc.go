// Package websocket pushes live Escape Room updates to board viewers.
//
// A central Hub tracks the connections watching each session. Every viewer
// connection gets a read pump, which only keeps the connection alive, and a
// write pump that delivers queued messages and pings.
//
// Message Protocol:
//
// Commands are sent over REST. After each processed command the server
// broadcasts one JSON frame to the session's viewers:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}, "data": {...}}
//
// Viewers connect with the session ID as a query parameter (/ws?session=ab12).
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Slow viewers whose queue fills up are disconnected rather than blocking
// the game.
package websocket
