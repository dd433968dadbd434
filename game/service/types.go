package service

import (
	"time"

	"github.com/wricardo/escaperoom/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Seed           int64              `json:"seed"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// CreateOptions configures a new session
type CreateOptions struct {
	ConfigName string `json:"config_id,omitempty"`
	// Seed makes the session layout reproducible when set
	Seed *int64 `json:"seed,omitempty"`
}

// ListOptions configures session listing
type ListOptions struct {
	Sort  string `json:"sort"`  // "created", "accessed", "score" or "id"
	Order string `json:"order"` // "asc" or "desc"
	Limit int    `json:"limit"`
}

// CommandResult contains the full effect of one command
type CommandResult struct {
	Success   bool              `json:"success"`
	Outcome   *engine.Outcome   `json:"outcome"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
	Board     []string          `json:"board,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"` // "move", "blocked", "prize", "no_prize", "trap", "victory", "replay", "quit", "help"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position"`
	Delta     int             `json:"delta,omitempty"`
}

// Event types
const (
	EventMove    = "move"
	EventBlocked = "blocked"
	EventPrize   = "prize"
	EventNoPrize = "no_prize"
	EventTrap    = "trap"
	EventVictory = "victory"
	EventBonus   = "end_bonus"
	EventReplay  = "replay"
	EventQuit    = "quit"
	EventHelp    = "help"
)

// BoardView is a text rendering of a session board
type BoardView struct {
	SessionID string   `json:"session_id"`
	Lines     []string `json:"lines"`
	Revealed  bool     `json:"revealed"`
	Legend    string   `json:"legend"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.HistoryEntry `json:"moves"`
	TotalMoves  int                   `json:"total_moves"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	TotalPages  int                   `json:"total_pages"`
	HasNext     bool                  `json:"has_next"`
	HasPrevious bool                  `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	Walls       int    `json:"walls"`
	Traps       int    `json:"traps"`
	Prizes      int    `json:"prizes"`
}

// CommandInfo describes one entry of the command vocabulary
type CommandInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
}
