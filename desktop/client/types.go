package client

// Position is the pixel position of the player's top-left corner
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned rectangle in board pixels
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Wall is drawn as a filled rectangle
type Wall struct {
	ID     string `json:"id"`
	Bounds Rect   `json:"bounds"`
}

// Trap stays hidden until it is sprung
type Trap struct {
	ID     string `json:"id"`
	Bounds Rect   `json:"bounds"`
	Sprung bool   `json:"sprung"`
}

// Prize disappears once collected
type Prize struct {
	ID        string `json:"id"`
	Bounds    Rect   `json:"bounds"`
	Collected bool   `json:"collected"`
}

// Round states reported by the server
const (
	RoundPlaying = "playing"
	RoundLost    = "lost"
	RoundWon     = "won"
	RoundQuit    = "quit"
)

// State is the part of the server game state the window draws
type State struct {
	Player      Position `json:"player"`
	HitBox      Rect     `json:"hit_box"`
	Steps       int      `json:"steps"`
	Score       int      `json:"score"`
	Round       string   `json:"round"`
	RoundNumber int      `json:"round_number"`
	Walls       []Wall   `json:"walls"`
	Traps       []Trap   `json:"traps"`
	Prizes      []Prize  `json:"prizes"`
	PrizesLeft  int      `json:"prizes_left"`
	Message     string   `json:"message"`
	ConfigName  string   `json:"config_name"`
}

// Over reports whether the round has ended
func (s *State) Over() bool {
	return s.Round != "" && s.Round != RoundPlaying
}

// Room is the geometry of a room configuration
type Room struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	CellSize int      `json:"cell_size"`
	Columns  int      `json:"columns"`
	Rows     int      `json:"rows"`
	Start    Position `json:"start"`
}

// Session is returned when a session is created or fetched
type Session struct {
	ID         string `json:"id"`
	ConfigName string `json:"config_name"`
	Seed       int64  `json:"seed"`
	GameState  *State `json:"game_state"`
	GameConfig *Room  `json:"game_config"`
}

// RoomInfo describes one available room
type RoomInfo struct {
	ConfigID    string `json:"config_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Outcome is the effect of one command
type Outcome struct {
	Command    string `json:"command"`
	Accepted   bool   `json:"accepted"`
	Result     string `json:"result"`
	ScoreDelta int    `json:"score_delta"`
	Message    string `json:"message"`
	TrapSprung bool   `json:"trap_sprung"`
	Victory    bool   `json:"victory"`
	Ended      bool   `json:"ended"`
	EndBonus   int    `json:"end_bonus"`
}

// CommandResult is the response to a command
type CommandResult struct {
	Success   bool     `json:"success"`
	Outcome   *Outcome `json:"outcome"`
	GameState *State   `json:"game_state"`
	Message   string   `json:"message"`
}

// Update is one WebSocket message
type Update struct {
	SessionID string `json:"session_id"`
	GameState *State `json:"game_state,omitempty"`
	Event     string `json:"event,omitempty"`
}
