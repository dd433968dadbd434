package engine

// RoundState is the outcome state of the current round
type RoundState string

const (
	Playing RoundState = "playing"
	Lost    RoundState = "lost"
	Won     RoundState = "won"
	Quit    RoundState = "quit"

	// Validation constants
	MinCellSize   = 12
	MaxCellSize   = 240
	MaxGridCells  = 400
	MaxEntities   = 200
	MaxScoreValue = 1000
)

// IsTerminal reports whether no further moves are processed in this state
func (r RoundState) IsTerminal() bool {
	return r == Lost || r == Won || r == Quit
}

// Orientation of a wall segment
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Result codes describing what a single command did
const (
	ResultMoved          = "moved"
	ResultOffGrid        = "off_grid"
	ResultHitWall        = "hit_wall"
	ResultPrizeCollected = "prize_collected"
	ResultNoPrize        = "no_prize"
	ResultReplayed       = "replayed"
	ResultHelp           = "help"
	ResultQuit           = "quit"
	ResultRoundOver      = "round_over"
)

// Position represents pixel coordinates of the player's top-left corner
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Cell identifies a grid cell by column and row
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Wall is a thin immutable segment on the right or bottom edge of a cell
type Wall struct {
	ID          string      `json:"id"`
	Orientation Orientation `json:"orientation"`
	Cell        Cell        `json:"cell"`
	Bounds      Rect        `json:"bounds"`
}

// Trap is a hidden one-shot hazard
type Trap struct {
	ID     string `json:"id"`
	Cell   Cell   `json:"cell"`
	Bounds Rect   `json:"bounds"`
	Sprung bool   `json:"sprung"`
}

// Active reports whether the trap can still be triggered
func (t Trap) Active() bool {
	return !t.Sprung
}

// Prize is a one-shot collectible
type Prize struct {
	ID        string `json:"id"`
	Cell      Cell   `json:"cell"`
	Bounds    Rect   `json:"bounds"`
	Collected bool   `json:"collected"`
}

// Active reports whether the prize is still on the board
func (p Prize) Active() bool {
	return !p.Collected
}

// Layout is the randomly generated content of one round
type Layout struct {
	Walls  []Wall  `json:"walls"`
	Traps  []Trap  `json:"traps"`
	Prizes []Prize `json:"prizes"`
}

// Scoring holds the score deltas of the game
type Scoring struct {
	PrizeReward    int `json:"prize_reward"`
	TrapPenalty    int `json:"trap_penalty"`
	EndBonus       int `json:"end_bonus"`
	OffGridPenalty int `json:"off_grid_penalty"`
	WallPenalty    int `json:"wall_penalty"`
}

// Messages are the human-readable status lines of the game
type Messages struct {
	Welcome        string `json:"welcome"`
	Moved          string `json:"moved"`
	OffGrid        string `json:"off_grid"`
	HitWall        string `json:"hit_wall"`
	PrizeCollected string `json:"prize_collected"`
	NoPrize        string `json:"no_prize"`
	TrapSprung     string `json:"trap_sprung"`
	Victory        string `json:"victory"`
	Replay         string `json:"replay"`
	Quit           string `json:"quit"`
	RoundOver      string `json:"round_over"`
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	CellSize    int      `json:"cell_size"`
	Columns     int      `json:"columns"`
	Rows        int      `json:"rows"`
	Start       Position `json:"start"`
	Walls       int      `json:"walls"`
	Traps       int      `json:"traps"`
	Prizes      int      `json:"prizes"`
	Scoring     Scoring  `json:"scoring"`
	Messages    Messages `json:"messages"`
}

// GameState represents the complete game state
type GameState struct {
	Player       Position       `json:"player"`
	HitBox       Rect           `json:"hit_box"`
	Steps        int            `json:"steps"`
	Score        int            `json:"score"`
	Round        RoundState     `json:"round"`
	RoundNumber  int            `json:"round_number"`
	Walls        []Wall         `json:"walls"`
	Traps        []Trap         `json:"traps"`
	Prizes       []Prize        `json:"prizes"`
	PrizesLeft   int            `json:"prizes_left"`
	Message      string         `json:"message"`
	ConfigName   string         `json:"config_name"`
	Seed         int64          `json:"seed"`
	History      []HistoryEntry `json:"history"`
	TotalActions int            `json:"total_actions"`

	// BonusAwarded is set once the end-of-round bonus has been paid
	BonusAwarded bool `json:"bonus_awarded"`
}

// HistoryEntry records a single processed command
type HistoryEntry struct {
	Number     int        `json:"number"`
	Command    string     `json:"command"`
	Result     string     `json:"result"`
	From       Position   `json:"from"`
	To         Position   `json:"to"`
	ScoreDelta int        `json:"score_delta"`
	Score      int        `json:"score"`
	Round      RoundState `json:"round"`
	Timestamp  int64      `json:"timestamp"`
}

// Outcome is the full effect of one command on the game
type Outcome struct {
	Command    string     `json:"command"`
	Accepted   bool       `json:"accepted"`
	Result     string     `json:"result"`
	From       Position   `json:"from"`
	To         Position   `json:"to"`
	ScoreDelta int        `json:"score_delta"`
	Score      int        `json:"score"`
	Steps      int        `json:"steps"`
	Round      RoundState `json:"round"`
	Message    string     `json:"message"`

	// Flags raised by the post-command checks
	TrapSprung bool `json:"trap_sprung,omitempty"`
	Victory    bool `json:"victory,omitempty"`
	Ended      bool `json:"ended,omitempty"`
	EndBonus   int  `json:"end_bonus,omitempty"`
}
