package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/wricardo/escaperoom/game/command"
)

// ErrRoundOver is returned when a move is attempted after the round ended
var ErrRoundOver = errors.New("round is over")

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	Snapshot() *GameState
	GetConfig() *GameConfig
	GetRound() RoundState
	IsOver() bool
	GetScore() int
	GetSteps() int
	GetPlayerPosition() Position

	// Commands
	Execute(cmd command.Command) *Outcome
	Replay() int
	EndGame() int
	Finish() int

	// Queries used by presentation layers
	GetMoveHistory() []HistoryEntry
	GetRemainingPrizes() int
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
	rng    *rand.Rand
	seed   int64

	// layout overrides the first generated layout when set
	layout *Layout
}

// Option configures a GameEngine
type Option func(*GameEngine)

// WithSeed makes layout generation reproducible
func WithSeed(seed int64) Option {
	return func(e *GameEngine) {
		e.seed = seed
	}
}

// WithLayout replaces the generated layout of the first round
func WithLayout(layout Layout) Option {
	return func(e *GameEngine) {
		e.layout = &layout
	}
}

// NewEngine creates a new game engine with the provided configuration.
// Without WithSeed the layout is seeded from the clock.
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{config: config, seed: time.Now().UnixNano()}
	for _, opt := range opts {
		opt(e)
	}
	e.rng = NewRand(e.seed)

	layout := GenerateLayout(config, e.rng)
	if e.layout != nil {
		layout = *e.layout
		e.layout = nil
	}
	e.state = InitGameState(config, e.seed, layout)

	return e, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in configuration
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	e, err := NewEngine(DefaultConfig(), opts...)
	if err != nil {
		// The built-in configuration is always valid
		panic(err)
	}
	return e
}

// InitGameState creates the state of a fresh game on the given layout
func InitGameState(config *GameConfig, seed int64, layout Layout) *GameState {
	state := &GameState{
		Round:       Playing,
		RoundNumber: 1,
		Message:     config.Messages.Welcome,
		ConfigName:  config.Name,
		Seed:        seed,
		History:     []HistoryEntry{},
	}
	state.resetRound(config, layout)
	return state
}

// resetRound puts the player back at the start on a new layout
func (gs *GameState) resetRound(config *GameConfig, layout Layout) {
	gs.Player = config.Start
	gs.HitBox = PlayerHitBox(config.Start, config.CellSize)
	gs.Steps = 0
	gs.Walls = layout.Walls
	gs.Traps = layout.Traps
	gs.Prizes = layout.Prizes
	gs.PrizesLeft = gs.CountActivePrizes()
	gs.Round = Playing
	gs.BonusAwarded = false
}

// SetLayout replaces the walls, traps and prizes of the current round and
// puts the player back at the start
func (e *GameEngine) SetLayout(layout Layout) {
	e.state.resetRound(e.config, layout)
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Snapshot returns a deep copy of the current game state that stays valid
// while the engine keeps processing commands
func (e *GameEngine) Snapshot() *GameState {
	snap := *e.state
	snap.Walls = slices.Clone(e.state.Walls)
	snap.Traps = slices.Clone(e.state.Traps)
	snap.Prizes = slices.Clone(e.state.Prizes)
	snap.History = slices.Clone(e.state.History)
	return &snap
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// GetRound returns the current round state
func (e *GameEngine) GetRound() RoundState {
	return e.state.Round
}

// IsOver reports whether the round has reached a terminal state
func (e *GameEngine) IsOver() bool {
	return e.state.Round.IsTerminal()
}

// GetScore returns the running score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetSteps returns the steps taken since the last replay
func (e *GameEngine) GetSteps() int {
	return e.state.Steps
}

// GetPlayerPosition returns the current player position
func (e *GameEngine) GetPlayerPosition() Position {
	return e.state.Player
}

// GetSeed returns the seed of the layout random source
func (e *GameEngine) GetSeed() int64 {
	return e.seed
}

// GetMoveHistory returns the complete command history
func (e *GameEngine) GetMoveHistory() []HistoryEntry {
	return e.state.History
}

// GetLastMove returns the last processed command, or nil if none
func (e *GameEngine) GetLastMove() *HistoryEntry {
	if len(e.state.History) == 0 {
		return nil
	}
	return &e.state.History[len(e.state.History)-1]
}

// GetRemainingPrizes returns the number of prizes not yet collected
func (e *GameEngine) GetRemainingPrizes() int {
	return e.state.CountActivePrizes()
}

// Move moves the player by a number of cells and returns the score delta
func (e *GameEngine) Move(dx, dy int) int {
	delta, _ := e.state.MovePlayer(dx*e.config.CellSize, dy*e.config.CellSize, e.config)
	return delta
}

// PickupPrize tries to collect a prize at the player's position
func (e *GameEngine) PickupPrize() int {
	delta, _ := e.state.PickupPrize(e.config)
	return delta
}

// IsTrap reports whether the player stands on an active trap
func (e *GameEngine) IsTrap() bool {
	return e.state.IsTrap()
}

// SpringTrap springs the trap under the player and returns the penalty
func (e *GameEngine) SpringTrap() int {
	return e.state.SpringTrap(e.config)
}

// DidWin reports whether all prizes have been collected
func (e *GameEngine) DidWin() bool {
	return e.state.DidWin()
}

// Replay resets the player and steps, lays out a new board and starts a
// new round. The score is kept; the returned delta is always zero.
func (e *GameEngine) Replay() int {
	e.state.resetRound(e.config, GenerateLayout(e.config, e.rng))
	e.state.RoundNumber++
	e.state.Message = e.config.Messages.Replay
	return 0
}

// EndGame returns the end-of-round bonus. It pays once per round.
func (e *GameEngine) EndGame() int {
	if e.state.BonusAwarded {
		return 0
	}
	e.state.BonusAwarded = true
	return e.config.Scoring.EndBonus
}

// Finish closes the game when input ends before a terminal state. The
// bonus of the current round is paid if still due; the final score is returned.
func (e *GameEngine) Finish() int {
	e.state.Score += e.EndGame()
	return e.state.Score
}

// Execute processes one command completely: the action itself, the score
// update, the trap check, the win check and the end-of-round bonus.
func (e *GameEngine) Execute(cmd command.Command) *Outcome {
	state := e.state
	outcome := &Outcome{
		Command:  cmd.Name,
		Accepted: true,
		From:     state.Player,
	}

	if state.Round.IsTerminal() && cmd.Action != command.Replay && cmd.Action != command.Help {
		outcome.Accepted = false
		outcome.Result = ResultRoundOver
		outcome.To = state.Player
		outcome.Score = state.Score
		outcome.Steps = state.Steps
		outcome.Round = state.Round
		outcome.Message = e.config.Messages.RoundOver
		return outcome
	}

	wasPlaying := state.Round == Playing
	delta := 0

	switch cmd.Action {
	case command.Move:
		d, result := state.MovePlayer(cmd.DX*e.config.CellSize, cmd.DY*e.config.CellSize, e.config)
		delta += d
		outcome.Result = result
	case command.Pickup:
		d, result := state.PickupPrize(e.config)
		delta += d
		outcome.Result = result
	case command.Replay:
		delta += e.Replay()
		outcome.Result = ResultReplayed
		outcome.From = state.Player
		wasPlaying = true
	case command.Help:
		outcome.Result = ResultHelp
		state.Message = command.HelpText()
	case command.Quit:
		outcome.Result = ResultQuit
		state.Message = e.config.Messages.Quit
	}

	state.Score += delta

	if state.Round == Playing {
		if state.IsTrap() {
			penalty := state.SpringTrap(e.config)
			state.Score += penalty
			delta += penalty
			state.Round = Lost
			outcome.TrapSprung = true
		} else if state.DidWin() {
			state.Round = Won
			state.Message = e.config.Messages.Victory
			outcome.Victory = true
		} else if cmd.Action == command.Quit {
			state.Round = Quit
		}
	}

	state.PrizesLeft = state.CountActivePrizes()

	if wasPlaying && state.Round.IsTerminal() {
		bonus := e.EndGame()
		state.Score += bonus
		delta += bonus
		outcome.Ended = true
		outcome.EndBonus = bonus
	}

	outcome.To = state.Player
	outcome.ScoreDelta = delta
	outcome.Score = state.Score
	outcome.Steps = state.Steps
	outcome.Round = state.Round
	outcome.Message = state.Message

	state.AddToHistory(outcome)
	return outcome
}

// ExecuteText validates raw command text and executes it
func (e *GameEngine) ExecuteText(text string) (*Outcome, error) {
	cmd, err := command.Lookup(text)
	if err != nil {
		return nil, err
	}
	return e.Execute(cmd), nil
}
