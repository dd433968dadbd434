package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/wricardo/escaperoom/game/command"
	"github.com/wricardo/escaperoom/game/engine"
)

// configNotFoundText is matched so any ConfigManager can report a missing config
const configNotFoundText = "configuration not found"

// BoardLegend explains the symbols of a rendered board
const BoardLegend = "@ player, $ prize, ^ trap (revealed only), x sprung trap, | and --- walls, . empty"

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	// mu guards the engines and session access times. Lookups of a single
	// session mark it accessed, so they take the write lock too.
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, opts CreateOptions) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if opts.ConfigName != "" {
		config, err = s.configs.LoadConfig(opts.ConfigName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), configNotFoundText) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", opts.ConfigName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", opts.ConfigName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", opts.ConfigName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	var engineOpts []engine.Option
	if opts.Seed != nil {
		engineOpts = append(engineOpts, engine.WithSeed(*opts.Seed))
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	sess.ConfigID = opts.ConfigName
	if sess.ConfigID == "" {
		sess.ConfigID = s.getConfigID(config.Name)
	}

	log.WithFields(log.Fields{
		"session": sess.ID,
		"config":  sess.ConfigID,
		"seed":    sess.Engine.GetSeed(),
	}).Info("Session created")

	return sessionInfo(sess), nil
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		Seed:           sess.Engine.GetSeed(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.Snapshot(),
		GameConfig:     sess.Config,
	}
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns active sessions sorted and limited as requested
func (s *gameServiceImpl) ListSessions(ctx context.Context, opts ListOptions) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	if opts.Sort == "" {
		opts.Sort = "accessed"
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	sort.Slice(result, func(i, j int) bool {
		var less bool
		switch opts.Sort {
		case "created":
			less = result[i].CreatedAt.Before(result[j].CreatedAt)
		case "score":
			less = result[i].GameState.Score < result[j].GameState.Score
		case "id":
			less = result[i].ID < result[j].ID
		default:
			less = result[i].LastAccessedAt.Before(result[j].LastAccessedAt)
		}
		if opts.Order == "asc" {
			return less
		}
		return !less
	})

	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	log.WithField("session", sessionID).Info("Session deleted")
	return nil
}

// Execute validates one line of command text and runs it against a session.
// Invalid text never reaches the engine. Surrounding whitespace from JSON
// bodies and agent tool calls is dropped before the lookup.
func (s *gameServiceImpl) Execute(ctx context.Context, sessionID, input string) (*CommandResult, error) {
	cmd, err := command.Lookup(strings.TrimSpace(input))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return s.execute(sess, cmd)
}

// Replay starts a new round on a session
func (s *gameServiceImpl) Replay(ctx context.Context, sessionID string) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	cmd, err := command.Lookup("replay")
	if err != nil {
		return nil, err
	}
	return s.execute(sess, cmd)
}

func (s *gameServiceImpl) execute(sess *Session, cmd command.Command) (*CommandResult, error) {
	outcome := sess.Engine.Execute(cmd)

	logger := log.WithFields(log.Fields{
		"session": sess.ID,
		"command": cmd.Name,
		"result":  outcome.Result,
	})

	if !outcome.Accepted {
		logger.Debug("Command rejected")
		return nil, fmt.Errorf("%w: %s", engine.ErrRoundOver, outcome.Message)
	}

	logger.WithFields(log.Fields{
		"delta": outcome.ScoreDelta,
		"score": outcome.Score,
		"round": outcome.Round,
	}).Debug("Command executed")
	if outcome.Ended {
		logger.WithField("score", outcome.Score).Infof("Round ended: %s", outcome.Round)
	}

	state := sess.Engine.Snapshot()
	return &CommandResult{
		Success:   outcome.Result != engine.ResultOffGrid && outcome.Result != engine.ResultHitWall && outcome.Result != engine.ResultNoPrize,
		Outcome:   outcome,
		GameState: state,
		Message:   outcome.Message,
		Events:    buildEvents(outcome),
		Board:     engine.RenderBoard(state, sess.Config, false),
	}, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Snapshot(), nil
}

// GetBoard renders the board of a session as text
func (s *gameServiceImpl) GetBoard(ctx context.Context, sessionID string, reveal bool) (*BoardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return &BoardView{
		SessionID: sess.ID,
		Lines:     engine.RenderBoard(sess.Engine.GetState(), sess.Config, reveal),
		Revealed:  reveal,
		Legend:    BoardLegend,
	}, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return paginateHistory(sess.Engine.GetMoveHistory(), opts), nil
}

func paginateHistory(history []engine.HistoryEntry, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.HistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// Commands returns the command vocabulary in display order
func (s *gameServiceImpl) Commands(ctx context.Context) []CommandInfo {
	specs := command.Specs()
	infos := make([]CommandInfo, 0, len(specs))
	for _, spec := range specs {
		infos = append(infos, CommandInfo{
			Name:        spec.Name,
			Aliases:     spec.Aliases,
			Description: spec.Description,
		})
	}
	return infos
}

// getSession looks up a session and marks it as accessed
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		log.WithError(err).WithField("session", sessionID).Warn("Failed to update last access")
	}
	return sess, nil
}

// buildEvents turns an outcome into the events broadcast to clients
func buildEvents(outcome *engine.Outcome) []GameEvent {
	now := time.Now()
	event := func(kind, message string, delta int) GameEvent {
		return GameEvent{
			ID:        uuid.NewString(),
			Type:      kind,
			Message:   message,
			Timestamp: now,
			Position:  outcome.To,
			Delta:     delta,
		}
	}

	events := []GameEvent{}
	actionDelta := outcome.ScoreDelta - outcome.EndBonus

	switch outcome.Result {
	case engine.ResultMoved:
		events = append(events, event(EventMove,
			fmt.Sprintf("Moved %s to (%d,%d)", outcome.Command, outcome.To.X, outcome.To.Y), 0))
	case engine.ResultOffGrid, engine.ResultHitWall:
		events = append(events, event(EventBlocked, outcome.Message, actionDelta))
	case engine.ResultPrizeCollected:
		events = append(events, event(EventPrize, outcome.Message, actionDelta))
	case engine.ResultNoPrize:
		events = append(events, event(EventNoPrize, outcome.Message, actionDelta))
	case engine.ResultReplayed:
		events = append(events, event(EventReplay, outcome.Message, 0))
	case engine.ResultHelp:
		events = append(events, event(EventHelp, command.HelpText(), 0))
	case engine.ResultQuit:
		events = append(events, event(EventQuit, outcome.Message, 0))
	}

	if outcome.TrapSprung {
		events = append(events, event(EventTrap, outcome.Message, 0))
	}
	if outcome.Victory {
		events = append(events, event(EventVictory, outcome.Message, 0))
	}
	if outcome.Ended && outcome.EndBonus > 0 {
		events = append(events, event(EventBonus,
			fmt.Sprintf("End of round bonus: +%d", outcome.EndBonus), outcome.EndBonus))
	}

	return events
}
