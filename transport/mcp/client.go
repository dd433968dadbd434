package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/escaperoom/game/command"
	"github.com/wricardo/escaperoom/game/engine"
	"github.com/wricardo/escaperoom/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// APIError is a non-2xx answer of the REST API
type APIError struct {
	Status   int
	Message  string
	Commands []string
}

func (e *APIError) Error() string {
	if len(e.Commands) > 0 {
		return fmt.Sprintf("%s (valid commands: %s)", e.Message, strings.Join(e.Commands, ", "))
	}
	return e.Message
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Escape Room",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Escape Room - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Cross the room to the far side, avoiding walls and invisible traps, and pick up all the prizes.

AVAILABLE TOOLS:
- create_session: Create a new game session
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get the current game state and board
- command: Run one command (move, jump, pickup, replay, help, quit) - requires intent explanation
- replay: Start a new round on the same session
- move_history: View past commands
- list_configs: List available rooms
- describe_board: Draw the board as text
- game_instructions: Get the full rules

NOTE: The 'intent' parameter on the command tool serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional room selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the room configuration to use (optional, see list_configs)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for a reproducible layout (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"sort": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"accessed", "created", "score", "id"},
					"description": "Sort key (default accessed)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of sessions",
				},
			},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state with the board drawn as text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "command",
		Description: "Run one game command. Moves cost nothing, bumping into a wall or the edge costs points, traps end the round.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"command": map[string]interface{}{
					"type":        "string",
					"enum":        command.Tokens(),
					"description": "Command text, for example right, jr or pickup",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this command (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "command"},
		},
	}, c.handleCommand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "replay",
		Description: "Reset the board and steps for a new round. The score is kept.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReplay)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get command history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available room configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_board",
		Description: "Draw the board of a session as text. Hidden traps are shown only with reveal.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"reveal": map[string]interface{}{
					"type":        "boolean",
					"description": "Show hidden traps",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDescribeBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error    string   `json:"error"`
			Commands []string `json:"commands"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
			return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("API error: %d", resp.StatusCode)}
		}
		return &APIError{Status: resp.StatusCode, Message: errResp.Error, Commands: errResp.Commands}
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]interface{}{}
	if configID := stringArg(args, "config_id"); configID != "" {
		body["config_id"] = configID
	}
	if seed, ok := intArg(args, "seed"); ok {
		body["seed"] = seed
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nSeed: %d\n", session.ID, session.ConfigName, session.Seed)
	if session.GameConfig != nil {
		result += "\n" + session.GameConfig.Messages.Welcome + "\n"
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	query := url.Values{}
	if sortBy := stringArg(args, "sort"); sortBy != "" {
		query.Set("sort", sortBy)
	}
	if limit, ok := intArg(args, "limit"); ok && limit > 0 {
		query.Set("limit", fmt.Sprint(limit))
	}
	path := "/api/sessions"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		score, round := 0, engine.Playing
		if s.GameState != nil {
			score, round = s.GameState.Score, s.GameState.Round
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Score: %d, Round: %s, Created: %s)\n",
			s.ID, s.ConfigName, score, round, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)

	// The board is a convenience; the state is enough on its own
	var board service.BoardView
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/board"), nil, &board); err == nil {
		result += "\n\n" + formatBoard(&board)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")
	text := stringArg(args, "command")

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = stringArg(args, "intent")

	var result service.CommandResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/command"), map[string]string{"command": text}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) handleReplay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	var result service.CommandResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/replay"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")

	query := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		query.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		query.Set("limit", fmt.Sprint(limit))
	}
	path := sessionPath(sessionID, "/history")
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Grid: %dx%d, Walls: %d, Prizes: %d, Traps: %d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.Columns, cfg.Rows, cfg.Walls, cfg.Prizes, cfg.Traps)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleDescribeBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")
	reveal, _ := args["reveal"].(bool)

	path := sessionPath(sessionID, "/board")
	if reveal {
		path += "?reveal=true"
	}

	var board service.BoardView
	if err := c.apiCall(ctx, "GET", path, nil, &board); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoard(&board)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Escape Room - Complete Instructions

GAME OBJECTIVE:
Get to the other side of the room, avoiding walls and invisible traps, and pick up all the prizes.
The round is won as soon as the last prize is collected.

THE ROOM:
• The classic room is 8 columns by 5 rows of 60 pixel cells
• The player starts in the top-left cell
• Walls sit on the right or bottom edge of a cell and block movement across that edge
• Prizes sit inside cells and must be picked up with the pickup command
• Traps are invisible until sprung; stepping into a trap cell ends the round

COMMANDS:
• right/left/up/down (r/l/u/d) - move one cell
• jump/jr, jumpleft/jl, jumpup/ju, jumpdown/jd - move two cells (cannot cross walls)
• pickup (p) - pick up the prize in the current cell
• replay - reset board and steps, keeping the score
• help (?) - show the command list
• quit (q) - end the game

SCORING:
• Prize collected: +10
• Trying to move off the grid or into a wall: -5 (the player does not move)
• Picking up where there is no prize: -5
• Springing a trap: -5 and the round is lost
• End of round: +10 once per round

BOARD LEGEND:
• @ - player
• $ - prize
• ^ - hidden trap (only with reveal)
• x - sprung trap
• | and --- - walls
• . - empty floor

STRATEGY:
- Read the board with describe_board before moving
- Prefer single steps near unexplored cells; jumps skip over cells but still cannot cross walls
- Every blocked move costs points, so check walls on the board first
- After a lost round use replay to get a fresh layout

Good luck escaping!`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nSeed: %d\nCreated: %s\n\n%s",
		session.ID, session.ConfigName, session.Seed,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Position: (%d,%d) | Score: %d | Steps: %d | Prizes left: %d | Round %d: %s\n",
		state.Player.X, state.Player.Y, state.Score, state.Steps,
		state.PrizesLeft, state.RoundNumber, state.Round)

	switch state.Round {
	case engine.Won:
		b.WriteString("\nESCAPED!")
	case engine.Lost:
		b.WriteString("\nGAME OVER")
	case engine.Quit:
		b.WriteString("\nGame ended")
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatCommandResult(result *service.CommandResult) string {
	var b strings.Builder

	if result.Success {
		b.WriteString("✓ Command accepted\n")
	} else {
		b.WriteString("✗ Command had no effect\n")
	}

	if o := result.Outcome; o != nil {
		fmt.Fprintf(&b, "Command: %s -> %s (%d,%d)->(%d,%d) score %+d\n",
			o.Command, o.Result, o.From.X, o.From.Y, o.To.X, o.To.Y, o.ScoreDelta)
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, strings.TrimSpace(event.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))

	if len(result.Board) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(result.Board, "\n"))
	}
	return b.String()
}

func formatBoard(board *service.BoardView) string {
	var b strings.Builder
	b.WriteString(strings.Join(board.Lines, "\n"))
	if board.Legend != "" {
		fmt.Fprintf(&b, "\n\nLegend: %s", board.Legend)
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "History (page %d/%d, %d total):\n", history.Page, history.TotalPages, history.TotalMoves)
	for _, entry := range history.Moves {
		fmt.Fprintf(&b, "%d. %s -> %s (%d,%d)->(%d,%d) %+d = %d [%s]\n",
			entry.Number, entry.Command, entry.Result,
			entry.From.X, entry.From.Y, entry.To.X, entry.To.Y,
			entry.ScoreDelta, entry.Score, entry.Round)
	}
	if history.HasNext {
		b.WriteString("More entries on the next page.\n")
	}
	return b.String()
}
