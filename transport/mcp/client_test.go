package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/escaperoom/api"
	"github.com/wricardo/escaperoom/game/config"
	"github.com/wricardo/escaperoom/game/engine"
	"github.com/wricardo/escaperoom/game/service"
	"github.com/wricardo/escaperoom/game/session"
)

// newBackedClient starts a real REST API over a trapless room and returns a
// client proxying to it
func newBackedClient(t *testing.T) *Client {
	t.Helper()

	room := engine.DefaultConfig()
	room.Traps = 0
	data, err := json.Marshal(room)
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classic.json"), data, 0644))

	configs, err := config.NewManager(dir)
	require.NoError(t, err)

	gameService := service.NewGameService(session.NewManager(), configs)
	server := httptest.NewServer(api.NewServer(gameService, nil))
	t.Cleanup(server.Close)

	return NewClient(server.URL)
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) (string, bool) {
	t.Helper()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, result.IsError
}

// sessionIDFrom extracts the ID printed by create_session
func sessionIDFrom(t *testing.T, text string) string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if id, ok := strings.CutPrefix(line, "Created session: "); ok {
			return id
		}
	}
	t.Fatalf("no session ID in %q", text)
	return ""
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.GetMCPServer())
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "ab12", "seed": 7})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response service.SessionInfo
	require.NoError(t, client.apiCall(context.Background(), "GET", "/api/sessions/ab12", nil, &response))
	assert.Equal(t, "ab12", response.ID)
	assert.Equal(t, int64(7), response.Seed)
}

func TestClient_apiCall_Errors(t *testing.T) {
	t.Run("unreachable server", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1")
		assert.Error(t, client.apiCall(context.Background(), "GET", "/api", nil, nil))
	})

	t.Run("plain text error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
		}))
		defer server.Close()

		err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
		assert.Contains(t, err.Error(), "API error: 500")
	})

	t.Run("json error with vocabulary", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":    "invalid command",
				"code":     400,
				"commands": []string{"left", "right"},
			})
		}))
		defer server.Close()

		err := NewClient(server.URL).apiCall(context.Background(), "POST", "/x", map[string]string{}, nil)
		require.Error(t, err)
		assert.Equal(t, "invalid command (valid commands: left, right)", err.Error())
	})
}

func TestClient_GameFlow(t *testing.T) {
	client := newBackedClient(t)

	text, isErr := callTool(t, client.handleCreateSession, "create_session", map[string]interface{}{"seed": float64(42)})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Seed: 42")
	assert.Contains(t, text, "Welcome to EscapeRoom!")
	id := sessionIDFrom(t, text)

	text, isErr = callTool(t, client.handleListSessions, "list_sessions", map[string]interface{}{"limit": float64(5)})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Active Sessions (1)")
	assert.Contains(t, text, id)

	text, isErr = callTool(t, client.handleGameState, "game_state", map[string]interface{}{"session_id": id})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Position: (15,15)")
	assert.Contains(t, text, "Legend:")

	text, isErr = callTool(t, client.handleCommand, "command", map[string]interface{}{
		"session_id": id,
		"command":    "help",
		"intent":     "read the rules first",
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "help -> help")

	text, isErr = callTool(t, client.handleCommand, "command", map[string]interface{}{
		"session_id": id,
		"command":    "fly",
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "valid commands")

	text, isErr = callTool(t, client.handleCommand, "command", map[string]interface{}{
		"session_id": id,
		"command":    "quit",
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Game ended")

	text, isErr = callTool(t, client.handleCommand, "command", map[string]interface{}{
		"session_id": id,
		"command":    "down",
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "round is over")

	text, isErr = callTool(t, client.handleReplay, "replay", map[string]interface{}{"session_id": id})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Round 2: playing")

	text, isErr = callTool(t, client.handleMoveHistory, "move_history", map[string]interface{}{
		"session_id": id,
		"limit":      float64(10),
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "3 total")
	assert.Contains(t, text, "replay -> replayed")

	text, isErr = callTool(t, client.handleDescribeBoard, "describe_board", map[string]interface{}{
		"session_id": id,
		"reveal":     true,
	})
	require.False(t, isErr, text)
	assert.True(t, strings.HasPrefix(text, "+----"))
	assert.Contains(t, text, "@")

	text, isErr = callTool(t, client.handleGetSession, "get_session", map[string]interface{}{"session_id": id})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Session: "+id)
}

func TestClient_UnknownSession(t *testing.T) {
	client := newBackedClient(t)

	text, isErr := callTool(t, client.handleGameState, "game_state", map[string]interface{}{"session_id": "zzzz"})
	assert.True(t, isErr)
	assert.Contains(t, text, "session not found")
}

func TestClient_ListConfigs(t *testing.T) {
	client := newBackedClient(t)

	text, isErr := callTool(t, client.handleListConfigs, "list_configs", map[string]interface{}{})
	require.False(t, isErr, text)
	assert.Contains(t, text, "config_id: classic")
	assert.Contains(t, text, "Grid: 8x5, Walls: 20, Prizes: 3, Traps: 0")
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	text, isErr := callTool(t, client.handleGameInstructions, "game_instructions", nil)
	require.False(t, isErr)

	for _, section := range []string{"GAME OBJECTIVE:", "COMMANDS:", "SCORING:", "BOARD LEGEND:", "Good luck escaping!"} {
		assert.Contains(t, text, section)
	}
}

func TestFormatGameState(t *testing.T) {
	state := &engine.GameState{
		Player:      engine.Position{X: 75, Y: 135},
		Score:       15,
		Steps:       4,
		PrizesLeft:  1,
		Round:       engine.Won,
		RoundNumber: 2,
		Message:     "CONGRATULATIONS! You escaped!",
	}

	result := formatGameState(state)

	assert.Contains(t, result, "Position: (75,135)")
	assert.Contains(t, result, "Score: 15")
	assert.Contains(t, result, "Round 2: won")
	assert.Contains(t, result, "ESCAPED!")
	assert.Contains(t, result, "CONGRATULATIONS! You escaped!")

	state.Round = engine.Lost
	assert.Contains(t, formatGameState(state), "GAME OVER")
	assert.Equal(t, "No game state available", formatGameState(nil))
}

func TestFormatCommandResult(t *testing.T) {
	result := &service.CommandResult{
		Success: false,
		Outcome: &engine.Outcome{
			Command:    "up",
			Result:     engine.ResultOffGrid,
			From:       engine.Position{X: 15, Y: 15},
			To:         engine.Position{X: 15, Y: 15},
			ScoreDelta: -5,
		},
		GameState: &engine.GameState{Score: -5, Round: engine.Playing},
		Events:    []service.GameEvent{{Type: service.EventBlocked, Message: "You tried to move off the grid!"}},
		Board:     []string{"+----"},
	}

	text := formatCommandResult(result)

	assert.Contains(t, text, "✗ Command had no effect")
	assert.Contains(t, text, "up -> off_grid (15,15)->(15,15) score -5")
	assert.Contains(t, text, "- blocked: You tried to move off the grid!")
	assert.True(t, strings.HasSuffix(text, "+----"))
}
