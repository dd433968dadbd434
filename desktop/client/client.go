// Package client talks to the Escape Room server for the desktop window.
package client

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

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Client calls the REST API and subscribes to live updates
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError is a non-2xx response of the server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// CreateSession starts a session in the given room; an empty room uses the
// server default
func (c *Client) CreateSession(ctx context.Context, room string) (*Session, error) {
	body := map[string]interface{}{}
	if room != "" {
		body["config_id"] = room
	}

	var session Session
	if err := c.call(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession fetches an existing session
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	var session Session
	if err := c.call(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(id), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Command sends one command token
func (c *Client) Command(ctx context.Context, id, command string) (*CommandResult, error) {
	var result CommandResult
	path := "/api/sessions/" + url.PathEscape(id) + "/command"
	if err := c.call(ctx, http.MethodPost, path, map[string]string{"command": command}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Rooms lists the available rooms
func (c *Client) Rooms(ctx context.Context) ([]RoomInfo, error) {
	var rooms []RoomInfo
	if err := c.call(ctx, http.MethodGet, "/api/configs", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Subscribe opens the live update stream of a session. The channel is
// closed when the connection drops or ctx is done.
func (c *Client) Subscribe(ctx context.Context, id string) (<-chan *Update, error) {
	wsURL, err := c.wsURL(id)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}

	updates := make(chan *Update, 16)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(updates)
		defer conn.Close()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					log.WithError(err).WithField("session", id).Warn("Live updates stopped")
				}
				return
			}

			var update Update
			if err := json.Unmarshal(data, &update); err != nil {
				log.WithError(err).Warn("Ignoring malformed update")
				continue
			}

			select {
			case updates <- &update:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, nil
}

func (c *Client) wsURL(id string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	u.RawQuery = url.Values{"session": {id}}.Encode()
	return u.String(), nil
}

func (c *Client) call(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
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

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// MoveToken returns the command for a direction ("right", "left", "up" or
// "down"), as a jump when jump is set
func MoveToken(direction string, jump bool) string {
	if !jump {
		return direction
	}
	return "j" + direction[:1]
}
