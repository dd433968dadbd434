package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/wricardo/escaperoom/desktop/client"
)

const (
	statusHeight  = 64
	moveDuration  = 0.15 // seconds
	bannerTimeout = 3 * time.Second

	aboutText = "EscapeRoom Game\nMove with WASD or arrow keys\nCollect prizes and avoid traps!"
)

// movement keys and the direction each one sends
var moveKeys = []struct {
	keys      []ebiten.Key
	direction string
}{
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, "right"},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, "left"},
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, "up"},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, "down"},
}

type commandResult struct {
	command string
	result  *client.CommandResult
	err     error
}

type banner struct {
	text  string
	until time.Time
}

// Game is the ebiten window of one session
type Game struct {
	ctx       context.Context
	client    *client.Client
	sessionID string
	room      client.Room

	state   *client.State
	updates <-chan *client.Update
	results chan commandResult
	pending bool

	// displayed player position, tweened toward state.Player
	x, y           float32
	tweenX, tweenY *gween.Tween

	banner banner
}

// NewGame creates the window state for a session
func NewGame(ctx context.Context, c *client.Client, session *client.Session, updates <-chan *client.Update) *Game {
	g := &Game{
		ctx:       ctx,
		client:    c,
		sessionID: session.ID,
		room:      *session.GameConfig,
		updates:   updates,
		results:   make(chan commandResult, 4),
	}
	if session.GameState != nil {
		g.state = session.GameState
		g.x, g.y = float32(g.state.Player.X), float32(g.state.Player.Y)
		g.showBanner(g.state.Message)
	}
	return g
}

// Update applies server responses, advances tweens and handles keys
func (g *Game) Update() error {
	g.drain()

	dt := float32(1.0 / 60)
	if tps := ebiten.ActualTPS(); tps > 0 {
		dt = float32(1 / tps)
	}
	if g.tweenX != nil {
		x, done := g.tweenX.Update(dt)
		y, _ := g.tweenY.Update(dt)
		g.x, g.y = x, y
		if done {
			g.tweenX, g.tweenY = nil, nil
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showBanner(aboutText)
	}

	jump := ebiten.IsKeyPressed(ebiten.KeyShift)
	for _, mk := range moveKeys {
		for _, key := range mk.keys {
			if inpututil.IsKeyJustPressed(key) {
				g.send(client.MoveToken(mk.direction, jump))
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.send("pickup")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.send("replay")
	}

	return nil
}

// send posts a command without blocking the frame; one command is in
// flight at a time
func (g *Game) send(command string) {
	if g.pending {
		return
	}
	g.pending = true

	go func() {
		result, err := g.client.Command(g.ctx, g.sessionID, command)
		g.results <- commandResult{command: command, result: result, err: err}
	}()
}

// drain applies everything that arrived since the last frame
func (g *Game) drain() {
	for {
		select {
		case r := <-g.results:
			g.pending = false
			g.handleResult(r)
		case u, ok := <-g.updates:
			if !ok {
				g.updates = nil
				g.showBanner("Live updates disconnected")
				continue
			}
			if u.Event == "session_deleted" {
				g.showBanner("This session was deleted on the server")
				continue
			}
			if u.GameState != nil {
				g.applyState(u.GameState)
			}
		default:
			return
		}
	}
}

func (g *Game) handleResult(r commandResult) {
	if r.err != nil {
		var apiErr *client.APIError
		if errors.As(r.err, &apiErr) && apiErr.Status == http.StatusConflict {
			g.showBanner("The round is over. Press R to play again.")
			return
		}
		log.WithError(r.err).WithField("command", r.command).Warn("Command failed")
		g.showBanner(fmt.Sprintf("Command failed: %v", r.err))
		return
	}

	if r.result.GameState != nil {
		g.applyState(r.result.GameState)
	}

	outcome := r.result.Outcome
	if outcome == nil {
		return
	}
	switch {
	case outcome.TrapSprung, outcome.Victory, outcome.Ended:
		text := outcome.Message
		if outcome.EndBonus > 0 {
			text += fmt.Sprintf("\nBonus: +%d", outcome.EndBonus)
		}
		g.showBanner(text + "\nPress R to play again")
	case outcome.Result == "replayed", outcome.Result == "help":
		g.showBanner(strings.TrimSpace(outcome.Message))
	}
}

// applyState replaces the state and tweens the player toward its new position
func (g *Game) applyState(state *client.State) {
	target := state.Player
	if g.state == nil || g.state.RoundNumber != state.RoundNumber {
		// A new round places the player at the start; no animation
		g.x, g.y = float32(target.X), float32(target.Y)
		g.tweenX, g.tweenY = nil, nil
	} else if g.state.Player != target {
		g.tweenX = gween.New(g.x, float32(target.X), moveDuration, ease.OutQuad)
		g.tweenY = gween.New(g.y, float32(target.Y), moveDuration, ease.OutQuad)
	}
	g.state = state
}

func (g *Game) showBanner(text string) {
	if text == "" {
		return
	}
	g.banner = banner{text: text, until: time.Now().Add(bannerTimeout)}
}

// Layout returns the board size plus the status area
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.room.Width, g.room.Height + statusHeight
}
