// Command desktop is a window for playing an Escape Room session hosted by
// the server. It draws the room, sends key presses as commands and follows
// live updates, so the same session can be watched in the browser board.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/escaperoom/desktop/client"
)

func main() {
	cmd := &cli.Command{
		Name:  "desktop",
		Usage: "play an Escape Room session in a window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Value:   "http://localhost:8080",
				Usage:   "Escape Room server URL",
				Sources: cli.EnvVars("ESCAPEROOM_API_URL"),
			},
			&cli.StringFlag{
				Name:  "room",
				Usage: "room for a new session (server default when empty)",
			},
			&cli.StringFlag{
				Name:  "session",
				Usage: "join an existing session instead of creating one",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Fatal("desktop client failed")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := client.New(cmd.String("server"))

	var (
		session *client.Session
		err     error
	)
	if id := cmd.String("session"); id != "" {
		session, err = c.GetSession(ctx, id)
	} else {
		session, err = c.CreateSession(ctx, cmd.String("room"))
	}
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	if session.GameConfig == nil {
		return fmt.Errorf("session %s has no room configuration", session.ID)
	}

	updates, err := c.Subscribe(ctx, session.ID)
	if err != nil {
		// Command responses still carry the state
		log.WithError(err).Warn("Live updates unavailable")
	}

	log.WithFields(log.Fields{
		"session": session.ID,
		"room":    session.ConfigName,
	}).Info("Session opened")

	game := NewGame(ctx, c, session, updates)

	ebiten.SetWindowSize(session.GameConfig.Width, session.GameConfig.Height+statusHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("EscapeRoom - %s (%s)", session.GameConfig.Name, session.ID))

	return ebiten.RunGame(game)
}
