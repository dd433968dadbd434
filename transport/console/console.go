package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/escaperoom/game/command"
	"github.com/wricardo/escaperoom/game/engine"
)

// Prompt is written before each command is read
const Prompt = "Enter command: "

// Summary is what a finished console game reports
type Summary struct {
	Score       int
	Steps       int
	Round       engine.RoundState
	RoundNumber int
	Commands    int
}

// Game drives one engine from a reader and writes feedback to a writer
type Game struct {
	engine    engine.Engine
	validator *command.Validator
	out       io.Writer

	showBoard bool
	reveal    bool
}

// Option configures a Game
type Option func(*Game)

// WithBoard prints the text board after every command. With reveal set,
// hidden traps are drawn too.
func WithBoard(reveal bool) Option {
	return func(g *Game) {
		g.showBoard = true
		g.reveal = reveal
	}
}

// New creates a console game
func New(eng engine.Engine, in io.Reader, out io.Writer, opts ...Option) *Game {
	g := &Game{
		engine:    eng,
		validator: command.NewValidator(in, out),
		out:       out,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run plays until the round ends, the input is exhausted or ctx is done.
// Replay is only reachable while the round is still running, since a
// terminal round closes the session.
func (g *Game) Run(ctx context.Context) (*Summary, error) {
	g.printf("%s\n\n", g.engine.GetConfig().Messages.Welcome)
	if g.showBoard {
		g.printBoard()
	}

	commands := 0
	for {
		g.printf("%s", Prompt)

		cmd, err := g.validator.ReadCommand(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Console input closed")
				g.printf("\n")
				return g.finish(commands), nil
			}
			return g.finish(commands), err
		}

		outcome := g.engine.Execute(cmd)
		commands++

		log.WithFields(log.Fields{
			"command": outcome.Command,
			"result":  outcome.Result,
			"delta":   outcome.ScoreDelta,
		}).Debug("Console command processed")

		if outcome.Message != "" {
			g.printf("%s\n", outcome.Message)
		}
		if g.showBoard && cmd.Action != command.Help {
			g.printBoard()
		}
		g.printf("Current score: %d\n", outcome.Score)

		if g.engine.IsOver() {
			return g.finish(commands), nil
		}
	}
}

func (g *Game) finish(commands int) *Summary {
	score := g.engine.Finish()
	state := g.engine.GetState()

	g.printf("Final score: %d\n", score)
	g.printf("Steps taken: %d\n", state.Steps)

	return &Summary{
		Score:       score,
		Steps:       state.Steps,
		Round:       state.Round,
		RoundNumber: state.RoundNumber,
		Commands:    commands,
	}
}

func (g *Game) printBoard() {
	lines := engine.RenderBoard(g.engine.GetState(), g.engine.GetConfig(), g.reveal)
	g.printf("%s\n", strings.Join(lines, "\n"))
}

func (g *Game) printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(g.out, format, args...); err != nil {
		log.WithError(err).Warn("Failed to write console output")
	}
}
