// Package console runs an Escape Room game as a line-oriented text loop.
//
// The loop prints the welcome text, then prompts for one command at a
// time. Lines outside the vocabulary are rejected by command.Validator and
// re-prompted without reaching the engine. After each command the status
// message and the running score are printed; when the round ends (or the
// input does) the final score and step count close the session.
//
// Usage:
//
//	eng := engine.NewEngineWithDefaults()
//	game := console.New(eng, os.Stdin, os.Stdout, console.WithBoard(false))
//	summary, err := game.Run(ctx)
package console
