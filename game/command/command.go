// Package command defines the text command vocabulary of the Escape Room
// game and the validator that reads it from a line-oriented input.
//
// Commands are matched case-insensitively against a fixed whitelist. There
// is no partial matching and no abbreviation expansion beyond the aliases
// listed in the vocabulary.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCommand is returned for text that is not in the vocabulary.
var ErrInvalidCommand = errors.New("invalid command")

// Action is the kind of work a command asks the engine to do
type Action string

const (
	Move   Action = "move"
	Pickup Action = "pickup"
	Replay Action = "replay"
	Help   Action = "help"
	Quit   Action = "quit"
)

// Command is a validated entry of the vocabulary.
// DX and DY are expressed in cells; the engine scales them by the cell size.
type Command struct {
	Name   string `json:"name"`
	Action Action `json:"action"`
	DX     int    `json:"dx,omitempty"`
	DY     int    `json:"dy,omitempty"`
}

// IsJump reports whether the command moves two cells at once
func (c Command) IsJump() bool {
	return c.Action == Move && abs(c.DX)+abs(c.DY) == 2
}

// Spec describes one command and all of its accepted spellings
type Spec struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
}

var specs = []struct {
	spec Spec
	cmd  Command
}{
	{Spec{"right", []string{"r"}, "move one space right"}, Command{Action: Move, DX: 1}},
	{Spec{"left", []string{"l"}, "move one space left"}, Command{Action: Move, DX: -1}},
	{Spec{"up", []string{"u"}, "move one space up"}, Command{Action: Move, DY: -1}},
	{Spec{"down", []string{"d"}, "move one space down"}, Command{Action: Move, DY: 1}},
	{Spec{"jump", []string{"jr"}, "jump two spaces right"}, Command{Action: Move, DX: 2}},
	{Spec{"jumpleft", []string{"jl"}, "jump two spaces left"}, Command{Action: Move, DX: -2}},
	{Spec{"jumpup", []string{"ju"}, "jump two spaces up"}, Command{Action: Move, DY: -2}},
	{Spec{"jumpdown", []string{"jd"}, "jump two spaces down"}, Command{Action: Move, DY: 2}},
	{Spec{"pickup", []string{"p"}, "pick up the prize at the current spot"}, Command{Action: Pickup}},
	{Spec{"replay", nil, "reset board and steps"}, Command{Action: Replay}},
	{Spec{"help", []string{"?"}, "show the command list"}, Command{Action: Help}},
	{Spec{"quit", []string{"q"}, "end the game"}, Command{Action: Quit}},
}

// vocabulary maps every accepted token to its command
var vocabulary = buildVocabulary()

func buildVocabulary() map[string]Command {
	v := make(map[string]Command)
	for _, s := range specs {
		cmd := s.cmd
		cmd.Name = s.spec.Name
		v[s.spec.Name] = cmd
		for _, alias := range s.spec.Aliases {
			v[alias] = cmd
		}
	}
	return v
}

// Normalize lower-cases the raw input text. Whitespace is kept, so " r"
// is not "r".
func Normalize(text string) string {
	return strings.ToLower(text)
}

// Lookup resolves raw text to a command. The match is exact and
// case-insensitive; anything else yields ErrInvalidCommand.
func Lookup(text string) (Command, error) {
	token := Normalize(text)
	cmd, ok := vocabulary[token]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrInvalidCommand, text)
	}
	return cmd, nil
}

// IsValid reports whether text is an accepted token
func IsValid(text string) bool {
	_, ok := vocabulary[Normalize(text)]
	return ok
}

// Tokens returns every accepted token in sorted order
func Tokens() []string {
	tokens := make([]string, 0, len(vocabulary))
	for token := range vocabulary {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// Specs returns the vocabulary in display order
func Specs() []Spec {
	out := make([]Spec, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.spec)
	}
	return out
}

// HelpText is the command table printed by the help command
func HelpText() string {
	var b strings.Builder
	b.WriteString("\n=== Commands ===\n")
	b.WriteString("right/left/up/down  (r/l/u/d) : move one space\n")
	b.WriteString("jump/jr/jl/ju/jd              : jump two spaces (cannot cross walls)\n")
	b.WriteString("pickup or p                   : pick up prize at current spot\n")
	b.WriteString("replay                        : reset board and steps\n")
	b.WriteString("quit or q                     : end the game\n")
	b.WriteString("help or ?                     : show this list\n")
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
