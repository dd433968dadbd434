package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// InvalidPrompt is written after each rejected line
const InvalidPrompt = "Invalid input. Please try again\n>"

// Validator reads lines until one of them is in the vocabulary
type Validator struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewValidator creates a validator reading from in and writing re-prompts to out
func NewValidator(in io.Reader, out io.Writer) *Validator {
	return &Validator{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ReadValid blocks until a valid command line is read and returns its
// normalized token. It returns io.EOF when the input is exhausted and
// ctx.Err() when the context is done between lines.
func (v *Validator) ReadValid(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		line, err := v.readLine()
		if errors.Is(err, errLineTooLong) {
			fmt.Fprint(v.out, InvalidPrompt)
			continue
		}
		if err != nil {
			return "", err
		}

		token := Normalize(line)
		if IsValid(token) {
			return token, nil
		}

		fmt.Fprint(v.out, InvalidPrompt)
	}
}

var errLineTooLong = errors.New("line too long")

// readLine returns the next line without its line ending. A line that does
// not fit the reader's buffer is consumed whole and reported as
// errLineTooLong; no command is that long.
func (v *Validator) readLine() (string, error) {
	line, isPrefix, err := v.reader.ReadLine()
	if err == io.EOF {
		return "", io.EOF
	}
	if err != nil {
		return "", fmt.Errorf("failed to read command: %w", err)
	}
	if !isPrefix {
		return string(line), nil
	}

	for isPrefix {
		if _, isPrefix, err = v.reader.ReadLine(); err != nil {
			break
		}
	}
	return "", errLineTooLong
}

// ReadCommand is ReadValid followed by Lookup
func (v *Validator) ReadCommand(ctx context.Context) (Command, error) {
	token, err := v.ReadValid(ctx)
	if err != nil {
		return Command{}, err
	}
	return Lookup(token)
}
