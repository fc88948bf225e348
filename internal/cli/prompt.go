package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads one line of user input at a time.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// newLineReader is a variable to allow tests to script user input
var newLineReader = func(prompt string) (LineReader, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
}

// ConfirmByName asks the user to type name to confirm a destructive action.
// A mismatch asks again. An empty answer, Ctrl+C or Ctrl+D cancels and
// returns false.
func ConfirmByName(action, name string) (bool, error) {
	rl, err := newLineReader(fmt.Sprintf("Enter %s to %s or nothing to cancel: ", name, action))
	if err != nil {
		return false, fmt.Errorf("failed to create prompt: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}

		answer := strings.TrimSpace(line)
		switch answer {
		case "":
			return false, nil
		case name:
			return true, nil
		}
	}
}
