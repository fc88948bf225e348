package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WithSpinner runs fn while showing a spinner with message on w. The
// spinner is skipped when quiet is set. On failure a red final message is
// left behind.
func WithSpinner(w io.Writer, quiet bool, message string, fn func() error) error {
	if quiet {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	s.Start()

	err := fn()
	if err != nil {
		s.FinalMSG = text.FgRed.Sprint("✗ "+message) + "\n"
	}
	s.Stop()
	return err
}
