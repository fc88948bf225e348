package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/text"
)

// FormatSuccess formats a success message for CLI output
func FormatSuccess(msg string) string {
	return fmt.Sprintf("%s %s", text.FgGreen.Sprint("✓"), msg)
}

// FormatWarning formats a warning message for CLI output
func FormatWarning(msg string) string {
	return text.FgYellow.Sprintf("⚠ %s", msg)
}

// FormatError formats an error message for CLI output
func FormatError(err error) string {
	return fmt.Sprintf("%s %v", text.FgRed.Sprint("Error:"), err)
}

// Warn writes a yellow warning line to w.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, FormatWarning(fmt.Sprintf(format, args...)))
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && readline.IsTerminal(int(f.Fd()))
}
