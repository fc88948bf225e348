// Package cli holds the presentation helpers shared by mcserver commands.
//
// Server lists are rendered as kubectl-style plain tables by
// PlainTableWriter, or as JSON or YAML. The configuration is shown as a
// go-pretty table with passwords hidden. Long filesystem operations run under
// WithSpinner, and destructive commands ask for confirmation through
// ConfirmByName, which reads input with readline.
package cli
