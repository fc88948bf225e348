package rcon

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"mcserver/internal/api"
	"mcserver/internal/config"
	"mcserver/pkg/logging"
)

// Binary is the remote-console client.
const Binary = "mcrcon"

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

// Args builds the mcrcon flags for rc. Unset fields are omitted so mcrcon
// falls back to its own defaults.
func Args(rc config.RconConfig) []string {
	var args []string
	if rc.ServerAddress != "" {
		args = append(args, "-H", rc.ServerAddress)
	}
	if rc.Port != 0 {
		args = append(args, "-P", strconv.Itoa(int(rc.Port)))
	}
	if rc.Password != "" {
		args = append(args, "-p", rc.Password.Reveal())
	}
	return args
}

// Client runs mcrcon attached to a terminal.
type Client struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewClient creates a client bound to the process's standard streams.
func NewClient() *Client {
	return &Client{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run opens an interactive console using rc and blocks until it exits.
func (c *Client) Run(ctx context.Context, rc config.RconConfig) error {
	args := Args(rc)
	logging.Value("Rcon", "rcon", rc, "Starting %s", Binary)

	cmd := execCommandContext(ctx, Binary, args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &api.CommandFailureError{
			Command:  strings.Join(redact(cmd.Args), " "),
			ExitCode: exitErr.ExitCode(),
		}
	}
	return api.NewIOError("spawn", Binary, err)
}

// redact hides the value following -p.
func redact(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if out[i] == "-p" {
			out[i+1] = config.Password(out[i+1]).String()
		}
	}
	return out
}
