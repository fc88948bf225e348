package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"mcserver/internal/api"
	"mcserver/pkg/logging"
)

const zellijSubsystem = "Zellij"

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

// ZellijBackend implements Backend by running the zellij CLI.
type ZellijBackend struct {
	binary string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewZellijBackend creates a backend bound to the process's terminal.
func NewZellijBackend() *ZellijBackend {
	return &ZellijBackend{
		binary: BaseCommand,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func (z *ZellijBackend) command(ctx context.Context, args ...string) *exec.Cmd {
	logging.Debug(zellijSubsystem, "Running %s %s", z.binary, strings.Join(args, " "))
	return execCommandContext(ctx, z.binary, args...)
}

// run executes cmd and classifies its failure. Stderr must already be
// directed at stderr when the caller wants it in the error.
func (z *ZellijBackend) run(cmd *exec.Cmd, stderr *bytes.Buffer) error {
	return classify(cmd, cmd.Run(), stderr)
}

func classify(cmd *exec.Cmd, err error, stderr *bytes.Buffer) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		failure := &api.CommandFailureError{
			Command:  strings.Join(cmd.Args, " "),
			ExitCode: exitErr.ExitCode(),
		}
		if stderr != nil {
			failure.Stderr = bytes.Clone(stderr.Bytes())
		}
		return failure
	}

	return api.NewIOError("spawn", cmd.Path, err)
}

// List runs "zellij list-sessions". Exit status 1 is how zellij reports
// that there are no sessions.
func (z *ZellijBackend) List(ctx context.Context) ([]api.SessionInfo, error) {
	var stdout, stderr bytes.Buffer
	cmd := z.command(ctx, "list-sessions")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := z.run(cmd, &stderr); err != nil {
		var failure *api.CommandFailureError
		if errors.As(err, &failure) && failure.ExitCode == 1 {
			logging.Debug(zellijSubsystem, "No sessions reported")
			return nil, nil
		}
		return nil, err
	}

	return parseSessionList(stdout.String()), nil
}

// Attach runs "zellij attach" on the caller's terminal. Stderr is captured
// so a failure can report why.
func (z *ZellijBackend) Attach(ctx context.Context, session string) error {
	var stderr bytes.Buffer
	cmd := z.command(ctx, "attach", session)
	cmd.Stdin = z.stdin
	cmd.Stdout = z.stdout
	cmd.Stderr = &stderr
	return z.run(cmd, &stderr)
}

// Spawn starts "zellij --session NAME" on the caller's terminal and returns
// without waiting for it.
func (z *ZellijBackend) Spawn(ctx context.Context, session string) (Process, error) {
	cmd := z.command(ctx, "--session", session)
	cmd.Stdin = z.stdin
	cmd.Stdout = z.stdout
	cmd.Stderr = z.stderr

	if err := cmd.Start(); err != nil {
		return nil, api.NewIOError("spawn", z.binary, err)
	}
	return &execProcess{cmd: cmd}, nil
}

// Delete runs "zellij delete-session". Its output is discarded.
func (z *ZellijBackend) Delete(ctx context.Context, session string) error {
	cmd := z.command(ctx, "delete-session", session)
	return z.run(cmd, nil)
}

func (z *ZellijBackend) WriteChars(ctx context.Context, session, text string) error {
	var stderr bytes.Buffer
	cmd := z.command(ctx, "--session", session, "action", "write-chars", text)
	cmd.Stdout = z.stdout
	cmd.Stderr = io.MultiWriter(z.stderr, &stderr)
	return z.run(cmd, &stderr)
}

func (z *ZellijBackend) WriteKey(ctx context.Context, session string, code byte) error {
	var stderr bytes.Buffer
	cmd := z.command(ctx, "--session", session, "action", "write", strconv.Itoa(int(code)))
	cmd.Stdout = z.stdout
	cmd.Stderr = io.MultiWriter(z.stderr, &stderr)
	return z.run(cmd, &stderr)
}

func (z *ZellijBackend) Kill(ctx context.Context, session string) error {
	var stderr bytes.Buffer
	cmd := z.command(ctx, "kill-session", session)
	cmd.Stdout = z.stdout
	cmd.Stderr = io.MultiWriter(z.stderr, &stderr)
	return z.run(cmd, &stderr)
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Wait() error {
	return classify(p.cmd, p.cmd.Wait(), nil)
}
