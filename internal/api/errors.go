package api

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError represents a resource not found error with contextual information.
// It is used for servers and templates that are expected to exist under the
// servers directory but do not.
type NotFoundError struct {
	// ResourceType categorizes the type of resource that was not found
	// (e.g., "server", "template")
	ResourceType string

	// ResourceName is the specific identifier of the resource that was not found
	ResourceName string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.ResourceType, e.ResourceName)
}

// IsNotFound checks if an error is a NotFoundError using error unwrapping.
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// NewNotFoundError creates a new NotFoundError with the specified resource type and name.
func NewNotFoundError(resourceType, resourceName string) *NotFoundError {
	return &NotFoundError{
		ResourceType: resourceType,
		ResourceName: resourceName,
	}
}

// AlreadyExistsError is returned when creating a server or template would
// overwrite an existing directory.
type AlreadyExistsError struct {
	ResourceType string
	ResourceName string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.ResourceType, e.ResourceName)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError.
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// Specific constructors for each resource type.
var (
	NewServerNotFoundError = func(name string) *NotFoundError {
		return NewNotFoundError("server", name)
	}

	NewTemplateNotFoundError = func(name string) *NotFoundError {
		return NewNotFoundError("template", name)
	}

	NewServerAlreadyExistsError = func(name string) *AlreadyExistsError {
		return &AlreadyExistsError{ResourceType: "server", ResourceName: name}
	}

	NewTemplateAlreadyExistsError = func(name string) *AlreadyExistsError {
		return &AlreadyExistsError{ResourceType: "template", ResourceName: name}
	}
)

// IOError wraps a filesystem or process-spawn failure.
type IOError struct {
	// Op describes what was being attempted ("read", "spawn", "mkdir", ...)
	Op string
	// Path is the file, directory or executable involved, if any
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError creates an IOError.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// CommandFailureError reports that an external tool ran but signalled failure.
type CommandFailureError struct {
	// Command is the invoked command line, for diagnostics
	Command string
	// ExitCode is the process exit status, or -1 if it was killed by a signal
	ExitCode int
	// Stderr holds the captured standard error, if it was captured
	Stderr []byte
}

func (e *CommandFailureError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "command failed with code %d", e.ExitCode)
	if e.Command != "" {
		fmt.Fprintf(&sb, " (%s)", e.Command)
	}
	if stderr := strings.TrimSpace(string(e.Stderr)); stderr != "" {
		sb.WriteString(": ")
		sb.WriteString(stderr)
	}
	return sb.String()
}

// IsCommandFailure checks if an error is a CommandFailureError.
func IsCommandFailure(err error) bool {
	var cmdErr *CommandFailureError
	return errors.As(err, &cmdErr)
}

// ConfigParseError is returned when the configuration file is malformed.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("error parsing config %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

// ConfigSerializeError is returned when the configuration cannot be encoded.
type ConfigSerializeError struct {
	Err error
}

func (e *ConfigSerializeError) Error() string {
	return fmt.Sprintf("error serializing config: %v", e.Err)
}

func (e *ConfigSerializeError) Unwrap() error { return e.Err }

// PathExpansionError is returned when a path contains an unresolvable
// home-directory or environment reference.
type PathExpansionError struct {
	Path string
	Err  error
}

func (e *PathExpansionError) Error() string {
	return fmt.Sprintf("failed to expand path %q: %v", e.Path, e.Err)
}

func (e *PathExpansionError) Unwrap() error { return e.Err }

// MissingDirectoryError is returned when an expected directory is absent.
type MissingDirectoryError struct {
	Path string
}

func (e *MissingDirectoryError) Error() string {
	return fmt.Sprintf("directory %s is missing", e.Path)
}

// MissingFileError is returned when an expected file is absent.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("file %s is missing", e.Path)
}

// InvalidTimestampFileError reports a last-used record of the wrong length.
type InvalidTimestampFileError struct {
	Path string
	Size int
}

func (e *InvalidTimestampFileError) Error() string {
	return fmt.Sprintf("timestamp file %s has %d bytes, expected 8", e.Path, e.Size)
}

// LockPoisonedError is returned when a previous holder of a lock failed while
// holding it, leaving the protected value in an unknown state.
type LockPoisonedError struct {
	Resource string
}

func (e *LockPoisonedError) Error() string {
	return fmt.Sprintf("lock on %s is poisoned", e.Resource)
}

// IsLockPoisoned checks if an error is a LockPoisonedError.
func IsLockPoisoned(err error) bool {
	var poisoned *LockPoisonedError
	return errors.As(err, &poisoned)
}

// InvalidServersDirectoryError is returned when the working directory is not
// nested under the servers directory.
type InvalidServersDirectoryError struct {
	Dir        string
	ServersDir string
}

func (e *InvalidServersDirectoryError) Error() string {
	return fmt.Sprintf("%s is not inside the servers directory %s", e.Dir, e.ServersDir)
}

// MissingConnectionConfigError is returned when a server has no remote-console entry.
type MissingConnectionConfigError struct {
	Server string
}

func (e *MissingConnectionConfigError) Error() string {
	return fmt.Sprintf("no rcon configuration for server %s", e.Server)
}

// InvalidServerNameError is returned when a server name is not a single
// entry of the servers directory, such as "..", "/" or "a/b".
type InvalidServerNameError struct {
	Name string
}

func (e *InvalidServerNameError) Error() string {
	return fmt.Sprintf("invalid server name %q", e.Name)
}

// InvalidServerSessionError is returned when a session name does not belong
// to a managed server.
type InvalidServerSessionError struct {
	Session string
}

func (e *InvalidServerSessionError) Error() string {
	return fmt.Sprintf("session %s is not a server session", e.Session)
}

var (
	// ErrNoServerChild is returned when the working directory is the servers
	// directory itself rather than one of its servers.
	ErrNoServerChild = errors.New("working directory is the servers directory, not a server")

	// ErrNoDefaultServer is returned when no server was given and no default is set.
	ErrNoDefaultServer = errors.New("no server given and no default server configured")

	// ErrTemplateDeployed is returned when trying to start a template.
	ErrTemplateDeployed = errors.New("templates cannot be deployed")

	// ErrTemplateUsedForTemplate is returned when creating a template from a template.
	ErrTemplateUsedForTemplate = errors.New("cannot create a template from a template")

	// ErrNoSessionName is returned when ZELLIJ_SESSION_NAME is not set.
	ErrNoSessionName = errors.New("not running inside a zellij session")
)
