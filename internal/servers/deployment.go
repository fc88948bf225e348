package servers

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"mcserver/internal/api"
	"mcserver/internal/template"
)

const (
	// ServerSubdir holds the game server files inside a server directory.
	ServerSubdir = "Server"
	// JarFileName names the file that records which jar to launch.
	JarFileName = "jarfile.txt"
)

// startCommandTemplate is typed into the new session's shell. The session
// closes itself once java exits.
const startCommandTemplate = `{{ .Multiplexer }} action rename-tab Server && cd {{ .Dir | shquote }} && java {{ with .JavaArgs | trim }}{{ . }} {{ end }}-jar {{ .Jar | shquote }}{{ if .NoGUI }} nogui{{ end }} && {{ .Multiplexer }} kill-session "$ZELLIJ_SESSION_NAME"`

// LaunchOptions are the settings that shape a server's start command.
type LaunchOptions struct {
	// Multiplexer is the binary used to rename the tab and close the session
	Multiplexer string
	JavaArgs    string
	NoGUI       bool
}

// Deployment builds the command that starts a server inside its session.
type Deployment struct {
	registry *Registry
	options  LaunchOptions
	engine   *template.Engine
}

// NewDeployment creates a Deployment for servers in registry.
func NewDeployment(registry *Registry, options LaunchOptions) *Deployment {
	return &Deployment{
		registry: registry,
		options:  options,
		engine:   template.New(),
	}
}

// ServerDir returns the game directory of server, failing if it is absent.
func (d *Deployment) ServerDir(server string) (string, error) {
	serverDir, err := d.registry.Dir(server)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(serverDir, ServerSubdir)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", &api.MissingDirectoryError{Path: dir}
	}
	return dir, nil
}

// JarPath resolves the jar named by jarfile.txt inside serverDir.
func JarPath(serverDir string) (string, error) {
	jarfile := filepath.Join(serverDir, JarFileName)
	data, err := os.ReadFile(jarfile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &api.MissingFileError{Path: jarfile}
		}
		return "", api.NewIOError("read", jarfile, err)
	}

	jar := filepath.Join(serverDir, strings.TrimRight(string(data), "\r\n \t"))
	info, err := os.Stat(jar)
	if err != nil || !info.Mode().IsRegular() {
		return "", &api.MissingFileError{Path: jar}
	}
	return jar, nil
}

// Command renders the shell command that launches server.
func (d *Deployment) Command(server string) (string, error) {
	if IsTemplate(server) {
		return "", api.ErrTemplateDeployed
	}

	dir, err := d.ServerDir(server)
	if err != nil {
		return "", err
	}
	jar, err := JarPath(dir)
	if err != nil {
		return "", err
	}

	base := template.Context{
		"Multiplexer": d.options.Multiplexer,
		"JavaArgs":    d.options.JavaArgs,
		"NoGUI":       d.options.NoGUI,
	}
	return d.engine.Render("start-command", startCommandTemplate, template.MergeContexts(base, template.Context{
		"Dir": dir,
		"Jar": jar,
	}))
}
