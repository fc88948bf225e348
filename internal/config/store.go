package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/singleflight"

	"mcserver/internal/api"
	"mcserver/pkg/logging"
)

// Filesystem seams, replaced in tests.
var (
	writeFile = os.WriteFile
	readFile  = os.ReadFile
	mkdirAll  = os.MkdirAll
	getwd     = os.Getwd
)

// Store owns the process's DynamicConfig. The value is loaded on first
// access, every access is serialized through a mutex, and EnsureWritten
// persists it only when it has changed since it was loaded.
//
// A Store is safe for concurrent use. The lock is not reentrant: a function
// passed to With must not call other Store methods.
type Store struct {
	mu       sync.Mutex
	loaded   bool
	poisoned bool
	value    DynamicConfig
	snapshot DynamicConfig

	static    StaticConfig
	configDir string // unexpanded override; empty means static.ConfigDirectory

	dirMu       sync.Mutex
	resolvedDir string

	expandGroup singleflight.Group
	cacheMu     sync.RWMutex
	serversDir  string
}

// NewStore creates a Store that reads from the static config directory.
func NewStore(static StaticConfig) *Store {
	return &Store{static: static}
}

// NewStoreWithPath creates a Store rooted at a custom config directory.
func NewStoreWithPath(configDir string) *Store {
	return &Store{static: GetStatic(), configDir: configDir}
}

// Static returns the build-time configuration this store was created with.
func (s *Store) Static() StaticConfig {
	return s.static
}

// Dir returns the expanded configuration directory.
func (s *Store) Dir() (string, error) {
	s.dirMu.Lock()
	defer s.dirMu.Unlock()

	if s.resolvedDir != "" {
		return s.resolvedDir, nil
	}

	dir := s.configDir
	if dir == "" {
		dir = s.static.ConfigDirectory
	}
	expanded, err := expandAbs(dir)
	if err != nil {
		return "", err
	}
	s.resolvedDir = expanded
	return expanded, nil
}

// Path returns the path of config.toml.
func (s *Store) Path() (string, error) {
	dir, err := s.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// lock acquires s.mu, loading the configuration on first use. On success
// the caller owns s.mu and must release it; on failure it is released.
func (s *Store) lock() error {
	s.mu.Lock()

	if s.poisoned {
		s.mu.Unlock()
		return &api.LockPoisonedError{Resource: "config"}
	}

	if !s.loaded {
		if err := s.load(); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	return nil
}

// With runs fn with exclusive access to the configuration, loading it on
// first use. The pointer must not be retained after fn returns. If fn panics
// the store is marked poisoned, the panic is converted into an error, and
// every later access fails with a LockPoisonedError.
func (s *Store) With(fn func(cfg *DynamicConfig) error) (err error) {
	if err := s.lock(); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			s.poisoned = true
			logging.Warn("ConfigStore", "Config accessor panicked, marking store poisoned: %v", r)
			err = fmt.Errorf("config accessor panicked: %v: %w", r, &api.LockPoisonedError{Resource: "config"})
		}
		s.mu.Unlock()
	}()

	return fn(&s.value)
}

// View returns a copy of the current configuration.
func (s *Store) View() (DynamicConfig, error) {
	var out DynamicConfig
	err := s.With(func(cfg *DynamicConfig) error {
		out = cfg.Clone()
		return nil
	})
	return out, err
}

// load reads config.toml or writes the defaults. Callers hold s.mu.
func (s *Store) load() error {
	dir, err := s.Dir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, configFileName)

	data, err := readFile(path)
	switch {
	case err == nil:
		cfg := DynamicConfig{}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return &api.ConfigParseError{Path: path, Err: err}
		}
		cfg.normalize()
		s.value = cfg
		logging.Debug("ConfigStore", "Loaded configuration from %s", path)

	case errors.Is(err, os.ErrNotExist):
		cfg := GetDefaultConfig()
		if err := s.write(dir, path, cfg); err != nil {
			return err
		}
		s.value = cfg
		logging.Debug("ConfigStore", "No config found at %s, wrote defaults", path)

	default:
		return api.NewIOError("read", path, err)
	}

	s.snapshot = s.value.Clone()
	s.loaded = true
	return nil
}

func (s *Store) write(dir, path string, cfg DynamicConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return &api.ConfigSerializeError{Err: err}
	}
	if err := mkdirAll(dir, 0755); err != nil {
		return api.NewIOError("create directory", dir, err)
	}
	if err := writeFile(path, data, 0644); err != nil {
		return api.NewIOError("write", path, err)
	}
	return nil
}

// EnsureWritten persists the configuration if it changed since it was
// loaded. It is a no-op when the configuration was never accessed.
func (s *Store) EnsureWritten() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		return &api.LockPoisonedError{Resource: "config"}
	}
	if !s.loaded {
		return nil
	}
	if reflect.DeepEqual(s.value, s.snapshot) {
		logging.Debug("ConfigStore", "Configuration unchanged, skipping write")
		return nil
	}

	dir, err := s.Dir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, configFileName)
	if err := s.write(dir, path, s.value); err != nil {
		return err
	}

	s.snapshot = s.value.Clone()
	logging.Debug("ConfigStore", "Wrote configuration to %s", path)
	return nil
}

// ExpandedServersDirectory resolves servers_directory to an absolute path.
// The result is cached for the lifetime of the store.
func (s *Store) ExpandedServersDirectory() (string, error) {
	s.cacheMu.RLock()
	cached := s.serversDir
	s.cacheMu.RUnlock()
	if cached != "" {
		return cached, nil
	}

	v, err, _ := s.expandGroup.Do("servers_directory", func() (interface{}, error) {
		s.cacheMu.RLock()
		cached := s.serversDir
		s.cacheMu.RUnlock()
		if cached != "" {
			return cached, nil
		}

		var raw string
		if err := s.With(func(cfg *DynamicConfig) error {
			raw = cfg.ServersDirectory
			return nil
		}); err != nil {
			return "", err
		}

		dir, err := expandAbs(raw)
		if err != nil {
			return "", err
		}

		s.cacheMu.Lock()
		s.serversDir = dir
		s.cacheMu.Unlock()
		return dir, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// CurrentServerFromWorkingDirectory returns the server whose directory
// contains the working directory.
func (s *Store) CurrentServerFromWorkingDirectory() (string, error) {
	serversDir, err := s.ExpandedServersDirectory()
	if err != nil {
		return "", err
	}

	wd, err := getwd()
	if err != nil {
		return "", api.NewIOError("get working directory", "", err)
	}

	return serverFromPath(serversDir, wd)
}

func serverFromPath(serversDir, dir string) (string, error) {
	rel, err := filepath.Rel(serversDir, filepath.Clean(dir))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &api.InvalidServersDirectoryError{Dir: dir, ServersDir: serversDir}
	}
	if rel == "." {
		return "", api.ErrNoServerChild
	}

	first, _, _ := strings.Cut(rel, string(filepath.Separator))
	return first, nil
}

// ServerOrDefault resolves the server a command should act on. An explicit
// name wins, "." means the server containing the working directory, and an
// empty name falls back to default_server.
func (s *Store) ServerOrDefault(name string) (string, error) {
	switch name {
	case ".":
		return s.CurrentServerFromWorkingDirectory()
	case "":
		var def string
		if err := s.With(func(cfg *DynamicConfig) error {
			def = cfg.DefaultServer
			return nil
		}); err != nil {
			return "", err
		}
		if def == "" {
			return "", api.ErrNoDefaultServer
		}
		return def, nil
	default:
		return name, nil
	}
}

// DefaultServer returns default_server.
func (s *Store) DefaultServer() (string, error) {
	cfg, err := s.View()
	if err != nil {
		return "", err
	}
	return cfg.DefaultServer, nil
}

// SetDefaultServer updates default_server.
func (s *Store) SetDefaultServer(name string) error {
	return s.With(func(cfg *DynamicConfig) error {
		cfg.DefaultServer = name
		return nil
	})
}

// Rcon returns the remote-console settings for server.
func (s *Store) Rcon(server string) (RconConfig, error) {
	var (
		rc RconConfig
		ok bool
	)
	err := s.With(func(cfg *DynamicConfig) error {
		rc, ok = cfg.Rcon[server]
		return nil
	})
	if err != nil {
		return RconConfig{}, err
	}
	if !ok {
		return RconConfig{}, &api.MissingConnectionConfigError{Server: server}
	}
	logging.Value("ConfigStore", "rcon", rc, "Resolved rcon settings for %s", server)
	return rc, nil
}

// SetRcon stores remote-console settings for server.
func (s *Store) SetRcon(server string, rc RconConfig) error {
	return s.With(func(cfg *DynamicConfig) error {
		cfg.Rcon[server] = rc
		return nil
	})
}

// RemoveRcon deletes the remote-console settings for server.
func (s *Store) RemoveRcon(server string) error {
	return s.With(func(cfg *DynamicConfig) error {
		if _, ok := cfg.Rcon[server]; !ok {
			return &api.MissingConnectionConfigError{Server: server}
		}
		delete(cfg.Rcon, server)
		return nil
	})
}
