package servers

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mcserver/internal/api"
	"mcserver/pkg/logging"
)

// Registry enumerates the servers under a servers directory. It is purely
// observational except for the last-used records and template/removal
// helpers that operate on individual server directories.
type Registry struct {
	root  string
	clock Clock
}

// NewRegistry creates a registry for the given (already expanded) servers directory.
func NewRegistry(root string) *Registry {
	return &Registry{
		root:  root,
		clock: RealClock{},
	}
}

// SetClock replaces the clock used for last-used records.
func (r *Registry) SetClock(c Clock) {
	r.clock = c
}

// Root returns the servers directory.
func (r *Registry) Root() string {
	return r.root
}

// ValidateName checks that name refers to a direct child of the servers
// directory.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || !filepath.IsLocal(name) {
		return &api.InvalidServerNameError{Name: name}
	}
	return nil
}

// Dir returns the directory of the named server.
func (r *Registry) Dir(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(r.root, name), nil
}

// Exists reports whether the named server directory exists. Invalid names
// never exist.
func (r *Registry) Exists(name string) bool {
	dir, err := r.Dir(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// ForEach calls visitor once per immediate subdirectory of the servers
// directory, in filesystem enumeration order. Hidden entries are skipped.
// A visitor error stops the walk and is returned unchanged.
func (r *Registry) ForEach(visitor func(name string) error) error {
	info, err := os.Stat(r.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &api.MissingDirectoryError{Path: r.root}
		}
		return api.NewIOError("stat", r.root, err)
	}
	if !info.IsDir() {
		return &api.MissingDirectoryError{Path: r.root}
	}

	dir, err := os.Open(r.root)
	if err != nil {
		return api.NewIOError("open", r.root, err)
	}
	defer dir.Close()

	for {
		// Read in batches; unlike os.ReadDir this does not sort.
		entries, err := dir.ReadDir(64)
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") || !r.isDir(entry) {
				continue
			}
			if err := visitor(name); err != nil {
				return err
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return api.NewIOError("read directory", r.root, err)
		}
	}
}

func (r *Registry) isDir(entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(r.root, entry.Name()))
	if err != nil {
		logging.Debug("Registry", "Skipping dangling symlink %s: %v", entry.Name(), err)
		return false
	}
	return info.IsDir()
}

// AllNames returns the set of server names.
func (r *Registry) AllNames() (map[string]struct{}, error) {
	names := make(map[string]struct{})
	err := r.ForEach(func(name string) error {
		names[name] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// List returns every server sorted by name, ready for tagging.
func (r *Registry) List() ([]api.Server, error) {
	var servers []api.Server
	err := r.ForEach(func(name string) error {
		servers = append(servers, api.Server{Name: name})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(servers, func(i, j int) bool {
		return servers[i].Name < servers[j].Name
	})
	return servers, nil
}
