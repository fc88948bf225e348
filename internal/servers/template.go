package servers

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"mcserver/internal/api"
	"mcserver/pkg/logging"
)

// TemplateSuffix marks a server directory as a template.
const TemplateSuffix = ".template"

// IsTemplate reports whether name refers to a template.
func IsTemplate(name string) bool {
	return strings.HasSuffix(name, TemplateSuffix)
}

// NewTemplate copies server into "<server>.template" and returns the
// template name.
func (r *Registry) NewTemplate(server string) (string, error) {
	if err := ValidateName(server); err != nil {
		return "", err
	}
	if IsTemplate(server) {
		return "", api.ErrTemplateUsedForTemplate
	}
	if !r.Exists(server) {
		return "", api.NewServerNotFoundError(server)
	}

	name := server + TemplateSuffix
	if r.occupied(name) {
		return "", api.NewTemplateAlreadyExistsError(server)
	}

	logging.Debug("Registry", "Creating template %s from %s", name, server)
	if err := r.copyServer(server, name); err != nil {
		return "", err
	}
	return name, nil
}

// FromTemplate creates a server from template, which may be given with or
// without its suffix. When name is empty the first free name among
// "<base>", "<base>-2", "<base>-3", ... is used. It returns the new server's name.
func (r *Registry) FromTemplate(tmpl, name string) (string, error) {
	base := strings.TrimSuffix(tmpl, TemplateSuffix)
	if err := ValidateName(base); err != nil {
		return "", err
	}
	source := base + TemplateSuffix
	if !r.Exists(source) {
		return "", api.NewTemplateNotFoundError(tmpl)
	}

	if name == "" {
		name = r.availableName(base)
	} else if err := ValidateName(name); err != nil {
		return "", err
	} else if r.occupied(name) {
		return "", api.NewServerAlreadyExistsError(name)
	}

	logging.Debug("Registry", "Creating server %s from %s", name, source)
	if err := r.copyServer(source, name); err != nil {
		return "", err
	}
	return name, nil
}

// occupied reports whether anything, even a dangling symlink, already uses
// the validated name.
func (r *Registry) occupied(name string) bool {
	_, err := os.Lstat(filepath.Join(r.root, name))
	return err == nil
}

func (r *Registry) availableName(base string) string {
	if !r.occupied(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !r.occupied(candidate) {
			return candidate
		}
	}
}

// copyServer copies the src server directory to dst. Both names must
// already be validated. The copy is staged in a hidden directory and renamed
// into place, so a failed copy never leaves a half-populated server behind.
func (r *Registry) copyServer(src, dst string) error {
	staging := filepath.Join(r.root, fmt.Sprintf(".%s.%s.tmp", dst, uuid.NewString()))

	if err := copyTree(filepath.Join(r.root, src), staging); err != nil {
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			logging.Warn("Registry", "Failed to clean up staging directory %s: %v", staging, rmErr)
		}
		return err
	}

	if err := os.Rename(staging, filepath.Join(r.root, dst)); err != nil {
		_ = os.RemoveAll(staging)
		return api.NewIOError("rename", staging, err)
	}
	return nil
}

// copyTree recursively copies a directory, preserving permissions and
// symlinks. The last-used record is not copied.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return api.NewIOError("walk", path, err)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return api.NewIOError("walk", path, err)
		}
		if rel == LastUsedFileName {
			return nil
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return api.NewIOError("stat", path, err)
		}

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, info.Mode().Perm()|0700); err != nil {
				return api.NewIOError("create directory", target, err)
			}
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return api.NewIOError("read link", path, err)
			}
			if err := os.Symlink(link, target); err != nil {
				return api.NewIOError("symlink", target, err)
			}
		case info.Mode().IsRegular():
			if err := copyFile(path, target, info.Mode().Perm()); err != nil {
				return err
			}
		default:
			logging.Debug("Registry", "Skipping special file %s", path)
		}
		return nil
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return api.NewIOError("open", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return api.NewIOError("create", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return api.NewIOError("copy", dst, err)
	}
	if err := out.Close(); err != nil {
		return api.NewIOError("close", dst, err)
	}
	return nil
}
