package config

import (
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"

	"mcserver/internal/api"
)

// environ is the environment used for expansion; tests replace it.
var environ = os.Environ

// ExpandPath resolves a leading "~" and any "$VAR" or "${VAR}" references in
// path, the way a POSIX shell would for an unquoted assignment value.
// Referencing an unset variable is a PathExpansionError.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	word, err := syntax.NewParser().Document(strings.NewReader(path))
	if err != nil {
		return "", &api.PathExpansionError{Path: path, Err: err}
	}

	cfg := &expand.Config{
		Env:     expand.ListEnviron(environ()...),
		NoUnset: true,
	}

	expanded, err := expand.Literal(cfg, word)
	if err != nil {
		return "", &api.PathExpansionError{Path: path, Err: err}
	}
	return expanded, nil
}

// expandAbs expands path and makes it absolute and clean.
func expandAbs(path string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", &api.PathExpansionError{Path: path, Err: err}
	}
	return abs, nil
}
