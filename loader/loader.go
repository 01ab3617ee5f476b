// Package loader implements the GeneratorLoader abstraction: given a
// generator name, produce source text for it. The core evaluator never
// touches a filesystem directly; it only calls through this interface, so
// embedders can supply generators from anywhere (disk, a bundled archive,
// a network fetch).
package loader

import (
	"os"
	"path/filepath"

	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// Loader is the evaluator's only collaborator for cross-generator imports.
// Load returns the source text for name, or an error if name cannot be
// resolved.
type Loader interface {
	Load(name string) (string, error)
}

// Ext is the conventional file extension FSLoader looks for.
const Ext = ".perchance"

// FSLoader resolves generator names to files under one or more search
// directories, tried in order.
type FSLoader struct {
	Dirs []string
}

// NewFSLoader splits importPath the way a shell would split a command
// line (quoted directories with spaces are supported) and returns a
// loader that searches each resulting directory in order.
func NewFSLoader(importPath string) (*FSLoader, error) {
	dirs, err := shlex.Split(importPath)
	if err != nil {
		return nil, errors.Wrap(err, "shlex.Split import path")
	}
	return &FSLoader{Dirs: dirs}, nil
}

// Load implements Loader by reading "<dir>/<name>.perchance" for the
// first directory that has it.
func (l *FSLoader) Load(name string) (string, error) {
	if len(l.Dirs) == 0 {
		return "", errors.Errorf("no import search directories configured; cannot load %q", name)
	}
	var lastErr error
	for _, dir := range l.Dirs {
		path := filepath.Join(dir, name+Ext)
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		lastErr = err
	}
	return "", errors.Wrapf(lastErr, "loading generator %q from %v", name, l.Dirs)
}

// Static is an in-memory Loader, useful for tests and for embedders that
// already hold every generator's source text.
type Static map[string]string

func (s Static) Load(name string) (string, error) {
	src, ok := s[name]
	if !ok {
		return "", errors.Errorf("no generator named %q", name)
	}
	return src, nil
}
