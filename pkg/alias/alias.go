// pkg/alias/alias.go

// Package alias maps canonical package names to the names a specific
// package manager uses, e.g. "sqlite3" -> "libsqlite3-dev" on apt.
package alias

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrNotFound indicates there is no entry for the package
var ErrNotFound = errors.New("alias not found")

// Entry represents a single deps/<name>/index.toml file
type Entry struct {
	Name     string            `toml:"name"`
	Backends map[string]string `toml:"backends"`
}

// Registry provides lookup into the cached deps/ folder
type Registry struct {
	depsDir string
}

// New creates a Registry pointed at the cached deps directory
func New(cacheDir string) *Registry {
	return &Registry{
		depsDir: filepath.Join(cacheDir, "deps"),
	}
}

// Dir returns the deps directory the registry reads from
func (r *Registry) Dir() string {
	return r.depsDir
}

// Resolve returns the manager-specific name for a canonical package name.
// Names without an entry, or whose entry has no mapping for manager, are
// returned unchanged so that native names keep working.
func (r *Registry) Resolve(name string, manager string) (string, error) {
	entry, err := r.Load(name)
	if errors.Is(err, ErrNotFound) {
		return name, nil
	}
	if err != nil {
		return "", err
	}

	if mapped, ok := entry.Backends[manager]; ok && mapped != "" {
		return mapped, nil
	}
	return name, nil
}

// ResolveAll resolves every name in order
func (r *Registry) ResolveAll(names []string, manager string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		resolved, err := r.Resolve(name, manager)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

// Load reads and parses deps/<name>/index.toml
func (r *Registry) Load(name string) (*Entry, error) {
	if !validName(name) {
		return nil, fmt.Errorf("alias: %w: %q", ErrNotFound, name)
	}

	path := filepath.Join(r.depsDir, name, "index.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("alias: %w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("alias: reading %q: %w", name, err)
	}

	var entry Entry
	if _, err := toml.Decode(string(data), &entry); err != nil {
		return nil, fmt.Errorf("alias: failed to parse '%s': %w", name, err)
	}

	return &entry, nil
}

// validName rejects names that would escape the deps directory
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name
}
