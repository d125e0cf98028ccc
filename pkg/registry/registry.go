// pkg/registry/registry.go

// Package registry is the static catalog of native package managers pkgx can
// drive, with per-verb argument templates. The catalog order is the priority
// order used when selecting a manager.
package registry

import (
	"fmt"
	"slices"

	"github.com/arc-language/pkgx/pkg/core"
)

// TokenKind identifies how a template token expands
type TokenKind int

const (
	// Literal is a fixed argument
	Literal TokenKind = iota
	// Packages expands to the package names, order preserved
	Packages
	// Confirm is the manager's non-interactive "yes" flag, dropped in dry runs
	Confirm
	// Quiet is the manager's verbosity suppression flag, emitted on request
	Quiet
	// AllIfEmpty is a literal emitted only when no packages are given
	AllIfEmpty
)

// Token is one element of a Template
type Token struct {
	Kind  TokenKind
	Value string // Argument text; unused for Packages
}

// Arity describes how many package names a verb takes
type Arity int

const (
	// Required means at least one package name
	Required Arity = iota
	// Optional means zero or more package names
	Optional
	// None means package names are rejected
	None
)

// Template is the argument vector for one verb of one manager
type Template struct {
	Tokens []Token
	Arity  Arity
}

// Definition describes one native package manager
type Definition struct {
	ID          string   // Unique short name, e.g. "apt"
	DisplayName string   // Human readable name
	Executable  string   // Binary probed for on PATH and invoked
	Aliases     []string // Other names accepted for ID
	Affinity    []string // Platform identifiers this manager is preferred on
	Privileged  bool     // Mutating verbs need root
	Templates   map[core.Verb]Template
}

// Clone returns a deep copy of d
func (d Definition) Clone() Definition {
	c := d
	c.Aliases = slices.Clone(d.Aliases)
	c.Affinity = slices.Clone(d.Affinity)
	if d.Templates != nil {
		c.Templates = make(map[core.Verb]Template, len(d.Templates))
		for verb, t := range d.Templates {
			c.Templates[verb] = Template{Tokens: slices.Clone(t.Tokens), Arity: t.Arity}
		}
	}
	return c
}

// Template returns the template for verb, if the manager supports it
func (d Definition) Template(verb core.Verb) (Template, bool) {
	t, ok := d.Templates[verb]
	return t, ok
}

// Supports reports whether the manager has a native form of verb
func (d Definition) Supports(verb core.Verb) bool {
	_, ok := d.Templates[verb]
	return ok
}

// PreferredOn reports whether any of the platform identifiers is in the
// manager's affinity set
func (d Definition) PreferredOn(identifiers []string) bool {
	for _, a := range d.Affinity {
		for _, id := range identifiers {
			if a == id {
				return true
			}
		}
	}
	return false
}

// Registry is an ordered, immutable set of definitions. Definitions are
// copied on the way in and out, so callers cannot change the catalog.
type Registry struct {
	defs  []Definition
	index map[string]int // id and aliases -> position
}

// New builds a registry from definitions in priority order. IDs and aliases
// must be unique.
func New(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("registry: definition without id")
		}
		if d.Executable == "" {
			return nil, fmt.Errorf("registry: %s: executable is required", d.ID)
		}
		pos := len(r.defs)
		for _, name := range append([]string{d.ID}, d.Aliases...) {
			if _, dup := r.index[name]; dup {
				return nil, fmt.Errorf("registry: duplicate manager name %q", name)
			}
			r.index[name] = pos
		}
		r.defs = append(r.defs, d.Clone())
	}
	return r, nil
}

// MustNew is New that panics on an invalid catalog
func MustNew(defs ...Definition) *Registry {
	r, err := New(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// List returns the definitions in priority order
func (r *Registry) List() []Definition {
	out := make([]Definition, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.Clone()
	}
	return out
}

// Lookup finds a definition by id or alias
func (r *Registry) Lookup(name string) (Definition, bool) {
	pos, ok := r.index[name]
	if !ok {
		return Definition{}, false
	}
	return r.defs[pos].Clone(), true
}

// IDs returns the manager ids in priority order
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.defs))
	for i, d := range r.defs {
		ids[i] = d.ID
	}
	return ids
}

// Len returns the number of definitions
func (r *Registry) Len() int {
	return len(r.defs)
}
