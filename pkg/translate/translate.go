// pkg/translate/translate.go

// Package translate turns a unified verb and package list into the argument
// vector a specific native package manager expects.
package translate

import (
	"fmt"
	"strings"

	"github.com/arc-language/pkgx/pkg/core"
	"github.com/arc-language/pkgx/pkg/registry"
)

// SudoProgram is prepended for privileged managers when Flags.Sudo is set
const SudoProgram = "sudo"

// Translate expands the manager's template for verb. Package names are copied
// into the argument vector verbatim, one argument each; nothing is ever joined
// into a shell string. The result depends only on the inputs.
func Translate(def registry.Definition, verb core.Verb, packages []string, flags core.Flags) (*core.Command, error) {
	tpl, ok := def.Template(verb)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s", core.ErrUnsupportedVerb, def.ID, verb)
	}

	switch tpl.Arity {
	case registry.Required:
		if len(packages) == 0 {
			return nil, fmt.Errorf("%w: %s needs at least one package", core.ErrMissingPackages, verb)
		}
	case registry.None:
		if len(packages) > 0 {
			return nil, fmt.Errorf("%w: %s", core.ErrUnexpectedPackages, verb)
		}
	}

	for _, name := range packages {
		if name == "" || strings.HasPrefix(name, "-") {
			return nil, fmt.Errorf("%w: %q", core.ErrInvalidPackage, name)
		}
	}

	args := make([]string, 0, len(tpl.Tokens)+len(packages))
	for _, tok := range tpl.Tokens {
		switch tok.Kind {
		case registry.Literal:
			args = append(args, tok.Value)
		case registry.Packages:
			args = append(args, packages...)
		case registry.Confirm:
			// nothing runs in a dry run, so there is nothing to confirm
			if !flags.DryRun {
				args = append(args, tok.Value)
			}
		case registry.Quiet:
			if flags.Quiet {
				args = append(args, tok.Value)
			}
		case registry.AllIfEmpty:
			if len(packages) == 0 {
				args = append(args, tok.Value)
			}
		default:
			return nil, fmt.Errorf("%s %s: unknown template token %d", def.ID, verb, tok.Kind)
		}
	}

	cmd := &core.Command{
		Program: def.Executable,
		Args:    args,
		DryRun:  flags.DryRun,
	}

	if flags.Sudo && def.Privileged && verb.Mutates() {
		cmd.Args = append([]string{def.Executable}, args...)
		cmd.Program = SudoProgram
	}

	return cmd, nil
}
