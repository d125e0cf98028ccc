// internal/cli/verbs.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/pkgx/pkg/core"
)

// runVerb drives one package operation through the pipeline
func (a *app) runVerb(cmd *cobra.Command, verb core.Verb, packages []string) error {
	ctx := cmd.Context()
	m := a.newManager()

	d, err := m.Detect(ctx)
	if err != nil {
		return err
	}

	if a.config.DryRun {
		fmt.Fprintf(a.env.Stderr, "Using package manager: %s\n", d.Selected)
	} else {
		a.logger.Info("using package manager", "manager", d.Selected)
	}

	native, err := m.Translate(d.Selected, verb, packages)
	if err != nil {
		return err
	}

	_, err = m.Execute(ctx, native)
	return err
}
