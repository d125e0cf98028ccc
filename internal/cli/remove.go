// internal/cli/remove.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/arc-language/pkgx/pkg/core"
)

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove [package...]",
		Aliases: []string{"uninstall"},
		Short:   "Remove one or more packages",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerb(cmd, core.VerbRemove, args)
		},
	}
}
