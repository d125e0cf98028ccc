// internal/cli/update.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/arc-language/pkgx/pkg/core"
)

func (a *app) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update package lists",
		Long: `Refresh the package lists of the selected package manager.

Managers without a separate refresh step run their closest equivalent:
dnf and yum run check-update, zypper runs refresh, choco lists outdated
packages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerb(cmd, core.VerbUpdate, nil)
		},
	}
}
