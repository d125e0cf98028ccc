// internal/cli/install.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/arc-language/pkgx/pkg/core"
)

func (a *app) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install [package...]",
		Short: "Install one or more packages",
		Long: `Install packages using the configured or auto-detected package manager.

Examples:
  pkgx install wget
  pkgx install git vim --manager=brew
  pkgx install --dry-run python3 nodejs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerb(cmd, core.VerbInstall, args)
		},
	}
}
