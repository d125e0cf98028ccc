// internal/cli/upgrade.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/arc-language/pkgx/pkg/core"
)

func (a *app) newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade [package...]",
		Short: "Upgrade all packages, or only the given ones",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerb(cmd, core.VerbUpgrade, args)
		},
	}
}
