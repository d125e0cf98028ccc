// internal/cli/search.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/arc-language/pkgx/pkg/core"
)

func (a *app) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query...]",
		Short: "Search for packages",
		Long: `Search the repositories of the selected package manager.

Not every manager can search: apt and microdnf report the operation as
unsupported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerb(cmd, core.VerbSearch, args)
		},
	}
}
