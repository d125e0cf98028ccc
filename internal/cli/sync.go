// internal/cli/sync.go
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arc-language/pkgx/pkg/index"
)

func (a *app) newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Download the package alias index",
		Long: `Clone the package alias index and install it into the cache directory.

Aliases map one package name to the name each manager uses, and are applied
when "aliases: true" is set in the config file.`,
		Args: cobra.NoArgs,
		RunE: a.runSync,
	}
}

func (a *app) runSync(cmd *cobra.Command, _ []string) error {
	var progress io.Writer
	if !a.config.Quiet {
		progress = a.env.Stderr
	}

	a.logger.Debug("syncing index", "url", a.config.Index.URL, "branch", a.config.Index.Branch, "cache", a.config.CachePath)
	err := index.Sync(cmd.Context(), a.config.CachePath, index.Options{
		URL:      a.config.Index.URL,
		Branch:   a.config.Index.Branch,
		Progress: progress,
	})
	if err != nil {
		return fmt.Errorf("syncing index: %w", err)
	}

	fmt.Fprintf(a.env.Stdout, "Index synced to %s\n", a.config.CachePath)
	return nil
}
