// internal/cli/config.go
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/pkgx/pkg/core"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := core.MarshalConfig(a.config)
			if err != nil {
				return err
			}
			_, err = a.env.Stdout.Write(data)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			annotationConfigOptional: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := core.ResolveConfigPath(a.cfgFile)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config file: %w", err)
			}

			if err := core.SaveConfig(core.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Fprintf(a.env.Stdout, "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	cmd.AddCommand(show, initCmd)
	return cmd
}
