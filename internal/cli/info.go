// internal/cli/info.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show platform and package manager detection details",
		Args:  cobra.NoArgs,
		RunE:  a.runInfo,
	}
}

func (a *app) runInfo(cmd *cobra.Command, _ []string) error {
	m := a.newManager()
	report, err := m.ListManagers(cmd.Context())
	if err != nil {
		return err
	}

	var available []string
	for _, s := range report.Managers {
		if s.Available {
			available = append(available, s.Definition.ID)
		}
	}

	// Show what a package command would actually use, override included
	selected := "none"
	if d, err := m.Detect(cmd.Context()); err == nil {
		selected = d.Selected
	} else {
		a.logger.Debug("no manager selected", "err", err)
	}

	w := a.env.Stdout
	p := m.Platform()
	fmt.Fprintf(w, "Platform:    %s\n", p)
	fmt.Fprintf(w, "Identifiers: %s\n", strings.Join(p.Identifiers(), ", "))
	fmt.Fprintf(w, "Available:   %s\n", orNone(available))
	fmt.Fprintf(w, "Selected:    %s\n", selected)
	if a.config.Manager != "" {
		fmt.Fprintf(w, "Override:    %s\n", a.config.Manager)
	}
	fmt.Fprintf(w, "Cache:       %s\n", a.config.CachePath)

	return nil
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
