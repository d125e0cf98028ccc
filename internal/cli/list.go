// internal/cli/list.go
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list-managers",
		Aliases: []string{"list"},
		Short:   "List available package managers",
		Long: `List every supported package manager, whether it is installed on this
system, and which one auto-detection would pick. The --manager flag is
ignored here.`,
		Args: cobra.NoArgs,
		RunE: a.runList,
	}
}

func (a *app) runList(cmd *cobra.Command, _ []string) error {
	report, err := a.newManager().ListManagers(cmd.Context())
	if err != nil {
		return err
	}

	ok := color.New(color.FgGreen)
	missing := color.New(color.FgRed)
	w := a.env.Stdout

	fmt.Fprintln(w, "Available package managers:")
	fmt.Fprintln(w)
	for _, s := range report.Managers {
		status := missing.Sprint("[-] not available")
		if s.Available {
			status = ok.Sprint("[+] available")
		}
		auto := ""
		if s.Selected {
			auto = " (auto-detected)"
		}
		fmt.Fprintf(w, "  %-10s %-24s %s%s\n", s.Definition.ID, s.Definition.DisplayName, status, auto)
	}
	fmt.Fprintln(w)

	selected := report.Selected
	if selected == "" {
		selected = "none"
	}
	fmt.Fprintf(w, "Auto-detected package manager: %s\n", selected)

	return nil
}
