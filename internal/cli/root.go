// internal/cli/root.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arc-language/pkgx"
	"github.com/arc-language/pkgx/pkg/alias"
	"github.com/arc-language/pkgx/pkg/core"
	"github.com/arc-language/pkgx/pkg/dispatch"
	"github.com/arc-language/pkgx/pkg/platform"
	"github.com/arc-language/pkgx/pkg/registry"
)

// Env is everything the CLI takes from the host. Tests replace the resolver
// and runner to simulate any set of installed managers.
type Env struct {
	Resolver platform.PathResolver
	Runner   dispatch.Runner
	Platform *platform.Platform // nil means detect the running host
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// DefaultEnv returns the real host environment
func DefaultEnv() Env {
	return Env{
		Resolver: platform.ExecResolver{},
		Runner:   dispatch.ExecRunner{},
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// annotationConfigOptional marks commands that run even when an explicit
// --config file does not exist yet
const annotationConfigOptional = "pkgx/config-optional"

// app holds the state of one invocation
type app struct {
	env Env

	cfgFile string
	manager string
	dryRun  bool
	quiet   bool
	sudo    bool
	debug   bool

	config *core.Config
	logger *log.Logger
}

// Execute runs the CLI with the process arguments and returns the exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, os.Args[1:], DefaultEnv())
}

// Run executes the CLI with args in env and returns the exit code
func Run(ctx context.Context, args []string, env Env) int {
	a := &app{env: env}
	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(env.Stdin)
	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		a.reportError(err)
	}
	return pkgx.ExitCode(err)
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pkgx",
		Short: "Universal Package Manager",
		Long: `pkgx - Universal Package Manager

A wrapper for the system package managers: apt, dnf, yum, microdnf, zypper,
apk, brew and choco. pkgx detects the manager that fits this system and
translates one set of commands into its native syntax.`,
		Example: `  pkgx install git vim          # Install packages
  pkgx remove old-package       # Remove packages
  pkgx update                   # Update package lists
  pkgx upgrade                  # Upgrade all packages
  pkgx upgrade git vim          # Upgrade specific packages
  pkgx search firefox           # Search for packages
  pkgx list-managers            # List available package managers
  pkgx install -n -m brew git   # Show what brew would run`,
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
	}
	rootCmd.SetVersionTemplate("pkgx version {{.Version}}\n")

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/pkgx/config.yaml)")
	flags.StringVarP(&a.manager, "manager", "m", "", "force a specific package manager ("+strings.Join(registry.Default().IDs(), ", ")+")")
	flags.BoolVarP(&a.dryRun, "dry-run", "n", false, "show the command that would be run")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "ask the package manager for less output")
	flags.BoolVar(&a.sudo, "sudo", false, "run privileged package managers through sudo")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(a.newInstallCmd())
	rootCmd.AddCommand(a.newRemoveCmd())
	rootCmd.AddCommand(a.newUpdateCmd())
	rootCmd.AddCommand(a.newUpgradeCmd())
	rootCmd.AddCommand(a.newSearchCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newInfoCmd())
	rootCmd.AddCommand(a.newSyncCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(a.newVersionCmd())

	return rootCmd
}

// initConfig loads the config file and lets explicitly set flags override it
func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	a.logger = log.NewWithOptions(a.env.Stderr, log.Options{
		Prefix: "pkgx",
		Level:  log.WarnLevel,
	})

	cfg, err := core.LoadConfig(a.cfgFile)
	if err != nil {
		if a.cfgFile != "" && !(cmd.Annotations[annotationConfigOptional] == "true" && errors.Is(err, os.ErrNotExist)) {
			return fmt.Errorf("loading config: %w", err)
		}
		a.logger.Warn("ignoring config", "err", err)
		cfg = core.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("manager") {
		cfg.Manager = a.manager
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = a.dryRun
	}
	if flags.Changed("quiet") {
		cfg.Quiet = a.quiet
	}
	if flags.Changed("sudo") {
		cfg.Sudo = a.sudo
	}
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}

	if cfg.Debug {
		a.logger.SetLevel(log.DebugLevel)
	}
	a.config = cfg

	return nil
}

// newManager builds the pipeline from the loaded config and the environment
func (a *app) newManager() *pkgx.Manager {
	opts := pkgx.Options{
		Resolver: a.env.Resolver,
		Platform: a.env.Platform,
		Override: a.config.Manager,
		Flags: core.Flags{
			DryRun: a.config.DryRun,
			Quiet:  a.config.Quiet,
			Sudo:   a.config.Sudo && !isRoot(),
		},
		Runner: a.env.Runner,
		Streams: &dispatch.Streams{
			In:  a.env.Stdin,
			Out: a.env.Stdout,
			Err: a.env.Stderr,
		},
		Logger: a.logger,
	}
	if a.config.Aliases {
		opts.Aliases = alias.New(a.config.CachePath)
	}
	return pkgx.NewManager(opts)
}

// reportError prints err the way the user should see it. A native manager
// that exited with an error has already said why, so nothing is added.
func (a *app) reportError(err error) {
	w := a.env.Stderr
	if w == nil {
		w = io.Discard
	}

	var native *core.NativeError
	switch {
	case errors.As(err, &native):
		if a.logger != nil {
			a.logger.Debug("package manager failed", "err", err)
		}
		// a killed manager had no chance to explain itself
		if native.Signal != 0 {
			fmt.Fprintf(w, "Error: %v\n", native)
		}
		return
	case errors.Is(err, core.ErrInterrupted):
		fmt.Fprintln(w, "\nOperation cancelled by user")
		return
	}

	msg := err
	var perr *core.Error
	if errors.As(err, &perr) {
		if a.logger != nil {
			a.logger.Debug("pipeline failed", "stage", perr.Op, "manager", perr.Manager)
		}
		msg = perr.Err
	}
	fmt.Fprintf(w, "Error: %v\n", msg)

	switch {
	case errors.Is(err, core.ErrNoManagerFound):
		fmt.Fprintf(w, "Supported package managers: %s\n", strings.Join(registry.Default().IDs(), ", "))
	case errors.Is(err, core.ErrManagerNotAvailable):
		fmt.Fprintln(w, "Use 'pkgx list-managers' to see available managers")
	}
}

// isRoot reports whether the process already has root privileges. Always
// false on Windows, where Geteuid returns -1.
var isRoot = func() bool {
	return os.Geteuid() == 0
}
