// pkgx.go
package pkgx

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/arc-language/pkgx/pkg/alias"
	"github.com/arc-language/pkgx/pkg/core"
	"github.com/arc-language/pkgx/pkg/dispatch"
	"github.com/arc-language/pkgx/pkg/platform"
	"github.com/arc-language/pkgx/pkg/registry"
	"github.com/arc-language/pkgx/pkg/translate"
)

// Re-export core types for convenience
type (
	Verb      = core.Verb
	Flags     = core.Flags
	Command   = core.Command
	Result    = core.Result
	Config    = core.Config
	Platform  = platform.Platform
	Detection = platform.Detection
)

// Re-export verbs
const (
	VerbInstall = core.VerbInstall
	VerbRemove  = core.VerbRemove
	VerbUpdate  = core.VerbUpdate
	VerbUpgrade = core.VerbUpgrade
	VerbSearch  = core.VerbSearch
)

// Options are the explicit inputs of the pipeline. Nothing is read from
// global state; zero values fall back to the real host.
type Options struct {
	Registry *registry.Registry    // Defaults to registry.Default()
	Resolver platform.PathResolver // Defaults to exec.LookPath
	Platform *platform.Platform    // Defaults to platform.DetectHost()
	Override string                // Manager id or alias chosen by the user
	Flags    core.Flags            // Dry run, quiet, sudo
	Aliases  *alias.Registry       // Optional package name aliases
	Runner   dispatch.Runner       // Defaults to dispatch.ExecRunner
	Streams  *dispatch.Streams     // Defaults to the process's streams
	Capture  bool                  // Also record the manager's output in the Result
	Logger   *log.Logger           // Defaults to a discarding logger
}

// Manager is the universal package manager
type Manager struct {
	registry   *registry.Registry
	resolver   platform.PathResolver
	platform   platform.Platform
	override   string
	flags      core.Flags
	aliases    *alias.Registry
	dispatcher *dispatch.Dispatcher
	logger     *log.Logger
}

// NewManager creates a Manager from opts
func NewManager(opts Options) *Manager {
	m := &Manager{
		registry: opts.Registry,
		resolver: opts.Resolver,
		override: opts.Override,
		flags:    opts.Flags,
		aliases:  opts.Aliases,
		logger:   opts.Logger,
	}

	if m.registry == nil {
		m.registry = registry.Default()
	}
	if m.resolver == nil {
		m.resolver = platform.ExecResolver{}
	}
	if opts.Platform != nil {
		m.platform = *opts.Platform
	} else {
		m.platform = platform.DetectHost()
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}

	dopts := []dispatch.Option{dispatch.WithLogger(m.logger)}
	if opts.Runner != nil {
		dopts = append(dopts, dispatch.WithRunner(opts.Runner))
	}
	if opts.Streams != nil {
		dopts = append(dopts, dispatch.WithStreams(*opts.Streams))
	}
	if opts.Capture {
		dopts = append(dopts, dispatch.WithCapture())
	}
	m.dispatcher = dispatch.New(dopts...)

	return m
}

// Registry returns the manager catalog in use
func (m *Manager) Registry() *registry.Registry {
	return m.registry
}

// Platform returns the platform managers are selected for
func (m *Manager) Platform() platform.Platform {
	return m.platform
}

// Detect probes the host and selects a manager. On selection failure the
// returned Detection still reports what is available.
func (m *Manager) Detect(ctx context.Context) (*platform.Detection, error) {
	return m.detect(ctx, m.override)
}

func (m *Manager) detect(ctx context.Context, override string) (*platform.Detection, error) {
	m.logger.Debug("detecting", "platform", m.platform.String(), "override", override)

	d, err := platform.Detect(ctx, m.registry, m.resolver, m.platform, override)
	if d == nil {
		return nil, &core.Error{Op: "detect", Err: err}
	}
	m.logger.Debug("detected", "available", d.Available)
	if err != nil {
		return d, &core.Error{Op: "select", Manager: override, Err: err}
	}
	m.logger.Debug("selected", "manager", d.Selected)

	return d, nil
}

// Translate builds the native command for verb on the manager with id
func (m *Manager) Translate(id string, verb core.Verb, packages []string) (*core.Command, error) {
	def, ok := m.registry.Lookup(id)
	if !ok {
		return nil, &core.Error{Op: "translate", Manager: id, Err: core.ErrManagerNotAvailable}
	}

	names := packages
	if m.aliases != nil && len(packages) > 0 {
		resolved, err := m.aliases.ResolveAll(packages, def.ID)
		if err != nil {
			return nil, &core.Error{Op: "translate", Manager: def.ID, Err: err}
		}
		names = resolved
		m.logger.Debug("resolved aliases", "manager", def.ID, "from", packages, "to", names)
	}

	cmd, err := translate.Translate(def, verb, names, m.flags)
	if err != nil {
		return nil, &core.Error{Op: "translate", Manager: def.ID, Err: err}
	}
	m.logger.Debug("translated", "verb", verb, "command", cmd.String())

	return cmd, nil
}

// Execute runs or, in dry-run mode, prints cmd
func (m *Manager) Execute(ctx context.Context, cmd *core.Command) (*core.Result, error) {
	res, err := m.dispatcher.Execute(ctx, cmd)
	if err != nil {
		return res, &core.Error{Op: "execute", Err: err}
	}
	return res, nil
}

// Run is the whole pipeline: detect, select, translate, then execute
func (m *Manager) Run(ctx context.Context, verb core.Verb, packages []string) (*core.Result, error) {
	d, err := m.Detect(ctx)
	if err != nil {
		return nil, err
	}

	cmd, err := m.Translate(d.Selected, verb, packages)
	if err != nil {
		return nil, err
	}

	return m.Execute(ctx, cmd)
}

// ManagerStatus is one row of the availability report
type ManagerStatus struct {
	Definition registry.Definition
	Available  bool
	Selected   bool
}

// Report is the availability of every known manager
type Report struct {
	Platform platform.Platform
	Managers []ManagerStatus
	Selected string // Empty when nothing could be selected
}

// ListManagers reports every known manager with its availability and the
// manager auto-detection would pick. Any override is ignored, and finding no
// manager is not an error here: Selected is left empty.
func (m *Manager) ListManagers(ctx context.Context) (*Report, error) {
	d, err := m.detect(ctx, "")
	if d == nil {
		return nil, err
	}

	r := &Report{Platform: m.platform, Selected: d.Selected}
	for _, def := range m.registry.List() {
		r.Managers = append(r.Managers, ManagerStatus{
			Definition: def,
			Available:  d.IsAvailable(def.ID),
			Selected:   def.ID == d.Selected,
		})
	}
	return r, nil
}
