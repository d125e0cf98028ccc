// pkg/platform/resolver.go
package platform

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/arc-language/pkgx/pkg/core"
	"github.com/arc-language/pkgx/pkg/registry"
)

// Detection is the result of probing the host for managers
type Detection struct {
	Platform  Platform
	Available []string // Manager ids present on the host, in registry order
	Selected  string   // Chosen manager id
}

// IsAvailable reports whether id was found on the host
func (d *Detection) IsAvailable(id string) bool {
	return contains(d.Available, id)
}

// DetectAvailable returns the ids of managers whose executable resolves on the
// search path, in registry order. Presence is all that is checked. Probes run
// concurrently; the only error is cancellation of ctx.
func DetectAvailable(ctx context.Context, reg *registry.Registry, resolver PathResolver) ([]string, error) {
	defs := reg.List()
	found := make([]bool, len(defs))

	g, gctx := errgroup.WithContext(ctx)
	for i, def := range defs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found[i] = commandExists(resolver, def.Executable)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("probing package managers: %w", err)
	}

	available := make([]string, 0, len(defs))
	for i, def := range defs {
		if found[i] {
			available = append(available, def.ID)
		}
	}
	return available, nil
}

// SelectManager picks the manager to use.
//
// Priority:
//  1. override, which must name a known manager that is available
//  2. the first available manager preferred on the platform
//  3. the first available manager
//
// Registry order decides between candidates of equal rank.
func SelectManager(reg *registry.Registry, available []string, platform Platform, override string) (string, error) {
	if override != "" {
		def, ok := reg.Lookup(override)
		if !ok {
			return "", fmt.Errorf("%w: unknown package manager %q", core.ErrManagerNotAvailable, override)
		}
		if !contains(available, def.ID) {
			return "", fmt.Errorf("%w: %s is not installed on this system", core.ErrManagerNotAvailable, def.ID)
		}
		return def.ID, nil
	}

	if len(available) == 0 {
		return "", core.ErrNoManagerFound
	}

	ids := platform.Identifiers()
	first := ""
	for _, def := range reg.List() {
		if !contains(available, def.ID) {
			continue
		}
		if def.PreferredOn(ids) {
			return def.ID, nil
		}
		if first == "" {
			first = def.ID
		}
	}

	if first == "" {
		// available only named managers outside the registry
		return "", core.ErrNoManagerFound
	}
	return first, nil
}

// Detect probes the host and selects a manager. When no manager can be
// selected the returned Detection still carries the availability report.
func Detect(ctx context.Context, reg *registry.Registry, resolver PathResolver, platform Platform, override string) (*Detection, error) {
	available, err := DetectAvailable(ctx, reg, resolver)
	if err != nil {
		return nil, err
	}

	d := &Detection{
		Platform:  platform,
		Available: available,
	}

	selected, err := SelectManager(reg, available, platform, override)
	if err != nil {
		return d, err
	}
	d.Selected = selected

	return d, nil
}
