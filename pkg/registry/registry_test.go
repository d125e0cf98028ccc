// pkg/registry/registry_test.go
package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/pkgx/pkg/core"
)

func TestDefaultOrder(t *testing.T) {
	r := Default()
	assert.Equal(t,
		[]string{"apt", "dnf", "yum", "microdnf", "zypper", "apk", "brew", "choco"},
		r.IDs())
	assert.Equal(t, 8, r.Len())
}

func TestDefaultDefinitionsAreComplete(t *testing.T) {
	for _, d := range Default().List() {
		t.Run(d.ID, func(t *testing.T) {
			assert.NotEmpty(t, d.DisplayName)
			assert.NotEmpty(t, d.Executable)
			assert.NotEmpty(t, d.Affinity)
			for _, v := range []core.Verb{core.VerbInstall, core.VerbRemove, core.VerbUpdate, core.VerbUpgrade} {
				assert.True(t, d.Supports(v), "%s should support %s", d.ID, v)
			}
			for verb, tpl := range d.Templates {
				hasPackages := false
				for _, tok := range tpl.Tokens {
					if tok.Kind == Packages {
						hasPackages = true
					}
				}
				assert.Equal(t, tpl.Arity != None, hasPackages, "%s %s arity", d.ID, verb)
			}
		})
	}
}

func TestUnsupportedSearch(t *testing.T) {
	r := Default()
	for _, id := range []string{"apt", "microdnf"} {
		d, ok := r.Lookup(id)
		require.True(t, ok)
		assert.False(t, d.Supports(core.VerbSearch), id)
	}
}

func TestLookupByAlias(t *testing.T) {
	r := Default()

	d, ok := r.Lookup("chocolatey")
	require.True(t, ok)
	assert.Equal(t, "choco", d.ID)

	d, ok = r.Lookup("homebrew")
	require.True(t, ok)
	assert.Equal(t, "brew", d.ID)

	_, ok = r.Lookup("pacman")
	assert.False(t, ok)
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New(apt(), apt())
	require.Error(t, err)

	clash := Definition{ID: "other", Executable: "other", Aliases: []string{"apt"}}
	_, err = New(apt(), clash)
	require.Error(t, err)

	_, err = New(Definition{ID: "x"})
	require.Error(t, err)
}

func TestListReturnsCopy(t *testing.T) {
	r := Default()
	list := r.List()
	list[0] = Definition{ID: "mutated"}
	assert.Equal(t, "apt", r.List()[0].ID)
}

func TestCatalogCannotBeMutatedByCallers(t *testing.T) {
	r := Default()

	listed := r.List()
	listed[0].Affinity[0] = "alpine"
	listed[0].Aliases = append(listed[0].Aliases, "pacman")
	tpl := listed[0].Templates[core.VerbInstall]
	tpl.Tokens[0].Value = "purge"
	delete(listed[0].Templates, core.VerbRemove)

	looked, ok := r.Lookup("apt")
	require.True(t, ok)
	looked.Templates[core.VerbUpdate] = Template{}

	fresh, ok := r.Lookup("apt")
	require.True(t, ok)
	assert.Equal(t, []string{"debian", "ubuntu"}, fresh.Affinity)
	assert.Equal(t, "install", fresh.Templates[core.VerbInstall].Tokens[0].Value)
	assert.True(t, fresh.Supports(core.VerbRemove))
	assert.NotEmpty(t, fresh.Templates[core.VerbUpdate].Tokens)
	_, ok = r.Lookup("pacman")
	assert.False(t, ok)

	assert.Equal(t, "install", Default().List()[0].Templates[core.VerbInstall].Tokens[0].Value)
}

func TestPreferredOn(t *testing.T) {
	assert.True(t, apt().PreferredOn([]string{"linux", "ubuntu", "debian"}))
	assert.False(t, apt().PreferredOn([]string{"linux", "alpine"}))
	assert.True(t, brew().PreferredOn([]string{"darwin"}))
	assert.False(t, choco().PreferredOn(nil))
}
