// pkg/alias/alias_test.go
package alias

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEntry(t *testing.T, cacheDir, name, body string) {
	t.Helper()
	dir := filepath.Join(cacheDir, "deps", name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.toml"), []byte(body), 0o644))
}

func TestResolve(t *testing.T) {
	cache := t.TempDir()
	writeEntry(t, cache, "sqlite3", `
name = "sqlite3"
libs = ["sqlite3"]

[backends]
apt = "libsqlite3-dev"
dnf = "sqlite-devel"
`)
	r := New(cache)

	tests := []struct {
		name    string
		pkg     string
		manager string
		want    string
	}{
		{"mapped", "sqlite3", "apt", "libsqlite3-dev"},
		{"other manager mapped", "sqlite3", "dnf", "sqlite-devel"},
		{"entry without mapping", "sqlite3", "brew", "sqlite3"},
		{"no entry", "git", "apt", "git"},
		{"path traversal is never read", "../sqlite3", "apt", "../sqlite3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.pkg, tt.manager)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAllKeepsOrder(t *testing.T) {
	cache := t.TempDir()
	writeEntry(t, cache, "zlib", "name = \"zlib\"\n[backends]\napk = \"zlib-dev\"\n")

	got, err := New(cache).ResolveAll([]string{"curl", "zlib", "make"}, "apk")
	require.NoError(t, err)
	assert.Equal(t, []string{"curl", "zlib-dev", "make"}, got)
}

func TestLoadReportsParseErrors(t *testing.T) {
	cache := t.TempDir()
	writeEntry(t, cache, "broken", "name = ")

	_, err := New(cache).Load("broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = New(cache).Resolve("broken", "apt")
	require.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	_, err := New(t.TempDir()).Load("nothing")
	assert.ErrorIs(t, err, ErrNotFound)
}
