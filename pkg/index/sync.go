// pkg/index/sync.go

// Package index refreshes the local package alias cache from a git repository.
package index

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/arc-language/pkgx/pkg/core"
)

// Options configures Sync
type Options struct {
	URL      string    // Repository to clone, defaults to core.DefaultIndexURL
	Branch   string    // Branch to clone, defaults to core.DefaultIndexBranch
	Progress io.Writer // Receives clone progress, may be nil
}

// Sync shallow-clones the index repository and replaces <cacheDir>/deps with
// the repository's deps/ tree
func Sync(ctx context.Context, cacheDir string, opts Options) error {
	if opts.URL == "" {
		opts.URL = core.DefaultIndexURL
	}
	if opts.Branch == "" {
		opts.Branch = core.DefaultIndexBranch
	}

	tempDir, err := os.MkdirTemp("", "pkgx-clone-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	_, err = git.PlainCloneContext(ctx, tempDir, false, &git.CloneOptions{
		URL:           opts.URL,
		ReferenceName: plumbing.NewBranchReferenceName(opts.Branch),
		SingleBranch:  true,
		Depth:         1,
		Progress:      opts.Progress,
	})
	if err != nil {
		return fmt.Errorf("git clone failed: %w", err)
	}

	return Install(filepath.Join(tempDir, "deps"), cacheDir)
}

// Install replaces <cacheDir>/deps with a copy of srcDeps. The new tree is
// staged next to the old one so a failed copy leaves the cache untouched.
func Install(srcDeps, cacheDir string) error {
	info, err := os.Stat(srcDeps)
	if err != nil {
		return fmt.Errorf("index has no deps directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("index deps is not a directory: %s", srcDeps)
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	staging, err := os.MkdirTemp(cacheDir, ".deps-*")
	if err != nil {
		return fmt.Errorf("creating staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := os.Chmod(staging, 0755); err != nil {
		return fmt.Errorf("preparing staging dir: %w", err)
	}
	if err := copyDir(srcDeps, staging); err != nil {
		return fmt.Errorf("copying deps: %w", err)
	}

	depsDir := filepath.Join(cacheDir, "deps")
	if err := os.RemoveAll(depsDir); err != nil {
		return fmt.Errorf("removing old deps: %w", err)
	}
	if err := os.Rename(staging, depsDir); err != nil {
		return fmt.Errorf("installing deps: %w", err)
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}
