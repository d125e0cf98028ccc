// pkg/platform/detect.go
package platform

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
)

// Platform identifies the host a manager is selected for
type Platform struct {
	OS     string   // linux, darwin, windows
	Distro string   // os-release ID, e.g. ubuntu (Linux only)
	Like   []string // os-release ID_LIKE plus release-file families
}

// Identifiers returns every identifier manager affinities are matched against:
// the OS name, the distribution id and its ID_LIKE families
func (p Platform) Identifiers() []string {
	ids := []string{p.OS}
	if p.Distro != "" {
		ids = append(ids, p.Distro)
	}
	for _, l := range p.Like {
		if !contains(ids, l) {
			ids = append(ids, l)
		}
	}
	return ids
}

// String returns a string representation of the platform
func (p Platform) String() string {
	if p.Distro == "" {
		return p.OS
	}
	if len(p.Like) == 0 {
		return fmt.Sprintf("%s/%s", p.OS, p.Distro)
	}
	return fmt.Sprintf("%s/%s (like %s)", p.OS, p.Distro, strings.Join(p.Like, " "))
}

// releaseFiles maps distribution marker files to the family they imply.
// Paths are relative to the filesystem root for use with fs.FS.
var releaseFiles = []struct {
	path   string
	family string
}{
	{"etc/debian_version", "debian"},
	{"etc/redhat-release", "rhel"},
	{"etc/fedora-release", "fedora"},
	{"etc/alpine-release", "alpine"},
	{"etc/SuSE-release", "suse"},
	{"etc/SUSE-brand", "suse"},
}

// DetectHost describes the running host
func DetectHost() Platform {
	return DetectHostFS(runtime.GOOS, os.DirFS("/"))
}

// DetectHostFS describes a host running goos whose root filesystem is fsys.
// Distribution data is only read on Linux.
func DetectHostFS(goos string, fsys fs.FS) Platform {
	p := Platform{OS: goos}
	if goos != "linux" || fsys == nil {
		return p
	}

	if data, err := fs.ReadFile(fsys, "etc/os-release"); err == nil {
		p.Distro, p.Like = parseOSRelease(data)
	} else if data, err := fs.ReadFile(fsys, "usr/lib/os-release"); err == nil {
		p.Distro, p.Like = parseOSRelease(data)
	}

	for _, rf := range releaseFiles {
		if _, err := fs.Stat(fsys, rf.path); err == nil && !contains(p.Like, rf.family) && p.Distro != rf.family {
			p.Like = append(p.Like, rf.family)
		}
	}

	return p
}

// parseOSRelease extracts ID and ID_LIKE from an os-release file
func parseOSRelease(data []byte) (string, []string) {
	var id string
	var like []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.ToLower(strings.Trim(value, `"'`))
		switch key {
		case "ID":
			id = value
		case "ID_LIKE":
			like = strings.Fields(value)
		}
	}

	return id, like
}
