// pkg/platform/utils.go
package platform

import (
	"os/exec"
)

// PathResolver resolves an executable name to a path on the search path
type PathResolver interface {
	LookPath(file string) (string, error)
}

// ExecResolver resolves executables with exec.LookPath
type ExecResolver struct{}

// LookPath searches for file in the directories named by PATH
func (ExecResolver) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// commandExists checks if a command is available through r
func commandExists(r PathResolver, cmd string) bool {
	_, err := r.LookPath(cmd)
	return err == nil
}

// contains checks if a string slice contains a value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
