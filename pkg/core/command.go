// pkg/core/command.go
package core

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Flags modify how a verb is translated
type Flags struct {
	DryRun bool // Render the command without running it
	Quiet  bool // Add the manager's verbosity suppression flag
	Sudo   bool // Run privileged managers through sudo for mutating verbs
}

// Command is one native invocation produced by the translator
type Command struct {
	Program string   // Executable to run
	Args    []string // Arguments, each passed as a single argv entry
	DryRun  bool     // Render only
}

// Argv returns the full argument vector including the program name
func (c *Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Program)
	return append(argv, c.Args...)
}

// String renders the command as a shell-safe line. Words that need no quoting
// are left untouched, so "brew install git vim" renders as is.
func (c *Command) String() string {
	argv := c.Argv()
	words := make([]string, len(argv))
	for i, arg := range argv {
		words[i] = quoteWord(arg)
	}
	return strings.Join(words, " ")
}

func quoteWord(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return strconv.Quote(s)
	}
	return q
}

// Result is the outcome of dispatching a Command
type Result struct {
	ExitCode int
	Stdout   string // Captured output, empty unless capture is enabled
	Stderr   string
}
