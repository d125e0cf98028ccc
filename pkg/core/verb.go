// pkg/core/verb.go
package core

// Verb is a unified package operation, independent of any manager's syntax
type Verb string

const (
	// VerbInstall installs one or more packages
	VerbInstall Verb = "install"
	// VerbRemove removes one or more packages
	VerbRemove Verb = "remove"
	// VerbUpdate refreshes the package lists
	VerbUpdate Verb = "update"
	// VerbUpgrade upgrades all or the given packages
	VerbUpgrade Verb = "upgrade"
	// VerbSearch searches the repositories
	VerbSearch Verb = "search"
)

// Verbs lists every unified verb in display order
var Verbs = []Verb{VerbInstall, VerbRemove, VerbUpdate, VerbUpgrade, VerbSearch}

// Mutates reports whether the verb changes installed packages or package lists
func (v Verb) Mutates() bool {
	return v != VerbSearch
}

func (v Verb) String() string {
	return string(v)
}
