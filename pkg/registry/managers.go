// pkg/registry/managers.go
package registry

import "github.com/arc-language/pkgx/pkg/core"

func lit(s string) Token   { return Token{Kind: Literal, Value: s} }
func yes(s string) Token   { return Token{Kind: Confirm, Value: s} }
func quiet(s string) Token { return Token{Kind: Quiet, Value: s} }
func all(s string) Token   { return Token{Kind: AllIfEmpty, Value: s} }

var pkgs = Token{Kind: Packages}

func tmpl(arity Arity, tokens ...Token) Template {
	return Template{Tokens: tokens, Arity: arity}
}

func rhelFamily() []string {
	return []string{"fedora", "rhel", "centos"}
}

// apt drives Debian and Ubuntu's apt. apt has no search template: its search
// output is not meant for scripting and pkgx does not wrap it.
func apt() Definition {
	return Definition{
		ID:          "apt",
		DisplayName: "APT (Debian/Ubuntu)",
		Executable:  "apt",
		Affinity:    []string{"debian", "ubuntu"},
		Privileged:  true,
		Templates: map[core.Verb]Template{
			core.VerbInstall: tmpl(Required, lit("install"), quiet("-q"), yes("-y"), pkgs),
			core.VerbRemove:  tmpl(Required, lit("remove"), quiet("-q"), yes("-y"), pkgs),
			core.VerbUpdate:  tmpl(None, lit("update"), quiet("-q")),
			core.VerbUpgrade: tmpl(Optional, lit("upgrade"), quiet("-q"), yes("-y"), pkgs),
		},
	}
}

// dnf drives Fedora and RHEL 8+ dnf
func dnf() Definition {
	return Definition{
		ID:          "dnf",
		DisplayName: "DNF (Fedora/RHEL)",
		Executable:  "dnf",
		Affinity:    rhelFamily(),
		Privileged:  true,
		Templates:   yumStyle(),
	}
}

// yum drives legacy RHEL/CentOS yum
func yum() Definition {
	return Definition{
		ID:          "yum",
		DisplayName: "YUM (RHEL/CentOS)",
		Executable:  "yum",
		Affinity:    rhelFamily(),
		Privileged:  true,
		Templates:   yumStyle(),
	}
}

// microDnf drives microdnf, found in minimal container images. It has no search.
func microDnf() Definition {
	return Definition{
		ID:          "microdnf",
		DisplayName: "microdnf (minimal RHEL)",
		Executable:  "microdnf",
		Affinity:    rhelFamily(),
		Privileged:  true,
		Templates: map[core.Verb]Template{
			core.VerbInstall: tmpl(Required, lit("install"), quiet("-q"), yes("-y"), pkgs),
			core.VerbRemove:  tmpl(Required, lit("remove"), quiet("-q"), yes("-y"), pkgs),
			core.VerbUpdate:  tmpl(None, lit("repolist"), quiet("-q")),
			core.VerbUpgrade: tmpl(Optional, lit("update"), quiet("-q"), yes("-y"), pkgs),
		},
	}
}

// zypper drives openSUSE and SLES zypper. --quiet is a global option and must
// precede the command.
func zypper() Definition {
	return Definition{
		ID:          "zypper",
		DisplayName: "Zypper (openSUSE/SLES)",
		Executable:  "zypper",
		Affinity:    []string{"suse", "opensuse", "sles"},
		Privileged:  true,
		Templates: map[core.Verb]Template{
			core.VerbInstall: tmpl(Required, quiet("--quiet"), lit("install"), yes("-y"), pkgs),
			core.VerbRemove:  tmpl(Required, quiet("--quiet"), lit("remove"), yes("-y"), pkgs),
			core.VerbUpdate:  tmpl(None, quiet("--quiet"), lit("refresh")),
			core.VerbUpgrade: tmpl(Optional, quiet("--quiet"), lit("update"), yes("-y"), pkgs),
			core.VerbSearch:  tmpl(Required, quiet("--quiet"), lit("search"), pkgs),
		},
	}
}

// apk drives Alpine's apk, which never prompts
func apk() Definition {
	return Definition{
		ID:          "apk",
		DisplayName: "APK (Alpine)",
		Executable:  "apk",
		Affinity:    []string{"alpine"},
		Privileged:  true,
		Templates: map[core.Verb]Template{
			core.VerbInstall: tmpl(Required, lit("add"), quiet("-q"), pkgs),
			core.VerbRemove:  tmpl(Required, lit("del"), quiet("-q"), pkgs),
			core.VerbUpdate:  tmpl(None, lit("update"), quiet("-q")),
			core.VerbUpgrade: tmpl(Optional, lit("upgrade"), quiet("-q"), pkgs),
			core.VerbSearch:  tmpl(Required, lit("search"), pkgs),
		},
	}
}

// brew drives Homebrew. Homebrew refuses to run as root.
func brew() Definition {
	return Definition{
		ID:          "brew",
		DisplayName: "Homebrew",
		Executable:  "brew",
		Aliases:     []string{"homebrew"},
		Affinity:    []string{"darwin"},
		Templates: map[core.Verb]Template{
			core.VerbInstall: tmpl(Required, lit("install"), quiet("--quiet"), pkgs),
			core.VerbRemove:  tmpl(Required, lit("uninstall"), quiet("--quiet"), pkgs),
			core.VerbUpdate:  tmpl(None, lit("update"), quiet("--quiet")),
			core.VerbUpgrade: tmpl(Optional, lit("upgrade"), quiet("--quiet"), pkgs),
			core.VerbSearch:  tmpl(Required, lit("search"), pkgs),
		},
	}
}

// choco drives Chocolatey. Its confirmation flag goes after the package list.
func choco() Definition {
	return Definition{
		ID:          "choco",
		DisplayName: "Chocolatey (Windows)",
		Executable:  "choco",
		Aliases:     []string{"chocolatey"},
		Affinity:    []string{"windows"},
		Templates: map[core.Verb]Template{
			core.VerbInstall: tmpl(Required, lit("install"), pkgs, quiet("--no-progress"), yes("-y")),
			core.VerbRemove:  tmpl(Required, lit("uninstall"), pkgs, quiet("--no-progress"), yes("-y")),
			core.VerbUpdate:  tmpl(None, lit("outdated")),
			core.VerbUpgrade: tmpl(Optional, lit("upgrade"), all("all"), pkgs, quiet("--no-progress"), yes("-y")),
			core.VerbSearch:  tmpl(Required, lit("search"), pkgs),
		},
	}
}

func yumStyle() map[core.Verb]Template {
	return map[core.Verb]Template{
		core.VerbInstall: tmpl(Required, lit("install"), quiet("-q"), yes("-y"), pkgs),
		core.VerbRemove:  tmpl(Required, lit("remove"), quiet("-q"), yes("-y"), pkgs),
		core.VerbUpdate:  tmpl(None, lit("check-update"), quiet("-q")),
		core.VerbUpgrade: tmpl(Optional, lit("update"), quiet("-q"), yes("-y"), pkgs),
		core.VerbSearch:  tmpl(Required, lit("search"), quiet("-q"), pkgs),
	}
}

// Default returns the built-in catalog in priority order. Every call builds
// fresh definitions.
func Default() *Registry {
	return MustNew(apt(), dnf(), yum(), microDnf(), zypper(), apk(), brew(), choco())
}
