// Package platform describes the simulated operating systems. A Profile is
// pure data plus small formatting functions; the interpreter owns behavior.
package platform

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/shellsim/pkg/shellsim/catalog"
	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
	"github.com/arthur-debert/shellsim/pkg/shellsim/vfs"
)

// Extension is a platform-specific command that does not touch the
// filesystem. It returns a canned transcript block.
type Extension func(args []string, cwd vfs.Path) []core.Line

// PathMessage formats a failure about target, reported for the typed verb
// while the working directory is cwd.
type PathMessage func(verb, target string, cwd vfs.Path) string

// Messages holds the error idioms of a platform's shell.
type Messages struct {
	// CdNotFound is used when cd names something that is not a directory child.
	CdNotFound PathMessage
	// NotFound is used by cat and rm for a missing entry.
	NotFound PathMessage
	// IsADirectory is used by cat on a directory.
	IsADirectory PathMessage
	// InvalidName is used by mkdir and touch for unusable names.
	InvalidName PathMessage
	// Unrecognized is used when neither a built-in nor the catalog knows verb.
	Unrecognized func(verb string) string
	// Catalog renders the simulated execution of a cataloged command.
	Catalog func(verb string, e catalog.Entry) core.Line
}

// Profile is the set of constants that give a simulated terminal its flavor.
type Profile struct {
	Platform core.Platform
	Name     string
	Shell    string
	User     string
	Host     string

	// Start is the initial working directory, also the target of a bare cd.
	Start vfs.Path
	// Seed declares the initial filesystem contents.
	Seed []SeedEntry

	// BootLines renders the banner played before input is accepted.
	BootLines func(now time.Time) []string
	// BootDelay is the advisory pause between boot lines.
	BootDelay time.Duration

	// Aliases maps typed verbs to the built-in they invoke.
	Aliases map[string]string
	// Extensions are consulted after the generic and filesystem built-ins.
	Extensions map[string]Extension

	Help string

	Prompt  func(cwd vfs.Path) string
	Pwd     func(cwd vfs.Path) string
	Date    func(now time.Time) string
	Listing func(cwd vfs.Path, entries []vfs.Entry, now time.Time) string
	// MkdirEcho optionally reports a created directory. Nil means silent.
	MkdirEcho func(cwd vfs.Path, name string, now time.Time) string

	Messages Messages
}

// Canonical resolves an alias to the built-in verb it stands for.
func (p *Profile) Canonical(verb string) string {
	if target, ok := p.Aliases[verb]; ok {
		return target
	}
	return verb
}

// Lookup returns a fresh profile for a platform name such as "mac".
func Lookup(name string) (*Profile, error) {
	plat, err := core.ParsePlatform(name)
	if err != nil {
		return nil, err
	}
	return ForPlatform(plat)
}

// ForPlatform returns a fresh profile for plat.
func ForPlatform(plat core.Platform) (*Profile, error) {
	switch plat {
	case core.PlatformMac:
		return Mac(), nil
	case core.PlatformLinux:
		return Linux(), nil
	case core.PlatformWindows:
		return Windows(), nil
	}
	return nil, fmt.Errorf("no terminal profile for platform %q", plat)
}

// joinBlock joins lines of a multi-line canned block.
func joinBlock(lines ...string) string {
	return strings.Join(lines, "\n")
}

func argOr(args []string, i int, fallback string) string {
	if i < len(args) {
		return args[i]
	}
	return fallback
}
