package platform

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/shellsim/pkg/shellsim/catalog"
	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
	"github.com/arthur-debert/shellsim/pkg/shellsim/vfs"
)

// Mac returns the macOS/zsh profile.
func Mac() *Profile {
	return &Profile{
		Platform: core.PlatformMac,
		Name:     "mac",
		Shell:    "zsh",
		User:     "admin",
		Host:     "macbook-pro.local",
		Start:    vfs.Path{"~"},
		Seed: []SeedEntry{
			Dir("~"),
			Dir("~/Projects"),
			Dir("~/Projects/website"),
			File("~/Projects/website/index.html", "<html>Hello World</html>"),
			File("~/Projects/notes.txt", "Meeting notes:\n- Review PRs\n- Deploy to prod"),
			Dir("~/Downloads"),
			File("~/config.yml", "theme: dark\nversion: 1.0.0"),
		},
		BootLines: func(now time.Time) []string {
			return []string{
				"Darwin kernel version 23.4.0: root:xnu-10063.101.15~2/RELEASE_ARM64_T6000",
				"System Integrity Protection: enabled",
				"Login: admin @ tty1",
				"Last login: " + utcString(now),
			}
		},
		BootDelay: 150 * time.Millisecond,
		Aliases:   map[string]string{},
		Extensions: map[string]Extension{
			"git": macGit,
			"npm": macNpm,
		},
		Help:   "Available shell commands: ls, cd, pwd, mkdir, touch, rm, cat, whoami, date, history, echo",
		Prompt: macPrompt,
		Pwd:    macPwd,
		Date: func(now time.Time) string {
			return now.Format("Mon Jan _2 15:04:05 MST 2006")
		},
		Listing: unixListing,
		Messages: Messages{
			CdNotFound: func(verb, target string, _ vfs.Path) string {
				return fmt.Sprintf("cd: no such file or directory: %s", target)
			},
			NotFound: func(verb, target string, _ vfs.Path) string {
				return fmt.Sprintf("%s: %s: No such file or directory", verb, target)
			},
			IsADirectory: func(verb, target string, _ vfs.Path) string {
				return fmt.Sprintf("%s: %s: Is a directory", verb, target)
			},
			InvalidName: func(verb, target string, _ vfs.Path) string {
				return fmt.Sprintf("%s: %s: Invalid argument", verb, target)
			},
			Unrecognized: func(verb string) string {
				return "zsh: command not found: " + verb
			},
			Catalog: func(_ string, e catalog.Entry) core.Line {
				return core.System("[SIMULATED EXECUTION]: " + e.Desc)
			},
		},
	}
}

func macPrompt(cwd vfs.Path) string {
	dir := "~"
	if len(cwd) > 1 {
		dir = cwd.Base()
	}
	return fmt.Sprintf("admin@macbook %s %%", dir)
}

func macPwd(cwd vfs.Path) string {
	segs := cwd.Clone()
	if len(segs) > 0 && segs[0] == "~" {
		segs[0] = "Users/admin"
	}
	return "/" + strings.Join(segs, "/")
}

func macGit(args []string, cwd vfs.Path) []core.Line {
	switch argOr(args, 0, "") {
	case "status":
		return []core.Line{core.Output(joinBlock(
			"On branch main",
			"Your branch is up to date with 'origin/main'.",
			"",
			"nothing to commit, working tree clean",
		))}
	case "init":
		return []core.Line{core.Output(fmt.Sprintf("Initialized empty Git repository in %s/.git/", macPwd(cwd)))}
	}
	return []core.Line{core.Output("usage: git <command> [<args>]")}
}

func macNpm(args []string, _ vfs.Path) []core.Line {
	if argOr(args, 0, "") == "install" {
		return []core.Line{core.Output(joinBlock(
			"added 142 packages, and audited 143 packages in 842ms",
			"",
			"found 0 vulnerabilities",
		))}
	}
	return []core.Line{core.Output("npm <command>")}
}

// unixListing joins names with two spaces and marks directories with a
// trailing slash.
func unixListing(_ vfs.Path, entries []vfs.Entry, _ time.Time) string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Kind == vfs.KindDir {
			names = append(names, e.Name+"/")
		} else {
			names = append(names, e.Name)
		}
	}
	return strings.Join(names, "  ")
}

func utcString(now time.Time) string {
	return now.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT")
}
