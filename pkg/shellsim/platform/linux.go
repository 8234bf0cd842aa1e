package platform

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/shellsim/pkg/shellsim/catalog"
	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
	"github.com/arthur-debert/shellsim/pkg/shellsim/vfs"
)

// Linux returns the Ubuntu/bash profile.
func Linux() *Profile {
	return &Profile{
		Platform: core.PlatformLinux,
		Name:     "linux",
		Shell:    "bash",
		User:     "root",
		Host:     "ubuntu-server",
		Start:    vfs.Path{"~"},
		Seed: []SeedEntry{
			Dir("~"),
			Dir("~/scripts"),
			File("~/scripts/deploy.sh", "#!/bin/bash\necho \"Deploying...\""),
			File("~/server.conf", "port=8080\nhost=localhost"),
		},
		BootLines: func(now time.Time) []string {
			return []string{
				"Welcome to Ubuntu 24.04 LTS (GNU/Linux 6.8.0-31-generic x86_64)",
				" * Documentation:  https://help.ubuntu.com",
				" * Management:     https://landscape.canonical.com",
				" * Support:        https://ubuntu.com/pro",
				"",
				"System information as of " + utcString(now),
				"System load:  0.08               Processes:             102",
				"Usage of /:   12.4% of 38.60GB   Users logged in:       1",
				"Memory usage: 24%                IPv4 address for eth0: 192.168.1.42",
				"",
				"0 updates can be applied immediately.",
			}
		},
		BootDelay: 100 * time.Millisecond,
		Aliases:   map[string]string{},
		Extensions: map[string]Extension{
			"sudo":    linuxSudo,
			"apt":     linuxApt,
			"apt-get": linuxApt,
			"top":     linuxTop,
			"htop":    linuxTop,
		},
		Help:   "GNU bash, version 5.1.16(1)-release. Commands: ls, cd, mkdir, touch, rm, cat, apt, sudo, top...",
		Prompt: func(cwd vfs.Path) string { return fmt.Sprintf("root@ubuntu:%s#", linuxDisplay(cwd)) },
		Pwd: func(cwd vfs.Path) string {
			if len(cwd) <= 1 {
				return "/home/root"
			}
			return "/home/root/" + strings.Join(cwd[1:], "/")
		},
		Date:    utcString,
		Listing: unixListing,
		Messages: Messages{
			CdNotFound: func(_, target string, _ vfs.Path) string {
				return fmt.Sprintf("bash: cd: %s: No such file or directory", target)
			},
			NotFound: func(verb, target string, _ vfs.Path) string {
				if verb == "rm" {
					return fmt.Sprintf("rm: cannot remove '%s': No such file or directory", target)
				}
				return fmt.Sprintf("%s: %s: No such file or directory", verb, target)
			},
			IsADirectory: func(verb, target string, _ vfs.Path) string {
				return fmt.Sprintf("%s: %s: Is a directory", verb, target)
			},
			InvalidName: func(verb, target string, _ vfs.Path) string {
				return fmt.Sprintf("%s: cannot create '%s': Invalid argument", verb, target)
			},
			Unrecognized: func(verb string) string {
				return verb + ": command not found"
			},
			Catalog: func(verb string, e catalog.Entry) core.Line {
				return core.System(joinBlock("> Executing: "+verb, e.Desc))
			},
		},
	}
}

// linuxDisplay renders cwd relative to the home directory, e.g. ~/scripts.
func linuxDisplay(cwd vfs.Path) string {
	if len(cwd) <= 1 {
		return "~"
	}
	return "~/" + strings.Join(cwd[1:], "/")
}

func linuxSudo(args []string, _ vfs.Path) []core.Line {
	if len(args) == 0 {
		return []core.Line{core.Output("usage: sudo -h | -K | -k | -V | -v | -l | -L ...")}
	}
	return []core.Line{core.Output("[sudo] password for root: \nSorry, try again.")}
}

func linuxApt(args []string, _ vfs.Path) []core.Line {
	switch argOr(args, 0, "") {
	case "update":
		return []core.Line{core.Output(joinBlock(
			"Hit:1 http://us.archive.ubuntu.com/ubuntu jammy InRelease",
			"Get:2 http://us.archive.ubuntu.com/ubuntu jammy-updates InRelease [119 kB]",
			"Fetched 119 kB in 1s (132 kB/s)",
			"Reading package lists... Done",
		))}
	case "install":
		pkg := argOr(args, 1, "package")
		return []core.Line{core.Output(joinBlock(
			"Reading package lists... Done",
			"Building dependency tree... Done",
			"The following NEW packages will be installed:",
			"  "+pkg,
			"0 upgraded, 1 newly installed, 0 to remove.",
			"Need to get 1,420 kB of archives.",
			"Unpacking "+pkg+"...",
			"Setting up "+pkg+"...",
		))}
	}
	return []core.Line{core.Output("apt 2.4.5 (amd64)")}
}

func linuxTop(_ []string, _ vfs.Path) []core.Line {
	return []core.Line{core.System("[Interactive process viewer simulation started... press Ctrl+C to exit]")}
}
