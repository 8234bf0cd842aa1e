package platform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/shellsim/pkg/shellsim/catalog"
	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
	"github.com/arthur-debert/shellsim/pkg/shellsim/vfs"
)

// Windows returns the Windows PowerShell profile. The first path segment is
// the drive, so the start directory C:\ is vfs.Path{"C:"}.
func Windows() *Profile {
	return &Profile{
		Platform: core.PlatformWindows,
		Name:     "windows",
		Shell:    "powershell",
		User:     `nt authority\system`,
		Host:     "DESKTOP-MASTER",
		Start:    vfs.Path{"C:"},
		Seed: []SeedEntry{
			Dir("C:"),
			Dir("C:/Users"),
			Dir("C:/Users/Administrator"),
			Dir("C:/Users/Administrator/Documents"),
			File("C:/Users/Administrator/Documents/report.docx", "SECRET REPORT"),
			Dir("C:/Users/Administrator/Downloads"),
			File("C:/Users/Administrator/Downloads/installer.exe", "BINARY DATA"),
			Dir("C:/Users/Administrator/Desktop"),
			Dir("C:/Windows"),
			Dir("C:/Windows/System32"),
		},
		BootLines: func(time.Time) []string {
			return []string{
				"Windows PowerShell",
				"Copyright (C) Microsoft Corporation. All rights reserved.",
				"",
				"Try the new cross-platform PowerShell https://aka.ms/pscore6",
				"",
			}
		},
		Aliases: map[string]string{
			"cls":           "clear",
			"write-host":    "echo",
			"dir":           "ls",
			"gci":           "ls",
			"get-childitem": "ls",
			"chdir":         "cd",
			"set-location":  "cd",
			"md":            "mkdir",
			"ni":            "touch",
			"new-item":      "touch",
			"type":          "cat",
			"gc":            "cat",
			"get-content":   "cat",
			"del":           "rm",
			"erase":         "rm",
			"ri":            "rm",
			"remove-item":   "rm",
			"get-location":  "pwd",
			"get-date":      "date",
		},
		Extensions: map[string]Extension{
			"ipconfig":   windowsIpconfig,
			"systeminfo": windowsSysteminfo,
		},
		Help:   "PowerShell Commands: dir, cd, cls, echo, type, mkdir, ni, del, ipconfig, systeminfo...",
		Prompt: func(cwd vfs.Path) string { return "PS " + windowsPath(cwd) + ">" },
		Pwd: func(cwd vfs.Path) string {
			return joinBlock("Path", "----", windowsPath(cwd))
		},
		Date: func(now time.Time) string {
			return now.Format("Monday, January 2, 2006 3:04:05 PM")
		},
		Listing: windowsListing,
		MkdirEcho: func(cwd vfs.Path, name string, now time.Time) string {
			return windowsTable(cwd, []string{windowsRow("d-----", now, "", name)})
		},
		Messages: Messages{
			CdNotFound: missingPath,
			NotFound:   missingPath,
			IsADirectory: func(verb, target string, cwd vfs.Path) string {
				return fmt.Sprintf("%s : Access to the path '%s' is denied.", verb, windowsPath(cwd.Join(target)))
			},
			InvalidName: func(verb, target string, _ vfs.Path) string {
				return fmt.Sprintf("%s : The given path's format is not supported: '%s'", verb, target)
			},
			Unrecognized: func(verb string) string {
				return fmt.Sprintf("%s : The term '%s' is not recognized as the name of a cmdlet, function, script file, or operable program.", verb, verb)
			},
			Catalog: func(verb string, e catalog.Entry) core.Line {
				return core.Output(joinBlock("Success: Executed "+verb, e.Desc))
			},
		},
	}
}

// windowsPath renders cwd as a drive path such as C:\Users.
func windowsPath(cwd vfs.Path) string {
	if len(cwd) == 0 {
		return `C:\`
	}
	return cwd[0] + `\` + strings.Join(cwd[1:], `\`)
}

func missingPath(verb, target string, cwd vfs.Path) string {
	return fmt.Sprintf("%s : Cannot find path '%s' because it does not exist.", verb, windowsPath(cwd.Join(target)))
}

func windowsRow(mode string, now time.Time, length, name string) string {
	return fmt.Sprintf("%-6s %17s %8s %14s %s", mode, now.Format("1/2/2006"), now.Format("3:04 PM"), length, name)
}

func windowsTable(cwd vfs.Path, rows []string) string {
	lines := []string{
		"    Directory: " + windowsPath(cwd),
		"",
		"Mode                 LastWriteTime         Length Name",
		"----                 -------------         ------ ----",
	}
	return joinBlock(append(lines, rows...)...)
}

func windowsListing(cwd vfs.Path, entries []vfs.Entry, now time.Time) string {
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Kind == vfs.KindDir {
			rows = append(rows, windowsRow("d-----", now, "", e.Name))
		} else {
			rows = append(rows, windowsRow("-a----", now, strconv.Itoa(e.Size), e.Name))
		}
	}
	return windowsTable(cwd, rows)
}

func windowsIpconfig(_ []string, _ vfs.Path) []core.Line {
	return []core.Line{core.Output(joinBlock(
		"",
		"Windows IP Configuration",
		"",
		"Ethernet adapter Ethernet:",
		"",
		"   Connection-specific DNS Suffix  . : localdomain",
		"   IPv6 Address. . . . . . . . . . . : fe80::a00:27ff:fe36:e31e%4",
		"   IPv4 Address. . . . . . . . . . . : 10.0.2.15",
		"   Subnet Mask . . . . . . . . . . . : 255.255.255.0",
		"   Default Gateway . . . . . . . . . : 10.0.2.2",
	))}
}

func windowsSysteminfo(_ []string, _ vfs.Path) []core.Line {
	return []core.Line{core.Output(joinBlock(
		"Host Name:                 DESKTOP-MASTER",
		"OS Name:                   Microsoft Windows 11 Pro",
		"OS Version:                10.0.22621 N/A Build 22621",
		"System Manufacturer:       MasterPro Systems",
		"System Type:               x64-based PC",
		"Processor(s):              1 Processor(s) Installed.",
	))}
}
