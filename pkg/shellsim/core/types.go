package core

import (
	"fmt"
	"strings"
)

// Platform identifies a simulated operating system flavor.
type Platform string

const (
	// PlatformUniversal tags catalog entries that apply to every platform.
	PlatformUniversal Platform = "Universal"
	// PlatformMac is the macOS/zsh flavor.
	PlatformMac Platform = "Mac"
	// PlatformLinux is the Ubuntu/bash flavor.
	PlatformLinux Platform = "Linux"
	// PlatformWindows is the Windows PowerShell flavor.
	PlatformWindows Platform = "Windows"
)

// Platforms lists the simulated platforms in display order.
var Platforms = []Platform{PlatformMac, PlatformLinux, PlatformWindows}

// ParsePlatform maps a case-insensitive name to a Platform.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mac", "macos", "darwin":
		return PlatformMac, nil
	case "linux", "ubuntu":
		return PlatformLinux, nil
	case "windows", "win", "powershell":
		return PlatformWindows, nil
	case "universal":
		return PlatformUniversal, nil
	}
	return "", fmt.Errorf("unknown platform %q", name)
}

// Matches reports whether an entry tagged p applies to the active platform.
func (p Platform) Matches(active Platform) bool {
	return p == PlatformUniversal || p == active
}

// LineKind tags a transcript line for rendering.
type LineKind int

const (
	// LineInput echoes a submitted command.
	LineInput LineKind = iota
	// LineOutput is regular command output.
	LineOutput
	// LineError is a user-visible command failure.
	LineError
	// LineSystem is boot banner text and simulated-execution notices.
	LineSystem
	// LineHeader is a section heading.
	LineHeader
)

// String returns the string representation of the LineKind
func (k LineKind) String() string {
	switch k {
	case LineInput:
		return "input"
	case LineOutput:
		return "output"
	case LineError:
		return "error"
	case LineSystem:
		return "system"
	case LineHeader:
		return "header"
	default:
		return "unknown"
	}
}

// Line is one entry of a terminal transcript. Text may span several lines.
type Line struct {
	Kind LineKind
	Text string
}

// Output builds an output line.
func Output(text string) Line { return Line{Kind: LineOutput, Text: text} }

// Error builds an error line.
func Error(text string) Line { return Line{Kind: LineError, Text: text} }

// System builds a system line.
func System(text string) Line { return Line{Kind: LineSystem, Text: text} }

// Input builds an input echo line.
func Input(text string) Line { return Line{Kind: LineInput, Text: text} }
