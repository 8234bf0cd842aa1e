package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
)

const clearScreen = "\033[H\033[2J"

// renderer prints transcript lines with one color per line kind.
type renderer struct {
	out     io.Writer
	colored bool
	styles  map[core.LineKind]*color.Color
	prompt  *color.Color
}

// newRenderer builds a renderer for mode "auto", "always" or "never". Auto
// follows fatih/color's terminal detection.
func newRenderer(out io.Writer, mode string) *renderer {
	r := &renderer{
		out: out,
		styles: map[core.LineKind]*color.Color{
			core.LineInput:  color.New(color.FgWhite, color.Bold),
			core.LineOutput: color.New(color.Reset),
			core.LineError:  color.New(color.FgRed),
			core.LineSystem: color.New(color.FgCyan),
			core.LineHeader: color.New(color.FgMagenta, color.Bold),
		},
		prompt: color.New(color.FgGreen, color.Bold),
	}

	switch strings.ToLower(mode) {
	case "always":
		r.colored = true
	case "never":
		r.colored = false
	default:
		r.colored = !color.NoColor
	}
	for _, c := range r.all() {
		if r.colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *renderer) all() []*color.Color {
	out := []*color.Color{r.prompt}
	for _, c := range r.styles {
		out = append(out, c)
	}
	return out
}

// Line prints l. Input lines are preceded by the prompt they were typed at.
func (r *renderer) Line(prompt string, l core.Line) {
	style, ok := r.styles[l.Kind]
	if !ok {
		style = r.styles[core.LineOutput]
	}
	if l.Kind == core.LineInput {
		r.prompt.Fprint(r.out, prompt)
		fmt.Fprint(r.out, " ")
	}
	style.Fprintln(r.out, l.Text)
}

// Lines prints every line in order.
func (r *renderer) Lines(prompt string, lines []core.Line) {
	for _, l := range lines {
		r.Line(prompt, l)
	}
}

// Prompt prints the prompt without a newline.
func (r *renderer) Prompt(prompt string) {
	r.prompt.Fprint(r.out, prompt)
	fmt.Fprint(r.out, " ")
}

// Header prints a section title.
func (r *renderer) Header(text string) {
	r.Line("", core.Line{Kind: core.LineHeader, Text: text})
}

// Clear wipes the terminal when colors, and so escape codes, are enabled.
func (r *renderer) Clear() {
	if r.colored {
		fmt.Fprint(r.out, clearScreen)
	}
}
